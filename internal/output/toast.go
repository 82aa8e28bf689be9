package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/blackwell-systems/bizlens/internal/notify"
)

var toastMarks = map[notify.Severity]string{
	notify.Info:    "i",
	notify.Success: "✓",
	notify.Warning: "!",
	notify.Error:   "✗",
}

// ToastSink prints notifications as one-line toasts. It is safe for
// concurrent use.
type ToastSink struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewToastSink returns a sink writing to w. Colour follows the terminal
// state of w and NO_COLOR.
func NewToastSink(w io.Writer) *ToastSink {
	return &ToastSink{
		w:     w,
		color: writerIsTTY(w) && os.Getenv("NO_COLOR") == "",
	}
}

// Notify implements notify.Sink.
func (t *ToastSink) Notify(n notify.Notification) {
	mark, ok := toastMarks[n.Severity]
	if !ok {
		mark = toastMarks[notify.Info]
	}
	if t.color {
		mark = severityColor(n.Severity) + mark + colorReset
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s %s\n", mark, n.Message)
}

var _ notify.Sink = (*ToastSink)(nil)
