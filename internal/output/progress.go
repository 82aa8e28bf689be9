package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// writerIsTTY returns true if the given writer exposes an Fd() method
// (e.g. *os.File) and that fd is a terminal. Falls back to false for
// plain io.Writer values such as *bytes.Buffer.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

var spinnerFrames = []string{"|", "/", "-", "\\"}

// Spinner animates a message while the simulated analysis runs.
// Example: /  Analyzing data (1s remaining)
//
// On a non-TTY writer the message is printed once and nothing animates.
type Spinner struct {
	mu       sync.Mutex
	writer   io.Writer
	message  string
	expected time.Duration
	started  time.Time
	running  bool
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewSpinner creates a spinner writing to stdout. Call Start to show it.
func NewSpinner(message string) *Spinner {
	return &Spinner{message: message, writer: os.Stdout}
}

// SetWriter sets the output writer (useful for testing).
func (s *Spinner) SetWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer = w
}

// Expect makes the spinner show the time remaining until d has elapsed
// since Start. It must be called before Start and returns the spinner for
// chaining.
func (s *Spinner) Expect(d time.Duration) *Spinner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expected = d
	return s
}

// Start shows the spinner. Calling Start on a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.started = time.Now()

	if !writerIsTTY(s.writer) {
		fmt.Fprintf(s.writer, "%s...\n", s.message)
		return
	}

	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.animate(s.done)
}

func (s *Spinner) animate(done <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprintf(s.writer, "\r%s  %s", spinnerFrames[frame%len(spinnerFrames)], s.line())
			s.mu.Unlock()
		}
	}
}

// line returns the message with the remaining time. s.mu must be held.
func (s *Spinner) line() string {
	if s.expected <= 0 {
		return s.message
	}
	remaining := max(s.expected-time.Since(s.started), 0)
	return fmt.Sprintf("%s (%ds remaining)", s.message, int(remaining.Round(time.Second).Seconds()))
}

// Stop hides the spinner. It waits for the animation to finish so no frame
// is written afterwards.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	done := s.done
	s.done = nil
	s.mu.Unlock()

	if done == nil {
		return
	}
	close(done)
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.writer, "\r%s\r", strings.Repeat(" ", len(s.line())+4))
}

// StopWithMessage stops the spinner and displays a final message.
func (s *Spinner) StopWithMessage(message string) {
	s.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.writer, message)
}
