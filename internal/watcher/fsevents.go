package watcher

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/blackwell-systems/bizlens/internal/config"
	"github.com/blackwell-systems/bizlens/internal/dataset"
)

// Upload sources recorded on the requests the watcher makes.
const (
	SourceWatch    = "watch"
	SourceSchedule = "schedule"
)

// DefaultCoalesce is the window in which repeated events for the same
// file count as a single upload.
const DefaultCoalesce = 500 * time.Millisecond

// Uploader accepts upload requests. *state.Controller satisfies it.
type Uploader interface {
	RequestRefresh(upload dataset.Upload) uint64
}

// Options configures a Watcher.
type Options struct {
	// Dir is the drop directory. Empty disables file watching.
	Dir        string
	Extensions []string
	// Schedule is a five-field cron expression. Empty disables it.
	Schedule string
	Coalesce time.Duration
	Logger   *zap.SugaredLogger
}

// Watcher requests refreshes for files dropped into a directory and on a
// cron schedule.
type Watcher struct {
	uploader Uploader
	dir      string
	exts     []string
	schedule cron.Schedule
	coalesce time.Duration
	log      *zap.SugaredLogger

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu       sync.Mutex
	lastSeen map[string]time.Time
	requests int
}

// New creates a new Watcher instance.
func New(uploader Uploader, opts Options) (*Watcher, error) {
	if uploader == nil {
		return nil, fmt.Errorf("uploader cannot be nil")
	}
	if opts.Dir == "" && strings.TrimSpace(opts.Schedule) == "" {
		return nil, fmt.Errorf("nothing to watch: set a directory or a schedule")
	}

	w := &Watcher{
		uploader: uploader,
		dir:      opts.Dir,
		exts:     opts.Extensions,
		coalesce: opts.Coalesce,
		log:      opts.Logger,
		stopCh:   make(chan struct{}),
		lastSeen: make(map[string]time.Time),
	}
	if len(w.exts) == 0 {
		w.exts = DefaultExtensions
	}
	if w.coalesce <= 0 {
		w.coalesce = DefaultCoalesce
	}
	if w.log == nil {
		w.log = zap.NewNop().Sugar()
	}

	if s := strings.TrimSpace(opts.Schedule); s != "" {
		sched, err := config.ScheduleParser.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse schedule %q: %w", s, err)
		}
		w.schedule = sched
	}

	return w, nil
}

// Start begins watching. It returns once the directory watch is in
// place; events are handled on background goroutines.
func (w *Watcher) Start() error {
	if w.dir != "" {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create fsnotify watcher: %w", err)
		}
		if err := fsw.Add(w.dir); err != nil {
			fsw.Close()
			return fmt.Errorf("failed to watch %s: %w", w.dir, err)
		}
		w.fsw = fsw

		w.wg.Add(1)
		go w.runFSEvents()
		w.log.Infow("watching drop directory", "dir", w.dir, "extensions", w.exts)
	}

	if w.schedule != nil {
		w.wg.Add(1)
		go w.runSchedule()
	}

	return nil
}

// runFSEvents turns create and write events into upload requests until
// the stop signal is received.
func (w *Watcher) runFSEvents() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnw("fsnotify error", "error", err)
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	if !Accepts(ev.Name, w.exts) {
		w.log.Debugw("ignored file", "path", ev.Name)
		return
	}
	if !w.claim(ev.Name, time.Now()) {
		return
	}

	upload, err := BuildUpload(ev.Name, SourceWatch)
	if err != nil {
		// Removed or renamed before we got to it.
		w.log.Debugw("skipped upload", "path", ev.Name, "error", err)
		return
	}
	w.request(upload)
}

// claim reports whether an event for path at now starts a new upload.
func (w *Watcher) claim(path string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if last, ok := w.lastSeen[path]; ok && now.Sub(last) < w.coalesce {
		return false
	}
	w.lastSeen[path] = now
	return true
}

func (w *Watcher) request(upload dataset.Upload) {
	ticket := w.uploader.RequestRefresh(upload)

	w.mu.Lock()
	w.requests++
	w.mu.Unlock()

	w.log.Infow("requested refresh", "file", upload.Name, "size", upload.Size, "source", upload.Source, "ticket", ticket)
}

// Requests returns how many upload requests the watcher has made.
func (w *Watcher) Requests() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.requests
}

// Stop halts the watcher and waits for its goroutines to exit. It is
// safe to call more than once.
func (w *Watcher) Stop() error {
	select {
	case <-w.stopCh:
		return nil
	default:
		close(w.stopCh)
	}

	var err error
	if w.fsw != nil {
		err = w.fsw.Close()
	}
	w.wg.Wait()

	if err != nil && !errors.Is(err, fsnotify.ErrClosed) {
		return fmt.Errorf("failed to close fsnotify watcher: %w", err)
	}
	return nil
}
