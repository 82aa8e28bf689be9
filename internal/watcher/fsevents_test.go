package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/bizlens/internal/dataset"
)

// recordingUploader captures every upload it receives.
type recordingUploader struct {
	mu      sync.Mutex
	uploads []dataset.Upload
}

func (r *recordingUploader) RequestRefresh(u dataset.Upload) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads = append(r.uploads, u)
	return uint64(len(r.uploads))
}

func (r *recordingUploader) all() []dataset.Upload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dataset.Upload(nil), r.uploads...)
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func newTestWatcher(t *testing.T, opts Options) (*Watcher, *recordingUploader) {
	t.Helper()
	up := &recordingUploader{}
	w, err := New(up, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { w.Stop() })
	return w, up
}

func TestNew(t *testing.T) {
	w, _ := newTestWatcher(t, Options{Dir: t.TempDir()})

	if len(w.exts) != len(DefaultExtensions) {
		t.Errorf("expected default extensions, got %v", w.exts)
	}
	if w.coalesce != DefaultCoalesce {
		t.Errorf("coalesce = %v, want %v", w.coalesce, DefaultCoalesce)
	}
	if w.schedule != nil {
		t.Error("schedule should be nil when not configured")
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		uploader Uploader
		opts     Options
	}{
		{"nil uploader", nil, Options{Dir: "/tmp"}},
		{"nothing to watch", &recordingUploader{}, Options{}},
		{"bad schedule", &recordingUploader{}, Options{Schedule: "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.uploader, tt.opts); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestStart_MissingDir(t *testing.T) {
	up := &recordingUploader{}
	w, err := New(up, Options{Dir: filepath.Join(t.TempDir(), "missing")})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err == nil {
		t.Error("Start() should fail for a missing directory")
	}
}

func TestWatcher_DroppedFiles(t *testing.T) {
	dir := t.TempDir()
	w, up := newTestWatcher(t, Options{Dir: dir})
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sales.csv"), []byte("a,b\n1,2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, func() bool { return len(up.all()) >= 1 }) {
		t.Fatal("expected an upload for sales.csv")
	}

	// Let trailing write events settle inside the coalesce window.
	time.Sleep(100 * time.Millisecond)

	uploads := up.all()
	if len(uploads) != 1 {
		t.Fatalf("expected exactly 1 upload, got %+v", uploads)
	}
	if uploads[0].Name != "sales.csv" || uploads[0].Source != SourceWatch {
		t.Errorf("unexpected upload: %+v", uploads[0])
	}
	if w.Requests() != 1 {
		t.Errorf("Requests() = %d, want 1", w.Requests())
	}
}

func TestHandleEvent_Coalesces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q1.xlsx")
	if err := os.WriteFile(path, []byte("xlsx"), 0644); err != nil {
		t.Fatal(err)
	}

	w, up := newTestWatcher(t, Options{Dir: dir, Coalesce: time.Hour})

	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Create})
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Chmod})

	uploads := up.all()
	if len(uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(uploads))
	}
	if uploads[0].Size != 4 {
		t.Errorf("Size = %d, want 4", uploads[0].Size)
	}
}

func TestHandleEvent_VanishedFile(t *testing.T) {
	w, up := newTestWatcher(t, Options{Dir: t.TempDir()})

	w.handleEvent(fsnotify.Event{Name: "/nonexistent/data.json", Op: fsnotify.Create})
	if len(up.all()) != 0 {
		t.Error("vanished file should not produce an upload")
	}
}

func TestWatcher_Schedule(t *testing.T) {
	w, up := newTestWatcher(t, Options{Schedule: "* * * * *"})

	// Drive the loop with a schedule that fires immediately.
	w.schedule = everyInterval(20 * time.Millisecond)
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if !waitFor(t, func() bool { return len(up.all()) >= 2 }) {
		t.Fatalf("expected scheduled uploads, got %d", len(up.all()))
	}
	u := up.all()[0]
	if u.Source != SourceSchedule || u.Name != ScheduledUploadName {
		t.Errorf("unexpected scheduled upload: %+v", u)
	}
}

func TestStop_Idempotent(t *testing.T) {
	w, _ := newTestWatcher(t, Options{Dir: t.TempDir()})
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("first Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestRun_StopsOnContext(t *testing.T) {
	w, _ := newTestWatcher(t, Options{Dir: t.TempDir()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

// everyInterval is a cron.Schedule firing at a fixed interval.
type everyInterval time.Duration

func (e everyInterval) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}
