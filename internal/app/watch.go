package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/bizlens/internal/dataset"
	"github.com/blackwell-systems/bizlens/internal/notify"
	"github.com/blackwell-systems/bizlens/internal/output"
	"github.com/blackwell-systems/bizlens/internal/watcher"
)

// historyNotifications caps the notifications printed on exit.
const historyNotifications = 20

var (
	watchDir      string
	watchSchedule string
	watchSection  string

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Refresh the dashboard when files are dropped into a directory",
		Long: `Watch a drop directory and treat every new file with an accepted
extension as an upload. Each upload schedules a refresh after the analysis
delay; when several arrive before the delay elapses, only the last one is
analyzed.

A cron schedule can request refreshes periodically, with or without a
drop directory. The selected section is rendered after every refresh, and
the session history is printed on exit.`,
		Example: `  # Refresh on every CSV, XLSX or JSON file dropped into ~/drop
  bizlens watch --dir ~/drop

  # Refresh every 15 minutes and show the analytics section
  bizlens watch --schedule "*/15 * * * *" --section analytics`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "drop directory to watch (default: watch.dir from config)")
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "cron schedule for periodic refreshes (default: watch.schedule from config)")
	watchCmd.Flags().StringVar(&watchSection, "section", sectionDashboard, "section to render after each refresh: dashboard, analytics, predictions")
}

func runWatch(cmd *cobra.Command, args []string) error {
	render, err := sectionRenderer(watchSection, dataset.PredictRisk, false)
	if err != nil {
		return err
	}

	s, err := newSession(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer s.Close()

	return s.watch(cmd.Context(), render)
}

// watch renders the current section, then re-renders after every refresh
// until ctx is done or the process is interrupted.
func (s *session) watch(ctx context.Context, render renderFunc) error {
	dir := watchDir
	if dir == "" {
		dir = s.cfg.Watch.Dir
	}
	schedule := watchSchedule
	if schedule == "" {
		schedule = s.cfg.Watch.Schedule
	}

	w, err := watcher.New(s.ctrl, watcher.Options{
		Dir:        dir,
		Extensions: s.cfg.Watch.Extensions,
		Schedule:   schedule,
		Logger:     s.log,
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Refreshes publish on timer goroutines; render one at a time.
	var mu sync.Mutex
	unsubscribe := s.ctrl.Subscribe(func(snap *dataset.Snapshot) {
		mu.Lock()
		defer mu.Unlock()

		report, err := s.record(snap)
		if err != nil {
			s.log.Errorw("failed to record refresh", "refresh_id", snap.RefreshID, "error", err)
			return
		}
		fmt.Fprintf(s.out, "\nRefresh %d from %s (%s)\n\n", snap.Generation, snap.Upload.Name, snap.Upload.Source)
		fmt.Fprint(s.out, render(snap, report))
	})
	defer unsubscribe()

	fmt.Fprintln(s.out, sampleDataNotice)
	fmt.Fprintln(s.out)
	fmt.Fprint(s.out, render(s.ctrl.Snapshot(), nil))
	fmt.Fprintln(s.out)
	if dir != "" {
		fmt.Fprintf(s.out, "Watching %s for uploads. Press Ctrl+C to stop.\n", dir)
	}
	if schedule != "" {
		fmt.Fprintf(s.out, "Refreshing on schedule %q.\n", schedule)
	}

	if err := w.Run(ctx); err != nil {
		return err
	}

	// No refresh may publish while the history is read.
	s.ctrl.Close()
	mu.Lock()
	defer mu.Unlock()

	refreshes, err := s.store.ListRefreshes()
	if err != nil {
		return fmt.Errorf("failed to list refreshes: %w", err)
	}
	fmt.Fprintln(s.out, "\nSession history")
	fmt.Fprint(s.out, output.RenderHistory(refreshes))

	notes, err := s.store.ListNotifications(historyNotifications)
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}
	errs, err := s.store.CountNotifications(notify.Error)
	if err != nil {
		return fmt.Errorf("failed to count notifications: %w", err)
	}
	fmt.Fprintf(s.out, "\nNotifications (%d watched uploads, %d errors)\n", w.Requests(), errs)
	fmt.Fprint(s.out, output.RenderNotifications(notes))
	return nil
}
