package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/bizlens/internal/analyzer"
	"github.com/blackwell-systems/bizlens/internal/config"
	"github.com/blackwell-systems/bizlens/internal/dataset"
	"github.com/blackwell-systems/bizlens/internal/logging"
	"github.com/blackwell-systems/bizlens/internal/notify"
	"github.com/blackwell-systems/bizlens/internal/output"
	"github.com/blackwell-systems/bizlens/internal/state"
	"github.com/blackwell-systems/bizlens/internal/store"
)

// analysisMessage is shown by the spinner while a refresh is pending.
const analysisMessage = "Analyzing data"

// lockedWriter serializes writes from refresh callbacks and the command.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// Fd forwards the wrapped writer's descriptor so terminal detection sees
// through the lock. Writers without one report an invalid descriptor.
func (l *lockedWriter) Fd() uintptr {
	if f, ok := l.w.(interface{ Fd() uintptr }); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}

// session is one run of bizlens: a config, a logger, an in-memory
// history store and the controller owning the current snapshot.
type session struct {
	cfg   *config.Config
	log   *zap.SugaredLogger
	store *store.Store
	ctrl  *state.Controller
	toast *output.ToastSink
	out   io.Writer
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}

// newSession wires a session writing user-facing output to out.
func newSession(out io.Writer) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	st, err := store.OpenSession(log)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	seed := seedFlag
	if seed == 0 {
		seed = cfg.Refresh.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Debugw("session opened", "seed", seed, "delay", cfg.Refresh.Delay)

	w := &lockedWriter{w: out}
	toast := output.NewToastSink(w)
	gen := dataset.NewMockGenerator(seed)
	ctrl := state.NewController(gen, state.Options{
		Delay:  cfg.Refresh.Delay,
		Sink:   notify.Multi(toast, st),
		Logger: log,
		Seed:   dataset.Seed(time.Now(), gen),
	})

	return &session{cfg: cfg, log: log, store: st, ctrl: ctrl, toast: toast, out: w}, nil
}

// Close stops pending refreshes and releases the store.
func (s *session) Close() error {
	s.ctrl.Close()
	_ = s.log.Sync()
	return s.store.Close()
}

// upload runs the upload workflow: the controller raises the toast, the
// spinner covers the analysis delay, and the published snapshot is
// recorded.
func (s *session) upload(ctx context.Context, u dataset.Upload) (*dataset.Snapshot, *analyzer.Report, error) {
	ticket := s.ctrl.RequestRefresh(u)

	spinner := output.NewSpinner(analysisMessage).Expect(s.cfg.Refresh.Delay)
	spinner.SetWriter(s.out)
	spinner.Start()
	snap, err := s.ctrl.Await(ctx, ticket)
	if err != nil {
		spinner.Stop()
		return nil, nil, fmt.Errorf("failed to analyze %s: %w", u.Name, err)
	}
	spinner.StopWithMessage(fmt.Sprintf("Analyzed %s (refresh %d)", u.Name, snap.Generation))

	report, err := s.record(snap)
	if err != nil {
		return nil, nil, err
	}
	return snap, report, nil
}

// record analyzes a published snapshot, raises its stock-out alerts and
// stores it in the session history.
func (s *session) record(snap *dataset.Snapshot) (*analyzer.Report, error) {
	report := analyzer.Analyze(snap)
	alerts := analyzer.StockoutAlerts(snap.Analytics.Inventory.Items)

	refresh := &store.Refresh{
		ID:             snap.RefreshID,
		Generation:     snap.Generation,
		FileName:       snap.Upload.Name,
		FileSize:       snap.Upload.Size,
		Source:         snap.Upload.Source,
		GeneratedAt:    snap.GeneratedAt,
		RiskAverage:    report.Risk.Average,
		Breaches:       report.Risk.Breaches,
		StockoutAlerts: len(alerts),
	}
	if err := s.store.InsertRefresh(refresh); err != nil {
		return nil, fmt.Errorf("failed to record refresh: %w", err)
	}

	for _, alert := range alerts {
		s.toast.Notify(alert)
		if _, err := s.store.InsertNotification(snap.RefreshID, alert); err != nil {
			return nil, fmt.Errorf("failed to record stock-out alert: %w", err)
		}
	}

	s.log.Debugw("refresh recorded",
		"refresh_id", snap.RefreshID,
		"generation", snap.Generation,
		"alerts", len(alerts),
	)
	return report, nil
}
