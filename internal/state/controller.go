// Package state owns the current dataset snapshot and the refresh
// workflow that replaces it after a simulated upload.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blackwell-systems/bizlens/internal/dataset"
	"github.com/blackwell-systems/bizlens/internal/notify"
)

// DefaultDelay is the simulated analysis latency between an upload and the
// refresh it schedules.
const DefaultDelay = 1500 * time.Millisecond

// UploadMessage is surfaced as soon as an upload is accepted.
const UploadMessage = "File uploaded successfully! Analyzing data..."

// ErrClosed is returned by Await after Close.
var ErrClosed = errors.New("controller closed")

// ErrSuperseded is returned by Await when a later upload replaced the
// awaited refresh before it ran.
var ErrSuperseded = errors.New("refresh superseded by a later upload")

// State is the lifecycle state of a Controller.
type State int

const (
	// Empty means no refresh has completed yet.
	Empty State = iota
	// Populated means the snapshot came from a completed refresh.
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

// Options configures a Controller. Zero values select defaults.
type Options struct {
	Delay  time.Duration
	Sink   notify.Sink
	Logger *zap.SugaredLogger
	// Seed is returned by Snapshot until the first refresh completes.
	Seed *dataset.Snapshot
	// Now overrides the clock passed to the generator.
	Now func() time.Time
}

// Subscriber is called with every newly published snapshot.
type Subscriber func(snap *dataset.Snapshot)

// Controller schedules refreshes and publishes snapshots. The most
// recently requested refresh is authoritative: scheduling a new one stops
// the pending timer, and a superseded callback that already fired is
// discarded. It is safe for concurrent use.
type Controller struct {
	gen   dataset.Generator
	delay time.Duration
	sink  notify.Sink
	log   *zap.SugaredLogger
	now   func() time.Time

	mu      sync.Mutex
	state   State
	snap    *dataset.Snapshot
	latest  uint64 // ticket of the most recent request
	applied uint64 // ticket of the published snapshot
	pending *time.Timer
	upload  dataset.Upload
	subs    map[int]Subscriber
	nextSub int
	changed chan struct{} // closed and replaced on every publish or close
	closed  bool
	failed  uint64 // ticket of the most recent failed refresh
	lastErr error

	deliverMu sync.Mutex
	delivered uint64 // generation last handed to subscribers
}

// NewController returns a controller that regenerates snapshots with gen.
func NewController(gen dataset.Generator, opts Options) *Controller {
	c := &Controller{
		gen:     gen,
		delay:   opts.Delay,
		sink:    opts.Sink,
		log:     opts.Logger,
		now:     opts.Now,
		snap:    opts.Seed,
		subs:    make(map[int]Subscriber),
		changed: make(chan struct{}),
	}
	if c.delay <= 0 {
		c.delay = DefaultDelay
	}
	if c.sink == nil {
		c.sink = notify.Discard
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the current snapshot. While Empty this is the seed
// snapshot, which may be nil.
func (c *Controller) Snapshot() *dataset.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Subscribe registers fn for snapshot changes and returns a function that
// removes it. Subscribers run on the refresh goroutine, after the
// snapshot is visible through Snapshot. Deliveries are serialized and in
// generation order; a snapshot overtaken by a later one is not delivered.
func (c *Controller) Subscribe(fn Subscriber) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// RequestRefresh accepts an upload and schedules a refresh after the
// configured delay. It returns the ticket identifying the refresh; zero
// means the controller is closed.
func (c *Controller) RequestRefresh(upload dataset.Upload) uint64 {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	c.latest++
	ticket := c.latest
	c.upload = upload
	if c.pending != nil && c.pending.Stop() {
		c.log.Debugw("superseded pending refresh", "ticket", ticket-1)
	}
	c.pending = time.AfterFunc(c.delay, func() { c.run(ticket) })
	c.mu.Unlock()

	c.log.Infow("upload accepted", "ticket", ticket, "file", upload.Name, "source", upload.Source)
	c.sink.Notify(notify.New(notify.Success, UploadMessage))
	return ticket
}

func (c *Controller) run(ticket uint64) {
	c.mu.Lock()
	if c.closed || ticket != c.latest {
		c.mu.Unlock()
		c.log.Debugw("discarded stale refresh", "ticket", ticket)
		return
	}
	req := dataset.Request{Upload: c.upload, Base: c.snap, Now: c.now()}
	c.mu.Unlock()

	start := time.Now()
	snap, err := c.gen.Generate(context.Background(), req)
	if err != nil {
		c.fail(ticket, err)
		return
	}
	snap.Generation = ticket
	snap.RefreshID = uuid.NewString()
	snap.Upload = req.Upload

	c.mu.Lock()
	if c.closed || ticket != c.latest {
		c.mu.Unlock()
		c.log.Debugw("discarded stale refresh", "ticket", ticket)
		return
	}
	c.snap = snap
	c.state = Populated
	c.applied = ticket
	subs := make([]Subscriber, 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.broadcastLocked()
	c.mu.Unlock()

	c.log.Infow("refresh complete",
		"ticket", ticket,
		"refresh_id", snap.RefreshID,
		"duration", time.Since(start),
	)
	c.deliver(snap, subs)
}

// deliver hands snap to subs unless a later generation got there first.
func (c *Controller) deliver(snap *dataset.Snapshot, subs []Subscriber) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()
	if snap.Generation <= c.delivered {
		c.log.Debugw("skipped overtaken snapshot", "generation", snap.Generation, "delivered", c.delivered)
		return
	}
	c.delivered = snap.Generation
	for _, fn := range subs {
		fn(snap)
	}
}

// fail records err for ticket. Only the latest failure is kept; Await on
// an older ticket reports ErrSuperseded.
func (c *Controller) fail(ticket uint64, err error) {
	c.mu.Lock()
	c.failed = ticket
	c.lastErr = err
	c.broadcastLocked()
	c.mu.Unlock()

	c.log.Errorw("refresh failed", "ticket", ticket, "error", err)
	c.sink.Notify(notify.New(notify.Error, fmt.Sprintf("Analysis failed: %v", err)))
}

// broadcastLocked wakes every Await call. c.mu must be held.
func (c *Controller) broadcastLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
}

// Await blocks until the refresh identified by ticket has been published
// and returns the snapshot current at that moment. It returns
// ErrSuperseded when a later request replaced it, the generator error if
// the refresh failed, and ctx.Err() on cancellation.
func (c *Controller) Await(ctx context.Context, ticket uint64) (*dataset.Snapshot, error) {
	for {
		c.mu.Lock()
		switch {
		case ticket == 0:
			c.mu.Unlock()
			return nil, ErrClosed
		case c.applied >= ticket:
			snap := c.snap
			c.mu.Unlock()
			return snap, nil
		case c.failed == ticket && c.lastErr != nil:
			err := c.lastErr
			c.mu.Unlock()
			return nil, fmt.Errorf("failed to refresh datasets: %w", err)
		case c.closed:
			c.mu.Unlock()
			return nil, ErrClosed
		case ticket < c.latest:
			// Only the latest ticket is ever published.
			c.mu.Unlock()
			return nil, ErrSuperseded
		}
		changed := c.changed
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-changed:
		}
	}
}

// Close stops any pending refresh. No snapshot is published afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.pending != nil {
		c.pending.Stop()
	}
	c.broadcastLocked()
}
