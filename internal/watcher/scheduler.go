package watcher

import (
	"time"

	"github.com/blackwell-systems/bizlens/internal/dataset"
)

// ScheduledUploadName names the uploads raised by the schedule.
const ScheduledUploadName = "scheduled-refresh"

// runSchedule requests a refresh at every activation of the schedule
// until the stop signal is received.
func (w *Watcher) runSchedule() {
	defer w.wg.Done()

	for {
		now := time.Now()
		next := w.schedule.Next(now)
		if next.IsZero() {
			w.log.Warnw("schedule has no future activations")
			return
		}
		w.log.Debugw("next scheduled refresh", "at", next.Format("Mon Jan 2 15:04"), "in", next.Sub(now).Round(time.Second))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-timer.C:
			w.request(dataset.Upload{Name: ScheduledUploadName, Source: SourceSchedule})
		case <-w.stopCh:
			timer.Stop()
			return
		}
	}
}
