package output

import (
	"testing"
	"time"

	"github.com/blackwell-systems/bizlens/internal/notify"
	"github.com/blackwell-systems/bizlens/internal/store"
)

func TestRenderHistory(t *testing.T) {
	plain(t)
	got := RenderHistory([]*store.Refresh{
		{
			ID:             "3f2a9c1e-8d4b-4f7a-9a0e-1c2b3d4e5f60",
			Generation:     2,
			FileName:       "q2-sales.xlsx",
			FileSize:       2048,
			Source:         "watch",
			GeneratedAt:    time.Now().Add(-2 * time.Minute),
			RiskAverage:    64.21,
			Breaches:       7,
			StockoutAlerts: 1,
		},
	})

	assertContains(t, lineWith(t, got, "q2-sales.xlsx"),
		"3f2a9...", "2.0 kB", "watch", "2 minutes ago", "64.2", "7")
}

func TestRenderHistory_Empty(t *testing.T) {
	if got := RenderHistory(nil); got != "No refreshes this session.\n" {
		t.Errorf("RenderHistory(nil) = %q", got)
	}
}

func TestRenderNotifications(t *testing.T) {
	plain(t)
	at := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	got := RenderNotifications([]*store.NotificationRecord{
		{ID: 1, Severity: notify.Error, Message: "Critical: Product B will stock out in 3 days!", CreatedAt: at},
	})
	assertContains(t, got, "09:30:00", "error", "Critical: Product B")
}
