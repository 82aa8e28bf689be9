package store

import (
	"time"

	"github.com/blackwell-systems/bizlens/internal/notify"
)

// Refresh records one completed dataset refresh.
type Refresh struct {
	ID             string // refresh ID of the published snapshot
	Generation     uint64
	FileName       string
	FileSize       int64
	Source         string // "cli", "watch" or "schedule"
	GeneratedAt    time.Time
	RiskAverage    float64
	Breaches       int
	StockoutAlerts int
}

// NotificationRecord is a stored notification. RefreshID is empty for
// notifications raised outside a refresh, such as upload toasts.
type NotificationRecord struct {
	ID        int64
	RefreshID string
	Severity  notify.Severity
	Message   string
	CreatedAt time.Time
}
