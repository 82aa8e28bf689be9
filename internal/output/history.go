package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/blackwell-systems/bizlens/internal/store"
)

// RenderHistory renders the refreshes of the current session, oldest first.
func RenderHistory(refreshes []*store.Refresh) string {
	if len(refreshes) == 0 {
		return "No refreshes this session.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-4s %-10s %-20s %-9s %-9s %-15s %-8s %-9s %s\n",
		"Gen", "ID", "File", "Size", "Source", "Generated", "Risk", "Breaches", "Alerts"))
	sb.WriteString(strings.Repeat("─", 96))
	sb.WriteString("\n")

	for _, r := range refreshes {
		alerts := fmt.Sprintf("%d", r.StockoutAlerts)
		if r.StockoutAlerts > 0 {
			alerts = colorize(colorRed, alerts)
		}
		sb.WriteString(fmt.Sprintf("%-4d %-10s %-20s %-9s %-9s %-15s %-8.1f %-9d %s\n",
			r.Generation,
			truncate(r.ID, 8),
			truncate(r.FileName, 20),
			humanize.Bytes(uint64(max(r.FileSize, 0))),
			r.Source,
			humanize.Time(r.GeneratedAt),
			r.RiskAverage,
			r.Breaches,
			alerts))
	}
	return sb.String()
}

// RenderNotifications renders stored notifications in the order given.
func RenderNotifications(records []*store.NotificationRecord) string {
	if len(records) == 0 {
		return "No notifications.\n"
	}

	var sb strings.Builder
	for _, n := range records {
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			n.CreatedAt.Format("15:04:05"),
			pad(severityColor(n.Severity), string(n.Severity), 7),
			n.Message))
	}
	return sb.String()
}
