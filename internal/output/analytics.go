package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/bizlens/internal/analyzer"
	"github.com/blackwell-systems/bizlens/internal/classify"
	"github.com/blackwell-systems/bizlens/internal/dataset"
)

const shareBarWidth = 24

// RenderRevenue renders the revenue breakdown with each slice's share.
func RenderRevenue(slices []dataset.RevenueSlice) string {
	if len(slices) == 0 {
		return "No revenue data available.\n"
	}

	var total float64
	for _, s := range slices {
		total += s.Value
	}

	var sb strings.Builder
	sb.WriteString(heading("Revenue Breakdown", 64))
	for _, s := range slices {
		share := 0.0
		if total > 0 {
			share = s.Value / total * 100
		}
		sb.WriteString(fmt.Sprintf("%-16s %-10s %5.1f%% %s\n",
			truncate(s.Name, 16),
			formatMoney(s.Value),
			share,
			bar(share, shareBarWidth)))
	}
	sb.WriteString(fmt.Sprintf("%-16s %s\n", "Total", formatMoney(total)))
	return sb.String()
}

// RenderChannels renders channel performance against the previous period.
func RenderChannels(channels []dataset.ChannelPerformance) string {
	if len(channels) == 0 {
		return "No channel data available.\n"
	}

	var sb strings.Builder
	sb.WriteString(heading("Channel Performance", 56))
	sb.WriteString(fmt.Sprintf("%-14s %-11s %-11s %s\n", "Channel", "Current", "Previous", "Change"))
	for _, c := range channels {
		change := Missing
		color := ""
		if c.Previous != 0 {
			pct := (c.Current - c.Previous) / c.Previous * 100
			change = formatChange(pct)
			color = changeColor(pct)
		}
		sb.WriteString(fmt.Sprintf("%-14s %-11s %-11s %s\n",
			truncate(c.Name, 14),
			formatMoney(c.Current),
			formatMoney(c.Previous),
			colorize(color, change)))
	}
	return sb.String()
}

// RenderProducts renders product sales and growth.
func RenderProducts(products []dataset.ProductPerformance) string {
	if len(products) == 0 {
		return "No product data available.\n"
	}

	var sb strings.Builder
	sb.WriteString(heading("Product Performance", 44))
	sb.WriteString(fmt.Sprintf("%-16s %-10s %s\n", "Product", "Sales", "Growth"))
	for _, p := range products {
		sb.WriteString(fmt.Sprintf("%-16s %-10.0f %s\n",
			truncate(p.Name, 16),
			p.Sales,
			colorize(changeColor(p.Growth), formatChange(p.Growth))))
	}
	return sb.String()
}

// RenderFraud renders monthly fraud incidents and risk.
func RenderFraud(points []dataset.FraudPoint) string {
	if len(points) == 0 {
		return "No fraud data available.\n"
	}

	var sb strings.Builder
	sb.WriteString(heading("Fraud Detection", 44))
	sb.WriteString(fmt.Sprintf("%-9s %-10s %s\n", "Month", "Incidents", "Risk"))
	for _, p := range points {
		level := classify.Risk(p.RiskScore)
		sb.WriteString(fmt.Sprintf("%-9s %-10d %s\n",
			p.Month,
			p.Incidents,
			colorize(levelColor(level), fmt.Sprintf("%.1f (%s)", p.RiskScore, level))))
	}
	return sb.String()
}

// formatHorizon renders days until an event, or "never" when unbounded.
func formatHorizon(h analyzer.Horizon) string {
	if h.Unbounded {
		return "never"
	}
	if h.Days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", h.Days)
}

// RenderInventory renders stock positions with their projected stock-out.
func RenderInventory(preds []analyzer.StockPrediction) string {
	if len(preds) == 0 {
		return "No inventory items.\n"
	}

	var sb strings.Builder
	sb.WriteString(heading("Inventory", 92))
	sb.WriteString(fmt.Sprintf("%-14s %-7s %-11s %-8s %-15s %-10s %-9s %s\n",
		"Item", "Stock", "Min/Max", "Demand", "Status", "Runs out", "Urgency", "Action"))
	for _, p := range preds {
		sb.WriteString(fmt.Sprintf("%-14s %-7d %-11s %-8s %s %-10s %s %s\n",
			truncate(p.Item.Name, 14),
			p.Item.CurrentStock,
			fmt.Sprintf("%d/%d", p.Item.MinThreshold, p.Item.MaxThreshold),
			fmt.Sprintf("%d/day", p.Item.DailyDemand),
			pad(stockColor(p.Status), string(p.Status), 15),
			formatHorizon(p.Horizon),
			pad(urgencyColor(p.Urgency), string(p.Urgency), 9),
			stockAction(p)))
	}
	return sb.String()
}

func stockAction(p analyzer.StockPrediction) string {
	switch p.Status {
	case classify.StockoutRisk:
		return fmt.Sprintf("order %d units", p.Reorder)
	case classify.Overstock:
		return fmt.Sprintf("%d excess, normal in %s", p.Excess, formatHorizon(p.Normalize))
	default:
		return Missing
	}
}

// RenderActionGroups renders titled action lists.
func RenderActionGroups(groups []analyzer.ActionGroup) string {
	if len(groups) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, g := range groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(colorize(colorBold, g.Title) + "\n")
		for _, a := range g.Actions {
			sb.WriteString("  • " + a + "\n")
		}
	}
	return sb.String()
}

// RenderAnalytics renders the analytics section of a snapshot.
func RenderAnalytics(snap *dataset.Snapshot, report *analyzer.Report) string {
	if snap == nil {
		return "No data loaded.\n"
	}
	if report == nil {
		report = analyzer.Analyze(snap)
	}

	a := snap.Analytics
	sections := []string{
		RenderRevenue(a.Revenue),
		RenderChannels(a.Channels),
		RenderProducts(a.Products),
		RenderFraud(a.Fraud),
		RenderInventory(report.Stock),
	}
	if g := RenderActionGroups(report.InventoryGroups); g != "" {
		sections = append(sections, g)
	}
	return strings.Join(sections, "\n")
}
