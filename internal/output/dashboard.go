package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/bizlens/internal/analyzer"
	"github.com/blackwell-systems/bizlens/internal/classify"
	"github.com/blackwell-systems/bizlens/internal/dataset"
)

const riskBarWidth = 20

// RenderMetrics renders the headline KPI cards.
func RenderMetrics(cards []dataset.MetricCard) string {
	if len(cards) == 0 {
		return "No metrics available.\n"
	}

	var sb strings.Builder
	sb.WriteString(heading("Key Metrics", 52))
	for _, c := range cards {
		sb.WriteString(fmt.Sprintf("%s  %-16s %-12s %s from last month\n",
			Glyph(c.Icon),
			truncate(c.Title, 16),
			c.Value,
			colorize(changeColor(c.Change), formatChange(c.Change))))
	}
	return sb.String()
}

// RenderRisks renders the risk gauges.
func RenderRisks(risks []dataset.RiskMetric) string {
	if len(risks) == 0 {
		return "No risk metrics available.\n"
	}

	var sb strings.Builder
	sb.WriteString(heading("Risk Assessment", 60))
	for _, r := range risks {
		color := levelColor(r.Status)
		sb.WriteString(fmt.Sprintf("%-20s %5.1f %s %s\n",
			truncate(r.Category, 20),
			r.Value,
			colorize(color, bar(r.Value, riskBarWidth)),
			colorize(color, r.Status.Title())))
	}
	return sb.String()
}

// RenderCostHeatmap renders cost categories coloured by efficiency band.
func RenderCostHeatmap(categories []dataset.CostCategory) string {
	if len(categories) == 0 {
		return "No cost categories available.\n"
	}

	var sb strings.Builder
	sb.WriteString(heading("Cost Optimization", 72))
	sb.WriteString(fmt.Sprintf("%-14s %-11s %-11s %-11s %-10s %s\n",
		"Category", "Current", "Previous", "Reduction", "Efficiency", "Band"))
	for _, c := range categories {
		band := classify.Efficiency(c.Efficiency)
		sb.WriteString(fmt.Sprintf("%-14s %-11s %-11s %-11s %-10s %s\n",
			truncate(c.Name, 14),
			formatMoney(c.CurrentCost),
			formatMoney(c.PreviousCost),
			formatMoney(c.PredictedReduction),
			fmt.Sprintf("%.1f%%", c.Efficiency),
			colorize(bandColor(band), string(band))))
	}
	return sb.String()
}

// RenderRecommendations renders cost-saving proposals with their action items.
func RenderRecommendations(recs []dataset.CostRecommendation) string {
	if len(recs) == 0 {
		return "No recommendations.\n"
	}

	var sb strings.Builder
	sb.WriteString(heading("AI Recommendations", 72))
	for i, r := range recs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s  %s  potential savings %s\n",
			colorize(colorBold, r.Category),
			colorize(levelColor(r.Impact), r.Impact.Title()+" impact"),
			formatMoney(r.PotentialSavings)))
		if r.Description != "" {
			sb.WriteString("  " + r.Description + "\n")
		}
		for _, item := range r.ActionItems {
			sb.WriteString("  • " + item + "\n")
		}
	}
	return sb.String()
}

// RenderWarnings renders data-quality warnings. It returns "" when there
// are none.
func RenderWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, w := range warnings {
		sb.WriteString(colorize(colorYellow, "warning: ") + w + "\n")
	}
	return sb.String()
}

// RenderFlipCards renders the explanatory cards. With back set, the card
// reverse and its tip are shown instead of the front.
func RenderFlipCards(cards []dataset.FlipCard, back bool) string {
	if len(cards) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, c := range cards {
		if i > 0 {
			sb.WriteString("\n")
		}
		level := classify.Risk(c.RiskPercentage)
		sb.WriteString(fmt.Sprintf("%s  %s  %s\n",
			Glyph(c.Icon),
			colorize(colorBold, c.Title),
			colorize(levelColor(level), fmt.Sprintf("%.0f%% risk", c.RiskPercentage))))
		if back {
			sb.WriteString("   " + c.BackContent + "\n")
			if c.Tip != "" {
				sb.WriteString("   Tip: " + c.Tip + "\n")
			}
		} else {
			sb.WriteString("   " + c.FrontContent + "\n")
		}
	}
	return sb.String()
}

// RenderDashboard renders the dashboard section of a snapshot.
func RenderDashboard(snap *dataset.Snapshot, report *analyzer.Report) string {
	if snap == nil {
		return "No data loaded.\n"
	}
	if report == nil {
		report = analyzer.Analyze(snap)
	}

	sections := []string{
		RenderMetrics(snap.Metrics),
		RenderRisks(snap.Risks),
		RenderCostHeatmap(snap.CostCategories),
		RenderRecommendations(report.Recommendations),
	}
	out := strings.Join(sections, "\n")
	if w := RenderWarnings(report.Warnings); w != "" {
		out += "\n" + w
	}
	return out
}
