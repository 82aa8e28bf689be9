package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/bizlens/internal/analyzer"
	"github.com/blackwell-systems/bizlens/internal/classify"
	"github.com/blackwell-systems/bizlens/internal/dataset"
)

// seriesFields lists the charted fields of each prediction type.
var seriesFields = map[dataset.PredictionType][]dataset.Field{
	dataset.PredictRisk:      {dataset.FieldScore, dataset.FieldThreshold},
	dataset.PredictRevenue:   {dataset.FieldActual, dataset.FieldPredicted},
	dataset.PredictMarket:    {dataset.FieldMarketShare, dataset.FieldCompetitorShare},
	dataset.PredictPricing:   {dataset.FieldPricing, dataset.FieldSuggestedPrice},
	dataset.PredictExpansion: {dataset.FieldExpansionScore, dataset.FieldMarketPotential},
}

// RenderRiskSummary renders the quick analysis and key insights of the
// risk series.
func RenderRiskSummary(sum analyzer.RiskSummary) string {
	var sb strings.Builder
	sb.WriteString(heading("Quick Analysis", 60))

	average := analyzer.NotAvailable
	if sum.HasAverage {
		average = colorize(levelColor(classify.Risk(sum.Average)), fmt.Sprintf("%.1f", sum.Average))
	}
	volatility := analyzer.NotAvailable
	if sum.HasVolatility {
		volatility = fmt.Sprintf("%.1f%% (%s)", sum.Volatility, sum.Pattern)
	}

	sb.WriteString(fmt.Sprintf("  Average risk:     %s\n", average))
	sb.WriteString(fmt.Sprintf("  Breaches:         %d (%.1f%%)\n", sum.Breaches, sum.BreachShare))
	sb.WriteString(fmt.Sprintf("  Volatility:       %s\n", volatility))
	sb.WriteString("  Distribution:    ")
	for _, l := range classify.Levels {
		sb.WriteString(" " + colorize(levelColor(l), fmt.Sprintf("%s %d", l.Title(), sum.Distribution.Count(l))))
	}
	sb.WriteString("\n\nKey Insights\n")
	sb.WriteString(fmt.Sprintf("  Peak period:      %s\n", sum.PeakPeriod))
	sb.WriteString(fmt.Sprintf("  Risk pattern:     %s\n", sum.RiskPattern))
	sb.WriteString(fmt.Sprintf("  Thresholds:       %s\n", sum.Thresholds))
	sb.WriteString("\nRecommended Actions\n")
	for _, a := range sum.Actions {
		sb.WriteString("  • " + a + "\n")
	}
	return sb.String()
}

// RenderOverview renders the performance overview of a prediction series.
func RenderOverview(o analyzer.Overview) string {
	var sb strings.Builder
	sb.WriteString(heading("Performance Overview", 60))

	band := classify.Efficiency(o.Efficiency)
	trendColor := colorYellow
	if o.Positive {
		trendColor = colorGreen
	}

	sb.WriteString(fmt.Sprintf("  Efficiency:       %s\n", colorize(bandColor(band), fmt.Sprintf("%.2f%%", o.Efficiency))))
	sb.WriteString(fmt.Sprintf("  Growth:           %s\n", colorize(changeColor(o.Growth), fmt.Sprintf("%+.2f%%", o.Growth))))
	sb.WriteString(fmt.Sprintf("  Revenue:          $%.2fK\n", o.Revenue))
	if o.MarketShare != 0 {
		sb.WriteString(fmt.Sprintf("  Market share:     %.2f%%\n", o.MarketShare))
	}
	sb.WriteString(fmt.Sprintf("  Trend:            %s\n", colorize(trendColor, o.Trend)))
	sb.WriteString("\nRecommended Actions\n")
	for _, a := range o.Actions {
		sb.WriteString("  • " + a + "\n")
	}
	return sb.String()
}

// RenderSeries renders the charted fields of a prediction series, one
// row per day. Gaps render as Missing.
func RenderSeries(t dataset.PredictionType, s dataset.Series) string {
	if len(s) == 0 {
		return "No forecast data available.\n"
	}
	fields := seriesFields[t]

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s", "Date"))
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf(" %-16s", f))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", 12+17*len(fields)))
	sb.WriteString("\n")

	for _, p := range s {
		sb.WriteString(fmt.Sprintf("%-12s", p.Timestamp.Format("2006-01-02")))
		for _, f := range fields {
			cell := Missing
			if v, ok := p.Value(f); ok {
				cell = fmt.Sprintf("%.1f", v)
			}
			if t == dataset.PredictRisk && f == dataset.FieldScore && cell != Missing {
				cell = pad(levelColor(classify.Risk(p.Score())), cell, 16)
				sb.WriteString(" " + cell)
				continue
			}
			sb.WriteString(fmt.Sprintf(" %-16s", cell))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderPredictions renders the predictions section for one prediction
// type. With detail set, the flip card reverses and the daily series are
// included.
func RenderPredictions(snap *dataset.Snapshot, report *analyzer.Report, t dataset.PredictionType, detail bool) string {
	if snap == nil {
		return "No data loaded.\n"
	}
	if report == nil {
		report = analyzer.Analyze(snap)
	}

	sections := []string{}
	if cards := RenderFlipCards(snap.FlipCards, detail); cards != "" {
		sections = append(sections, cards)
	}
	sections = append(sections, heading(t.Label(), 60))

	if t == dataset.PredictRisk {
		sections = append(sections, RenderRiskSummary(report.Risk))
	} else if o, ok := report.Overviews[t]; ok {
		sections = append(sections, RenderOverview(o))
	} else {
		sections = append(sections, "No forecast data available.\n")
	}

	if detail {
		sections = append(sections, RenderSeries(t, snap.Prediction(t)))
	}
	return strings.Join(sections, "\n")
}
