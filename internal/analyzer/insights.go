package analyzer

import (
	"fmt"
	"math"

	"github.com/blackwell-systems/bizlens/internal/classify"
	"github.com/blackwell-systems/bizlens/internal/dataset"
)

// NotAvailable is the text shown when a value cannot be derived.
const NotAvailable = "N/A"

// PeakPeriod describes when the highest risk score occurred.
func PeakPeriod(s dataset.Series) string {
	p, ok := Peak(s, dataset.FieldScore)
	if !ok {
		return NotAvailable
	}
	return fmt.Sprintf("Highest risk of %.1f observed on %s", p.Score(), p.Timestamp.Format("Jan 2, 2006"))
}

// RiskPattern describes the volatility of the risk score.
func RiskPattern(s dataset.Series) string {
	v, ok := Volatility(s, dataset.FieldScore)
	if !ok {
		return "Insufficient data to detect a risk pattern"
	}
	switch classify.Volatility(v) {
	case classify.Volatile:
		return "Highly volatile risk pattern with significant fluctuations"
	case classify.Moderate:
		return "Moderately volatile risk pattern with regular variations"
	default:
		return "Stable risk pattern with minimal fluctuations"
	}
}

// ThresholdAnalysis describes how often the threshold was breached.
func ThresholdAnalysis(s dataset.Series) string {
	if len(s) == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%d threshold breaches (%.1f%% of time period)", BreachCount(s), BreachShare(s))
}

// SummarizeRisk derives the full risk analysis of a risk series.
func SummarizeRisk(s dataset.Series) RiskSummary {
	sum := RiskSummary{
		Breaches:     BreachCount(s),
		BreachShare:  BreachShare(s),
		Distribution: RiskDistribution(s),
		Pattern:      classify.Undetected,
		PeakPeriod:   PeakPeriod(s),
		RiskPattern:  RiskPattern(s),
		Thresholds:   ThresholdAnalysis(s),
	}
	sum.Average, sum.HasAverage = Average(s, dataset.FieldScore)
	sum.Volatility, sum.HasVolatility = Volatility(s, dataset.FieldScore)
	if sum.HasVolatility {
		sum.Pattern = classify.Volatility(sum.Volatility)
	}
	for action := range RiskActions(s) {
		sum.Actions = append(sum.Actions, action)
	}
	return sum
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SummarizePrediction derives the performance overview of a prediction
// series. Missing fields count as zero.
func SummarizePrediction(t dataset.PredictionType, s dataset.Series) Overview {
	o := Overview{Actions: PredictionActions(t)}
	o.Positive = Trend(s)
	if o.Positive {
		o.Trend = "Positive growth trend detected"
	} else {
		o.Trend = "Market fluctuation observed"
	}
	if len(s) == 0 {
		return o
	}

	latest, earliest := s[len(s)-1].Values, s[0].Values
	o.Efficiency = round2(latest[dataset.FieldEfficiency])
	o.Growth = round2(latest[dataset.FieldGrowth] - earliest[dataset.FieldGrowth])
	o.Revenue = round2(latest[dataset.FieldRevenue])
	o.MarketShare = round2(latest[dataset.FieldMarketShare])
	return o
}
