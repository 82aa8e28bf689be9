package analyzer

import (
	"github.com/blackwell-systems/bizlens/internal/classify"
	"github.com/blackwell-systems/bizlens/internal/dataset"
)

// Distribution counts series points per level. Only points carrying the
// bucketed field are counted, so Total equals the series length only for
// series without gaps.
type Distribution struct {
	High   int
	Medium int
	Low    int
}

// Total returns the number of classified points.
func (d Distribution) Total() int {
	return d.High + d.Medium + d.Low
}

// Count returns the count for a single level.
func (d Distribution) Count(l classify.Level) int {
	switch l {
	case classify.High:
		return d.High
	case classify.Medium:
		return d.Medium
	default:
		return d.Low
	}
}

// Horizon is the projected number of days until stock runs out.
// Unbounded is set when the item has no demand; Days is then zero.
type Horizon struct {
	Days      int
	Unbounded bool
}

// Urgency classifies the horizon.
func (h Horizon) Urgency() classify.UrgencyLevel {
	return classify.Urgency(h.Days, h.Unbounded)
}

// RiskSummary is the quick analysis shown under the risk graph.
type RiskSummary struct {
	Average       float64
	HasAverage    bool
	Breaches      int
	BreachShare   float64 // percent of the period
	Volatility    float64 // percent
	HasVolatility bool
	Pattern       classify.Pattern
	Distribution  Distribution
	PeakPeriod    string
	RiskPattern   string
	Thresholds    string
	Actions       []string
}

// Overview summarises a prediction series.
type Overview struct {
	Efficiency  float64
	Growth      float64 // latest growth minus earliest growth
	Revenue     float64 // thousands
	MarketShare float64
	Trend       string
	Positive    bool
	Actions     []string
}

// StockPrediction is one inventory item with its projected stock-out.
type StockPrediction struct {
	Item      dataset.InventoryItem
	Status    classify.StockStatus
	Horizon   Horizon
	Urgency   classify.UrgencyLevel
	Reorder   int // units to order to reach the reorder point
	Excess    int // units above the maximum threshold
	Normalize Horizon
}

// ActionGroup is a titled list of recommended actions.
type ActionGroup struct {
	Title   string
	Actions []string
}

// Report holds every value derived from one snapshot.
type Report struct {
	Risk            RiskSummary
	Recommendations []dataset.CostRecommendation
	Warnings        []string
	Stock           []StockPrediction
	InventoryGroups []ActionGroup
	Overviews       map[dataset.PredictionType]Overview
}
