package dataset

import (
	"time"

	"github.com/blackwell-systems/bizlens/internal/classify"
)

// Field names a numeric value carried by a series point.
type Field string

const (
	FieldScore           Field = "score"
	FieldThreshold       Field = "threshold"
	FieldActual          Field = "actual"
	FieldPredicted       Field = "predicted"
	FieldMarketShare     Field = "marketShare"
	FieldCompetitorShare Field = "competitorShare"
	FieldPricing         Field = "pricing"
	FieldSuggestedPrice  Field = "suggestedPrice"
	FieldExpansionScore  Field = "expansionScore"
	FieldMarketPotential Field = "marketPotential"
	FieldEfficiency      Field = "efficiency"
	FieldGrowth          Field = "growth"
	FieldRevenue         Field = "revenue"
)

// Point is one entry of a chronological series. A field missing from
// Values is a gap, not a zero.
type Point struct {
	Timestamp time.Time
	Values    map[Field]float64
}

// Value returns the field value and whether the point carries it.
func (p Point) Value(f Field) (float64, bool) {
	v, ok := p.Values[f]
	return v, ok
}

// Score returns the point's score, 0 when absent.
func (p Point) Score() float64 {
	return p.Values[FieldScore]
}

// Threshold returns the point's breach threshold, falling back to
// classify.DefaultThreshold.
func (p Point) Threshold() float64 {
	if v, ok := p.Values[FieldThreshold]; ok {
		return v
	}
	return classify.DefaultThreshold
}

// Series is ordered oldest first. Insertion order is time order.
type Series []Point

// PredictionType selects one of the forecast series.
type PredictionType string

const (
	PredictRisk      PredictionType = "risk"
	PredictRevenue   PredictionType = "revenue"
	PredictMarket    PredictionType = "market"
	PredictPricing   PredictionType = "pricing"
	PredictExpansion PredictionType = "expansion"
)

// PredictionTypes lists every prediction type in menu order.
var PredictionTypes = []PredictionType{
	PredictRisk, PredictRevenue, PredictMarket, PredictPricing, PredictExpansion,
}

// ParsePredictionType validates a user-supplied prediction type.
func ParsePredictionType(s string) (PredictionType, bool) {
	for _, t := range PredictionTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Label returns the menu label for the prediction type.
func (t PredictionType) Label() string {
	switch t {
	case PredictRisk:
		return "Risk Assessment"
	case PredictRevenue:
		return "Revenue Prediction"
	case PredictMarket:
		return "Market Demand"
	case PredictPricing:
		return "Pricing Analysis"
	case PredictExpansion:
		return "Expansion Opportunities"
	default:
		return string(t)
	}
}

// Icon identifies a glyph. Renderers resolve it through a fixed table.
type Icon int

const (
	IconNone Icon = iota
	IconDollarSign
	IconUsers
	IconAlertTriangle
	IconTrendingUp
	IconLineChart
	IconBarChart
	IconPackage
	IconGlobe
)

// MetricCard is a headline KPI with its change versus last month.
type MetricCard struct {
	Title  string
	Value  string
	Change float64 // percent
	Icon   Icon
}

// RiskMetric is a named risk score. Status is always classify.Risk(Value);
// construct it through NewRiskMetric.
type RiskMetric struct {
	Category string
	Value    float64 // 0-100
	Status   classify.Level
}

// NewRiskMetric returns a RiskMetric with its status derived from value.
func NewRiskMetric(category string, value float64) RiskMetric {
	return RiskMetric{Category: category, Value: value, Status: classify.Risk(value)}
}

// CostCategory is a cost centre with its predicted reduction.
type CostCategory struct {
	Name               string
	CurrentCost        float64
	PreviousCost       float64
	PredictedReduction float64
	Efficiency         float64 // 0-100
}

// CostRecommendation is a cost-saving proposal derived from one category.
type CostRecommendation struct {
	Category         string
	Impact           classify.Level
	PotentialSavings float64
	Description      string
	ActionItems      []string
}

// FlipCard is an explanatory card on the predictions view.
type FlipCard struct {
	Title          string
	FrontContent   string
	BackContent    string
	Icon           Icon
	RiskPercentage float64
	Tip            string
}

// RevenueSlice is one segment of the revenue breakdown.
type RevenueSlice struct {
	Name  string
	Value float64
	Color string
}

// ChannelPerformance compares a sales channel across two periods.
type ChannelPerformance struct {
	Name     string
	Current  float64
	Previous float64
}

// ProductPerformance is sales volume and growth of a product.
type ProductPerformance struct {
	Name   string
	Sales  float64
	Growth float64 // percent
}

// FraudPoint is one month of fraud analytics.
type FraudPoint struct {
	Month     string // "2024-01"
	Incidents int
	RiskScore float64
}

// InventoryItem is a stocked product. MinThreshold < MaxThreshold is
// expected; DailyDemand of zero means the item never runs out.
type InventoryItem struct {
	ID           string
	Name         string
	CurrentStock int
	MinThreshold int
	MaxThreshold int
	DailyDemand  int
	ReorderPoint int
}

// Status classifies the item's stock level.
func (i InventoryItem) Status() classify.StockStatus {
	return classify.Stock(float64(i.CurrentStock), float64(i.MinThreshold), float64(i.MaxThreshold))
}

// InventoryTrend is one day of the inventory forecast.
type InventoryTrend struct {
	Timestamp time.Time
	Stock     float64
	Demand    float64
	Predicted float64
}

// Inventory groups items with their 30-day trend.
type Inventory struct {
	Items  []InventoryItem
	Trends []InventoryTrend
}

// Analytics groups the datasets of the analytics view.
type Analytics struct {
	Revenue   []RevenueSlice
	Channels  []ChannelPerformance
	Fraud     []FraudPoint
	Products  []ProductPerformance
	Inventory Inventory
}

// Upload is the opaque "file selected" signal. File contents are never
// read; only the name and size are kept for the notification history.
type Upload struct {
	Name   string
	Size   int64
	Source string // "cli", "watch", "schedule"
}

// Snapshot is the complete set of datasets rendered at one time. A new
// snapshot replaces the old one on refresh; snapshots are never mutated
// after they are published.
type Snapshot struct {
	RefreshID       string
	Generation      uint64 // 0 for seed data
	GeneratedAt     time.Time
	Upload          Upload // zero for seed data
	Metrics         []MetricCard
	Risks           []RiskMetric
	CostCategories  []CostCategory
	Recommendations []CostRecommendation
	FlipCards       []FlipCard
	Predictions     map[PredictionType]Series
	Analytics       Analytics
}

// Prediction returns the series for t, or nil.
func (s *Snapshot) Prediction(t PredictionType) Series {
	if s == nil {
		return nil
	}
	return s.Predictions[t]
}
