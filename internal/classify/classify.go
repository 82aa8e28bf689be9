// Package classify maps numeric scores to discrete tiers.
//
// Every threshold used for colouring and for text lives here so that a
// chart colour and the label printed next to it can never disagree.
// All functions are total: any float64, including NaN and values outside
// 0-100, produces a classification.
package classify

// Risk score boundaries. Lower bounds are inclusive and evaluated top-down.
const (
	RiskHighThreshold   = 70.0
	RiskMediumThreshold = 40.0

	// DefaultThreshold is the breach threshold for points that carry none.
	DefaultThreshold = 70.0
)

// Efficiency boundaries for cost category colouring.
const (
	EfficiencyGoodThreshold = 90.0
	EfficiencyFairThreshold = 70.0
)

// Impact boundaries: efficiency below ImpactHighBelow is high impact,
// below ImpactMediumBelow is medium impact.
const (
	ImpactHighBelow   = 85.0
	ImpactMediumBelow = 90.0
)

// Stock-out urgency in days remaining.
const (
	CriticalDays = 7
	WarningDays  = 14
)

// Volatility pattern boundaries in percent. Both are exclusive.
const (
	VolatilityHighAbove     = 20.0
	VolatilityModerateAbove = 10.0
)

// Level is a three-tier classification.
type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// Levels lists every level from highest to lowest.
var Levels = []Level{High, Medium, Low}

// Title returns the level with an upper-case first letter.
func (l Level) Title() string {
	switch l {
	case High:
		return "High"
	case Medium:
		return "Medium"
	default:
		return "Low"
	}
}

// Risk classifies a risk score. NaN compares false against every bound
// and therefore lands in Low.
func Risk(v float64) Level {
	if v >= RiskHighThreshold {
		return High
	}
	if v >= RiskMediumThreshold {
		return Medium
	}
	return Low
}

// Impact returns the savings impact of a cost category. It is the inverse
// of efficiency: the less efficient a category, the higher the impact.
func Impact(efficiency float64) Level {
	if efficiency < ImpactHighBelow {
		return High
	}
	if efficiency < ImpactMediumBelow {
		return Medium
	}
	return Low
}

// StockStatus is the inventory position of an item.
type StockStatus string

const (
	StockoutRisk StockStatus = "stockout-risk"
	Overstock    StockStatus = "overstock"
	Optimal      StockStatus = "optimal"
)

// Stock classifies a stock level against its thresholds. Stock at or below
// min is at risk even when min >= max.
func Stock(current, min, max float64) StockStatus {
	if current <= min {
		return StockoutRisk
	}
	if current >= max {
		return Overstock
	}
	return Optimal
}

// EfficiencyBand is the colour band of a cost category.
type EfficiencyBand string

const (
	Good EfficiencyBand = "good"
	Fair EfficiencyBand = "fair"
	Poor EfficiencyBand = "poor"
)

// Efficiency classifies an efficiency percentage.
func Efficiency(e float64) EfficiencyBand {
	if e >= EfficiencyGoodThreshold {
		return Good
	}
	if e >= EfficiencyFairThreshold {
		return Fair
	}
	return Poor
}

// UrgencyLevel describes how soon an item runs out.
type UrgencyLevel string

const (
	Critical UrgencyLevel = "critical"
	Warning  UrgencyLevel = "warning"
	Normal   UrgencyLevel = "normal"
)

// Urgency classifies days until stock-out. An unbounded horizon is Normal.
func Urgency(days int, unbounded bool) UrgencyLevel {
	if unbounded {
		return Normal
	}
	if days <= CriticalDays {
		return Critical
	}
	if days <= WarningDays {
		return Warning
	}
	return Normal
}

// Pattern describes how volatile a series is.
type Pattern string

const (
	Volatile   Pattern = "volatile"
	Moderate   Pattern = "moderate"
	Stable     Pattern = "stable"
	Undetected Pattern = "undetected"
)

// Volatility classifies a volatility percentage.
func Volatility(pct float64) Pattern {
	if pct > VolatilityHighAbove {
		return Volatile
	}
	if pct > VolatilityModerateAbove {
		return Moderate
	}
	return Stable
}
