package analyzer

import (
	"math"

	"github.com/blackwell-systems/bizlens/internal/classify"
	"github.com/blackwell-systems/bizlens/internal/dataset"
)

// TrendWindow is the number of trailing predicted values checked by Trend.
const TrendWindow = 3

// values returns the field values of s in order, skipping points without
// the field.
func values(s dataset.Series, f dataset.Field) []float64 {
	out := make([]float64, 0, len(s))
	for _, p := range s {
		if v, ok := p.Value(f); ok {
			out = append(out, v)
		}
	}
	return out
}

// Average returns the arithmetic mean of field over the points that carry
// it. ok is false when no point does.
func Average(s dataset.Series, f dataset.Field) (avg float64, ok bool) {
	vals := values(s, f)
	if len(vals) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals)), true
}

// Volatility returns the mean absolute change between consecutive values
// as a percentage of the average. ok is false with fewer than two values
// or a zero average.
func Volatility(s dataset.Series, f dataset.Field) (pct float64, ok bool) {
	vals := values(s, f)
	if len(vals) < 2 {
		return 0, false
	}
	avg, _ := Average(s, f)
	if avg == 0 || math.IsNaN(avg) || math.IsInf(avg, 0) {
		return 0, false
	}

	var changes float64
	for i := 1; i < len(vals); i++ {
		changes += math.Abs(vals[i] - vals[i-1])
	}
	meanChange := changes / float64(len(vals)-1)
	return meanChange * 100 / avg, true
}

// BreachCount returns the number of points whose score exceeds their
// threshold. Points without a score are skipped, as in RiskDistribution.
func BreachCount(s dataset.Series) int {
	n := 0
	for _, p := range s {
		score, ok := p.Value(dataset.FieldScore)
		if ok && score > p.Threshold() {
			n++
		}
	}
	return n
}

// BreachShare returns breaches as a percentage of the series length.
func BreachShare(s dataset.Series) float64 {
	if len(s) == 0 {
		return 0
	}
	return float64(BreachCount(s)) / float64(len(s)) * 100
}

// Distribute buckets every point carrying field with bucket.
func Distribute(s dataset.Series, f dataset.Field, bucket func(float64) classify.Level) Distribution {
	var d Distribution
	for _, v := range values(s, f) {
		switch bucket(v) {
		case classify.High:
			d.High++
		case classify.Medium:
			d.Medium++
		default:
			d.Low++
		}
	}
	return d
}

// RiskDistribution buckets risk scores with classify.Risk.
func RiskDistribution(s dataset.Series) Distribution {
	return Distribute(s, dataset.FieldScore, classify.Risk)
}

// Peak returns the first point reaching the maximum of field.
func Peak(s dataset.Series, f dataset.Field) (dataset.Point, bool) {
	var (
		peak  dataset.Point
		best  float64
		found bool
	)
	for _, p := range s {
		v, ok := p.Value(f)
		if !ok {
			continue
		}
		if !found || v > best {
			peak, best, found = p, v, true
		}
	}
	return peak, found
}

// StockoutHorizon returns floor(stock / demand) days. Items without demand
// never run out.
func StockoutHorizon(item dataset.InventoryItem) Horizon {
	if item.DailyDemand <= 0 {
		return Horizon{Unbounded: true}
	}
	stock := item.CurrentStock
	if stock < 0 {
		stock = 0
	}
	return Horizon{Days: stock / item.DailyDemand}
}

// ReorderQuantity returns the units needed to bring stock back up to the
// reorder point, never negative.
func ReorderQuantity(item dataset.InventoryItem) int {
	return max(item.ReorderPoint-item.CurrentStock, 0)
}

// ExcessUnits returns the units held above the maximum threshold.
func ExcessUnits(item dataset.InventoryItem) int {
	return max(item.CurrentStock-item.MaxThreshold, 0)
}

// NormalizationDays returns how many days of demand it takes to consume
// the excess stock. Items without demand never normalise.
func NormalizationDays(item dataset.InventoryItem) Horizon {
	excess := ExcessUnits(item)
	if excess == 0 {
		return Horizon{}
	}
	if item.DailyDemand <= 0 {
		return Horizon{Unbounded: true}
	}
	return Horizon{Days: (excess + item.DailyDemand - 1) / item.DailyDemand}
}

// Trend reports whether the last TrendWindow predicted values are
// non-decreasing. Missing predictions count as zero.
func Trend(s dataset.Series) bool {
	start := max(len(s)-TrendWindow, 0)
	tail := s[start:]
	for i := 1; i < len(tail); i++ {
		if tail[i].Values[dataset.FieldPredicted] < tail[i-1].Values[dataset.FieldPredicted] {
			return false
		}
	}
	return true
}
