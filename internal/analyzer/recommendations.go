package analyzer

import (
	"fmt"
	"iter"
	"strings"

	"github.com/blackwell-systems/bizlens/internal/classify"
	"github.com/blackwell-systems/bizlens/internal/dataset"
	"github.com/blackwell-systems/bizlens/internal/notify"
)

// Thresholds for the risk action rules.
const (
	ActionAverageAbove    = 60.0
	ActionBreachesAbove   = 5
	ActionVolatilityAbove = 15.0
)

// CostRecommendations yields one recommendation per category, in input
// order. The impact tier is the inverse of the category's efficiency and
// the savings are the predicted reduction, unchanged.
func CostRecommendations(categories []dataset.CostCategory) iter.Seq[dataset.CostRecommendation] {
	return func(yield func(dataset.CostRecommendation) bool) {
		for _, c := range categories {
			if !yield(costRecommendation(c)) {
				return
			}
		}
	}
}

func costRecommendation(c dataset.CostCategory) dataset.CostRecommendation {
	name := strings.ToLower(c.Name)
	return dataset.CostRecommendation{
		Category:         fmt.Sprintf("%s Optimization", c.Name),
		Impact:           classify.Impact(c.Efficiency),
		PotentialSavings: c.PredictedReduction,
		Description:      fmt.Sprintf("Optimize %s processes for better efficiency", name),
		ActionItems: []string{
			fmt.Sprintf("Implement automated %s management", name),
			fmt.Sprintf("Optimize resource allocation in %s", name),
			fmt.Sprintf("Reduce operational costs in %s", name),
		},
	}
}

// ValidateCostCategory checks a category for implausible savings figures.
// Returns a list of warnings; the category is never rejected.
func ValidateCostCategory(c dataset.CostCategory) []string {
	var warnings []string

	if c.PredictedReduction < 0 {
		warnings = append(warnings,
			fmt.Sprintf("%s: negative predicted reduction (%.2f)", c.Name, c.PredictedReduction))
	}
	if c.PredictedReduction > c.CurrentCost {
		warnings = append(warnings,
			fmt.Sprintf("%s: predicted reduction %.2f exceeds current cost %.2f",
				c.Name, c.PredictedReduction, c.CurrentCost))
	}
	if c.Efficiency < 0 || c.Efficiency > 100 {
		warnings = append(warnings,
			fmt.Sprintf("%s: efficiency %.1f outside 0-100", c.Name, c.Efficiency))
	}

	return warnings
}

// RiskActions yields the recommended actions for a risk series. At least
// one action is always produced.
func RiskActions(s dataset.Series) iter.Seq[string] {
	return func(yield func(string) bool) {
		emitted := false

		if avg, ok := Average(s, dataset.FieldScore); ok && avg > ActionAverageAbove {
			emitted = true
			if !yield("Implement immediate risk mitigation strategies to reduce overall risk exposure") {
				return
			}
		}
		if BreachCount(s) > ActionBreachesAbove {
			emitted = true
			if !yield("Review and adjust risk thresholds based on recent breach patterns") {
				return
			}
		}
		if v, ok := Volatility(s, dataset.FieldScore); ok && v > ActionVolatilityAbove {
			emitted = true
			if !yield("Develop stabilization measures to reduce risk volatility") {
				return
			}
		}

		if !emitted {
			yield("Continue monitoring current risk levels and maintain existing controls")
		}
	}
}

// InventoryActions returns the action groups for the current stock
// positions. A group is present only when at least one item needs it.
func InventoryActions(items []dataset.InventoryItem) []ActionGroup {
	var stockout, overstock bool
	for _, item := range items {
		switch item.Status() {
		case classify.StockoutRisk:
			stockout = true
		case classify.Overstock:
			overstock = true
		}
	}

	var groups []ActionGroup
	if stockout {
		groups = append(groups, ActionGroup{
			Title: "Stock-out Prevention",
			Actions: []string{
				"Place immediate orders for high-risk items",
				"Review and adjust reorder points",
				"Consider expedited shipping options",
			},
		})
	}
	if overstock {
		groups = append(groups, ActionGroup{
			Title: "Overstock Management",
			Actions: []string{
				"Consider promotional activities",
				"Review storage costs",
				"Adjust future order quantities",
			},
		})
	}
	return groups
}

// PredictionActions returns the standing recommendations for a
// prediction view.
func PredictionActions(t dataset.PredictionType) []string {
	focus := "expansion plans"
	if t == dataset.PredictPricing {
		focus = "pricing strategy"
	}
	return []string{
		fmt.Sprintf("Optimize %s based on market trends", focus),
		"Monitor competitor activities and adjust strategies accordingly",
		"Focus on high-growth market segments",
	}
}

// PredictStock projects the stock-out horizon of every item.
func PredictStock(items []dataset.InventoryItem) []StockPrediction {
	out := make([]StockPrediction, 0, len(items))
	for _, item := range items {
		h := StockoutHorizon(item)
		out = append(out, StockPrediction{
			Item:      item,
			Status:    item.Status(),
			Horizon:   h,
			Urgency:   h.Urgency(),
			Reorder:   ReorderQuantity(item),
			Excess:    ExcessUnits(item),
			Normalize: NormalizationDays(item),
		})
	}
	return out
}

// StockoutAlerts returns an error notification for every item projected
// to run out within classify.CriticalDays.
func StockoutAlerts(items []dataset.InventoryItem) []notify.Notification {
	var alerts []notify.Notification
	for _, item := range items {
		h := StockoutHorizon(item)
		if h.Unbounded || h.Days > classify.CriticalDays {
			continue
		}
		alerts = append(alerts, notify.New(notify.Error,
			fmt.Sprintf("Critical: %s will stock out in %d days!", item.Name, h.Days)))
	}
	return alerts
}
