// Package analyzer derives statistics, classifications and recommendations
// from dataset snapshots.
//
// Every function is pure and tolerates degenerate input: empty series,
// zero demand and zero averages produce sentinel values instead of
// panics or NaN.
package analyzer

import (
	"slices"

	"github.com/blackwell-systems/bizlens/internal/dataset"
)

// Analyze derives everything the dashboard renders from snap. Snapshots
// that already carry recommendations keep them; otherwise they are derived
// from the cost categories.
func Analyze(snap *dataset.Snapshot) *Report {
	r := &Report{Overviews: make(map[dataset.PredictionType]Overview)}
	if snap == nil {
		return r
	}

	r.Risk = SummarizeRisk(snap.Prediction(dataset.PredictRisk))

	r.Recommendations = snap.Recommendations
	if len(r.Recommendations) == 0 {
		r.Recommendations = slices.Collect(CostRecommendations(snap.CostCategories))
	}
	for _, c := range snap.CostCategories {
		r.Warnings = append(r.Warnings, ValidateCostCategory(c)...)
	}

	items := snap.Analytics.Inventory.Items
	r.Stock = PredictStock(items)
	r.InventoryGroups = InventoryActions(items)

	for _, t := range dataset.PredictionTypes {
		if t == dataset.PredictRisk {
			continue
		}
		if s := snap.Prediction(t); len(s) > 0 {
			r.Overviews[t] = SummarizePrediction(t, s)
		}
	}

	return r
}
