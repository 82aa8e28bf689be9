package output

import (
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/bizlens/internal/analyzer"
	"github.com/blackwell-systems/bizlens/internal/dataset"
)

func seedSnapshot(t *testing.T) *dataset.Snapshot {
	t.Helper()
	return dataset.Seed(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), dataset.NewMockGenerator(1))
}

func assertContains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q\nGot:\n%s", w, got)
		}
	}
}

func TestRenderDashboard_Seed(t *testing.T) {
	plain(t)
	snap := seedSnapshot(t)

	got := RenderDashboard(snap, analyzer.Analyze(snap))

	assertContains(t, got,
		"Key Metrics",
		"$125,000", "↑ +12.5%", "↓ -2.4%",
		"Market Volatility", "75.0", "High", "Credit Risk",
		"Operations", "$50,000", "$55,000", "$3,000", "92.0%", "good", "fair",
		"Operations Optimization", "High impact", "$15,000",
		"• Implement automated inventory management",
	)
	if strings.Contains(got, "warning:") {
		t.Errorf("seed dashboard should carry no warnings\n%s", got)
	}
}

func TestRenderDashboard_Warnings(t *testing.T) {
	plain(t)
	snap := &dataset.Snapshot{
		CostCategories: []dataset.CostCategory{
			{Name: "Operations", CurrentCost: 100, PredictedReduction: 200, Efficiency: 80},
		},
	}

	got := RenderDashboard(snap, nil)
	assertContains(t, got, "warning: ", "No metrics available", "$200")
}

func TestRenderDashboard_Nil(t *testing.T) {
	if got := RenderDashboard(nil, nil); got != "No data loaded.\n" {
		t.Errorf("RenderDashboard(nil) = %q", got)
	}
}

func TestRenderFlipCards(t *testing.T) {
	plain(t)
	cards := seedSnapshot(t).FlipCards

	front := RenderFlipCards(cards, false)
	assertContains(t, front, "Risk Assessment", "75% risk", "AI-powered risk scoring")
	if strings.Contains(front, "Tip:") {
		t.Error("front side should not show tips")
	}

	back := RenderFlipCards(cards, true)
	assertContains(t, back, "Comprehensive analysis", "Tip: Implement automated risk monitoring")

	if RenderFlipCards(nil, false) != "" {
		t.Error("expected empty output for no cards")
	}
}

func TestRenderRecommendations_Empty(t *testing.T) {
	if got := RenderRecommendations(nil); got != "No recommendations.\n" {
		t.Errorf("RenderRecommendations(nil) = %q", got)
	}
}
