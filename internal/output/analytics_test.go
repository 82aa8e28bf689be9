package output

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/bizlens/internal/analyzer"
	"github.com/blackwell-systems/bizlens/internal/dataset"
)

func TestRenderInventory(t *testing.T) {
	plain(t)
	items := append(seedSnapshot(t).Analytics.Inventory.Items,
		dataset.InventoryItem{ID: "5", Name: "Product E", CurrentStock: 50, MinThreshold: 10, MaxThreshold: 100})

	got := RenderInventory(analyzer.PredictStock(items))

	for _, tt := range []struct {
		item string
		want []string
	}{
		{"Product B", []string{"stockout-risk", "10 days", "warning", "order 70 units"}},
		{"Product C", []string{"overstock", "150 excess, normal in 10 days"}},
		{"Product E", []string{"optimal", "never", "normal"}},
	} {
		line := lineWith(t, got, tt.item)
		assertContains(t, line, tt.want...)
	}
}

func lineWith(t *testing.T, out, substr string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	t.Fatalf("no line containing %q in\n%s", substr, out)
	return ""
}

func TestRenderRevenue(t *testing.T) {
	plain(t)
	got := RenderRevenue([]dataset.RevenueSlice{
		{Name: "Product Sales", Value: 75000},
		{Name: "Services", Value: 25000},
	})
	assertContains(t, got, "$75,000", "75.0%", "25.0%", "$100,000")

	zero := RenderRevenue([]dataset.RevenueSlice{{Name: "Other", Value: 0}})
	assertContains(t, zero, "0.0%")
}

func TestRenderChannels(t *testing.T) {
	plain(t)
	got := RenderChannels([]dataset.ChannelPerformance{
		{Name: "Online", Current: 55000, Previous: 50000},
		{Name: "Retail", Current: 45000, Previous: 50000},
		{Name: "New", Current: 1000},
	})
	assertContains(t, lineWith(t, got, "Online"), "↑ +10.0%")
	assertContains(t, lineWith(t, got, "Retail"), "↓ -10.0%")
	if !strings.HasSuffix(strings.TrimSpace(lineWith(t, got, "New")), Missing) {
		t.Errorf("channel without history should show %q", Missing)
	}
}

func TestRenderFraud(t *testing.T) {
	plain(t)
	got := RenderFraud([]dataset.FraudPoint{
		{Month: "2024-01", Incidents: 3, RiskScore: 72},
		{Month: "2024-02", Incidents: 0, RiskScore: 35},
	})
	assertContains(t, lineWith(t, got, "2024-01"), "72.0 (high)")
	assertContains(t, lineWith(t, got, "2024-02"), "35.0 (low)")
}

func TestRenderAnalytics_Seed(t *testing.T) {
	plain(t)
	got := RenderAnalytics(seedSnapshot(t), nil)
	assertContains(t, got,
		"Revenue Breakdown", "Channel Performance", "Product Performance",
		"Fraud Detection", "Inventory", "Stock-out Prevention", "Overstock Management",
	)
}

func TestRenderActionGroups_Empty(t *testing.T) {
	if got := RenderActionGroups(nil); got != "" {
		t.Errorf("RenderActionGroups(nil) = %q", got)
	}
}
