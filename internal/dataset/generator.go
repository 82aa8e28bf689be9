// Package dataset defines the business datasets rendered by bizlens and the
// generators that produce them.
//
// A Generator stands in for a real ingestion pipeline. The bundled
// MockGenerator draws every dataset from seeded random ranges; a real
// adapter only has to satisfy the same interface.
package dataset

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// HorizonDays is the length of every generated daily series.
const HorizonDays = 30

// Request describes a refresh.
type Request struct {
	Upload Upload
	// Base is the snapshot being replaced. Inventory thresholds are
	// carried over from it; nil falls back to the seed items.
	Base *Snapshot
	Now  time.Time
}

// Generator produces a complete snapshot for a refresh.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Snapshot, error)
}

// MockGenerator produces random datasets in the ranges the dashboard
// expects. It is safe for concurrent use.
type MockGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockGenerator returns a generator seeded with seed. The same seed
// always yields the same sequence of snapshots.
func NewMockGenerator(seed uint64) *MockGenerator {
	return &MockGenerator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Generate regenerates every dataset category.
func (g *MockGenerator) Generate(ctx context.Context, req Request) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to generate datasets: %w", err)
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	items := seedInventoryItems()
	if req.Base != nil && len(req.Base.Analytics.Inventory.Items) > 0 {
		items = req.Base.Analytics.Inventory.Items
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	snap := &Snapshot{
		GeneratedAt:    now,
		Metrics:        g.metrics(),
		Risks:          g.risks(),
		CostCategories: g.costCategories(),
		FlipCards:      seedFlipCards(),
		Predictions:    g.predictions(now),
		Analytics: Analytics{
			Revenue:  g.revenueBreakdown(),
			Channels: g.channels(),
			Fraud:    g.fraud(now),
			Products: g.products(),
			Inventory: Inventory{
				Items:  g.restock(items),
				Trends: g.inventoryTrends(now),
			},
		},
	}
	return snap, nil
}

// between returns a value in [lo, lo+span).
func (g *MockGenerator) between(lo, span float64) float64 {
	return lo + g.rng.Float64()*span
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (g *MockGenerator) metrics() []MetricCard {
	revenue := int64(g.between(120000, 10000))
	customers := 1200 + int64(math.Round(g.rng.Float64()*100))
	risk := int(math.Round(g.between(70, 20)))
	efficiency := int(math.Round(g.between(85, 10)))

	return []MetricCard{
		{Title: "Revenue", Value: "$" + humanize.Comma(revenue), Change: round1(g.between(-10, 20)), Icon: IconDollarSign},
		{Title: "Customers", Value: humanize.Comma(customers), Change: round1(g.between(-5, 15)), Icon: IconUsers},
		{Title: "Risk Score", Value: fmt.Sprintf("%d/100", risk), Change: round1(g.between(-5, 10)), Icon: IconAlertTriangle},
		{Title: "Efficiency", Value: fmt.Sprintf("%d%%", efficiency), Change: round1(g.between(-2, 8)), Icon: IconTrendingUp},
	}
}

func (g *MockGenerator) risks() []RiskMetric {
	return []RiskMetric{
		NewRiskMetric("Market Volatility", g.between(55, 30)),
		NewRiskMetric("Operational Risk", g.between(35, 30)),
		NewRiskMetric("Credit Risk", g.between(20, 30)),
		NewRiskMetric("Compliance Risk", g.between(40, 30)),
	}
}

func (g *MockGenerator) costCategories() []CostCategory {
	return []CostCategory{
		{
			Name:               "Operations",
			CurrentCost:        g.between(45000, 10000),
			PreviousCost:       g.between(50000, 10000),
			PredictedReduction: g.between(2000, 2000),
			Efficiency:         g.between(85, 10),
		},
		{
			Name:               "Marketing",
			CurrentCost:        g.between(25000, 10000),
			PreviousCost:       g.between(28000, 10000),
			PredictedReduction: g.between(1500, 1500),
			Efficiency:         g.between(80, 10),
		},
		{
			Name:               "Technology",
			CurrentCost:        g.between(20000, 10000),
			PreviousCost:       g.between(22000, 10000),
			PredictedReduction: g.between(1000, 1000),
			Efficiency:         g.between(82, 10),
		},
	}
}

func (g *MockGenerator) predictions(now time.Time) map[PredictionType]Series {
	return map[PredictionType]Series{
		PredictRisk:      g.riskSeries(now),
		PredictRevenue:   g.revenueSeries(now),
		PredictMarket:    g.marketSeries(now),
		PredictPricing:   g.pricingSeries(now),
		PredictExpansion: g.expansionSeries(now),
	}
}

// daily builds a HorizonDays-long series starting at now.
func (g *MockGenerator) daily(now time.Time, values func(i int) map[Field]float64) Series {
	s := make(Series, 0, HorizonDays)
	for i := 0; i < HorizonDays; i++ {
		s = append(s, Point{Timestamp: now.AddDate(0, 0, i), Values: values(i)})
	}
	return s
}

func (g *MockGenerator) riskSeries(now time.Time) Series {
	return g.daily(now, func(int) map[Field]float64 {
		return map[Field]float64{
			FieldScore:     g.between(50, 30),
			FieldThreshold: 70,
		}
	})
}

func (g *MockGenerator) revenueSeries(now time.Time) Series {
	return g.daily(now, func(i int) map[Field]float64 {
		v := map[Field]float64{
			FieldPredicted:  g.between(52000, 12000),
			FieldEfficiency: g.between(85, 10),
			FieldGrowth:     g.between(5, 3),
			FieldRevenue:    g.between(100, 50),
		}
		// Actuals exist only for the first half of the horizon.
		if i < HorizonDays/2 {
			v[FieldActual] = g.between(50000, 10000)
		}
		return v
	})
}

func (g *MockGenerator) marketSeries(now time.Time) Series {
	return g.daily(now, func(int) map[Field]float64 {
		return map[Field]float64{
			FieldMarketShare:     g.between(25, 10),
			FieldCompetitorShare: g.between(20, 8),
			FieldEfficiency:      g.between(80, 15),
			FieldGrowth:          g.between(4, 4),
			FieldRevenue:         g.between(90, 60),
		}
	})
}

func (g *MockGenerator) pricingSeries(now time.Time) Series {
	return g.daily(now, func(int) map[Field]float64 {
		return map[Field]float64{
			FieldPricing:        g.between(100, 20),
			FieldSuggestedPrice: g.between(110, 15),
			FieldEfficiency:     g.between(82, 12),
			FieldGrowth:         g.between(3, 5),
			FieldRevenue:        g.between(95, 55),
		}
	})
}

func (g *MockGenerator) expansionSeries(now time.Time) Series {
	return g.daily(now, func(int) map[Field]float64 {
		return map[Field]float64{
			FieldExpansionScore:  g.between(60, 25),
			FieldMarketPotential: g.between(70, 20),
			FieldEfficiency:      g.between(75, 20),
			FieldGrowth:          g.between(6, 4),
			FieldRevenue:         g.between(85, 65),
		}
	})
}

func (g *MockGenerator) revenueBreakdown() []RevenueSlice {
	return []RevenueSlice{
		{Name: "Product Sales", Value: g.between(50000, 20000), Color: "#2563eb"},
		{Name: "Services", Value: g.between(30000, 15000), Color: "#16a34a"},
		{Name: "Subscriptions", Value: g.between(25000, 10000), Color: "#eab308"},
		{Name: "Other", Value: g.between(10000, 5000), Color: "#64748b"},
	}
}

func (g *MockGenerator) channels() []ChannelPerformance {
	return []ChannelPerformance{
		{Name: "Online", Current: g.between(45000, 10000), Previous: g.between(40000, 10000)},
		{Name: "Retail", Current: g.between(35000, 8000), Previous: g.between(32000, 8000)},
		{Name: "Partners", Current: g.between(25000, 6000), Previous: g.between(22000, 6000)},
	}
}

func (g *MockGenerator) fraud(now time.Time) []FraudPoint {
	points := make([]FraudPoint, 0, 12)
	for m := 1; m <= 12; m++ {
		points = append(points, FraudPoint{
			Month:     fmt.Sprintf("%d-%02d", now.Year(), m),
			Incidents: g.rng.IntN(20),
			RiskScore: g.between(40, 30),
		})
	}
	return points
}

func (g *MockGenerator) products() []ProductPerformance {
	return []ProductPerformance{
		{Name: "Product A", Sales: g.between(1200, 300), Growth: g.between(15, 10)},
		{Name: "Product B", Sales: g.between(800, 200), Growth: g.between(12, 8)},
		{Name: "Product C", Sales: g.between(600, 150), Growth: g.between(8, 6)},
	}
}

// restock copies items with a new stock level drawn from [min, max).
func (g *MockGenerator) restock(items []InventoryItem) []InventoryItem {
	out := make([]InventoryItem, len(items))
	for i, item := range items {
		span := item.MaxThreshold - item.MinThreshold
		stock := item.MinThreshold
		if span > 0 {
			stock += int(math.Floor(g.rng.Float64() * float64(span)))
		}
		item.CurrentStock = stock
		out[i] = item
	}
	return out
}

func (g *MockGenerator) inventoryTrends(now time.Time) []InventoryTrend {
	trends := make([]InventoryTrend, 0, HorizonDays)
	for i := 0; i < HorizonDays; i++ {
		trends = append(trends, InventoryTrend{
			Timestamp: now.AddDate(0, 0, i),
			Stock:     g.between(300, 100),
			Demand:    g.between(250, 50),
			Predicted: g.between(280, 60),
		})
	}
	return trends
}
