package dataset

import (
	"time"

	"github.com/blackwell-systems/bizlens/internal/classify"
)

// Seed returns the snapshot shown before any upload. Headline metrics,
// risks, cost categories, recommendations, flip cards and inventory items
// are fixed; the chart series come from g.
func Seed(now time.Time, g *MockGenerator) *Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return &Snapshot{
		GeneratedAt: now,
		Metrics: []MetricCard{
			{Title: "Revenue", Value: "$125,000", Change: 12.5, Icon: IconDollarSign},
			{Title: "Customers", Value: "1,240", Change: 8.2, Icon: IconUsers},
			{Title: "Risk Score", Value: "85/100", Change: -2.4, Icon: IconAlertTriangle},
			{Title: "Efficiency", Value: "94%", Change: 5.1, Icon: IconTrendingUp},
		},
		Risks: []RiskMetric{
			NewRiskMetric("Market Volatility", 75),
			NewRiskMetric("Operational Risk", 45),
			NewRiskMetric("Credit Risk", 30),
			NewRiskMetric("Compliance Risk", 60),
		},
		CostCategories: []CostCategory{
			{Name: "Operations", CurrentCost: 50000, PreviousCost: 55000, PredictedReduction: 3000, Efficiency: 92},
			{Name: "Marketing", CurrentCost: 30000, PreviousCost: 28000, PredictedReduction: 2000, Efficiency: 85},
			{Name: "Technology", CurrentCost: 25000, PreviousCost: 22000, PredictedReduction: 1500, Efficiency: 88},
		},
		Recommendations: []CostRecommendation{
			{
				Category:         "Operations Optimization",
				Impact:           classify.High,
				PotentialSavings: 15000,
				Description:      "Streamline operational processes through automation",
				ActionItems: []string{
					"Implement automated inventory management",
					"Optimize workforce scheduling",
					"Reduce manual data entry tasks",
				},
			},
			{
				Category:         "Marketing Efficiency",
				Impact:           classify.Medium,
				PotentialSavings: 8000,
				Description:      "Improve marketing ROI through targeted campaigns",
				ActionItems: []string{
					"Focus on high-performing channels",
					"Implement A/B testing",
					"Optimize ad spend allocation",
				},
			},
		},
		FlipCards:   seedFlipCards(),
		Predictions: g.predictions(now),
		Analytics: Analytics{
			Revenue:  g.revenueBreakdown(),
			Channels: g.channels(),
			Fraud:    g.fraud(now),
			Products: g.products(),
			Inventory: Inventory{
				Items:  seedInventoryItems(),
				Trends: g.inventoryTrends(now),
			},
		},
	}
}

func seedFlipCards() []FlipCard {
	return []FlipCard{
		{
			Title:          "Risk Assessment",
			FrontContent:   "AI-powered risk scoring and automated alert system for proactive risk management.",
			BackContent:    "Comprehensive analysis of potential risks and mitigation strategies.",
			Icon:           IconAlertTriangle,
			RiskPercentage: 75,
			Tip:            "Implement automated risk monitoring systems to reduce exposure by 30%",
		},
		{
			Title:          "Demand Forecasting",
			FrontContent:   "Machine learning algorithms analyzing historical data and market trends.",
			BackContent:    "Advanced predictive modeling for future market demand.",
			Icon:           IconLineChart,
			RiskPercentage: 45,
			Tip:            "Utilize historical data patterns to improve forecast accuracy by 25%",
		},
		{
			Title:          "Market Analysis",
			FrontContent:   "Real-time competitor tracking and market opportunity identification.",
			BackContent:    "Deep insights into market trends and competitive landscape.",
			Icon:           IconBarChart,
			RiskPercentage: 60,
			Tip:            "Diversify market presence to reduce dependency on primary segments",
		},
	}
}

func seedInventoryItems() []InventoryItem {
	return []InventoryItem{
		{ID: "1", Name: "Product A", CurrentStock: 150, MinThreshold: 100, MaxThreshold: 500, DailyDemand: 12, ReorderPoint: 120},
		{ID: "2", Name: "Product B", CurrentStock: 80, MinThreshold: 100, MaxThreshold: 400, DailyDemand: 8, ReorderPoint: 150},
		{ID: "3", Name: "Product C", CurrentStock: 600, MinThreshold: 150, MaxThreshold: 450, DailyDemand: 15, ReorderPoint: 200},
		{ID: "4", Name: "Product D", CurrentStock: 90, MinThreshold: 120, MaxThreshold: 400, DailyDemand: 10, ReorderPoint: 180},
	}
}
