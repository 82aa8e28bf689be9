package app

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	uploadFile string
	seedFlag   uint64
	verbose    bool

	// RootCmd is the root command for bizlens
	RootCmd = &cobra.Command{
		Use:   "bizlens",
		Short: "Business analytics dashboard with simulated AI predictions",
		Long: `bizlens renders a business analytics dashboard in the terminal: headline
metrics, risk gauges, a cost heatmap, revenue analytics, inventory stock-out
predictions and five forecast series.

Uploads are simulated. Passing --file records the file's name and size,
waits for the analysis delay and replaces every dataset with freshly
generated values. File contents are never read.

Sections:
  • dashboard: metrics, risks, cost optimization and recommendations
  • analytics: revenue, channels, products, fraud and inventory
  • predictions: risk, revenue, market, pricing and expansion forecasts

Examples:
  # Show the dashboard with sample data
  bizlens

  # Analyze an upload
  bizlens dashboard --file q2-sales.xlsx

  # Inspect the revenue forecast day by day
  bizlens predictions --type revenue --detail

  # Refresh whenever a file lands in ~/drop
  bizlens watch --dir ~/drop`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDashboard,
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/bizlens/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&uploadFile, "file", "f", "", "simulate uploading this file before rendering")
	RootCmd.PersistentFlags().Uint64Var(&seedFlag, "seed", 0, "seed for generated data (default: config or clock)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(dashboardCmd)
	RootCmd.AddCommand(analyticsCmd)
	RootCmd.AddCommand(predictionsCmd)
	RootCmd.AddCommand(watchCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
