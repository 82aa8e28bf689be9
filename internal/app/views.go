package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/bizlens/internal/analyzer"
	"github.com/blackwell-systems/bizlens/internal/dataset"
	"github.com/blackwell-systems/bizlens/internal/output"
	"github.com/blackwell-systems/bizlens/internal/state"
	"github.com/blackwell-systems/bizlens/internal/watcher"
)

// sourceCLI marks uploads made with --file.
const sourceCLI = "cli"

// sampleDataNotice is printed while the seed snapshot is shown.
const sampleDataNotice = "Showing sample data. Pass --file to analyze an upload."

// Sections selectable in watch mode.
const (
	sectionDashboard   = "dashboard"
	sectionAnalytics   = "analytics"
	sectionPredictions = "predictions"
)

// renderFunc renders one section of a snapshot.
type renderFunc func(snap *dataset.Snapshot, report *analyzer.Report) string

var (
	predictionType   string
	predictionDetail bool

	dashboardCmd = &cobra.Command{
		Use:   "dashboard",
		Short: "Show metrics, risks, cost optimization and recommendations",
		Example: `  bizlens dashboard
  bizlens dashboard --file q2-sales.xlsx`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}

	analyticsCmd = &cobra.Command{
		Use:   "analytics",
		Short: "Show revenue, channel, product, fraud and inventory analytics",
		Long: `Show the analytics section: revenue breakdown, channel and product
performance, monthly fraud incidents, and inventory with projected stock-out
dates. Items projected to run out within a week raise a critical alert when
an upload is analyzed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, output.RenderAnalytics)
		},
	}

	predictionsCmd = &cobra.Command{
		Use:   "predictions",
		Short: "Show a forecast series with its analysis",
		Long: `Show one of the forecast series. The risk forecast includes a quick
analysis (average, threshold breaches, volatility, level distribution) with
key insights and recommended actions. The other forecasts show a
performance overview.

Prediction types: risk, revenue, market, pricing, expansion`,
		Example: `  bizlens predictions
  bizlens predictions --type pricing
  bizlens predictions --type risk --detail`,
		Args: cobra.NoArgs,
		RunE: runPredictions,
	}
)

func init() {
	predictionsCmd.Flags().StringVarP(&predictionType, "type", "t", string(dataset.PredictRisk), "prediction type: "+predictionTypeList())
	predictionsCmd.Flags().BoolVar(&predictionDetail, "detail", false, "show card details and the daily series")
}

func predictionTypeList() string {
	names := make([]string, len(dataset.PredictionTypes))
	for i, t := range dataset.PredictionTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func parsePredictionType(s string) (dataset.PredictionType, error) {
	t, ok := dataset.ParsePredictionType(s)
	if !ok {
		return "", fmt.Errorf("unknown prediction type %q (valid: %s)", s, predictionTypeList())
	}
	return t, nil
}

func predictionsRenderer(t dataset.PredictionType, detail bool) renderFunc {
	return func(snap *dataset.Snapshot, report *analyzer.Report) string {
		return output.RenderPredictions(snap, report, t, detail)
	}
}

// sectionRenderer resolves a section name to its renderer.
func sectionRenderer(section string, t dataset.PredictionType, detail bool) (renderFunc, error) {
	switch section {
	case sectionDashboard:
		return output.RenderDashboard, nil
	case sectionAnalytics:
		return output.RenderAnalytics, nil
	case sectionPredictions:
		return predictionsRenderer(t, detail), nil
	default:
		return nil, fmt.Errorf("unknown section %q (valid: %s, %s, %s)",
			section, sectionDashboard, sectionAnalytics, sectionPredictions)
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return runView(cmd, output.RenderDashboard)
}

func runPredictions(cmd *cobra.Command, args []string) error {
	t, err := parsePredictionType(predictionType)
	if err != nil {
		return err
	}
	return runView(cmd, predictionsRenderer(t, predictionDetail))
}

// runView renders one section, after analyzing --file when it is set.
func runView(cmd *cobra.Command, render renderFunc) error {
	s, err := newSession(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer s.Close()

	snap := s.ctrl.Snapshot()
	var report *analyzer.Report

	if uploadFile != "" {
		u, err := watcher.BuildUpload(uploadFile, sourceCLI)
		if err != nil {
			return fmt.Errorf("failed to read upload: %w", err)
		}
		snap, report, err = s.upload(cmd.Context(), u)
		if err != nil {
			return err
		}
	}

	if s.ctrl.State() == state.Empty {
		fmt.Fprintln(s.out, sampleDataNotice)
		fmt.Fprintln(s.out)
	}
	fmt.Fprint(s.out, render(snap, report))
	return nil
}
