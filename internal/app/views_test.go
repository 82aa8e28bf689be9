package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/bizlens/internal/dataset"
	"github.com/blackwell-systems/bizlens/internal/state"
)

func TestDashboard_Upload(t *testing.T) {
	cfg := writeConfig(t, fastConfig)
	file := filepath.Join(t.TempDir(), "q2-sales.csv")
	if err := os.WriteFile(file, []byte("month,revenue\n2024-04,125000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "dashboard", "--config", cfg, "--file", file)
	if err != nil {
		t.Fatalf("dashboard --file failed: %v", err)
	}

	for _, want := range []string{
		"✓ " + state.UploadMessage, analysisMessage + "...", "Analyzed q2-sales.csv (refresh 1)",
		"Key Metrics", "Cost Optimization",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, sampleDataNotice) {
		t.Error("sample data notice shown after an upload")
	}
}

func TestDashboard_MissingUpload(t *testing.T) {
	_, err := executeCommand(t, "dashboard", "--file", filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil || !strings.Contains(err.Error(), "failed to read upload") {
		t.Errorf("expected upload error, got %v", err)
	}
}

func TestAnalytics(t *testing.T) {
	out, err := executeCommand(t, "analytics", "--seed", "3")
	if err != nil {
		t.Fatalf("analytics failed: %v", err)
	}
	for _, want := range []string{"Revenue Breakdown", "Fraud Detection", "Product B", "Stock-out Prevention"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPredictions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"default risk", []string{"predictions"}, []string{"Quick Analysis", "Key Insights", "Recommended Actions"}},
		{"revenue detail", []string{"predictions", "--type", "revenue", "--detail"}, []string{"Revenue Prediction", "Performance Overview", "actual", "Tip:"}},
		{"pricing", []string{"predictions", "-t", "pricing"}, []string{"Pricing Analysis", "Optimize pricing strategy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, append(tt.args, "--seed", "5")...)
			if err != nil {
				t.Fatalf("predictions failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q", want)
				}
			}
		})
	}
}

func TestPredictions_InvalidType(t *testing.T) {
	_, err := executeCommand(t, "predictions", "--type", "weather")
	if err == nil || !strings.Contains(err.Error(), `unknown prediction type "weather"`) {
		t.Errorf("expected invalid type error, got %v", err)
	}
}

func TestSectionRenderer(t *testing.T) {
	for _, section := range []string{sectionDashboard, sectionAnalytics, sectionPredictions} {
		if _, err := sectionRenderer(section, dataset.PredictRisk, false); err != nil {
			t.Errorf("sectionRenderer(%q) failed: %v", section, err)
		}
	}
	if _, err := sectionRenderer("charts", dataset.PredictRisk, false); err == nil {
		t.Error("expected error for unknown section")
	}
}
