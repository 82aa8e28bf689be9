package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetFlags restores every package-level flag variable, since RootCmd is
// shared between tests.
func resetFlags(t *testing.T) {
	t.Helper()
	configPath = ""
	uploadFile = ""
	seedFlag = 0
	verbose = false
	predictionType = "risk"
	predictionDetail = false
	watchDir = ""
	watchSchedule = ""
	watchSection = sectionDashboard

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const fastConfig = `
refresh:
  delay: 10ms
  seed: 42
log:
  level: error
`

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)

	buf := new(bytes.Buffer)
	RootCmd.SetOut(buf)
	RootCmd.SetErr(buf)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})

	err := RootCmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	if RootCmd.Use != "bizlens" {
		t.Errorf("expected Use to be 'bizlens', got '%s'", RootCmd.Use)
	}
	if RootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if RootCmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, cmd := range RootCmd.Commands() {
		found[cmd.Use] = true
	}

	for _, expected := range []string{"dashboard", "analytics", "predictions", "watch"} {
		if !found[expected] {
			t.Errorf("expected command '%s' to be registered", expected)
		}
	}
}

func TestRootCommandHasPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "file", "seed", "verbose"} {
		flag := RootCmd.PersistentFlags().Lookup(name)
		if flag == nil {
			t.Errorf("expected --%s flag to be registered", name)
			continue
		}
		if flag.Usage == "" {
			t.Errorf("expected --%s flag to have usage text", name)
		}
	}
}

func TestRootCommand_DefaultsToDashboard(t *testing.T) {
	out, err := executeCommand(t, "--seed", "7")
	if err != nil {
		t.Fatalf("bizlens failed: %v", err)
	}
	for _, want := range []string{sampleDataNotice, "Key Metrics", "$125,000", "Operations Optimization"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "log:\n  level: loud\n")
	_, err := executeCommand(t, "dashboard", "--config", path)
	if err == nil || !strings.Contains(err.Error(), "failed to load config") {
		t.Errorf("expected config error, got %v", err)
	}
}
