package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDir_RespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() failed: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "bizlens") {
		t.Errorf("Dir() = %q", dir)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Refresh.Delay != 1500*time.Millisecond {
		t.Errorf("expected delay 1.5s, got %s", cfg.Refresh.Delay)
	}
	if len(cfg.Watch.Extensions) != 3 {
		t.Errorf("expected 3 extensions, got %v", cfg.Watch.Extensions)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Log.Level)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromPath_Missing(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Refresh.Delay != Default().Refresh.Delay {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadFromPath_MergesDefaults(t *testing.T) {
	path := writeConfig(t, `
refresh:
  delay: 250ms
  seed: 42
watch:
  dir: /srv/drop
  schedule: "*/5 * * * *"
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Refresh.Delay != 250*time.Millisecond {
		t.Errorf("delay = %s, want 250ms", cfg.Refresh.Delay)
	}
	if cfg.Refresh.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Refresh.Seed)
	}
	if cfg.Watch.Dir != "/srv/drop" {
		t.Errorf("dir = %q", cfg.Watch.Dir)
	}
	if len(cfg.Watch.Extensions) != 3 {
		t.Errorf("extensions should fall back to defaults, got %v", cfg.Watch.Extensions)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level should fall back to info, got %q", cfg.Log.Level)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative delay", "refresh:\n  delay: -1s\n"},
		{"bad extension", "watch:\n  extensions: [csv]\n"},
		{"bad schedule", "watch:\n  schedule: \"every tuesday\"\n"},
		{"bad level", "log:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromPath(writeConfig(t, tt.content))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadFromPath_Malformed(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "refresh: [unterminated"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("parse errors should not be reported as validation errors")
	}
}

func TestMerge_DoesNotAliasDefaults(t *testing.T) {
	defaults := Default()
	merged := Merge(&Config{}, defaults)
	merged.Watch.Extensions[0] = ".txt"

	if defaults.Watch.Extensions[0] != ".csv" {
		t.Error("Merge should copy default extensions")
	}
}

func TestLoad_UsesXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	if err := os.MkdirAll(filepath.Join(base, "bizlens"), 0755); err != nil {
		t.Fatal(err)
	}
	content := []byte("log:\n  level: debug\n")
	if err := os.WriteFile(filepath.Join(base, "bizlens", FileName), content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}
