package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		verbose   bool
		wantDebug bool
		wantInfo  bool
	}{
		{"info", "info", false, false, true},
		{"warn hides info", "warn", false, false, false},
		{"verbose overrides", "warn", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := NewWithWriter(&buf, tt.level, tt.verbose)
			if err != nil {
				t.Fatalf("NewWithWriter failed: %v", err)
			}
			log.Debugw("debug line", "k", 1)
			log.Infow("info line", "k", 2)
			_ = log.Sync()

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}

func TestNewWithWriter_Keyvals(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "info", false)
	if err != nil {
		t.Fatal(err)
	}
	log.Infow("refresh complete", "ticket", 3)
	if !strings.Contains(buf.String(), `"ticket": 3`) {
		t.Errorf("expected structured field in %q", buf.String())
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("shouty", false); err == nil {
		t.Error("expected error for invalid level")
	}
}
