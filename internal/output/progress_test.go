package output

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinner_NonTTY(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Analyzing data")
	s.SetWriter(buf)

	s.Start()
	s.Start() // no-op while running
	time.Sleep(150 * time.Millisecond)
	s.StopWithMessage("done")

	if got := buf.String(); got != "Analyzing data...\ndone\n" {
		t.Errorf("spinner output = %q", got)
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("idle")
	s.SetWriter(buf)
	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("Stop before Start wrote %q", buf.String())
	}
}

func TestSpinner_Line(t *testing.T) {
	s := NewSpinner("Analyzing data").Expect(1500 * time.Millisecond)
	s.started = time.Now()
	if got := s.line(); !strings.HasPrefix(got, "Analyzing data (") || !strings.HasSuffix(got, "s remaining)") {
		t.Errorf("line() = %q", got)
	}

	s.started = time.Now().Add(-time.Hour)
	if got := s.line(); got != "Analyzing data (0s remaining)" {
		t.Errorf("line() after deadline = %q", got)
	}

	s.message = "Refreshing"
	s.expected = 0
	if got := s.line(); got != "Refreshing" {
		t.Errorf("line() without expectation = %q", got)
	}
}
