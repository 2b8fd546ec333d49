package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	var buf bytes.Buffer

	r := NewReporter(&buf)
	if _, ok := r.(*CIReporter); !ok {
		t.Fatalf("expected CIReporter, got %T", r)
	}

	r.Start(4)
	r.Update(3, "3 esercizi completati")
	r.Finish()

	if got := buf.String(); got != "[3/4] 3 esercizi completati\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestTerminalReporterWritesBar(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	var buf bytes.Buffer

	r := NewReporter(&buf)
	if _, ok := r.(*TerminalReporter); !ok {
		t.Fatalf("expected TerminalReporter, got %T", r)
	}

	r.Start(4)
	r.Update(2, "completati")
	r.Finish()

	out := buf.String()
	if !strings.Contains(out, "2/4") {
		t.Errorf("expected count 2/4 in output, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Finish should end the line")
	}
}
