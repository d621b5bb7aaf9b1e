package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestProgressLifecycle(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(4)
	progress.Update(2)
	progress.Finish()

	out := buf.String()
	if !strings.Contains(out, "50.0%") {
		t.Errorf("output missing midpoint percentage:\n%s", out)
	}
	if !strings.Contains(out, "100.0%") {
		t.Errorf("output missing completion percentage:\n%s", out)
	}
	if !strings.Contains(out, "(4/4)") {
		t.Errorf("output missing final count:\n%s", out)
	}
}

func TestProgressZeroTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(0)
	progress.Update(0)

	if buf.Len() != 0 {
		t.Errorf("expected no output for zero total, got %q", buf.String())
	}
}

func TestProgressError(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(10)
	progress.Error(errors.New("read failed"))

	if !strings.Contains(buf.String(), "read failed") {
		t.Errorf("error output missing message:\n%s", buf.String())
	}
}
