package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgress_NonInteractiveLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(4, &buf, false)

	p.Step()
	p.Step()

	out := buf.String()
	if !strings.Contains(out, "Progress:  25% (1/4)") {
		t.Errorf("missing 25%% line in %q", out)
	}
	if !strings.Contains(out, "Progress:  50% (2/4)") {
		t.Errorf("missing 50%% line in %q", out)
	}
	if strings.Contains(out, "\r") {
		t.Errorf("non-interactive output contains carriage return: %q", out)
	}
}

func TestProgress_InteractiveRedraw(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(2, &buf, true)

	p.Step()
	p.Clear()
	p.Draw()
	p.Step()
	p.Finish()

	out := buf.String()
	if !strings.Contains(out, "\r") {
		t.Errorf("interactive output missing carriage returns: %q", out)
	}
	if !strings.Contains(out, "(2/2)") {
		t.Errorf("missing final count in %q", out)
	}
	if !strings.HasSuffix(out, "\r\033[2K") {
		t.Errorf("Finish should clear the line, got %q", out)
	}
}

func TestProgress_Line(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(20, &buf, false)
	for i := 0; i < 9; i++ {
		p.Step()
	}
	if got := p.Line(); got != "Progress:  45% (9/20)" {
		t.Errorf("Line() = %q", got)
	}
}

func TestProgress_ZeroTotalDrawsNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(0, &buf, false)
	p.Draw()
	p.Step()
	if buf.Len() != 0 {
		t.Errorf("zero-total progress wrote %q", buf.String())
	}
}
