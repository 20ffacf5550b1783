package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tin-quest/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.SetColored(1, 1, 'b', core.ColorRed)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	if lines[0] != "a  " {
		t.Errorf("first line = %q, expected %q", lines[0], "a  ")
	}
	if !strings.Contains(lines[1], "b") {
		t.Errorf("second line = %q, expected it to contain b", lines[1])
	}
}
