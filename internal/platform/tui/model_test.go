package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/games/tin"
	"github.com/vovakirdan/tin-quest/internal/registry"
)

func newTestModel(t *testing.T) (Model, *tin.Game) {
	t.Helper()
	game := tin.New(registry.Deps{}, false)
	m := NewModel(game, Options{
		Config:      core.RuntimeConfig{ScreenW: 100, ScreenH: 31, TickRate: 60, Seed: 3},
		SnapshotDir: t.TempDir(),
	})
	m.Init()
	return m, game
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTicksGame(t *testing.T) {
	m, game := newTestModel(t)

	m = update(m, TickMsg{Loop: m.loop})
	m = update(m, TickMsg{Loop: m.loop + 1000})
	if got := game.Level().Ticks(); got != 1 {
		t.Errorf("Ticks() = %d, expected 1 (stale loops are ignored)", got)
	}
}

func TestModelMovesPlayer(t *testing.T) {
	m, game := newTestModel(t)
	player := game.Level().Player().Sprite()
	x := player.Rect.X

	m = update(m, tea.KeyMsg{Type: tea.KeyRight})
	for range 3 {
		m = update(m, TickMsg{Loop: m.loop})
	}
	if got := player.Rect.X; got != x+15 {
		t.Errorf("player x = %d, expected %d after three held ticks", got, x+15)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelScreenshot(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := filepath.Glob(filepath.Join(m.snapshotDir, "tin_*.png"))
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshot files = %v, err = %v", files, err)
	}
	if info, err := os.Stat(files[0]); err != nil || info.Size() == 0 {
		t.Errorf("screenshot is empty: %v", err)
	}
	if !strings.HasPrefix(m.status, "saved ") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	if !strings.Contains(view, "00:00") {
		t.Error("View() should show the survival time")
	}
	if lines := strings.Count(view, "\n"); lines != 30 {
		t.Errorf("View() has %d line breaks, expected 30", lines)
	}
}
