package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tin-quest/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		player core.PlayerID
		action core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.Player1, core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.Player1, core.ActionRight},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.Player1, core.ActionJump},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.Player1, core.ActionAttack},
		{"a", runeKey('a'), core.Player2, core.ActionLeft},
		{"d", runeKey('d'), core.Player2, core.ActionRight},
		{"w", runeKey('w'), core.Player2, core.ActionJump},
		{"f", runeKey('f'), core.Player2, core.ActionAttack},
		{"r", runeKey('r'), core.Player1, core.ActionRestart},
		{"m", runeKey('m'), core.Player1, core.ActionMultiplayer},
		{"p", runeKey('p'), core.Player1, core.ActionPause},
		{"q", runeKey('q'), core.Player1, core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.Player1, core.ActionQuit},
		{"unbound", runeKey('z'), core.Player1, core.ActionNone},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player, action := km.MapKey(tt.msg)
			if player != tt.player || action != tt.action {
				t.Errorf("MapKey() = (%v, %v), expected (%v, %v)", player, action, tt.player, tt.action)
			}
		})
	}
}
