package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tin-quest/internal/core"
)

// KeyMap defines the key bindings for both players and the game itself.
type KeyMap struct {
	P1Left   key.Binding
	P1Right  key.Binding
	P1Jump   key.Binding
	P1Attack key.Binding

	P2Left   key.Binding
	P2Right  key.Binding
	P2Jump   key.Binding
	P2Attack key.Binding

	Restart     key.Binding
	Multiplayer key.Binding
	Pause       key.Binding
	Screenshot  key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1Left, k.P1Right, k.P1Jump, k.P1Attack, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Left, k.P1Right, k.P1Jump, k.P1Attack},
		{k.P2Left, k.P2Right, k.P2Jump, k.P2Attack},
		{k.Restart, k.Multiplayer, k.Pause, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings: arrows and space for Tin,
// a/d/w/f for Sin.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		P1Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		P1Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		P1Jump:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "jump")),
		P1Attack: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "attack")),

		P2Left:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "Sin left")),
		P2Right:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "Sin right")),
		P2Jump:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "Sin jump")),
		P2Attack: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "Sin attack")),

		Restart:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Multiplayer: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "duel")),
		Pause:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Screenshot:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Back:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "menu")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to a player action.
// Game-wide actions are reported for Player1.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.PlayerID, core.Action) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.Player1, core.ActionQuit
	case key.Matches(msg, k.P1Left):
		return core.Player1, core.ActionLeft
	case key.Matches(msg, k.P1Right):
		return core.Player1, core.ActionRight
	case key.Matches(msg, k.P1Jump):
		return core.Player1, core.ActionJump
	case key.Matches(msg, k.P1Attack):
		return core.Player1, core.ActionAttack
	case key.Matches(msg, k.P2Left):
		return core.Player2, core.ActionLeft
	case key.Matches(msg, k.P2Right):
		return core.Player2, core.ActionRight
	case key.Matches(msg, k.P2Jump):
		return core.Player2, core.ActionJump
	case key.Matches(msg, k.P2Attack):
		return core.Player2, core.ActionAttack
	case key.Matches(msg, k.Restart):
		return core.Player1, core.ActionRestart
	case key.Matches(msg, k.Multiplayer):
		return core.Player1, core.ActionMultiplayer
	case key.Matches(msg, k.Pause):
		return core.Player1, core.ActionPause
	}
	return core.Player1, core.ActionNone
}
