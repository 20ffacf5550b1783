package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/multiplayer"
)

// OnlineMenuID is the menu entry that opens the online duel lobby.
const OnlineMenuID = "online"

// OnlineState is a step of the online duel flow.
type OnlineState int

const (
	OnlineStateChoose OnlineState = iota // host or join
	OnlineStateHostWaiting
	OnlineStateJoinEnterCode
	OnlineStateJoinWaiting
	OnlineStateInMatch
	OnlineStateMatchEnded
)

// OnlineModel walks one session through hosting or joining a duel and
// then plays it. Events arrive through the parent SessionModel.
type OnlineModel struct {
	state       OnlineState
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator
	keys        *KeyMapper
	screen      *core.Screen
	width       int
	height      int

	lobbyCode string
	codeInput string
	lastError string

	match *multiplayer.OnlineMatch
	side  core.PlayerID
	end   *multiplayer.MatchEndedEvent

	backToMenu bool
	quitting   bool
}

// NewOnlineModel creates the lobby screen for a session.
func NewOnlineModel(sessionID multiplayer.SessionID, coordinator *multiplayer.Coordinator, width, height int) OnlineModel {
	return OnlineModel{
		sessionID:   sessionID,
		coordinator: coordinator,
		keys:        NewKeyMapper(),
		screen:      core.NewScreen(width, playHeight(height)),
		width:       width,
		height:      height,
	}
}

// Init initializes the model.
func (m OnlineModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses, resizes and coordinator events.
func (m OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))

	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = msg.Code
		m.state = OnlineStateHostWaiting

	case multiplayer.LobbyErrorEvent:
		m.lastError = msg.Message
		switch m.state {
		case OnlineStateJoinWaiting:
			m.state = OnlineStateJoinEnterCode
		case OnlineStateHostWaiting:
			m.state = OnlineStateChoose
		}

	case multiplayer.MatchStartedEvent:
		m.match = msg.Match
		m.side = msg.Side
		m.lobbyCode = msg.Code
		m.lastError = ""
		m.state = OnlineStateInMatch

	case multiplayer.MatchEndedEvent:
		if msg.Reason == multiplayer.MatchEndReasonExpired {
			m.lastError = msg.Reason.String()
			m.state = OnlineStateChoose
			return m, nil
		}
		m.end = &msg
		m.state = OnlineStateMatchEnded
	}
	return m, nil
}

func (m OnlineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChoose:
		switch k {
		case "h", "1":
			m.lastError = ""
			m.coordinator.Send(multiplayer.CreateLobbyMsg{SessionID: m.sessionID})
		case "j", "2":
			m.lastError = ""
			m.codeInput = ""
			m.state = OnlineStateJoinEnterCode
		case "esc", "b":
			m.backToMenu = true
		case "q":
			m.quitting = true
			return m, tea.Quit
		}

	case OnlineStateHostWaiting, OnlineStateJoinWaiting:
		if k == "esc" {
			m.leave()
			m.state = OnlineStateChoose
		}

	case OnlineStateJoinEnterCode:
		m.editCode(k)

	case OnlineStateInMatch:
		if k == "esc" {
			m.leave()
			return m, nil
		}
		// Either key set moves the player's own character.
		if _, action := m.keys.MapKey(msg); multiplayer.Playable(action) {
			m.coordinator.Send(multiplayer.PlayerInputMsg{
				MatchID: m.match.ID(),
				Player:  m.side,
				Action:  action,
			})
		}

	case OnlineStateMatchEnded:
		switch k {
		case "esc", "b", "enter":
			m.backToMenu = true
		case "q":
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *OnlineModel) editCode(k string) {
	switch k {
	case "esc":
		m.state = OnlineStateChoose
	case "enter":
		if len(m.codeInput) == multiplayer.CodeLength {
			m.lastError = ""
			m.state = OnlineStateJoinWaiting
			m.coordinator.Send(multiplayer.JoinLobbyMsg{SessionID: m.sessionID, Code: m.codeInput})
		}
	case "backspace":
		if m.codeInput != "" {
			m.codeInput = m.codeInput[:len(m.codeInput)-1]
		}
	default:
		if len(k) == 1 && len(m.codeInput) < multiplayer.CodeLength {
			c := strings.ToUpper(k)[0]
			if (c >= 'A' && c <= 'Z') || (c >= '2' && c <= '7') {
				m.codeInput += string(c)
			}
		}
	}
}

// leave withdraws from whatever lobby or match the session is in.
func (m *OnlineModel) leave() {
	switch m.state {
	case OnlineStateHostWaiting:
		m.coordinator.Send(multiplayer.LeaveLobbyMsg{SessionID: m.sessionID, Code: m.lobbyCode})
	case OnlineStateInMatch:
		m.coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: m.sessionID, MatchID: m.match.ID()})
	}
}

var (
	onlineTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	onlineCodeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	onlineErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View renders the current step.
func (m OnlineModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	switch m.state {
	case OnlineStateInMatch, OnlineStateMatchEnded:
		return m.viewMatch()
	}

	var lines []string
	switch m.state {
	case OnlineStateChoose:
		lines = []string{
			onlineTitleStyle.Render("ONLINE DUEL"),
			"",
			"The host plays Tin, the guest plays Sin.",
			"",
			"[H] Host a duel",
			"[J] Join a duel",
			"",
			menuHintStyle.Render("Esc: Back  |  Q: Quit"),
		}
	case OnlineStateHostWaiting:
		lines = []string{
			onlineTitleStyle.Render("HOSTING DUEL"),
			"",
			"Share this code with your opponent:",
			"",
			onlineCodeStyle.Render("[ " + m.lobbyCode + " ]"),
			"",
			"Waiting for Sin to join...",
			"",
			menuHintStyle.Render("Esc: Cancel"),
		}
	case OnlineStateJoinEnterCode:
		code := m.codeInput
		if len(code) < multiplayer.CodeLength {
			code += "_" + strings.Repeat(" ", multiplayer.CodeLength-len(code)-1)
		}
		lines = []string{
			onlineTitleStyle.Render("JOIN DUEL"),
			"",
			"Enter the duel code:",
			"",
			onlineCodeStyle.Render("[ " + code + " ]"),
			"",
			menuHintStyle.Render("Enter: Connect  |  Esc: Back"),
		}
	case OnlineStateJoinWaiting:
		lines = []string{
			onlineTitleStyle.Render("CONNECTING"),
			"",
			"Joining duel " + m.codeInput + "...",
			"",
			menuHintStyle.Render("Esc: Cancel"),
		}
	}
	if m.lastError != "" {
		lines = append(lines, "", onlineErrStyle.Render("Error: "+m.lastError))
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m OnlineModel) viewMatch() string {
	m.match.Render(m.screen)

	footer := fmt.Sprintf("You are %s  |  duel %s  |  Esc: forfeit", multiplayer.SideName(m.side), m.lobbyCode)
	if m.end != nil {
		result := "You lost."
		switch {
		case m.end.Reason == multiplayer.MatchEndReasonError:
			result = m.end.Reason.String() + "."
		case m.end.Reason == multiplayer.MatchEndReasonDisconnect && m.end.Winner == m.side:
			result = "Opponent left. You won!"
		case m.end.Reason == multiplayer.MatchEndReasonDisconnect:
			result = "You forfeited."
		case m.end.Winner == m.side:
			result = "You won!"
		}
		footer = result + "  |  Enter: Menu  |  Q: Quit"
	}
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(footer)
}

// State returns the current step.
func (m OnlineModel) State() OnlineState {
	return m.state
}

// Side returns which character this session plays once a match started.
func (m OnlineModel) Side() core.PlayerID {
	return m.side
}

// BackToMenu returns true if the user wants to go back to the menu.
func (m OnlineModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the user wants to quit entirely.
func (m OnlineModel) IsQuitting() bool {
	return m.quitting
}
