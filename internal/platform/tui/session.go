package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/multiplayer"
	"github.com/vovakirdan/tin-quest/internal/registry"
	"github.com/vovakirdan/tin-quest/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
	screenOnline
)

// SessionModel manages one session's flow: menu, game and scoreboard.
type SessionModel struct {
	deps     registry.Deps
	store    *storage.Store
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	game     *Model
	scores   *ScoreboardModel
	online   *OnlineModel
	quitting bool

	// Online duels; both nil when the session plays locally.
	coordinator *multiplayer.Coordinator
	handle      *multiplayer.ChannelSession
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps registry.Deps, store *storage.Store, cfg core.RuntimeConfig) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	return SessionModel{
		deps:   deps,
		store:  store,
		config: cfg,
		menu:   NewMenuModel(cfg),
	}
}

// WithOnline enables the online duel entry in the menu.
func (m SessionModel) WithOnline(coordinator *multiplayer.Coordinator, handle *multiplayer.ChannelSession) SessionModel {
	m.coordinator = coordinator
	m.handle = handle
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	if m.coordinator == nil {
		return NewMenuModel(m.config)
	}
	return NewMenuModel(m.config, MenuItem{GameID: OnlineMenuID, Title: "Online Duel"})
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.handle != nil {
		return tea.Batch(m.menu.Init(), m.waitForEvent())
	}
	return m.menu.Init()
}

// waitForEvent turns the next coordinator event into a message. Exactly
// one wait is pending for the whole session.
func (m SessionModel) waitForEvent() tea.Cmd {
	events, done := m.handle.Events(), m.handle.Done()
	return func() tea.Msg {
		select {
		case evt := <-events:
			return evt
		case <-done:
			return nil
		}
	}
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if evt, ok := msg.(multiplayer.SessionEvent); ok {
		var cmd tea.Cmd
		if m.screen == screenOnline {
			var next tea.Model
			next, cmd = m.online.Update(evt)
			if om, ok := next.(OnlineModel); ok {
				m.online = &om
			}
		}
		return m, tea.Batch(cmd, m.waitForEvent())
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenOnline:
		return m.updateOnline(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// Sub-models signal completion with tea.Quit; the session swallows it.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		scores := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scores = &scores
		m.screen = screenScores
		return m, scores.Init()

	case m.menu.Selected() != nil && m.menu.Selected().GameID == OnlineMenuID:
		m.config = m.menu.Config()
		online := NewOnlineModel(m.handle.ID(), m.coordinator, m.config.ScreenW, m.config.ScreenH)
		m.online = &online
		m.screen = screenOnline
		return m, online.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID, m.deps)
		if err != nil {
			m.deps.Logger.Error("cannot create game", "err", err)
			m.menu = m.newMenu()
			return m, nil
		}
		m.config = m.menu.Config()
		gm := NewModel(game, Options{Config: m.config, Logger: m.deps.Logger, AllowBack: true})
		m.game = &gm
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = &gm
	}

	if m.game.BackToMenu() || (m.game.IsQuitting() && m.game.Err() != nil) {
		return m.backToMenu()
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateOnline(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.online.Update(msg)
	if om, ok := next.(OnlineModel); ok {
		m.online = &om
	}

	if m.online.BackToMenu() {
		return m.backToMenu()
	}
	if m.online.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = &sm
	}

	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}
	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game = nil
	m.scores = nil
	m.online = nil
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenOnline:
		return m.online.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu, game and scoreboard flow in the local terminal.
func RunSession(deps registry.Deps, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(deps, store, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
