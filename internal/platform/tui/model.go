package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/platform/snapshot"
	"github.com/vovakirdan/tin-quest/internal/registry"
	"github.com/vovakirdan/tin-quest/internal/world"
)

// LevelView is implemented by games that can expose their level for
// full-resolution screenshots.
type LevelView interface {
	Level() *world.Level
	EndMessages() []string
}

// Options configures a game model.
type Options struct {
	Config      core.RuntimeConfig
	Logger      *log.Logger
	SnapshotDir string // defaults to ~/.tin/screenshots
	HoldTicks   int    // defaults to core.DefaultHoldTicks
	AllowBack   bool   // esc/b returns to a menu instead of doing nothing
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	config      core.RuntimeConfig
	keys        *KeyMapper
	held        *core.HeldKeys
	help        help.Model
	logger      *log.Logger
	snapshotDir string
	allowBack   bool
	loop        uint64

	gameState  core.GameState
	status     string
	err        error
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.HoldTicks <= 0 {
		opts.HoldTicks = core.DefaultHoldTicks
	}
	if opts.SnapshotDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			opts.SnapshotDir = filepath.Join(home, ".tin", "screenshots")
		}
	}

	return Model{
		game:        game,
		screen:      core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		config:      cfg,
		keys:        NewKeyMapper(),
		held:        core.NewHeldKeys(opts.HoldTicks),
		help:        help.New(),
		logger:      opts.Logger,
		snapshotDir: opts.SnapshotDir,
		allowBack:   opts.AllowBack,
		loop:        nextLoop(),
	}
}

// playHeight leaves the last row for the help bar.
func playHeight(h int) int {
	return max(h-1, 1)
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case m.allowBack && key.Matches(msg, keys.Back) && (m.gameState.GameOver || m.gameState.Paused):
		m.backToMenu = true
		return m, nil
	}

	id, action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.held.Press(id, action)
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.held.Frame())
	m.gameState = result.State
	if result.Err != nil {
		m.err = result.Err
		m.logger.Error("game stopped", "game", m.game.ID(), "err", result.Err)
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate, m.loop)
}

// saveScreenshot writes a PNG of the level when the game exposes one,
// otherwise the character screen as text.
func (m *Model) saveScreenshot() {
	stamp := time.Now()
	if lv, ok := m.game.(LevelView); ok && lv.Level() != nil {
		path := filepath.Join(m.snapshotDir, snapshot.FileName(m.game.ID(), stamp))
		img := snapshot.Render(lv.Level(), snapshot.Options{Overlay: lv.EndMessages()})
		if err := snapshot.Save(img, path); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
			m.status = "screenshot failed"
			return
		}
		m.status = "saved " + path
		return
	}

	m.game.Render(m.screen)
	path := filepath.Join(m.snapshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), stamp.Format("20060102_150405")))
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.snapshotDir, 0o755)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		m.status = "screenshot failed"
		return
	}
	m.status = "saved " + path
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	footer := m.help.View(m.keys.Keys())
	if m.status != "" {
		footer = m.status
	}
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(footer)
}

// Err returns the error that stopped the game, if any.
func (m Model) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
