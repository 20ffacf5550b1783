// Package tin adapts the level simulation to the platform Game interface.
// It owns the level's clock, restarts on request and keeps the score list.
package tin

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tin-quest/internal/assets"
	"github.com/vovakirdan/tin-quest/internal/config"
	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/leveldef"
	"github.com/vovakirdan/tin-quest/internal/registry"
	"github.com/vovakirdan/tin-quest/internal/storage"
	"github.com/vovakirdan/tin-quest/internal/world"
)

// Registered mode IDs.
const (
	SingleID = "tin"
	DuelID   = "tin_duel"
)

// Game runs one level at a time and restarts it after it ends.
type Game struct {
	deps        registry.Deps
	cfg         core.RuntimeConfig
	tinCfg      config.TinConfig
	startDuel   bool
	multiplayer bool

	clock  *core.ManualClock
	steps  uint64 // simulated ticks of the current level
	level  *world.Level
	round  int64
	paused bool
	err    error

	scores   []int
	recorded bool
}

// New creates a game. Missing dependencies fall back to the built-in level,
// default configuration, placeholder art and an in-memory score book.
func New(deps registry.Deps, duel bool) *Game {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Catalog == nil {
		deps.Catalog = assets.NewBuiltin()
	}
	if deps.Scores == nil || deps.Duels == nil {
		book := storage.NewMemoryBook()
		if deps.Scores == nil {
			deps.Scores = book
		}
		if deps.Duels == nil {
			deps.Duels = book
		}
	}
	tinCfg := config.DefaultTinConfig()
	if deps.Config != nil {
		tinCfg = *deps.Config
	}
	return &Game{
		deps:      deps,
		tinCfg:    tinCfg,
		startDuel: duel,
	}
}

// ID returns the unique identifier for this game mode.
func (g *Game) ID() string {
	if g.startDuel {
		return DuelID
	}
	return SingleID
}

// Title returns the display name for this game mode.
func (g *Game) Title() string {
	if g.startDuel {
		return "The Quest of Tin: Duel"
	}
	return "The Quest of Tin"
}

// Reset starts a fresh level in the mode the game was created with.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.round = 0
	g.start(g.startDuel)
}

func (g *Game) start(multiplayer bool) {
	g.multiplayer = multiplayer
	g.paused = false
	g.recorded = false
	g.err = nil
	g.level = nil
	g.clock = &core.ManualClock{}
	g.steps = 0

	def := g.deps.Level
	if def == nil {
		var err error
		def, err = leveldef.LoadBuiltin(leveldef.DefaultLevel)
		if err != nil {
			g.fail(err)
			return
		}
	}

	level, err := world.NewLevel(def, world.Options{
		Multiplayer: multiplayer,
		Config:      g.tinCfg,
		Catalog:     g.deps.Catalog,
		Clock:       g.clock,
		Rand:        rand.New(rand.NewSource(g.cfg.Seed + g.round)), //#nosec G404 -- gameplay randomness
		Logger:      g.deps.Logger,
	})
	g.round++
	if err != nil {
		g.fail(err)
		return
	}
	g.level = level
	g.deps.Logger.Debug("level started", "level", def.Name, "multiplayer", multiplayer, "monsters", level.RequiredMonsters())
	g.scores = g.loadScores()
}

func (g *Game) fail(err error) {
	g.err = err
	g.deps.Logger.Error("game stopped", "err", err)
}

func (g *Game) loadScores() []int {
	scores, err := g.deps.Scores.LoadScores()
	if err != nil {
		g.deps.Logger.Warn("cannot load scores", "err", err)
		return nil
	}
	return storage.Sorted(scores)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.err != nil {
		return core.StepResult{State: g.State(), Err: g.err}
	}

	if g.level.IsOver() {
		switch {
		case in.Any(core.ActionMultiplayer):
			g.start(true)
		case in.Any(core.ActionRestart):
			g.start(false)
		}
		return core.StepResult{State: g.State(), Err: g.err}
	}

	if in.Any(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.steps++
	g.clock.Advance(g.cfg.TicksToMillis(g.steps) - g.cfg.TicksToMillis(g.steps-1))
	if err := g.level.Update(in); err != nil {
		g.fail(err)
		return core.StepResult{State: g.State(), Err: err}
	}

	if g.level.IsOver() && !g.recorded {
		g.record()
	}
	return core.StepResult{State: g.State()}
}

// record stores the finished level's result once.
func (g *Game) record() {
	g.recorded = true
	if g.multiplayer {
		winner := "tin"
		if g.level.Outcome() == world.OutcomeSinWins {
			winner = "sin"
		}
		if err := g.deps.Duels.SaveDuel(storage.DuelResult{Winner: winner, Ticks: int(g.level.Ticks())}); err != nil {
			g.deps.Logger.Warn("cannot save duel", "err", err)
		}
		return
	}

	scores, changed := storage.Insert(g.scores, g.level.ElapsedSeconds())
	g.scores = scores
	if !changed {
		return
	}
	if err := g.deps.Scores.SaveScores(scores); err != nil {
		g.deps.Logger.Warn("cannot save scores", "err", err)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.level == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:    g.level.ElapsedSeconds(),
		GameOver: g.level.IsOver(),
		Paused:   g.paused,
	}
}

// Level returns the running level, or nil if it failed to build.
func (g *Game) Level() *world.Level {
	return g.level
}

// Multiplayer reports whether the current level is a duel.
func (g *Game) Multiplayer() bool {
	return g.multiplayer
}

// Scores returns the single-player score list, best first.
func (g *Game) Scores() []int {
	return append([]int(nil), g.scores...)
}

// Winner returns the player who won a finished duel, or 0.
func (g *Game) Winner() core.PlayerID {
	if g.level == nil {
		return 0
	}
	switch g.level.Outcome() {
	case world.OutcomeTinWins:
		return core.Player1
	case world.OutcomeSinWins:
		return core.Player2
	}
	return 0
}

// Err returns the error that stopped the game, if any.
func (g *Game) Err() error {
	return g.err
}

func init() {
	registry.Register(SingleID, func(deps registry.Deps) registry.Game {
		return New(deps, false)
	})
	registry.Register(DuelID, func(deps registry.Deps) registry.Game {
		return New(deps, true)
	})
}
