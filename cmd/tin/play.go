package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/games/tin"
	"github.com/vovakirdan/tin-quest/internal/platform/tui"
	"github.com/vovakirdan/tin-quest/internal/platform/window"
	"github.com/vovakirdan/tin-quest/internal/registry"
)

var (
	flagMultiplayer bool
	flagWindow      bool
	flagHoldTicks   int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing. The mode defaults to "tin" (single player).

Controls:
  Left/Right  - Move Tin        A/D - Move Sin
  Up          - Jump            W   - Jump
  Space       - Attack          F   - Attack
  P           - Pause
  R           - Retry (after the level ends)
  M           - Duel (after the level ends)
  Ctrl+S      - Screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Slow progression, gentle monsters
  normal - Default progression
  hard   - Fast progression, quicker monsters
  fixed  - No progression

Examples:
  tin play
  tin play tin_duel
  tin play --multiplayer
  tin play --window --difficulty hard
  tin play --levels-dir ./levels --level Cave
  tin play --config ./my-tin.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().BoolVar(&flagMultiplayer, "multiplayer", false, "Start a duel (same as mode tin_duel)")
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Play in a desktop window instead of the terminal")
	playCmd.Flags().IntVar(&flagHoldTicks, "hold", core.DefaultHoldTicks, "Ticks a terminal key press stays held")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := tin.SingleID
	if len(args) > 0 {
		gameID = args[0]
	}
	if flagMultiplayer {
		gameID = tin.DuelID
	}

	// Check if the mode exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'tin list' to see available modes", gameID)
	}

	fallback := io.Discard
	if flagWindow {
		fallback = os.Stderr
	}
	logger, err := newLogger(fallback, "tin")
	if err != nil {
		return err
	}

	sess, err := openSession(logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	game, err := registry.Create(gameID, sess.deps)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger.Info("starting", "mode", gameID, "window", flagWindow, "seed", cfg.Seed)

	if flagWindow {
		wg, ok := game.(window.Game)
		if !ok {
			return fmt.Errorf("mode %q cannot run in a window", gameID)
		}
		return window.Run(wg, cfg, logger)
	}

	return tui.Run(game, tui.Options{
		Config:    cfg,
		Logger:    logger,
		HoldTicks: flagHoldTicks,
	})
}
