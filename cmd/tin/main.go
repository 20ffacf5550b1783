// tin runs The Quest of Tin, a side-scroller where Tin defends a tower from
// monsters, alone or in a duel against Sin.
//
// Usage:
//
//	tin play [mode]          - Play in the terminal (or --window for a desktop window)
//	tin list                 - List game modes
//	tin levels               - List available levels
//	tin menu                 - Start menu to pick a mode interactively
//	tin serve                - Start SSH server for remote play
//	tin scores               - Show best survival times and duel results
//	tin snapshot             - Render a level to a PNG without playing
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.tin/scores.db)
//	--store <kind>      - Score storage: sqlite, file or memory
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file (the terminal belongs to the game)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import game modes to register them
	_ "github.com/vovakirdan/tin-quest/internal/games/tin"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagStore    string
	flagLogLevel string
	flagLogFile  string
)

// logFile is closed by main once the command finishes.
var logFile io.Closer

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tin",
	Short: "The Quest of Tin - defend the tower in your terminal",
	Long: `The Quest of Tin is a side-scroller: Tin defends a tower from
endless monsters while Olivia watches from its top. Survive as long as you
can, or challenge a friend to a duel as Sin.

Available commands:
  play      - Play a mode directly
  list      - Show all game modes
  levels    - Show available levels
  menu      - Interactive mode picker
  serve     - Start SSH server for remote play
  scores    - View best times and duels
  snapshot  - Save a picture of a level

Examples:
  tin play
  tin play tin_duel
  tin play --window --difficulty hard
  tin serve --ssh :2222
  tin scores`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tin/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "sqlite", "Score storage: sqlite, file or memory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// newLogger builds the logger for a command. Interactive commands pass
// io.Discard as the fallback so log lines never tear the game screen.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, error) {
	w := fallback
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	return logger, nil
}
