package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tin-quest/internal/platform/tui"
	"github.com/vovakirdan/tin-quest/internal/storage"
	"github.com/vovakirdan/tin-quest/internal/world"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show best survival times and duel results",
	Long: `Display the longest times the tower has held, and who has won the
most duels.

Examples:
  tin scores
  tin scores --limit 3
  tin scores --tui
  tin scores --clear
  tin scores --store file`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in an interactive table")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of times to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every survival time")
}

func runScores(_ *cobra.Command, _ []string) error {
	if flagStore == "file" {
		return printFileScores()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(storage.GameID); err != nil {
			return fmt.Errorf("cannot clear scores: %w", err)
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	scores, err := store.TopScores(storage.GameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Println("High Scores - The Quest of Tin")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tin play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-6s  %s\n", "Rank", "Time", "Date")
		fmt.Printf("  %-4s  %-6s  %s\n", "----", "----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-6s  %s\n", i+1, world.FormatTime(entry.Score), entry.CreatedAt.Format("2006-01-02 15:04"))
		}
		if best, err := store.HighScore(storage.GameID); err == nil {
			fmt.Println()
			fmt.Printf("Best: %s\n", world.FormatTime(best))
		}
	}

	wins, err := store.DuelWins()
	if err != nil {
		return fmt.Errorf("cannot retrieve duels: %w", err)
	}
	if len(wins) > 0 {
		fmt.Println()
		fmt.Println("Duels won:")
		for _, name := range []string{"tin", "sin"} {
			fmt.Printf("  %-4s  %d\n", name, wins[name])
		}
	}
	return nil
}

func printFileScores() error {
	book, err := storage.OpenFileBook("")
	if err != nil {
		return err
	}
	scores, err := book.LoadScores()
	if err != nil {
		return err
	}

	fmt.Println("High Scores - The Quest of Tin")
	fmt.Println()
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}
	for i, s := range storage.Top(scores, flagScoresLimit) {
		fmt.Printf("  %d. %s\n", i+1, world.FormatTime(s))
	}
	return nil
}
