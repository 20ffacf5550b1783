package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tin-quest/internal/leveldef"
	"github.com/vovakirdan/tin-quest/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows every mode registered with the game.`,
	Run:   runList,
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows the levels shipped with the game, or the .level files in
--levels-dir when it is set.

Examples:
  tin levels
  tin levels --levels-dir ./levels`,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with .level files (empty = builtin levels)")
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'tin play <id>' to play a mode.")
}

func runLevels(_ *cobra.Command, _ []string) error {
	names, err := leveldef.List(flagLevelsDir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No levels found.")
		return nil
	}

	for _, name := range names {
		def, err := leveldef.Open(flagLevelsDir, name)
		if err != nil {
			fmt.Printf("  %-16s  (broken: %v)\n", name, err)
			continue
		}
		marker := ""
		if name == leveldef.DefaultLevel {
			marker = " (default)"
		}
		fmt.Printf("  %-16s  %d platform rows, ground %s%s\n",
			name, len(def.Rows), def.Ground, marker)
	}
	return nil
}
