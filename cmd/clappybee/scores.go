package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/clappy-bee/internal/games/bee"
	"github.com/vovakirdan/clappy-bee/internal/platform/tui"
	"github.com/vovakirdan/clappy-bee/internal/storage"
)

var (
	flagLimit int
	flagAll   bool
	flagClear bool
	flagTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores and the best score.

Examples:
  clappybee scores
  clappybee scores --limit 25
  clappybee scores --all
  clappybee scores --tui
  clappybee scores --clear --store gdata`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Show every recorded game instead of the top scores")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete score history and reset the best score")
	scoresCmd.Flags().BoolVar(&flagTUI, "tui", false, "Browse scores in an interactive table")
}

func runScores(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	backend, err := openBestBackend(store)
	if err != nil {
		return fmt.Errorf("opening best score store: %w", err)
	}
	best := storage.NewBestScore(backend, logger)

	if flagClear {
		if err := store.ClearScores(bee.GameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		if err := best.Reset(); err != nil {
			return fmt.Errorf("resetting best score: %w", err)
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if flagTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, bee.GameID, "Clappy Bee", width, height); err != nil {
			return fmt.Errorf("running scoreboard: %w", err)
		}
		return nil
	}

	var scores []storage.ScoreEntry
	if flagAll {
		scores, err = store.AllScores(bee.GameID)
	} else {
		scores, err = store.TopScores(bee.GameID, flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Clappy Bee")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'clappybee play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	// The best survives --clear of the history, so both can differ.
	fmt.Println()
	if high, err := store.HighScore(bee.GameID); err == nil {
		fmt.Printf("Top recorded: %d\n", high)
	}
	fmt.Printf("Best: %d\n", best.Best())
	return nil
}
