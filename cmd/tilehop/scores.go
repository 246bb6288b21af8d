package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/younwookim/tilehop/internal/infrastructure/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best cleared runs",
	Long: `Display the top scores of runs that reached the final exit.

Examples:
  tilehop scores
  tilehop scores --limit 3`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadGame(flagConfigDir)
	if err != nil {
		return err
	}

	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer func() { _ = store.Close() }()

	return printScores(cmd.OutOrStdout(), store, flagLimit)
}

func printScores(w io.Writer, store *storage.Store, limit int) error {
	scores, err := store.TopScores(limit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintln(w, "High Scores")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No runs cleared yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'tilehop play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-6s  %-8s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Fprintf(w, "  %-4s  %-6s  %-8s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-6d  %-8s  %s\n", i+1, entry.Score, entry.FinalScene, dateStr)
	}

	fmt.Fprintln(w)
	if best, err := store.HighScore(); err == nil {
		runs, _ := store.RunCount()
		fmt.Fprintf(w, "Best: %d (%d runs)\n", best, runs)
	}
	return nil
}
