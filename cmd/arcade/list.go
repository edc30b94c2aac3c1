package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var flagListBest bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every registered game with its pacing. With --best the list also
shows your best score per game from the configured score store.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListBest, "best", false, "Show your best score per game")
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	best := map[string]int{}
	if flagListBest {
		scores, closeScores, err := openScores()
		if err != nil {
			return fmt.Errorf("opening scores: %w", err)
		}
		defer closeScores()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		user := currentUser()
		for _, g := range games {
			if n, err := scores.HighScore(ctx, g.ID, user); err == nil {
				best[g.ID] = n
			}
		}
	}

	idWidth := len("ID")
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
	}

	fmt.Println("Available games:")
	fmt.Println()
	fmt.Printf("  %-*s  %-14s  %-8s", idWidth, "ID", "Title", "Pacing")
	if flagListBest {
		fmt.Print("  Best")
	}
	fmt.Println()
	for _, g := range games {
		fmt.Printf("  %-*s  %-14s  %-8s", idWidth, g.ID, g.Title, pacing(g.ID))
		if flagListBest {
			fmt.Printf("  %d", best[g.ID])
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
	return nil
}

// pacing describes how a game sets its tick rate.
func pacing(id string) string {
	g, err := registry.Create(id)
	if err != nil {
		return "-"
	}
	if _, ok := g.(registry.Paced); ok {
		return "own"
	}
	return "--fps"
}
