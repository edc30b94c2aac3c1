package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the leaderboard for a game",
	Long: `Display the top 10 players of the specified game, one entry per
player with their best score, and your own best.

Examples:
  arcade scores tetris
  arcade scores pacman --user ann
  arcade scores -i
  arcade scores snake --portal http://localhost:8080 --token $TOKEN`,
	Args: cobra.RangeArgs(0, 1),
	RunE: runScores,
}

var flagScoresInteractive bool

func init() {
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse every leaderboard in a full-screen table")
}

func runScores(_ *cobra.Command, args []string) error {
	if flagScoresInteractive {
		scores, closeScores, err := openScores()
		if err != nil {
			return fmt.Errorf("opening scores: %w", err)
		}
		defer closeScores()
		cfg := runtimeConfig()
		_, err = tui.RunScoreboard(scores, currentUser(), cfg.ScreenW, cfg.ScreenH)
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("scores needs a game id, or -i to browse all games")
	}
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	scores, closeScores, err := openScores()
	if err != nil {
		return fmt.Errorf("opening scores: %w", err)
	}
	defer closeScores()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := scores.Leaderboard(ctx, gameID, storage.LeaderboardMax)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-10s  %-8s  %s\n", "Rank", "Player", "Score", "Profile", "Date")
	fmt.Printf("  %-4s  %-16s  %-10s  %-8s  %s\n", "----", "------", "-----", "-------", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-16s  %-10d  %-8s  %s\n",
			i+1, e.Username, e.Score, e.Profile, e.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	user := currentUser()
	if best, err := scores.HighScore(ctx, gameID, user); err == nil {
		fmt.Printf("Your best (%s): %d\n", user, best)
	}
	return nil
}
