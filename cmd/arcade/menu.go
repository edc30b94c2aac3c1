package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game, Tab for the
scoreboard. After a game, B or Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --difficulty easy
  arcade menu --db ./scores.db --user ann`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	applyGameSettings("", "", flagDifficulty)

	logger, closeLog := sessionLogger()
	defer closeLog()

	player := tui.Player{UserID: currentUser(), Profile: flagDifficulty, Logger: logger}
	var boards tui.Leaderboards
	scores, closeScores, err := openScores()
	if err != nil {
		logger.Warn("playing without scores", "error", err)
	} else {
		defer closeScores()
		player.Scores = scores
		boards = scores
	}

	return tui.RunSession(player, boards, runtimeConfig())
}
