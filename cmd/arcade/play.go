package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var (
	flagGameConfig string
	flagNoIntro    bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move / steer
  Space        - Fire, drop or launch (also starts the round)
  Enter        - Start the round
  P            - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a text screenshot

Difficulty options:
  easy   - Slower start, more forgiving
  normal - Tuning as shipped
  hard   - Faster start, less forgiving
  fixed  - No speed-up between levels

Without --difficulty a picker is shown before the game starts.

Examples:
  arcade play snake
  arcade play tetris --difficulty hard
  arcade play snake --no-intro
  arcade play pacman --game-config ./my-pacman.yaml
  arcade play arkanoid --portal http://localhost:8080 --token $TOKEN`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagGameConfig, "game-config", "", "Path to custom game tuning YAML")
	playCmd.Flags().BoolVar(&flagNoIntro, "no-intro", false, "Skip the instructions screen")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	cfg := runtimeConfig()

	preset := flagDifficulty
	if preset == "" {
		info, err := registry.Create(gameID)
		if err != nil {
			return err
		}
		chosen, ok, err := tui.RunDifficultySelector(info.Title(), cfg)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		preset = string(chosen)
	}
	applyGameSettings(gameID, flagGameConfig, preset)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	logger, closeLog := sessionLogger()
	defer closeLog()

	player := tui.Player{UserID: currentUser(), Profile: preset, Logger: logger, SkipIntro: flagNoIntro}
	scores, closeScores, err := openScores()
	if err != nil {
		// The game still works without persistence.
		logger.Warn("playing without scores", "error", err)
	} else {
		defer closeScores()
		player.Scores = scores
	}

	return tui.Run(game, player, cfg)
}
