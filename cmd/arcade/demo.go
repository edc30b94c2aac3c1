package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/engine"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var (
	flagDemoDuration time.Duration
	flagDemoSubmit   bool
)

var demoCmd = &cobra.Command{
	Use:   "demo <game>",
	Short: "Let a random bot play a game without a terminal UI",
	Long: `Run a game headless on the real-time scheduler with a bot pressing random
keys, then print how the round ended. Useful for soak runs on a server.

Examples:
  arcade demo pacman
  arcade demo arkanoid --duration 2m --seed 42
  arcade demo snake --submit --user bot`,
	Args: cobra.ExactArgs(1),
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().DurationVar(&flagDemoDuration, "duration", 30*time.Second, "Stop after this long")
	demoCmd.Flags().BoolVar(&flagDemoSubmit, "submit", false, "Record the final score for --user")
}

var botActions = []core.Action{
	core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionFire,
}

// runBot sends a random action every period until ctx is done.
func runBot(ctx context.Context, rng *rand.Rand, period time.Duration, out chan<- core.Action) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case out <- botActions[rng.Intn(len(botActions))]:
			case <-ctx.Done():
				return
			}
		}
	}
}

func runDemo(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}
	preset := flagDifficulty
	if preset == "" {
		preset = string(config.DifficultyNormal)
	}
	applyGameSettings(gameID, "", preset)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	logger := serverLogger("arcade-demo")

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var (
		ended bool
		final int
	)
	opts := engine.Options{
		Runtime:          core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed},
		Logger:           logger,
		SkipInstructions: true,
		OnTerminal: func(_ string, score int) {
			ended, final = true, score
		},
	}
	if flagDemoSubmit {
		scores, closeScores, err := openScores()
		if err != nil {
			return fmt.Errorf("opening scores: %w", err)
		}
		defer closeScores()
		opts.Bridge = engine.NewScoreBridge(scores, gameID, currentUser(), preset, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, flagDemoDuration)
	defer cancel()

	sched := engine.New(ctx, game, opts)
	intents := make(chan core.Action)
	go runBot(ctx, rand.New(rand.NewSource(seed)), 120*time.Millisecond, intents)

	err = sched.Run(ctx, intents)
	cancel()

	state := sched.State()
	switch {
	case ended:
		fmt.Printf("%s: game over, score %d, level %d\n", game.Title(), final, state.Level)
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Printf("%s: time up, score %d, level %d\n", game.Title(), state.Score, state.Level)
	case err != nil && !errors.Is(err, context.Canceled):
		return err
	default:
		fmt.Printf("%s: stopped, score %d, level %d\n", game.Title(), state.Score, state.Level)
	}
	return nil
}
