package core

import (
	"errors"
	"fmt"
)

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second for unpaced games (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level, starts at 1
	GameOver bool // Whether the game has ended
}

// Effects describes what happened during one tick.
type Effects struct {
	ScoreDelta   int   // Points awarded this tick
	LevelCleared bool  // Win condition for the current level was met
	GameOver     bool  // Terminal transition happened this tick
	Err          error // Invariant violation; fatal to the round
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State   GameState
	Effects Effects
}

// ErrInvariant marks a broken simulation invariant.
var ErrInvariant = errors.New("invariant violated")

// Invariantf wraps ErrInvariant with a formatted detail.
func Invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
