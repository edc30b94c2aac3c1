package snake

import "github.com/vovakirdan/arcade-portal/internal/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Level     int
	Score     int
	FoodEaten int // Food eaten in current level
	SnakeLen  int
	Head      core.Point
	Dir       core.Dir
	Food      core.Point
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	}

	var head core.Point
	if len(g.snake) > 0 {
		head = g.snake[0]
	}

	return Snapshot{
		Tick:      g.tick,
		Level:     g.level,
		Score:     g.score,
		FoodEaten: g.foodEaten,
		SnakeLen:  len(g.snake),
		Head:      head,
		Dir:       g.dir,
		Food:      g.food,
		State:     state,
	}
}
