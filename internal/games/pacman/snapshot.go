package pacman

import "github.com/vovakirdan/arcade-portal/internal/core"

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Score     int
	Lives     int
	Level     int
	Layout    int
	Pac       core.Point
	Ghosts    [4]core.Point
	Remaining int
	GameOver  bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		Score:     g.score,
		Lives:     g.lives,
		Level:     g.level,
		Layout:    g.layoutIdx,
		Pac:       g.pac,
		Remaining: g.maze.Remaining(),
		GameOver:  g.gameOver,
	}
	for i, gh := range g.ghosts {
		s.Ghosts[i] = gh.Pos
	}
	return s
}
