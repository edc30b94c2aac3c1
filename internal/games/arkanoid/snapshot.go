package arkanoid

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick    uint64
	Score   int
	Lives   int
	Level   int
	BallX   float64
	BallY   float64
	BallVX  float64
	BallVY  float64
	PaddleX float64
	Bricks  int
	Serving bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:    g.tick,
		Score:   g.score,
		Lives:   g.lives,
		Level:   g.level,
		BallX:   g.ball.X,
		BallY:   g.ball.Y,
		BallVX:  g.ball.VX,
		BallVY:  g.ball.VY,
		PaddleX: g.paddle.X,
		Bricks:  g.bricks.CountBreakable(),
		Serving: g.serving,
	}
}
