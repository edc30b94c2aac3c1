// Package arkanoid implements an Arkanoid-style brick breaker on a
// continuous playfield.
package arkanoid

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// serveSpread is the largest launch angle as a fraction of MaxBounceAngle.
const serveSpread = 0.5

// speedEps is the tolerance for the constant-speed check.
const speedEps = 1e-6

// Brick colours by row.
var brickColors = []core.Color{
	core.ColorBrightRed, core.ColorOrange, core.ColorBrightYellow,
	core.ColorBrightGreen, core.ColorBrightCyan, core.ColorBrightBlue,
}

// Game implements Arkanoid.
type Game struct {
	cfg      config.ArkanoidConfig
	fixedCfg bool
	rng      *rand.Rand
	tick     uint64

	paddle  Paddle
	ball    Ball
	bricks  *Level
	cellW   float64
	speed   float64
	serving bool

	score        int
	lives        int
	level        int
	gameOver     bool
	levelCleared bool
}

// New creates an Arkanoid game that loads its tuning on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates an Arkanoid game with explicit tuning.
func NewWithConfig(cfg config.ArkanoidConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register("arkanoid", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "arkanoid"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Arkanoid"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.fixedCfg {
		cfg, err := config.LoadArkanoid(configPath)
		if err != nil {
			cfg = config.DefaultArkanoidConfig()
		}
		if difficultyPreset != "" {
			config.ApplyArkanoidPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	if g.cfg.BallSize <= 0 {
		g.cfg.BallSize = 1
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.score = 0
	g.lives = g.cfg.Lives
	g.level = 1
	g.gameOver = false
	g.paddle = Paddle{
		X:     g.cfg.Width / 2,
		Y:     g.cfg.Height - paddleGap,
		Width: g.cfg.PaddleWidth,
	}
	g.loadLevel()
}

// loadLevel installs the layout and ball speed for the current level and
// puts the ball on the paddle.
func (g *Game) loadLevel() {
	g.bricks = levelFor(g.level)
	g.cellW = g.cfg.Width / float64(g.bricks.Cols)
	g.speed = levelSpeed(g.cfg, g.level)
	g.levelCleared = false
	g.serve()
}

// levelSpeed returns the ball speed for a 1-based level.
func levelSpeed(cfg config.ArkanoidConfig, level int) float64 {
	s := cfg.BallSpeed * math.Pow(cfg.LevelSpeedUp, float64(level-1))
	if cfg.MaxBallSpeed > 0 {
		s = math.Min(s, cfg.MaxBallSpeed)
	}
	return s
}

// serve parks the ball on the paddle.
func (g *Game) serve() {
	g.serving = true
	g.ball = Ball{X: g.paddle.X, Y: g.paddle.Y - g.cfg.BallSize/2, Size: g.cfg.BallSize}
}

// launch sends the served ball upwards at a seeded angle.
func (g *Game) launch() {
	f := (g.rng.Float64()*2 - 1) * serveSpread
	angle := f * g.cfg.MaxBounceAngle * math.Pi / 180
	g.ball.VX = g.speed * math.Sin(angle)
	g.ball.VY = -g.speed * math.Cos(angle)
	g.serving = false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver || g.levelCleared {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	var fx core.Effects
	g.movePaddle(in)

	if g.serving {
		g.ball.X = g.paddle.X
		if in.Has(core.ActionFire) || in.Has(core.ActionUp) {
			g.launch()
		}
	} else {
		g.moveBall(&fx)
	}

	if err := g.checkBounds(); err != nil {
		fx.Err = err
		g.gameOver = true
	}
	fx.GameOver = g.gameOver
	return core.StepResult{State: g.State(), Effects: fx}
}

// movePaddle slides the paddle and keeps it inside the walls.
func (g *Game) movePaddle(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		g.paddle.X -= g.cfg.PaddleSpeed
	}
	if in.Has(core.ActionRight) {
		g.paddle.X += g.cfg.PaddleSpeed
	}
	half := g.paddle.Width / 2
	g.paddle.X = core.ClampF(g.paddle.X, half, g.cfg.Width-half)
}

// moveBall advances the ball and resolves walls, paddle and bricks.
func (g *Game) moveBall(fx *core.Effects) {
	g.ball.X += g.ball.VX
	g.ball.Y += g.ball.VY

	if bounceWalls(&g.ball, g.cfg.Width, g.cfg.Height) == wallFloor {
		g.loseLife()
		return
	}

	if g.ball.VY > 0 && g.ball.Box().Intersects(g.paddle.Box()) {
		reflectOffPaddle(&g.ball, g.paddle, g.cfg.MaxBounceAngle)
		return
	}

	hit, ok := pickBrick(g.ball, g.bricks, g.cellW)
	if !ok {
		return
	}
	deflect(&g.ball, brickBox(hit.Row, hit.Col, g.cellW))
	// A push-out along X can cross a side wall next to an edge brick.
	bounceWalls(&g.ball, g.cfg.Width, g.cfg.Height)
	g.hitBrick(hit, fx)
}

// hitBrick applies one hit to a brick.
func (g *Game) hitBrick(hit brickHit, fx *core.Effects) {
	b := &g.bricks.Bricks[hit.Row][hit.Col]
	if b.Type == BrickSolid {
		return
	}
	b.HP--
	if b.HP > 0 {
		return
	}
	g.score += b.Points
	fx.ScoreDelta += b.Points
	if g.bricks.CountBreakable() == 0 {
		g.levelCleared = true
		fx.LevelCleared = true
	}
}

// loseLife takes a life and serves again, or ends the game.
func (g *Game) loseLife() {
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.gameOver = true
		return
	}
	g.serve()
}

// checkBounds verifies the ball and paddle are inside the field and the
// ball kept its speed.
func (g *Game) checkBounds() error {
	if g.gameOver {
		return nil
	}
	half := g.paddle.Width / 2
	if g.paddle.X < half-speedEps || g.paddle.X > g.cfg.Width-half+speedEps {
		return core.Invariantf("paddle centre %.3f outside field", g.paddle.X)
	}
	r := g.ball.Size / 2
	if g.ball.X < r-speedEps || g.ball.X > g.cfg.Width-r+speedEps || g.ball.Y < r-speedEps {
		return core.Invariantf("ball at (%.3f,%.3f) outside field", g.ball.X, g.ball.Y)
	}
	if !g.serving && math.Abs(g.ball.Speed()-g.speed) > speedEps {
		return core.Invariantf("ball speed %.6f drifted from %.6f", g.ball.Speed(), g.speed)
	}
	return nil
}

// Lives returns the remaining lives.
func (g *Game) Lives() int {
	return g.lives
}

// Level returns the current level.
func (g *Game) Level() int {
	return g.level
}

// AdvanceLevel loads the next layout with a faster ball.
func (g *Game) AdvanceLevel() {
	g.level++
	g.loadLevel()
}

// TickInterval returns the fixed physics step.
func (g *Game) TickInterval() time.Duration {
	return config.TickInterval(g.cfg.TickMs)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		GameOver: g.gameOver,
	}
}

// Render draws the field scaled to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, fmt.Sprintf(" Arkanoid  Score: %d  Lives: %d  Level: %d  %s",
		g.score, g.lives, g.level, g.bricks.Name))

	fieldW := dst.Width() - 2
	fieldH := dst.Height() - 3
	if fieldW <= 0 || fieldH <= 0 {
		return
	}
	dst.DrawBox(core.NewRect(0, 1, fieldW+2, fieldH+2))
	sx := float64(fieldW) / g.cfg.Width
	sy := float64(fieldH) / g.cfg.Height
	plot := func(x, y float64) (int, int) {
		return 1 + int(math.Floor(x*sx)), 2 + int(math.Floor(y*sy))
	}
	fill := func(r core.RectF, ch rune, c core.Color) {
		x0, y0 := plot(r.X, r.Y)
		x1, y1 := plot(r.Right(), r.Bottom())
		for y := y0; y <= max(y0, y1-1); y++ {
			for x := x0; x <= max(x0, x1-1); x++ {
				if x > 0 && x <= fieldW && y > 1 && y <= fieldH+1 {
					dst.SetColor(x, y, ch, c)
				}
			}
		}
	}

	for r, row := range g.bricks.Bricks {
		for c, b := range row {
			if !b.Alive() {
				continue
			}
			box := brickBox(r, c, g.cellW).Inset(0.1)
			switch {
			case b.Type == BrickSolid:
				fill(box, '█', core.ColorGray)
			case b.Type == BrickHard && b.HP > 1:
				fill(box, '▓', core.ColorWhite)
			default:
				fill(box, '▒', brickColors[r%len(brickColors)])
			}
		}
	}
	fill(g.paddle.Box(), '=', core.ColorBrightCyan)
	bx, by := plot(g.ball.X, g.ball.Y)
	dst.SetColor(bx, by, '●', core.ColorBrightWhite)

	switch {
	case g.gameOver:
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score: %d", g.score))
	case g.levelCleared:
		dst.DrawOverlay(fmt.Sprintf("Level %d cleared!", g.level), "Next stage")
	case g.serving:
		dst.DrawTextCentered(dst.Height()-1, "Space to launch")
	}
}
