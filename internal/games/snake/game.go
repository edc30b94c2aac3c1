package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// Visual characters for rendering
const (
	HeadChar = 'O'
	BodyChar = 'o'
	FoodChar = '*'
	WallChar = '#'
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

// Game implements the Snake game.
type Game struct {
	cfg      config.SnakeConfig
	fixedCfg bool
	rng      *rand.Rand
	tick     uint64

	score     int
	level     int
	foodEaten int // Food eaten in current level

	// Snake state
	snake   []core.Point // Head at index 0
	dir     core.Dir
	pending core.Dir // Buffered heading applied on the next move

	walls map[core.Point]bool
	food  core.Point

	gameOver     bool
	levelCleared bool
}

// New creates a Snake game that loads its tuning on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a Snake game with explicit tuning.
func NewWithConfig(cfg config.SnakeConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.fixedCfg {
		cfg, err := config.LoadSnake(configPath)
		if err != nil {
			cfg = config.DefaultSnakeConfig()
		}
		if difficultyPreset != "" {
			config.ApplySnakePreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	if g.cfg.GridSize < 5 {
		g.cfg.GridSize = config.DefaultSnakeConfig().GridSize
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.score = 0
	g.level = 1
	g.gameOver = false
	g.loadLevel()
}

// loadLevel installs the current level's walls and respawns snake and food.
func (g *Game) loadLevel() {
	g.foodEaten = 0
	g.levelCleared = false

	g.walls = make(map[core.Point]bool)
	for y, row := range layoutFor(g.level).Walls {
		for x, ch := range row {
			p := core.Point{X: x, Y: y}
			if ch == WallChar && g.inBounds(p) {
				g.walls[p] = true
			}
		}
	}

	center := g.cfg.GridSize / 2
	g.snake = []core.Point{{X: center, Y: center}}
	g.dir = core.DirRight
	g.pending = core.DirRight
	g.spawnFood()
}

// inBounds reports whether p lies on the grid.
func (g *Game) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.cfg.GridSize && p.Y >= 0 && p.Y < g.cfg.GridSize
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p core.Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// spawnFood places food at a random empty cell.
func (g *Game) spawnFood() {
	var empty []core.Point
	for y := range g.cfg.GridSize {
		for x := range g.cfg.GridSize {
			p := core.Point{X: x, Y: y}
			if !g.walls[p] && !g.isSnakeAt(p) {
				empty = append(empty, p)
			}
		}
	}
	if len(empty) == 0 {
		g.food = core.Point{X: -1, Y: -1}
		return
	}
	g.food = empty[g.rng.Intn(len(empty))]
}

// placeFood forces the food position.
func (g *Game) placeFood(p core.Point) {
	g.food = p
}

// Step advances the game by one move.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.gameOver || g.levelCleared {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	g.processInput(input)
	fx := g.moveSnake()
	if fx.Err == nil {
		fx.Err = g.checkBounds()
	}
	if fx.Err != nil {
		g.gameOver = true
		fx.GameOver = true
	}
	return core.StepResult{State: g.State(), Effects: fx}
}

// processInput buffers a heading when the cell it leads to is legal.
// The cell must not be a wall nor the second body segment.
func (g *Game) processInput(input core.InputFrame) {
	d := input.Heading()
	if d == core.DirNone {
		return
	}
	next := g.snake[0].Add(d.Delta())
	if g.walls[next] {
		return
	}
	if len(g.snake) > 1 && g.snake[1] == next {
		return
	}
	g.pending = d
}

// moveSnake moves the snake one cell along the buffered heading.
func (g *Game) moveSnake() core.Effects {
	var fx core.Effects
	g.dir = g.pending
	head := g.snake[0].Add(g.dir.Delta())

	if !g.inBounds(head) || g.walls[head] {
		g.gameOver = true
		fx.GameOver = true
		return fx
	}

	eating := head == g.food
	// The tail vacates its cell this move unless the snake grows.
	body := g.snake
	if !eating {
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == head {
			g.gameOver = true
			fx.GameOver = true
			return fx
		}
	}

	g.snake = append([]core.Point{head}, body...)

	if eating {
		g.score += g.cfg.FoodPoints
		fx.ScoreDelta = g.cfg.FoodPoints
		g.foodEaten++
		if g.foodEaten >= g.cfg.FoodPerLevel {
			g.levelCleared = true
			fx.LevelCleared = true
			g.food = core.Point{X: -1, Y: -1}
		} else {
			g.spawnFood()
		}
	}
	return fx
}

// checkBounds verifies that every segment is on the grid.
func (g *Game) checkBounds() error {
	for i, seg := range g.snake {
		if !g.inBounds(seg) {
			return core.Invariantf("snake segment %d at %v outside %dx%d grid", i, seg, g.cfg.GridSize, g.cfg.GridSize)
		}
	}
	return nil
}

// Level returns the current level.
func (g *Game) Level() int {
	return g.level
}

// AdvanceLevel loads the next wall layout and resets the snake.
func (g *Game) AdvanceLevel() {
	g.level++
	g.loadLevel()
}

// TickInterval returns the move interval for the current level.
func (g *Game) TickInterval() time.Duration {
	return g.cfg.Pacing.Interval(g.level)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		GameOver: g.gameOver,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	size := g.cfg.GridSize

	hud := fmt.Sprintf(" Snake  Score: %d  Level: %d  Food: %d/%d", g.score, g.level, g.foodEaten, g.cfg.FoodPerLevel)
	dst.DrawText(0, 0, hud)

	// Grid cells are two columns wide to keep the field square.
	offX := (dst.Width() - size*2 - 2) / 2
	offY := 1
	dst.DrawBox(core.NewRect(offX, offY, size*2+2, size+2))

	cell := func(p core.Point, r rune, c core.Color) {
		x := offX + 1 + p.X*2
		y := offY + 1 + p.Y
		dst.SetColor(x, y, r, c)
		dst.SetColor(x+1, y, r, c)
	}

	for w := range g.walls {
		cell(w, WallChar, core.ColorGray)
	}
	if g.food.X >= 0 {
		cell(g.food, FoodChar, core.ColorBrightRed)
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		if i == 0 {
			cell(g.snake[i], HeadChar, core.ColorBrightGreen)
		} else {
			cell(g.snake[i], BodyChar, core.ColorGreen)
		}
	}

	switch {
	case g.gameOver:
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score: %d", g.score))
	case g.levelCleared:
		dst.DrawOverlay(fmt.Sprintf("Level %d cleared!", g.level), layoutFor(g.level+1).Name)
	}
}
