// Package tetris implements a falling-block puzzle on a 10×20 grid.
package tetris

import (
	"fmt"
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

const (
	softDropPoints = 1
	hardDropPoints = 2
)

// Game implements Tetris.
type Game struct {
	cfg      config.TetrisConfig
	fixedCfg bool
	rng      *rand.Rand
	tick     uint64

	board *Board
	piece Piece
	next  Kind
	bag   []Kind

	score int
	lines int
	level int

	gameOver bool
}

// New creates a Tetris game that loads its tuning on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a Tetris game with explicit tuning.
func NewWithConfig(cfg config.TetrisConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.fixedCfg {
		cfg, err := config.LoadTetris(configPath)
		if err != nil {
			cfg = config.DefaultTetrisConfig()
		}
		if difficultyPreset != "" {
			config.ApplyTetrisPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	def := config.DefaultTetrisConfig()
	if g.cfg.Cols < 4 || g.cfg.Rows < 4 {
		g.cfg.Cols, g.cfg.Rows = def.Cols, def.Rows
	}
	if len(g.cfg.LineScores) < 5 {
		g.cfg.LineScores = def.LineScores
	}
	if g.cfg.LinesPerLevel <= 0 {
		g.cfg.LinesPerLevel = def.LinesPerLevel
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.board = NewBoard(g.cfg.Cols, g.cfg.Rows)
	g.bag = nil
	g.score = 0
	g.lines = 0
	g.level = 1
	g.gameOver = false

	g.next = g.draw()
	g.spawn()
}

// draw takes the next kind from a shuffled bag of all seven tetrominoes.
func (g *Game) draw() Kind {
	if len(g.bag) == 0 {
		g.bag = make([]Kind, kindCount)
		for i := range g.bag {
			g.bag[i] = Kind(i)
		}
		g.rng.Shuffle(len(g.bag), func(i, j int) {
			g.bag[i], g.bag[j] = g.bag[j], g.bag[i]
		})
	}
	k := g.bag[0]
	g.bag = g.bag[1:]
	return k
}

// spawn places the queued piece at the top centre. A blocked spawn ends the game.
func (g *Game) spawn() {
	kind := g.next
	g.next = g.draw()
	size := shapes[kind].size
	g.piece = Piece{Kind: kind, X: (g.cfg.Cols - size) / 2}
	if !g.board.Fits(g.piece) {
		g.gameOver = true
	}
}

// Step applies input, then gravity.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	var fx core.Effects
	switch {
	case in.Has(core.ActionLeft):
		g.shift(-1)
	case in.Has(core.ActionRight):
		g.shift(1)
	}
	if in.Has(core.ActionUp) {
		g.rotate()
	}

	switch {
	case in.Has(core.ActionFire):
		rows := 0
		for g.board.Fits(g.piece.Moved(0, 1)) {
			g.piece = g.piece.Moved(0, 1)
			rows++
		}
		g.award(&fx, rows*hardDropPoints)
		g.lockPiece(&fx)
	default:
		if in.Has(core.ActionDown) && g.board.Fits(g.piece.Moved(0, 1)) {
			g.piece = g.piece.Moved(0, 1)
			g.award(&fx, softDropPoints)
		}
		g.gravity(&fx)
	}

	if err := g.checkBounds(); err != nil {
		fx.Err = err
		g.gameOver = true
	}
	if g.gameOver {
		fx.GameOver = true
	}
	return core.StepResult{State: g.State(), Effects: fx}
}

func (g *Game) award(fx *core.Effects, points int) {
	g.score += points
	fx.ScoreDelta += points
}

func (g *Game) shift(dx int) {
	if moved := g.piece.Moved(dx, 0); g.board.Fits(moved) {
		g.piece = moved
	}
}

// rotate turns the piece clockwise, trying each kick offset in order.
func (g *Game) rotate() {
	turned := g.piece.Rotated()
	for _, dx := range kickOffsets {
		if cand := turned.Moved(dx, 0); g.board.Fits(cand) {
			g.piece = cand
			return
		}
	}
}

// gravity drops the piece one row or locks it on contact.
func (g *Game) gravity(fx *core.Effects) {
	if moved := g.piece.Moved(0, 1); g.board.Fits(moved) {
		g.piece = moved
		return
	}
	g.lockPiece(fx)
}

// lockPiece fixes the piece, clears full rows, scores them and spawns the next piece.
func (g *Game) lockPiece(fx *core.Effects) {
	g.board.Lock(g.piece)
	n := g.board.ClearLines()
	if n > 0 {
		before := g.lines / g.cfg.LinesPerLevel
		g.lines += n
		g.award(fx, g.cfg.LineScores[min(n, 4)]*g.level)
		if g.lines/g.cfg.LinesPerLevel > before {
			fx.LevelCleared = true
		}
	}
	g.spawn()
}

// checkBounds verifies the falling piece is on the board.
func (g *Game) checkBounds() error {
	if g.gameOver {
		return nil
	}
	for _, c := range g.piece.Cells() {
		if !g.board.InBounds(c) {
			return core.Invariantf("%s piece cell %v outside %dx%d board", g.piece.Kind, c, g.cfg.Cols, g.cfg.Rows)
		}
	}
	return nil
}

// Lines returns the total number of cleared lines.
func (g *Game) Lines() int {
	return g.lines
}

// Level returns the current level.
func (g *Game) Level() int {
	return g.level
}

// AdvanceLevel catches the level up with the cleared line count.
func (g *Game) AdvanceLevel() {
	g.level = max(g.level+1, 1+g.lines/g.cfg.LinesPerLevel)
}

// TickInterval returns the gravity interval for the current level.
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

// ghost returns where the piece would land on a hard drop.
func (g *Game) ghost() Piece {
	p := g.piece
	for g.board.Fits(p.Moved(0, 1)) {
		p = p.Moved(0, 1)
	}
	return p
}

// Render draws the board, the falling piece and the side panel.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	boardW := g.cfg.Cols*2 + 2
	boardH := g.cfg.Rows + 2
	offX := (dst.Width() - boardW - 16) / 2
	offY := max(0, (dst.Height()-boardH)/2)
	dst.DrawBox(core.NewRect(offX, offY, boardW, boardH))

	cell := func(x, y int, r rune, c core.Color) {
		sx := offX + 1 + x*2
		sy := offY + 1 + y
		dst.SetColor(sx, sy, r, c)
		dst.SetColor(sx+1, sy, r, c)
	}

	for y := range g.cfg.Rows {
		for x := range g.cfg.Cols {
			if v := g.board.At(x, y); v != 0 {
				cell(x, y, '█', shapes[v-1].color)
			}
		}
	}
	if !g.gameOver {
		for _, c := range g.ghost().Cells() {
			cell(c.X, c.Y, '░', core.ColorGray)
		}
		for _, c := range g.piece.Cells() {
			cell(c.X, c.Y, '█', shapes[g.piece.Kind].color)
		}
	}

	px := offX + boardW + 2
	dst.DrawText(px, offY+1, "TETRIS")
	dst.DrawText(px, offY+3, fmt.Sprintf("Score %d", g.score))
	dst.DrawText(px, offY+4, fmt.Sprintf("Lines %d", g.lines))
	dst.DrawText(px, offY+5, fmt.Sprintf("Level %d", g.level))
	dst.DrawText(px, offY+7, "Next")
	for _, c := range rotations[g.next][0] {
		dst.SetColor(px+c.X*2, offY+8+c.Y, '█', shapes[g.next].color)
		dst.SetColor(px+c.X*2+1, offY+8+c.Y, '█', shapes[g.next].color)
	}

	if g.gameOver {
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score: %d  Lines: %d", g.score, g.lines))
	}
}
