// Package connectfour implements Connect Four against a rule-based CPU.
package connectfour

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

// Turn is the round's sub-state.
type Turn int

const (
	TurnPlayer  Turn = iota // Waiting for the player to drop
	TurnFalling             // A disc is falling
	TurnCPU                 // CPU is thinking
	TurnDraw                // Board full, showing the draw before replaying
	TurnWon                 // Player won, waiting for the next level
	TurnLost                // CPU won
)

// drawPauseTicks is how long a drawn board stays up before it is cleared.
const drawPauseTicks = 20

// falling is a disc on its way down.
type falling struct {
	Col, Row int
	Disc     Disc
}

// Game implements Connect Four.
type Game struct {
	cfg      config.ConnectFourConfig
	fixedCfg bool
	rng      *rand.Rand
	tick     uint64

	board  *Board
	cursor int
	turn   Turn
	disc   falling
	wait   int // Ticks left in the CPU think or draw pause

	score int
	level int
}

// New creates a Connect Four game that loads its tuning on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a Connect Four game with explicit tuning.
func NewWithConfig(cfg config.ConnectFourConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register("connectfour", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "connectfour"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Connect Four"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.fixedCfg {
		cfg, err := config.LoadConnectFour(configPath)
		if err != nil {
			cfg = config.DefaultConnectFourConfig()
		}
		if difficultyPreset != "" {
			config.ApplyConnectFourPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	if g.cfg.Rows < winLength || g.cfg.Cols < winLength {
		def := config.DefaultConnectFourConfig()
		g.cfg.Rows, g.cfg.Cols = def.Rows, def.Cols
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.score = 0
	g.level = 1
	g.newRound()
}

// newRound clears the board and hands the move to the player.
func (g *Game) newRound() {
	g.board = NewBoard(g.cfg.Rows, g.cfg.Cols)
	g.cursor = g.cfg.Cols / 2
	g.turn = TurnPlayer
	g.wait = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.turn == TurnLost || g.turn == TurnWon {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	var fx core.Effects
	switch g.turn {
	case TurnPlayer:
		g.playerInput(in)
	case TurnFalling:
		g.fall(&fx)
	case TurnCPU:
		g.wait--
		if g.wait <= 0 {
			col := ChooseColumn(cpuView{
				board:       g.board,
				me:          Yellow,
				level:       g.level,
				forkLevel:   g.cfg.ForkLevel,
				preferLevel: g.cfg.PreferLevel,
				rng:         g.rng,
			})
			if col < 0 {
				fx.Err = core.Invariantf("cpu found no legal column on a non-full board")
				g.turn = TurnLost
				break
			}
			g.startDrop(col, Yellow)
		}
	case TurnDraw:
		g.wait--
		if g.wait <= 0 {
			g.newRound()
		}
	}

	if fx.Err == nil {
		fx.Err = g.checkBounds()
	}
	if fx.Err != nil {
		g.turn = TurnLost
	}
	fx.GameOver = g.turn == TurnLost
	return core.StepResult{State: g.State(), Effects: fx}
}

// playerInput moves the cursor and drops on Fire or Down.
func (g *Game) playerInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft):
		g.cursor = max(0, g.cursor-1)
	case in.Has(core.ActionRight):
		g.cursor = min(g.cfg.Cols-1, g.cursor+1)
	}
	if (in.Has(core.ActionFire) || in.Has(core.ActionDown)) && g.board.Legal(g.cursor) {
		g.startDrop(g.cursor, Red)
	}
}

// startDrop releases a disc at the top of col.
func (g *Game) startDrop(col int, d Disc) {
	g.disc = falling{Col: col, Row: 0, Disc: d}
	g.turn = TurnFalling
}

// fall moves the disc down one row, or lands it on the highest filled
// cell below.
func (g *Game) fall(fx *core.Effects) {
	below := g.disc.Row + 1
	if below < g.cfg.Rows && g.board.At(below, g.disc.Col) == Empty {
		g.disc.Row = below
		return
	}
	g.board.Set(g.disc.Row, g.disc.Col, g.disc.Disc)
	g.land(fx)
}

// land settles the round after a disc comes to rest.
func (g *Game) land(fx *core.Effects) {
	d := g.disc.Disc
	switch {
	case g.board.WinsAt(g.disc.Row, g.disc.Col) && d == Red:
		points := g.cfg.WinPoints * g.level
		g.score += points
		fx.ScoreDelta += points
		fx.LevelCleared = true
		g.turn = TurnWon
	case g.board.WinsAt(g.disc.Row, g.disc.Col):
		g.turn = TurnLost
	case g.board.Full():
		g.score += g.cfg.DrawPoints
		fx.ScoreDelta += g.cfg.DrawPoints
		g.turn = TurnDraw
		g.wait = drawPauseTicks
	case d == Red:
		g.turn = TurnCPU
		g.wait = g.cfg.CPUDelay
	default:
		g.turn = TurnPlayer
	}
}

// checkBounds verifies the falling disc and cursor are on the board.
func (g *Game) checkBounds() error {
	if g.cursor < 0 || g.cursor >= g.cfg.Cols {
		return core.Invariantf("cursor column %d outside board", g.cursor)
	}
	if g.turn == TurnFalling {
		if g.disc.Row < 0 || g.disc.Row >= g.cfg.Rows || g.disc.Col < 0 || g.disc.Col >= g.cfg.Cols {
			return core.Invariantf("falling disc at (%d,%d) outside board", g.disc.Row, g.disc.Col)
		}
	}
	return nil
}

// Turn returns the current round sub-state.
func (g *Game) Turn() Turn {
	return g.turn
}

// Level returns the current level.
func (g *Game) Level() int {
	return g.level
}

// AdvanceLevel starts the next round one level up.
func (g *Game) AdvanceLevel() {
	g.level++
	g.newRound()
}

// TickInterval returns the fixed step used for falling discs.
func (g *Game) TickInterval() time.Duration {
	return config.TickInterval(g.cfg.TickMs)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		GameOver: g.turn == TurnLost,
	}
}

// Render draws the board with the cursor above it.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, fmt.Sprintf(" Connect Four  Score: %d  Level: %d", g.score, g.level))

	cellW := 4
	boardW := g.cfg.Cols*cellW + 1
	offX := (dst.Width() - boardW) / 2
	offY := 3

	if g.turn == TurnPlayer {
		dst.SetColor(offX+g.cursor*cellW+2, offY-1, '▼', core.ColorBrightRed)
	}

	glyph := func(d Disc) (rune, core.Color) {
		switch d {
		case Red:
			return '●', core.ColorBrightRed
		case Yellow:
			return '●', core.ColorBrightYellow
		}
		return '·', core.ColorGray
	}

	for r := range g.cfg.Rows {
		y := offY + r
		for c := range g.cfg.Cols {
			x := offX + c*cellW
			dst.SetColor(x, y, '│', core.ColorBlue)
			d := g.board.At(r, c)
			if g.turn == TurnFalling && g.disc.Row == r && g.disc.Col == c {
				d = g.disc.Disc
			}
			ch, col := glyph(d)
			dst.SetColor(x+2, y, ch, col)
		}
		dst.SetColor(offX+boardW-1, y, '│', core.ColorBlue)
	}
	dst.DrawHLine(offX, offY+g.cfg.Rows, boardW, '─')

	status := ""
	switch g.turn {
	case TurnPlayer:
		status = "Your move: ←/→ to aim, Space to drop"
	case TurnCPU, TurnFalling:
		status = "..."
	}
	dst.DrawTextCentered(offY+g.cfg.Rows+2, status)

	switch g.turn {
	case TurnLost:
		dst.DrawOverlay("CPU wins", fmt.Sprintf("Score: %d", g.score))
	case TurnWon:
		dst.DrawOverlay("You win!", fmt.Sprintf("Level %d next", g.level+1))
	case TurnDraw:
		dst.DrawOverlay("Draw", "Replaying this level")
	}
}
