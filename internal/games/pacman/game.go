// Package pacman implements a maze chase with four ghost personalities.
package pacman

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

var ghostColors = [...]core.Color{core.ColorBrightRed, core.ColorBrightMagenta, core.ColorBrightCyan, core.ColorOrange}

// Game implements Pacman.
type Game struct {
	cfg      config.PacmanConfig
	fixedCfg bool
	rng      *rand.Rand
	tick     uint64

	maze      *Maze
	layoutIdx int

	pac     core.Point
	pacPrev core.Point
	pacDir  core.Dir
	pending core.Dir
	ghosts  []*Ghost

	score      int
	lives      int
	level      int
	sinceReset int // Ticks since movers were last placed at their homes

	gameOver     bool
	levelCleared bool
	err          error
}

// New creates a Pacman game that loads its tuning on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a Pacman game with explicit tuning.
func NewWithConfig(cfg config.PacmanConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register("pacman", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "pacman"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Pacman"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.fixedCfg {
		cfg, err := config.LoadPacman(configPath)
		if err != nil {
			cfg = config.DefaultPacmanConfig()
		}
		if difficultyPreset != "" {
			config.ApplyPacmanPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	if g.cfg.Lives <= 0 {
		g.cfg.Lives = config.DefaultPacmanConfig().Lives
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.score = 0
	g.lives = g.cfg.Lives
	g.level = 1
	g.gameOver = false
	g.err = nil
	g.loadLayout(0)
}

// loadLayout parses a maze and places all movers.
func (g *Game) loadLayout(idx int) {
	g.layoutIdx = idx
	g.levelCleared = false
	m, err := ParseMaze(layouts[idx])
	if err != nil {
		// Built-in layouts are validated by tests; a broken one ends the round.
		g.err = core.Invariantf("%v", err)
		g.gameOver = true
		return
	}
	g.maze = m

	g.ghosts = g.ghosts[:0]
	corners := []core.Point{
		{X: m.W - 1, Y: 0},
		{X: 0, Y: 0},
		{X: m.W - 1, Y: m.H - 1},
		{X: 0, Y: m.H - 1},
	}
	for i, home := range m.Homes {
		if i >= 4 {
			break
		}
		g.ghosts = append(g.ghosts, &Ghost{
			Kind:      Personality(i),
			Home:      home,
			Corner:    corners[i],
			ReleaseAt: i * g.cfg.ReleaseEvery,
		})
	}
	g.resetMovers()
}

// resetMovers returns pacman and the ghosts to their start cells.
func (g *Game) resetMovers() {
	g.pac = g.maze.PacStart
	g.pacPrev = g.pac
	g.pacDir = core.DirNone
	g.pending = core.DirNone
	for _, gh := range g.ghosts {
		gh.Pos = gh.Home
		gh.Prev = gh.Home
		gh.Dir = core.DirNone
		gh.Frightened = 0
	}
	g.sinceReset = 0
}

// chooseLayout returns the maze index for a level. Levels past the
// ordered set draw a random maze other than the previous one.
func chooseLayout(level, prev int, rng *rand.Rand) int {
	n := len(layouts)
	if level <= n {
		return level - 1
	}
	idx := rng.Intn(n - 1)
	if idx >= prev {
		idx++
	}
	return idx
}

// ghostEvery returns how many ticks separate ghost moves at the current level.
func (g *Game) ghostEvery(gh *Ghost) int {
	every := max(1, g.cfg.GhostEvery-(g.level-1)/2)
	if gh.Frightened > 0 {
		every++
	}
	return every
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.err != nil {
		return core.StepResult{State: g.State(), Effects: core.Effects{Err: g.err, GameOver: true}}
	}
	if g.gameOver || g.levelCleared {
		return core.StepResult{State: g.State()}
	}
	g.tick++
	g.sinceReset++

	var fx core.Effects
	if d := in.Heading(); d != core.DirNone {
		g.pending = d
	}

	g.movePacman()
	g.eat(&fx)
	g.moveGhosts()
	g.resolveCollisions(&fx)

	for _, gh := range g.ghosts {
		if gh.Frightened > 0 {
			gh.Frightened--
		}
	}

	if !g.gameOver && g.maze.Remaining() == 0 {
		g.levelCleared = true
		fx.LevelCleared = true
	}

	if err := g.checkBounds(); err != nil {
		fx.Err = err
		g.gameOver = true
	}
	fx.GameOver = g.gameOver
	return core.StepResult{State: g.State(), Effects: fx}
}

// movePacman applies the pending heading when its next cell is open,
// then advances one cell if possible.
func (g *Game) movePacman() {
	g.pacPrev = g.pac
	if _, ok := g.maze.Next(g.pac, g.pending); ok && g.pending != core.DirNone {
		g.pacDir = g.pending
	}
	if next, ok := g.maze.Next(g.pac, g.pacDir); ok && g.pacDir != core.DirNone {
		g.pac = next
	}
}

// eat collects the item under pacman.
func (g *Game) eat(fx *core.Effects) {
	switch g.maze.Eat(g.pac) {
	case itemDot:
		g.award(fx, g.cfg.DotPoints)
	case itemPellet:
		g.award(fx, g.cfg.PelletPoints)
		for _, gh := range g.ghosts {
			if g.sinceReset >= gh.ReleaseAt {
				gh.Frightened = g.cfg.FrightTicks
			}
		}
	}
}

func (g *Game) award(fx *core.Effects, points int) {
	g.score += points
	fx.ScoreDelta += points
}

// blinky returns the position of the direct-chase ghost, or pacman if absent.
func (g *Game) blinky() core.Point {
	for _, gh := range g.ghosts {
		if gh.Kind == Blinky {
			return gh.Pos
		}
	}
	return g.pac
}

// moveGhosts advances every released ghost whose move tick has come.
func (g *Game) moveGhosts() {
	blinky := g.blinky()
	for _, gh := range g.ghosts {
		gh.Prev = gh.Pos
		if g.sinceReset < gh.ReleaseAt || g.sinceReset%g.ghostEvery(gh) != 0 {
			continue
		}

		opts := options(g.maze, gh.Pos, gh.Dir)
		v := &view{
			self:       gh.Pos,
			options:    opts,
			maze:       g.maze,
			pac:        g.pac,
			pacDir:     g.pacDir,
			blinky:     blinky,
			corner:     gh.Corner,
			frightened: gh.Frightened > 0,
			lookAhead:  g.cfg.LookAhead,
			fleeDist:   g.cfg.FleeDistance,
			wander:     g.cfg.WanderChance,
			roll:       g.rng.Float64(),
			pick:       pickIndex(g.rng, len(opts)),
		}
		d := decide(gh.Kind, v)
		if next, ok := g.maze.Next(gh.Pos, d); ok {
			gh.Pos = next
			gh.Dir = d
		}
	}
}

// pickIndex draws a uniform index into n options; 0 when there are none.
func pickIndex(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.Intn(n)
}

// hitbox returns a mover's inset box at fraction t of its move from prev to cur.
func (g *Game) hitbox(prev, cur core.Point, t float64) core.RectF {
	// A tunnel wrap is a teleport, not a slide across the maze.
	if core.Abs(cur.X-prev.X) > 1 {
		prev = cur
	}
	x := float64(prev.X) + float64(cur.X-prev.X)*t
	y := float64(prev.Y) + float64(cur.Y-prev.Y)*t
	return core.RectF{X: x, Y: y, W: 1, H: 1}.Inset(g.cfg.HitboxInset)
}

// collides reports whether pacman and the ghost touched during this tick.
func (g *Game) collides(gh *Ghost) bool {
	if g.pacPrev == gh.Pos && g.pac == gh.Prev {
		return true
	}
	for _, t := range [...]float64{0.5, 1} {
		if g.hitbox(g.pacPrev, g.pac, t).Intersects(g.hitbox(gh.Prev, gh.Pos, t)) {
			return true
		}
	}
	return false
}

// resolveCollisions eats frightened ghosts and costs a life for any other contact.
func (g *Game) resolveCollisions(fx *core.Effects) {
	for _, gh := range g.ghosts {
		if !g.collides(gh) {
			continue
		}
		if gh.Frightened > 0 {
			g.award(fx, g.cfg.GhostPoints)
			gh.Pos = gh.Home
			gh.Prev = gh.Home
			gh.Dir = core.DirNone
			gh.Frightened = 0
			continue
		}
		g.lives--
		if g.lives <= 0 {
			g.gameOver = true
			return
		}
		g.resetMovers()
		return
	}
}

// checkBounds verifies every mover is on an open maze cell.
func (g *Game) checkBounds() error {
	if g.maze.Wall(g.pac) {
		return core.Invariantf("pacman at %v is outside the maze or in a wall", g.pac)
	}
	for _, gh := range g.ghosts {
		if g.maze.Wall(gh.Pos) {
			return core.Invariantf("%s at %v is outside the maze or in a wall", gh.Kind, gh.Pos)
		}
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

// AdvanceLevel loads the next maze.
func (g *Game) AdvanceLevel() {
	g.level++
	g.loadLayout(chooseLayout(g.level, g.layoutIdx, g.rng))
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

// Render draws the maze, collectibles and movers.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.maze == nil {
		return
	}
	m := g.maze

	dst.DrawText(0, 0, fmt.Sprintf(" Pacman  Score: %d  Lives: %d  Level: %d  %s", g.score, g.lives, g.level, layouts[g.layoutIdx].Name))

	offX := (dst.Width() - m.W*2) / 2
	offY := 2
	cell := func(p core.Point, r rune, c core.Color) {
		dst.SetColor(offX+p.X*2, offY+p.Y, r, c)
	}

	for y := range m.H {
		for x := range m.W {
			p := core.Point{X: x, Y: y}
			switch {
			case m.walls[y][x]:
				cell(p, '█', core.ColorBlue)
				dst.SetColor(offX+x*2+1, offY+y, '█', core.ColorBlue)
			case m.items[y][x] == itemDot:
				cell(p, '·', core.ColorWhite)
			case m.items[y][x] == itemPellet:
				cell(p, '●', core.ColorBrightWhite)
			}
		}
	}

	for _, gh := range g.ghosts {
		color := ghostColors[gh.Kind]
		glyph := 'M'
		if gh.Frightened > 0 {
			color = core.ColorBrightBlue
			glyph = 'm'
		}
		cell(gh.Pos, glyph, color)
	}
	cell(g.pac, 'C', core.ColorBrightYellow)

	switch {
	case g.gameOver:
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score: %d", g.score))
	case g.levelCleared:
		dst.DrawOverlay(fmt.Sprintf("Level %d cleared!", g.level), "Get ready")
	}
}
