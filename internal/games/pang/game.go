// Package pang implements Super Pang: shoot bouncing bubbles that split
// into smaller ones until none are left.
package pang

import (
	"fmt"
	"math"
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

// spawnHeight is the fraction of the field height where level bubbles appear.
const spawnHeight = 0.25

var bubbleColors = [MaxSize + 1]core.Color{core.ColorDefault, core.ColorBrightMagenta, core.ColorBrightCyan, core.ColorBrightYellow, core.ColorBrightRed}

// Game implements Super Pang.
type Game struct {
	cfg      config.PangConfig
	fixedCfg bool
	tick     uint64

	playerX float64
	bullets []Bullet
	bubbles []Bubble

	score int
	lives int
	level int
	mult  float64 // Horizontal speed multiplier for the current cycle

	gameOver     bool
	levelCleared bool
}

// New creates a Pang game that loads its tuning on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a Pang game with explicit tuning.
func NewWithConfig(cfg config.PangConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register("pang", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "pang"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Super Pang"
}

// Reset initializes/restarts the game. Pang has no random elements, so
// the seed is unused.
func (g *Game) Reset(core.RuntimeConfig) {
	if !g.fixedCfg {
		cfg, err := config.LoadPang(configPath)
		if err != nil {
			cfg = config.DefaultPangConfig()
		}
		if difficultyPreset != "" {
			config.ApplyPangPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	def := config.DefaultPangConfig()
	if g.cfg.Width <= 0 || g.cfg.Height <= 0 {
		g.cfg.Width, g.cfg.Height = def.Width, def.Height
	}
	if g.cfg.MaxSpeedMult < 1 {
		g.cfg.MaxSpeedMult = 1
	}
	if g.cfg.Lives <= 0 {
		g.cfg.Lives = def.Lives
	}

	g.tick = 0
	g.score = 0
	g.lives = g.cfg.Lives
	g.level = 1
	g.gameOver = false
	g.loadLevel()
}

// loadLevel spawns the current layout's bubbles and recentres the player.
func (g *Game) loadLevel() {
	g.levelCleared = false
	g.mult = speedMultiplier(g.level, g.cfg.SpeedPerLoop, g.cfg.MaxSpeedMult)
	layout := layouts[(g.level-1)%len(layouts)]

	g.bubbles = g.bubbles[:0]
	for _, s := range layout.Bubbles {
		g.bubbles = append(g.bubbles, Bubble{
			Size: s.Size,
			X:    s.X * g.cfg.Width,
			Y:    g.cfg.Height * spawnHeight,
			VX:   s.Dir * g.cfg.BubbleSpeed * g.mult,
		})
	}
	g.bullets = g.bullets[:0]
	g.playerX = g.cfg.Width / 2
}

// playerBox returns the player's hitbox on the floor.
func (g *Game) playerBox() core.RectF {
	return core.RectAround(g.playerX, g.cfg.Height-playerH/2, playerW, playerH)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver || g.levelCleared {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	var fx core.Effects
	g.movePlayer(in)
	if in.Has(core.ActionFire) || in.Has(core.ActionUp) {
		g.fire()
	}
	g.moveBullets()
	for i := range g.bubbles {
		stepBubble(&g.bubbles[i], g.cfg.Width, g.cfg.Height, g.cfg.Gravity)
	}
	g.popBubbles(&fx)
	g.checkPlayerHit()

	if !g.gameOver && len(g.bubbles) == 0 {
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

// movePlayer slides the player along the floor. The floor lane is the
// tunnel: walking off one edge re-enters from the other.
func (g *Game) movePlayer(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft):
		g.playerX -= g.cfg.PlayerSpeed
	case in.Has(core.ActionRight):
		g.playerX += g.cfg.PlayerSpeed
	default:
		return
	}

	w := g.cfg.Width
	if g.cfg.TunnelLane {
		switch {
		case g.playerX < 0:
			g.playerX += w
		case g.playerX >= w:
			g.playerX -= w
		}
		return
	}
	g.playerX = core.ClampF(g.playerX, playerW/2, w-playerW/2)
}

// fire launches a bullet when fewer than MaxBullets are live.
func (g *Game) fire() {
	if len(g.bullets) >= g.cfg.MaxBullets {
		return
	}
	g.bullets = append(g.bullets, Bullet{X: g.playerX, Y: g.cfg.Height - playerH - bulletH/2})
}

// moveBullets advances bullets and drops those past the ceiling.
func (g *Game) moveBullets() {
	live := g.bullets[:0]
	for _, s := range g.bullets {
		s.Y -= g.cfg.BulletSpeed
		if s.Y+bulletH/2 > 0 {
			live = append(live, s)
		}
	}
	g.bullets = live
}

// popBubbles resolves bullet hits, splitting or removing the bubbles hit.
func (g *Game) popBubbles(fx *core.Effects) {
	hits := resolveHits(g.bullets, g.bubbles)
	if len(hits) == 0 {
		return
	}

	usedBullet := make([]bool, len(g.bullets))
	popped := make([]bool, len(g.bubbles))
	for _, h := range hits {
		usedBullet[h.bullet] = true
		popped[h.bubble] = true
	}

	next := make([]Bubble, 0, len(g.bubbles)+len(hits))
	for i, b := range g.bubbles {
		if !popped[i] {
			next = append(next, b)
			continue
		}
		points := Points(g.cfg.PointsUnit, b.Size)
		g.score += points
		fx.ScoreDelta += points
		next = append(next, Split(b, g.cfg.PopVelocity, g.cfg.BubbleSpeed*g.mult)...)
	}
	g.bubbles = next

	live := g.bullets[:0]
	for i, s := range g.bullets {
		if !usedBullet[i] {
			live = append(live, s)
		}
	}
	g.bullets = live
}

// checkPlayerHit costs a life when a bubble touches the player and
// restarts the level layout.
func (g *Game) checkPlayerHit() {
	pb := g.playerBox().Inset(playerInset)
	for _, b := range g.bubbles {
		if !pb.Intersects(b.Box()) {
			continue
		}
		g.lives--
		if g.lives <= 0 {
			g.gameOver = true
			return
		}
		g.loadLevel()
		return
	}
}

// checkBounds verifies every entity is inside the field. The player may
// sit anywhere along the tunnel lane.
func (g *Game) checkBounds() error {
	w, h := g.cfg.Width, g.cfg.Height
	const eps = 1e-9
	if g.playerX < 0 || g.playerX >= w {
		return core.Invariantf("player at x=%.2f outside lane [0,%.0f)", g.playerX, w)
	}
	for i, b := range g.bubbles {
		box := b.Box()
		if box.X < -eps || box.Right() > w+eps || box.Y < -eps || box.Bottom() > h+eps {
			return core.Invariantf("bubble %d at (%.2f,%.2f) size %d outside field", i, b.X, b.Y, b.Size)
		}
	}
	for i, s := range g.bullets {
		if s.X < 0 || s.X >= w || s.Y > h {
			return core.Invariantf("bullet %d at (%.2f,%.2f) outside field", i, s.X, s.Y)
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

// AdvanceLevel loads the next layout.
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

// Render scales the field onto the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, fmt.Sprintf(" Super Pang  Score: %d  Lives: %d  Level: %d  %s",
		g.score, g.lives, g.level, layouts[(g.level-1)%len(layouts)].Name))

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

	for _, b := range g.bubbles {
		fill(b.Box(), '●', bubbleColors[b.Size])
	}
	for _, s := range g.bullets {
		x, y := plot(s.X, s.Y)
		for ty := y; ty <= fieldH+1; ty++ {
			dst.SetColor(x, ty, '|', core.ColorWhite)
		}
	}
	fill(g.playerBox(), '▲', core.ColorBrightGreen)

	switch {
	case g.gameOver:
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score: %d", g.score))
	case g.levelCleared:
		dst.DrawOverlay(fmt.Sprintf("Level %d cleared!", g.level), "Next stage")
	}
}
