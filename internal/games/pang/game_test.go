package pang

import (
	"math"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

func newTestGame() *Game {
	g := NewWithConfig(config.DefaultPangConfig())
	g.Reset(core.RuntimeConfig{})
	return g
}

func TestSplitSizeThree(t *testing.T) {
	b := Bubble{Size: 3, X: 50, Y: 20, VX: 0.7, VY: 0.3}
	kids := Split(b, 1.2, 0.5)

	if len(kids) != 2 {
		t.Fatalf("split produced %d bubbles, expected 2", len(kids))
	}
	for _, k := range kids {
		if k.Size != 2 {
			t.Errorf("child size = %d, expected 2", k.Size)
		}
		if k.X != b.X || k.Y != b.Y {
			t.Errorf("child at (%v,%v), expected parent centre", k.X, k.Y)
		}
		if k.VY != -1.2 {
			t.Errorf("child vy = %v, expected -1.2", k.VY)
		}
	}
	if math.Signbit(kids[0].VX) == math.Signbit(kids[1].VX) {
		t.Errorf("children should move apart, vx = %v and %v", kids[0].VX, kids[1].VX)
	}
	if math.Abs(kids[0].VX) != 0.7 || math.Abs(kids[1].VX) != 0.7 {
		t.Errorf("children keep the parent's horizontal speed, got %v and %v", kids[0].VX, kids[1].VX)
	}
}

func TestSplitSizeOne(t *testing.T) {
	if kids := Split(Bubble{Size: 1, VX: 1}, 1.2, 0.5); len(kids) != 0 {
		t.Errorf("size 1 split produced %d bubbles", len(kids))
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		size     int
		expected int
	}{
		{1, 200},
		{2, 150},
		{3, 100},
		{4, 50},
	}
	for _, tc := range tests {
		if got := Points(50, tc.size); got != tc.expected {
			t.Errorf("Points(%d) = %d, expected %d", tc.size, got, tc.expected)
		}
	}
}

func TestPopSizeOneAwardsPoints(t *testing.T) {
	g := newTestGame()
	g.bubbles = []Bubble{{Size: 1, X: 60, Y: 30}, {Size: 4, X: 10, Y: 10}}
	g.bullets = []Bullet{{X: 60, Y: 30}}

	var fx core.Effects
	g.popBubbles(&fx)
	if fx.ScoreDelta != 200 {
		t.Errorf("delta = %d, expected 200", fx.ScoreDelta)
	}
	if len(g.bubbles) != 1 || g.bubbles[0].Size != 4 {
		t.Errorf("size 1 bubble should vanish, left %+v", g.bubbles)
	}
	if len(g.bullets) != 0 {
		t.Error("bullet should be consumed")
	}
}

func TestPopSizeThreeInGame(t *testing.T) {
	g := newTestGame()
	g.bubbles = []Bubble{{Size: 3, X: 60, Y: 30, VX: -0.5}}
	g.bullets = []Bullet{{X: 60, Y: 31}}

	var fx core.Effects
	g.popBubbles(&fx)
	if fx.ScoreDelta != 100 {
		t.Errorf("delta = %d, expected 100", fx.ScoreDelta)
	}
	if len(g.bubbles) != 2 {
		t.Fatalf("expected two children, got %d", len(g.bubbles))
	}
	if g.bubbles[0].VX*g.bubbles[1].VX >= 0 {
		t.Error("children should have opposite-signed vx")
	}
}

func TestClosestCentreWins(t *testing.T) {
	bubbles := []Bubble{
		{Size: 4, X: 52, Y: 30}, // Box 46..58
		{Size: 2, X: 49, Y: 30}, // Box 46..52
	}
	bullets := []Bullet{{X: 49.5, Y: 30}}

	hits := resolveHits(bullets, bubbles)
	if len(hits) != 1 {
		t.Fatalf("expected one hit, got %d", len(hits))
	}
	if hits[0].bubble != 1 {
		t.Errorf("bubble %d won, expected the closer bubble 1", hits[0].bubble)
	}
}

func TestClosestCentreTieLowestIndex(t *testing.T) {
	bubbles := []Bubble{
		{Size: 2, X: 48, Y: 30},
		{Size: 2, X: 52, Y: 30},
	}
	bullets := []Bullet{{X: 50, Y: 30}}
	hits := resolveHits(bullets, bubbles)
	if len(hits) != 1 || hits[0].bubble != 0 {
		t.Errorf("tie should go to the lowest index, got %+v", hits)
	}
}

func TestOneHitPerBubble(t *testing.T) {
	bubbles := []Bubble{{Size: 4, X: 50, Y: 30}}
	bullets := []Bullet{{X: 49, Y: 30}, {X: 51, Y: 30}}
	hits := resolveHits(bullets, bubbles)
	if len(hits) != 1 || hits[0].bullet != 0 {
		t.Errorf("a bubble takes only the first bullet, got %+v", hits)
	}

	g := newTestGame()
	g.bubbles = bubbles
	g.bullets = bullets
	var fx core.Effects
	g.popBubbles(&fx)
	if len(g.bullets) != 1 {
		t.Errorf("unused bullet should survive, got %d bullets", len(g.bullets))
	}
	if len(g.bubbles) != 2 {
		t.Errorf("bubble should split exactly once, got %d bubbles", len(g.bubbles))
	}
}

func TestFloorBounce(t *testing.T) {
	b := Bubble{Size: 2, X: 60, Y: 56, VY: 2}
	stepBubble(&b, 120, 60, 0.06)
	if b.VY >= 0 {
		t.Errorf("floor contact should send the bubble up, vy = %v", b.VY)
	}
	if b.Y+b.Side()/2 > 60 {
		t.Errorf("bubble sunk into the floor, y = %v", b.Y)
	}
}

func TestWallRebound(t *testing.T) {
	b := Bubble{Size: 3, X: 4.6, Y: 30, VX: -1}
	stepBubble(&b, 120, 60, 0.06)
	if b.VX <= 0 {
		t.Errorf("left wall should invert vx, got %v", b.VX)
	}
	if b.X != b.Side()/2 {
		t.Errorf("bubble should be clamped to the wall, x = %v", b.X)
	}

	b = Bubble{Size: 1, X: 118.9, Y: 30, VX: 1}
	stepBubble(&b, 120, 60, 0.06)
	if b.VX >= 0 || b.X != 120-b.Side()/2 {
		t.Errorf("right wall rebound failed: x=%v vx=%v", b.X, b.VX)
	}
}

func TestPlayerTunnelWrap(t *testing.T) {
	g := newTestGame()
	g.bubbles = []Bubble{{Size: 1, X: 60, Y: 10}}
	g.playerX = 0.5

	res := g.Step(core.FrameOf(core.ActionLeft))
	if res.Effects.Err != nil {
		t.Fatalf("tunnel wrap flagged: %v", res.Effects.Err)
	}
	if want := 0.5 - g.cfg.PlayerSpeed + g.cfg.Width; math.Abs(g.playerX-want) > 1e-9 {
		t.Errorf("player x = %v, expected %v", g.playerX, want)
	}

	g.Step(core.FrameOf(core.ActionRight))
	if g.playerX > 0.5+1e-9 {
		t.Errorf("walking back should re-enter on the left, x = %v", g.playerX)
	}
}

func TestMaxBullets(t *testing.T) {
	g := newTestGame()
	g.bubbles = []Bubble{{Size: 1, X: 5, Y: 10}}
	for range 5 {
		g.Step(core.FrameOf(core.ActionFire))
	}
	if len(g.bullets) > g.cfg.MaxBullets {
		t.Errorf("%d live bullets, max %d", len(g.bullets), g.cfg.MaxBullets)
	}
}

func TestPlayerHitLosesLife(t *testing.T) {
	g := newTestGame()
	g.bubbles = []Bubble{{Size: 2, X: g.playerX, Y: g.cfg.Height - 3}}

	g.Step(core.NewInputFrame())
	if g.lives != g.cfg.Lives-1 {
		t.Errorf("lives = %d, expected %d", g.lives, g.cfg.Lives-1)
	}
	if len(g.bubbles) != len(layouts[0].Bubbles) {
		t.Error("level layout should restart after a hit")
	}

	g.lives = 1
	g.bubbles = []Bubble{{Size: 2, X: g.playerX, Y: g.cfg.Height - 3}}
	res := g.Step(core.NewInputFrame())
	if !res.Effects.GameOver {
		t.Error("losing the last life should end the game")
	}
}

func TestLevelClearedAndSpeedCycle(t *testing.T) {
	g := newTestGame()
	g.bubbles = []Bubble{{Size: 1, X: 60, Y: 40}}
	g.bullets = []Bullet{{X: 60, Y: 42}}

	res := g.Step(core.NewInputFrame())
	if !res.Effects.LevelCleared {
		t.Fatal("popping the last bubble should clear the level")
	}

	g.level = LayoutCount()
	g.AdvanceLevel()
	if math.Abs(g.mult-1.1) > 1e-9 {
		t.Errorf("second cycle multiplier = %v, expected 1.1", g.mult)
	}
	if math.Abs(math.Abs(g.bubbles[0].VX)-g.cfg.BubbleSpeed*1.1) > 1e-9 {
		t.Errorf("bubble speed = %v, expected %v", g.bubbles[0].VX, g.cfg.BubbleSpeed*1.1)
	}

	if got := speedMultiplier(1000, 0.1, 2); got != 2 {
		t.Errorf("multiplier should cap at 2, got %v", got)
	}
}

func TestEntitiesStayInBounds(t *testing.T) {
	g := newTestGame()
	actions := []core.Action{core.ActionLeft, core.ActionFire, core.ActionRight, core.ActionRight, core.ActionFire, core.ActionNone}
	for i := 0; i < 20000 && !g.gameOver; i++ {
		res := g.Step(core.FrameOf(actions[(i/30)%len(actions)]))
		if res.Effects.Err != nil {
			t.Fatalf("tick %d: %v", i, res.Effects.Err)
		}
		if g.levelCleared {
			g.AdvanceLevel()
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame()
	g2 := newTestGame()
	actions := []core.Action{core.ActionLeft, core.ActionFire, core.ActionRight, core.ActionNone}
	for i := range 2000 {
		in := core.FrameOf(actions[(i/11)%len(actions)])
		g1.Step(in)
		g2.Step(in)
	}
	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots diverged:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}
