package tetris

import (
	"testing"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

func newTestGame(seed int64) *Game {
	g := NewWithConfig(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{Seed: seed})
	return g
}

// fillRow occupies row y except the listed columns.
func fillRow(b *Board, y int, holes ...int) {
	for x := range b.Cols {
		b.SetCell(x, y, int(KindO)+1)
	}
	for _, h := range holes {
		b.SetCell(h, y, 0)
	}
}

func TestRotationsHaveFourCells(t *testing.T) {
	for k := range kindCount {
		for r := range 4 {
			if n := len(rotations[k][r]); n != 4 {
				t.Errorf("%s rotation %d has %d cells", k, r, n)
			}
		}
	}
}

func TestRowClearScenario(t *testing.T) {
	g := newTestGame(1)
	fillRow(g.board, 19, 5)
	g.board.SetCell(0, 18, int(KindT)+1) // marker above the full row

	// Vertical I piece over column 5.
	g.piece = Piece{Kind: KindI, Rot: 1, X: 3, Y: 0}
	for _, c := range g.piece.Cells() {
		if c.X != 5 {
			t.Fatalf("test piece should occupy column 5, got %v", c)
		}
	}

	startScore := g.score
	level := g.level
	for i := 0; i < 40 && g.lines == 0; i++ {
		g.Step(core.NewInputFrame())
	}

	if g.lines != 1 {
		t.Fatalf("lines = %d, expected 1", g.lines)
	}
	if got := g.score - startScore; got != 100*level {
		t.Errorf("score delta = %d, expected %d", got, 100*level)
	}
	if g.board.At(0, 19) == 0 {
		t.Error("marker row should shift down into row 19")
	}
	if g.board.At(0, 18) != 0 {
		t.Error("row 18 should be empty after the shift")
	}
	for y := 17; y <= 19; y++ {
		if g.board.At(5, y) == 0 {
			t.Errorf("remaining I cells should sit at (5,%d)", y)
		}
	}
	if g.board.At(1, 19) != 0 {
		t.Error("row 19 should hold only the shifted row 18 contents")
	}
}

func TestLineScoresScaleWithLevel(t *testing.T) {
	tests := []struct {
		rows     int
		level    int
		expected int
	}{
		{1, 1, 100},
		{2, 1, 300},
		{3, 2, 1000},
		{4, 3, 2400},
	}

	for _, tc := range tests {
		g := newTestGame(2)
		g.level = tc.level
		for i := range tc.rows {
			fillRow(g.board, 19-i, 0)
		}
		// Vertical I piece drops into column 0.
		g.piece = Piece{Kind: KindI, Rot: 1, X: -2, Y: 16}
		var fx core.Effects
		g.lockPiece(&fx)
		if fx.ScoreDelta != tc.expected {
			t.Errorf("%d rows at level %d: delta %d, expected %d", tc.rows, tc.level, fx.ScoreDelta, tc.expected)
		}
	}
}

func TestHardDrop(t *testing.T) {
	g := newTestGame(3)
	g.piece = Piece{Kind: KindO, X: 4, Y: 0}

	res := g.Step(core.FrameOf(core.ActionFire))
	// O piece falls from rows 0-1 to rows 18-19.
	if res.Effects.ScoreDelta != 18*hardDropPoints {
		t.Errorf("hard drop delta = %d, expected %d", res.Effects.ScoreDelta, 18*hardDropPoints)
	}
	if g.board.At(4, 19) == 0 || g.board.At(5, 18) == 0 {
		t.Error("hard-dropped piece should lock on the floor")
	}
}

func TestSoftDrop(t *testing.T) {
	g := newTestGame(4)
	g.piece = Piece{Kind: KindO, X: 4, Y: 0}

	res := g.Step(core.FrameOf(core.ActionDown))
	if res.Effects.ScoreDelta != softDropPoints {
		t.Errorf("soft drop delta = %d, expected %d", res.Effects.ScoreDelta, softDropPoints)
	}
	if g.piece.Y != 2 {
		t.Errorf("soft drop plus gravity should move two rows, Y = %d", g.piece.Y)
	}
}

func TestWallKick(t *testing.T) {
	g := newTestGame(5)
	// Vertical I against the right wall; the spawn orientation needs a kick left.
	g.piece = Piece{Kind: KindI, Rot: 1, X: 7, Y: 5}
	g.rotate()
	if g.piece.Rot != 2 {
		t.Fatalf("rotation should succeed with a kick, rot = %d", g.piece.Rot)
	}
	if !g.board.Fits(g.piece) {
		t.Error("kicked piece must fit")
	}
}

func TestShiftBlockedByWall(t *testing.T) {
	g := newTestGame(6)
	g.piece = Piece{Kind: KindO, X: 0, Y: 5}
	g.shift(-1)
	if g.piece.X != 0 {
		t.Errorf("piece moved through the wall to X=%d", g.piece.X)
	}
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	g := newTestGame(7)
	for y := range 2 {
		fillRow(g.board, y, 0)
	}
	g.spawn()
	if !g.gameOver {
		t.Fatal("blocked spawn should end the game")
	}
	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Error("state should report game over")
	}
}

func TestLevelClearedEveryTenLines(t *testing.T) {
	g := newTestGame(8)
	g.lines = 9
	fillRow(g.board, 19, 0)
	g.piece = Piece{Kind: KindI, Rot: 1, X: -2, Y: 16}

	var fx core.Effects
	g.lockPiece(&fx)
	if !fx.LevelCleared {
		t.Fatal("crossing 10 lines should clear the level")
	}
	g.AdvanceLevel()
	if g.Level() != 2 {
		t.Errorf("level = %d, expected 2", g.Level())
	}
	if got := g.TickInterval(); got != 730*time.Millisecond {
		t.Errorf("level 2 interval = %v, expected 730ms", got)
	}
}

func TestPieceStaysInBounds(t *testing.T) {
	g := newTestGame(99)
	actions := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionRight, core.ActionDown, core.ActionNone, core.ActionFire}
	for i := 0; i < 2000 && !g.gameOver; i++ {
		res := g.Step(core.FrameOf(actions[i%len(actions)]))
		if res.Effects.Err != nil {
			t.Fatalf("tick %d: %v", i, res.Effects.Err)
		}
		if res.Effects.ScoreDelta < 0 {
			t.Fatalf("tick %d: negative score delta", i)
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(2024)
	g2 := newTestGame(2024)
	actions := []core.Action{core.ActionLeft, core.ActionUp, core.ActionNone, core.ActionFire, core.ActionRight}
	for i := range 300 {
		in := core.FrameOf(actions[i%len(actions)])
		g1.Step(in)
		g2.Step(in)
	}
	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots diverged:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}
