package connectfour

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

func newTestGame() *Game {
	g := NewWithConfig(config.DefaultConnectFourConfig())
	g.Reset(core.RuntimeConfig{Seed: 7})
	return g
}

// boardFrom builds a board from rows of 'R', 'Y' and '.' with row 0 on top.
func boardFrom(rows ...string) *Board {
	b := NewBoard(len(rows), len(rows[0]))
	for r, line := range rows {
		for c, ch := range line {
			switch ch {
			case 'R':
				b.Set(r, c, Red)
			case 'Y':
				b.Set(r, c, Yellow)
			}
		}
	}
	return b
}

// settle steps with no input until no disc is falling.
func settle(t *testing.T, g *Game) core.Effects {
	t.Helper()
	var fx core.Effects
	for i := 0; i < 50 && g.turn == TurnFalling; i++ {
		res := g.Step(core.NewInputFrame())
		fx.ScoreDelta += res.Effects.ScoreDelta
		fx.LevelCleared = fx.LevelCleared || res.Effects.LevelCleared
		fx.GameOver = fx.GameOver || res.Effects.GameOver
		if res.Effects.Err != nil {
			t.Fatalf("step %d: %v", i, res.Effects.Err)
		}
	}
	return fx
}

func TestCheckWinAxes(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"horizontal", []string{
			".......", ".......", ".......", ".......", ".......", "..RRRR.",
		}},
		{"vertical", []string{
			".......", ".......", "R......", "R......", "R......", "R......",
		}},
		{"diagonal down-right", []string{
			".......", ".......", "R......", ".R.....", "..R....", "...R...",
		}},
		{"diagonal up-right", []string{
			".......", ".......", "......R", ".....R.", "....R..", "...R...",
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := boardFrom(tc.rows...)
			if !b.CheckWin(Red) {
				t.Error("expected a win for Red")
			}
			if b.CheckWin(Yellow) {
				t.Error("no win expected for Yellow")
			}
		})
	}

	three := boardFrom(".......", ".......", ".......", ".......", ".......", "RRR.RRY")
	if three.CheckWin(Red) {
		t.Error("broken run should not count as a win")
	}
}

var drawnBoard = []string{
	"RYRYRYR",
	"RYRYRYR",
	"YRYRYRY",
	"YRYRYRY",
	"RYRYRYR",
	"RYRYRYR",
}

func TestFullBoardWithoutLineIsDraw(t *testing.T) {
	b := boardFrom(drawnBoard...)
	if !b.Full() {
		t.Fatal("board should be full")
	}
	if b.CheckWin(Red) || b.CheckWin(Yellow) {
		t.Error("pattern should contain no line of four")
	}
	if len(b.LegalColumns()) != 0 {
		t.Errorf("full board has legal columns %v", b.LegalColumns())
	}
}

func TestDropLandsOnStack(t *testing.T) {
	b := NewBoard(6, 7)
	if row := b.Drop(3, Red); row != 5 {
		t.Errorf("first drop landed on row %d, expected 5", row)
	}
	if row := b.Drop(3, Yellow); row != 4 {
		t.Errorf("second drop landed on row %d, expected 4", row)
	}
	for range 4 {
		b.Drop(3, Red)
	}
	if b.Legal(3) || b.Drop(3, Red) != -1 {
		t.Error("full column should reject drops")
	}
}

func cpu(b *Board, level int) int {
	return ChooseColumn(cpuView{
		board:       b,
		me:          Yellow,
		level:       level,
		forkLevel:   3,
		preferLevel: 2,
		rng:         rand.New(rand.NewSource(1)),
	})
}

func TestCPUTakesWinBeforeBlocking(t *testing.T) {
	b := boardFrom(
		".......",
		".......",
		".......",
		"......R",
		"......R",
		"YYY...R",
	)
	if got := cpu(b, 1); got != 3 {
		t.Errorf("cpu played %d, expected winning column 3", got)
	}
}

func TestCPUBlocks(t *testing.T) {
	b := boardFrom(
		".......",
		".......",
		".......",
		".......",
		"Y......",
		"RRR...Y",
	)
	if got := cpu(b, 1); got != 3 {
		t.Errorf("cpu played %d, expected block at 3", got)
	}
}

func TestCPUForkGatedByLevel(t *testing.T) {
	b := boardFrom(
		".......",
		".......",
		".......",
		".......",
		".......",
		"R.YY..R",
	)
	if got := cpu(b, 3); got != 4 {
		t.Errorf("level 3 cpu played %d, expected fork at 4", got)
	}
	if got := cpu(b, 2); got != 3 {
		t.Errorf("level 2 cpu played %d, expected centre column 3", got)
	}
	if got := cpu(b, 1); !b.Legal(got) {
		t.Errorf("level 1 cpu played illegal column %d", got)
	}
}

func TestCPUBlocksFork(t *testing.T) {
	b := boardFrom(
		".......",
		".......",
		".......",
		".......",
		".......",
		"Y.RR..Y",
	)
	if got := cpu(b, 3); got != 4 {
		t.Errorf("cpu played %d, expected to deny the fork at 4", got)
	}
}

func TestPreferSkipsGiveAway(t *testing.T) {
	// Yellow in column 3 lets Red complete row 3 on top of it.
	b := boardFrom(
		".......",
		".......",
		".......",
		"RRR....",
		"YYR.Y..",
		"RYYYR..",
	)
	if !givesAway(b, 3, Yellow) {
		t.Fatal("column 3 should give the win away")
	}
	if got := cpu(b, 2); got != 3 {
		t.Errorf("level 2 cpu played %d, expected plain centre 3", got)
	}
	if c, ok := preferColumn(cpuView{board: b, me: Yellow, level: 3, preferLevel: 2}); !ok || c != 2 {
		t.Errorf("level 3 preference picked %d, expected the next safe column 2", c)
	}
}

func TestDiscFallsOneRowPerTick(t *testing.T) {
	g := newTestGame()
	g.Step(core.FrameOf(core.ActionFire))
	if g.turn != TurnFalling || g.disc.Row != 0 || g.disc.Col != 3 {
		t.Fatalf("drop should start at the top of column 3, got %+v turn %d", g.disc, g.turn)
	}
	for want := 1; want <= 5; want++ {
		g.Step(core.NewInputFrame())
		if g.disc.Row != want {
			t.Fatalf("disc row = %d, expected %d", g.disc.Row, want)
		}
	}
	g.Step(core.NewInputFrame())
	if g.board.At(5, 3) != Red {
		t.Error("disc should rest on the bottom row")
	}
	if g.turn != TurnCPU {
		t.Errorf("turn = %d, expected the CPU to reply", g.turn)
	}
}

func TestCursorClamped(t *testing.T) {
	g := newTestGame()
	for range 10 {
		g.Step(core.FrameOf(core.ActionLeft))
	}
	if g.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", g.cursor)
	}
	for range 10 {
		g.Step(core.FrameOf(core.ActionRight))
	}
	if g.cursor != g.cfg.Cols-1 {
		t.Errorf("cursor = %d, expected %d", g.cursor, g.cfg.Cols-1)
	}
}

func TestPlayerWinClearsLevel(t *testing.T) {
	g := newTestGame()
	g.board = boardFrom(
		".......",
		".......",
		".......",
		".......",
		"YYY....",
		"RRR....",
	)
	g.cursor = 3
	g.Step(core.FrameOf(core.ActionFire))
	fx := settle(t, g)

	if !fx.LevelCleared || fx.GameOver {
		t.Fatalf("player win should clear the level, got %+v", fx)
	}
	if fx.ScoreDelta != 100 {
		t.Errorf("delta = %d, expected 100", fx.ScoreDelta)
	}

	// Frozen until the scheduler advances.
	g.Step(core.FrameOf(core.ActionFire))
	if g.turn != TurnWon {
		t.Error("board should stay frozen after a win")
	}

	g.AdvanceLevel()
	if g.level != 2 || g.turn != TurnPlayer || g.Snapshot().Discs != 0 {
		t.Errorf("advance should start an empty level 2 round, got %+v", g.Snapshot())
	}

	g.board = boardFrom(".......", ".......", ".......", ".......", "YYY....", "RRR....")
	g.cursor = 3
	g.Step(core.FrameOf(core.ActionFire))
	if fx := settle(t, g); fx.ScoreDelta != 200 {
		t.Errorf("level 2 win delta = %d, expected 200", fx.ScoreDelta)
	}
}

func TestCPUWinEndsGame(t *testing.T) {
	g := newTestGame()
	g.board = boardFrom(
		".......",
		".......",
		".......",
		".......",
		"R.....R",
		"YYY...R",
	)
	g.turn = TurnCPU
	g.wait = 1

	g.Step(core.NewInputFrame())
	if g.turn != TurnFalling || g.disc.Col != 3 || g.disc.Disc != Yellow {
		t.Fatalf("cpu should drop into 3, got %+v", g.disc)
	}
	fx := settle(t, g)
	if !fx.GameOver {
		t.Error("cpu line should end the game")
	}
	if !g.State().GameOver {
		t.Error("state should report game over")
	}
}

func TestDrawReplaysLevel(t *testing.T) {
	g := newTestGame()
	g.board = boardFrom(drawnBoard...)
	g.board.Set(0, 0, Empty)
	g.cursor = 0

	g.Step(core.FrameOf(core.ActionFire))
	fx := settle(t, g)
	if fx.ScoreDelta != 25 || fx.LevelCleared || fx.GameOver {
		t.Fatalf("draw should only award 25 points, got %+v", fx)
	}
	if g.turn != TurnDraw {
		t.Fatalf("turn = %d, expected draw", g.turn)
	}

	for range drawPauseTicks {
		g.Step(core.NewInputFrame())
	}
	if g.turn != TurnPlayer || g.level != 1 || g.Snapshot().Discs != 0 {
		t.Errorf("draw should replay level 1 on an empty board, got %+v", g.Snapshot())
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame()
	g2 := newTestGame()
	actions := []core.Action{core.ActionLeft, core.ActionFire, core.ActionRight, core.ActionNone, core.ActionDown}
	for i := range 3000 {
		in := core.FrameOf(actions[(i/7)%len(actions)])
		g1.Step(in)
		g2.Step(in)
		if g1.turn == TurnWon {
			g1.AdvanceLevel()
			g2.AdvanceLevel()
		}
	}
	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots diverged:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestRender(t *testing.T) {
	g := newTestGame()
	screen := core.NewScreen(60, 20)
	g.Render(screen)
	if screen.String() == "" {
		t.Error("render produced an empty screen")
	}
}
