package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/engine"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

// fakeGame scores 10 per step and ends after endAt steps.
type fakeGame struct {
	steps int
	endAt int
	score int
}

func (g *fakeGame) ID() string    { return "tuifake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.steps, g.score = 0, 0
}

func (g *fakeGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	g.score += 10
	return core.StepResult{
		State:   g.State(),
		Effects: core.Effects{ScoreDelta: 10, GameOver: g.steps >= g.endAt},
	}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "fake board")
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.score, Level: 1, GameOver: g.steps >= g.endAt}
}

func init() {
	registry.Register("tuifake", func() registry.Game { return &fakeGame{endAt: 3} })
}

// fakeScores is an in-memory ScoreStore.
type fakeScores struct {
	high  map[string]int
	board []storage.ScoreEntry
}

func newFakeScores() *fakeScores {
	return &fakeScores{high: map[string]int{}}
}

func (f *fakeScores) HighScore(_ context.Context, gameID, userID string) (int, error) {
	return f.high[gameID+"/"+userID], nil
}

func (f *fakeScores) SubmitScore(_ context.Context, userID, gameID string, score int, _ string) error {
	f.high[gameID+"/"+userID] = max(f.high[gameID+"/"+userID], score)
	return nil
}

func (f *fakeScores) Leaderboard(_ context.Context, gameID string, _ int) ([]storage.ScoreEntry, error) {
	var out []storage.ScoreEntry
	for _, e := range f.board {
		if e.GameID == gameID {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ ScoreStore = (*fakeScores)(nil)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 48, ScreenH: 14, TickRate: 60, Seed: 1}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{runeKey("w"), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey("d"), core.ActionRight, false},
		{keyDown, core.ActionDown, false},
		{keySpace, core.ActionFire, false},
		{keyEnter, core.ActionConfirm, false},
		{runeKey("p"), core.ActionPause, false},
		{runeKey("r"), core.ActionRestart, false},
		{keyEsc, core.ActionBack, false},
		{runeKey("q"), core.ActionQuit, true},
		{runeKey("x"), core.ActionNone, false},
	}
	for _, tt := range tests {
		got, quit := km.MapKey(tt.key)
		if got != tt.want || quit != tt.isQuit {
			t.Errorf("MapKey(%q) = %v,%v, want %v,%v", tt.key.String(), got, quit, tt.want, tt.isQuit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{keyDown, MenuActionDown},
		{keyEnter, MenuActionSelect},
		{keySpace, MenuActionSelect},
		{keyTab, MenuActionScoreboard},
		{keyEsc, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.key); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.key.String(), got, tt.want)
		}
	}
}

func updateGame(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestGameModelLifecycle(t *testing.T) {
	scores := newFakeScores()
	player := Player{Scores: scores, UserID: "ann", Profile: "normal", Logger: log.New(io.Discard)}
	m := NewGameModel(&fakeGame{endAt: 3}, player, testConfig())

	if m.Init() == nil {
		t.Fatal("Init should schedule the first tick")
	}
	if got := m.Scheduler().Phase(); got != engine.PhaseInstructions {
		t.Fatalf("phase = %v, want instructions", got)
	}
	if !strings.Contains(m.View(), "Space/Enter start") {
		t.Error("instructions overlay missing")
	}

	tick := TickMsg{ModelID: m.id, At: time.Now()}
	m, cmd := updateGame(t, m, tick)
	if cmd == nil {
		t.Error("ticks keep flowing while on the instructions screen")
	}
	if m.Scheduler().State().Score != 0 {
		t.Error("game must not step before start")
	}

	m, _ = updateGame(t, m, keySpace)
	if got := m.Scheduler().Phase(); got != engine.PhasePlaying {
		t.Fatalf("phase = %v, want playing", got)
	}

	_, cmd = updateGame(t, m, TickMsg{ModelID: m.id + 1000})
	if cmd != nil {
		t.Error("a tick from another model must be dropped")
	}

	for range 3 {
		m, _ = updateGame(t, m, tick)
	}
	if got := m.Scheduler().Phase(); got != engine.PhaseGameOver {
		t.Fatalf("phase = %v, want game over", got)
	}
	if got := scores.high["tuifake/ann"]; got != 30 {
		t.Errorf("submitted score = %d, want 30", got)
	}
	if !strings.Contains(m.View(), "Best 30") {
		t.Error("game over footer should show the best score")
	}

	m, _ = updateGame(t, m, runeKey("r"))
	if got := m.Scheduler().Phase(); got != engine.PhasePlaying {
		t.Errorf("restart: phase = %v, want playing", got)
	}

	m, _ = updateGame(t, m, runeKey("p"))
	if !strings.Contains(m.View(), "Paused") {
		t.Error("pause overlay missing")
	}
	m, _ = updateGame(t, m, keyEsc)
	if !m.BackToMenu() {
		t.Error("Esc while paused should return to the menu")
	}
	if _, cmd := updateGame(t, m, tick); cmd != nil {
		t.Error("closed scheduler should stop the tick chain")
	}
}

func TestTickChainStopsAtGameOver(t *testing.T) {
	m := NewGameModel(&fakeGame{endAt: 3}, Player{Logger: log.New(io.Discard)}, testConfig())
	m, _ = updateGame(t, m, keySpace)

	tick := TickMsg{ModelID: m.id}
	var cmd tea.Cmd
	for i := range 3 {
		m, cmd = updateGame(t, m, tick)
		if i < 2 && cmd == nil {
			t.Fatalf("tick %d: chain stopped before the round ended", i)
		}
	}
	if got := m.Scheduler().Phase(); got != engine.PhaseGameOver {
		t.Fatalf("phase = %v, want game over", got)
	}
	if cmd != nil {
		t.Error("the final tick must not re-arm the timer")
	}
	for range 100 {
		if _, cmd = updateGame(t, m, tick); cmd != nil {
			t.Fatal("ticks re-armed after game over")
		}
	}

	oldID := m.id
	m, cmd = updateGame(t, m, runeKey("r"))
	if cmd == nil {
		t.Fatal("restart should start a new tick chain")
	}
	if m.id == oldID {
		t.Error("restart should take a fresh model id")
	}
	if _, cmd = updateGame(t, m, TickMsg{ModelID: oldID}); cmd != nil {
		t.Error("a tick from the finished chain must be dropped")
	}
	if _, cmd = updateGame(t, m, TickMsg{ModelID: m.id}); cmd == nil {
		t.Error("the new chain should keep ticking")
	}
}

func TestRoundMetricsAndSkipIntro(t *testing.T) {
	metrics := NewSessionMetrics()
	player := Player{Logger: log.New(io.Discard), SkipIntro: true, OnRoundEnd: metrics.RoundFinished}
	m := NewGameModel(&fakeGame{endAt: 3}, player, testConfig())
	if got := m.Scheduler().Phase(); got != engine.PhasePlaying {
		t.Fatalf("phase = %v, want playing without the intro", got)
	}

	playOut := func() {
		for range 6 {
			m, _ = updateGame(t, m, TickMsg{ModelID: m.id})
		}
	}
	playOut()
	if got := testutil.ToFloat64(metrics.rounds.WithLabelValues("tuifake")); got != 1 {
		t.Errorf("rounds after one game = %v, want 1", got)
	}

	m, _ = updateGame(t, m, runeKey("r"))
	playOut()
	if got := testutil.ToFloat64(metrics.rounds.WithLabelValues("tuifake")); got != 2 {
		t.Errorf("rounds after restart = %v, want 2", got)
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&fakeGame{endAt: 3}, Player{Logger: log.New(io.Discard)}, testConfig())
	m, cmd := updateGame(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.Scheduler().Phase() != engine.PhaseClosed {
		t.Error("quitting closes the scheduler")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestSessionNavigation(t *testing.T) {
	scores := newFakeScores()
	scores.board = []storage.ScoreEntry{
		{UserID: "u1", Username: "ann", GameID: "tuifake", Score: 90},
		{UserID: "u2", Username: "bo", GameID: "tuifake", Score: 40},
	}
	player := Player{Scores: scores, UserID: "ann", Logger: log.New(io.Discard)}
	s := NewSessionModel(player, scores, testConfig())

	if !strings.Contains(s.View(), "Fake") {
		t.Fatal("menu should list registered games")
	}

	s, _ = updateSession(t, s, keyTab)
	if s.screen != screenScores {
		t.Fatalf("screen = %v, want scoreboard", s.screen)
	}
	if got := len(s.scoreboard.Scores()); got != 2 {
		t.Errorf("scoreboard rows = %d, want 2", got)
	}
	if !strings.Contains(s.View(), "HIGH SCORES") {
		t.Error("scoreboard title missing")
	}

	s, _ = updateSession(t, s, keyEsc)
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", s.screen)
	}

	s, cmd := updateSession(t, s, keyEnter)
	if s.screen != screenGame {
		t.Fatalf("screen = %v, want game", s.screen)
	}
	if cmd == nil {
		t.Error("entering a game should start its tick loop")
	}

	s, cmd = updateSession(t, s, runeKey("q"))
	if cmd == nil || s.View() != "" {
		t.Error("q in game should end the session")
	}
}

func TestDifficultyModel(t *testing.T) {
	m := NewDifficultyModel("Snake", 60, 20)
	if !strings.Contains(m.View(), "S N A K E") {
		t.Error("title should be spaced out")
	}
	next, _ := m.Update(keyDown)
	next, cmd := next.(DifficultyModel).Update(keyEnter)
	dm := next.(DifficultyModel)
	if cmd == nil {
		t.Error("selecting should end the picker")
	}
	if got := dm.Selected(); got != config.DifficultyHard {
		t.Errorf("Selected() = %q, want hard", got)
	}

	next, _ = NewDifficultyModel("Snake", 60, 20).Update(keyEsc)
	if !next.(DifficultyModel).WantsBack() {
		t.Error("Esc should back out")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColor(2, 0, 'c', core.ColorRed)
	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "c") {
		t.Errorf("rendered output %q lost content", out)
	}
}

func TestScoreboardViewerAndRefresh(t *testing.T) {
	scores := newFakeScores()
	scores.board = []storage.ScoreEntry{
		{UserID: "u1", Username: "ann", GameID: "tuifake", Score: 90, Profile: "hard"},
	}
	m := NewScoreboardModel(scores, 100, 30).WithViewer("ann")
	if !strings.Contains(m.View(), "* ann") {
		t.Error("viewer row should be marked")
	}

	scores.board = append(scores.board, storage.ScoreEntry{UserID: "u2", Username: "bo", GameID: "tuifake", Score: 40})
	if got := len(m.Scores()); got != 1 {
		t.Fatalf("rows before refresh = %d, want 1", got)
	}
	next, _ := m.Update(runeKey("r"))
	m = next.(ScoreboardModel)
	if got := len(m.Scores()); got != 2 {
		t.Errorf("rows after refresh = %d, want 2", got)
	}

	next, _ = m.Update(keyEsc)
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
