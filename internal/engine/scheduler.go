// Package engine drives any registered game with a single fixed-interval
// scheduler and bridges terminal scores to persistence.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// Phase is the lifecycle state shared by every game.
type Phase int

const (
	PhaseInstructions Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseInstructions:
		return "instructions"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// DefaultLevelDelay is the visual pause between a cleared board and the next level.
const DefaultLevelDelay = time.Second

// Options configures a Scheduler.
type Options struct {
	Runtime          core.RuntimeConfig
	LevelDelay       time.Duration
	Bridge           *ScoreBridge
	Logger           *log.Logger
	Clock            func() time.Time
	Seeder           func() int64 // New seed on Reset; defaults to the clock
	SkipInstructions bool
	OnTerminal       func(gameID string, score int)
}

// Scheduler owns a game and advances it one tick at a time.
// Only SetIntent and HandleAction may be called from other goroutines
// while the owner is ticking.
type Scheduler struct {
	game    registry.Game
	runtime core.RuntimeConfig
	opts    Options
	logger  *log.Logger
	now     func() time.Time

	mu      sync.Mutex
	phase   Phase
	move    core.Action
	oneShot core.InputFrame

	advancePending bool
	advanceAt      time.Time
	lastScore      int
	state          core.GameState
}

// New resets the game and loads the stored high score once.
func New(ctx context.Context, game registry.Game, opts Options) *Scheduler {
	if opts.LevelDelay <= 0 {
		opts.LevelDelay = DefaultLevelDelay
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = opts.Clock().UnixNano()
	}

	s := &Scheduler{
		game:    game,
		runtime: opts.Runtime,
		opts:    opts,
		logger:  opts.Logger.WithPrefix(game.ID()),
		now:     opts.Clock,
		oneShot: core.NewInputFrame(),
		phase:   PhaseInstructions,
	}
	if opts.SkipInstructions {
		s.phase = PhasePlaying
	}

	game.Reset(s.runtime)
	s.state = game.State()
	if opts.Bridge != nil {
		opts.Bridge.Load(ctx)
	}
	return s
}

// Game returns the driven game.
func (s *Scheduler) Game() registry.Game {
	return s.game
}

// Phase returns the current lifecycle phase.
func (s *Scheduler) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// State returns the game state observed after the last tick.
func (s *Scheduler) State() core.GameState {
	return s.state
}

// HighScore returns the best known score, including the current session.
func (s *Scheduler) HighScore() int {
	high := 0
	if s.opts.Bridge != nil {
		high = s.opts.Bridge.HighScore()
	}
	return max(high, s.state.Score)
}

// LevelPending reports whether a deferred level advance is armed.
func (s *Scheduler) LevelPending() bool {
	return s.advancePending
}

// Interval returns the delay before the next tick.
func (s *Scheduler) Interval() time.Duration {
	if p, ok := s.game.(registry.Paced); ok {
		if d := p.TickInterval(); d > 0 {
			return d
		}
	}
	return time.Second / time.Duration(s.runtime.TickRate)
}

// Start leaves the instructions screen.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseInstructions {
		s.phase = PhasePlaying
	}
}

// TogglePause flips between Playing and Paused. State is kept intact.
func (s *Scheduler) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case PhasePlaying:
		s.phase = PhasePaused
	case PhasePaused:
		s.phase = PhasePlaying
	}
}

// SetIntent buffers an input for the next tick. Movement intents are
// last-writer-wins; other actions accumulate until consumed.
func (s *Scheduler) SetIntent(a core.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.IsMovement() {
		s.move = a
		return
	}
	s.oneShot.Set(a)
}

// HandleAction routes a platform action: lifecycle actions change the
// phase, everything else becomes an intent.
func (s *Scheduler) HandleAction(a core.Action) {
	switch a {
	case core.ActionPause:
		s.TogglePause()
	case core.ActionQuit:
		s.Close()
	case core.ActionRestart:
		if s.Phase() == PhaseGameOver {
			s.Reset()
		}
	case core.ActionConfirm:
		s.Start()
	case core.ActionFire:
		if s.Phase() == PhaseInstructions {
			s.Start()
			return
		}
		s.SetIntent(a)
	case core.ActionNone:
	default:
		s.SetIntent(a)
	}
}

// takeIntent drains the buffered input into a frame.
func (s *Scheduler) takeIntent() core.InputFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := s.oneShot.Clone()
	if s.move != core.ActionNone {
		frame.Set(s.move)
	}
	s.move = core.ActionNone
	s.oneShot.Clear()
	return frame
}

// Tick runs one update pipeline. It is a no-op outside PhasePlaying.
func (s *Scheduler) Tick() core.Effects {
	if s.Phase() != PhasePlaying {
		return core.Effects{}
	}

	if s.advancePending {
		if s.now().Before(s.advanceAt) {
			return core.Effects{}
		}
		s.advancePending = false
		if lv, ok := s.game.(registry.Leveled); ok {
			lv.AdvanceLevel()
			s.state = s.game.State()
			s.logger.Debug("level advanced", "level", lv.Level())
		}
		return core.Effects{}
	}

	res := s.game.Step(s.takeIntent())
	fx := res.Effects
	if fx.Err == nil && (fx.ScoreDelta < 0 || res.State.Score < s.lastScore) {
		fx.Err = core.Invariantf("score decreased from %d to %d", s.lastScore, res.State.Score)
	}
	s.state = res.State
	s.lastScore = max(s.lastScore, res.State.Score)

	switch {
	case fx.Err != nil:
		s.logger.Error("round aborted", "error", fx.Err, "score", s.lastScore)
		fx.GameOver = true
		s.enterGameOver()
	case fx.GameOver || res.State.GameOver:
		fx.GameOver = true
		s.enterGameOver()
	case fx.LevelCleared:
		if _, ok := s.game.(registry.Leveled); ok {
			s.advancePending = true
			s.advanceAt = s.now().Add(s.opts.LevelDelay)
		}
	}
	return fx
}

// enterGameOver moves to the terminal phase and fires the score bridge once.
func (s *Scheduler) enterGameOver() {
	s.mu.Lock()
	s.phase = PhaseGameOver
	s.mu.Unlock()
	s.advancePending = false

	if s.opts.Bridge != nil {
		s.opts.Bridge.OnGameOver(context.Background(), s.lastScore)
	}
	if s.opts.OnTerminal != nil {
		s.opts.OnTerminal(s.game.ID(), s.lastScore)
	}
}

// Reset reinitialises the game with a fresh seed and resumes play.
func (s *Scheduler) Reset() {
	if s.Phase() == PhaseClosed {
		return
	}
	seed := s.now().UnixNano()
	if s.opts.Seeder != nil {
		seed = s.opts.Seeder()
	}
	s.runtime.Seed = seed
	s.game.Reset(s.runtime)
	s.state = s.game.State()
	s.advancePending = false
	s.lastScore = 0
	if s.opts.Bridge != nil {
		s.opts.Bridge.Rearm()
	}

	s.mu.Lock()
	s.phase = PhasePlaying
	s.move = core.ActionNone
	s.oneShot.Clear()
	s.mu.Unlock()
}

// Resize updates the screen dimensions used on the next Reset.
func (s *Scheduler) Resize(w, h int) {
	s.runtime.ScreenW = w
	s.runtime.ScreenH = h
}

// Close tears the scheduler down and cancels any pending level advance.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.phase = PhaseClosed
	s.mu.Unlock()
	s.advancePending = false
}

// Run drives the scheduler in real time until the game ends, the
// scheduler is closed or ctx is cancelled. Intents are applied as they
// arrive; the tick timer is re-armed with the current interval after
// every tick and always released on return.
func (s *Scheduler) Run(ctx context.Context, intents <-chan core.Action) error {
	timer := time.NewTimer(s.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			return ctx.Err()

		case a, ok := <-intents:
			if !ok {
				intents = nil
				continue
			}
			s.HandleAction(a)
			if s.Phase() == PhaseClosed {
				return nil
			}

		case <-timer.C:
			s.Tick()
			switch s.Phase() {
			case PhaseGameOver, PhaseClosed:
				return nil
			}
			timer.Reset(s.Interval())
		}
	}
}
