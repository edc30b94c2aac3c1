package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/engine"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// Player identifies who is playing and where their scores go.
type Player struct {
	Scores  engine.ScoreService // nil plays without persistence
	UserID  string
	Profile string // difficulty preset recorded with submitted scores
	Logger  *log.Logger

	// SkipIntro starts rounds without the instructions screen.
	SkipIntro bool
	// OnRoundEnd is called once per round at game over.
	OnRoundEnd func(gameID string, score int)
}

// controls is the instructions line shown before a round starts.
var controls = map[string]string{
	"snake":       "Arrows/WASD steer",
	"tetris":      "Left/Right move  Up rotate  Down soft drop  Space hard drop",
	"pacman":      "Arrows/WASD steer  eat every dot",
	"pang":        "Left/Right move  Space fires a harpoon",
	"connectfour": "Left/Right choose a column  Space drops a disc",
	"arkanoid":    "Left/Right move the paddle  Space launches",
}

// GameModel runs one game through the shared scheduler.
type GameModel struct {
	id         uint64
	sched      *engine.Scheduler
	screen     *core.Screen
	keys       *KeyMapper
	quitting   bool
	backToMenu bool
}

// NewGameModel resets the game and loads the player's stored high score.
func NewGameModel(game registry.Game, player Player, cfg core.RuntimeConfig) GameModel {
	logger := player.Logger
	if logger == nil {
		logger = log.Default()
	}
	bridge := engine.NewScoreBridge(player.Scores, game.ID(), player.UserID, player.Profile, logger)
	sched := engine.New(context.Background(), game, engine.Options{
		Runtime:          cfg,
		Bridge:           bridge,
		Logger:           logger,
		SkipInstructions: player.SkipIntro,
		OnTerminal:       player.OnRoundEnd,
	})
	return GameModel{
		id:     nextModelID(),
		sched:  sched,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:   NewKeyMapper(),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.id, m.sched.Interval())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		m.sched.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.ModelID != m.id {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.sched.Close()
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		switch m.sched.Phase() {
		case engine.PhaseGameOver, engine.PhasePaused, engine.PhaseInstructions:
			m.sched.Close()
			m.backToMenu = true
		}
		return m, nil
	}

	wasOver := m.sched.Phase() == engine.PhaseGameOver
	m.sched.HandleAction(action)
	if wasOver && m.sched.Phase() == engine.PhasePlaying {
		// The tick chain ended with the last round; start a new one.
		m.id = nextModelID()
		return m, tickCmd(m.id, m.sched.Interval())
	}
	return m, nil
}

// handleTick advances the simulation and re-arms the timer with the
// game's current interval. The chain stops once the round is over.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if stopped(m.sched.Phase()) {
		return m, nil
	}
	m.sched.Tick()
	if stopped(m.sched.Phase()) {
		return m, nil
	}
	return m, tickCmd(m.id, m.sched.Interval())
}

func stopped(p engine.Phase) bool {
	return p == engine.PhaseGameOver || p == engine.PhaseClosed
}

// saveScreenshot saves the current screen to ~/.arcade/screenshots.
func (m *GameModel) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.sched.Game().ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// draw renders the game plus the lifecycle overlays into the screen buffer.
func (m *GameModel) draw() {
	game := m.sched.Game()
	m.screen.Clear()
	game.Render(m.screen)

	last := m.screen.Height() - 1
	switch m.sched.Phase() {
	case engine.PhaseInstructions:
		hint := controls[game.ID()]
		if hint == "" {
			hint = "Arrows move  Space fires"
		}
		m.screen.DrawOverlay(game.Title(), hint)
		m.screen.DrawTextCentered(last, "Space/Enter start  P pause  Q quit")
	case engine.PhasePaused:
		m.screen.DrawOverlay("Paused", "P resume  B menu  Q quit")
	case engine.PhaseGameOver:
		m.screen.DrawTextCentered(last, fmt.Sprintf("Best %d  |  R restart  B menu  Q quit", m.sched.HighScore()))
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// Scheduler exposes the driven scheduler.
func (m GameModel) Scheduler() *engine.Scheduler {
	return m.sched
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, player Player, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewGameModel(game, player, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
