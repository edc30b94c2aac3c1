// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. ModelID ties it to
// the game model that scheduled it so a stale chain dies out after the
// player switches games.
type TickMsg struct {
	ModelID uint64
	At      time.Time
}

var modelIDs atomic.Uint64

func nextModelID() uint64 {
	return modelIDs.Add(1)
}

// tickCmd schedules the next tick after interval.
func tickCmd(id uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ModelID: id, At: t}
	})
}
