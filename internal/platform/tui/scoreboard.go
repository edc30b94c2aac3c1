package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 20
	loadTimeout        = 5 * time.Second
)

var (
	accentColor = lipgloss.Color("229")
	mutedColor  = lipgloss.Color("241")
	borderColor = lipgloss.Color("240")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
)

// Leaderboards is the read side of score storage shown by the scoreboard.
// Both repositories and the portal client satisfy it.
type Leaderboards interface {
	Leaderboard(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Refresh, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/right", "next game")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("left", "prev game")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the top entries of one game at a time.
type ScoreboardModel struct {
	games     []registry.GameInfo
	current   int
	boards    Leaderboards
	viewer    string // rows of this user are marked
	scores    []storage.ScoreEntry
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over every registered game.
// A nil boards shows empty tables.
func NewScoreboardModel(boards Leaderboards, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		boards: boards,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

// WithViewer marks the rows that belong to user.
func (m ScoreboardModel) WithViewer(user string) ScoreboardModel {
	m.viewer = user
	m.fillRows()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 8},
		{Title: "Profile", Width: 8},
		{Title: "Date", Width: 13},
	}
	avail := m.width - 4
	if m.wide() {
		avail -= sidebarWidth + 3
	}
	if spare := avail - 58; spare > 0 {
		columns[1].Width += min(spare, 10)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(accentColor).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches the leaderboard of the current game.
func (m *ScoreboardModel) reload() {
	m.scores, m.loadErr = nil, nil
	if m.boards != nil && len(m.games) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		m.scores, m.loadErr = m.boards.Leaderboard(ctx, m.games[m.current].ID, storage.LeaderboardMax)
		cancel()
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		name := s.Username
		if m.viewer != "" && (s.UserID == m.viewer || s.Username == m.viewer) {
			name = "* " + name
		}
		rows[i] = table.Row{
			"#" + strconv.Itoa(i+1),
			name,
			strconv.Itoa(s.Score),
			s.Profile,
			s.UpdatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycle moves to the next (delta 1) or previous (delta -1) game.
func (m *ScoreboardModel) cycle(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.games)) % len(m.games)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.fillRows()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title += " - " + m.games[m.current].Title
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", panelStyle.Render(m.body())))
	} else {
		b.WriteString(centerText(m.tabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(panelStyle.Render(m.body()), m.width))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(mutedColor).Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) sidebar() string {
	var sb strings.Builder
	sb.WriteString("Games\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	for i, g := range m.games {
		sb.WriteString("\n")
		if i == m.current {
			sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("> " + truncate(g.Title, sidebarWidth-6)))
			continue
		}
		sb.WriteString("  " + truncate(g.Title, sidebarWidth-6))
	}
	return panelStyle.Width(sidebarWidth).Render(sb.String())
}

func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return ""
	}
	active := lipgloss.NewStyle().Bold(true).Foreground(accentColor).Background(lipgloss.Color("57")).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(mutedColor).Padding(0, 1)

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		style := idle
		if i == m.current {
			style = active
		}
		tabs[i] = style.Render(truncate(g.Title, 10))
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.games[m.current].Title)
	}
	return line
}

func (m ScoreboardModel) body() string {
	switch {
	case m.loadErr != nil:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(2, 4).
			Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.scores) == 0:
		return lipgloss.NewStyle().Foreground(mutedColor).Italic(true).Padding(2, 4).
			Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// Scores returns the entries shown for the current game.
func (m ScoreboardModel) Scores() []storage.ScoreEntry {
	return m.scores
}

// RunScoreboard runs the scoreboard screen on its own. It reports whether
// the user went back rather than quitting.
func RunScoreboard(boards Leaderboards, viewer string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(boards, width, height).WithViewer(viewer), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
