package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

// difficultyChoice is one row of the difficulty picker.
type difficultyChoice struct {
	Preset config.DifficultyPreset
	Label  string
	Hint   string
}

var difficultyChoices = []difficultyChoice{
	{config.DifficultyEasy, "Easy", "slower start, extra lives"},
	{config.DifficultyNormal, "Normal", "tuning as shipped"},
	{config.DifficultyHard, "Hard", "faster start, fewer lives"},
	{config.DifficultyFixed, "Fixed", "no speed-up between levels"},
}

// DifficultyModel lets the player pick a difficulty preset before a game.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  config.DifficultyPreset
	choosing  bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a picker for the titled game, starting on Normal.
func NewDifficultyModel(title string, width, height int) DifficultyModel {
	return DifficultyModel{
		title:     title,
		cursor:    1,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyChoices)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selected = difficultyChoices[m.cursor].Preset
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the difficulty list.
func (m DifficultyModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(spaced(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, c := range difficultyChoices {
		line := fmt.Sprintf("  %-7s %s", c.Label, c.Hint)
		if i == m.cursor {
			line = menuCursorStyle.Render(fmt.Sprintf("> %-7s %s", c.Label, c.Hint))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHelpStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))
	return b.String()
}

// Selected returns the chosen preset, or "" if still choosing.
func (m DifficultyModel) Selected() config.DifficultyPreset {
	if m.choosing {
		return ""
	}
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// spaced upper-cases a title and puts a space between letters.
func spaced(title string) string {
	var b strings.Builder
	for i, r := range strings.ToUpper(title) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RunDifficultySelector asks for a preset. ok is false when the player
// backed out or quit.
func RunDifficultySelector(title string, cfg core.RuntimeConfig) (preset config.DifficultyPreset, ok bool, err error) {
	p := tea.NewProgram(
		NewDifficultyModel(title, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, isModel := finalModel.(DifficultyModel)
	if !isModel || m.IsQuitting() || m.WantsBack() {
		return "", false, nil
	}
	return m.Selected(), true, nil
}
