package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilefall/internal/config"
	"github.com/vovakirdan/tilefall/internal/core"
	"github.com/vovakirdan/tilefall/internal/games/tilefall"
)

// TilefallMode represents the selected game mode.
type TilefallMode int

const (
	TilefallModeCampaign TilefallMode = iota
	TilefallModeEndless
)

// TilefallSelection holds the user's choices from the mode menu.
type TilefallSelection struct {
	Mode       TilefallMode
	Level      int // 0 = start from beginning, otherwise a 1-based level
	Difficulty config.DifficultyPreset
}

// GameID returns the registry ID for the selected mode.
func (s TilefallSelection) GameID() string {
	if s.Mode == TilefallModeEndless {
		return "tilefall_endless"
	}
	return "tilefall"
}

// Rows of the mode screen.
const (
	modeRowCampaign = iota
	modeRowEndless
	modeRowLevel
	modeRowDifficulty
	modeRowCount
)

var difficultyCycle = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

// TilefallModeModel lets users choose mode, starting level and difficulty.
type TilefallModeModel struct {
	levels        []string
	cursor        int
	levelCursor   int
	difficulty    int // Index into difficultyCycle
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     *TilefallSelection
	quitting      bool
	back          bool
}

// NewTilefallModeModel creates a new mode selection model. initial is the
// preselected difficulty; unknown presets show as normal.
func NewTilefallModeModel(width, height int, initial config.DifficultyPreset) TilefallModeModel {
	m := TilefallModeModel{
		levels:     tilefall.LevelNames(),
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
		difficulty: 1,
	}
	for i, p := range difficultyCycle {
		if p == initial {
			m.difficulty = i
		}
	}
	return m
}

// Init initializes the model.
func (m TilefallModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m TilefallModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleModeSelectKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m TilefallModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = core.Max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = core.Min(m.cursor+1, modeRowCount-1)
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	case MenuActionSelect:
		switch m.cursor {
		case modeRowCampaign:
			return m.choose(TilefallModeCampaign, 0)
		case modeRowEndless:
			return m.choose(TilefallModeEndless, 0)
		case modeRowLevel:
			if len(m.levels) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		case modeRowDifficulty:
			m.difficulty = (m.difficulty + 1) % len(difficultyCycle)
		}
	}
	return m, nil
}

func (m TilefallModeModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.levelCursor = core.Max(m.levelCursor-1, 0)
	case MenuActionDown:
		m.levelCursor = core.Min(m.levelCursor+1, len(m.levels)-1)
	case MenuActionSelect:
		return m.choose(TilefallModeCampaign, m.levelCursor+1)
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

func (m TilefallModeModel) choose(mode TilefallMode, level int) (tea.Model, tea.Cmd) {
	m.selection = &TilefallSelection{
		Mode:       mode,
		Level:      level,
		Difficulty: difficultyCycle[m.difficulty],
	}
	return m, tea.Quit
}

// View renders the mode/level selection.
func (m TilefallModeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	var title string
	var lines []string
	var cursor int
	if m.inLevelSelect {
		title = "SELECT LEVEL"
		for i, name := range m.levels {
			lines = append(lines, fmt.Sprintf("%2d. %s", i+1, name))
		}
		cursor = m.levelCursor
	} else {
		title = "T I L E F A L L"
		lines = []string{
			fmt.Sprintf("Campaign (%d levels)", len(m.levels)),
			"Endless",
			"Select Level...",
			fmt.Sprintf("Difficulty: %s", difficultyCycle[m.difficulty]),
		}
		cursor = m.cursor
	}

	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")
	for i, line := range lines {
		prefix := "  "
		if i == cursor {
			prefix = "> "
		}
		b.WriteString(centerText(prefix+line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m TilefallModeModel) Selected() *TilefallSelection {
	return m.selection
}

// IsQuitting returns true if user wants to quit.
func (m TilefallModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m TilefallModeModel) WantsBack() bool {
	return m.back
}

// RunTilefallModeSelector runs the mode selection and returns the
// selection, or nil if the user backed out or quit.
func RunTilefallModeSelector(cfg core.RuntimeConfig, initial config.DifficultyPreset) (*TilefallSelection, core.RuntimeConfig, error) {
	model := NewTilefallModeModel(cfg.ScreenW, cfg.ScreenH, initial)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(TilefallModeModel)
	if !ok {
		return nil, cfg, nil
	}
	cfg.ScreenW, cfg.ScreenH = m.width, m.height

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}
	return m.Selected(), cfg, nil
}
