package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilefall/internal/registry"
	"github.com/vovakirdan/tilefall/internal/storage"
)

const (
	minWidthForStats = 84  // Below this the stats panel folds into one line
	statsPanelWidth  = 24
	maxScores        = 100
)

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbActiveTab   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbInactiveTab = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbPanelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "campaign/endless")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "previous")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "menu")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoreBoard is one leaderboard: a registered game mode.
type scoreBoard struct {
	gameID  string
	label   string
	endless bool
}

// scoreBoards lists a board per registered mode, campaign first.
func scoreBoards() []scoreBoard {
	var boards []scoreBoard
	for _, g := range registry.List() {
		endless := strings.HasSuffix(g.ID, "_endless")
		label := "Campaign"
		if endless {
			label = "Endless"
		}
		b := scoreBoard{gameID: g.ID, label: label, endless: endless}
		if endless {
			boards = append(boards, b)
		} else {
			boards = append([]scoreBoard{b}, boards...)
		}
	}
	return boards
}

// emptyMessage is shown for a board with no finished runs.
func (b scoreBoard) emptyMessage() string {
	if b.endless {
		return "No endless runs yet.\nThe board refills each time you clear it;\nsee how far the move limit lets you go."
	}
	return "No campaign runs yet.\nClear every tile on a level to move on;\nunused moves pay 5 points each."
}

// ScoreboardModel shows the campaign and endless leaderboards.
type ScoreboardModel struct {
	boards    []scoreBoard
	current   int
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the campaign board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		boards: scoreBoards(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.showBoard(0)
	return m
}

func (m *ScoreboardModel) board() (scoreBoard, bool) {
	if len(m.boards) == 0 {
		return scoreBoard{}, false
	}
	return m.boards[m.current], true
}

// showBoard switches to board i and reloads its scores.
func (m *ScoreboardModel) showBoard(i int) {
	if n := len(m.boards); n > 0 {
		m.current = (i%n + n) % n
	}
	m.scores, m.stats = nil, nil

	b, ok := m.board()
	if ok && m.store != nil {
		if scores, err := m.store.TopScores(b.gameID, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(b.gameID); err == nil {
			m.stats = stats
		}
	}
	m.rebuildTable()
}

// rebuildTable lays out columns for the current board and size. Endless
// runs have no level, so that column is dropped there.
func (m *ScoreboardModel) rebuildTable() {
	b, _ := m.board()

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 10},
		{Title: "Score", Width: 7},
	}
	if !b.endless {
		columns = append(columns, table.Column{Title: "Level", Width: 5})
	}
	columns = append(columns,
		table.Column{Title: "Moves", Width: 5},
		table.Column{Title: "Played", Width: 12},
	)

	avail := m.width - 6
	if m.wide() {
		avail -= statsPanelWidth + 4
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := avail - used; spare > 0 {
		columns[1].Width += min(spare, 16)
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		player := s.Player
		if player == "" {
			player = "local"
		}
		row := table.Row{strconv.Itoa(i + 1), player, strconv.Itoa(s.Score)}
		if !b.endless {
			row = append(row, strconv.Itoa(s.Level))
		}
		rows[i] = append(row, strconv.Itoa(s.Moves), s.CreatedAt.Format("Jan 02 15:04"))
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
		table.WithStyles(styles),
	)
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForStats
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
		case key.Matches(msg, m.keys.NextMode):
			m.showBoard(m.current + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.showBoard(m.current - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
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

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(sbTitleStyle.Render("T I L E F A L L   S C O R E S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	body := sbPanelStyle.Render(m.renderBoard())
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", sbPanelStyle.Render(m.renderStatsPanel()))
	} else if line := m.statsLine(); line != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, sbDimStyle.Render(line))
	}
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(sbDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.boards))
	for i, sb := range m.boards {
		if i == m.current {
			tabs[i] = sbActiveTab.Render(sb.label)
		} else {
			tabs[i] = sbInactiveTab.Render(sb.label)
		}
	}
	return strings.Join(tabs, " ")
}

// renderBoard renders the table, or the board's empty message.
func (m ScoreboardModel) renderBoard() string {
	sb, ok := m.board()
	if !ok {
		return sbDimStyle.Render("No game modes registered.")
	}
	if len(m.scores) == 0 {
		return sbDimStyle.Italic(true).Padding(1, 2).Render(sb.emptyMessage())
	}
	return m.table.View()
}

func (m ScoreboardModel) renderStatsPanel() string {
	var b strings.Builder
	b.WriteString(sbTitleStyle.Render("Stats"))
	b.WriteString("\n")
	if m.stats == nil || m.stats.GamesCount == 0 {
		b.WriteString(sbDimStyle.Render("nothing yet"))
		return lipgloss.NewStyle().Width(statsPanelWidth).Render(b.String())
	}

	sb, _ := m.board()
	lines := [][2]string{
		{"Runs", strconv.Itoa(m.stats.GamesCount)},
		{"Best", strconv.Itoa(m.stats.HighScore)},
		{"Average", fmt.Sprintf("%.0f", m.stats.AvgScore)},
	}
	if !sb.endless {
		lines = append(lines, [2]string{"Top level", strconv.Itoa(m.stats.BestLevel)})
	}
	if !m.stats.LastPlayed.IsZero() {
		lines = append(lines, [2]string{"Last", m.stats.LastPlayed.Format("Jan 02")})
	}
	for _, l := range lines {
		fmt.Fprintf(&b, "%-10s%s\n", l[0], l[1])
	}
	return lipgloss.NewStyle().Width(statsPanelWidth).Render(strings.TrimRight(b.String(), "\n"))
}

// statsLine is the folded stats panel for narrow terminals.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	line := fmt.Sprintf("%d runs  best %d  avg %.0f", m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore)
	if sb, _ := m.board(); !sb.endless {
		line += fmt.Sprintf("  top level %d", m.stats.BestLevel)
	}
	return line
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
