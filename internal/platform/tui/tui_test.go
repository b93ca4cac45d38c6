package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilefall/internal/core"
	"github.com/vovakirdan/tilefall/internal/storage"
)

// fakeGame records the input of every step.
type fakeGame struct {
	frames   []core.InputFrame
	resets   int
	resizes  int
	state    core.GameState
	progress [2]int
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Resize(int, int) { g.resizes++ }
func (g *fakeGame) Progress() (level, moves int) { return g.progress[0], g.progress[1] }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		want   core.Action
		isQuit bool
	}{
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"l", core.ActionLabels, false},
		{"b", core.ActionBack, false},
		{"esc", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	for _, tt := range tests {
		got, quit := km.MapKey(keyMsg(tt.key))
		if got != tt.want || quit != tt.isQuit {
			t.Errorf("MapKey(%q) = %v,%v, want %v,%v", tt.key, got, quit, tt.want, tt.isQuit)
		}
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	press := tea.MouseMsg{X: 12, Y: 7, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	if !km.MapMouseToFrame(press, &frame) {
		t.Fatal("Left press should produce a click")
	}

	ignored := []tea.MouseMsg{
		{X: 1, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease},
		{X: 1, Y: 1, Button: tea.MouseButtonRight, Action: tea.MouseActionPress},
		{X: 1, Y: 1, Button: tea.MouseButtonNone, Action: tea.MouseActionMotion},
	}
	for _, msg := range ignored {
		if km.MapMouseToFrame(msg, &frame) {
			t.Errorf("%+v should not produce a click", msg)
		}
	}

	if len(frame.Clicks) != 1 || frame.Clicks[0] != (core.Point{X: 12, Y: 7}) {
		t.Errorf("Clicks = %v, want [{12 7}]", frame.Clicks)
	}
}

func TestGameModelForwardsClicksOnTick(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, nil, "")

	next, _ := m.Update(tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = next.(GameModel)
	next, _ = m.Update(keyMsg("l"))
	m = next.(GameModel)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(GameModel)

	if len(g.frames) != 1 {
		t.Fatalf("Expected 1 step, got %d", len(g.frames))
	}
	f := g.frames[0]
	if len(f.Clicks) != 1 || f.Clicks[0] != (core.Point{X: 3, Y: 4}) {
		t.Errorf("Step clicks = %v", f.Clicks)
	}
	if !f.Has(core.ActionLabels) {
		t.Error("Step should see the labels toggle")
	}

	// Input is consumed by the tick
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(GameModel)
	if len(g.frames[1].Clicks) != 0 || g.frames[1].Has(core.ActionLabels) {
		t.Error("Second tick should get an empty frame")
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, nil, "")

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resizes != 1 || g.resets != 0 {
		t.Errorf("resizes=%d resets=%d, want 1/0", g.resizes, g.resets)
	}
}

func TestGameModelBackOnlyWhenNotPlaying(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, nil, "")

	next, _ := m.Update(keyMsg("b"))
	if next.(GameModel).BackToMenu() {
		t.Error("Back should be ignored while playing")
	}

	m.gameState.Paused = true
	next, _ = m.Update(keyMsg("esc"))
	if !next.(GameModel).BackToMenu() {
		t.Error("Back should work while paused")
	}
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	g := &fakeGame{state: core.GameState{Score: 55, GameOver: true}, progress: [2]int{3, 17}}
	m := NewGameModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, nil, "ann")

	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(GameModel)
	}

	scores, err := store.AllScores("fake")
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 saved score, got %d", len(scores))
	}
	s := scores[0]
	if s.Score != 55 || s.Player != "ann" || s.Level != 3 || s.Moves != 17 {
		t.Errorf("Unexpected entry: %+v", s)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(10, 2)
	scr.DrawText(0, 0, "plain")
	scr.DrawTextColored(0, 1, "red", core.ColorRed, core.ColorBlue)

	out := RenderScreen(scr)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "plain     " {
		t.Errorf("Uncolored row should be written as is, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "red") {
		t.Errorf("Colored row lost its text: %q", lines[1])
	}
}

func TestScoreboardModes(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore(storage.Result{GameID: "tilefall", Player: "ann", Score: 120, Level: 3, Moves: 40}); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.boards) != 2 || m.boards[0].label != "Campaign" || m.boards[1].label != "Endless" {
		t.Fatalf("boards = %+v, want campaign then endless", m.boards)
	}

	rows := m.table.Rows()
	if len(rows) != 1 || len(rows[0]) != 6 {
		t.Fatalf("campaign rows = %v, want one row with a level column", rows)
	}
	if rows[0][1] != "ann" || rows[0][3] != "3" {
		t.Errorf("campaign row = %v", rows[0])
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if b, _ := m.board(); !b.endless {
		t.Fatal("tab should switch to the endless board")
	}
	if !strings.Contains(m.View(), "No endless runs yet") {
		t.Error("empty endless board should explain endless mode")
	}

	if _, err := store.SaveScore(storage.Result{GameID: "tilefall_endless", Score: 80, Moves: 100}); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}
	m.showBoard(1)
	rows = m.table.Rows()
	if len(rows) != 1 || len(rows[0]) != 5 {
		t.Fatalf("endless rows = %v, want one row without a level column", rows)
	}
	if rows[0][1] != "local" {
		t.Errorf("player = %q, want local", rows[0][1])
	}

	// Wraps around
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb := next.(ScoreboardModel)
	if b, _ := sb.board(); b.endless {
		t.Error("tab from endless should wrap to campaign")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No campaign runs yet") {
		t.Error("campaign empty message missing")
	}
}
