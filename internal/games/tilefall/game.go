// Package tilefall implements a tile-matching puzzle: click a tile to clear
// its same-colored group, let the columns fall, and watch lines of three
// flash and clear in cascades.
package tilefall

import (
	"math/rand"

	"github.com/vovakirdan/tilefall/internal/board"
	"github.com/vovakirdan/tilefall/internal/config"
	"github.com/vovakirdan/tilefall/internal/core"
	"github.com/vovakirdan/tilefall/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Phase is the click resolution state.
type Phase int

const (
	// PhaseIdle accepts clicks.
	PhaseIdle Phase = iota
	// PhaseHighlight shows triples that will clear when the delay runs out.
	// Clicks are dropped in this phase.
	PhaseHighlight
	// PhaseLevelCleared shows the level banner before the next level.
	PhaseLevelCleared
)

// String returns the phase name used in snapshots.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseHighlight:
		return "highlight"
	case PhaseLevelCleared:
		return "level_cleared"
	default:
		return "unknown"
	}
}

// moveBonus is awarded per unused move when a limited level is cleared.
const moveBonus = 5

// breakPasses bounds the re-roll passes over a fresh board.
const breakPasses = 200

const (
	hudHeight    = 2 // Title and score lines above the board frame
	footerHeight = 1
)

// Game implements the tile puzzle.
type Game struct {
	mode       Mode
	cfg        config.TilefallConfig
	fixedCfg   bool // cfg was supplied by NewWithConfig; never reload
	preset     config.DifficultyPreset
	palette    []core.Color
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	tick       uint64

	grid      *board.Grid
	layout    Layout
	phase     Phase
	highlight []board.Coord
	waitTicks int // Ticks spent in the current timed phase
	chain     int // Triple clears in the current resolution

	score      int
	moves      int
	cleared    int // Tiles cleared this session
	levelIndex int
	startLevel int // 1-based level for the next Reset, 0 for the first
	moveLimit  int

	screenW    int
	screenH    int
	showLabels bool

	gameOver bool
	won      bool
	paused   bool
	tooSmall bool
}

// Package-level settings, written once by the CLI before any game exists.
// Per-game choices go through StartAtLevel and UseDifficulty.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config file used by the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.DifficultyPreset(preset)
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewWithConfig creates a game that uses cfg instead of loading one from disk.
func NewWithConfig(mode Mode, cfg config.TilefallConfig) *Game {
	return &Game{mode: mode, cfg: cfg, fixedCfg: true}
}

// StartAtLevel makes the next Reset begin at the given campaign level
// (1-based). Out-of-range levels start from the beginning.
func (g *Game) StartAtLevel(level int) {
	g.startLevel = level
}

// UseDifficulty overrides the package-wide preset for this game.
func (g *Game) UseDifficulty(preset config.DifficultyPreset) {
	g.preset = preset
}

func init() {
	registry.Register("tilefall", func() registry.Game {
		return New()
	})
	registry.Register("tilefall_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "tilefall_endless"
	}
	return "tilefall"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Tilefall (Endless)"
	}
	return "Tilefall"
}

// loadConfig refreshes cfg from disk unless it was supplied up front.
// A broken file falls back to the defaults; the CLI reports load errors
// before a game is created.
func (g *Game) loadConfig() {
	if !g.fixedCfg {
		cfg, err := config.LoadTilefall(configPath)
		if err != nil {
			cfg = config.DefaultTilefallConfig()
		}
		preset := g.preset
		if preset == "" {
			preset = difficultyPreset
		}
		config.ApplyTilefallPreset(&cfg, preset)
		g.cfg = cfg
	}

	palette, err := g.cfg.PaletteColors()
	if err != nil {
		palette, _ = config.DefaultTilefallConfig().PaletteColors()
	}
	g.palette = palette
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig()

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.moves = 0
	g.cleared = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.showLabels = g.cfg.Display.ShowLabels

	grid, err := board.New(g.cfg.Board.Width, g.cfg.Board.Height)
	if err != nil {
		def := config.DefaultTilefallConfig()
		g.cfg.Board = def.Board
		grid, _ = board.New(def.Board.Width, def.Board.Height)
	}
	g.grid = grid

	// Apply selected start level (campaign only)
	start := g.startLevel
	g.startLevel = 0 // Restarts begin at the first level
	if g.mode == ModeCampaign && start > 0 && start <= len(g.cfg.Levels) {
		g.levelIndex = start - 1
	} else {
		g.levelIndex = 0
	}

	g.startBoard()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// startBoard fills the grid for the current level or endless round.
func (g *Game) startBoard() {
	rules := g.currentRules()
	//nolint:errcheck // Rules are clamped to the grid and validated with the config
	g.grid.Fill(g.rng, rules)
	g.dropDealtTriples(rules.Colors)

	if g.mode == ModeCampaign {
		g.moveLimit = g.cfg.Levels[g.levelIndex].MoveLimit
		g.moves = 0
	} else {
		g.moveLimit = g.cfg.Board.MoveLimit
	}

	g.phase = PhaseIdle
	g.highlight = nil
	g.waitTicks = 0
	g.chain = 0
}

// dropDealtTriples keeps a fresh board from starting with lines the player
// never made. A single color cannot be re-rolled; such a board is one group
// and the first click takes it whole.
func (g *Game) dropDealtTriples(colors int) {
	g.grid.BreakTriples(g.rng, colors, breakPasses)
}

// currentRules returns the fill rules for the next board, clamped so the
// palette covers every color.
func (g *Game) currentRules() board.Rules {
	var rules board.Rules
	if g.mode == ModeCampaign {
		rules = g.cfg.Levels[g.levelIndex].Rules()
	} else {
		rules = g.difficulty.Rules(g.cfg.Board, g.score, int(g.tick))
	}
	rules.Colors = core.Clamp(rules.Colors, 1, core.Min(len(g.palette)-1, board.MaxColors))
	rules.PopulatedRows = core.Clamp(rules.PopulatedRows, 0, g.grid.Height())
	return rules
}

// Resize updates the layout for a new screen size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h

	tw, th := g.cfg.Display.TileWidth, g.cfg.Display.TileHeight
	boardW := g.grid.Width()*tw + 2 // +2 for the frame
	boardH := g.grid.Height()*th + 2

	g.layout = Layout{
		Origin: core.Point{X: (w-boardW)/2 + 1, Y: hudHeight + 1},
		TileW:  tw,
		TileH:  th,
		Cols:   g.grid.Width(),
		Rows:   g.grid.Height(),
	}
	g.tooSmall = w < boardW || h < hudHeight+boardH+footerHeight
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	changed := false

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionLabels) {
		g.showLabels = !g.showLabels
		changed = true
	}

	if g.gameOver || g.won {
		return core.StepResult{State: g.State(), Changed: changed}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		changed = true
	}
	if g.paused {
		return core.StepResult{State: g.State(), Changed: changed}
	}

	switch g.phase {
	case PhaseIdle:
		for _, p := range in.Clicks {
			c, ok := g.layout.CellAt(p.X, p.Y)
			if ok && g.Click(c) {
				changed = true
				break
			}
		}

	case PhaseHighlight:
		g.waitTicks++
		if g.waitTicks >= g.cfg.Timing.HighlightTicks {
			g.clearTriples()
			g.resolve()
			changed = true
		}

	case PhaseLevelCleared:
		g.waitTicks++
		if g.waitTicks >= g.cfg.Timing.LevelClearTicks {
			g.advanceLevel()
			changed = true
		}
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

// Click resolves a click on board cell c: the group under it is removed,
// columns compact and the triple scan starts. Returns false without
// touching the board if c is empty or out of bounds, or if the game is not
// accepting clicks.
func (g *Game) Click(c board.Coord) bool {
	if g.phase != PhaseIdle || g.gameOver || g.won || g.paused {
		return false
	}

	group := g.grid.FindGroup(c)
	if len(group) == 0 {
		return false
	}

	removed := g.grid.Remove(group)
	g.cleared += removed
	g.score += removed * g.cfg.Scoring.PointsPerTile
	g.moves++
	g.grid.Compact()

	g.chain = 0
	g.resolve()
	return true
}

// resolve scans for triples and either starts the highlight delay or, with
// no delay configured, clears cascades immediately. Once the board is stable
// it checks for level end.
func (g *Game) resolve() {
	for {
		triples := g.grid.ScanTriples()
		if len(triples) == 0 {
			g.phase = PhaseIdle
			g.highlight = nil
			g.settle()
			return
		}

		g.highlight = triples
		if g.cfg.Timing.HighlightTicks > 0 {
			g.phase = PhaseHighlight
			g.waitTicks = 0
			return
		}
		g.clearTriples()
	}
}

// clearTriples removes the highlighted tiles and compacts the board.
func (g *Game) clearTriples() {
	g.chain++
	removed := g.grid.Remove(g.highlight)
	g.cleared += removed
	g.score += removed * g.cfg.Scoring.PointsPerTile * g.cfg.Scoring.TripleMultiplier * g.chain
	g.highlight = nil
	g.grid.Compact()
}

// settle runs after a resolution leaves the board stable.
func (g *Game) settle() {
	if g.grid.IsCleared() {
		if g.mode == ModeEndless {
			g.startBoard()
			return
		}
		if g.moveLimit > 0 {
			g.score += (g.moveLimit - g.moves) * moveBonus
		}
		if g.levelIndex >= len(g.cfg.Levels)-1 {
			g.won = true
			return
		}
		g.phase = PhaseLevelCleared
		g.waitTicks = 0
		return
	}

	if g.moveLimit > 0 && g.moves >= g.moveLimit {
		g.gameOver = true
	}
}

// advanceLevel moves to the next campaign level keeping the score.
func (g *Game) advanceLevel() {
	g.levelIndex++
	g.startBoard()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.phase == PhaseLevelCleared,
	}
}

// Grid returns a copy of the board for read-only use.
func (g *Game) Grid() *board.Grid {
	return g.grid.Clone()
}

// Highlight returns the cells outlined before they clear.
func (g *Game) Highlight() []board.Coord {
	return append([]board.Coord(nil), g.highlight...)
}

// Layout returns the current screen layout of the board.
func (g *Game) Layout() Layout {
	return g.layout
}

// Progress reports the current level (1-indexed) and moves made, for
// score records.
func (g *Game) Progress() (level, moves int) {
	return g.levelIndex + 1, g.moves
}

// Phase returns the current resolution phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// LevelNames returns the campaign level names from the active config.
func LevelNames() []string {
	cfg, err := config.LoadTilefall(configPath)
	if err != nil {
		cfg = config.DefaultTilefallConfig()
	}
	names := make([]string, len(cfg.Levels))
	for i, l := range cfg.Levels {
		names[i] = l.Name
	}
	return names
}
