package tilefall

import "github.com/vovakirdan/tilefall/internal/board"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Level     int    // Current level (1-indexed for display)
	Mode      string // "campaign" or "endless"
	Score     int
	Moves     int
	MoveLimit int
	Cleared   int
	Phase     string
	Chain     int
	Grid      *board.Grid
	Highlight []board.Coord
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.phase == PhaseLevelCleared:
		state = StateLevelCleared
	}

	return Snapshot{
		Tick:      g.tick,
		Level:     g.levelIndex + 1,
		Mode:      string(g.mode),
		Score:     g.score,
		Moves:     g.moves,
		MoveLimit: g.moveLimit,
		Cleared:   g.cleared,
		Phase:     g.phase.String(),
		Chain:     g.chain,
		Grid:      g.grid.Clone(),
		Highlight: g.Highlight(),
		State:     state,
	}
}
