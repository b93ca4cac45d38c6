package tilefall

import (
	"fmt"

	"github.com/vovakirdan/tilefall/internal/board"
	"github.com/vovakirdan/tilefall/internal/core"
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	frame := g.layout.Frame()
	g.renderHUD(dst, frame)
	g.renderBoard(dst, frame)
	g.renderOverlays(dst, frame)

	dst.DrawTextCentered(frame.Bottom(), g.Controls())
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	need := fmt.Sprintf("Need %dx%d", g.layout.Frame().W, hudHeight+g.layout.Frame().H+footerHeight)
	dst.DrawTextCentered(y+1, need)
}

// renderHUD draws title, score and level info above the frame.
func (g *Game) renderHUD(dst *core.Screen, frame core.Rect) {
	title := g.Title()
	dst.DrawText(frame.X+(frame.W-len(title))/2, 0, title)

	dst.DrawText(frame.X, 1, fmt.Sprintf("Score: %d", g.score))

	var info string
	switch {
	case g.mode == ModeCampaign && g.moveLimit > 0:
		info = fmt.Sprintf("L%d/%d  Moves %d/%d", g.levelIndex+1, len(g.cfg.Levels), g.moves, g.moveLimit)
	case g.mode == ModeCampaign:
		info = fmt.Sprintf("L%d/%d  Moves %d", g.levelIndex+1, len(g.cfg.Levels), g.moves)
	case g.moveLimit > 0:
		info = fmt.Sprintf("Moves %d/%d", g.moves, g.moveLimit)
	default:
		info = fmt.Sprintf("Moves %d", g.moves)
	}
	x := core.Max(frame.Right()-len(info), frame.X)
	dst.DrawText(x, 1, info)
}

// renderBoard draws the frame, the tiles and the highlight outlines.
func (g *Game) renderBoard(dst *core.Screen, frame core.Rect) {
	bg := g.tileColor(board.Empty)
	dst.FillRect(g.layout.Bounds(), core.Cell{Rune: ' ', Bg: bg})
	dst.DrawBox(frame, core.ColorWhite)

	for row := 0; row < g.grid.Height(); row++ {
		for col := 0; col < g.grid.Width(); col++ {
			c := board.C(row, col)
			t := g.grid.Get(c)
			if t == board.Empty {
				continue
			}
			dst.FillRect(g.layout.TileRect(c), core.Cell{Rune: ' ', Bg: g.tileColor(t)})
		}
	}

	for _, c := range g.highlight {
		r := g.layout.TileRect(c)
		if r.W >= 2 && r.H >= 2 {
			dst.DrawBox(r, core.ColorWhite)
			continue
		}
		for x := r.X; x < r.Right(); x++ {
			for y := r.Y; y < r.Bottom(); y++ {
				dst.Set(x, y, '*')
			}
		}
	}

	if g.showLabels {
		g.renderLabels(dst)
	}
}

// renderLabels writes "row,col" in the top-left corner of every cell.
func (g *Game) renderLabels(dst *core.Screen) {
	for row := 0; row < g.grid.Height(); row++ {
		for col := 0; col < g.grid.Width(); col++ {
			c := board.C(row, col)
			r := g.layout.TileRect(c)
			label := fmt.Sprintf("%d,%d", row, col)
			if len(label) > r.W {
				label = label[:r.W]
			}
			fg := core.ColorBlack
			if g.grid.Get(c) == board.Empty {
				fg = core.ColorGray
			}
			dst.DrawTextColored(r.X, r.Y, label, fg, g.tileColor(g.grid.Get(c)))
		}
	}
}

// tileColor maps a tile value to its palette color.
func (g *Game) tileColor(t board.Tile) core.Color {
	if int(t) < len(g.palette) {
		return g.palette[t]
	}
	return core.ColorWhite
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	centerX := frame.X + frame.W/2
	centerY := frame.Y + frame.H/2

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.won:
		g.drawOverlay(dst, centerX, centerY, "ALL LEVELS CLEAR!", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.gameOver:
		g.drawOverlay(dst, centerX, centerY, "OUT OF MOVES", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.phase == PhaseLevelCleared:
		name := g.cfg.Levels[g.levelIndex].Name
		next := fmt.Sprintf("Next: %s", g.cfg.Levels[g.levelIndex+1].Name)
		g.drawOverlay(dst, centerX, centerY, fmt.Sprintf("%s cleared!", name), next)
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, core.ColorWhite)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Click: clear group | L: Labels | P: Pause | R: Restart | Q: Quit"
}
