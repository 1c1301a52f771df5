package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

const (
	cellW      = 2  // Terminal columns per board cell
	panelW     = 16 // Side panel width
	panelGap   = 2
	blockGlyph = '█'
)

// layout places the board and the side panel on screen.
type layout struct {
	board core.Rect // Playfield including its border
	panel core.Rect
	fits  bool
}

func computeLayout(cols, rows, screenW, screenH int) layout {
	boardW := cols*cellW + 2
	boardH := rows + 2
	totalW := boardW + panelGap + panelW

	x := (screenW - totalW) / 2
	y := (screenH - boardH) / 2
	return layout{
		board: core.NewRect(x, y, boardW, boardH),
		panel: core.NewRect(x+boardW+panelGap, y, panelW, boardH),
		fits:  screenW >= totalW && screenH >= boardH,
	}
}

// kindColors follows the classic arcade palette order.
var kindColors = map[engine.Kind]core.Color{
	engine.KindI: core.ColorRed,
	engine.KindL: core.ColorCyan,
	engine.KindJ: core.ColorGreen,
	engine.KindO: core.ColorMagenta,
	engine.KindZ: core.ColorOrange,
	engine.KindS: core.ColorYellow,
	engine.KindT: core.ColorBlue,
}

// KindColor returns the display color of a piece kind.
func KindColor(k engine.Kind) core.Color {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return core.ColorDefault
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil || g.session == nil {
		g.renderInvalid(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderBoard(dst)
	g.renderPanel(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.layout.panel.Right()-g.layout.board.X, g.layout.board.H), core.ColorGray)
}

func (g *Game) renderInvalid(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Invalid rules", core.ColorRed)
	if g.err != nil {
		dst.DrawTextCentered(y+1, g.err.Error(), core.ColorGray)
	}
}

// drawCell paints one board cell, which is cellW terminal columns wide.
func (g *Game) drawCell(dst *core.Screen, x, y int, c core.Color) {
	sx := g.layout.board.X + 1 + x*cellW
	sy := g.layout.board.Y + 1 + y
	for i := 0; i < cellW; i++ {
		dst.SetColored(sx+i, sy, blockGlyph, c)
	}
}

func (g *Game) renderBoard(dst *core.Screen) {
	dst.DrawBox(g.layout.board, core.ColorGray)

	b := g.board()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if k := b.At(x, y); k != engine.KindNone {
				g.drawCell(dst, x, y, KindColor(k))
			}
		}
	}

	if g.gameOver {
		return
	}
	active := g.session.Active()
	color := KindColor(active.Piece.Kind)
	for _, p := range active.Cells() {
		if p.Y >= 0 && p.Y < b.Height() {
			g.drawCell(dst, p.X, p.Y, color)
		}
	}
}

func (g *Game) renderPanel(dst *core.Screen) {
	p := g.layout.panel
	x, y := p.X, p.Y

	dst.DrawTextColored(x, y, "T E T R I S", core.ColorBrightWhite)

	state := g.State()
	dst.DrawTextColored(x, y+2, "Score", core.ColorGray)
	dst.DrawText(x, y+3, fmt.Sprintf("%d", state.Score))
	dst.DrawTextColored(x, y+4, "Lines", core.ColorGray)
	dst.DrawText(x, y+5, fmt.Sprintf("%d", state.Lines))
	dst.DrawTextColored(x, y+6, "Speed", core.ColorGray)
	dst.DrawText(x, y+7, fmt.Sprintf("%dms", g.session.Interval().Milliseconds()))

	dst.DrawTextColored(x, y+9, "Next", core.ColorGray)
	if !g.gameOver {
		g.renderPreview(dst, x, y+10, g.session.Next())
	}

	hints := []string{"←/→ move", "↑ rotate  z ccw", "↓ drop", "p pause  q quit"}
	for i, h := range hints {
		dst.DrawTextColored(x, p.Bottom()-len(hints)+i, h, core.ColorGray)
	}
}

// renderPreview draws a piece shape at screen position (x, y).
func (g *Game) renderPreview(dst *core.Screen, x, y int, k engine.Kind) {
	piece, err := engine.ShapeFor(k)
	if err != nil {
		return
	}
	color := KindColor(k)
	for py, row := range piece.Shape {
		for px, filled := range row {
			if !filled {
				continue
			}
			for i := 0; i < cellW; i++ {
				dst.SetColored(x+px*cellW+i, y+py, blockGlyph, color)
			}
		}
	}
}

func (g *Game) renderOverlays(dst *core.Screen) {
	inner := g.layout.board.Inset(1)
	_, cy := inner.Center()

	switch {
	case g.gameOver:
		box := core.NewRect(inner.X, cy-2, inner.W, 5)
		dst.DrawRect(box, ' ', core.ColorDefault)
		g.drawCentered(dst, inner, cy-1, "GAME OVER", core.ColorRed)
		g.drawCentered(dst, inner, cy, fmt.Sprintf("Score %d", g.final.Score), core.ColorBrightWhite)
		g.drawCentered(dst, inner, cy+1, "R restart", core.ColorGray)
	case g.session.Paused():
		box := core.NewRect(inner.X, cy-1, inner.W, 3)
		dst.DrawRect(box, ' ', core.ColorDefault)
		g.drawCentered(dst, inner, cy, "PAUSED", core.ColorYellow)
	}
}

// drawCentered centers text horizontally within r.
func (g *Game) drawCentered(dst *core.Screen, r core.Rect, y int, text string, c core.Color) {
	n := len([]rune(text))
	dst.DrawTextColored(r.X+(r.W-n)/2, y, text, c)
}
