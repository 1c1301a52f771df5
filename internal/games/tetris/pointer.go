package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// PointerAction maps a click at screen (x, y) over the playfield to an
// action. The playfield is split into horizontal thirds: the top third
// rotates, the middle third moves toward the clicked half and the bottom
// third drops. Clicks outside the playfield map to ActionNone.
func (g *Game) PointerAction(x, y int) core.Action {
	if g.tooSmall {
		return core.ActionNone
	}
	return regionAction(g.layout.board.Inset(1), x, y)
}

func regionAction(field core.Rect, x, y int) core.Action {
	if field.W <= 0 || field.H <= 0 || !field.Contains(x, y) {
		return core.ActionNone
	}

	row := y - field.Y
	switch {
	case row*3 < field.H:
		return core.ActionRotate
	case row*3 < field.H*2:
		if (x-field.X)*2 < field.W {
			return core.ActionLeft
		}
		return core.ActionRight
	default:
		return core.ActionDown
	}
}
