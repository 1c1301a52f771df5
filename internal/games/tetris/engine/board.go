package engine

// Scoring for a single sweep: the first cleared row is worth SweepBasePoints
// and every further row in the same sweep is worth twice the previous one.
const (
	SweepBasePoints = 10
	SweepFactor     = 2
)

// SweepResult reports what a single Sweep call removed.
type SweepResult struct {
	Rows   int // Number of rows cleared
	Points int // Score earned, compounded within this sweep only
}

// Board is the fixed-size grid of locked cells.
// Cells are stored in row-major order: index = y*w + x.
type Board struct {
	w, h        int
	cells       []Kind
	sweepTopRow bool
}

// NewBoard creates an empty board. Dimensions never change afterwards.
func NewBoard(w, h int) *Board {
	return &Board{
		w:     w,
		h:     h,
		cells: make([]Kind, w*h),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.w }

// Height returns the number of rows.
func (b *Board) Height() int { return b.h }

// SetSweepTopRow controls whether Sweep may clear row 0. The classic rules
// scan rows h-1..1 only, so a full top row stays put; see Sweep.
func (b *Board) SetSweepTopRow(enabled bool) {
	b.sweepTopRow = enabled
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.w && y >= 0 && y < b.h
}

// At returns the tag at (x, y), or KindNone out of bounds.
func (b *Board) At(x, y int) Kind {
	if !b.inBounds(x, y) {
		return KindNone
	}
	return b.cells[y*b.w+x]
}

// Fill writes a tag directly. Used to set up positions; gameplay goes
// through Merge.
func (b *Board) Fill(x, y int, k Kind) {
	if b.inBounds(x, y) {
		b.cells[y*b.w+x] = k
	}
}

// FillRow writes the same tag across an entire row.
func (b *Board) FillRow(y int, k Kind) {
	for x := 0; x < b.w; x++ {
		b.Fill(x, y, k)
	}
}

// Collides reports whether placing p at pos hits a side wall, the floor, or
// a locked cell. Cells above row 0 are not a collision: pieces may hang over
// the top of the well while they spawn or rotate.
func (b *Board) Collides(p Piece, pos Position) bool {
	for y, row := range p.Shape {
		for x, filled := range row {
			if !filled {
				continue
			}
			bx, by := pos.X+x, pos.Y+y
			if bx < 0 || bx >= b.w || by >= b.h {
				return true
			}
			if by < 0 {
				continue
			}
			if b.cells[by*b.w+bx] != KindNone {
				return true
			}
		}
	}
	return false
}

// Merge copies every occupied cell of p into the grid at pos. Writes are
// unconditional; callers check Collides first. Cells that would land above
// the board are dropped since the grid has nowhere to keep them.
func (b *Board) Merge(p Piece, pos Position) {
	for y, row := range p.Shape {
		for x, filled := range row {
			if filled {
				b.Fill(pos.X+x, pos.Y+y, p.Kind)
			}
		}
	}
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < b.w; x++ {
		if b.cells[y*b.w+x] == KindNone {
			return false
		}
	}
	return true
}

// removeRow deletes row y and inserts an empty row at the top.
func (b *Board) removeRow(y int) {
	copy(b.cells[b.w:(y+1)*b.w], b.cells[:y*b.w])
	for x := 0; x < b.w; x++ {
		b.cells[x] = KindNone
	}
}

// Sweep clears full rows scanning from the bottom up. After a clear the same
// row index is examined again because everything above moved down by one.
// Row 0 is only considered when SetSweepTopRow(true) was called.
func (b *Board) Sweep() SweepResult {
	var res SweepResult
	top := 1
	if b.sweepTopRow {
		top = 0
	}

	value := SweepBasePoints
	for y := b.h - 1; y >= top; y-- {
		if !b.rowFull(y) {
			continue
		}
		b.removeRow(y)
		y++

		res.Rows++
		res.Points += value
		value *= SweepFactor
	}
	return res
}

// Clear empties every cell. The board keeps its dimensions.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = KindNone
	}
}

// Rows returns a copy of the grid as [row][col] tags.
func (b *Board) Rows() [][]Kind {
	rows := make([][]Kind, b.h)
	for y := range rows {
		rows[y] = append([]Kind(nil), b.cells[y*b.w:(y+1)*b.w]...)
	}
	return rows
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{
		w:           b.w,
		h:           b.h,
		cells:       append([]Kind(nil), b.cells...),
		sweepTopRow: b.sweepTopRow,
	}
}

// filledRows counts rows holding at least one locked cell.
func (b *Board) filledRows() int {
	n := 0
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.cells[y*b.w+x] != KindNone {
				n++
				break
			}
		}
	}
	return n
}
