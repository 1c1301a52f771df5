package engine

// Active is the falling piece and where it sits. It is owned by whoever
// drives the round and replaced wholesale on every spawn.
type Active struct {
	Piece Piece
	Pos   Position
}

// DropResult describes the outcome of a one-row descent.
type DropResult struct {
	Locked bool        // Piece could not descend and was merged into the board
	Sweep  SweepResult // Rows cleared by the lock, zero when not locked
}

// SpawnPosition centers a piece of the given width at the top of the board.
func SpawnPosition(b *Board, width int) Position {
	return Position{X: b.Width()/2 - width/2, Y: 0}
}

// Spawn places a fresh piece of kind k at the spawn position. gameOver is
// true when that position is already blocked; the returned piece is still
// populated so the caller can show what failed to enter.
func Spawn(b *Board, k Kind) (a Active, gameOver bool) {
	p := MustShape(k)
	a = Active{Piece: p, Pos: SpawnPosition(b, p.Width())}
	return a, b.Collides(a.Piece, a.Pos)
}

// Move shifts the piece horizontally by dir columns if the target is free.
func Move(b *Board, a Active, dir int) Active {
	next := a
	next.Pos = a.Pos.Add(dir, 0)
	if b.Collides(next.Piece, next.Pos) {
		return a
	}
	return next
}

// Drop moves the piece down one row. When the row below is blocked the piece
// is merged at its current position and full rows are swept.
func Drop(b *Board, a Active) (Active, DropResult) {
	below := a.Pos.Add(0, 1)
	if !b.Collides(a.Piece, below) {
		a.Pos = below
		return a, DropResult{}
	}

	b.Merge(a.Piece, a.Pos)
	return a, DropResult{Locked: true, Sweep: b.Sweep()}
}

// Rotate turns the piece a quarter in dir, searching for a wall kick when the
// turned piece does not fit. If no kick works the original piece and position
// are returned unchanged.
func Rotate(b *Board, a Active, dir Direction, kickAttempts int) Active {
	turned := a.Piece.Rotate(dir)
	pos, ok := Kick(b, turned, a.Pos, kickAttempts)
	if !ok {
		return a
	}
	return Active{Piece: turned, Pos: pos}
}

// Cells returns the absolute board coordinates covered by the piece,
// including any above row 0.
func (a Active) Cells() []Position {
	cells := make([]Position, 0, 4)
	for y, row := range a.Piece.Shape {
		for x, filled := range row {
			if filled {
				cells = append(cells, a.Pos.Add(x, y))
			}
		}
	}
	return cells
}
