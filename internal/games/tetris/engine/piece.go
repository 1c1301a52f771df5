package engine

import "strings"

// Shape is a square occupancy matrix indexed [row][col].
// Shapes are treated as immutable values: every transformation allocates.
type Shape [][]bool

// ParseShape builds a shape from rows where '#' marks an occupied cell.
func ParseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, r := range row {
			s[y][x] = r == '#'
		}
	}
	return s
}

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	for y := range s {
		c[y] = append([]bool(nil), s[y]...)
	}
	return c
}

// Equal reports whether both shapes have identical dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(o[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// transpose returns rows as columns.
func (s Shape) transpose() Shape {
	n := len(s)
	t := make(Shape, n)
	for y := range t {
		t[y] = make([]bool, n)
		for x := range t[y] {
			t[y][x] = s[x][y]
		}
	}
	return t
}

// String renders the shape with '#' and '.' rows, mainly for test output.
func (s Shape) String() string {
	var sb strings.Builder
	for y, row := range s {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, filled := range row {
			if filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// Direction selects a rotation sense.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// Piece is one tetromino in a given orientation.
type Piece struct {
	Kind  Kind
	Shape Shape
}

// Width returns the width of the piece matrix.
func (p Piece) Width() int {
	return p.Shape.Width()
}

// Rotate returns the piece turned a quarter in dir. Clockwise is a transpose
// followed by reversing each row; counter-clockwise reverses the row order of
// the transpose instead. The receiver is left untouched.
func (p Piece) Rotate(dir Direction) Piece {
	t := p.Shape.transpose()
	if dir == CounterClockwise {
		for i, j := 0, len(t)-1; i < j; i, j = i+1, j-1 {
			t[i], t[j] = t[j], t[i]
		}
	} else {
		for _, row := range t {
			for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
				row[i], row[j] = row[j], row[i]
			}
		}
	}
	return Piece{Kind: p.Kind, Shape: t}
}

// Position is the board coordinate of a piece matrix's top-left cell.
type Position struct {
	X, Y int
}

// Add returns the position shifted by dx, dy.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}
