package engine

// KickOffsets returns the horizontal steps tried after a blocked rotation:
// +1, -2, +3, -4, ... up to a magnitude of attempts. Steps are applied
// cumulatively, so the piece visits x+1, x-1, x+2, x-2, ...
func KickOffsets(attempts int) []int {
	offsets := make([]int, 0, attempts)
	for i := 1; i <= attempts; i++ {
		step := i
		if i%2 == 0 {
			step = -i
		}
		offsets = append(offsets, step)
	}
	return offsets
}

// Kick searches for a legal position for p starting at pos. The starting
// position itself is tried first. attempts <= 0 means the piece width.
func Kick(b *Board, p Piece, pos Position, attempts int) (Position, bool) {
	if !b.Collides(p, pos) {
		return pos, true
	}
	if attempts <= 0 {
		attempts = p.Width()
	}
	x := pos.X
	for _, off := range KickOffsets(attempts) {
		x += off
		candidate := Position{X: x, Y: pos.Y}
		if !b.Collides(p, candidate) {
			return candidate, true
		}
	}
	return pos, false
}
