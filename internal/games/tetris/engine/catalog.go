// Package engine implements the falling-block simulation: the piece catalog,
// the board with its collision/merge/sweep rules, the active piece operations
// and the session that ties them together into rounds.
//
// The package is pure: no rendering, no terminal, no clocks. Time only enters
// through Session.Advance, and randomness through an injected *rand.Rand, so
// two sessions with the same seed and the same commands are identical.
package engine

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrUnknownKind is returned for piece symbols outside the 7 canonical ones.
var ErrUnknownKind = errors.New("engine: unknown piece kind")

// Kind identifies a piece type. It is also the tag stored in locked board
// cells, so the renderer can color them. 0 is reserved for empty cells.
type Kind uint8

// Piece kinds, numbered as in the classic arcade palette order.
const (
	KindNone Kind = iota
	KindI
	KindL
	KindJ
	KindO
	KindZ
	KindS
	KindT
)

// kindCount is the number of playable kinds.
const kindCount = 7

var kindSymbols = [...]rune{
	KindNone: '.',
	KindI:    'I',
	KindL:    'L',
	KindJ:    'J',
	KindO:    'O',
	KindZ:    'Z',
	KindS:    'S',
	KindT:    'T',
}

// String returns the one-letter symbol of the kind.
func (k Kind) String() string {
	if int(k) >= len(kindSymbols) {
		return "?"
	}
	return string(kindSymbols[k])
}

// Valid reports whether k is one of the 7 playable kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindT
}

// ParseKind maps a piece symbol (I, L, J, O, Z, S, T) to its Kind.
func ParseKind(r rune) (Kind, error) {
	for k := KindI; k <= KindT; k++ {
		if kindSymbols[k] == r {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnknownKind, r)
}

// Kinds returns all playable kinds in catalog order.
func Kinds() []Kind {
	return []Kind{KindI, KindL, KindJ, KindO, KindZ, KindS, KindT}
}

// RandomKind picks one of the 7 kinds uniformly.
func RandomKind(rng *rand.Rand) Kind {
	return Kind(rng.Intn(kindCount)) + KindI
}

// canonical holds the spawn orientation of every kind.
// The I, L and J shapes start vertical, the rest flat.
var canonical = map[Kind][]string{
	KindI: {
		".#..",
		".#..",
		".#..",
		".#..",
	},
	KindL: {
		".#.",
		".#.",
		".##",
	},
	KindJ: {
		".#.",
		".#.",
		"##.",
	},
	KindO: {
		"##",
		"##",
	},
	KindZ: {
		"##.",
		".##",
		"...",
	},
	KindS: {
		".##",
		"##.",
		"...",
	},
	KindT: {
		".#.",
		"###",
		"...",
	},
}

// ShapeFor returns a fresh piece of the given kind in its spawn orientation.
func ShapeFor(k Kind) (Piece, error) {
	rows, ok := canonical[k]
	if !ok {
		return Piece{}, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
	return Piece{Kind: k, Shape: ParseShape(rows...)}, nil
}

// MustShape is ShapeFor for kinds known to be valid.
func MustShape(k Kind) Piece {
	p, err := ShapeFor(k)
	if err != nil {
		panic(err)
	}
	return p
}
