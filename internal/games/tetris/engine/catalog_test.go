package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		sym  rune
		want Kind
	}{
		{'I', KindI},
		{'L', KindL},
		{'J', KindJ},
		{'O', KindO},
		{'Z', KindZ},
		{'S', KindS},
		{'T', KindT},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.sym)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, string(tt.sym), got.String())
	}
}

func TestParseKindUnknown(t *testing.T) {
	for _, r := range []rune{'X', 'i', '.', ' '} {
		_, err := ParseKind(r)
		assert.ErrorIs(t, err, ErrUnknownKind, "symbol %q", r)
	}
}

func TestCatalogTags(t *testing.T) {
	// Tags double as colors in the renderer, so they must stay stable.
	assert.Equal(t, Kind(1), KindI)
	assert.Equal(t, Kind(2), KindL)
	assert.Equal(t, Kind(3), KindJ)
	assert.Equal(t, Kind(4), KindO)
	assert.Equal(t, Kind(5), KindZ)
	assert.Equal(t, Kind(6), KindS)
	assert.Equal(t, Kind(7), KindT)
}

func TestShapesHaveFourCells(t *testing.T) {
	for _, k := range Kinds() {
		p := MustShape(k)
		assert.Equal(t, k, p.Kind)
		assert.Equal(t, p.Shape.Height(), p.Shape.Width(), "kind %s must be square", k)

		n := 0
		for _, row := range p.Shape {
			for _, filled := range row {
				if filled {
					n++
				}
			}
		}
		assert.Equal(t, 4, n, "kind %s", k)
	}
}

func TestShapeForReturnsFreshCopy(t *testing.T) {
	a := MustShape(KindT)
	a.Shape[0][0] = true

	b := MustShape(KindT)
	assert.False(t, b.Shape[0][0])
}

func TestShapeForUnknown(t *testing.T) {
	_, err := ShapeFor(KindNone)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Panics(t, func() { MustShape(Kind(42)) })
}

func TestRandomKindCoversCatalog(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[Kind]int)
	for i := 0; i < 7000; i++ {
		k := RandomKind(rng)
		require.True(t, k.Valid(), "got %d", k)
		seen[k]++
	}
	assert.Len(t, seen, 7)
	for k, n := range seen {
		assert.Greater(t, n, 700, "kind %s drawn too rarely", k)
	}
}
