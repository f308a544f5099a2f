package akari

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustGrid builds a grid from rows of '.', 'X' and '0'..'4'.
func mustGrid(t *testing.T, rows []string) Grid {
	t.Helper()
	g := make(Grid, len(rows))
	for y, row := range rows {
		require.Len(t, row, len(rows), "grid rows must form a square")
		g[y] = make([]Cell, len(row))
		for x, r := range row {
			switch {
			case r == '.':
				g[y][x] = Empty
			case r == 'X':
				g[y][x] = Wall
			case '0' <= r && r <= '4':
				g[y][x] = NumberedWall(int(r - '0'))
			default:
				t.Fatalf("bad grid rune %q", r)
			}
		}
	}
	return g
}

func TestAdjacentEmpty(t *testing.T) {
	g := mustGrid(t, []string{
		".XX",
		"...",
		"...",
	})
	// (2, 0) reads 2 under a swapped x/y order, 1 under the correct one.
	assert.Equal(t, 1, g.AdjacentEmpty(2, 0))
	assert.Equal(t, 2, g.AdjacentEmpty(1, 0))
	assert.Equal(t, 3, g.AdjacentEmpty(1, 1))
	assert.Equal(t, 2, g.AdjacentEmpty(2, 2))
}

func TestGridCounts(t *testing.T) {
	g := mustGrid(t, []string{
		"X1..",
		"....",
		"..2.",
		"...X",
	})
	assert.Equal(t, 12, g.CountEmpty())
	assert.Equal(t, 4, g.CountWalls())
	assert.Equal(t, 2, g.CountNumbered())
	assert.Equal(t, map[int]int{1: 1, 2: 1}, g.NumberTally())
}

func TestAdjacentNumbered(t *testing.T) {
	g := mustGrid(t, []string{
		"1..",
		"...",
		"..X",
	})
	assert.True(t, g.AdjacentNumbered(1, 0))
	assert.True(t, g.AdjacentNumbered(0, 1))
	assert.False(t, g.AdjacentNumbered(2, 1))
	assert.False(t, g.AdjacentNumbered(1, 1))
}
