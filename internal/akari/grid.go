package akari

import (
	"fmt"
	"strings"
)

// Grid is a square board in row-major order: g[y][x].
type Grid [][]Cell

func NewGrid(size int) Grid {
	g := make(Grid, size)
	for y := range g {
		g[y] = make([]Cell, size)
		for x := range g[y] {
			g[y][x] = Empty
		}
	}
	return g
}

func (g Grid) Size() int {
	return len(g)
}

func (g Grid) InBounds(x, y int) bool {
	return 0 <= x && x < len(g) && 0 <= y && y < len(g)
}

var orthogonal = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// AdjacentEmpty counts the orthogonally adjacent empty cells of (x, y),
// the adjacency capacity of a wall cell.
func (g Grid) AdjacentEmpty(x, y int) int {
	count := 0
	for _, d := range orthogonal {
		nx, ny := x+d[0], y+d[1]
		if g.InBounds(nx, ny) && g[ny][nx] == Empty {
			count++
		}
	}
	return count
}

// AdjacentNumbered reports whether (x, y) touches at least one numbered wall.
func (g Grid) AdjacentNumbered(x, y int) bool {
	for _, d := range orthogonal {
		nx, ny := x+d[0], y+d[1]
		if g.InBounds(nx, ny) && g[ny][nx].IsNumbered() {
			return true
		}
	}
	return false
}

func (g Grid) CountEmpty() (count int) {
	for _, row := range g {
		for _, c := range row {
			if c == Empty {
				count++
			}
		}
	}
	return
}

func (g Grid) CountWalls() (count int) {
	for _, row := range g {
		for _, c := range row {
			if c.IsWall() {
				count++
			}
		}
	}
	return
}

func (g Grid) CountNumbered() (count int) {
	for _, row := range g {
		for _, c := range row {
			if c.IsNumbered() {
				count++
			}
		}
	}
	return
}

// NumberTally maps each numbered-wall value present to its occurrence count.
func (g Grid) NumberTally() map[int]int {
	tally := make(map[int]int)
	for _, row := range g {
		for _, c := range row {
			if n, ok := c.Number(); ok {
				tally[n]++
			}
		}
	}
	return tally
}

func (g Grid) String() string {
	var b strings.Builder
	for _, row := range g {
		for _, c := range row {
			fmt.Fprint(&b, c.String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
