package akari

import "math/rand/v2"

/* ----------------------------------------------------------------------
 * Random layout sampler. Placement is purely stochastic per cell: no
 * attempt is made here to guarantee a playable board. Quality is the
 * filters' concern (generate and reject, not constructive design).
 */

// Sample produces a candidate size×size layout. Each cell becomes a wall
// with probability wallRatio; each wall with at least one adjacent empty
// cell then receives a number with probability numberRatio, drawn
// uniformly from [1, min(capacity, 4)]. A zero-requirement wall is never
// produced: it is indistinguishable from a plain wall in play.
func Sample(size int, wallRatio, numberRatio float64, r *rand.Rand) Grid {
	g := NewGrid(size)

	for y := range size {
		for x := range size {
			if r.Float64() < wallRatio {
				g[y][x] = Wall
			}
		}
	}

	/*
	 * Collect every wall that could carry a number before converting
	 * any of them. Numbering does not change which cells are empty, so
	 * capacities computed here stay correct.
	 */
	type candidate struct {
		x, y, capacity int
	}
	var walls []candidate
	for y := range size {
		for x := range size {
			if g[y][x] != Wall {
				continue
			}
			if capacity := g.AdjacentEmpty(x, y); capacity > 0 {
				walls = append(walls, candidate{x, y, capacity})
			}
		}
	}

	for _, w := range walls {
		if r.Float64() < numberRatio {
			g[w.y][w.x] = NumberedWall(1 + r.IntN(min(w.capacity, 4)))
		}
	}

	return g
}
