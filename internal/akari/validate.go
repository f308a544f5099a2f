package akari

// Valid checks the hard structural rules: every cell is a legal symbol,
// every numbered wall carries 0..4, and no numbered wall requires more
// bulbs than it has adjacent empty cells. A grid failing here is never
// quality-filtered. Returns false on the first violation found.
func (g Grid) Valid() bool {
	for y, row := range g {
		for x, c := range row {
			if !c.Legal() {
				return false
			}
			if n, ok := c.Number(); ok && n > g.AdjacentEmpty(x, y) {
				return false
			}
		}
	}
	return true
}
