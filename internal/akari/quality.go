package akari

import (
	"errors"
	"fmt"
)

/* ----------------------------------------------------------------------
 * Heuristic quality filter.
 *
 * All of these checks are proxies for true solvability: none of them
 * proves a unique solution exists or is reachable by legal play. An
 * accepted board is well-formed and reasonably constrained, nothing
 * more. A real solver would change acceptance behavior and is
 * deliberately not implemented.
 */

// One sentinel per gate so a rejection can name the gate that fired.
var (
	ErrWhiteCellBounds = errors.New("white cell count out of bounds")
	ErrBadConstraint   = errors.New("unsatisfiable or degenerate numbered wall")
	ErrLowConnectivity = errors.New("too few white cells border a numbered wall")
	ErrWallDensity     = errors.New("wall density out of bounds")
	ErrLittleVariety   = errors.New("not enough structural variety")
	ErrDifficultyBar   = errors.New("below difficulty quality bar")
)

// CheckQuality runs the design-quality gates in order and returns the
// first gate failure, wrapped around its sentinel, or nil if the grid
// clears all of them.
func CheckQuality(g Grid, difficulty Difficulty) error {
	profile, err := difficulty.Profile()
	if err != nil {
		return err
	}

	size := g.Size()
	total := size * size
	white := g.CountEmpty()
	numbered := g.CountNumbered()

	// 1. White-cell bounds: a floor of `size` avoids over-constrained
	// boards, a ceiling of 85% avoids trivial ones.
	if white < size {
		return fmt.Errorf("%w: %d white cells, need at least %d", ErrWhiteCellBounds, white, size)
	}
	if float64(white) > float64(total)*0.85 {
		return fmt.Errorf("%w: %d white cells of %d", ErrWhiteCellBounds, white, total)
	}

	// 2. Constraint presence and per-cell satisfiability.
	if numbered == 0 {
		return fmt.Errorf("%w: no numbered walls", ErrBadConstraint)
	}
	for y, row := range g {
		for x, c := range row {
			n, ok := c.Number()
			if !ok {
				continue
			}
			capacity := g.AdjacentEmpty(x, y)
			if n > capacity {
				return fmt.Errorf("%w: %d at (%d,%d) with capacity %d", ErrBadConstraint, n, x, y, capacity)
			}
			if n == 0 && capacity > 0 {
				return fmt.Errorf("%w: zero requirement at (%d,%d)", ErrBadConstraint, x, y)
			}
		}
	}

	// 3. Connectivity heuristic: enough white cells must touch a
	// numbered wall for the constraints to reach the board.
	minConnected := 0.3
	if size <= 6 {
		minConnected = 0.2
	}
	connected := 0
	for y, row := range g {
		for x, c := range row {
			if c == Empty && g.AdjacentNumbered(x, y) {
				connected++
			}
		}
	}
	if float64(connected) < float64(white)*minConnected {
		return fmt.Errorf("%w: %d of %d", ErrLowConnectivity, connected, white)
	}

	// 4. Wall-density bounds, wide band.
	wallRatio := float64(g.CountWalls()) / float64(total)
	if wallRatio < 0.05 || wallRatio > 0.5 {
		return fmt.Errorf("%w: ratio %.3f outside [0.05, 0.50]", ErrWallDensity, wallRatio)
	}

	// 5. Structural variety.
	tally := g.NumberTally()
	if len(tally) < 1 {
		return fmt.Errorf("%w: no number values", ErrLittleVariety)
	}
	if size >= 8 {
		higher := false
		for n := range tally {
			if n >= 2 {
				higher = true
				break
			}
		}
		if !higher {
			return fmt.Errorf("%w: no number value >= 2", ErrLittleVariety)
		}
	}
	if numbered < 1 || numbered > size*2 {
		return fmt.Errorf("%w: %d numbered walls", ErrLittleVariety, numbered)
	}

	// 6. Difficulty-specific thresholds, including a tighter wall band.
	if float64(white) < float64(total)*profile.MinWhiteRatio {
		return fmt.Errorf("%w: %d white cells below %s floor", ErrDifficultyBar, white, difficulty)
	}
	if numbered < profile.MinNumbered {
		return fmt.Errorf("%w: %d numbered walls, %s needs %d", ErrDifficultyBar, numbered, difficulty, profile.MinNumbered)
	}
	if size >= 8 && len(tally) < 2 {
		return fmt.Errorf("%w: single number value on a %dx%d board", ErrDifficultyBar, size, size)
	}
	if wallRatio < 0.15 || wallRatio > 0.5 {
		return fmt.Errorf("%w: wall ratio %.3f outside [0.15, 0.50]", ErrDifficultyBar, wallRatio)
	}

	return nil
}

// PassesQuality reports whether the grid clears every quality gate.
func PassesQuality(g Grid, difficulty Difficulty) bool {
	return CheckQuality(g, difficulty) == nil
}
