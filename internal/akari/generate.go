package akari

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

// Puzzle is an accepted layout plus its metadata. The JSON shape
// {layout, seed, size, difficulty} is the wire contract shared by the
// database rows, the receiver API and the ebook files; do not change it.
type Puzzle struct {
	Layout     Grid       `json:"layout"`
	Seed       string     `json:"seed"`
	Size       int        `json:"size"`
	Difficulty Difficulty `json:"difficulty"`
}

// SolutionHint is the short structural summary printed next to ebook
// puzzles in place of a full solution.
func (p *Puzzle) SolutionHint() string {
	return fmt.Sprintf("White cells: %d, Numbered cells: %d",
		p.Layout.CountEmpty(), p.Layout.CountNumbered())
}

// GenerationError reports an exhausted attempt budget. It is expected
// and non-fatal: callers log it and move on to the next combination.
type GenerationError struct {
	Size       int
	Difficulty Difficulty
	Attempts   int
}

// [GenerationError] implements [error]
func (e GenerationError) Error() string {
	return fmt.Sprintf("failed to generate %s %dx%d puzzle after %d attempts",
		e.Difficulty, e.Size, e.Size, e.Attempts)
}

// Generator runs the sample-validate-filter loop with an explicitly
// threaded random source, so fixed seeds reproduce fixed boards.
type Generator struct {
	rnd *rand.Rand
}

func NewGenerator(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// GeneratePuzzle samples candidate layouts until one clears both the
// structural validator and the quality filter, or the difficulty's
// attempt budget runs out. Nothing is memoized between attempts; every
// retry re-samples from scratch.
func (g *Generator) GeneratePuzzle(size int, difficulty Difficulty) (*Puzzle, error) {
	profile, err := difficulty.Profile()
	if err != nil {
		return nil, err
	}

	for range profile.MaxAttempts {
		grid := Sample(size, profile.WallRatio, profile.NumberRatio, g.rnd)

		if !grid.Valid() {
			continue
		}
		if err := CheckQuality(grid, difficulty); err != nil {
			Log.Debug("rejected candidate", "size", size, "difficulty", difficulty, "reason", err)
			continue
		}

		return &Puzzle{
			Layout:     grid,
			Seed:       Fingerprint(grid),
			Size:       size,
			Difficulty: difficulty,
		}, nil
	}

	return nil, GenerationError{
		Size:       size,
		Difficulty: difficulty,
		Attempts:   profile.MaxAttempts,
	}
}
