package akari

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePuzzle(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		name       string
		size       int
		difficulty Difficulty
	}{
		{name: "6 easy", size: 6, difficulty: Easy},
		{name: "6 medium", size: 6, difficulty: Medium},
		{name: "8 easy", size: 8, difficulty: Easy},
		{name: "8 medium", size: 8, difficulty: Medium},
		{name: "10 medium", size: 10, difficulty: Medium},
		{name: "10 hard", size: 10, difficulty: Hard},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			gen := NewGenerator(rand.New(rand.NewPCG(1, 2)))

			puzzle, err := gen.GeneratePuzzle(test.size, test.difficulty)
			require.NoError(t, err)
			require.NotNil(t, puzzle)

			assert.Equal(t, test.size, puzzle.Size)
			assert.Equal(t, test.difficulty, puzzle.Difficulty)
			assert.Len(t, puzzle.Seed, 12)
			assert.Equal(t, Fingerprint(puzzle.Layout), puzzle.Seed)

			// Accepted boards must still clear both gates untouched.
			assert.True(t, puzzle.Layout.Valid())
			assert.NoError(t, CheckQuality(puzzle.Layout, test.difficulty))

			// Every numbered wall is achievable.
			for y, row := range puzzle.Layout {
				for x, c := range row {
					if n, ok := c.Number(); ok {
						assert.LessOrEqual(t, n, puzzle.Layout.AdjacentEmpty(x, y))
					}
				}
			}

			// Wall-ratio containment, tight band included.
			ratio := float64(puzzle.Layout.CountWalls()) / float64(test.size*test.size)
			assert.GreaterOrEqual(t, ratio, 0.15)
			assert.LessOrEqual(t, ratio, 0.5)
		})
	}
}

func TestGeneratePuzzleReproducible(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	a, err := NewGenerator(rand.New(rand.NewPCG(7, 11))).GeneratePuzzle(6, Easy)
	require.NoError(t, err)
	b, err := NewGenerator(rand.New(rand.NewPCG(7, 11))).GeneratePuzzle(6, Easy)
	require.NoError(t, err)

	assert.Equal(t, a.Seed, b.Seed)
	assert.Equal(t, a.Layout, b.Layout)
}

func TestGeneratePuzzleDegenerateSize(t *testing.T) {
	t.Parallel()

	// A single cell can never satisfy the quality floor; the loop must
	// exhaust its finite budget instead of hanging.
	gen := NewGenerator(rand.New(rand.NewPCG(1, 2)))
	puzzle, err := gen.GeneratePuzzle(1, Easy)

	require.Error(t, err)
	assert.Nil(t, puzzle)

	var genErr GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 1, genErr.Size)
	assert.Equal(t, Easy, genErr.Difficulty)
	assert.Equal(t, 100, genErr.Attempts)
}

func TestGeneratePuzzleUnknownDifficulty(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewPCG(1, 2)))
	_, err := gen.GeneratePuzzle(6, Difficulty("nightmare"))
	require.Error(t, err)

	var genErr GenerationError
	assert.False(t, errors.As(err, &genErr), "bad difficulty is not a budget exhaustion")
}

func TestSolutionHint(t *testing.T) {
	p := &Puzzle{Layout: mustGrid(t, []string{
		"X1..",
		"....",
		"..2.",
		"...X",
	})}
	assert.Equal(t, "White cells: 12, Numbered cells: 2", p.SolutionHint())
}
