package akari

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkFunc func(ctx context.Context, p *Puzzle) error

func (f sinkFunc) Accept(ctx context.Context, p *Puzzle) error {
	return f(ctx, p)
}

func TestGenerateBatch(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	var seen []*Puzzle
	sink := sinkFunc(func(ctx context.Context, p *Puzzle) error {
		seen = append(seen, p)
		return nil
	})

	gen := NewGenerator(rand.New(rand.NewPCG(1, 2)))
	result, puzzles := gen.GenerateBatch(
		context.Background(), []int{6}, []Difficulty{Easy}, 5, sink,
	)

	assert.LessOrEqual(t, result.Generated, 5)
	assert.Equal(t, result.Generated+result.Failed, 5)
	assert.Equal(t, result.Generated, result.BySize[6])
	assert.Equal(t, result.Generated, result.ByDifficulty[Easy])
	assert.Equal(t, result.Generated, result.Saved)
	assert.Len(t, puzzles, result.Generated)
	assert.Len(t, seen, result.Generated)
	assert.Empty(t, result.SinkErrors)
}

func TestGenerateBatchSinkFailureDoesNotAbort(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	sink := sinkFunc(func(ctx context.Context, p *Puzzle) error {
		return errors.New("connection refused")
	})

	gen := NewGenerator(rand.New(rand.NewPCG(1, 2)))
	result, puzzles := gen.GenerateBatch(
		context.Background(), []int{6}, []Difficulty{Easy, Medium}, 2, sink,
	)

	// Sinking and generation are separate failure domains: every
	// accepted puzzle is still counted and returned.
	assert.Equal(t, 0, result.Saved)
	assert.Len(t, result.SinkErrors, result.Generated)
	assert.Len(t, puzzles, result.Generated)
}

func TestGenerateBatchNilSink(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	gen := NewGenerator(rand.New(rand.NewPCG(1, 2)))
	result, puzzles := gen.GenerateBatch(
		context.Background(), []int{6}, []Difficulty{Easy}, 3, nil,
	)

	assert.Len(t, puzzles, result.Generated)
	assert.Equal(t, 0, result.Saved)
}

func TestGenerateBatchImpossibleCombination(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewPCG(1, 2)))
	result, puzzles := gen.GenerateBatch(
		context.Background(), []int{1}, []Difficulty{Easy}, 2, nil,
	)

	require.Empty(t, puzzles)
	assert.Equal(t, 0, result.Generated)
	assert.Equal(t, 2, result.Failed)
}

func TestNewEbookPuzzle(t *testing.T) {
	p := &Puzzle{
		Layout:     mustGrid(t, []string{"1.", ".."}),
		Seed:       "abcdefabcdef",
		Size:       2,
		Difficulty: Easy,
	}
	e := NewEbookPuzzle(p, 3)
	assert.Equal(t, "ebook_2_easy_003", e.EbookID)
	assert.Equal(t, "White cells: 3, Numbered cells: 1", e.SolutionHint)
}
