package akari

import (
	"context"
	"errors"
	"fmt"
)

// Sink receives each accepted puzzle exactly once. Implementations are
// side-effecting collaborators: a database insert, an API payload, an
// in-memory ebook list. A sink error never rolls back generation
// counters; generation and sinking are independent failure domains.
type Sink interface {
	Accept(ctx context.Context, p *Puzzle) error
}

// BatchResult aggregates one batch run. Mutated only by the
// orchestrator during the run, then reported and discarded.
type BatchResult struct {
	Generated    int                `json:"total_generated"`
	Saved        int                `json:"total_saved"`
	Failed       int                `json:"failed"`
	BySize       map[int]int        `json:"by_size"`
	ByDifficulty map[Difficulty]int `json:"by_difficulty"`
	SinkErrors   []string           `json:"sink_errors,omitempty"`
}

// GenerateBatch drives the generation loop across sizes × difficulties,
// countPerSize puzzles per combination. Each accepted puzzle is handed
// to the sink individually; a nil sink collects only. Exhausted budgets
// are logged as warnings and counted as failures, never aborting the
// batch.
func (g *Generator) GenerateBatch(
	ctx context.Context,
	sizes []int,
	difficulties []Difficulty,
	countPerSize int,
	sink Sink,
) (*BatchResult, []*Puzzle) {
	result := &BatchResult{
		BySize:       make(map[int]int),
		ByDifficulty: make(map[Difficulty]int),
	}
	var accepted []*Puzzle

	for _, size := range sizes {
		for _, difficulty := range difficulties {
			Log.Info("generating puzzles",
				"count", countPerSize, "size", size, "difficulty", difficulty)

			for range countPerSize {
				puzzle, err := g.GeneratePuzzle(size, difficulty)
				if err != nil {
					result.Failed++
					var genErr GenerationError
					if errors.As(err, &genErr) {
						Log.Warn(genErr.Error())
					} else {
						Log.Error("unable to generate puzzle", "error", err)
					}
					continue
				}

				result.Generated++
				result.BySize[size]++
				result.ByDifficulty[difficulty]++
				accepted = append(accepted, puzzle)

				if sink == nil {
					continue
				}
				if err := sink.Accept(ctx, puzzle); err != nil {
					Log.Error("sink rejected puzzle", "seed", puzzle.Seed, "error", err)
					result.SinkErrors = append(result.SinkErrors,
						fmt.Sprintf("%s: %s", puzzle.Seed, err))
				} else {
					result.Saved++
				}
			}
		}
	}

	return result, accepted
}
