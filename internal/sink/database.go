// Package sink implements the downstream consumers accepted puzzles are
// handed to: a database row, a receiver API payload, or an ebook list.
package sink

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jeromeheuze/puzzle-generator/internal/akari"
	"github.com/jeromeheuze/puzzle-generator/internal/repository"
)

// PuzzleStore is the slice of the repository a database sink needs.
type PuzzleStore interface {
	CreatePuzzle(ctx context.Context, p *akari.Puzzle, params repository.CreatePuzzleParams) (*repository.Puzzle, error)
}

// Database inserts each puzzle keyed by (game, mode, date, seed).
// A duplicate key is an idempotent skip, not an error: the puzzle is
// already where it should be.
type Database struct {
	logger *slog.Logger
	store  PuzzleStore
	game   string
	mode   string
	rnd    *rand.Rand
	now    func() time.Time
}

func NewDatabase(
	logger *slog.Logger, store PuzzleStore, game, mode string, rnd *rand.Rand,
) *Database {
	return &Database{
		logger: logger,
		store:  store,
		game:   game,
		mode:   mode,
		rnd:    rnd,
		now:    time.Now,
	}
}

// date picks the publication date: today for daily puzzles, a random
// day within the next 30 for premium ones.
func (s *Database) date() time.Time {
	if s.mode == "premium" {
		return s.now().AddDate(0, 0, 1+s.rnd.IntN(30))
	}
	return s.now()
}

func (s *Database) Accept(ctx context.Context, p *akari.Puzzle) error {
	date := s.date()
	_, err := s.store.CreatePuzzle(ctx, p, repository.CreatePuzzleParams{
		Game: s.game,
		Mode: s.mode,
		Date: date,
	})
	if errors.Is(err, repository.ErrDuplicatePuzzle) {
		s.logger.Info("puzzle already stored",
			"seed", p.Seed, "mode", s.mode, "date", date.Format(time.DateOnly))
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info("stored puzzle",
		"seed", p.Seed,
		"size", p.Size,
		"difficulty", p.Difficulty,
		"mode", s.mode,
		"date", date.Format(time.DateOnly),
	)
	return nil
}
