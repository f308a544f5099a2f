package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jeromeheuze/puzzle-generator/internal/akari"
)

// ErrDuplicatePuzzle fires when a puzzle with the same
// (game, mode, date, seed) key already exists. Callers usually treat it
// as an idempotent skip, not a failure.
var ErrDuplicatePuzzle = errors.New("puzzle already exists")

type Puzzle struct {
	PuzzleId   int64
	Game       string
	Mode       string
	Date       pgtype.Date
	Seed       string
	Layout     []byte
	Size       int
	Difficulty string
	CreatedAt  pgtype.Timestamptz
}

// Grid decodes the stored layout back into its domain form.
func (p Puzzle) Grid() (akari.Grid, error) {
	var g akari.Grid
	err := json.Unmarshal(p.Layout, &g)
	return g, err
}

type CreatePuzzleParams struct {
	Game string
	Mode string
	Date time.Time
}

// CreatePuzzle inserts an accepted puzzle, reporting a unique-key clash
// as [ErrDuplicatePuzzle].
func (q *Queries) CreatePuzzle(
	ctx context.Context, p *akari.Puzzle, params CreatePuzzleParams,
) (*Puzzle, error) {
	layout, err := json.Marshal(p.Layout)
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"game":       params.Game,
		"mode":       params.Mode,
		"date":       params.Date,
		"seed":       p.Seed,
		"layout":     layout,
		"size":       p.Size,
		"difficulty": string(p.Difficulty),
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO puzzle (game, mode, date, seed, layout, size, difficulty)
		VALUES (@game, @mode, @date, @seed, @layout, @size, @difficulty)
		RETURNING *;`,
		args,
	)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return nil, ErrDuplicatePuzzle
	}
	return row, err
}

func (q *Queries) FetchPuzzle(
	ctx context.Context, game, mode string, date time.Time, seed string,
) (*Puzzle, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT * FROM puzzle
		WHERE game = $1 AND mode = $2 AND date = $3 AND seed = $4`,
		game, mode, date, seed,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])
}

func (q *Queries) ListPuzzles(
	ctx context.Context, game, mode string, date time.Time,
) ([]*Puzzle, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT * FROM puzzle
		WHERE game = $1 AND mode = $2 AND date = $3
		ORDER BY size, difficulty`,
		game, mode, date,
	)
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Puzzle])
}

// CountPuzzles reports stored puzzles per mode, for the status endpoint.
func (q *Queries) CountPuzzles(ctx context.Context, game string) (map[string]int64, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT mode, count(*) FROM puzzle WHERE game = $1 GROUP BY mode",
		game,
	)
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var mode string
		var count int64
		if err := rows.Scan(&mode, &count); err != nil {
			return nil, err
		}
		counts[mode] = count
	}
	return counts, rows.Err()
}
