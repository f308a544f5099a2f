package sink

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/jeromeheuze/puzzle-generator/internal/akari"
)

type run struct {
	size       int
	difficulty akari.Difficulty
}

// Ebook collects puzzles in memory for book rendering, assigning each
// an ordinal identifier within its (size, difficulty) run.
type Ebook struct {
	puzzles  []*akari.EbookPuzzle
	ordinals map[run]int
}

func NewEbook() *Ebook {
	return &Ebook{ordinals: make(map[run]int)}
}

func (s *Ebook) Accept(ctx context.Context, p *akari.Puzzle) error {
	key := run{p.Size, p.Difficulty}
	s.ordinals[key]++
	s.puzzles = append(s.puzzles, akari.NewEbookPuzzle(p, s.ordinals[key]))
	return nil
}

func (s *Ebook) Puzzles() []*akari.EbookPuzzle {
	return s.puzzles
}

// Book is the JSON file shape the ebook pipeline consumes.
type Book struct {
	GeneratedAt  string               `json:"generated_at"`
	TotalPuzzles int                  `json:"total_puzzles"`
	Puzzles      []*akari.EbookPuzzle `json:"puzzles"`
}

func (s *Ebook) Book() *Book {
	return &Book{
		GeneratedAt:  time.Now().Format(time.RFC3339),
		TotalPuzzles: len(s.puzzles),
		Puzzles:      s.puzzles,
	}
}

// WriteFile saves the collected puzzles as an indented JSON book.
func (s *Ebook) WriteFile(path string) error {
	payload, err := json.MarshalIndent(s.Book(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0644)
}
