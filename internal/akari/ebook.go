package akari

import "fmt"

// EbookPuzzle decorates a puzzle with the fields the ebook pipeline
// adds: a stable page identifier and the printed solution hint.
type EbookPuzzle struct {
	*Puzzle
	EbookID      string `json:"ebook_id"`
	SolutionHint string `json:"solution_hint"`
}

// NewEbookPuzzle assigns the ordinal-based identifier used by ebook
// pages, e.g. ebook_8_medium_003.
func NewEbookPuzzle(p *Puzzle, ordinal int) *EbookPuzzle {
	return &EbookPuzzle{
		Puzzle:       p,
		EbookID:      fmt.Sprintf("ebook_%d_%s_%03d", p.Size, p.Difficulty, ordinal),
		SolutionHint: p.SolutionHint(),
	}
}
