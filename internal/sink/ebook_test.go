package sink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeromeheuze/puzzle-generator/internal/akari"
)

func TestEbookSinkOrdinals(t *testing.T) {
	s := NewEbook()
	ctx := context.Background()

	require.NoError(t, s.Accept(ctx, testPuzzle()))
	require.NoError(t, s.Accept(ctx, testPuzzle()))

	other := testPuzzle()
	other.Difficulty = akari.Hard
	require.NoError(t, s.Accept(ctx, other))

	puzzles := s.Puzzles()
	require.Len(t, puzzles, 3)
	assert.Equal(t, "ebook_4_easy_001", puzzles[0].EbookID)
	assert.Equal(t, "ebook_4_easy_002", puzzles[1].EbookID)
	assert.Equal(t, "ebook_4_hard_001", puzzles[2].EbookID)
}

func TestEbookSinkWriteFile(t *testing.T) {
	s := NewEbook()
	require.NoError(t, s.Accept(context.Background(), testPuzzle()))

	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, s.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var book struct {
		GeneratedAt  string `json:"generated_at"`
		TotalPuzzles int    `json:"total_puzzles"`
		Puzzles      []struct {
			Seed         string `json:"seed"`
			EbookID      string `json:"ebook_id"`
			SolutionHint string `json:"solution_hint"`
		} `json:"puzzles"`
	}
	require.NoError(t, json.Unmarshal(raw, &book))

	assert.NotEmpty(t, book.GeneratedAt)
	assert.Equal(t, 1, book.TotalPuzzles)
	require.Len(t, book.Puzzles, 1)
	assert.Equal(t, "abcdefabcdef", book.Puzzles[0].Seed)
	assert.Equal(t, "ebook_4_easy_001", book.Puzzles[0].EbookID)
	assert.Contains(t, book.Puzzles[0].SolutionHint, "White cells: 16")
}
