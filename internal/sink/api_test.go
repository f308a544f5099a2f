package sink

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeromeheuze/puzzle-generator/internal/config"
)

func TestAPISinkFlush(t *testing.T) {
	var gotAuth string
	var gotBody struct {
		Puzzles []struct {
			Layout     [][]any `json:"layout"`
			Seed       string  `json:"seed"`
			Size       int     `json:"size"`
			Difficulty string  `json:"difficulty"`
			Mode       string  `json:"mode"`
		} `json:"puzzles"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "ok",
			"data":    map[string]any{"saved": len(gotBody.Puzzles)},
		})
	}))
	defer server.Close()

	cfg := &config.Receiver{URL: server.URL, APIKey: "sekrit"}
	s := NewAPI(discardLogger(), cfg, "daily", rand.New(rand.NewPCG(1, 2)))

	require.NoError(t, s.Accept(context.Background(), testPuzzle()))
	require.NoError(t, s.Accept(context.Background(), testPuzzle()))
	require.Equal(t, 2, s.Pending())

	result, err := s.Flush(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer sekrit", gotAuth)
	assert.Equal(t, 2, result.Data.Saved)
	assert.Equal(t, 0, s.Pending(), "flush drains the buffer")

	require.Len(t, gotBody.Puzzles, 2)
	first := gotBody.Puzzles[0]
	assert.Equal(t, "abcdefabcdef", first.Seed)
	assert.Equal(t, 4, first.Size)
	assert.Equal(t, "easy", first.Difficulty)
	assert.Equal(t, "daily", first.Mode)
	assert.Len(t, first.Layout, 4)
}

func TestAPISinkFlushEmpty(t *testing.T) {
	cfg := &config.Receiver{URL: "http://localhost:0", APIKey: "k"}
	s := NewAPI(discardLogger(), cfg, "daily", rand.New(rand.NewPCG(1, 2)))

	_, err := s.Flush(context.Background())
	assert.Error(t, err)
}

func TestAPISinkRejectedBatchKeepsBuffer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "bad api key",
		})
	}))
	defer server.Close()

	cfg := &config.Receiver{URL: server.URL, APIKey: "wrong"}
	s := NewAPI(discardLogger(), cfg, "daily", rand.New(rand.NewPCG(1, 2)))

	require.NoError(t, s.Accept(context.Background(), testPuzzle()))
	_, err := s.Flush(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, s.Pending(), "failed flush keeps puzzles for a retry")
}

func TestAPISinkHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := &config.Receiver{URL: server.URL, APIKey: "k"}
	s := NewAPI(discardLogger(), cfg, "daily", rand.New(rand.NewPCG(1, 2)))

	require.NoError(t, s.Accept(context.Background(), testPuzzle()))
	_, err := s.Flush(context.Background())
	assert.ErrorContains(t, err, "HTTP 403")
}
