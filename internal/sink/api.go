package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/jeromeheuze/puzzle-generator/internal/akari"
	"github.com/jeromeheuze/puzzle-generator/internal/config"
)

// receiverPuzzle is the per-puzzle payload shape the website's receiver
// endpoint expects: the puzzle wire contract plus mode and, for premium
// puzzles, a publication date.
type receiverPuzzle struct {
	*akari.Puzzle
	Mode string `json:"mode"`
	Date string `json:"date,omitempty"`
}

// ReceiverResponse mirrors the receiver endpoint's reply envelope.
type ReceiverResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Saved  int      `json:"saved"`
		Errors []string `json:"errors"`
	} `json:"data"`
}

// API buffers accepted puzzles and ships them to the receiver endpoint
// in one batch POST. Accept never touches the network; call Flush once
// the batch is complete.
type API struct {
	logger *slog.Logger
	client *http.Client
	cfg    *config.Receiver
	mode   string
	rnd    *rand.Rand
	buf    []receiverPuzzle
}

func NewAPI(logger *slog.Logger, cfg *config.Receiver, mode string, rnd *rand.Rand) *API {
	return &API{
		logger: logger,
		client: &http.Client{Timeout: 30 * time.Second},
		cfg:    cfg,
		mode:   mode,
		rnd:    rnd,
	}
}

func (s *API) Accept(ctx context.Context, p *akari.Puzzle) error {
	rp := receiverPuzzle{Puzzle: p, Mode: s.mode}
	if s.mode == "premium" {
		rp.Date = time.Now().AddDate(0, 0, 1+s.rnd.IntN(30)).Format(time.DateOnly)
	}
	s.buf = append(s.buf, rp)
	return nil
}

// Pending reports how many puzzles are buffered for the next flush.
func (s *API) Pending() int {
	return len(s.buf)
}

// Flush posts every buffered puzzle as {"puzzles": [...]} and drains
// the buffer on success.
func (s *API) Flush(ctx context.Context) (*ReceiverResponse, error) {
	if len(s.buf) == 0 {
		return nil, fmt.Errorf("no puzzles to send")
	}

	payload, err := json.Marshal(map[string]any{"puzzles": s.buf})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	s.logger.Info("sending puzzles to receiver", "count", len(s.buf))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}

	var result ReceiverResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("malformed receiver response: %w", err)
	}
	if !result.Success {
		return &result, fmt.Errorf("receiver rejected batch: %s", result.Message)
	}

	s.buf = nil
	return &result, nil
}
