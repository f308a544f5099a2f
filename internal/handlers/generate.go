package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeromeheuze/puzzle-generator/internal/akari"
	"github.com/jeromeheuze/puzzle-generator/internal/middleware"
	"github.com/jeromeheuze/puzzle-generator/internal/repository"
	"github.com/jeromeheuze/puzzle-generator/internal/sink"
)

const game = "akari"

type GenerateHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	events  *Events
	rnd     *rand.Rand
	started time.Time
}

func NewGenerateHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	events *Events,
	rnd *rand.Rand,
) *GenerateHandler {
	return &GenerateHandler{
		logger:  logger,
		repo:    repository.New(db),
		events:  events,
		rnd:     rnd,
		started: time.Now(),
	}
}

type GenerateBatchDTO struct {
	Sizes        []int    `schema:"size"`
	Difficulties []string `schema:"difficulty"`
	Count        int      `schema:"count"`
	Mode         string   `schema:"mode"`
}

func ParseGenerateBatchDTO(src map[string][]string) (GenerateBatchDTO, error) {
	dto := GenerateBatchDTO{
		Sizes:        []int{6, 8, 10, 12},
		Difficulties: []string{"easy", "medium", "hard"},
		Count:        10,
		Mode:         "premium",
	}
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

// progressSink publishes an event for every puzzle the wrapped sink
// takes, so websocket subscribers see the batch advance.
type progressSink struct {
	next   akari.Sink
	events *Events
}

func (s progressSink) Accept(ctx context.Context, p *akari.Puzzle) error {
	err := s.next.Accept(ctx, p)
	if err == nil {
		s.events.Publish(map[string]any{
			"event":      "puzzle_accepted",
			"seed":       p.Seed,
			"size":       p.Size,
			"difficulty": p.Difficulty,
		})
	}
	return err
}

// Batch runs a full generation batch into the database. Admin only.
func (h *GenerateHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	dto, err := ParseGenerateBatchDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	if dto.Mode != "premium" && dto.Mode != "daily" {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(fmt.Errorf("unknown mode %q", dto.Mode)))
		return
	}

	difficulties := make([]akari.Difficulty, 0, len(dto.Difficulties))
	for _, name := range dto.Difficulties {
		difficulty, err := akari.ParseDifficulty(name)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, h.logger, wrapError(err))
			return
		}
		difficulties = append(difficulties, difficulty)
	}

	h.logger.Info("starting batch",
		"sizes", dto.Sizes, "difficulties", dto.Difficulties,
		"count", dto.Count, "mode", dto.Mode)

	dbSink := sink.NewDatabase(h.logger, h.repo, game, dto.Mode, h.rnd)
	gen := akari.NewGenerator(h.rnd)
	result, _ := gen.GenerateBatch(
		r.Context(), dto.Sizes, difficulties, dto.Count,
		progressSink{next: dbSink, events: h.events},
	)

	h.events.Publish(map[string]any{
		"event":  "batch_complete",
		"result": result,
	})

	sendJSONOrLog(w, h.logger, result)
}

// Status reports service uptime and stored puzzle counts.
func (h *GenerateHandler) Status(w http.ResponseWriter, r *http.Request) {
	counts, err := h.repo.CountPuzzles(r.Context(), game)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to count puzzles", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, map[string]any{
		"online":         true,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"puzzles":        counts,
	})
}
