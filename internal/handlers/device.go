package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeromeheuze/puzzle-generator/internal/config"
	"github.com/jeromeheuze/puzzle-generator/internal/middleware"
	"github.com/jeromeheuze/puzzle-generator/internal/repository"
)

type DeviceHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	auth   *config.Auth
	jwt    *config.JWT
}

func NewDeviceHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	auth *config.Auth,
	jwt *config.JWT,
) *DeviceHandler {
	return &DeviceHandler{
		logger: logger,
		repo:   repository.New(db),
		auth:   auth,
		jwt:    jwt,
	}
}

var (
	ErrBadRegisterBody = fmt.Errorf("request body must contain url-encoded name and key")
	ErrNameTaken       = fmt.Errorf("device name taken")
)

// Register exchanges the shared registration key for a long-lived
// device token presented on every later poll.
func (h *DeviceHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	key := r.FormValue("key")
	if name == "" || key == "" {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(ErrBadRegisterBody))
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.auth.RegistrationKeyHash, []byte(key)); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	device, err := h.repo.CreateDevice(r.Context(), name)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, h.logger, wrapError(ErrNameTaken))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create device", "error", err)
		return
	}

	token, err := h.jwt.Sign(config.NewDeviceClaims(device.DeviceId, device.Name))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to sign device token", "error", err)
		return
	}

	h.logger.Info("registered device", "device_id", device.DeviceId, "name", device.Name)
	sendJSONOrLog(w, h.logger, map[string]any{
		"device_id": device.DeviceId,
		"name":      device.Name,
		"token":     token,
	})
}

// Poll claims every command queued for the calling device.
func (h *DeviceHandler) Poll(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.Device(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	commands, err := h.repo.ClaimPendingCommands(r.Context(), claims.DeviceId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to claim commands", "error", err)
		return
	}

	type commandDTO struct {
		CommandId int64           `json:"command_id"`
		Command   string          `json:"command"`
		Args      json.RawMessage `json:"args,omitempty"`
	}
	dtos := make([]commandDTO, 0, len(commands))
	for _, c := range commands {
		dtos = append(dtos, commandDTO{c.CommandId, c.Command, c.Args})
	}

	sendJSONOrLog(w, h.logger, map[string]any{"commands": dtos})
}

// Heartbeat records the device's self-reported status blob.
func (h *DeviceHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.Device(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	status, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(status) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if _, err := h.repo.RecordHeartbeat(r.Context(), claims.DeviceId, status); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to record heartbeat", "error", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Report stores a command's outcome as reported by the device.
func (h *DeviceHandler) Report(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.Device(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	commandId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	status := r.FormValue("status")
	if status != repository.CommandCompleted && status != repository.CommandFailed {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(fmt.Errorf("unknown status %q", status)))
		return
	}

	var result *string
	if r.Form.Has("result") {
		s := r.FormValue("result")
		result = &s
	}

	command, err := h.repo.CompleteCommand(
		r.Context(), claims.DeviceId, commandId,
		repository.CompleteCommandParams{Status: status, Result: result},
	)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to complete command", "error", err)
		return
	}

	h.logger.Info("command completed",
		"device_id", claims.DeviceId,
		"command_id", command.CommandId,
		"status", command.Status,
	)
	w.WriteHeader(http.StatusNoContent)
}

// Enqueue queues a command for a device. Admin only.
func (h *DeviceHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	deviceId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	name := r.FormValue("command")
	if name == "" {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(fmt.Errorf("command is required")))
		return
	}

	var args []byte
	if raw := r.FormValue("args"); raw != "" {
		if !json.Valid([]byte(raw)) {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, h.logger, wrapError(fmt.Errorf("args must be JSON")))
			return
		}
		args = []byte(raw)
	}

	if _, err := h.repo.FetchDevice(r.Context(), deviceId); errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch device", "error", err)
		return
	}

	command, err := h.repo.CreateCommand(r.Context(), repository.CreateCommandParams{
		DeviceId: deviceId,
		Command:  name,
		Args:     args,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to queue command", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, map[string]any{
		"command_id": command.CommandId,
		"status":     command.Status,
	})
}
