package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	CommandPending   = "pending"
	CommandRunning   = "running"
	CommandCompleted = "completed"
	CommandFailed    = "failed"
)

type DeviceCommand struct {
	CommandId   int64
	DeviceId    int64
	Command     string
	Args        []byte
	Status      string
	Result      *string
	CreatedAt   pgtype.Timestamptz
	CompletedAt pgtype.Timestamptz
}

type CreateCommandParams struct {
	DeviceId int64
	Command  string
	Args     []byte
}

func (q *Queries) CreateCommand(
	ctx context.Context, params CreateCommandParams,
) (*DeviceCommand, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO device_command (device_id, command, args)
		VALUES (@device_id, @command, @args) RETURNING *`,
		pgx.NamedArgs{
			"device_id": params.DeviceId,
			"command":   params.Command,
			"args":      params.Args,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[DeviceCommand])
}

// ClaimPendingCommands hands every pending command of a device to the
// caller, marking them running in the same statement so a concurrent
// poll cannot claim them twice.
func (q *Queries) ClaimPendingCommands(
	ctx context.Context, deviceId int64,
) ([]*DeviceCommand, error) {
	rows, _ := q.db.Query(
		ctx,
		`UPDATE device_command SET status = 'running'
		WHERE command_id IN (
			SELECT command_id FROM device_command
			WHERE device_id = $1 AND status = 'pending'
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		deviceId,
	)
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[DeviceCommand])
}

const completeCommandWhere = " WHERE command_id = @command_id AND device_id = @device_id RETURNING *"

type CompleteCommandParams struct {
	Status string
	Result *string
}

func (p CompleteCommandParams) SetClause() (string, map[string]any) {
	parts := []string{"status = @status", "completed_at = now()"}
	args := map[string]any{"status": p.Status}

	if p.Result != nil {
		parts = append(parts, "result = @result")
		args["result"] = *p.Result
	}

	return strings.Join(parts, ", "), args
}

// CompleteCommand records a command outcome. The update is scoped to the
// reporting device so one device cannot complete another's commands;
// a mismatch surfaces as pgx.ErrNoRows.
func (q *Queries) CompleteCommand(
	ctx context.Context, deviceId, commandId int64, params CompleteCommandParams,
) (*DeviceCommand, error) {
	setClause, args := params.SetClause()
	args["device_id"] = deviceId
	args["command_id"] = commandId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE device_command SET "+setClause+completeCommandWhere,
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[DeviceCommand])
}
