package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type Device struct {
	DeviceId     int64
	Name         string
	RegisteredAt pgtype.Timestamptz
	LastSeenAt   pgtype.Timestamptz
	LastStatus   []byte
}

func (q *Queries) CreateDevice(ctx context.Context, name string) (*Device, error) {
	rows, _ := q.db.Query(
		ctx,
		"INSERT INTO device (name) VALUES ($1) RETURNING *",
		name,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Device])
}

func (q *Queries) FetchDevice(ctx context.Context, deviceId int64) (*Device, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM device WHERE device_id = $1", deviceId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Device])
}

// RecordHeartbeat stores the device's self-reported status blob and
// bumps its last-seen timestamp.
func (q *Queries) RecordHeartbeat(
	ctx context.Context, deviceId int64, status []byte,
) (*Device, error) {
	rows, _ := q.db.Query(
		ctx,
		`UPDATE device SET last_seen_at = now(), last_status = $2
		WHERE device_id = $1 RETURNING *`,
		deviceId, status,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Device])
}

func (q *Queries) ListDevices(ctx context.Context) ([]*Device, error) {
	rows, _ := q.db.Query(ctx, "SELECT * FROM device ORDER BY device_id")
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Device])
}
