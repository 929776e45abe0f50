package history

import (
	"context"
	"database/sql"
)

// PostgresRepo persists call records via database/sql (pgx stdlib driver).
//
// Assumed table:
//   call_records (record_id, workspace_id, room_id, owner_id, caller_id,
//                 callee_id, outcome, duration_seconds, started_at,
//                 connected_at, ended_at)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, rec CallRecord) error {
	const q = `
INSERT INTO call_records (
  record_id, workspace_id, room_id, owner_id, caller_id, callee_id,
  outcome, duration_seconds, started_at, connected_at, ended_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
)
`
	_, err := r.db.ExecContext(ctx, q,
		rec.RecordID,
		rec.WorkspaceID,
		rec.RoomID,
		rec.OwnerID,
		rec.CallerID,
		rec.CalleeID,
		rec.Outcome,
		rec.DurationSeconds,
		rec.StartedAt,
		rec.ConnectedAt,
		rec.EndedAt,
	)
	return err
}

func (r *PostgresRepo) List(ctx context.Context, workspaceID string, tr TimeRange) ([]CallRecord, error) {
	const q = `
SELECT record_id, workspace_id, room_id, owner_id, caller_id, callee_id,
       outcome, duration_seconds, started_at, connected_at, ended_at
FROM call_records
WHERE workspace_id = $1 AND ended_at >= $2 AND ended_at <= $3
ORDER BY ended_at
`
	rows, err := r.db.QueryContext(ctx, q, workspaceID, tr.From, tr.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CallRecord
	for rows.Next() {
		var rec CallRecord
		var connectedAt sql.NullTime
		if err := rows.Scan(
			&rec.RecordID,
			&rec.WorkspaceID,
			&rec.RoomID,
			&rec.OwnerID,
			&rec.CallerID,
			&rec.CalleeID,
			&rec.Outcome,
			&rec.DurationSeconds,
			&rec.StartedAt,
			&connectedAt,
			&rec.EndedAt,
		); err != nil {
			return nil, err
		}
		if connectedAt.Valid {
			t := connectedAt.Time
			rec.ConnectedAt = &t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
