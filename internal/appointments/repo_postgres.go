package appointments

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo reads appointments via database/sql (pgx stdlib driver).
//
// Assumed table:
//   appointments (id, workspace_id, nutritionist_id, nutritionist_name,
//                 client_id, client_name, scheduled_at)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Get(ctx context.Context, workspaceID, appointmentID string) (Appointment, error) {
	const q = `
SELECT id, workspace_id, nutritionist_id, nutritionist_name, client_id, client_name, scheduled_at
FROM appointments
WHERE workspace_id = $1 AND id = $2
`
	var a Appointment
	if err := r.db.QueryRowContext(ctx, q, workspaceID, appointmentID).Scan(
		&a.ID,
		&a.WorkspaceID,
		&a.NutritionistID,
		&a.NutritionistName,
		&a.ClientID,
		&a.ClientName,
		&a.ScheduledAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Appointment{}, ErrNotFound
		}
		return Appointment{}, err
	}
	return a, nil
}
