package notify

import (
	"context"
	"database/sql"
)

// PostgresRepo persists notifications via database/sql (pgx stdlib driver).
//
// Assumed table:
//   notifications (id, workspace_id, user_id, type, title, message,
//                  is_read, room_id, created_at)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Insert(ctx context.Context, n Notification) error {
	const q = `
INSERT INTO notifications (
  id, workspace_id, user_id, type, title, message, is_read, room_id, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9
)
`
	_, err := r.db.ExecContext(ctx, q,
		n.ID,
		n.WorkspaceID,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
		n.IsRead,
		n.RoomID,
		n.CreatedAt,
	)
	return err
}
