package notify

import "time"

// Notification is a persisted in-app notification record.
//
// Invariants:
// - workspace_id is required for tenancy isolation.
// - Writes are best-effort side effects of call transitions; a failed write
//   must never abort or roll back the transition that produced it.

type Notification struct {
	ID          string `json:"id" db:"id"`
	WorkspaceID string `json:"workspace_id" db:"workspace_id"`

	// UserID is the recipient.
	UserID string `json:"user_id" db:"user_id"`

	Type NotificationType `json:"type" db:"type"`

	Title   string `json:"title" db:"title"`
	Message string `json:"message" db:"message"`

	IsRead bool `json:"is_read" db:"is_read"`

	// RoomID links the notification back to the call attempt, if any.
	RoomID string `json:"room_id,omitempty" db:"room_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	TypeIncomingCall  NotificationType = "incoming_call"
	TypeMissedCall    NotificationType = "missed_call"
	TypeCallCompleted NotificationType = "call_completed"
)

// PushAlert is a best-effort out-of-band alert delivered regardless of
// whether the recipient's client is foregrounded.
type PushAlert struct {
	Title string
	Body  string

	// Tag collapses repeated alerts for the same call attempt.
	Tag string

	// RequireInteraction keeps the alert on screen until acted on.
	RequireInteraction bool

	// Data travels opaque to the client (room id, caller id, ...).
	Data map[string]string
}
