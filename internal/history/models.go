package history

import "time"

// CallRecord is one party's immutable record of a finished call attempt.
//
// Multi-tenant invariant: WorkspaceID is required on every row.
//
// Each participant writes its own record when its session reaches a terminal
// state, so a completed consultation yields two rows with matching RoomID.

type CallRecord struct {
	RecordID    string `json:"record_id" db:"record_id"`
	WorkspaceID string `json:"workspace_id" db:"workspace_id"`

	RoomID   string `json:"room_id" db:"room_id"`
	OwnerID  string `json:"owner_id" db:"owner_id"`
	CallerID string `json:"caller_id" db:"caller_id"`
	CalleeID string `json:"callee_id" db:"callee_id"`

	Outcome Outcome `json:"outcome" db:"outcome"`

	// DurationSeconds is nonzero only for calls that reached connected state.
	// Keep as an int for JSON friendliness; store as INT in Postgres.
	DurationSeconds int `json:"duration_seconds" db:"duration_seconds"`

	StartedAt   time.Time  `json:"started_at" db:"started_at"`
	ConnectedAt *time.Time `json:"connected_at,omitempty" db:"connected_at"`
	EndedAt     time.Time  `json:"ended_at" db:"ended_at"`
}

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeDeclined  Outcome = "declined"
	OutcomeMissed    Outcome = "missed"
	OutcomeFailed    Outcome = "failed"
	OutcomeCanceled  Outcome = "canceled"
)

// TimeRange bounds a summary query. To must be after From.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Summary aggregates call outcomes for a workspace.
type Summary struct {
	WorkspaceID string `json:"workspace_id"`

	TotalCalls     int `json:"total_calls"`
	CompletedCalls int `json:"completed_calls"`
	DeclinedCalls  int `json:"declined_calls"`
	MissedCalls    int `json:"missed_calls"`
	FailedCalls    int `json:"failed_calls"`
	CanceledCalls  int `json:"canceled_calls"`

	TotalDurationSeconds   int `json:"total_duration_seconds"`
	AverageDurationSeconds int `json:"average_duration_seconds"`
}
