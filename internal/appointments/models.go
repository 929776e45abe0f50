package appointments

import "time"

// Appointment is the scheduled consultation a call attempt hangs off.
//
// Multi-tenant invariant: WorkspaceID is required on every row.
// The call subsystem only reads appointments; scheduling CRUD lives in the
// host application.

type Appointment struct {
	ID          string `json:"id" db:"id"`
	WorkspaceID string `json:"workspace_id" db:"workspace_id"`

	NutritionistID   string `json:"nutritionist_id" db:"nutritionist_id"`
	NutritionistName string `json:"nutritionist_name" db:"nutritionist_name"`
	ClientID         string `json:"client_id" db:"client_id"`
	ClientName       string `json:"client_name" db:"client_name"`

	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
}

// RoomID derives the stable signaling-channel namespace for an appointment.
// Both parties derive the same value independently.
func RoomID(appointmentID string) string { return "gf-call-" + appointmentID }

// Participant reports whether userID belongs to this appointment.
func (a Appointment) Participant(userID string) bool {
	return userID == a.NutritionistID || userID == a.ClientID
}

// OtherParty returns the counterpart identity and display name for userID.
// ok is false when userID is not a participant.
func (a Appointment) OtherParty(userID string) (id, name string, ok bool) {
	switch userID {
	case a.NutritionistID:
		return a.ClientID, a.ClientName, true
	case a.ClientID:
		return a.NutritionistID, a.NutritionistName, true
	default:
		return "", "", false
	}
}

// DisplayName returns the display name for a participant.
func (a Appointment) DisplayName(userID string) string {
	switch userID {
	case a.NutritionistID:
		return a.NutritionistName
	case a.ClientID:
		return a.ClientName
	default:
		return ""
	}
}
