package signaling

import "time"

// SignalKind identifies a call-coordination broadcast.
// Keep values stable; both web and mobile clients match on them.
type SignalKind string

const (
	KindIncomingCall SignalKind = "incoming-call"
	KindCallAnswered SignalKind = "call-answered"
	KindCallDeclined SignalKind = "call-declined"
	KindCallEnded    SignalKind = "call-ended"
)

func (k SignalKind) Valid() bool {
	switch k {
	case KindIncomingCall, KindCallAnswered, KindCallDeclined, KindCallEnded:
		return true
	default:
		return false
	}
}

// Envelope is the wire format for one signaling broadcast.
//
// Delivery is at-most-once with no replay: a dropped envelope is
// indistinguishable from "no one answered" and is compensated by the
// callee-side ring timeout, never by acknowledgments.
type Envelope struct {
	Kind        SignalKind `json:"kind"`
	RoomID      string     `json:"room_id"`
	WorkspaceID string     `json:"workspace_id,omitempty"`
	FromUserID  string     `json:"from_user_id"`
	FromName    string     `json:"from_name,omitempty"`
	SentAt      time.Time  `json:"sent_at"`
}

// RoomTopic scopes a channel to one call attempt.
func RoomTopic(roomID string) string { return "call:room:" + roomID }

// UserTopic is the per-user personal channel, used only to deliver the
// initial incoming-call so a callee not yet viewing the call UI still rings.
func UserTopic(userID string) string { return "call:user:" + userID }
