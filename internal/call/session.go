package call

import (
	"time"

	"wellness-platform/internal/media"
	"wellness-platform/internal/signaling"
)

// State is one step of the call session lifecycle. A session moves strictly
// forward through the transition table below; once it reaches a terminal
// state it never leaves it.
type State string

const (
	StateIdle      State = "idle"
	StateCalling   State = "calling"
	StateRinging   State = "ringing"
	StateAnswered  State = "answered"
	StateConnected State = "connected"
	StateDeclined  State = "declined"
	StateMissed    State = "missed"
	StateEnded     State = "ended"
	StateFailed    State = "failed"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	switch s {
	case StateDeclined, StateMissed, StateEnded, StateFailed:
		return true
	default:
		return false
	}
}

// StatusText is the user-facing label for a state.
func (s State) StatusText() string {
	switch s {
	case StateCalling:
		return "Calling..."
	case StateRinging:
		return "Incoming call"
	case StateAnswered:
		return "Connecting..."
	case StateConnected:
		return "Connected"
	case StateDeclined:
		return "Call Declined"
	case StateMissed:
		return "Call Missed"
	case StateEnded:
		return "Call Ended"
	case StateFailed:
		return "Call Failed"
	default:
		return ""
	}
}

// Event is a stimulus applied to a session: a local user action, a remote
// broadcast, a timer expiry or a media engine report.
type Event string

const (
	EventDial           Event = "dial"
	EventIncoming       Event = "incoming"
	EventAnswerLocal    Event = "answer-local"
	EventAnswerRemote   Event = "answer-remote"
	EventDeclineLocal   Event = "decline-local"
	EventDeclineRemote  Event = "decline-remote"
	EventHangupLocal    Event = "hangup-local"
	EventHangupRemote   Event = "hangup-remote"
	EventRingTimeout    Event = "ring-timeout"
	EventMediaConnected Event = "media-connected"
	EventMediaFailed    Event = "media-failed"
)

// transitions is the authoritative table. An absent entry means the event is
// ignored in that state; callers treat that as a no-op, never an error, so
// duplicate or late broadcasts are harmless.
var transitions = map[State]map[Event]State{
	StateIdle: {
		EventDial:     StateCalling,
		EventIncoming: StateRinging,
	},
	StateCalling: {
		EventAnswerRemote:  StateAnswered,
		EventDeclineRemote: StateDeclined,
		EventHangupLocal:   StateEnded,
		EventHangupRemote:  StateEnded,
		EventMediaFailed:   StateFailed,
	},
	StateRinging: {
		EventAnswerLocal:  StateAnswered,
		EventDeclineLocal: StateDeclined,
		EventRingTimeout:  StateMissed,
		EventHangupLocal:  StateEnded,
		EventHangupRemote: StateEnded,
		EventMediaFailed:  StateFailed,
	},
	StateAnswered: {
		EventMediaConnected: StateConnected,
		EventHangupLocal:    StateEnded,
		EventHangupRemote:   StateEnded,
		EventMediaFailed:    StateFailed,
	},
	StateConnected: {
		EventHangupLocal:  StateEnded,
		EventHangupRemote: StateEnded,
		EventMediaFailed:  StateFailed,
	},
}

// Next resolves one transition. ok is false when the event does not apply in
// the current state.
func Next(s State, e Event) (State, bool) {
	next, ok := transitions[s][e]
	return next, ok
}

// session is one party's view of a call attempt. All fields are guarded by
// the manager mutex.
type session struct {
	roomID      string
	workspaceID string

	selfID   string
	selfName string
	peerID   string
	peerName string

	// caller is true on the initiating side.
	caller bool

	state State

	startedAt   time.Time
	connectedAt *time.Time
	endedAt     time.Time

	ringTimer *time.Timer
	roomSub   signaling.Subscription
	engine    media.Engine
	slotHeld  bool
}

// stopRingTimer releases the ring timer if armed. It is always the first
// step of any terminal transition so the timer callback cannot race a user
// decision into a second terminal state.
func (s *session) stopRingTimer() {
	if s.ringTimer != nil {
		s.ringTimer.Stop()
		s.ringTimer = nil
	}
}

// durationSeconds is nonzero only when the session reached connected state.
func (s *session) durationSeconds() int {
	if s.connectedAt == nil || s.endedAt.IsZero() {
		return 0
	}
	d := s.endedAt.Sub(*s.connectedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// View is an immutable snapshot of a session handed to transports and tests.
type View struct {
	RoomID      string `json:"room_id"`
	WorkspaceID string `json:"workspace_id"`

	State  State  `json:"state"`
	Status string `json:"status"`

	PeerID   string `json:"peer_id"`
	PeerName string `json:"peer_name"`
	Caller   bool   `json:"caller"`

	StartedAt   time.Time  `json:"started_at"`
	ConnectedAt *time.Time `json:"connected_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`

	DurationSeconds int `json:"duration_seconds"`

	Muted         bool `json:"muted"`
	VideoEnabled  bool `json:"video_enabled"`
	ScreenSharing bool `json:"screen_sharing"`
}

func (s *session) view() View {
	v := View{
		RoomID:      s.roomID,
		WorkspaceID: s.workspaceID,
		State:       s.state,
		Status:      s.state.StatusText(),
		PeerID:      s.peerID,
		PeerName:    s.peerName,
		Caller:      s.caller,
		StartedAt:   s.startedAt,
		ConnectedAt: s.connectedAt,
	}
	if !s.endedAt.IsZero() {
		t := s.endedAt
		v.EndedAt = &t
		v.DurationSeconds = s.durationSeconds()
	}
	if s.engine != nil {
		v.Muted = s.engine.IsMuted()
		v.VideoEnabled = s.engine.IsVideoEnabled()
		v.ScreenSharing = s.engine.IsScreenSharing()
	}
	return v
}
