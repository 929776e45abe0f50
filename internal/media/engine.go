package media

import (
	"context"
	"errors"
)

// ConnectionState mirrors the peer connection lifecycle exposed to the call
// state machine. Keep values stable; they are surfaced to clients as-is.
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
	StateFailed       ConnectionState = "failed"
)

var (
	// ErrPermissionDenied means the user refused camera/microphone access.
	// It is recoverable: the session returns to idle with no signaling sent.
	ErrPermissionDenied = errors.New("media: device permission denied")

	// ErrDeviceUnavailable means no usable capture device exists.
	ErrDeviceUnavailable = errors.New("media: device unavailable")
)

// Engine is the narrow interface the call state machine consumes. The actual
// ICE/SDP negotiation and codec handling live behind it; the state machine
// only needs lifecycle, toggles and connection-state observation.
//
// Initialize acquires local devices and must be called before Join; the
// split exists so a call attempt can fail locally before anything is
// broadcast to the remote party.
type Engine interface {
	Initialize(ctx context.Context) error
	Join(ctx context.Context, roomID string) error
	Leave(ctx context.Context) error

	ToggleMute() bool
	ToggleVideo() bool
	ToggleScreenShare() bool

	IsMuted() bool
	IsVideoEnabled() bool
	IsScreenSharing() bool

	State() ConnectionState

	// OnStateChange registers a single observer for connection-state
	// transitions. Registering again replaces the previous observer.
	OnStateChange(func(ConnectionState))
}

// Factory builds one Engine per call session. Sessions own their engine
// exclusively; local devices are never shared across sessions.
type Factory func() Engine
