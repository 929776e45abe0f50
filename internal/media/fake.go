package media

import (
	"context"
	"sync"
)

// FakeEngine is a scriptable Engine for tests.
//
// By default it connects synchronously on Join. Tests can inject failures
// via InitializeErr/JoinErr or drive state transitions with PushState.
type FakeEngine struct {
	mu sync.Mutex

	InitializeErr error
	JoinErr       error

	// ConnectOnJoin controls whether Join immediately reports a connected
	// peer. Defaults to true in NewFakeEngine.
	ConnectOnJoin bool

	initialized bool
	joinedRoom  string
	leaveCalls  int

	muted    bool
	videoOff bool
	sharing  bool

	state   ConnectionState
	onState func(ConnectionState)
}

func NewFakeEngine() *FakeEngine {
	return &FakeEngine{state: StateDisconnected, ConnectOnJoin: true}
}

func (e *FakeEngine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.InitializeErr != nil {
		return e.InitializeErr
	}
	e.initialized = true
	return nil
}

func (e *FakeEngine) Join(ctx context.Context, roomID string) error {
	e.mu.Lock()
	if e.JoinErr != nil {
		e.mu.Unlock()
		return e.JoinErr
	}
	e.joinedRoom = roomID
	e.state = StateConnecting
	connect := e.ConnectOnJoin
	e.mu.Unlock()

	if connect {
		e.PushState(StateConnected)
	}
	return nil
}

func (e *FakeEngine) Leave(ctx context.Context) error {
	e.mu.Lock()
	e.leaveCalls++
	e.joinedRoom = ""
	e.state = StateDisconnected
	e.mu.Unlock()
	return nil
}

func (e *FakeEngine) ToggleMute() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = !e.muted
	return e.muted
}

func (e *FakeEngine) ToggleVideo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.videoOff = !e.videoOff
	return !e.videoOff
}

func (e *FakeEngine) ToggleScreenShare() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sharing = !e.sharing
	return e.sharing
}

func (e *FakeEngine) IsMuted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

func (e *FakeEngine) IsVideoEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.videoOff
}

func (e *FakeEngine) IsScreenSharing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sharing
}

func (e *FakeEngine) State() ConnectionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *FakeEngine) OnStateChange(f func(ConnectionState)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onState = f
}

// PushState drives an observable state transition, as a network event would.
func (e *FakeEngine) PushState(s ConnectionState) {
	e.mu.Lock()
	e.state = s
	f := e.onState
	e.mu.Unlock()
	if f != nil {
		f(s)
	}
}

// Initialized reports whether device acquisition ran.
func (e *FakeEngine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// JoinedRoom returns the room passed to Join, or "".
func (e *FakeEngine) JoinedRoom() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.joinedRoom
}

// LeaveCalls counts Leave invocations; teardown paths must release exactly once.
func (e *FakeEngine) LeaveCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.leaveCalls
}
