package call

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"wellness-platform/internal/appointments"
	"wellness-platform/internal/history"
	"wellness-platform/internal/media"
	"wellness-platform/internal/notify"
	"wellness-platform/internal/signaling"
	"wellness-platform/pkg/utils"
)

var (
	ErrNoSession = errors.New("call: no active session")
	ErrBusy      = errors.New("call: a call is already active for this room")
	ErrRoomFull  = errors.New("call: room is full")
)

// Config wires the manager's collaborators. Redis is optional; without it
// the per-room participant cap is not enforced across processes.
type Config struct {
	Transport    signaling.Transport
	Engines      media.Factory
	Notifier     *notify.Service
	History      *history.Service
	Appointments *appointments.Service
	Redis        *redis.Client
	Logger       *slog.Logger

	RingTimeout     time.Duration
	MaxParticipants int
	RoomSlotTTL     time.Duration
}

// Manager owns every live call session in this process, keyed by room and
// party. It computes state transitions under one mutex and runs side effects
// (broadcasts, notifications, media teardown) only after releasing it, so a
// synchronous transport delivering our own echo back cannot deadlock us.
type Manager struct {
	transport signaling.Transport
	engines   media.Factory
	notifier  *notify.Service
	records   *history.Service
	appts     *appointments.Service
	rdb       *redis.Client
	log       *slog.Logger

	ringTimeout     time.Duration
	maxParticipants int
	slotTTL         time.Duration

	clock func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
	attached map[string]*attachment
}

// attachment is one user's personal-channel subscription, refcounted across
// that user's concurrent client connections.
type attachment struct {
	sub  signaling.Subscription
	refs int
}

func NewManager(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RingTimeout <= 0 {
		cfg.RingTimeout = 30 * time.Second
	}
	if cfg.MaxParticipants <= 0 {
		cfg.MaxParticipants = 2
	}
	if cfg.RoomSlotTTL <= 0 {
		cfg.RoomSlotTTL = 4 * time.Hour
	}
	return &Manager{
		transport:       cfg.Transport,
		engines:         cfg.Engines,
		notifier:        cfg.Notifier,
		records:         cfg.History,
		appts:           cfg.Appointments,
		rdb:             cfg.Redis,
		log:             cfg.Logger,
		ringTimeout:     cfg.RingTimeout,
		maxParticipants: cfg.MaxParticipants,
		slotTTL:         cfg.RoomSlotTTL,
		clock:           time.Now,
		sessions:        make(map[string]*session),
		attached:        make(map[string]*attachment),
	}
}

// WithClock overrides the timestamp source; tests only.
func (m *Manager) WithClock(clock func() time.Time) *Manager {
	m.clock = clock
	return m
}

func key(roomID, userID string) string { return roomID + "|" + userID }

// Attach binds userID's personal channel so invites reach them even when no
// call UI is open. Calls are refcounted per connection; pair with Detach.
func (m *Manager) Attach(ctx context.Context, workspaceID, userID string) error {
	m.mu.Lock()
	if a, ok := m.attached[userID]; ok {
		a.refs++
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	sub, err := m.transport.Subscribe(ctx, signaling.UserTopic(userID), func(env signaling.Envelope) {
		m.handleUserSignal(workspaceID, userID, env)
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	if a, ok := m.attached[userID]; ok {
		// another connection for the same user won the race
		a.refs++
		m.mu.Unlock()
		_ = sub.Close()
		return nil
	}
	m.attached[userID] = &attachment{sub: sub, refs: 1}
	m.mu.Unlock()
	return nil
}

func (m *Manager) Detach(userID string) {
	m.mu.Lock()
	a, ok := m.attached[userID]
	if !ok {
		m.mu.Unlock()
		return
	}
	a.refs--
	if a.refs > 0 {
		m.mu.Unlock()
		return
	}
	delete(m.attached, userID)
	m.mu.Unlock()
	_ = a.sub.Close()
}

// StartCall places an outgoing call for an appointment. Local media must be
// live before anything is broadcast: a device failure here leaves the remote
// party completely undisturbed and the caller back where they started.
func (m *Manager) StartCall(ctx context.Context, workspaceID, appointmentID, userID string) (View, error) {
	apt, err := m.appts.GetForParticipant(ctx, workspaceID, appointmentID, userID)
	if err != nil {
		return View{}, err
	}
	roomID := appointments.RoomID(apt.ID)
	peerID, peerName, _ := apt.OtherParty(userID)

	m.mu.Lock()
	if existing, ok := m.sessions[key(roomID, userID)]; ok && !existing.state.Terminal() {
		m.mu.Unlock()
		return View{}, ErrBusy
	}
	s := &session{
		roomID:      roomID,
		workspaceID: workspaceID,
		selfID:      userID,
		selfName:    apt.DisplayName(userID),
		peerID:      peerID,
		peerName:    peerName,
		caller:      true,
		state:       StateIdle,
	}
	m.sessions[key(roomID, userID)] = s
	m.mu.Unlock()

	engine := m.engines()
	if err := engine.Initialize(ctx); err != nil {
		m.dropSession(roomID, userID)
		return View{}, err
	}

	if ok, serr := m.acquireSlot(ctx, roomID); serr != nil || !ok {
		_ = engine.Leave(context.Background())
		m.dropSession(roomID, userID)
		if serr != nil {
			return View{}, serr
		}
		return View{}, ErrRoomFull
	}

	engine.OnStateChange(func(st media.ConnectionState) {
		m.onMediaState(roomID, userID, st)
	})
	if err := engine.Join(ctx, roomID); err != nil {
		_ = engine.Leave(context.Background())
		m.releaseSlot(roomID)
		m.dropSession(roomID, userID)
		return View{}, err
	}

	roomSub, err := m.transport.Subscribe(context.Background(), signaling.RoomTopic(roomID), func(env signaling.Envelope) {
		m.handleRoomSignal(roomID, userID, env)
	})
	if err != nil {
		_ = engine.Leave(context.Background())
		m.releaseSlot(roomID)
		m.dropSession(roomID, userID)
		return View{}, err
	}

	now := m.clock().UTC()
	m.mu.Lock()
	next, _ := Next(s.state, EventDial)
	s.state = next
	s.startedAt = now
	s.engine = engine
	s.roomSub = roomSub
	s.slotHeld = true
	env := m.envelopeLocked(s, signaling.KindIncomingCall)
	m.mu.Unlock()

	m.publish(ctx, signaling.RoomTopic(roomID), env)
	m.publish(ctx, signaling.UserTopic(peerID), env)

	m.notifier.Dispatch(ctx, notify.Notification{
		WorkspaceID: workspaceID,
		UserID:      peerID,
		Type:        notify.TypeIncomingCall,
		Title:       "Incoming Video Call",
		Message:     fmt.Sprintf("%s is inviting you to a video call", s.selfName),
		RoomID:      roomID,
	}, &notify.PushAlert{
		Title:              "Incoming Video Call",
		Body:               fmt.Sprintf("%s is calling you", s.selfName),
		Tag:                "call-" + roomID,
		RequireInteraction: true,
		Data: map[string]string{
			"room_id":     roomID,
			"caller_id":   userID,
			"caller_name": s.selfName,
		},
	})

	m.log.Info("call started", "room_id", roomID, "caller_id", userID, "callee_id", peerID)
	return m.snapshot(roomID, userID)
}

// Answer accepts a ringing invite. The ring timer is released before
// anything else so its expiry can no longer turn the session into a missed
// call; media comes up before the answer broadcast goes out.
func (m *Manager) Answer(ctx context.Context, workspaceID, appointmentID, userID string) (View, error) {
	apt, err := m.appts.GetForParticipant(ctx, workspaceID, appointmentID, userID)
	if err != nil {
		return View{}, err
	}
	roomID := appointments.RoomID(apt.ID)

	m.mu.Lock()
	s, ok := m.sessions[key(roomID, userID)]
	if !ok {
		m.mu.Unlock()
		return View{}, ErrNoSession
	}
	if s.state != StateRinging {
		// duplicate taps and post-terminal answers are no-ops
		v := s.view()
		m.mu.Unlock()
		return v, nil
	}
	s.stopRingTimer()
	next, _ := Next(s.state, EventAnswerLocal)
	s.state = next
	s.selfName = apt.DisplayName(userID)
	if s.peerName == "" {
		_, s.peerName, _ = apt.OtherParty(userID)
	}
	m.mu.Unlock()

	engine := m.engines()
	if err := engine.Initialize(ctx); err != nil {
		m.failActive(ctx, s, nil)
		return View{}, err
	}

	if ok, serr := m.acquireSlot(ctx, roomID); serr != nil || !ok {
		m.failActive(ctx, s, engine)
		if serr != nil {
			return View{}, serr
		}
		return View{}, ErrRoomFull
	}

	engine.OnStateChange(func(st media.ConnectionState) {
		m.onMediaState(roomID, userID, st)
	})
	if err := engine.Join(ctx, roomID); err != nil {
		m.releaseSlot(roomID)
		m.failActive(ctx, s, engine)
		return View{}, err
	}

	m.mu.Lock()
	if s.state.Terminal() {
		// the caller hung up while our devices were coming up
		v := s.view()
		m.mu.Unlock()
		_ = engine.Leave(context.Background())
		m.releaseSlot(roomID)
		return v, nil
	}
	s.engine = engine
	s.slotHeld = true
	env := m.envelopeLocked(s, signaling.KindCallAnswered)
	m.mu.Unlock()

	m.publish(ctx, signaling.RoomTopic(roomID), env)
	m.log.Info("call answered", "room_id", roomID, "user_id", userID)

	if engine.State() == media.StateConnected {
		m.onMediaState(roomID, userID, media.StateConnected)
	}
	return m.snapshot(roomID, userID)
}

// Decline rejects a ringing invite. Only valid while ringing; anything else
// is a no-op.
func (m *Manager) Decline(ctx context.Context, workspaceID, appointmentID, userID string) (View, error) {
	if _, err := m.appts.GetForParticipant(ctx, workspaceID, appointmentID, userID); err != nil {
		return View{}, err
	}
	roomID := appointments.RoomID(appointmentID)

	m.mu.Lock()
	s, ok := m.sessions[key(roomID, userID)]
	if !ok {
		m.mu.Unlock()
		return View{}, ErrNoSession
	}
	if s.state != StateRinging {
		v := s.view()
		m.mu.Unlock()
		return v, nil
	}
	s.stopRingTimer()
	next, _ := Next(s.state, EventDeclineLocal)
	s.state = next
	s.endedAt = m.clock().UTC()
	rec := m.recordLocked(s, history.OutcomeDeclined)
	env := m.envelopeLocked(s, signaling.KindCallDeclined)
	v := s.view()
	m.mu.Unlock()

	m.publish(ctx, signaling.RoomTopic(roomID), env)
	m.teardown(s)
	m.appendRecord(ctx, rec)
	m.log.Info("call declined", "room_id", roomID, "user_id", userID)
	return v, nil
}

// EndCall hangs up. From calling state it cancels an unanswered invite; from
// a connected call it finishes it and credits the duration. The completed
// notification goes to the party that hung up, and only to them.
func (m *Manager) EndCall(ctx context.Context, workspaceID, appointmentID, userID string) (View, error) {
	if _, err := m.appts.GetForParticipant(ctx, workspaceID, appointmentID, userID); err != nil {
		return View{}, err
	}
	roomID := appointments.RoomID(appointmentID)

	m.mu.Lock()
	s, ok := m.sessions[key(roomID, userID)]
	if !ok {
		m.mu.Unlock()
		return View{}, ErrNoSession
	}
	next, applies := Next(s.state, EventHangupLocal)
	if !applies {
		v := s.view()
		m.mu.Unlock()
		return v, nil
	}
	s.stopRingTimer()
	s.state = next
	s.endedAt = m.clock().UTC()
	wasConnected := s.connectedAt != nil
	outcome := history.OutcomeCanceled
	if wasConnected {
		outcome = history.OutcomeCompleted
	}
	rec := m.recordLocked(s, outcome)
	env := m.envelopeLocked(s, signaling.KindCallEnded)
	peerName := s.peerName
	dur := s.durationSeconds()
	v := s.view()
	m.mu.Unlock()

	m.publish(ctx, signaling.RoomTopic(roomID), env)
	m.teardown(s)
	m.appendRecord(ctx, rec)

	if wasConnected {
		m.notifier.Dispatch(ctx, notify.Notification{
			WorkspaceID: workspaceID,
			UserID:      userID,
			Type:        notify.TypeCallCompleted,
			Title:       "Call Ended",
			Message:     fmt.Sprintf("Video call with %s lasted %s", peerName, formatDuration(dur)),
			RoomID:      roomID,
		}, nil)
	}
	m.log.Info("call ended", "room_id", roomID, "user_id", userID, "duration_s", dur)
	return v, nil
}

// Dismiss clears the session from the registry so the UI resets. An active
// session is hung up first.
func (m *Manager) Dismiss(ctx context.Context, workspaceID, appointmentID, userID string) error {
	roomID := appointments.RoomID(appointmentID)

	m.mu.Lock()
	s, ok := m.sessions[key(roomID, userID)]
	active := ok && !s.state.Terminal()
	m.mu.Unlock()
	if !ok {
		return nil
	}
	if active {
		if _, err := m.EndCall(ctx, workspaceID, appointmentID, userID); err != nil {
			return err
		}
	}
	m.dropSession(roomID, userID)
	return nil
}

// Status reports the current session snapshot, if any.
func (m *Manager) Status(workspaceID, appointmentID, userID string) (View, bool) {
	roomID := appointments.RoomID(appointmentID)
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[key(roomID, userID)]
	if !ok || s.workspaceID != workspaceID {
		return View{}, false
	}
	return s.view(), true
}

func (m *Manager) ToggleMute(workspaceID, appointmentID, userID string) (View, error) {
	return m.toggle(workspaceID, appointmentID, userID, func(e media.Engine) { e.ToggleMute() })
}

func (m *Manager) ToggleVideo(workspaceID, appointmentID, userID string) (View, error) {
	return m.toggle(workspaceID, appointmentID, userID, func(e media.Engine) { e.ToggleVideo() })
}

func (m *Manager) ToggleScreenShare(workspaceID, appointmentID, userID string) (View, error) {
	return m.toggle(workspaceID, appointmentID, userID, func(e media.Engine) { e.ToggleScreenShare() })
}

func (m *Manager) toggle(workspaceID, appointmentID, userID string, f func(media.Engine)) (View, error) {
	roomID := appointments.RoomID(appointmentID)
	m.mu.Lock()
	s, ok := m.sessions[key(roomID, userID)]
	if !ok || s.workspaceID != workspaceID || s.engine == nil {
		m.mu.Unlock()
		return View{}, ErrNoSession
	}
	eng := s.engine
	m.mu.Unlock()
	f(eng)
	return m.snapshot(roomID, userID)
}

// handleUserSignal consumes the personal channel. Only the initial invite
// travels there; it creates a ringing session and arms the ring timer.
func (m *Manager) handleUserSignal(workspaceID, userID string, env signaling.Envelope) {
	if env.Kind != signaling.KindIncomingCall || env.FromUserID == userID {
		return
	}
	roomID := env.RoomID
	if roomID == "" {
		return
	}

	m.mu.Lock()
	if existing, ok := m.sessions[key(roomID, userID)]; ok && !existing.state.Terminal() {
		m.mu.Unlock()
		return
	}
	next, _ := Next(StateIdle, EventIncoming)
	s := &session{
		roomID:      roomID,
		workspaceID: workspaceID,
		selfID:      userID,
		peerID:      env.FromUserID,
		peerName:    env.FromName,
		caller:      false,
		state:       next,
		startedAt:   m.clock().UTC(),
	}
	m.sessions[key(roomID, userID)] = s
	m.mu.Unlock()

	sub, err := m.transport.Subscribe(context.Background(), signaling.RoomTopic(roomID), func(e signaling.Envelope) {
		m.handleRoomSignal(roomID, userID, e)
	})
	if err != nil {
		m.log.Warn("room subscribe failed", "room_id", roomID, "user_id", userID, "err", err)
		m.dropSession(roomID, userID)
		return
	}

	m.mu.Lock()
	if cur, ok := m.sessions[key(roomID, userID)]; !ok || cur != s {
		m.mu.Unlock()
		_ = sub.Close()
		return
	}
	s.roomSub = sub
	s.ringTimer = time.AfterFunc(m.ringTimeout, func() {
		m.onRingTimeout(roomID, userID)
	})
	m.mu.Unlock()

	m.log.Info("incoming call", "room_id", roomID, "callee_id", userID, "caller_id", env.FromUserID)
}

// handleRoomSignal consumes the per-call channel shared by both parties.
// Broadcasts echo back to their publisher, so self-origin is dropped first.
func (m *Manager) handleRoomSignal(roomID, userID string, env signaling.Envelope) {
	if env.FromUserID == userID || env.RoomID != roomID {
		return
	}

	switch env.Kind {
	case signaling.KindCallAnswered:
		m.mu.Lock()
		s, ok := m.sessions[key(roomID, userID)]
		if !ok {
			m.mu.Unlock()
			return
		}
		next, applies := Next(s.state, EventAnswerRemote)
		if !applies {
			m.mu.Unlock()
			return
		}
		s.state = next
		eng := s.engine
		m.mu.Unlock()

		m.log.Info("peer answered", "room_id", roomID, "user_id", userID)
		// our media may have finished connecting while we were still calling
		if eng != nil && eng.State() == media.StateConnected {
			m.onMediaState(roomID, userID, media.StateConnected)
		}

	case signaling.KindCallDeclined:
		m.mu.Lock()
		s, ok := m.sessions[key(roomID, userID)]
		if !ok {
			m.mu.Unlock()
			return
		}
		next, applies := Next(s.state, EventDeclineRemote)
		if !applies {
			m.mu.Unlock()
			return
		}
		s.stopRingTimer()
		s.state = next
		s.endedAt = m.clock().UTC()
		rec := m.recordLocked(s, history.OutcomeDeclined)
		m.mu.Unlock()

		m.teardown(s)
		m.appendRecord(context.Background(), rec)
		m.log.Info("peer declined", "room_id", roomID, "user_id", userID)

	case signaling.KindCallEnded:
		m.mu.Lock()
		s, ok := m.sessions[key(roomID, userID)]
		if !ok {
			m.mu.Unlock()
			return
		}
		next, applies := Next(s.state, EventHangupRemote)
		if !applies {
			m.mu.Unlock()
			return
		}
		s.stopRingTimer()
		s.state = next
		s.endedAt = m.clock().UTC()
		outcome := history.OutcomeCanceled
		if s.connectedAt != nil {
			outcome = history.OutcomeCompleted
		}
		rec := m.recordLocked(s, outcome)
		m.mu.Unlock()

		// no completed notification here: only the party that hung up gets one
		m.teardown(s)
		m.appendRecord(context.Background(), rec)
		m.log.Info("peer ended call", "room_id", roomID, "user_id", userID)

	case signaling.KindIncomingCall:
		// the invite also lands on the room channel; session creation is
		// driven off the personal channel
	}
}

// onRingTimeout fires when an invite went unanswered. The state check under
// the lock resolves the race against a last-moment answer or decline: if the
// user decided first, the expiry loses and does nothing.
func (m *Manager) onRingTimeout(roomID, userID string) {
	m.mu.Lock()
	s, ok := m.sessions[key(roomID, userID)]
	if !ok || s.state != StateRinging {
		m.mu.Unlock()
		return
	}
	next, _ := Next(s.state, EventRingTimeout)
	s.stopRingTimer()
	s.state = next
	s.endedAt = m.clock().UTC()
	rec := m.recordLocked(s, history.OutcomeMissed)
	peerName := s.peerName
	workspaceID := s.workspaceID
	m.mu.Unlock()

	ctx := context.Background()
	m.teardown(s)
	m.appendRecord(ctx, rec)

	// the caller is never told; their side keeps calling until they cancel
	m.notifier.Dispatch(ctx, notify.Notification{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Type:        notify.TypeMissedCall,
		Title:       "Missed Call",
		Message:     fmt.Sprintf("You missed a video call from %s", peerName),
		RoomID:      roomID,
	}, nil)
	m.log.Info("call missed", "room_id", roomID, "user_id", userID)
}

// onMediaState reacts to engine connection-state reports.
func (m *Manager) onMediaState(roomID, userID string, st media.ConnectionState) {
	switch st {
	case media.StateConnected:
		m.mu.Lock()
		s, ok := m.sessions[key(roomID, userID)]
		if !ok {
			m.mu.Unlock()
			return
		}
		next, applies := Next(s.state, EventMediaConnected)
		if !applies {
			m.mu.Unlock()
			return
		}
		s.state = next
		now := m.clock().UTC()
		s.connectedAt = &now
		m.mu.Unlock()
		m.log.Info("call connected", "room_id", roomID, "user_id", userID)

	case media.StateFailed:
		m.mu.Lock()
		s, ok := m.sessions[key(roomID, userID)]
		if !ok {
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()
		m.failActive(context.Background(), s, nil)
	}
}

// failActive marks a session failed after signaling has already gone out and
// tells the peer the attempt is over. extra, if non-nil, is an engine that
// was brought up but never attached to the session.
func (m *Manager) failActive(ctx context.Context, s *session, extra media.Engine) {
	m.mu.Lock()
	next, applies := Next(s.state, EventMediaFailed)
	if !applies {
		m.mu.Unlock()
		if extra != nil {
			_ = extra.Leave(context.Background())
		}
		return
	}
	s.stopRingTimer()
	s.state = next
	s.endedAt = m.clock().UTC()
	rec := m.recordLocked(s, history.OutcomeFailed)
	env := m.envelopeLocked(s, signaling.KindCallEnded)
	roomID := s.roomID
	m.mu.Unlock()

	m.publish(ctx, signaling.RoomTopic(roomID), env)
	if extra != nil {
		_ = extra.Leave(context.Background())
	}
	m.teardown(s)
	m.appendRecord(ctx, rec)
	m.log.Warn("call failed", "room_id", roomID, "user_id", s.selfID)
}

// teardown releases everything a session holds. Idempotent; every field is
// cleared under the lock before its release runs.
func (m *Manager) teardown(s *session) {
	m.mu.Lock()
	sub := s.roomSub
	s.roomSub = nil
	eng := s.engine
	s.engine = nil
	slot := s.slotHeld
	s.slotHeld = false
	s.stopRingTimer()
	roomID := s.roomID
	m.mu.Unlock()

	if sub != nil {
		_ = sub.Close()
	}
	if eng != nil {
		_ = eng.Leave(context.Background())
	}
	if slot {
		m.releaseSlot(roomID)
	}
}

func (m *Manager) dropSession(roomID, userID string) {
	m.mu.Lock()
	s, ok := m.sessions[key(roomID, userID)]
	if ok {
		delete(m.sessions, key(roomID, userID))
	}
	m.mu.Unlock()
	if ok {
		m.teardown(s)
	}
}

func (m *Manager) snapshot(roomID, userID string) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[key(roomID, userID)]
	if !ok {
		return View{}, ErrNoSession
	}
	return s.view(), nil
}

func (m *Manager) envelopeLocked(s *session, kind signaling.SignalKind) signaling.Envelope {
	return signaling.Envelope{
		Kind:        kind,
		RoomID:      s.roomID,
		WorkspaceID: s.workspaceID,
		FromUserID:  s.selfID,
		FromName:    s.selfName,
		SentAt:      m.clock().UTC(),
	}
}

func (m *Manager) recordLocked(s *session, outcome history.Outcome) history.CallRecord {
	callerID, calleeID := s.selfID, s.peerID
	if !s.caller {
		callerID, calleeID = s.peerID, s.selfID
	}
	rec := history.CallRecord{
		WorkspaceID: s.workspaceID,
		RoomID:      s.roomID,
		OwnerID:     s.selfID,
		CallerID:    callerID,
		CalleeID:    calleeID,
		Outcome:     outcome,
		StartedAt:   s.startedAt,
		ConnectedAt: s.connectedAt,
		EndedAt:     s.endedAt,
	}
	if outcome == history.OutcomeCompleted {
		rec.DurationSeconds = s.durationSeconds()
	}
	return rec
}

func (m *Manager) appendRecord(ctx context.Context, rec history.CallRecord) {
	if m.records == nil {
		return
	}
	if err := m.records.Append(ctx, rec); err != nil {
		m.log.Warn("call record append failed", "room_id", rec.RoomID, "err", err)
	}
}

// publish is fire and forget. A lost invite is compensated by the ring
// timeout, not by retries.
func (m *Manager) publish(ctx context.Context, topic string, env signaling.Envelope) {
	if err := m.transport.Publish(ctx, topic, env); err != nil {
		m.log.Warn("signal publish failed", "topic", topic, "kind", string(env.Kind), "err", err)
	}
}

func (m *Manager) acquireSlot(ctx context.Context, roomID string) (bool, error) {
	if m.rdb == nil {
		return true, nil
	}
	return utils.AcquireRoomSlot(ctx, m.rdb, roomID, m.maxParticipants, m.slotTTL)
}

func (m *Manager) releaseSlot(roomID string) {
	if m.rdb == nil {
		return
	}
	if err := utils.ReleaseRoomSlot(context.Background(), m.rdb, roomID); err != nil {
		m.log.Warn("room slot release failed", "room_id", roomID, "err", err)
	}
}

func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}
