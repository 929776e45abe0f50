package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for notifications.
//
// It MUST be append-only from the core's point of view; read/mark-read
// surfaces belong to the host application's CRUD layer.

type Repository interface {
	Insert(ctx context.Context, n Notification) error
}

var ErrInvalidNotification = errors.New("notify: invalid notification")

// Service dispatches notifications and push alerts.
//
// IMPORTANT:
// - Both persistence and push are best-effort. Failures are logged and
//   swallowed; call continuity takes priority over notification delivery.

type Service struct {
	repo  Repository
	push  PushProvider
	log   *slog.Logger
	clock func() time.Time
}

func NewService(repo Repository, push PushProvider, log *slog.Logger) *Service {
	if push == nil {
		push = NoopProvider{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, push: push, log: log, clock: time.Now}
}

// Persist validates and writes one notification. Unlike the Dispatch helpers
// it returns the error so tests and batch tooling can observe failures.
func (s *Service) Persist(ctx context.Context, n Notification) error {
	if s.repo == nil {
		return errors.New("notify: repository not configured")
	}
	if n.WorkspaceID == "" || n.UserID == "" {
		return ErrInvalidNotification
	}
	if n.Type == "" {
		return ErrInvalidNotification
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.clock().UTC()
	}
	return s.repo.Insert(ctx, n)
}

// Dispatch persists a notification and optionally fans out a push alert.
// Best-effort: errors are logged, never returned.
func (s *Service) Dispatch(ctx context.Context, n Notification, alert *PushAlert) {
	if err := s.Persist(ctx, n); err != nil {
		s.log.Warn("notification persist failed", "type", string(n.Type), "user_id", n.UserID, "err", err)
	}
	if alert != nil {
		if err := s.push.PushAlert(ctx, n.UserID, *alert); err != nil {
			s.log.Warn("push alert failed", "provider", s.push.Name(), "user_id", n.UserID, "err", err)
		}
	}
}

// WithClock overrides the timestamp source; tests only.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}
