package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type recordingPush struct {
	mu     sync.Mutex
	alerts []PushAlert
	users  []string
	err    error
}

func (p *recordingPush) Name() string { return "recording" }

func (p *recordingPush) PushAlert(ctx context.Context, userID string, alert PushAlert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.users = append(p.users, userID)
	p.alerts = append(p.alerts, alert)
	return nil
}

func TestPersist_FillsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, nil, slog.Default())
	now := time.Unix(1700000000, 0).UTC()
	svc.WithClock(func() time.Time { return now })

	err := svc.Persist(context.Background(), Notification{
		WorkspaceID: "w1", UserID: "u1", Type: TypeMissedCall, Title: "Missed call",
	})
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	rows := repo.All()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ID == "" {
		t.Fatalf("expected generated id")
	}
	if !rows[0].CreatedAt.Equal(now) {
		t.Fatalf("expected clock timestamp, got %v", rows[0].CreatedAt)
	}
}

func TestPersist_RejectsMissingRecipient(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil, slog.Default())
	err := svc.Persist(context.Background(), Notification{WorkspaceID: "w1", Type: TypeMissedCall})
	if !errors.Is(err, ErrInvalidNotification) {
		t.Fatalf("expected ErrInvalidNotification, got %v", err)
	}
}

func TestDispatch_SwallowsRepoFailure(t *testing.T) {
	repo := NewMemoryRepo()
	repo.FailWith = errors.New("db down")
	push := &recordingPush{}
	svc := NewService(repo, push, slog.Default())

	// Must not panic or propagate; the push alert still goes out.
	svc.Dispatch(context.Background(), Notification{
		WorkspaceID: "w1", UserID: "u1", Type: TypeIncomingCall,
	}, &PushAlert{Title: "Incoming call", Tag: "call-r1"})

	if len(push.alerts) != 1 {
		t.Fatalf("expected push despite repo failure, got %d", len(push.alerts))
	}
}

func TestDispatch_PushesToRecipient(t *testing.T) {
	push := &recordingPush{}
	svc := NewService(NewMemoryRepo(), push, slog.Default())

	svc.Dispatch(context.Background(), Notification{
		WorkspaceID: "w1", UserID: "callee-7", Type: TypeIncomingCall, Title: "Incoming call",
	}, &PushAlert{Title: "Incoming call", RequireInteraction: true, Data: map[string]string{"room_id": "gf-call-7"}})

	if len(push.users) != 1 || push.users[0] != "callee-7" {
		t.Fatalf("expected alert for callee-7, got %v", push.users)
	}
	if !push.alerts[0].RequireInteraction {
		t.Fatalf("expected require_interaction to carry through")
	}
}

func TestDispatch_NilAlertSkipsPush(t *testing.T) {
	push := &recordingPush{}
	svc := NewService(NewMemoryRepo(), push, slog.Default())
	svc.Dispatch(context.Background(), Notification{WorkspaceID: "w", UserID: "u", Type: TypeCallCompleted}, nil)
	if len(push.alerts) != 0 {
		t.Fatalf("expected no push, got %d", len(push.alerts))
	}
}
