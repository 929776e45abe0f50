package history

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAppend_RejectsDurationWithoutCompletion(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	err := svc.Append(context.Background(), CallRecord{
		WorkspaceID: "w", RoomID: "gf-call-1", OwnerID: "u1",
		Outcome: OutcomeMissed, DurationSeconds: 12,
	})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestAppend_GeneratesRecordID(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	now := time.Unix(1700000000, 0).UTC()
	err := svc.Append(context.Background(), CallRecord{
		WorkspaceID: "w", RoomID: "gf-call-1", OwnerID: "u1", CallerID: "u1", CalleeID: "u2",
		Outcome: OutcomeCanceled, StartedAt: now, EndedAt: now.Add(5 * time.Second),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if repo.All()[0].RecordID == "" {
		t.Fatalf("expected generated record id")
	}
}

func TestSummarize_WorkspaceIsolationAndAggregates(t *testing.T) {
	repo := NewMemoryRepo()
	now := time.Unix(1700000000, 0).UTC()
	conn := now.Add(10 * time.Second)
	repo.rows = []CallRecord{
		{RecordID: "r1", WorkspaceID: "w1", RoomID: "a", OwnerID: "u1", Outcome: OutcomeCompleted, DurationSeconds: 60, StartedAt: now, ConnectedAt: &conn, EndedAt: now.Add(70 * time.Second)},
		{RecordID: "r2", WorkspaceID: "w1", RoomID: "b", OwnerID: "u1", Outcome: OutcomeMissed, StartedAt: now, EndedAt: now.Add(30 * time.Second)},
		{RecordID: "r3", WorkspaceID: "w1", RoomID: "c", OwnerID: "u1", Outcome: OutcomeDeclined, StartedAt: now, EndedAt: now.Add(5 * time.Second)},
		{RecordID: "r4", WorkspaceID: "w2", RoomID: "d", OwnerID: "u9", Outcome: OutcomeCompleted, DurationSeconds: 90, StartedAt: now, EndedAt: now.Add(time.Minute)},
	}

	svc := NewService(repo)
	out, err := svc.Summarize(context.Background(), "w1", TimeRange{From: now.Add(-time.Hour), To: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if out.TotalCalls != 3 {
		t.Fatalf("expected 3 calls, got %d", out.TotalCalls)
	}
	if out.CompletedCalls != 1 || out.MissedCalls != 1 || out.DeclinedCalls != 1 {
		t.Fatalf("unexpected outcome counts: %+v", out)
	}
	if out.TotalDurationSeconds != 60 || out.AverageDurationSeconds != 60 {
		t.Fatalf("unexpected durations: %+v", out)
	}
}

func TestSummarize_RejectsInvertedRange(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	now := time.Unix(1700000000, 0).UTC()
	_, err := svc.Summarize(context.Background(), "w1", TimeRange{From: now, To: now.Add(-time.Hour)})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
