package history

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidRecord = errors.New("history: invalid record")
var ErrInvalidRequest = errors.New("history: invalid request")

// Repository abstracts persistence for call records.
//
// IMPORTANT:
// - Records are append-only; there is no update or delete.
// - Implementations must enforce workspace filtering on reads.

type Repository interface {
	Append(ctx context.Context, rec CallRecord) error
	List(ctx context.Context, workspaceID string, r TimeRange) ([]CallRecord, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) Append(ctx context.Context, rec CallRecord) error {
	if s.repo == nil {
		return errors.New("history: repository not configured")
	}
	if rec.WorkspaceID == "" || rec.RoomID == "" || rec.OwnerID == "" {
		return ErrInvalidRecord
	}
	if rec.Outcome == "" {
		return ErrInvalidRecord
	}
	if rec.Outcome != OutcomeCompleted && rec.DurationSeconds != 0 {
		// Only connected calls carry duration.
		return ErrInvalidRecord
	}
	if rec.RecordID == "" {
		rec.RecordID = uuid.NewString()
	}
	return s.repo.Append(ctx, rec)
}

func (s *Service) Summarize(ctx context.Context, workspaceID string, r TimeRange) (Summary, error) {
	if workspaceID == "" {
		return Summary{}, ErrInvalidRequest
	}
	if r.From.IsZero() || r.To.IsZero() || !r.To.After(r.From) {
		return Summary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return Summary{}, errors.New("history: repository not configured")
	}

	rows, err := s.repo.List(ctx, workspaceID, r)
	if err != nil {
		return Summary{}, err
	}

	out := Summary{WorkspaceID: workspaceID}
	for _, rec := range rows {
		out.TotalCalls++
		out.TotalDurationSeconds += rec.DurationSeconds
		switch rec.Outcome {
		case OutcomeCompleted:
			out.CompletedCalls++
		case OutcomeDeclined:
			out.DeclinedCalls++
		case OutcomeMissed:
			out.MissedCalls++
		case OutcomeFailed:
			out.FailedCalls++
		case OutcomeCanceled:
			out.CanceledCalls++
		}
	}
	if out.CompletedCalls > 0 {
		out.AverageDurationSeconds = out.TotalDurationSeconds / out.CompletedCalls
	}
	return out, nil
}
