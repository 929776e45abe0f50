package appointments

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("appointments: not found")
	ErrNotParticipant = errors.New("appointments: user is not a participant")
)

type Repository interface {
	Get(ctx context.Context, workspaceID, appointmentID string) (Appointment, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

// GetForParticipant loads an appointment and enforces that userID is one of
// the two parties. Every call operation goes through this check.
func (s *Service) GetForParticipant(ctx context.Context, workspaceID, appointmentID, userID string) (Appointment, error) {
	if s.repo == nil {
		return Appointment{}, errors.New("appointments: repository not configured")
	}
	if workspaceID == "" || appointmentID == "" || userID == "" {
		return Appointment{}, ErrNotFound
	}
	apt, err := s.repo.Get(ctx, workspaceID, appointmentID)
	if err != nil {
		return Appointment{}, err
	}
	if !apt.Participant(userID) {
		return Appointment{}, ErrNotParticipant
	}
	return apt, nil
}
