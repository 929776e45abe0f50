package notify

import (
	"context"
	"log/slog"
)

// PushProvider delivers out-of-band alerts. Implementations sit at the
// provider boundary (FCM, APNs, web push); keep them free of business logic.
type PushProvider interface {
	Name() string
	PushAlert(ctx context.Context, userID string, alert PushAlert) error
}

// NoopProvider drops every alert. Useful when push is not configured.
type NoopProvider struct{}

func (NoopProvider) Name() string { return "noop" }

func (NoopProvider) PushAlert(ctx context.Context, userID string, alert PushAlert) error {
	return nil
}

// LogProvider writes alerts to the structured log. It stands in for a real
// push gateway in local and dev environments.
type LogProvider struct {
	Log *slog.Logger
}

func (p LogProvider) Name() string { return "log" }

func (p LogProvider) PushAlert(ctx context.Context, userID string, alert PushAlert) error {
	l := p.Log
	if l == nil {
		l = slog.Default()
	}
	l.Info("push alert",
		"user_id", userID,
		"title", alert.Title,
		"body", alert.Body,
		"tag", alert.Tag,
		"require_interaction", alert.RequireInteraction,
	)
	return nil
}
