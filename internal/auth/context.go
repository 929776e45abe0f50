package auth

import (
	"context"
	"errors"
)

type identityKey struct{}

// Identity is the authenticated principal attached to a request: one user
// acting within one nutrition practice (the workspace).
type Identity struct {
	UserID      string
	WorkspaceID string
	Role        string
}

func WithIdentity(ctx context.Context, userID, workspaceID, role string) context.Context {
	return context.WithValue(ctx, identityKey{}, Identity{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Role:        role,
	})
}

// FromContext returns the full identity, if a verified token put one there.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

func UserID(ctx context.Context) (string, error) {
	if id, ok := FromContext(ctx); ok && id.UserID != "" {
		return id.UserID, nil
	}
	return "", errors.New("auth: user_id not in context")
}

func WorkspaceID(ctx context.Context) (string, error) {
	if id, ok := FromContext(ctx); ok && id.WorkspaceID != "" {
		return id.WorkspaceID, nil
	}
	return "", errors.New("auth: workspace_id not in context")
}

func Role(ctx context.Context) (string, error) {
	if id, ok := FromContext(ctx); ok && id.Role != "" {
		return id.Role, nil
	}
	return "", errors.New("auth: role not in context")
}
