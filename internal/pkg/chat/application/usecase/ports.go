package usecase

import (
	"context"

	room "go-parley/internal/pkg/room/domain"
)

// MembershipChecker answers membership questions from the in-memory room
// index, on the synchronous send/read paths.
type MembershipChecker interface {
	IsMember(roomID, userID string) bool
}

// MemberSource exposes the durable membership state. Full-read thresholds
// and notification fan-out are derived from it, never from the index.
type MemberSource interface {
	Members(ctx context.Context, roomID string) ([]room.Member, error)
	MemberCount(ctx context.Context, roomID string) (int, error)
}

// NameResolver maps account identifiers to display names.
type NameResolver interface {
	Usernames(ctx context.Context, ids []string) (map[string]string, error)
}
