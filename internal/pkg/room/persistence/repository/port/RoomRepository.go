package repository

import (
	"context"

	room "go-parley/internal/pkg/room/domain"
)

// RoomRepository defines persistence operations for rooms and memberships.
// Membership uniqueness is enforced at the storage layer; concurrent joins
// for the same (room, user) pair surface as room.ErrAlreadyMember rather
// than silently duplicating.
type RoomRepository interface {
	// CreateWithCreator persists the room and the creator's membership in
	// one transaction. A room must never exist without its creator as a
	// member.
	CreateWithCreator(ctx context.Context, r room.Room) (*room.Room, error)

	// FindByID returns room.ErrNotFound when the room is absent.
	FindByID(ctx context.Context, id string) (*room.Room, error)

	// DeleteCascade removes the room's memberships, messages, read
	// receipts and room-scoped notifications, then the room itself, in one
	// transaction.
	DeleteCascade(ctx context.Context, roomID string) error

	// AddMember returns room.ErrAlreadyMember when the membership exists.
	AddMember(ctx context.Context, roomID, userID string) error

	// RemoveMember returns room.ErrNotMember when no membership exists.
	RemoveMember(ctx context.Context, roomID, userID string) error

	// Members lists the room's members joined with their display names,
	// oldest join first.
	Members(ctx context.Context, roomID string) ([]room.Member, error)

	// MemberCount returns the room's current member count. The full-read
	// threshold for room messages is derived from this on every mark-read
	// call, never cached.
	MemberCount(ctx context.Context, roomID string) (int, error)

	// AllMemberships streams every durable membership; used to warm the
	// in-memory index at startup.
	AllMemberships(ctx context.Context) ([]room.Membership, error)

	// RoomsForUser lists the rooms the user belongs to with member counts,
	// newest room first.
	RoomsForUser(ctx context.Context, userID string) ([]room.Summary, error)

	// SearchByName matches room names by case-insensitive substring.
	SearchByName(ctx context.Context, q string) ([]room.Summary, error)
}
