package room

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound           = errors.New("room: not found")
	ErrEmptyName          = errors.New("room: name is required")
	ErrAlreadyMember      = errors.New("room: already a member")
	ErrNotMember          = errors.New("room: not a member")
	ErrCreatorCannotLeave = errors.New("room: creator cannot leave, delete the room instead")
	ErrNotCreator         = errors.New("room: only the creator can delete the room")
)

// Room is a named multi-member conversation with exactly one creator.
// The creator is always a member: the creating transaction persists the
// creator's membership together with the room.
type Room struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}

// Membership is the durable fact that an account belongs to a room.
// Unique per (RoomID, UserID) pair, enforced by the storage layer.
type Membership struct {
	RoomID   string    `db:"room_id"`
	UserID   string    `db:"user_id"`
	JoinedAt time.Time `db:"joined_at"`
}

// Member is a membership joined with the account's display name.
type Member struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Summary is a room with its current member count, as returned by listing
// and search endpoints.
type Summary struct {
	Room
	MemberCount int `json:"memberCount"`
}

// New validates a room name and shapes the record.
func New(name, creatorID string) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Room{
		Name:      name,
		CreatedBy: creatorID,
		CreatedAt: time.Now().UTC(),
	}, nil
}
