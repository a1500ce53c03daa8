package memberindex

import (
	"context"
	"fmt"
	"sync"

	room "go-parley/internal/pkg/room/domain"
)

// MembershipLister is the slice of the room repository the index needs to
// warm itself at startup.
type MembershipLister interface {
	AllMemberships(ctx context.Context) ([]room.Membership, error)
}

// Index is the in-memory mirror of durable room memberships, consulted on
// every room-scoped action. It is constructed at process start, warmed with
// LoadAll before the server accepts connections, and mutated only after the
// corresponding durable write succeeded, so an authorization check can never
// observe phantom membership.
type Index struct {
	mu    sync.RWMutex
	rooms map[string]map[string]struct{} // roomID -> set of userIDs
}

// New constructs an empty Index.
func New() *Index {
	return &Index{rooms: make(map[string]map[string]struct{})}
}

// LoadAll replaces the index contents with every durable membership.
func (i *Index) LoadAll(ctx context.Context, lister MembershipLister) error {
	memberships, err := lister.AllMemberships(ctx)
	if err != nil {
		return fmt.Errorf("memberindex: load memberships: %w", err)
	}

	rooms := make(map[string]map[string]struct{})
	for _, m := range memberships {
		set := rooms[m.RoomID]
		if set == nil {
			set = make(map[string]struct{})
			rooms[m.RoomID] = set
		}
		set[m.UserID] = struct{}{}
	}

	i.mu.Lock()
	i.rooms = rooms
	i.mu.Unlock()
	return nil
}

// Join mirrors a successful durable membership insert.
func (i *Index) Join(roomID, userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	set := i.rooms[roomID]
	if set == nil {
		set = make(map[string]struct{})
		i.rooms[roomID] = set
	}
	set[userID] = struct{}{}
}

// Leave mirrors a successful durable membership delete.
func (i *Index) Leave(roomID, userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	set := i.rooms[roomID]
	if set == nil {
		return
	}
	delete(set, userID)
	if len(set) == 0 {
		delete(i.rooms, roomID)
	}
}

// DropRoom mirrors room deletion: every membership for the room goes away.
func (i *Index) DropRoom(roomID string) {
	i.mu.Lock()
	delete(i.rooms, roomID)
	i.mu.Unlock()
}

// IsMember reports whether the user belongs to the room.
func (i *Index) IsMember(roomID, userID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.rooms[roomID][userID]
	return ok
}

// Members returns the user identifiers currently in the room.
func (i *Index) Members(roomID string) []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	set := i.rooms[roomID]
	members := make([]string, 0, len(set))
	for userID := range set {
		members = append(members, userID)
	}
	return members
}

// Count returns the room's member count.
func (i *Index) Count(roomID string) int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.rooms[roomID])
}

// RoomsOf returns the rooms the user belongs to. Used at connect time to
// join the user's broadcast channels.
func (i *Index) RoomsOf(userID string) []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	var rooms []string
	for roomID, set := range i.rooms {
		if _, ok := set[userID]; ok {
			rooms = append(rooms, roomID)
		}
	}
	return rooms
}
