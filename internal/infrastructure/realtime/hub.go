package realtime

import (
	"sync"
)

// Hub is the process-wide presence registry plus the room broadcast
// channels. It keeps at most one active Connection per user while allowing
// efficient fan-out to all connections currently joined to a room channel.
//
// Presence is transient: the hub is rebuilt empty on restart and never
// persisted. Channel membership here is independent of durable room
// membership; joining a channel only affects in-memory fan-out.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Connection            // sessionID -> connection
	users    map[string]string                 // userID -> sessionID
	rooms    map[string]map[string]*Connection // roomID -> sessionID -> connection
	joined   map[string]map[string]struct{}    // sessionID -> set of roomIDs
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]*Connection),
		users:    make(map[string]string),
		rooms:    make(map[string]map[string]*Connection),
		joined:   make(map[string]map[string]struct{}),
	}
}

// Attach registers a connection for the given user. If a previous session
// exists it is removed and closed after the swap, enforcing one active
// socket per user. Reconnect therefore overwrites, never duplicates.
func (h *Hub) Attach(conn *Connection) {
	var previous *Connection

	h.mu.Lock()
	if existingID, ok := h.users[conn.UserID]; ok {
		if existing := h.sessions[existingID]; existing != nil {
			previous = existing
			h.detachLocked(existingID)
		}
	}

	h.sessions[conn.ID] = conn
	h.users[conn.UserID] = conn.ID
	h.joined[conn.ID] = make(map[string]struct{})
	h.mu.Unlock()

	conn.Start()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Detach removes a connection if it is still tracked. A stale disconnect
// for a connection that has already been replaced by a newer one is a
// no-op: the presence entry of the newer connection survives.
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	h.detachLocked(conn.ID)
	h.mu.Unlock()
}

// Connection returns the live connection for the user, if any.
func (h *Hub) Connection(userID string) (*Connection, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sessionID, ok := h.users[userID]
	if !ok {
		return nil, false
	}
	conn := h.sessions[sessionID]
	return conn, conn != nil
}

// IsOnline reports whether the user currently has a live connection.
func (h *Hub) IsOnline(userID string) bool {
	_, ok := h.Connection(userID)
	return ok
}

// JoinRoom adds the connection to the room's broadcast channel.
func (h *Hub) JoinRoom(roomID string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[conn.ID]; !ok {
		return
	}

	room := h.rooms[roomID]
	if room == nil {
		room = make(map[string]*Connection)
		h.rooms[roomID] = room
	}
	room[conn.ID] = conn

	memberships := h.joined[conn.ID]
	if memberships == nil {
		memberships = make(map[string]struct{})
		h.joined[conn.ID] = memberships
	}
	memberships[roomID] = struct{}{}
}

// LeaveRoom removes the connection from the room's broadcast channel.
func (h *Hub) LeaveRoom(roomID string, conn *Connection) {
	h.mu.Lock()
	h.leaveLocked(roomID, conn.ID)
	h.mu.Unlock()
}

// Broadcast writes payload to all connections joined to the room channel.
// excludeUserID, when non-empty, prevents delivering to that user. Returns
// the number of connections the payload was handed to.
func (h *Hub) Broadcast(roomID string, payload []byte, excludeUserID string) int {
	h.mu.RLock()
	room := h.rooms[roomID]
	if len(room) == 0 {
		h.mu.RUnlock()
		return 0
	}

	delivered := 0
	for _, conn := range room {
		if excludeUserID != "" && conn.UserID == excludeUserID {
			continue
		}
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	h.mu.RUnlock()
	return delivered
}

// NotifyUser delivers payload to the current connection of the given user.
// Returns false when the user is offline; the caller treats that as
// store-and-forward, not an error.
func (h *Hub) NotifyUser(userID string, payload []byte) bool {
	h.mu.RLock()
	sessionID, ok := h.users[userID]
	if !ok {
		h.mu.RUnlock()
		return false
	}
	conn := h.sessions[sessionID]
	h.mu.RUnlock()
	if conn == nil {
		return false
	}
	return conn.Send(payload) == nil
}

// Close terminates all tracked connections and clears hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Connection, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]*Connection)
	h.users = make(map[string]string)
	h.rooms = make(map[string]map[string]*Connection)
	h.joined = make(map[string]map[string]struct{})
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "hub shutdown")
	}
}

func (h *Hub) detachLocked(sessionID string) {
	conn, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	delete(h.sessions, sessionID)

	// Only clear the user mapping when it still points at this session,
	// so a disconnect for an old connection cannot clobber a newer one.
	if current, ok := h.users[conn.UserID]; ok && current == sessionID {
		delete(h.users, conn.UserID)
	}

	for roomID := range h.joined[sessionID] {
		h.leaveLocked(roomID, sessionID)
	}
	delete(h.joined, sessionID)
}

func (h *Hub) leaveLocked(roomID string, sessionID string) {
	if sessionID == "" {
		return
	}
	room := h.rooms[roomID]
	if room == nil {
		return
	}
	delete(room, sessionID)
	if len(room) == 0 {
		delete(h.rooms, roomID)
	}
	if memberships, ok := h.joined[sessionID]; ok {
		delete(memberships, roomID)
		if len(memberships) == 0 {
			delete(h.joined, sessionID)
		}
	}
}
