package realtime

import (
	"sync"
)

// Router coordinates websocket sessions and logical rooms, one room per chat
// id. A connection may subscribe to any number of rooms and stays a member
// until it leaves or detaches. There is no persistence or replay: a
// connection that joins after a broadcast missed it, and fetches history over
// the REST read path instead.
type Router struct {
	mu           sync.RWMutex
	sessions     map[string]*Connection            // sessionID -> connection
	rooms        map[string]map[string]*Connection // chatID -> sessionID -> connection
	sessionRooms map[string]map[string]struct{}    // sessionID -> set of chatIDs
}

// NewRouter constructs an initialized Router.
func NewRouter() *Router {
	return &Router{
		sessions:     make(map[string]*Connection),
		rooms:        make(map[string]map[string]*Connection),
		sessionRooms: make(map[string]map[string]struct{}),
	}
}

// Attach registers a connection and starts its write loop.
func (r *Router) Attach(conn *Connection) {
	r.mu.Lock()
	r.sessions[conn.ID] = conn
	r.sessionRooms[conn.ID] = make(map[string]struct{})
	r.mu.Unlock()

	conn.Start()
}

// Detach removes a connection and all its room memberships.
func (r *Router) Detach(conn *Connection) {
	r.mu.Lock()
	r.detachLocked(conn.ID)
	r.mu.Unlock()
}

// Join adds the connection to the chat room.
func (r *Router) Join(chatID string, conn *Connection) {
	r.mu.Lock()
	if _, ok := r.sessions[conn.ID]; !ok {
		r.mu.Unlock()
		return
	}

	room := r.rooms[chatID]
	if room == nil {
		room = make(map[string]*Connection)
		r.rooms[chatID] = room
	}
	room[conn.ID] = conn
	r.sessionRooms[conn.ID][chatID] = struct{}{}
	r.mu.Unlock()
}

// Leave removes the connection from the chat room.
func (r *Router) Leave(chatID string, conn *Connection) {
	r.mu.Lock()
	r.leaveLocked(chatID, conn.ID)
	r.mu.Unlock()
}

// Broadcast writes payload to every member of the chat room, the sender's own
// connections included. Delivery is best-effort, at most once.
func (r *Router) Broadcast(chatID string, payload []byte) int {
	r.mu.RLock()
	room := r.rooms[chatID]
	if len(room) == 0 {
		r.mu.RUnlock()
		return 0
	}

	delivered := 0
	for _, conn := range room {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	r.mu.RUnlock()
	return delivered
}

// Close terminates all tracked connections and clears router state.
func (r *Router) Close() {
	r.mu.Lock()
	sessions := make([]*Connection, 0, len(r.sessions))
	for _, conn := range r.sessions {
		sessions = append(sessions, conn)
	}
	r.sessions = make(map[string]*Connection)
	r.rooms = make(map[string]map[string]*Connection)
	r.sessionRooms = make(map[string]map[string]struct{})
	r.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "router shutdown")
	}
}

func (r *Router) detachLocked(sessionID string) {
	if _, ok := r.sessions[sessionID]; !ok {
		return
	}
	delete(r.sessions, sessionID)

	for roomID := range r.sessionRooms[sessionID] {
		r.leaveLocked(roomID, sessionID)
	}
	delete(r.sessionRooms, sessionID)
}

func (r *Router) leaveLocked(chatID string, sessionID string) {
	room := r.rooms[chatID]
	if room == nil {
		return
	}
	delete(room, sessionID)
	if len(room) == 0 {
		delete(r.rooms, chatID)
	}
	if memberships, ok := r.sessionRooms[sessionID]; ok {
		delete(memberships, chatID)
	}
}
