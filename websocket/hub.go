package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Client is the per-connection context created after a successful
// handshake. It carries the authenticated identity for the lifetime of
// the connection; there is no ambient session lookup.
type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn

	// fasthttp websocket connections do not allow concurrent writes.
	writeMu sync.Mutex
}

// Send writes one frame to the client. Write errors are returned so
// the hub can drop the connection.
func (c *Client) Send(env Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(env)
}

// Hub is the in-process room registry for the real-time channel.
// Every authenticated connection is a member of its user's implicit
// personal room; conversation rooms are joined explicitly. Membership
// lives only in this process; a multi-instance deployment needs an
// external fan-out relay in front of it.
type Hub struct {
	mu sync.RWMutex

	// users maps a user id to all of their live connections
	// (multi-device: one user may hold several).
	users map[uuid.UUID]map[*Client]struct{}

	// rooms maps a conversation id to the connections that joined it.
	rooms map[uuid.UUID]map[*Client]struct{}

	// joined tracks, per connection, which rooms it is in so teardown
	// can release everything without scanning all rooms.
	joined map[*Client]map[uuid.UUID]struct{}
}

func NewHub() *Hub {
	return &Hub{
		users:  make(map[uuid.UUID]map[*Client]struct{}),
		rooms:  make(map[uuid.UUID]map[*Client]struct{}),
		joined: make(map[*Client]map[uuid.UUID]struct{}),
	}
}

// Register adds an authenticated connection to its personal room.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[c.UserID] == nil {
		h.users[c.UserID] = make(map[*Client]struct{})
	}
	h.users[c.UserID][c] = struct{}{}
	h.joined[c] = make(map[uuid.UUID]struct{})
}

// Unregister releases the connection and every room membership it
// holds. Nothing about the session survives; a reconnecting client
// re-authenticates and re-joins its rooms.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conversationID := range h.joined[c] {
		delete(h.rooms[conversationID], c)
		if len(h.rooms[conversationID]) == 0 {
			delete(h.rooms, conversationID)
		}
	}
	delete(h.joined, c)
	if conns, ok := h.users[c.UserID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.users, c.UserID)
		}
	}
}

// Join adds the connection to a conversation room. Membership in the
// conversation itself is verified by the caller before this point.
func (h *Hub) Join(c *Client, conversationID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.joined[c]; !ok {
		return
	}
	if h.rooms[conversationID] == nil {
		h.rooms[conversationID] = make(map[*Client]struct{})
	}
	h.rooms[conversationID][c] = struct{}{}
	h.joined[c][conversationID] = struct{}{}
}

// Leave removes the connection from a conversation room.
func (h *Hub) Leave(c *Client, conversationID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[conversationID], c)
	if len(h.rooms[conversationID]) == 0 {
		delete(h.rooms, conversationID)
	}
	delete(h.joined[c], conversationID)
}

// BroadcastToRoom sends a frame to every member of a conversation
// room. Pass a non-nil exclude to skip one connection (typing relays
// exclude their sender).
func (h *Hub) BroadcastToRoom(conversationID uuid.UUID, env Envelope, exclude *Client) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[conversationID]))
	for member := range h.rooms[conversationID] {
		if member != exclude {
			members = append(members, member)
		}
	}
	h.mu.RUnlock()

	for _, member := range members {
		if err := member.Send(env); err != nil {
			log.Printf("Error sending %s to client %s: %v", env.Event, member.UserID, err)
			member.Conn.Close()
			h.Unregister(member)
		}
	}
}

// SendToUser sends a frame to every connection in a user's personal
// room, whether or not that user joined any conversation room.
func (h *Hub) SendToUser(userID uuid.UUID, env Envelope) {
	h.mu.RLock()
	conns := make([]*Client, 0, len(h.users[userID]))
	for conn := range h.users[userID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.Send(env); err != nil {
			log.Printf("Error sending %s to client %s: %v", env.Event, userID, err)
			conn.Conn.Close()
			h.Unregister(conn)
		}
	}
}

// ConnectionCount reports live connections for a user.
func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}

// RoomSize reports how many connections joined a conversation room.
func (h *Hub) RoomSize(conversationID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[conversationID])
}

// InRoom reports whether a connection joined a conversation room.
func (h *Hub) InRoom(c *Client, conversationID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[conversationID][c]
	return ok
}
