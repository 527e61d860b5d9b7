package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"messaging-service/internal/models"
	"messaging-service/internal/observability"
)

// wsConn is the subset of *websocket.Conn the hub writes through.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// client is one registered connection. Writes are serialized through
// the mutex; gorilla connections do not allow concurrent writers.
type client struct {
	conn wsConn
	info ConnInfo
	mu   sync.Mutex
}

func (c *client) send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *client) close() {
	_ = c.conn.Close()
}

// Hub tracks which user is connected and which conversation rooms their
// client joined. A user has at most one active connection; a newer one
// replaces and closes the previous.
type Hub struct {
	mu    sync.RWMutex
	users map[string]*client            // userID -> active client
	conns map[string]string             // connID -> userID
	rooms map[string]map[string]*client // conversationKey -> userID -> client
	log   *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		users: make(map[string]*client),
		conns: make(map[string]string),
		rooms: make(map[string]map[string]*client),
		log:   log,
	}
}

// Register maps userID to conn, last wins. The replaced connection is
// closed and dropped from every room; its read loop will observe a
// stale Unregister and leave the fresh state alone.
func (h *Hub) Register(userID string, conn wsConn, info ConnInfo) {
	cl := &client{conn: conn, info: info}

	h.mu.Lock()
	prev := h.users[userID]
	if prev != nil {
		delete(h.conns, prev.info.ConnID)
		h.dropFromRoomsLocked(userID)
	}
	h.users[userID] = cl
	h.conns[info.ConnID] = userID
	h.mu.Unlock()

	observability.IncWSActive()
	if prev != nil {
		prev.close()
		observability.DecWSActive()
		h.log.Info("websocket connection replaced",
			zap.String("user_id", userID),
			zap.String("old_conn_id", prev.info.ConnID),
			zap.String("conn_id", info.ConnID))
	}
}

// Unregister removes the connection if it is still the user's active
// one and reports the owning user. A connection already replaced by a
// reconnect yields wasActive false and removes nothing.
func (h *Hub) Unregister(connID string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID, ok := h.conns[connID]
	if !ok {
		return "", false
	}
	delete(h.conns, connID)
	delete(h.users, userID)
	h.dropFromRoomsLocked(userID)
	observability.DecWSActive()
	return userID, true
}

// IsOnline reports whether the user has an active connection.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.users[userID]
	return ok
}

// SendToUser writes one event to the user's active connection and
// reports delivery. A failed write tears the connection down.
func (h *Hub) SendToUser(userID string, event models.ServerEvent) bool {
	h.mu.RLock()
	cl := h.users[userID]
	h.mu.RUnlock()
	if cl == nil {
		return false
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return false
	}
	if err := cl.send(payload); err != nil {
		h.evict(cl, err)
		return false
	}
	return true
}

// JoinRoom subscribes the user's active connection to a conversation.
// An offline user is a no-op.
func (h *Hub) JoinRoom(key, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cl := h.users[userID]
	if cl == nil {
		return
	}
	room := h.rooms[key]
	if room == nil {
		room = make(map[string]*client)
		h.rooms[key] = room
	}
	room[userID] = cl
}

// LeaveRoom drops the user from a conversation room.
func (h *Hub) LeaveRoom(key, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[key]; ok {
		delete(room, userID)
		if len(room) == 0 {
			delete(h.rooms, key)
		}
	}
}

// BroadcastRoom sends one event to every member of a conversation room.
func (h *Hub) BroadcastRoom(key string, event models.ServerEvent) {
	h.mu.RLock()
	members := make([]*client, 0, len(h.rooms[key]))
	for _, cl := range h.rooms[key] {
		members = append(members, cl)
	}
	h.mu.RUnlock()
	if len(members) == 0 {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	for _, cl := range members {
		if err := cl.send(payload); err != nil {
			h.evict(cl, err)
		}
	}
}

func (h *Hub) evict(cl *client, err error) {
	h.log.Warn("websocket write failed",
		zap.String("user_id", cl.info.UserID),
		zap.String("conn_id", cl.info.ConnID),
		zap.Error(err))
	observability.IncWSEvent("ws_error")
	cl.close()
	h.Unregister(cl.info.ConnID)
}

// dropFromRoomsLocked removes the user from every room. Callers hold
// the write lock.
func (h *Hub) dropFromRoomsLocked(userID string) {
	for key, room := range h.rooms {
		if _, ok := room[userID]; !ok {
			continue
		}
		delete(room, userID)
		if len(room) == 0 {
			delete(h.rooms, key)
		}
	}
}
