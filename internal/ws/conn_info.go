package ws

import "time"

// ConnInfo captures handshake metadata for one realtime connection.
type ConnInfo struct {
	ConnID      string
	UserID      string
	Username    string
	IP          string
	RequestID   string
	ConnectedAt time.Time
}
