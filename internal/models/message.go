package models

import "time"

// MaxContentLength is the longest accepted message body, in runes.
const MaxContentLength = 2000

// Message is one direct message. A copy is embedded in each participant's
// friendship history; the ledger row is the authoritative copy. Everything
// but ReadAt is fixed at construction.
type Message struct {
	MessageID   string     `db:"message_id" json:"message_id"`
	FromUserID  string     `db:"from_user_id" json:"from_user_id"`
	ToUserID    string     `db:"to_user_id" json:"to_user_id"`
	Content     string     `db:"content" json:"content"`
	SentAt      time.Time  `db:"sent_at" json:"sent_at"`
	DeliveredAt *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
	ReadAt      *time.Time `db:"read_at" json:"read_at,omitempty"`
}

// DisplayStatus is the sender-facing delivery state of a message.
type DisplayStatus string

const (
	StatusSent      DisplayStatus = "sent"
	StatusDelivered DisplayStatus = "delivered"
	StatusRead      DisplayStatus = "read"
)

// Status derives the display status: read wins over delivered wins over sent.
func (m Message) Status() DisplayStatus {
	if m.ReadAt != nil {
		return StatusRead
	}
	if m.DeliveredAt != nil {
		return StatusDelivered
	}
	return StatusSent
}

// AnnotatedMessage is a message plus the display status, which is only
// populated for messages authored by the requesting user.
type AnnotatedMessage struct {
	Message
	Status DisplayStatus `json:"status,omitempty"`
}
