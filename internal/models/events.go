package models

import "time"

// Client event names accepted on the realtime channel.
const (
	EventTypingStart       = "typing:start"
	EventTypingStop        = "typing:stop"
	EventMessageRead       = "message:read"
	EventConversationJoin  = "conversation:join"
	EventConversationLeave = "conversation:leave"
)

// Server event names pushed on the realtime channel.
const (
	EventTypingUpdate = "typing:update"
	EventMessageNew   = "message:new"
	EventReadReceipt  = "message:read_receipt"
	EventError        = "error"
)

// ClientEvent is an inbound realtime frame.
type ClientEvent struct {
	Event          string   `json:"event"`
	FriendUsername string   `json:"friend_username,omitempty"`
	MessageID      string   `json:"message_id,omitempty"`
	MessageIDs     []string `json:"message_ids,omitempty"`
}

// TypingUpdate tells a conversation room that a participant started or
// stopped typing.
type TypingUpdate struct {
	ConversationKey string `json:"conversation_key"`
	Username        string `json:"username"`
	IsTyping        bool   `json:"is_typing"`
}

// MessagePush delivers a freshly stored message to the recipient.
type MessagePush struct {
	From    string  `json:"from"`
	Message Message `json:"message"`
}

// ReadReceipt tells a sender that one of their messages was read.
type ReadReceipt struct {
	MessageID string    `json:"message_id"`
	ReadAt    time.Time `json:"read_at"`
	ReadBy    string    `json:"read_by"`
}

// ServerEvent is an outbound realtime frame.
type ServerEvent struct {
	Event   string        `json:"event"`
	Typing  *TypingUpdate `json:"typing,omitempty"`
	Message *MessagePush  `json:"message,omitempty"`
	Receipt *ReadReceipt  `json:"receipt,omitempty"`
	Error   string        `json:"error,omitempty"`
}
