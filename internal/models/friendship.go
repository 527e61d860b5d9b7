package models

import (
	"strings"
	"time"
)

// FriendshipSide is one participant's private view of a friendship. Each
// friendship is stored twice, once per owner, and the two rows are only ever
// written independently.
type FriendshipSide struct {
	OwnerID   string           `db:"owner_id" json:"owner_id"`
	FriendID  string           `db:"friend_id" json:"friend_id"`
	History   MessagingHistory `db:"history" json:"history"`
	Version   int64            `db:"version" json:"-"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// ConversationKey returns the canonical key for an unordered user pair.
func ConversationKey(userA, userB string) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + ":" + userB
}

// SplitConversationKey returns the two participants of a conversation key.
func SplitConversationKey(key string) (string, string) {
	parts := strings.SplitN(key, ":", 2)
	if len(parts) != 2 {
		return key, ""
	}
	return parts[0], parts[1]
}
