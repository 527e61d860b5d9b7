package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// MaxRecentMessages bounds the per-side message ring.
	MaxRecentMessages = 50
	// MaxActivityDays bounds the per-side daily activity window.
	MaxActivityDays = 365
	// DayKeyLayout formats a UTC calendar day key.
	DayKeyLayout = "2006-01-02"
)

// DayKey returns the UTC calendar day key for t.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// DayStart returns midnight UTC of the calendar day containing t.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DailyActivityRecord counts one day's traffic on one friendship side.
// TotalMessages is always MyMessages + TheirMessages.
type DailyActivityRecord struct {
	Date           string    `json:"date"`
	MyMessages     int       `json:"my_messages"`
	TheirMessages  int       `json:"their_messages"`
	TotalMessages  int       `json:"total_messages"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// StreakState tracks the mutual-activity streak for one friendship side.
// Expiry flips IsActive without touching StreakDays or LastBothActiveAt;
// the stale counter is kept for display until the streak is recomputed.
type StreakState struct {
	IsActive         bool       `json:"is_active"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	LastBothActiveAt *time.Time `json:"last_both_active_at,omitempty"`
	StreakDays       int        `json:"streak_days"`
}

// ConversationStats aggregates lifetime counters for one friendship side.
type ConversationStats struct {
	TotalMessages       int        `json:"total_messages"`
	FirstConversationAt *time.Time `json:"first_conversation_at,omitempty"`
	LastConversationAt  *time.Time `json:"last_conversation_at,omitempty"`
	LongestStreak       int        `json:"longest_streak"`
}

// MessagingHistory is the per-side conversation document. DailyActivity is
// kept ascending by date with at most one record per day; RecentMessages is
// newest-first.
type MessagingHistory struct {
	DailyActivity  []DailyActivityRecord `json:"daily_activity,omitempty"`
	Streak         StreakState           `json:"streak"`
	RecentMessages []Message             `json:"recent_messages,omitempty"`
	Stats          ConversationStats     `json:"stats"`
}

// Value marshals the history for JSONB storage.
func (h MessagingHistory) Value() (driver.Value, error) {
	return json.Marshal(h)
}

// Scan unmarshals the history from a JSONB column.
func (h *MessagingHistory) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	case nil:
		*h = MessagingHistory{}
		return nil
	default:
		return fmt.Errorf("unsupported history column type %T", src)
	}
}

// RecordMessage appends msg to the ring, bumps the day's activity record and
// updates lifetime stats. mine marks messages authored by the side's owner.
func (h *MessagingHistory) RecordMessage(msg Message, mine bool) {
	h.RecentMessages = append([]Message{msg}, h.RecentMessages...)
	if len(h.RecentMessages) > MaxRecentMessages {
		h.RecentMessages = h.RecentMessages[:MaxRecentMessages]
	}

	h.bumpActivity(DayKey(msg.SentAt), mine, msg.SentAt)

	h.Stats.TotalMessages++
	sentAt := msg.SentAt
	if h.Stats.FirstConversationAt == nil {
		h.Stats.FirstConversationAt = &sentAt
	}
	h.Stats.LastConversationAt = &sentAt
}

func (h *MessagingHistory) bumpActivity(day string, mine bool, at time.Time) {
	rec := h.ActivityOn(day)
	if rec == nil {
		h.DailyActivity = append(h.DailyActivity, DailyActivityRecord{Date: day})
		// Day keys are lexically ordered; new days land at the end except
		// during a replay, so keep the slice sorted in place.
		for i := len(h.DailyActivity) - 1; i > 0 && h.DailyActivity[i].Date < h.DailyActivity[i-1].Date; i-- {
			h.DailyActivity[i], h.DailyActivity[i-1] = h.DailyActivity[i-1], h.DailyActivity[i]
		}
		rec = h.ActivityOn(day)
	}

	if mine {
		rec.MyMessages++
	} else {
		rec.TheirMessages++
	}
	rec.TotalMessages = rec.MyMessages + rec.TheirMessages
	if at.After(rec.LastActivityAt) {
		rec.LastActivityAt = at
	}

	if len(h.DailyActivity) > MaxActivityDays {
		h.DailyActivity = h.DailyActivity[len(h.DailyActivity)-MaxActivityDays:]
	}
}

// ActivityOn returns the record for the given day key, or nil.
func (h *MessagingHistory) ActivityOn(day string) *DailyActivityRecord {
	for i := range h.DailyActivity {
		if h.DailyActivity[i].Date == day {
			return &h.DailyActivity[i]
		}
	}
	return nil
}

// MarkReadFrom sets ReadAt on unread ring messages authored by authorID,
// optionally restricted to ids. Already-read messages are never touched, so
// repeated calls return nothing. Returns the ids newly marked.
func (h *MessagingHistory) MarkReadFrom(authorID string, ids []string, at time.Time) []string {
	var filter map[string]struct{}
	if len(ids) > 0 {
		filter = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			filter[id] = struct{}{}
		}
	}

	var marked []string
	for i := range h.RecentMessages {
		msg := &h.RecentMessages[i]
		if msg.FromUserID != authorID || msg.ReadAt != nil {
			continue
		}
		if filter != nil {
			if _, ok := filter[msg.MessageID]; !ok {
				continue
			}
		}
		readAt := at
		msg.ReadAt = &readAt
		marked = append(marked, msg.MessageID)
	}
	return marked
}

// LastMessage returns the newest ring message, or nil for an empty history.
func (h *MessagingHistory) LastMessage() *Message {
	if len(h.RecentMessages) == 0 {
		return nil
	}
	return &h.RecentMessages[0]
}
