// Package streak implements the mutual-activity streak state machine
// evaluated per friendship side on every send.
package streak

import (
	"sort"
	"time"

	"messaging-service/internal/models"
)

// ExpiryWindow is how long a streak survives without mutual activity.
const ExpiryWindow = 24 * time.Hour

// Outcome names what a single evaluation did to the streak. It feeds
// logging and domain telemetry on the send path.
type Outcome string

const (
	OutcomeNone      Outcome = "none"
	OutcomeStarted   Outcome = "started"
	OutcomeExtended  Outcome = "extended"
	OutcomeRestarted Outcome = "restarted"
	OutcomeExpired   Outcome = "expired"
)

// Evaluate applies one streak transition to the side's history in place.
// It must run after the triggering message has been recorded, so that
// today's activity record reflects the send being evaluated.
func Evaluate(h *models.MessagingHistory, now time.Time) Outcome {
	today := models.DayKey(now)
	yesterday := models.DayKey(now.AddDate(0, 0, -1))
	s := &h.Streak

	if !bothActive(h.ActivityOn(today)) {
		if s.IsActive && s.LastBothActiveAt != nil && now.Sub(*s.LastBothActiveAt) > ExpiryWindow {
			// Expiry only flips the flag; streakDays and lastBothActiveAt
			// keep their final values until the streak restarts.
			s.IsActive = false
			return OutcomeExpired
		}
		return OutcomeNone
	}

	// A day contributes at most one increment, no matter how many
	// messages are exchanged within it.
	if s.IsActive && s.LastBothActiveAt != nil && models.DayKey(*s.LastBothActiveAt) == today {
		return OutcomeNone
	}

	ts := now
	if !s.IsActive || s.LastBothActiveAt == nil {
		start := now
		s.IsActive = true
		s.StreakDays = 1
		s.StartDate = &start
		s.LastBothActiveAt = &ts
		bumpLongest(h)
		return OutcomeStarted
	}

	if bothActive(h.ActivityOn(yesterday)) || gapDays(*s.LastBothActiveAt, now) <= 1 {
		s.StreakDays++
		s.LastBothActiveAt = &ts
		bumpLongest(h)
		return OutcomeExtended
	}

	start := now
	s.StreakDays = 1
	s.StartDate = &start
	s.LastBothActiveAt = &ts
	bumpLongest(h)
	return OutcomeRestarted
}

// Effective returns the streak as it should be presented right now:
// an active streak past the expiry window reads as inactive even
// before a send-path evaluation has persisted the flip.
func Effective(s models.StreakState, now time.Time) models.StreakState {
	if s.IsActive && s.LastBothActiveAt != nil && now.Sub(*s.LastBothActiveAt) > ExpiryWindow {
		s.IsActive = false
	}
	return s
}

// Replay rebuilds one side's history from the authoritative message
// ledger, re-running the activity and streak transitions in send order.
// The result is deterministic for a given ledger and owner.
func Replay(ownerID string, msgs []models.Message, now time.Time) models.MessagingHistory {
	ordered := make([]models.Message, len(msgs))
	copy(ordered, msgs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SentAt.Before(ordered[j].SentAt)
	})

	var h models.MessagingHistory
	for _, m := range ordered {
		h.RecordMessage(m, m.FromUserID == ownerID)
		Evaluate(&h, m.SentAt)
	}
	// Final pass so a ledger that went quiet yields an expired streak.
	Evaluate(&h, now)
	return h
}

func bothActive(rec *models.DailyActivityRecord) bool {
	return rec != nil && rec.MyMessages > 0 && rec.TheirMessages > 0
}

func gapDays(last, now time.Time) int {
	return int(models.DayStart(now).Sub(models.DayStart(last)).Hours() / 24)
}

func bumpLongest(h *models.MessagingHistory) {
	if h.Streak.StreakDays > h.Stats.LongestStreak {
		h.Stats.LongestStreak = h.Streak.StreakDays
	}
}
