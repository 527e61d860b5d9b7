package streak

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messaging-service/internal/models"
)

var seq int

// deliver records one message on alice's side of the alice<->bob
// friendship and runs the streak evaluation, the way the send path does.
func deliver(h *models.MessagingHistory, mine bool, at time.Time) Outcome {
	seq++
	from, to := "bob", "alice"
	if mine {
		from, to = "alice", "bob"
	}
	h.RecordMessage(models.Message{
		MessageID:  fmt.Sprintf("msg-%d", seq),
		FromUserID: from,
		ToUserID:   to,
		Content:    "hey",
		SentAt:     at,
	}, mine)
	return Evaluate(h, at)
}

func TestStreakLifecycle(t *testing.T) {
	dayD := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	var h models.MessagingHistory

	// A sends on day D, no reply yet: nothing starts.
	out := deliver(&h, true, dayD)
	assert.Equal(t, OutcomeNone, out)
	assert.False(t, h.Streak.IsActive)
	assert.Equal(t, 0, h.Streak.StreakDays)

	// B replies the same day: streak starts at 1.
	out = deliver(&h, false, dayD.Add(time.Hour))
	assert.Equal(t, OutcomeStarted, out)
	assert.True(t, h.Streak.IsActive)
	assert.Equal(t, 1, h.Streak.StreakDays)
	require.NotNil(t, h.Streak.StartDate)
	assert.Equal(t, "2025-05-01", models.DayKey(*h.Streak.StartDate))

	// Both message again on D+1: extends to 2.
	dayD1 := dayD.AddDate(0, 0, 1)
	out = deliver(&h, true, dayD1)
	assert.Equal(t, OutcomeNone, out)
	out = deliver(&h, false, dayD1.Add(30*time.Minute))
	assert.Equal(t, OutcomeExtended, out)
	assert.Equal(t, 2, h.Streak.StreakDays)

	// Silence on D+2, then both message on D+3: back to 1.
	dayD3 := dayD.AddDate(0, 0, 3)
	out = deliver(&h, true, dayD3)
	assert.Equal(t, OutcomeExpired, out)
	assert.False(t, h.Streak.IsActive)
	assert.Equal(t, 2, h.Streak.StreakDays, "expiry keeps the last count")

	out = deliver(&h, false, dayD3.Add(time.Hour))
	assert.Equal(t, OutcomeStarted, out)
	assert.True(t, h.Streak.IsActive)
	assert.Equal(t, 1, h.Streak.StreakDays)
	assert.Equal(t, 2, h.Stats.LongestStreak)
}

func TestStreakSameDayEvaluationsDoNotInflate(t *testing.T) {
	day := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	var h models.MessagingHistory

	deliver(&h, true, day)
	out := deliver(&h, false, day.Add(time.Minute))
	require.Equal(t, OutcomeStarted, out)

	for i := 0; i < 5; i++ {
		out = deliver(&h, i%2 == 0, day.Add(time.Duration(i+2)*time.Minute))
		assert.Equal(t, OutcomeNone, out)
	}
	assert.Equal(t, 1, h.Streak.StreakDays)
}

func TestStreakExpiryLeavesCountAndTimestamp(t *testing.T) {
	day := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	var h models.MessagingHistory

	deliver(&h, true, day)
	deliver(&h, false, day.Add(time.Minute))
	lastActive := *h.Streak.LastBothActiveAt

	// A one-sided send 25h later trips the expiry.
	out := deliver(&h, true, day.Add(25*time.Hour))
	assert.Equal(t, OutcomeExpired, out)
	assert.False(t, h.Streak.IsActive)
	assert.Equal(t, 1, h.Streak.StreakDays)
	require.NotNil(t, h.Streak.LastBothActiveAt)
	assert.Equal(t, lastActive, *h.Streak.LastBothActiveAt)

	// Further one-sided sends change nothing.
	out = deliver(&h, true, day.Add(26*time.Hour))
	assert.Equal(t, OutcomeNone, out)
}

func TestStreakRestartOnWideGapWhileActive(t *testing.T) {
	// Exercises the gap branch directly: the state is still marked
	// active but the last mutual day is three days back.
	day := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	var h models.MessagingHistory

	deliver(&h, true, day)
	deliver(&h, false, day.Add(time.Minute))
	require.Equal(t, 1, h.Streak.StreakDays)

	later := day.AddDate(0, 0, 3)
	h.RecordMessage(models.Message{MessageID: "x1", FromUserID: "alice", ToUserID: "bob", Content: "hey", SentAt: later}, true)
	h.RecordMessage(models.Message{MessageID: "x2", FromUserID: "bob", ToUserID: "alice", Content: "hey", SentAt: later.Add(time.Second)}, false)

	out := Evaluate(&h, later.Add(time.Minute))
	assert.Equal(t, OutcomeRestarted, out)
	assert.Equal(t, 1, h.Streak.StreakDays)
	require.NotNil(t, h.Streak.StartDate)
	assert.Equal(t, models.DayKey(later), models.DayKey(*h.Streak.StartDate))
}

func TestEffectiveDerivesExpiryWithoutMutation(t *testing.T) {
	day := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	var h models.MessagingHistory
	deliver(&h, true, day)
	deliver(&h, false, day.Add(time.Minute))

	fresh := Effective(h.Streak, day.Add(23*time.Hour))
	assert.True(t, fresh.IsActive)

	stale := Effective(h.Streak, day.Add(30*time.Hour))
	assert.False(t, stale.IsActive)
	assert.Equal(t, 1, stale.StreakDays)

	// the stored state is untouched
	assert.True(t, h.Streak.IsActive)
}

func TestReplayMatchesIncrementalEvaluation(t *testing.T) {
	day := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	var msgs []models.Message
	add := func(from, to string, at time.Time) {
		msgs = append(msgs, models.Message{
			MessageID:  fmt.Sprintf("r-%d", len(msgs)),
			FromUserID: from,
			ToUserID:   to,
			Content:    "hey",
			SentAt:     at,
		})
	}
	add("alice", "bob", day)
	add("bob", "alice", day.Add(time.Hour))
	add("alice", "bob", day.AddDate(0, 0, 1))
	add("bob", "alice", day.AddDate(0, 0, 1).Add(2*time.Hour))
	add("bob", "alice", day.AddDate(0, 0, 4))
	add("alice", "bob", day.AddDate(0, 0, 4).Add(time.Minute))

	now := day.AddDate(0, 0, 4).Add(2 * time.Hour)

	var incremental models.MessagingHistory
	for _, m := range msgs {
		incremental.RecordMessage(m, m.FromUserID == "alice")
		Evaluate(&incremental, m.SentAt)
	}
	Evaluate(&incremental, now)

	replayed := Replay("alice", msgs, now)
	assert.Equal(t, incremental.Streak, replayed.Streak)
	assert.Equal(t, incremental.Stats, replayed.Stats)
	assert.Equal(t, incremental.DailyActivity, replayed.DailyActivity)

	// order of the ledger rows must not matter
	shuffled := []models.Message{msgs[3], msgs[5], msgs[0], msgs[4], msgs[1], msgs[2]}
	again := Replay("alice", shuffled, now)
	assert.Equal(t, replayed.Streak, again.Streak)
	assert.Equal(t, replayed.Stats, again.Stats)
}

func TestReplayExpiresQuietLedger(t *testing.T) {
	day := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	msgs := []models.Message{
		{MessageID: "q1", FromUserID: "alice", ToUserID: "bob", Content: "hey", SentAt: day},
		{MessageID: "q2", FromUserID: "bob", ToUserID: "alice", Content: "hey", SentAt: day.Add(time.Minute)},
	}

	h := Replay("alice", msgs, day.AddDate(0, 0, 3))
	assert.False(t, h.Streak.IsActive)
	assert.Equal(t, 1, h.Streak.StreakDays)
	assert.Equal(t, 1, h.Stats.LongestStreak)
	assert.Equal(t, 2, h.Stats.TotalMessages)
}
