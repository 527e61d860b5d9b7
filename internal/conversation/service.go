// Package conversation orchestrates message persistence, activity
// tracking and streak evaluation for friend-to-friend messaging.
package conversation

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/heatmap"
	"messaging-service/internal/identity"
	"messaging-service/internal/models"
	"messaging-service/internal/observability"
	"messaging-service/internal/repositories"
	"messaging-service/internal/streak"
	"messaging-service/internal/telemetry"
)

// ActiveWindow bounds how far back GetActiveConversations looks.
const ActiveWindow = 7 * 24 * time.Hour

// errNothingToMark aborts a read-receipt mutation that would not
// change the side document.
var errNothingToMark = errors.New("nothing to mark")

// Directory resolves accounts and friendships.
type Directory interface {
	GetUserByUsername(ctx context.Context, username string) (identity.User, error)
	AreFriends(ctx context.Context, userID, friendID string) (bool, error)
	BulkUsers(ctx context.Context, ids []string) (map[string]identity.User, error)
}

// Presence answers whether a user has a live realtime connection.
type Presence interface {
	IsOnline(userID string) bool
}

// Pusher delivers realtime frames to connected users, best-effort.
type Pusher interface {
	PushNewMessage(toUserID, fromUsername string, msg models.Message)
	PushReadReceipts(toUserID, readBy string, ids []string, readAt time.Time)
}

// Service is the synchronous entry point for every conversation
// operation.
type Service struct {
	friendships repositories.FriendshipRepository
	ledger      repositories.LedgerRepository
	directory   Directory
	presence    Presence
	pusher      Pusher
	emitter     *telemetry.Emitter
	log         *zap.Logger
	now         func() time.Time
}

// NewService builds a Service.
func NewService(
	friendships repositories.FriendshipRepository,
	ledger repositories.LedgerRepository,
	directory Directory,
	presence Presence,
	pusher Pusher,
	emitter *telemetry.Emitter,
	log *zap.Logger,
) *Service {
	return &Service{
		friendships: friendships,
		ledger:      ledger,
		directory:   directory,
		presence:    presence,
		pusher:      pusher,
		emitter:     emitter,
		log:         log,
		now:         time.Now,
	}
}

// SendMessage validates, persists and fans out one direct message.
//
// The ledger row is authoritative and written first; the two
// friendship-side documents are then updated independently. A failed
// recipient-side write degrades to partial success: the send is
// acknowledged and the gap is left to reconciliation.
func (s *Service) SendMessage(ctx context.Context, sender identity.Identity, friendUsername, content string) (models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Message{}, apperrors.Validation("message content is empty")
	}
	if utf8.RuneCountInString(content) > models.MaxContentLength {
		return models.Message{}, apperrors.Validation("message content exceeds limit")
	}

	friend, err := s.resolveFriend(ctx, sender, friendUsername)
	if err != nil {
		return models.Message{}, err
	}

	now := s.now().UTC()
	msg := models.Message{
		MessageID:  uuid.NewString(),
		FromUserID: sender.UserID,
		ToUserID:   friend.UserID,
		Content:    content,
		SentAt:     now,
	}
	// Delivery is decided once, at send time: the recipient either has
	// a live connection now or will fetch the message later.
	if s.presence != nil && s.presence.IsOnline(friend.UserID) {
		delivered := now
		msg.DeliveredAt = &delivered
	}

	convKey := models.ConversationKey(sender.UserID, friend.UserID)
	if err := s.ledger.Insert(ctx, convKey, msg); err != nil {
		return models.Message{}, apperrors.Persistence("store message", err)
	}

	var outcome streak.Outcome
	_, err = s.friendships.Mutate(ctx, sender.UserID, friend.UserID, func(h *models.MessagingHistory) error {
		h.RecordMessage(msg, true)
		outcome = streak.Evaluate(h, now)
		return nil
	})
	if err != nil {
		return models.Message{}, apperrors.Persistence("record message for sender", err)
	}
	observability.IncStreakTransition(string(outcome))
	if outcome != streak.OutcomeNone {
		s.emitter.Emit(ctx, telemetry.EventStreakChanged, requestID(ctx), &sender.UserID, map[string]any{
			"conversation_key": convKey,
			"outcome":          string(outcome),
		})
	}

	_, err = s.friendships.Mutate(ctx, friend.UserID, sender.UserID, func(h *models.MessagingHistory) error {
		h.RecordMessage(msg, false)
		streak.Evaluate(h, now)
		return nil
	})
	if err != nil {
		// The sender's copy and the ledger row exist; surface the gap
		// instead of failing a message the sender already sees.
		s.log.Error("recipient side write failed",
			zap.String("conversation_key", convKey),
			zap.String("message_id", msg.MessageID),
			zap.Error(err))
		observability.IncSideWriteFailure("recipient")
		s.emitter.Emit(ctx, telemetry.EventSideWriteFailed, requestID(ctx), &sender.UserID, map[string]any{
			"conversation_key": convKey,
			"message_id":       msg.MessageID,
		})
	}

	observability.IncMessageSent()
	s.emitter.Emit(ctx, telemetry.EventMessageSent, requestID(ctx), &sender.UserID, map[string]any{
		"conversation_key": convKey,
		"message_id":       msg.MessageID,
		"to_user_id":       friend.UserID,
	})

	if s.pusher != nil {
		s.pusher.PushNewMessage(friend.UserID, sender.Username, msg)
	}

	return msg, nil
}

// MarkRead stamps read receipts on the friend's messages, on both side
// documents and the ledger. It returns how many messages were newly
// marked; repeating the call returns zero.
func (s *Service) MarkRead(ctx context.Context, reader identity.Identity, friendUsername string, messageIDs []string) (int, error) {
	friend, err := s.resolveFriend(ctx, reader, friendUsername)
	if err != nil {
		return 0, err
	}

	readAt := s.now().UTC()
	var newlyRead []string
	_, err = s.friendships.Mutate(ctx, reader.UserID, friend.UserID, func(h *models.MessagingHistory) error {
		newlyRead = h.MarkReadFrom(friend.UserID, messageIDs, readAt)
		if len(newlyRead) == 0 {
			// Nothing changed; abort so repeat calls never bump the row.
			return errNothingToMark
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errNothingToMark) {
			return 0, nil
		}
		return 0, apperrors.Persistence("mark read for reader", err)
	}

	// The author's copies carry the same ids; their side is where the
	// "read" status the author sees comes from.
	_, err = s.friendships.Mutate(ctx, friend.UserID, reader.UserID, func(h *models.MessagingHistory) error {
		h.MarkReadFrom(friend.UserID, newlyRead, readAt)
		return nil
	})
	if err != nil {
		s.log.Error("author side read update failed",
			zap.String("reader_id", reader.UserID),
			zap.String("author_id", friend.UserID),
			zap.Error(err))
		observability.IncSideWriteFailure("author")
	}

	if err := s.ledger.MarkRead(ctx, newlyRead, readAt); err != nil {
		s.log.Error("ledger read update failed", zap.Error(err))
	}

	s.emitter.Emit(ctx, telemetry.EventMessageRead, requestID(ctx), &reader.UserID, map[string]any{
		"author_id": friend.UserID,
		"count":     len(newlyRead),
	})

	if s.pusher != nil {
		s.pusher.PushReadReceipts(friend.UserID, reader.Username, newlyRead, readAt)
	}

	return len(newlyRead), nil
}

// ConversationView is one side's view of a conversation.
type ConversationView struct {
	Friend   identity.User             `json:"friend"`
	Messages []models.AnnotatedMessage `json:"messages"`
	Streak   models.StreakState        `json:"streak"`
	Stats    models.ConversationStats  `json:"stats"`
	HeatMap  []heatmap.Cell            `json:"heat_map"`
}

// GetConversation returns up to limit most recent messages with
// sender-facing statuses, plus streak, stats and the activity heat map.
func (s *Service) GetConversation(ctx context.Context, requester identity.Identity, friendUsername string, limit int) (ConversationView, error) {
	friend, err := s.resolveFriend(ctx, requester, friendUsername)
	if err != nil {
		return ConversationView{}, err
	}

	if limit <= 0 || limit > models.MaxRecentMessages {
		limit = models.MaxRecentMessages
	}

	now := s.now().UTC()
	history, err := s.sideHistory(ctx, requester.UserID, friend.UserID)
	if err != nil {
		return ConversationView{}, err
	}

	// The ring is newest-first; the view keeps that order.
	msgs := history.RecentMessages
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	annotated := make([]models.AnnotatedMessage, 0, len(msgs))
	for _, m := range msgs {
		am := models.AnnotatedMessage{Message: m}
		if m.FromUserID == requester.UserID {
			am.Status = m.Status()
		}
		annotated = append(annotated, am)
	}

	return ConversationView{
		Friend:   friend,
		Messages: annotated,
		Streak:   streak.Effective(history.Streak, now),
		Stats:    history.Stats,
		HeatMap:  heatmap.Build(history.DailyActivity, now),
	}, nil
}

// FriendSummary is one row of the conversation and streak lists.
type FriendSummary struct {
	Friend      identity.User      `json:"friend"`
	LastMessage *models.Message    `json:"last_message,omitempty"`
	Streak      models.StreakState `json:"streak"`
}

// GetActiveConversations lists friendships with activity inside
// ActiveWindow, most recent first.
func (s *Service) GetActiveConversations(ctx context.Context, requester identity.Identity) ([]FriendSummary, error) {
	now := s.now().UTC()
	sides, err := s.friendships.ListActive(ctx, requester.UserID, now.Add(-ActiveWindow))
	if err != nil {
		return nil, apperrors.Persistence("list active conversations", err)
	}
	return s.summarize(ctx, sides, now)
}

// GetActiveStreaks lists friendships whose streak is alive right now,
// longest streak first.
func (s *Service) GetActiveStreaks(ctx context.Context, requester identity.Identity) ([]FriendSummary, error) {
	now := s.now().UTC()
	sides, err := s.friendships.ListStreaks(ctx, requester.UserID)
	if err != nil {
		return nil, apperrors.Persistence("list streaks", err)
	}

	// The streak_active column is only settled by send-path writes, so
	// drop rows whose streak has expired since the last send.
	alive := sides[:0]
	for _, side := range sides {
		if streak.Effective(side.History.Streak, now).IsActive {
			alive = append(alive, side)
		}
	}
	return s.summarize(ctx, alive, now)
}

// HeatMapView pairs the year heat map with streak and stats.
type HeatMapView struct {
	Friend  identity.User            `json:"friend"`
	HeatMap []heatmap.Cell           `json:"heat_map"`
	Streak  models.StreakState       `json:"streak"`
	Stats   models.ConversationStats `json:"stats"`
}

// GetHeatMap returns the 365-day activity heat map for one friendship.
func (s *Service) GetHeatMap(ctx context.Context, requester identity.Identity, friendUsername string) (HeatMapView, error) {
	friend, err := s.resolveFriend(ctx, requester, friendUsername)
	if err != nil {
		return HeatMapView{}, err
	}

	now := s.now().UTC()
	history, err := s.sideHistory(ctx, requester.UserID, friend.UserID)
	if err != nil {
		return HeatMapView{}, err
	}

	return HeatMapView{
		Friend:  friend,
		HeatMap: heatmap.Build(history.DailyActivity, now),
		Streak:  streak.Effective(history.Streak, now),
		Stats:   history.Stats,
	}, nil
}

// StatsView pairs conversation stats with the current streak.
type StatsView struct {
	Friend identity.User            `json:"friend"`
	Stats  models.ConversationStats `json:"stats"`
	Streak models.StreakState       `json:"streak"`
}

// GetStats returns lifetime stats for one friendship.
func (s *Service) GetStats(ctx context.Context, requester identity.Identity, friendUsername string) (StatsView, error) {
	friend, err := s.resolveFriend(ctx, requester, friendUsername)
	if err != nil {
		return StatsView{}, err
	}

	now := s.now().UTC()
	history, err := s.sideHistory(ctx, requester.UserID, friend.UserID)
	if err != nil {
		return StatsView{}, err
	}

	return StatsView{
		Friend: friend,
		Stats:  history.Stats,
		Streak: streak.Effective(history.Streak, now),
	}, nil
}

// ReconcileReport describes a ledger replay over one friendship.
type ReconcileReport struct {
	ConversationKey string                        `json:"conversation_key"`
	LedgerMessages  int                           `json:"ledger_messages"`
	Sides           map[string]models.StreakState `json:"sides"`
}

// Reconcile rebuilds both side documents of one friendship from the
// message ledger. It repairs the divergence left behind by partial
// send-path failures.
func (s *Service) Reconcile(ctx context.Context, requester identity.Identity, friendUsername string) (ReconcileReport, error) {
	friend, err := s.resolveFriend(ctx, requester, friendUsername)
	if err != nil {
		return ReconcileReport{}, err
	}

	convKey := models.ConversationKey(requester.UserID, friend.UserID)
	msgs, err := s.ledger.ListConversation(ctx, convKey)
	if err != nil {
		return ReconcileReport{}, apperrors.Persistence("load ledger", err)
	}

	now := s.now().UTC()
	report := ReconcileReport{
		ConversationKey: convKey,
		LedgerMessages:  len(msgs),
		Sides:           make(map[string]models.StreakState, 2),
	}

	for _, ownerID := range []string{requester.UserID, friend.UserID} {
		rebuilt := streak.Replay(ownerID, msgs, now)
		_, err := s.friendships.Mutate(ctx, ownerID, otherOf(ownerID, requester.UserID, friend.UserID), func(h *models.MessagingHistory) error {
			*h = rebuilt
			return nil
		})
		if err != nil {
			return ReconcileReport{}, apperrors.Persistence("write rebuilt history", err)
		}
		report.Sides[ownerID] = rebuilt.Streak
	}

	s.emitter.Emit(ctx, telemetry.EventHistoryRebuilt, requestID(ctx), &requester.UserID, report)
	s.log.Info("friendship histories rebuilt from ledger",
		zap.String("conversation_key", convKey),
		zap.Int("ledger_messages", len(msgs)))
	return report, nil
}

// resolveFriend maps a username to a directory entry and enforces the
// friendship requirement shared by every conversation operation.
func (s *Service) resolveFriend(ctx context.Context, requester identity.Identity, friendUsername string) (identity.User, error) {
	friendUsername = strings.TrimSpace(friendUsername)
	if friendUsername == "" {
		return identity.User{}, apperrors.Validation("friend username is empty")
	}
	if friendUsername == requester.Username {
		return identity.User{}, apperrors.Validation("cannot message yourself")
	}

	friend, err := s.directory.GetUserByUsername(ctx, friendUsername)
	if err != nil {
		return identity.User{}, err
	}

	ok, err := s.directory.AreFriends(ctx, requester.UserID, friend.UserID)
	if err != nil {
		return identity.User{}, err
	}
	if !ok {
		return identity.User{}, apperrors.NotFriends("users are not friends")
	}
	return friend, nil
}

func (s *Service) sideHistory(ctx context.Context, ownerID, friendID string) (models.MessagingHistory, error) {
	side, err := s.friendships.Get(ctx, ownerID, friendID)
	if err != nil {
		if errors.Is(err, repositories.ErrSideNotFound) {
			return models.MessagingHistory{}, nil
		}
		return models.MessagingHistory{}, apperrors.Persistence("load friendship side", err)
	}
	return side.History, nil
}

func (s *Service) summarize(ctx context.Context, sides []models.FriendshipSide, now time.Time) ([]FriendSummary, error) {
	ids := make([]string, 0, len(sides))
	for _, side := range sides {
		ids = append(ids, side.FriendID)
	}
	users, err := s.directory.BulkUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]FriendSummary, 0, len(sides))
	for _, side := range sides {
		friend, ok := users[side.FriendID]
		if !ok {
			friend = identity.User{UserID: side.FriendID, Username: side.FriendID}
		}
		summaries = append(summaries, FriendSummary{
			Friend:      friend,
			LastMessage: side.History.LastMessage(),
			Streak:      streak.Effective(side.History.Streak, now),
		})
	}
	return summaries, nil
}

func otherOf(ownerID, a, b string) string {
	if ownerID == a {
		return b
	}
	return a
}

type requestIDKey struct{}

// WithRequestID threads the inbound request id through to telemetry.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
