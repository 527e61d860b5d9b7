package ws

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"messaging-service/internal/models"
	"messaging-service/internal/observability"
)

// DefaultTypingTTL caps how long a typing indicator survives without a
// refresh from the client.
const DefaultTypingTTL = 10 * time.Second

// broadcaster is the hub surface the typing coordinator fans out on.
type broadcaster interface {
	BroadcastRoom(key string, event models.ServerEvent)
}

type typingKey struct {
	userID          string
	conversationKey string
}

type typingSession struct {
	timer    *time.Timer
	username string
}

// TypingCoordinator owns ephemeral typing state. Every indicator is
// backed by a TTL timer so a vanished client cannot leave its friend
// "typing" forever.
type TypingCoordinator struct {
	hub broadcaster
	ttl time.Duration
	log *zap.Logger

	mu       sync.Mutex
	sessions map[typingKey]*typingSession
}

// NewTypingCoordinator creates a coordinator broadcasting on hub with
// the given indicator TTL.
func NewTypingCoordinator(hub broadcaster, ttl time.Duration, log *zap.Logger) *TypingCoordinator {
	if ttl <= 0 {
		ttl = DefaultTypingTTL
	}
	return &TypingCoordinator{
		hub:      hub,
		ttl:      ttl,
		log:      log,
		sessions: make(map[typingKey]*typingSession),
	}
}

// Start arms, or re-arms, the typing indicator for one user in one
// conversation and tells the room.
func (tc *TypingCoordinator) Start(userID, username, conversationKey string) {
	key := typingKey{userID: userID, conversationKey: conversationKey}
	session := &typingSession{username: username}
	session.timer = time.AfterFunc(tc.ttl, func() { tc.expire(key, session) })

	tc.mu.Lock()
	if prev, ok := tc.sessions[key]; ok {
		prev.timer.Stop()
	} else {
		observability.IncTypingActive()
	}
	tc.sessions[key] = session
	tc.mu.Unlock()

	tc.broadcast(conversationKey, username, true)
}

// Stop clears the indicator ahead of its expiry.
func (tc *TypingCoordinator) Stop(userID, conversationKey string) {
	key := typingKey{userID: userID, conversationKey: conversationKey}

	tc.mu.Lock()
	session, ok := tc.sessions[key]
	if ok {
		session.timer.Stop()
		delete(tc.sessions, key)
	}
	tc.mu.Unlock()
	if !ok {
		return
	}

	observability.DecTypingActive()
	tc.broadcast(conversationKey, session.username, false)
}

// ClearUser stops every indicator the user holds, one false broadcast
// per conversation. It runs on disconnect.
func (tc *TypingCoordinator) ClearUser(userID string) {
	type cleared struct {
		conversationKey string
		username        string
	}

	tc.mu.Lock()
	var dropped []cleared
	for key, session := range tc.sessions {
		if key.userID != userID {
			continue
		}
		session.timer.Stop()
		delete(tc.sessions, key)
		dropped = append(dropped, cleared{key.conversationKey, session.username})
	}
	tc.mu.Unlock()

	for _, c := range dropped {
		observability.DecTypingActive()
		tc.broadcast(c.conversationKey, c.username, false)
	}
}

// expire runs on the timer goroutine. The session pointer guards
// against a refresh racing the expiry: only the timer that still owns
// the key may clear it.
func (tc *TypingCoordinator) expire(key typingKey, session *typingSession) {
	defer func() {
		if r := recover(); r != nil {
			tc.log.Error("typing expiry panicked",
				zap.String("user_id", key.userID),
				zap.String("conversation_key", key.conversationKey),
				zap.Any("panic", r))
			tc.mu.Lock()
			if cur, ok := tc.sessions[key]; ok && cur == session {
				delete(tc.sessions, key)
				observability.DecTypingActive()
			}
			tc.mu.Unlock()
		}
	}()

	tc.mu.Lock()
	cur, ok := tc.sessions[key]
	if !ok || cur != session {
		tc.mu.Unlock()
		return
	}
	delete(tc.sessions, key)
	tc.mu.Unlock()

	observability.DecTypingActive()
	tc.broadcast(key.conversationKey, session.username, false)
}

func (tc *TypingCoordinator) broadcast(conversationKey, username string, isTyping bool) {
	tc.hub.BroadcastRoom(conversationKey, models.ServerEvent{
		Event: models.EventTypingUpdate,
		Typing: &models.TypingUpdate{
			ConversationKey: conversationKey,
			Username:        username,
			IsTyping:        isTyping,
		},
	})
	observability.IncWSEvent(models.EventTypingUpdate)
}
