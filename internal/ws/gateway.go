package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/conversation"
	"messaging-service/internal/identity"
	"messaging-service/internal/models"
	"messaging-service/internal/observability"
	"messaging-service/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Conversations is the slice of the message service the gateway drives
// from inbound frames.
type Conversations interface {
	MarkRead(ctx context.Context, reader identity.Identity, friendUsername string, messageIDs []string) (int, error)
}

// Gateway owns the realtime endpoint: handshake auth, the
// per-connection read loop and its cleanup.
type Gateway struct {
	hub           *Hub
	typing        *TypingCoordinator
	verifier      identity.Verifier
	directory     conversation.Directory
	conversations Conversations
	emitter       *telemetry.Emitter
	log           *zap.Logger
}

// NewGateway constructs a Gateway.
func NewGateway(
	hub *Hub,
	typing *TypingCoordinator,
	verifier identity.Verifier,
	directory conversation.Directory,
	conversations Conversations,
	emitter *telemetry.Emitter,
	log *zap.Logger,
) *Gateway {
	return &Gateway{
		hub:           hub,
		typing:        typing,
		verifier:      verifier,
		directory:     directory,
		conversations: conversations,
		emitter:       emitter,
		log:           log,
	}
}

// Handle upgrades the connection and registers the client.
func (g *Gateway) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("messaging-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	id, err := g.verifier.Verify(ctx, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      uuid.NewString(),
		UserID:      id.UserID,
		Username:    id.Username,
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		ConnectedAt: time.Now(),
	}
	g.hub.Register(id.UserID, conn, info)

	observability.IncWSEvent("ws_connect")
	g.emitter.Emit(ctx, telemetry.EventWSConnect, info.RequestID, &info.UserID, map[string]any{
		"conn_id": info.ConnID,
		"ip":      info.IP,
	})
	g.log.Info("websocket connected",
		zap.String("user_id", id.UserID),
		zap.String("conn_id", info.ConnID))

	go g.readLoop(ctx, conn, id, info)
}

// bearerToken pulls the token from the Authorization header, falling
// back to the token query parameter browsers use for websockets.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	return c.Query("token")
}

func (g *Gateway) readLoop(ctx context.Context, conn *websocket.Conn, id identity.Identity, info ConnInfo) {
	defer g.teardown(ctx, conn, info)

	// Friend lookups are cached for the life of the connection.
	friends := make(map[string]identity.User)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
			}
			return
		}

		var ev models.ClientEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			g.sendError(id.UserID, "malformed event")
			continue
		}
		g.dispatch(ctx, id, friends, ev)
	}
}

func (g *Gateway) dispatch(ctx context.Context, id identity.Identity, friends map[string]identity.User, ev models.ClientEvent) {
	switch ev.Event {
	case models.EventTypingStart:
		friend, err := g.friend(ctx, id, friends, ev.FriendUsername)
		if err != nil {
			g.sendError(id.UserID, clientMessage(err))
			return
		}
		g.typing.Start(id.UserID, id.Username, models.ConversationKey(id.UserID, friend.UserID))

	case models.EventTypingStop:
		friend, err := g.friend(ctx, id, friends, ev.FriendUsername)
		if err != nil {
			g.sendError(id.UserID, clientMessage(err))
			return
		}
		g.typing.Stop(id.UserID, models.ConversationKey(id.UserID, friend.UserID))

	case models.EventMessageRead:
		ids := ev.MessageIDs
		if ev.MessageID != "" {
			ids = append(ids, ev.MessageID)
		}
		if _, err := g.conversations.MarkRead(ctx, id, ev.FriendUsername, ids); err != nil {
			g.sendError(id.UserID, clientMessage(err))
			return
		}
		observability.IncWSEvent(models.EventMessageRead)

	case models.EventConversationJoin:
		friend, err := g.friend(ctx, id, friends, ev.FriendUsername)
		if err != nil {
			g.sendError(id.UserID, clientMessage(err))
			return
		}
		g.hub.JoinRoom(models.ConversationKey(id.UserID, friend.UserID), id.UserID)

	case models.EventConversationLeave:
		friend, err := g.friend(ctx, id, friends, ev.FriendUsername)
		if err != nil {
			g.sendError(id.UserID, clientMessage(err))
			return
		}
		g.hub.LeaveRoom(models.ConversationKey(id.UserID, friend.UserID), id.UserID)

	default:
		g.sendError(id.UserID, "unknown event")
	}
}

// friend resolves a username to a directory entry, enforcing the
// friendship requirement every realtime event carries.
func (g *Gateway) friend(ctx context.Context, id identity.Identity, cache map[string]identity.User, username string) (identity.User, error) {
	if username == "" {
		return identity.User{}, apperrors.Validation("friend_username is required")
	}
	if friend, ok := cache[username]; ok {
		return friend, nil
	}

	friend, err := g.directory.GetUserByUsername(ctx, username)
	if err != nil {
		return identity.User{}, err
	}
	ok, err := g.directory.AreFriends(ctx, id.UserID, friend.UserID)
	if err != nil {
		return identity.User{}, err
	}
	if !ok {
		return identity.User{}, apperrors.NotFriends("users are not friends")
	}

	cache[username] = friend
	return friend, nil
}

func (g *Gateway) sendError(userID, msg string) {
	g.hub.SendToUser(userID, models.ServerEvent{Event: models.EventError, Error: msg})
}

// clientMessage keeps internal causes out of frames sent to clients.
func clientMessage(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.CodeValidation, apperrors.CodeNotFound, apperrors.CodeNotFriends, apperrors.CodeUnauthenticated:
			return appErr.Message
		}
	}
	return "internal error"
}

func (g *Gateway) teardown(ctx context.Context, conn *websocket.Conn, info ConnInfo) {
	conn.Close()

	userID, wasActive := g.hub.Unregister(info.ConnID)
	if !wasActive {
		// A reconnect replaced this conn; its state now belongs to the
		// new connection.
		return
	}

	g.typing.ClearUser(userID)
	observability.IncWSEvent("ws_disconnect")
	g.emitter.Emit(ctx, telemetry.EventWSDisconnect, info.RequestID, &info.UserID, map[string]any{
		"conn_id":     info.ConnID,
		"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
	})
	g.log.Info("websocket disconnected",
		zap.String("user_id", info.UserID),
		zap.String("conn_id", info.ConnID),
		zap.Duration("duration", time.Since(info.ConnectedAt)))
}
