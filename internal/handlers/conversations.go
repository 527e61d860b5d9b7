package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/conversation"
	"messaging-service/internal/identity"
	"messaging-service/internal/middleware"
	"messaging-service/internal/models"
)

// ConversationService is the surface of the conversation package the HTTP
// layer depends on.
type ConversationService interface {
	SendMessage(ctx context.Context, sender identity.Identity, friendUsername, content string) (models.Message, error)
	MarkRead(ctx context.Context, reader identity.Identity, friendUsername string, messageIDs []string) (int, error)
	GetConversation(ctx context.Context, requester identity.Identity, friendUsername string, limit int) (conversation.ConversationView, error)
	GetActiveConversations(ctx context.Context, requester identity.Identity) ([]conversation.FriendSummary, error)
	GetActiveStreaks(ctx context.Context, requester identity.Identity) ([]conversation.FriendSummary, error)
	GetHeatMap(ctx context.Context, requester identity.Identity, friendUsername string) (conversation.HeatMapView, error)
	GetStats(ctx context.Context, requester identity.Identity, friendUsername string) (conversation.StatsView, error)
	Reconcile(ctx context.Context, requester identity.Identity, friendUsername string) (conversation.ReconcileReport, error)
}

// ConversationHandler serves the friend messaging endpoints.
type ConversationHandler struct {
	svc ConversationService
	log *zap.Logger
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(svc ConversationService, log *zap.Logger) *ConversationHandler {
	return &ConversationHandler{svc: svc, log: log}
}

// SendMessage handles POST /friends/:username/messages.
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.svc.SendMessage(h.requestContext(c), requester, c.Param("username"), req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message_id": msg.MessageID,
		"timestamp":  msg.SentAt,
		"recipient":  c.Param("username"),
	})
}

// GetConversation handles GET /friends/:username/conversation.
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	view, err := h.svc.GetConversation(h.requestContext(c), requester, c.Param("username"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListConversations handles GET /conversations.
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	summaries, err := h.svc.GetActiveConversations(h.requestContext(c), requester)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// ListStreaks handles GET /streaks.
func (h *ConversationHandler) ListStreaks(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	summaries, err := h.svc.GetActiveStreaks(h.requestContext(c), requester)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"streaks": summaries})
}

// GetHeatMap handles GET /friends/:username/heatmap.
func (h *ConversationHandler) GetHeatMap(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	view, err := h.svc.GetHeatMap(h.requestContext(c), requester, c.Param("username"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetStats handles GET /friends/:username/stats.
func (h *ConversationHandler) GetStats(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	view, err := h.svc.GetStats(h.requestContext(c), requester, c.Param("username"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// MarkRead handles POST /friends/:username/read. The body is optional; an
// empty body marks every unread message from the friend.
func (h *ConversationHandler) MarkRead(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	var req struct {
		MessageIDs []string `json:"message_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marked, err := h.svc.MarkRead(h.requestContext(c), requester, c.Param("username"), req.MessageIDs)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked_as_read": marked})
}

func (h *ConversationHandler) requester(c *gin.Context) (identity.Identity, bool) {
	id, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
	}
	return id, ok
}

func (h *ConversationHandler) requestContext(c *gin.Context) context.Context {
	return conversation.WithRequestID(c.Request.Context(), requestIDFromContext(c))
}

func (h *ConversationHandler) writeError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	status := statusForCode(appErr.Code)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": appErr.Message})
}

func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.CodeValidation:
		return http.StatusBadRequest
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.CodeNotFriends:
		return http.StatusForbidden
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
