package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/conversation"
	"messaging-service/internal/identity"
	"messaging-service/internal/middleware"
	"messaging-service/internal/models"
)

// ConversationServiceMock lives here because the shared mocks package cannot
// import conversation without creating a cycle through its tests.
type ConversationServiceMock struct {
	mock.Mock
}

func (m *ConversationServiceMock) SendMessage(ctx context.Context, sender identity.Identity, friendUsername, content string) (models.Message, error) {
	args := m.Called(ctx, sender, friendUsername, content)
	return args.Get(0).(models.Message), args.Error(1)
}

func (m *ConversationServiceMock) MarkRead(ctx context.Context, reader identity.Identity, friendUsername string, messageIDs []string) (int, error) {
	args := m.Called(ctx, reader, friendUsername, messageIDs)
	return args.Int(0), args.Error(1)
}

func (m *ConversationServiceMock) GetConversation(ctx context.Context, requester identity.Identity, friendUsername string, limit int) (conversation.ConversationView, error) {
	args := m.Called(ctx, requester, friendUsername, limit)
	return args.Get(0).(conversation.ConversationView), args.Error(1)
}

func (m *ConversationServiceMock) GetActiveConversations(ctx context.Context, requester identity.Identity) ([]conversation.FriendSummary, error) {
	args := m.Called(ctx, requester)
	return args.Get(0).([]conversation.FriendSummary), args.Error(1)
}

func (m *ConversationServiceMock) GetActiveStreaks(ctx context.Context, requester identity.Identity) ([]conversation.FriendSummary, error) {
	args := m.Called(ctx, requester)
	return args.Get(0).([]conversation.FriendSummary), args.Error(1)
}

func (m *ConversationServiceMock) GetHeatMap(ctx context.Context, requester identity.Identity, friendUsername string) (conversation.HeatMapView, error) {
	args := m.Called(ctx, requester, friendUsername)
	return args.Get(0).(conversation.HeatMapView), args.Error(1)
}

func (m *ConversationServiceMock) GetStats(ctx context.Context, requester identity.Identity, friendUsername string) (conversation.StatsView, error) {
	args := m.Called(ctx, requester, friendUsername)
	return args.Get(0).(conversation.StatsView), args.Error(1)
}

func (m *ConversationServiceMock) Reconcile(ctx context.Context, requester identity.Identity, friendUsername string) (conversation.ReconcileReport, error) {
	args := m.Called(ctx, requester, friendUsername)
	return args.Get(0).(conversation.ReconcileReport), args.Error(1)
}

var _ ConversationService = (*ConversationServiceMock)(nil)

var testRequester = identity.Identity{UserID: "u-alice", Username: "alice"}

func setupConversationRouter(handler *ConversationHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, testRequester.UserID)
		c.Set(middleware.ContextUsername, testRequester.Username)
		c.Next()
	})
	r.POST("/friends/:username/messages", handler.SendMessage)
	r.GET("/friends/:username/conversation", handler.GetConversation)
	r.GET("/friends/:username/heatmap", handler.GetHeatMap)
	r.GET("/friends/:username/stats", handler.GetStats)
	r.POST("/friends/:username/read", handler.MarkRead)
	r.GET("/conversations", handler.ListConversations)
	r.GET("/streaks", handler.ListStreaks)
	return r
}

func TestSendMessageCreated(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	sentAt := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	svc.On("SendMessage", mock.Anything, testRequester, "bob", "hey bob").
		Return(models.Message{MessageID: "m-1", FromUserID: "u-alice", ToUserID: "u-bob", Content: "hey bob", SentAt: sentAt}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/friends/bob/messages", bytes.NewBufferString(`{"content":"hey bob"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "m-1", resp["message_id"])
	assert.Equal(t, "bob", resp["recipient"])
	assert.NotEmpty(t, resp["timestamp"])
	svc.AssertExpectations(t)
}

func TestSendMessageMissingContent(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/friends/bob/messages", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessageToStranger(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	svc.On("SendMessage", mock.Anything, testRequester, "mallory", "hi").
		Return(models.Message{}, apperrors.NotFriends("users are not friends")).Once()

	req := httptest.NewRequest(http.MethodPost, "/friends/mallory/messages", bytes.NewBufferString(`{"content":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "users are not friends", resp["error"])
	svc.AssertExpectations(t)
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	svc.On("SendMessage", mock.Anything, testRequester, "ghost", "hi").
		Return(models.Message{}, apperrors.NotFound("user not found")).Once()

	req := httptest.NewRequest(http.MethodPost, "/friends/ghost/messages", bytes.NewBufferString(`{"content":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	svc.AssertExpectations(t)
}

func TestSendMessageStorageError(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	svc.On("SendMessage", mock.Anything, testRequester, "bob", "hi").
		Return(models.Message{}, apperrors.Persistence("store message", assert.AnError)).Once()

	req := httptest.NewRequest(http.MethodPost, "/friends/bob/messages", bytes.NewBufferString(`{"content":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	svc.AssertExpectations(t)
}

func TestSendMessageDirectoryDown(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	svc.On("SendMessage", mock.Anything, testRequester, "bob", "hi").
		Return(models.Message{}, apperrors.Transport("directory lookup", assert.AnError)).Once()

	req := httptest.NewRequest(http.MethodPost, "/friends/bob/messages", bytes.NewBufferString(`{"content":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	svc.AssertExpectations(t)
}

func TestGetConversationSuccess(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	view := conversation.ConversationView{
		Friend: identity.User{UserID: "u-bob", Username: "bob"},
		Messages: []models.AnnotatedMessage{
			{Message: models.Message{MessageID: "m-2", FromUserID: "u-alice"}, Status: models.StatusSent},
			{Message: models.Message{MessageID: "m-1", FromUserID: "u-bob"}},
		},
		Streak: models.StreakState{IsActive: true, StreakDays: 3},
	}
	svc.On("GetConversation", mock.Anything, testRequester, "bob", 10).Return(view, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/friends/bob/conversation?limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp, "messages")
	assert.Contains(t, resp, "streak")
	assert.Contains(t, resp, "stats")
	assert.Contains(t, resp, "heat_map")
	svc.AssertExpectations(t)
}

func TestGetConversationDefaultLimit(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	svc.On("GetConversation", mock.Anything, testRequester, "bob", 0).
		Return(conversation.ConversationView{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/friends/bob/conversation", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestGetConversationBadLimit(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/friends/bob/conversation?limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetConversation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListConversationsWrapsSummaries(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	summaries := []conversation.FriendSummary{
		{Friend: identity.User{UserID: "u-bob", Username: "bob"}, Streak: models.StreakState{IsActive: true, StreakDays: 2}},
	}
	svc.On("GetActiveConversations", mock.Anything, testRequester).Return(summaries, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string][]conversation.FriendSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp["conversations"], 1)
	assert.Equal(t, "bob", resp["conversations"][0].Friend.Username)
	svc.AssertExpectations(t)
}

func TestListStreaksWrapsSummaries(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	svc.On("GetActiveStreaks", mock.Anything, testRequester).
		Return([]conversation.FriendSummary{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/streaks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"streaks":[]}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestGetHeatMapSuccess(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	svc.On("GetHeatMap", mock.Anything, testRequester, "bob").
		Return(conversation.HeatMapView{Friend: identity.User{UserID: "u-bob", Username: "bob"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/friends/bob/heatmap", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestGetStatsSuccess(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	svc.On("GetStats", mock.Anything, testRequester, "bob").
		Return(conversation.StatsView{Stats: models.ConversationStats{TotalMessages: 12}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/friends/bob/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp, "stats")
	assert.Contains(t, resp, "streak")
	svc.AssertExpectations(t)
}

func TestMarkReadWithIDs(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	svc.On("MarkRead", mock.Anything, testRequester, "bob", []string{"m-1", "m-2"}).Return(2, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/friends/bob/read", bytes.NewBufferString(`{"message_ids":["m-1","m-2"]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"marked_as_read":2}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestMarkReadEmptyBodyMarksAll(t *testing.T) {
	svc := new(ConversationServiceMock)
	router := setupConversationRouter(NewConversationHandler(svc, zap.NewNop()))

	svc.On("MarkRead", mock.Anything, testRequester, "bob", ([]string)(nil)).Return(3, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/friends/bob/read", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"marked_as_read":3}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestMissingIdentityRejected(t *testing.T) {
	svc := new(ConversationServiceMock)
	handler := NewConversationHandler(svc, zap.NewNop())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/conversations", handler.ListConversations)

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "GetActiveConversations", mock.Anything, mock.Anything)
}

func TestDebugRoutesDisabled(t *testing.T) {
	svc := new(ConversationServiceMock)
	handler := NewConversationHandler(svc, zap.NewNop())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterDebugRoutes(r, handler, nil, false)

	req := httptest.NewRequest(http.MethodPost, "/debug/reconcile/bob", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDebugReconcile(t *testing.T) {
	svc := new(ConversationServiceMock)
	handler := NewConversationHandler(svc, zap.NewNop())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, testRequester.UserID)
		c.Set(middleware.ContextUsername, testRequester.Username)
		c.Next()
	})
	RegisterDebugRoutes(r, handler, nil, true)

	report := conversation.ReconcileReport{
		ConversationKey: "u-alice:u-bob",
		LedgerMessages:  4,
		Sides: map[string]models.StreakState{
			"u-alice": {IsActive: true, StreakDays: 2},
			"u-bob":   {IsActive: true, StreakDays: 2},
		},
	}
	svc.On("Reconcile", mock.Anything, testRequester, "bob").Return(report, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/debug/reconcile/bob", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp conversation.ReconcileReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 4, resp.LedgerMessages)
	assert.Len(t, resp.Sides, 2)
	svc.AssertExpectations(t)
}
