package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"messaging-service/internal/identity"
	"messaging-service/internal/models"
	"messaging-service/internal/repositories"
	"messaging-service/internal/telemetry"
)

type FriendshipRepositoryMock struct {
	mock.Mock
}

func (m *FriendshipRepositoryMock) Get(ctx context.Context, ownerID, friendID string) (models.FriendshipSide, error) {
	args := m.Called(ctx, ownerID, friendID)
	var side models.FriendshipSide
	if val := args.Get(0); val != nil {
		side = val.(models.FriendshipSide)
	}
	return side, args.Error(1)
}

func (m *FriendshipRepositoryMock) Mutate(ctx context.Context, ownerID, friendID string, fn func(*models.MessagingHistory) error) (models.FriendshipSide, error) {
	args := m.Called(ctx, ownerID, friendID, fn)
	var side models.FriendshipSide
	if val := args.Get(0); val != nil {
		side = val.(models.FriendshipSide)
	}
	return side, args.Error(1)
}

func (m *FriendshipRepositoryMock) ListActive(ctx context.Context, ownerID string, since time.Time) ([]models.FriendshipSide, error) {
	args := m.Called(ctx, ownerID, since)
	var sides []models.FriendshipSide
	if val := args.Get(0); val != nil {
		sides = val.([]models.FriendshipSide)
	}
	return sides, args.Error(1)
}

func (m *FriendshipRepositoryMock) ListStreaks(ctx context.Context, ownerID string) ([]models.FriendshipSide, error) {
	args := m.Called(ctx, ownerID)
	var sides []models.FriendshipSide
	if val := args.Get(0); val != nil {
		sides = val.([]models.FriendshipSide)
	}
	return sides, args.Error(1)
}

type LedgerRepositoryMock struct {
	mock.Mock
}

func (m *LedgerRepositoryMock) Insert(ctx context.Context, conversationKey string, msg models.Message) error {
	args := m.Called(ctx, conversationKey, msg)
	return args.Error(0)
}

func (m *LedgerRepositoryMock) MarkRead(ctx context.Context, messageIDs []string, readAt time.Time) error {
	args := m.Called(ctx, messageIDs, readAt)
	return args.Error(0)
}

func (m *LedgerRepositoryMock) ListConversation(ctx context.Context, conversationKey string) ([]models.Message, error) {
	args := m.Called(ctx, conversationKey)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

type DirectoryMock struct {
	mock.Mock
}

func (m *DirectoryMock) GetUserByUsername(ctx context.Context, username string) (identity.User, error) {
	args := m.Called(ctx, username)
	var user identity.User
	if val := args.Get(0); val != nil {
		user = val.(identity.User)
	}
	return user, args.Error(1)
}

func (m *DirectoryMock) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	args := m.Called(ctx, userID, friendID)
	return args.Bool(0), args.Error(1)
}

func (m *DirectoryMock) BulkUsers(ctx context.Context, ids []string) (map[string]identity.User, error) {
	args := m.Called(ctx, ids)
	var users map[string]identity.User
	if val := args.Get(0); val != nil {
		users = val.(map[string]identity.User)
	}
	return users, args.Error(1)
}

type VerifierMock struct {
	mock.Mock
}

func (m *VerifierMock) Verify(ctx context.Context, token string) (identity.Identity, error) {
	args := m.Called(ctx, token)
	var id identity.Identity
	if val := args.Get(0); val != nil {
		id = val.(identity.Identity)
	}
	return id, args.Error(1)
}

type PresenceMock struct {
	mock.Mock
}

func (m *PresenceMock) IsOnline(userID string) bool {
	args := m.Called(userID)
	return args.Bool(0)
}

type PusherMock struct {
	mock.Mock
}

func (m *PusherMock) PushNewMessage(toUserID, fromUsername string, msg models.Message) {
	m.Called(toUserID, fromUsername, msg)
}

func (m *PusherMock) PushReadReceipts(toUserID, readBy string, ids []string, readAt time.Time) {
	m.Called(toUserID, readBy, ids, readAt)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ repositories.FriendshipRepository = (*FriendshipRepositoryMock)(nil)
var _ repositories.LedgerRepository = (*LedgerRepositoryMock)(nil)
var _ identity.Verifier = (*VerifierMock)(nil)
var _ telemetry.Publisher = (*PublisherMock)(nil)
var _ interface {
	GetUserByUsername(context.Context, string) (identity.User, error)
	AreFriends(context.Context, string, string) (bool, error)
	BulkUsers(context.Context, []string) (map[string]identity.User, error)
} = (*DirectoryMock)(nil)
