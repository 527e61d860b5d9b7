package grpc

import (
	"context"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/identity"
	pb "messaging-service/pb/accounts"
)

// AccountsClient wraps the accounts-service gRPC client.
type AccountsClient struct {
	client pb.AccountsServiceClient
}

// NewAccountsClient constructs the wrapper.
func NewAccountsClient(client pb.AccountsServiceClient) *AccountsClient {
	return &AccountsClient{client: client}
}

// Verify validates the bearer token against the accounts service and
// returns the authenticated identity.
func (a *AccountsClient) Verify(ctx context.Context, token string) (identity.Identity, error) {
	resp, err := a.client.ValidateToken(ctx, &pb.ValidateTokenRequest{Token: token})
	if err != nil {
		return identity.Identity{}, apperrors.Transport("validate token", err)
	}
	if !resp.GetValid() || resp.GetUserId() == "" {
		return identity.Identity{}, apperrors.Unauthenticated("invalid token")
	}
	return identity.Identity{UserID: resp.GetUserId(), Username: resp.GetUsername()}, nil
}

// GetUserByUsername resolves a username to a directory entry.
func (a *AccountsClient) GetUserByUsername(ctx context.Context, username string) (identity.User, error) {
	resp, err := a.client.GetUserByUsername(ctx, &pb.GetUserByUsernameRequest{Username: username})
	if err != nil {
		return identity.User{}, apperrors.Transport("get user by username", err)
	}
	if resp.GetUserId() == "" {
		return identity.User{}, apperrors.NotFound("user not found")
	}
	return identity.User{
		UserID:      resp.GetUserId(),
		Username:    resp.GetUsername(),
		DisplayName: resp.GetDisplayName(),
	}, nil
}

// AreFriends verifies friendship between two users.
func (a *AccountsClient) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	resp, err := a.client.AreFriends(ctx, &pb.AreFriendsRequest{UserId: userID, FriendId: friendID})
	if err != nil {
		return false, apperrors.Transport("check friendship", err)
	}
	return resp.GetAreFriends(), nil
}

// BulkUsers fetches multiple directory entries in one call, keyed by
// user id. Ids the accounts service does not know are absent from the
// result.
func (a *AccountsClient) BulkUsers(ctx context.Context, ids []string) (map[string]identity.User, error) {
	if len(ids) == 0 {
		return map[string]identity.User{}, nil
	}
	resp, err := a.client.BulkUsers(ctx, &pb.BulkUsersRequest{UserIds: ids})
	if err != nil {
		return nil, apperrors.Transport("bulk users", err)
	}
	users := make(map[string]identity.User, len(resp.GetUsers()))
	for _, u := range resp.GetUsers() {
		users[u.GetUserId()] = identity.User{
			UserID:      u.GetUserId(),
			Username:    u.GetUsername(),
			DisplayName: u.GetDisplayName(),
		}
	}
	return users, nil
}
