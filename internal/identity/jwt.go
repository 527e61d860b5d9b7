package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"messaging-service/internal/apperrors"
)

// LocalVerifier validates HMAC-signed tokens issued by the accounts
// service without a network round trip. It is the fallback used when
// no accounts endpoint is configured.
type LocalVerifier struct {
	secret []byte
}

// NewLocalVerifier constructs a LocalVerifier for the shared secret.
func NewLocalVerifier(secret string) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token, returning the identity carried
// in its claims.
func (v *LocalVerifier) Verify(_ context.Context, token string) (Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, apperrors.Wrap(apperrors.CodeUnauthenticated, "invalid token", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, apperrors.Unauthenticated("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	if sub == "" {
		return Identity{}, apperrors.Unauthenticated("token missing subject")
	}
	if username == "" {
		username = sub
	}
	return Identity{UserID: sub, Username: username}, nil
}

// LocalDirectory resolves usernames without an accounts service by
// treating usernames as user ids and all pairs as friends. Development
// only.
type LocalDirectory struct{}

// GetUserByUsername echoes the username back as the user id.
func (LocalDirectory) GetUserByUsername(_ context.Context, username string) (User, error) {
	if username == "" {
		return User{}, apperrors.NotFound("user not found")
	}
	return User{UserID: username, Username: username}, nil
}

// AreFriends reports every pair as friends.
func (LocalDirectory) AreFriends(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}

// BulkUsers echoes the ids back as usernames.
func (LocalDirectory) BulkUsers(_ context.Context, ids []string) (map[string]User, error) {
	users := make(map[string]User, len(ids))
	for _, id := range ids {
		users[id] = User{UserID: id, Username: id}
	}
	return users, nil
}
