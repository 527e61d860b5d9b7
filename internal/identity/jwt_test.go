package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messaging-service/internal/apperrors"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestLocalVerifierAcceptsValidToken(t *testing.T) {
	v := NewLocalVerifier("secret")
	token := signToken(t, "secret", jwt.MapClaims{
		"sub":      "u-1",
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)
	assert.Equal(t, "alice", id.Username)
}

func TestLocalVerifierRejectsBadSignature(t *testing.T) {
	v := NewLocalVerifier("secret")
	token := signToken(t, "other-secret", jwt.MapClaims{"sub": "u-1"})

	_, err := v.Verify(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))
}

func TestLocalVerifierRejectsExpiredToken(t *testing.T) {
	v := NewLocalVerifier("secret")
	token := signToken(t, "secret", jwt.MapClaims{
		"sub": "u-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))
}

func TestLocalVerifierRequiresSubject(t *testing.T) {
	v := NewLocalVerifier("secret")
	token := signToken(t, "secret", jwt.MapClaims{"username": "alice"})

	_, err := v.Verify(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))
}

func TestLocalDirectory(t *testing.T) {
	var d LocalDirectory
	ctx := context.Background()

	u, err := d.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.UserID)

	ok, err := d.AreFriends(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, ok)

	users, err := d.BulkUsers(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "a", users["a"].Username)
}
