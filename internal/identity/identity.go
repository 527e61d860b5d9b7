// Package identity defines who a request acts as and how tokens are
// verified against the accounts service.
package identity

import "context"

// Identity is an authenticated account.
type Identity struct {
	UserID   string
	Username string
}

// User is a directory entry for an account.
type User struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
}

// Verifier authenticates a bearer token.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
