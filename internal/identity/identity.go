package identity

import "context"

// RoleAdmin is the only role with unrestricted page access.
const RoleAdmin = "admin"

// User is the session identity as reported by the identity provider.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

// Client resolves a session token into the current user. A nil user with
// a nil error means the token is missing, expired or otherwise not
// authenticated; errors are reserved for provider failures.
type Client interface {
	GetCurrentUser(ctx context.Context, token string) (*User, error)
}

// Authenticator exchanges credentials for a session token.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (token string, err error)
}
