package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll.service/internal/identity"
)

func TestJWTVerifierRoundTrip(t *testing.T) {
	user := identity.User{
		ID:            "u1",
		Email:         "ana@example.com",
		Role:          "admin",
		EmailVerified: true,
	}

	token, err := identity.IssueToken(user, "secret", "payroll-service", time.Hour)
	require.NoError(t, err)

	v := identity.NewJWTVerifier("secret", "payroll-service")
	got, err := v.GetCurrentUser(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user, *got)
}

func TestJWTVerifierRejectsBadTokens(t *testing.T) {
	user := identity.User{ID: "u1", Role: "employee"}
	v := identity.NewJWTVerifier("secret", "payroll-service")

	// wrong signing key
	token, err := identity.IssueToken(user, "other-secret", "payroll-service", time.Hour)
	require.NoError(t, err)
	got, err := v.GetCurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, got)

	// wrong issuer
	token, err = identity.IssueToken(user, "secret", "someone-else", time.Hour)
	require.NoError(t, err)
	got, err = v.GetCurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, got)

	// expired
	token, err = identity.IssueToken(user, "secret", "payroll-service", -time.Minute)
	require.NoError(t, err)
	got, err = v.GetCurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, got)

	// empty
	got, err = v.GetCurrentUser(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
}
