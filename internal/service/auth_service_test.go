package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vilbert55/yatube/config"
)

func newAuthService(env *testEnv) AuthService {
	return NewAuthService(env.userRepo, config.JWTConfig{Secret: "test-secret", TTL: time.Hour})
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{Username: "alice", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "password123", u.Password) // 存哈希不存明文

	token, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, "alice", claims.Username)
}

func TestSignupDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	var verr *ValidationError
	_, err = svc.Signup(ctx, SignupInput{Username: "alice", Password: "password456"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenGarbage(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	_, err := svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
