package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dboiago/Memoix-sub000/internal/model"
	"github.com/dboiago/Memoix-sub000/internal/testdb"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(testdb.SetupTestDB(t), "test-secret")
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Alex", claims.Name)
	assert.NotEqual(t, uuid.Nil, claims.UserID)

	loginToken, err := svc.Login(ctx, "alex@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "alex@example.com", "password")
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alex", "alex@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alex@example.com", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	other := NewAuthService(nil, "other-secret")
	token, err := other.generateToken(&model.User{ID: uuid.New(), Name: "Mallory"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
