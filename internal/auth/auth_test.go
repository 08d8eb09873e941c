package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/session"
)

// MockAuthenticator is a mock implementation of Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login persists token and user", func(t *testing.T) {
		store := session.NewMemoryStore()
		authn := new(MockAuthenticator)
		authn.On("Login", mock.Anything, "admin", "pw").Return(&models.LoginResponse{
			Token: "jwt-token",
			User:  models.User{ID: "u1", Username: "admin", Name: "Admin"},
		}, nil)

		manager := NewManager(store, authn)
		assert.False(t, manager.IsAuthenticated(ctx))

		user, err := manager.Login(ctx, "admin", "pw")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
		assert.True(t, manager.IsAuthenticated(ctx))

		current, err := manager.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, "jwt-token", current.Token)
		assert.Equal(t, "Admin", current.User.Name)
		authn.AssertExpectations(t)
	})

	t.Run("rejected credentials persist nothing", func(t *testing.T) {
		store := session.NewMemoryStore()
		authn := new(MockAuthenticator)
		authn.On("Login", mock.Anything, "admin", "wrong").Return(nil, assert.AnError)

		manager := NewManager(store, authn)
		_, err := manager.Login(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, manager.IsAuthenticated(ctx))
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		store := session.NewMemoryStore()
		authn := new(MockAuthenticator)
		authn.On("Login", mock.Anything, "admin", "pw").Return(&models.LoginResponse{}, nil)

		manager := NewManager(store, authn)
		_, err := manager.Login(ctx, "admin", "pw")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.False(t, manager.IsAuthenticated(ctx))
	})
}

func TestManager_LogoutIdempotent(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(ctx, &session.Session{Token: "abc"}))

	manager := NewManager(store, new(MockAuthenticator))
	assert.True(t, manager.IsAuthenticated(ctx))

	assert.NoError(t, manager.Logout(ctx))
	assert.NoError(t, manager.Logout(ctx))
	assert.False(t, manager.IsAuthenticated(ctx))

	_, err := manager.Current(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "u1",
		"username": "admin",
		"iat":      time.Now().Unix(),
		"exp":      exp.Unix(),
	})
	signed, err := token.SignedString([]byte("server-secret"))
	require.NoError(t, err)

	info, err := InspectToken("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", info.Subject)
	assert.Equal(t, "admin", info.Username)
	assert.True(t, exp.Equal(info.ExpiresAt))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Minute)))
}

func TestInspectToken_Invalid(t *testing.T) {
	_, err := InspectToken("invalid-token")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestTokenInfo_NoExpiry(t *testing.T) {
	assert.False(t, TokenInfo{}.Expired(time.Now()))
}
