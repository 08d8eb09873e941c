// Package auth answers "am I logged in" for the client.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/session"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
}

// Manager is the single source of truth for the current session.
type Manager struct {
	store session.Store
	authn Authenticator
}

// NewManager creates a session manager.
func NewManager(store session.Store, authn Authenticator) *Manager {
	return &Manager{store: store, authn: authn}
}

// Login authenticates and persists token and user together. Nothing is
// persisted when the backend rejects the credentials.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.User, error) {
	resp, err := m.authn.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response without token: %w", ErrInvalidToken)
	}
	user := resp.User
	if err := m.store.Save(ctx, &session.Session{Token: resp.Token, User: &user}); err != nil {
		return nil, err
	}
	log.WithField("username", user.Username).Info("Logged in")
	return &user, nil
}

// Logout clears the persisted session. Calling it while logged out is fine.
func (m *Manager) Logout(ctx context.Context) error {
	return m.store.Clear(ctx)
}

// IsAuthenticated reports whether a token is currently persisted.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	s, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			log.WithError(err).Warn("Failed to read session")
		}
		return false
	}
	return s.Token != ""
}

// Current returns the persisted session or ErrNotAuthenticated.
func (m *Manager) Current(ctx context.Context) (*session.Session, error) {
	s, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return s, nil
}

// TokenInfo is what the client can read from a token without its signing key.
type TokenInfo struct {
	Subject   string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry in the past.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// InspectToken decodes the claims of a JWT without verifying its signature.
// The result is informational only; the backend remains the judge of validity.
func InspectToken(tokenString string) (*TokenInfo, error) {
	tokenString = strings.TrimPrefix(strings.TrimSpace(tokenString), "Bearer ")

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	for _, key := range []string{"username", "user_name", "preferred_username"} {
		if v, ok := claims[key].(string); ok && v != "" {
			info.Username = v
			break
		}
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
