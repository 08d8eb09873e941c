// Package session persists the authenticated session (bearer token and user)
// in a durable key-value backend.
package session

import (
	"context"
	"errors"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// ErrNoSession is returned by Load when nothing is persisted.
var ErrNoSession = errors.New("no session")

// Session is the persisted token/user pair.
type Session struct {
	Token string       `json:"token" bson:"token"`
	User  *models.User `json:"user,omitempty" bson:"user,omitempty"`
}

// Store is implemented by every session backend.
//
// Load returns ErrNoSession when nothing is persisted. Save replaces token and
// user together. Clear removes both and is a no-op when already empty.
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}
