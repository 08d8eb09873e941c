package db

import (
	"context"
	"errors"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// ErrSessionNotFound is returned when no session document exists for a profile.
var ErrSessionNotFound = errors.New("session not found")

// SessionDocument is the stored form of a CLI session, one per profile.
type SessionDocument struct {
	Profile   string       `bson:"_id"`
	Token     string       `bson:"token"`
	User      *models.User `bson:"user,omitempty"`
	UpdatedAt time.Time    `bson:"updated_at"`
}

// SessionCollection defines the interface for session document operations.
type SessionCollection interface {
	FindSession(ctx context.Context, profile string) (*SessionDocument, error)
	UpsertSession(ctx context.Context, doc SessionDocument) error
	DeleteSession(ctx context.Context, profile string) error
}
