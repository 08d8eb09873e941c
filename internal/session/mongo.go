package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukydev/fleet-maintenance/internal/db"
)

// MongoStore keeps sessions as documents keyed by profile, so several
// terminals can share one login.
type MongoStore struct {
	coll    db.SessionCollection
	profile string
}

// NewMongoStore creates a store for profile over coll.
func NewMongoStore(coll db.SessionCollection, profile string) *MongoStore {
	return &MongoStore{coll: coll, profile: profile}
}

func (m *MongoStore) Load(ctx context.Context) (*Session, error) {
	doc, err := m.coll.FindSession(ctx, m.profile)
	if err != nil {
		if errors.Is(err, db.ErrSessionNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if doc.Token == "" {
		return nil, ErrNoSession
	}
	return &Session{Token: doc.Token, User: doc.User}, nil
}

func (m *MongoStore) Save(ctx context.Context, s *Session) error {
	err := m.coll.UpsertSession(ctx, db.SessionDocument{
		Profile: m.profile,
		Token:   s.Token,
		User:    s.User,
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (m *MongoStore) Clear(ctx context.Context) error {
	if err := m.coll.DeleteSession(ctx, m.profile); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
