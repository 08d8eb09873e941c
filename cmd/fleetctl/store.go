package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/config"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/session"
)

const sessionsCollection = "sessions"

// openStore builds the session store selected by SESSION_BACKEND. The returned
// func releases any connection the store holds.
func openStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	noop := func() {}

	switch cfg.SessionBackend {
	case config.BackendMemory:
		return session.NewMemoryStore(), noop, nil

	case config.BackendMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, noop, fmt.Errorf("session backend mongo: %w", err)
		}
		coll := &db.MongoSessionCollection{Collection: client.Database(cfg.MongoDB).Collection(sessionsCollection)}
		closer := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.WithError(err).Warn("Failed to disconnect from MongoDB")
			}
		}
		return session.NewMongoStore(coll, cfg.SessionProfile), closer, nil

	case config.BackendRedis:
		client, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, noop, fmt.Errorf("session backend redis: %w", err)
		}
		closer := func() {
			if err := client.Close(); err != nil {
				log.WithError(err).Warn("Failed to close Redis client")
			}
		}
		return session.NewRedisStore(client, cfg.SessionProfile, cfg.SessionTTL), closer, nil

	default:
		path := cfg.SessionFile
		if path == "" {
			path = session.DefaultPath()
		}
		log.WithField("path", path).Debug("Using file session store")
		return session.NewFileStore(path), noop, nil
	}
}
