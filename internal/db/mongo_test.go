package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

func TestConnectMongo_BadURI(t *testing.T) {
	client, err := ConnectMongo(context.Background(), "mongodb://bad:uri")
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestMongoSessionCollection_NilCollection(t *testing.T) {
	coll := &MongoSessionCollection{Collection: nil}
	ctx := context.Background()

	_, err := coll.FindSession(ctx, "default")
	assert.Error(t, err)
	assert.Error(t, coll.UpsertSession(ctx, SessionDocument{Profile: "default"}))
	assert.Error(t, coll.DeleteSession(ctx, "default"))
}

// Integration test (requires running MongoDB)
func TestMongoSessionCollection_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := ConnectMongo(ctx, uri)
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}
	defer client.Disconnect(context.Background())

	collection := client.Database("test_fleet_maintenance").Collection("sessions")
	collection.Drop(ctx)
	coll := &MongoSessionCollection{Collection: collection}

	_, err = coll.FindSession(ctx, "default")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = coll.UpsertSession(ctx, SessionDocument{
		Profile: "default",
		Token:   "abc",
		User:    &models.User{ID: "1", Username: "admin", Name: "Admin"},
	})
	require.NoError(t, err)

	doc, err := coll.FindSession(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "abc", doc.Token)
	assert.Equal(t, "admin", doc.User.Username)
	assert.NotZero(t, doc.UpdatedAt)

	require.NoError(t, coll.DeleteSession(ctx, "default"))
	require.NoError(t, coll.DeleteSession(ctx, "default"))
	_, err = coll.FindSession(ctx, "default")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConnectRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	client, err := ConnectRedis(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
	assert.Nil(t, client)
}
