package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo connects to MongoDB at uri and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// MongoSessionCollection implements SessionCollection for MongoDB.
type MongoSessionCollection struct {
	Collection *mongo.Collection
}

// FindSession loads the session document of a profile.
func (c *MongoSessionCollection) FindSession(ctx context.Context, profile string) (*SessionDocument, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var doc SessionDocument
	err := c.Collection.FindOne(ctx, bson.M{"_id": profile}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// UpsertSession replaces the session document of a profile, inserting it when absent.
func (c *MongoSessionCollection) UpsertSession(ctx context.Context, doc SessionDocument) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	doc.UpdatedAt = time.Now()
	_, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": doc.Profile}, doc, options.Replace().SetUpsert(true))
	return err
}

// DeleteSession removes the session document of a profile. Deleting a missing
// document is not an error.
func (c *MongoSessionCollection) DeleteSession(ctx context.Context, profile string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.DeleteOne(ctx, bson.M{"_id": profile})
	return err
}
