// internal/infrastructure/database/mongo/connection.go
package mongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/your-org/storefront-state/internal/config"
	"github.com/your-org/storefront-state/internal/infrastructure/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// entry is one stored blob, keyed by _id
type entry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// KV serves a MongoDB collection as key-value storage
type KV struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewConnection connects to MongoDB and selects the configured collection
func NewConnection(cfg *config.Config) (*KV, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("✅ MongoDB connection established successfully")

	return &KV{
		client:     client,
		collection: client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection),
	}, nil
}

// Get retrieves a value by key
func (k *KV) Get(ctx context.Context, key string) (string, error) {
	var doc entry
	err := k.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "mongo get %s", key)
	}
	return doc.Value, nil
}

// Set upserts the value
func (k *KV) Set(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{"value": value, "updated_at": time.Now().UTC()}}
	_, err := k.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return errors.Wrapf(err, "mongo set %s", key)
	}
	return nil
}

// Health pings the server
func (k *KV) Health(ctx context.Context) error {
	return k.client.Ping(ctx, nil)
}

// Close disconnects the client
func (k *KV) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return k.client.Disconnect(ctx)
}
