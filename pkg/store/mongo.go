package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/KyleKincer/tableyeah/pkg/timeline"
)

// daySheetCollection is the mongo collection holding one document per
// service day, keyed by date.
const daySheetCollection = "day_sheets"

// MongoStore persists day sheets in MongoDB.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures a MongoDB connection.
type MongoConfig struct {
	URI      string
	Database string
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping before returning.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(daySheetCollection),
	}, nil
}

// Get retrieves the day sheet for a date.
func (s *MongoStore) Get(ctx context.Context, date string) (timeline.DaySheet, error) {
	var sheet timeline.DaySheet
	err := s.coll.FindOne(ctx, bson.M{"date": date}).Decode(&sheet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return timeline.DaySheet{}, ErrNotFound
	}
	if err != nil {
		return timeline.DaySheet{}, fmt.Errorf("find day sheet %s: %w", date, err)
	}
	return sheet, nil
}

// Put upserts the day sheet for its date.
func (s *MongoStore) Put(ctx context.Context, sheet timeline.DaySheet) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"date": sheet.Date},
		sheet,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("put day sheet %s: %w", sheet.Date, err)
	}
	return nil
}

// Delete removes the day sheet for a date.
func (s *MongoStore) Delete(ctx context.Context, date string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"date": date}); err != nil {
		return fmt.Errorf("delete day sheet %s: %w", date, err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
