package session

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps session records in a "sessions" collection. Expired
// records are reaped by the TTL index on expires_at.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("sessions")}
}

func (m *MongoStore) Get(ctx context.Context, id string) (*Session, error) {
	var s Session
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	return &s, nil
}

func (m *MongoStore) Save(ctx context.Context, s *Session) error {
	_, err := m.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
