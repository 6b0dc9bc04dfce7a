package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wanderstay/wanderstay/internal/models"
)

// ListingStore handles listing CRUD in MongoDB.
type ListingStore struct {
	col *mongo.Collection
}

func NewListingStore(db *mongo.Database) *ListingStore {
	return &ListingStore{col: db.Collection("listings")}
}

func (s *ListingStore) Insert(ctx context.Context, l *models.Listing) (string, error) {
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, l)
	if err != nil {
		return "", fmt.Errorf("mongo insert: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	l.ID = oid
	return oid.Hex(), nil
}

func (s *ListingStore) FindAll(ctx context.Context) ([]models.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var listings []models.Listing
	if err := cur.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *ListingStore) FindByID(ctx context.Context, id string) (*models.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var l models.Listing
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (s *ListingStore) UpdateByID(ctx context.Context, id string, f models.ListingForm) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":       f.Title,
		"description": f.Description,
		"image":       f.Image,
		"price":       f.Price,
		"location":    f.Location,
		"country":     f.Country,
		"updated_at":  time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("mongo update: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ListingStore) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// searchFilter builds the equality-only query document. No ranges, no
// substring matching.
func searchFilter(f models.SearchFilter) bson.M {
	filter := bson.M{}
	if f.Location != nil {
		filter["location"] = *f.Location
	}
	if f.Price != nil {
		filter["price"] = *f.Price
	}
	return filter
}

// Search returns listings whose stored fields exactly equal the set
// filter criteria.
func (s *ListingStore) Search(ctx context.Context, f models.SearchFilter) ([]models.Listing, error) {
	cur, err := s.col.Find(ctx, searchFilter(f))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var listings []models.Listing
	if err := cur.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
