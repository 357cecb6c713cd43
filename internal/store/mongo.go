package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tkarls/microblog/internal/models"
)

// MongoStore handles micropost CRUD in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("microposts")}
}

func (s *MongoStore) Insert(ctx context.Context, post *models.Micropost) (string, error) {
	post.CreatedAt = time.Now()
	res, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return "", fmt.Errorf("mongo insert: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// FeedPage returns one page of a user's feed, newest first. Pages are
// 1-based; page size is fixed by the caller.
func (s *MongoStore) FeedPage(ctx context.Context, userID string, page, perPage int) ([]models.Micropost, error) {
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Micropost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"user_id": userID})
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (*models.Micropost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %w", err)
	}
	var post models.Micropost
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	_, err = s.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
