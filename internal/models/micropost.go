package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Micropost is a single short post stored in MongoDB.
type Micropost struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	UserID    string             `json:"user_id"    bson:"user_id"`
	Content   string             `json:"content"    bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
