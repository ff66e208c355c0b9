package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a timeline post. LikeCount is denormalized and maintained with
// atomic increments tied to the like records, never recomputed on read.
type Post struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Body       string             `bson:"body" json:"body"`
	Visibility string             `bson:"visibility,omitempty" json:"visibility,omitempty"` // empty means the owner's posts default
	LikeCount  int64              `bson:"like_count" json:"like_count"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// Like is a single user's like on a post, unique per (post, user).
type Like struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"post_id" json:"post_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
