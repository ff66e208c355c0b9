package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Block is a directed blocker -> blocked relation. It is independent of any
// connection edge between the pair; the privacy solver treats a block in
// either direction as overriding the edge.
type Block struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BlockerID primitive.ObjectID `bson:"blocker_id" json:"blocker_id"`
	BlockedID primitive.ObjectID `bson:"blocked_id" json:"blocked_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
