package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bekarys04/Social_Network/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlockRepository stores directed block relations.
type BlockRepository struct {
	collection *mongo.Collection
}

func NewBlockRepository(db *mongo.Database) *BlockRepository {
	return &BlockRepository{
		collection: db.Collection("blocks"),
	}
}

// Upsert records a block. Idempotent: repeating an existing block changes
// nothing thanks to the unique (blocker, blocked) index and $setOnInsert.
func (r *BlockRepository) Upsert(ctx context.Context, blocker, blocked primitive.ObjectID) error {
	filter := bson.M{"blocker_id": blocker, "blocked_id": blocked}
	update := bson.M{"$setOnInsert": bson.M{
		"blocker_id": blocker,
		"blocked_id": blocked,
		"created_at": time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to record block: %v", err)
	}
	return nil
}

// Delete removes a block. Removing a block that does not exist is a no-op.
func (r *BlockRepository) Delete(ctx context.Context, blocker, blocked primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"blocker_id": blocker, "blocked_id": blocked})
	if err != nil {
		return fmt.Errorf("failed to remove block: %v", err)
	}
	return nil
}

// ExistsEitherDirection reports whether either user has blocked the other.
func (r *BlockRepository) ExistsEitherDirection(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	filter := bson.M{"$or": []bson.M{
		{"blocker_id": a, "blocked_id": b},
		{"blocker_id": b, "blocked_id": a},
	}}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check block state: %v", err)
	}
	return count > 0, nil
}

// ListBlocked returns everyone the user has blocked.
func (r *BlockRepository) ListBlocked(ctx context.Context, blocker primitive.ObjectID) ([]models.Block, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"blocker_id": blocker})
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %v", err)
	}
	defer cursor.Close(ctx)

	var blocks []models.Block
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode blocks: %v", err)
	}
	return blocks, nil
}
