package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bekarys04/Social_Network/internal/apperrors"
	"github.com/bekarys04/Social_Network/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectionRepository stores relationship edges, one document per unordered
// user pair. The unique index on (user_lo, user_hi) makes the insert atomic
// with the existence check: two simultaneous requests for the same pair
// race on the index, and the loser surfaces as Conflict.
type ConnectionRepository struct {
	collection *mongo.Collection
}

func NewConnectionRepository(db *mongo.Database) *ConnectionRepository {
	return &ConnectionRepository{
		collection: db.Collection("connections"),
	}
}

// CreateEdge inserts a pending edge between the pair.
func (r *ConnectionRepository) CreateEdge(ctx context.Context, initiator, other primitive.ObjectID) (*models.Connection, error) {
	lo, hi := models.CanonicalPair(initiator, other)
	edge := &models.Connection{
		UserLo:      lo,
		UserHi:      hi,
		InitiatorID: initiator,
		Status:      models.ConnectionPending,
		CreatedAt:   time.Now(),
	}

	result, err := r.collection.InsertOne(ctx, edge)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("edge already exists for pair: %w", apperrors.ErrConflict)
		}
		logrus.WithError(err).Error("Failed to insert connection edge")
		return nil, fmt.Errorf("failed to create connection: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	edge.ID = insertedID

	return edge, nil
}

// GetByID fetches an edge by its ID.
func (r *ConnectionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error) {
	var edge models.Connection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&edge)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("connection %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find connection: %v", err)
	}
	return &edge, nil
}

// GetBetween fetches the edge between the pair in any status.
func (r *ConnectionRepository) GetBetween(ctx context.Context, a, b primitive.ObjectID) (*models.Connection, error) {
	lo, hi := models.CanonicalPair(a, b)
	var edge models.Connection
	err := r.collection.FindOne(ctx, bson.M{"user_lo": lo, "user_hi": hi}).Decode(&edge)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("no connection between pair: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find connection: %v", err)
	}
	return &edge, nil
}

// Accept flips a pending edge to accepted. The filter includes the pending
// status so a concurrent decline or duplicate accept loses cleanly.
func (r *ConnectionRepository) Accept(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.ConnectionPending},
		bson.M{"$set": bson.M{"status": models.ConnectionAccepted, "accepted_at": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to accept connection: %v", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("connection is not pending: %w", apperrors.ErrInvalidState)
	}
	return nil
}

// Delete removes an edge by ID.
func (r *ConnectionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete connection: %v", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("connection %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// DeleteAccepted removes the accepted edge between a pair. Repeated removal
// after success reports NotFound.
func (r *ConnectionRepository) DeleteAccepted(ctx context.Context, a, b primitive.ObjectID) error {
	lo, hi := models.CanonicalPair(a, b)
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"user_lo": lo,
		"user_hi": hi,
		"status":  models.ConnectionAccepted,
	})
	if err != nil {
		return fmt.Errorf("failed to remove connection: %v", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("no accepted connection between pair: %w", apperrors.ErrNotFound)
	}
	return nil
}

// DeleteBetween removes any edge between the pair regardless of status.
// Used by the block cascade; deleting nothing is not an error.
func (r *ConnectionRepository) DeleteBetween(ctx context.Context, a, b primitive.ObjectID) error {
	lo, hi := models.CanonicalPair(a, b)
	_, err := r.collection.DeleteOne(ctx, bson.M{"user_lo": lo, "user_hi": hi})
	if err != nil {
		return fmt.Errorf("failed to delete connection for pair: %v", err)
	}
	return nil
}

// GetPendingFor returns the pending edges the user has not initiated.
func (r *ConnectionRepository) GetPendingFor(ctx context.Context, userID primitive.ObjectID) ([]models.Connection, error) {
	filter := bson.M{
		"status":       models.ConnectionPending,
		"initiator_id": bson.M{"$ne": userID},
		"$or": []bson.M{
			{"user_lo": userID},
			{"user_hi": userID},
		},
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find pending requests: %v", err)
	}
	defer cursor.Close(ctx)

	var edges []models.Connection
	if err := cursor.All(ctx, &edges); err != nil {
		return nil, fmt.Errorf("failed to decode pending requests: %v", err)
	}
	return edges, nil
}

// GetFriendIDs returns the IDs of everyone the user has an accepted edge with.
func (r *ConnectionRepository) GetFriendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"status": models.ConnectionAccepted,
		"$or": []bson.M{
			{"user_lo": userID},
			{"user_hi": userID},
		},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find connections: %v", err)
	}
	defer cursor.Close(ctx)

	var friends []primitive.ObjectID
	for cursor.Next(ctx) {
		var edge models.Connection
		if err := cursor.Decode(&edge); err != nil {
			return nil, err
		}
		friends = append(friends, edge.Other(userID))
	}
	return friends, nil
}

// HasMutualFriend reports whether the viewer has an accepted edge with any
// accepted connection of the owner. The second degree is resolved with one
// $in query over the owner's friend set instead of walking the graph.
func (r *ConnectionRepository) HasMutualFriend(ctx context.Context, viewer, owner primitive.ObjectID) (bool, error) {
	ownerFriends, err := r.GetFriendIDs(ctx, owner)
	if err != nil {
		return false, err
	}
	if len(ownerFriends) == 0 {
		return false, nil
	}

	filter := bson.M{
		"status": models.ConnectionAccepted,
		"$or": []bson.M{
			{"user_lo": viewer, "user_hi": bson.M{"$in": ownerFriends}},
			{"user_hi": viewer, "user_lo": bson.M{"$in": ownerFriends}},
		},
	}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check mutual connections: %v", err)
	}
	return count > 0, nil
}
