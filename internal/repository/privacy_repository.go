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

// PrivacyRepository stores per-user privacy settings.
type PrivacyRepository struct {
	collection *mongo.Collection
}

func NewPrivacyRepository(db *mongo.Database) *PrivacyRepository {
	return &PrivacyRepository{
		collection: db.Collection("privacy_settings"),
	}
}

// GetOrCreate returns the user's settings, creating the default record on
// first access. The upsert keyed on the unique user_id index keeps two
// concurrent first reads from creating two documents.
func (r *PrivacyRepository) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.PrivacySettings, error) {
	defaults := models.DefaultPrivacySettings(userID)
	update := bson.M{"$setOnInsert": defaults}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var settings models.PrivacySettings
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&settings)
	if err != nil {
		return nil, fmt.Errorf("failed to load privacy settings: %v", err)
	}
	return &settings, nil
}

// Update replaces the user's policy fields.
func (r *PrivacyRepository) Update(ctx context.Context, settings *models.PrivacySettings) error {
	settings.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"profile":        settings.Profile,
		"posts_default":  settings.PostsDefault,
		"friend_list":    settings.FriendList,
		"messaging":      settings.Messaging,
		"tagging":        settings.Tagging,
		"timeline_posts": settings.TimelinePosts,
		"updated_at":     settings.UpdatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": settings.UserID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to update privacy settings: %v", err)
	}
	return nil
}
