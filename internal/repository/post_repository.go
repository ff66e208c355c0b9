package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bekarys04/Social_Network/internal/apperrors"
	"github.com/bekarys04/Social_Network/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository stores timeline posts and their likes. The like counter on
// the post is denormalized: it moves only through the single $inc in
// adjustLikeCount, tied to the like record insert/delete, and is never
// recomputed by scanning likes.
type PostRepository struct {
	posts *mongo.Collection
	likes *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		posts: db.Collection("posts"),
		likes: db.Collection("likes"),
	}
}

// CreatePost inserts a new post.
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	post.CreatedAt = time.Now()
	post.LikeCount = 0

	result, err := r.posts.InsertOne(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %v", err)
	}
	post.ID = result.InsertedID.(primitive.ObjectID)
	return post, nil
}

// GetPost fetches a post by ID.
func (r *PostRepository) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("post %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %v", err)
	}
	return &post, nil
}

// ListByOwner returns a user's posts, newest first.
func (r *PostRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.posts.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %v", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %v", err)
	}
	return posts, nil
}

// AddLike records a like and bumps the counter. The unique (post, user)
// index turns a repeated like into Conflict before the counter moves.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := r.likes.InsertOne(ctx, models.Like{
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("already liked: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to insert like: %v", err)
	}
	return r.adjustLikeCount(ctx, postID, 1)
}

// RemoveLike deletes the like and decrements the counter.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	result, err := r.likes.DeleteOne(ctx, bson.M{"post_id": postID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete like: %v", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("like not found: %w", apperrors.ErrNotFound)
	}
	return r.adjustLikeCount(ctx, postID, -1)
}

func (r *PostRepository) adjustLikeCount(ctx context.Context, postID primitive.ObjectID, delta int) error {
	_, err := r.posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$inc": bson.M{"like_count": delta}})
	if err != nil {
		return fmt.Errorf("failed to adjust like count: %v", err)
	}
	return nil
}
