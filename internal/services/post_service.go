package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bekarys04/Social_Network/internal/apperrors"
	"github.com/bekarys04/Social_Network/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostService manages timeline posts and likes, gating every read through
// the privacy service.
type PostService struct {
	posts    PostStore
	privacy  *PrivacyService
	notifier Notifier
}

func NewPostService(posts PostStore, privacy *PrivacyService, notifier Notifier) *PostService {
	return &PostService{
		posts:    posts,
		privacy:  privacy,
		notifier: notifier,
	}
}

// Create inserts a post. An empty visibility means the owner's posts
// default applies at read time.
func (s *PostService) Create(ctx context.Context, ownerID primitive.ObjectID, body, visibility string) (*models.Post, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("empty post body: %w", apperrors.ErrInvalidInput)
	}
	if visibility != "" && !models.ValidVisibility(visibility) {
		return nil, fmt.Errorf("unknown visibility level %q: %w", visibility, apperrors.ErrInvalidInput)
	}

	return s.posts.CreatePost(ctx, &models.Post{
		OwnerID:    ownerID,
		Body:       body,
		Visibility: visibility,
	})
}

// Get returns the post if the viewer may see it; a denied post reads as
// NotFound so its existence is not revealed.
func (s *PostService) Get(ctx context.Context, viewerID, postID primitive.ObjectID) (*models.Post, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.privacy.CanViewWithOverride(ctx, viewerID, post.OwnerID, ContentPosts, post.Visibility)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("post %s: %w", postID.Hex(), apperrors.ErrNotFound)
	}
	return post, nil
}

// ListForOwner returns the owner's posts the viewer is allowed to see.
func (s *PostService) ListForOwner(ctx context.Context, viewerID, ownerID primitive.ObjectID) ([]models.Post, error) {
	posts, err := s.posts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		allowed, err := s.privacy.CanViewWithOverride(ctx, viewerID, ownerID, ContentPosts, post.Visibility)
		if err != nil {
			return nil, err
		}
		if allowed {
			visible = append(visible, post)
		}
	}
	return visible, nil
}

// Like records a like (atomic counter bump in the store) and alerts the
// post owner.
func (s *PostService) Like(ctx context.Context, userID, postID primitive.ObjectID) error {
	post, err := s.Get(ctx, userID, postID)
	if err != nil {
		return err
	}

	if err := s.posts.AddLike(ctx, postID, userID); err != nil {
		return err
	}

	if post.OwnerID != userID {
		notif := &models.Notification{
			UserID:   post.OwnerID,
			ActorID:  &userID,
			Type:     models.NotifLike,
			Message:  "liked your post",
			TargetID: &postID,
		}
		if err := s.notifier.Notify(ctx, notif); err != nil {
			logrus.WithError(err).Warn("Failed to create like notification")
		}
	}
	return nil
}

// Unlike removes the like and decrements the counter.
func (s *PostService) Unlike(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.posts.RemoveLike(ctx, postID, userID)
}
