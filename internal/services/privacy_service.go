package services

import (
	"context"
	"fmt"

	"github.com/bekarys04/Social_Network/internal/apperrors"
	"github.com/bekarys04/Social_Network/internal/models"
	"github.com/bekarys04/Social_Network/internal/privacy"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content classes gated by the privacy solver.
const (
	ContentProfile       = "profile"
	ContentPosts         = "posts"
	ContentFriendList    = "friend_list"
	ContentTagging       = "tagging"
	ContentTimelinePosts = "timeline_posts"
)

// PrivacyService loads policies and relationship state, then delegates the
// decision to the pure solver.
type PrivacyService struct {
	settings    PrivacyStore
	connections ConnectionStore
	blocks      BlockStore
}

func NewPrivacyService(settings PrivacyStore, connections ConnectionStore, blocks BlockStore) *PrivacyService {
	return &PrivacyService{
		settings:    settings,
		connections: connections,
		blocks:      blocks,
	}
}

// GetSettings returns the user's policy record, created with defaults on
// first access.
func (s *PrivacyService) GetSettings(ctx context.Context, userID primitive.ObjectID) (*models.PrivacySettings, error) {
	return s.settings.GetOrCreate(ctx, userID)
}

// UpdateSettings validates every level against its closed set and persists.
func (s *PrivacyService) UpdateSettings(ctx context.Context, userID primitive.ObjectID, updated *models.PrivacySettings) (*models.PrivacySettings, error) {
	for _, level := range []string{updated.Profile, updated.PostsDefault, updated.FriendList, updated.Tagging, updated.TimelinePosts} {
		if !models.ValidVisibility(level) {
			return nil, fmt.Errorf("unknown visibility level %q: %w", level, apperrors.ErrInvalidInput)
		}
	}
	if !models.ValidMessaging(updated.Messaging) {
		return nil, fmt.Errorf("unknown messaging level %q: %w", updated.Messaging, apperrors.ErrInvalidInput)
	}

	updated.UserID = userID
	if err := s.settings.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// CanView gates one content class of the owner for the viewer. The second
// degree check runs only when the policy asks for friends_of_friends.
func (s *PrivacyService) CanView(ctx context.Context, viewer, owner primitive.ObjectID, class string) (bool, error) {
	return s.canViewLevel(ctx, viewer, owner, class, "")
}

// CanViewWithOverride gates content that carries its own visibility level
// (e.g. a per-post override); an empty override falls back to the class
// policy.
func (s *PrivacyService) CanViewWithOverride(ctx context.Context, viewer, owner primitive.ObjectID, class, override string) (bool, error) {
	return s.canViewLevel(ctx, viewer, owner, class, override)
}

func (s *PrivacyService) canViewLevel(ctx context.Context, viewer, owner primitive.ObjectID, class, override string) (bool, error) {
	blocked, err := s.blocks.ExistsEitherDirection(ctx, viewer, owner)
	if err != nil {
		return false, err
	}

	level := override
	if level == "" {
		settings, err := s.settings.GetOrCreate(ctx, owner)
		if err != nil {
			return false, err
		}
		level, err = levelForClass(settings, class)
		if err != nil {
			return false, err
		}
	}

	relation := models.RelationNone
	if edge, err := s.connections.GetBetween(ctx, viewer, owner); err == nil {
		relation = edge.RelationFor(viewer)
	}

	decision := privacy.CanView(viewer, owner, level, relation, blocked, func(v, o primitive.ObjectID) bool {
		mutual, err := s.connections.HasMutualFriend(ctx, v, o)
		if err != nil {
			logrus.WithError(err).Warn("Mutual connection check failed, denying")
			return false
		}
		return mutual
	})
	return bool(decision), nil
}

// CanMessage gates opening a conversation under the recipient's messaging
// level.
func (s *PrivacyService) CanMessage(ctx context.Context, sender, recipient primitive.ObjectID) (bool, error) {
	blocked, err := s.blocks.ExistsEitherDirection(ctx, sender, recipient)
	if err != nil {
		return false, err
	}

	settings, err := s.settings.GetOrCreate(ctx, recipient)
	if err != nil {
		return false, err
	}

	relation := models.RelationNone
	if edge, err := s.connections.GetBetween(ctx, sender, recipient); err == nil {
		relation = edge.RelationFor(sender)
	}

	return bool(privacy.CanMessage(sender, recipient, settings.Messaging, relation, blocked)), nil
}

func levelForClass(settings *models.PrivacySettings, class string) (string, error) {
	switch class {
	case ContentProfile:
		return settings.Profile, nil
	case ContentPosts:
		return settings.PostsDefault, nil
	case ContentFriendList:
		return settings.FriendList, nil
	case ContentTagging:
		return settings.Tagging, nil
	case ContentTimelinePosts:
		return settings.TimelinePosts, nil
	}
	return "", fmt.Errorf("unknown content class %q: %w", class, apperrors.ErrInvalidInput)
}
