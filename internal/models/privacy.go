package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Visibility levels for content classes.
const (
	VisibilityPublic           = "public"
	VisibilityFriends          = "friends"
	VisibilityFriendsOfFriends = "friends_of_friends"
	VisibilityOnlyMe           = "only_me"
)

// Messaging levels (who may start a conversation).
const (
	MessagingEveryone = "everyone"
	MessagingFriends  = "friends"
	MessagingNobody   = "nobody"
)

// PrivacySettings is the per-user policy record, one document per user,
// created lazily with defaults on first access.
type PrivacySettings struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	Profile        string             `bson:"profile" json:"profile"`
	PostsDefault   string             `bson:"posts_default" json:"posts_default"`
	FriendList     string             `bson:"friend_list" json:"friend_list"`
	Messaging      string             `bson:"messaging" json:"messaging"`
	Tagging        string             `bson:"tagging" json:"tagging"`
	TimelinePosts  string             `bson:"timeline_posts" json:"timeline_posts"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// DefaultPrivacySettings returns the policy applied to a user who never
// touched their settings.
func DefaultPrivacySettings(userID primitive.ObjectID) *PrivacySettings {
	return &PrivacySettings{
		UserID:        userID,
		Profile:       VisibilityPublic,
		PostsDefault:  VisibilityFriends,
		FriendList:    VisibilityFriends,
		Messaging:     MessagingFriends,
		Tagging:       VisibilityFriends,
		TimelinePosts: VisibilityFriends,
		UpdatedAt:     time.Now(),
	}
}

// ValidVisibility reports whether the value belongs to the closed set.
func ValidVisibility(level string) bool {
	switch level {
	case VisibilityPublic, VisibilityFriends, VisibilityFriendsOfFriends, VisibilityOnlyMe:
		return true
	}
	return false
}

// ValidMessaging reports whether the value is a known messaging level.
func ValidMessaging(level string) bool {
	switch level {
	case MessagingEveryone, MessagingFriends, MessagingNobody:
		return true
	}
	return false
}
