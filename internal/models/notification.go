package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotifLike          = "like"
	NotifComment       = "comment"
	NotifShare         = "share"
	NotifFriendRequest = "friend_request"
	NotifFriendAccept  = "friend_accept"
	NotifMessage       = "message"
	NotifMention       = "mention"
)

// Notification is a durable alert for a user. Immutable except for Read.
type Notification struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"user_id" json:"user_id"`
	ActorID   *primitive.ObjectID `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	Type      string              `bson:"type" json:"type"`
	Message   string              `bson:"message" json:"message"`
	Read      bool                `bson:"read" json:"read"`
	TargetID  *primitive.ObjectID `bson:"target_id,omitempty" json:"target_id,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time           `bson:"expires_at" json:"expires_at"` // auto-deleted after 7 days
}

// ValidNotificationType reports whether the type belongs to the closed set.
func ValidNotificationType(t string) bool {
	switch t {
	case NotifLike, NotifComment, NotifShare, NotifFriendRequest, NotifFriendAccept, NotifMessage, NotifMention:
		return true
	}
	return false
}
