package services

import (
	"context"

	"github.com/bekarys04/Social_Network/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store interfaces consumed by the services. The Mongo repositories satisfy
// them; tests substitute in-memory fakes.

type ConnectionStore interface {
	CreateEdge(ctx context.Context, initiator, other primitive.ObjectID) (*models.Connection, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error)
	GetBetween(ctx context.Context, a, b primitive.ObjectID) (*models.Connection, error)
	Accept(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAccepted(ctx context.Context, a, b primitive.ObjectID) error
	DeleteBetween(ctx context.Context, a, b primitive.ObjectID) error
	GetPendingFor(ctx context.Context, userID primitive.ObjectID) ([]models.Connection, error)
	GetFriendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	HasMutualFriend(ctx context.Context, viewer, owner primitive.ObjectID) (bool, error)
}

type BlockStore interface {
	Upsert(ctx context.Context, blocker, blocked primitive.ObjectID) error
	Delete(ctx context.Context, blocker, blocked primitive.ObjectID) error
	ExistsEitherDirection(ctx context.Context, a, b primitive.ObjectID) (bool, error)
	ListBlocked(ctx context.Context, blocker primitive.ObjectID) ([]models.Block, error)
}

type PrivacyStore interface {
	GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.PrivacySettings, error)
	Update(ctx context.Context, settings *models.PrivacySettings) error
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error)
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteExpiredNotifications(ctx context.Context) error
}

type MessageStore interface {
	Insert(ctx context.Context, msg *models.Message) (*models.Message, error)
	History(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error)
	LatestPerPartner(ctx context.Context, userID primitive.ObjectID) ([]models.ConversationSummary, error)
	MarkConversationRead(ctx context.Context, reader, partner primitive.ObjectID) (int64, error)
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	UpdateLastActive(ctx context.Context, id primitive.ObjectID) error
}

type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Post, error)
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
}

// Notifier is the dispatcher surface the services push durable events
// through. Delivery failures never come back through this interface, only
// persistence failures do.
type Notifier interface {
	Notify(ctx context.Context, notif *models.Notification) error
	DeliverMessage(msg *models.Message)
	Online(userID string) bool
}
