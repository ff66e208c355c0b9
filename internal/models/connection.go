package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Connection statuses stored on the edge.
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
)

// Relation statuses reported from one user's perspective. Direction of a
// pending edge matters for the UI even though storage only keeps Initiator.
const (
	RelationNone            = "none"
	RelationPendingSent     = "pending_sent"
	RelationPendingReceived = "pending_received"
	RelationAccepted        = "accepted"
)

// Connection is the single edge stored per unordered user pair. UserLo and
// UserHi hold the pair in canonical order so the unique index on them holds
// regardless of who initiated.
type Connection struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserLo      primitive.ObjectID `bson:"user_lo" json:"user_lo"`
	UserHi      primitive.ObjectID `bson:"user_hi" json:"user_hi"`
	InitiatorID primitive.ObjectID `bson:"initiator_id" json:"initiator_id"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	AcceptedAt  *time.Time         `bson:"accepted_at,omitempty" json:"accepted_at,omitempty"`
}

// CanonicalPair orders two user IDs so the lower hex comes first.
func CanonicalPair(a, b primitive.ObjectID) (lo, hi primitive.ObjectID) {
	if a.Hex() < b.Hex() {
		return a, b
	}
	return b, a
}

// Other returns the member of the pair that is not the given user.
func (c *Connection) Other(userID primitive.ObjectID) primitive.ObjectID {
	if c.UserLo == userID {
		return c.UserHi
	}
	return c.UserLo
}

// RelationFor reports the edge status from the given user's perspective.
func (c *Connection) RelationFor(userID primitive.ObjectID) string {
	switch c.Status {
	case ConnectionAccepted:
		return RelationAccepted
	case ConnectionPending:
		if c.InitiatorID == userID {
			return RelationPendingSent
		}
		return RelationPendingReceived
	}
	return RelationNone
}
