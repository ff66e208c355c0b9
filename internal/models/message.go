package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a durable chat message between two users. ConversationKey is
// derived from the canonicalized sender/receiver pair so both directions of
// a conversation share one key.
type Message struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationKey string             `bson:"conversation_key" json:"conversation_key"`
	SenderID        primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	ReceiverID      primitive.ObjectID `bson:"receiver_id" json:"receiver_id"`
	Text            string             `bson:"text,omitempty" json:"text,omitempty"`
	FileURL         string             `bson:"file_url,omitempty" json:"file_url,omitempty"`
	FileName        string             `bson:"file_name,omitempty" json:"file_name,omitempty"`
	Read            bool               `bson:"read" json:"read"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// ConversationKey canonicalizes an unordered user pair into one key,
// independent of argument order.
func ConversationKey(a, b primitive.ObjectID) string {
	lo, hi := CanonicalPair(a, b)
	return lo.Hex() + ":" + hi.Hex()
}

// ConversationSummary is the latest message exchanged with one partner plus
// the number of messages from that partner not yet read.
type ConversationSummary struct {
	PartnerID   primitive.ObjectID `bson:"partner_id" json:"partner_id"`
	LastMessage Message            `bson:"last_message" json:"last_message"`
	UnreadCount int64              `bson:"unread_count" json:"unread_count"`
}
