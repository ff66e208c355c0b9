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

// MessageRepository stores chat messages grouped by conversation key.
type MessageRepository struct {
	collection *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{
		collection: db.Collection("messages"),
	}
}

// Insert persists a message. The conversation key is derived here so no
// caller can store an uncanonicalized pair.
func (r *MessageRepository) Insert(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.ConversationKey = models.ConversationKey(msg.SenderID, msg.ReceiverID)
	msg.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %v", err)
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)
	return msg, nil
}

// History returns the conversation between the pair in send order. Ties on
// created_at break on _id, which is monotonic per insertion.
func (r *MessageRepository) History(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	filter := bson.M{"conversation_key": models.ConversationKey(a, b)}
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %v", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %v", err)
	}
	return messages, nil
}

// LatestPerPartner returns, for each partner the user has exchanged messages
// with, the most recent message plus the unread count — computed as one
// grouped aggregate on the server, not by scanning messages in memory.
func (r *MessageRepository) LatestPerPartner(ctx context.Context, userID primitive.ObjectID) ([]models.ConversationSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": []bson.M{
			{"sender_id": userID},
			{"receiver_id": userID},
		}}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$conversation_key",
			"last_message": bson.M{"$first": "$$ROOT"},
			"unread_count": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$receiver_id", userID}},
					bson.M{"$eq": bson.A{"$read", false}},
				}},
				1,
				0,
			}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "last_message.created_at", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate conversations: %v", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		LastMessage models.Message `bson:"last_message"`
		UnreadCount int64          `bson:"unread_count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %v", err)
	}

	summaries := make([]models.ConversationSummary, 0, len(rows))
	for _, row := range rows {
		partner := row.LastMessage.SenderID
		if partner == userID {
			partner = row.LastMessage.ReceiverID
		}
		summaries = append(summaries, models.ConversationSummary{
			PartnerID:   partner,
			LastMessage: row.LastMessage,
			UnreadCount: row.UnreadCount,
		})
	}
	return summaries, nil
}

// MarkConversationRead flags every unread message the reader received in the
// conversation with the partner.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, reader, partner primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"conversation_key": models.ConversationKey(reader, partner),
		"receiver_id":      reader,
		"read":             false,
	}
	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, fmt.Errorf("failed to mark conversation read: %v", err)
	}
	return result.ModifiedCount, nil
}

// CountUnread returns the total unread messages addressed to the user.
func (r *MessageRepository) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"receiver_id": userID, "read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %v", err)
	}
	return count, nil
}
