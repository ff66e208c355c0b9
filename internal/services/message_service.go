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

// MessageService persists chat messages and hands them to the dispatcher.
// The message is durable before any live push, so the send reports success
// regardless of delivery outcome.
type MessageService struct {
	messages MessageStore
	privacy  *PrivacyService
	notifier Notifier
}

func NewMessageService(messages MessageStore, privacy *PrivacyService, notifier Notifier) *MessageService {
	return &MessageService{
		messages: messages,
		privacy:  privacy,
		notifier: notifier,
	}
}

// Send validates, persists and fans out a message. Recipients with no live
// session get a durable message notification instead of a push.
func (s *MessageService) Send(ctx context.Context, sender, receiver primitive.ObjectID, text, fileURL, fileName string) (*models.Message, error) {
	if sender == receiver {
		return nil, fmt.Errorf("cannot message yourself: %w", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" && fileURL == "" {
		return nil, fmt.Errorf("empty message: %w", apperrors.ErrInvalidInput)
	}

	allowed, err := s.privacy.CanMessage(ctx, sender, receiver)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("recipient does not accept messages from you: %w", apperrors.ErrForbidden)
	}

	msg, err := s.messages.Insert(ctx, &models.Message{
		SenderID:   sender,
		ReceiverID: receiver,
		Text:       text,
		FileURL:    fileURL,
		FileName:   fileName,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.DeliverMessage(msg)

	if !s.notifier.Online(receiver.Hex()) {
		notif := &models.Notification{
			UserID:   receiver,
			ActorID:  &sender,
			Type:     models.NotifMessage,
			Message:  "sent you a message",
			TargetID: &msg.ID,
		}
		if err := s.notifier.Notify(ctx, notif); err != nil {
			logrus.WithError(err).Warn("Failed to create message notification")
		}
	}

	return msg, nil
}

// History returns the full conversation with a partner in send order.
func (s *MessageService) History(ctx context.Context, userID, partnerID primitive.ObjectID) ([]models.Message, error) {
	return s.messages.History(ctx, userID, partnerID)
}

// ListConversations returns the latest message and unread count per partner.
func (s *MessageService) ListConversations(ctx context.Context, userID primitive.ObjectID) ([]models.ConversationSummary, error) {
	return s.messages.LatestPerPartner(ctx, userID)
}

// MarkConversationRead acknowledges everything received from the partner.
func (s *MessageService) MarkConversationRead(ctx context.Context, userID, partnerID primitive.ObjectID) (int64, error) {
	return s.messages.MarkConversationRead(ctx, userID, partnerID)
}

// UnreadCount returns the total unread messages for the user.
func (s *MessageService) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.messages.CountUnread(ctx, userID)
}
