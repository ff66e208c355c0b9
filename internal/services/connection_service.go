package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bekarys04/Social_Network/internal/apperrors"
	"github.com/bekarys04/Social_Network/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionService runs the friendship state machine over the edge store.
type ConnectionService struct {
	connections ConnectionStore
	blocks      BlockStore
	users       UserStore
	notifier    Notifier
}

func NewConnectionService(connections ConnectionStore, blocks BlockStore, users UserStore, notifier Notifier) *ConnectionService {
	return &ConnectionService{
		connections: connections,
		blocks:      blocks,
		users:       users,
		notifier:    notifier,
	}
}

// Request creates a pending edge from sender to receiver and alerts the
// receiver. The duplicate-edge race is not handled here: the store's unique
// pair index decides the winner and the loser comes back as Conflict.
func (s *ConnectionService) Request(ctx context.Context, sender, receiver primitive.ObjectID) (*models.Connection, error) {
	if sender == receiver {
		return nil, fmt.Errorf("cannot send a request to yourself: %w", apperrors.ErrInvalidInput)
	}

	if _, err := s.users.GetUserByID(ctx, receiver); err != nil {
		return nil, err
	}

	blocked, err := s.blocks.ExistsEitherDirection(ctx, sender, receiver)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, fmt.Errorf("pair is blocked: %w", apperrors.ErrConflict)
	}

	edge, err := s.connections.CreateEdge(ctx, sender, receiver)
	if err != nil {
		return nil, err
	}

	notif := &models.Notification{
		UserID:   receiver,
		ActorID:  &sender,
		Type:     models.NotifFriendRequest,
		Message:  "sent you a friend request",
		TargetID: &edge.ID,
	}
	if err := s.notifier.Notify(ctx, notif); err != nil {
		logrus.WithError(err).Warn("Failed to create friend request notification")
	}

	return edge, nil
}

// Respond accepts or declines a pending request. Only the non-initiating
// party may respond. Declining deletes the edge so a later request starts
// fresh; accepting notifies the initiator.
func (s *ConnectionService) Respond(ctx context.Context, edgeID, responder primitive.ObjectID, accept bool) error {
	edge, err := s.connections.GetByID(ctx, edgeID)
	if err != nil {
		return err
	}

	if edge.UserLo != responder && edge.UserHi != responder {
		return fmt.Errorf("responder is not part of this request: %w", apperrors.ErrForbidden)
	}
	if edge.InitiatorID == responder {
		return fmt.Errorf("initiator cannot respond to own request: %w", apperrors.ErrForbidden)
	}
	if edge.Status != models.ConnectionPending {
		return fmt.Errorf("request already responded to: %w", apperrors.ErrInvalidState)
	}

	if !accept {
		return s.connections.Delete(ctx, edgeID)
	}

	if err := s.connections.Accept(ctx, edgeID); err != nil {
		return err
	}

	initiator := edge.InitiatorID
	notif := &models.Notification{
		UserID:   initiator,
		ActorID:  &responder,
		Type:     models.NotifFriendAccept,
		Message:  "accepted your friend request",
		TargetID: &edge.ID,
	}
	if err := s.notifier.Notify(ctx, notif); err != nil {
		logrus.WithError(err).Warn("Failed to create friend accept notification")
	}

	return nil
}

// Remove unfriends: deletes the accepted edge between the pair. Repeating
// the call after success reports NotFound.
func (s *ConnectionService) Remove(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return s.connections.DeleteAccepted(ctx, userID, friendID)
}

// StatusBetween reports the relation from the user's perspective. A missing
// edge is the normal "none", not an error.
func (s *ConnectionService) StatusBetween(ctx context.Context, userID, otherID primitive.ObjectID) (string, error) {
	edge, err := s.connections.GetBetween(ctx, userID, otherID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.RelationNone, nil
	}
	if err != nil {
		return "", err
	}
	return edge.RelationFor(userID), nil
}

// ListPending returns the incoming requests awaiting the user's response.
func (s *ConnectionService) ListPending(ctx context.Context, userID primitive.ObjectID) ([]models.Connection, error) {
	return s.connections.GetPendingFor(ctx, userID)
}

// ListFriends returns the public profiles of the user's accepted connections.
func (s *ConnectionService) ListFriends(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error) {
	friendIDs, err := s.connections.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return []models.PublicUser{}, nil
	}

	users, err := s.users.GetUsersByIDs(ctx, friendIDs)
	if err != nil {
		return nil, err
	}

	friends := make([]models.PublicUser, 0, len(users))
	for _, user := range users {
		friends = append(friends, user.Public())
	}
	return friends, nil
}

// FriendIDs exposes the accepted-connection IDs for presence fan-out.
func (s *ConnectionService) FriendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.connections.GetFriendIDs(ctx, userID)
}
