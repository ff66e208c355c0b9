package services

import (
	"context"
	"fmt"

	"github.com/bekarys04/Social_Network/internal/apperrors"
	"github.com/bekarys04/Social_Network/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlockService manages directed blocks. Policy: blocking always cascades, so
// any pending or accepted edge between the pair is removed in the same call
// rather than left to be voided lazily at read time.
type BlockService struct {
	blocks      BlockStore
	connections ConnectionStore
	users       UserStore
}

func NewBlockService(blocks BlockStore, connections ConnectionStore, users UserStore) *BlockService {
	return &BlockService{
		blocks:      blocks,
		connections: connections,
		users:       users,
	}
}

// Block records the block and removes any connection edge between the pair.
// Idempotent: repeating an existing block succeeds quietly.
func (s *BlockService) Block(ctx context.Context, blocker, blocked primitive.ObjectID) error {
	if blocker == blocked {
		return fmt.Errorf("cannot block yourself: %w", apperrors.ErrInvalidInput)
	}
	if _, err := s.users.GetUserByID(ctx, blocked); err != nil {
		return err
	}

	if err := s.blocks.Upsert(ctx, blocker, blocked); err != nil {
		return err
	}

	if err := s.connections.DeleteBetween(ctx, blocker, blocked); err != nil {
		// The block itself stood; the privacy solver still denies on block
		// state, so a lingering edge cannot leak content.
		logrus.WithError(err).Error("Block cascade failed to remove connection edge")
	}

	return nil
}

// Unblock removes the block relation. It does not restore any connection
// the cascade removed.
func (s *BlockService) Unblock(ctx context.Context, blocker, blocked primitive.ObjectID) error {
	if blocker == blocked {
		return fmt.Errorf("cannot unblock yourself: %w", apperrors.ErrInvalidInput)
	}
	return s.blocks.Delete(ctx, blocker, blocked)
}

// IsBlockedEitherDirection reports whether either user blocks the other.
func (s *BlockService) IsBlockedEitherDirection(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	return s.blocks.ExistsEitherDirection(ctx, a, b)
}

// ListBlocked returns the users blocked by the given user.
func (s *BlockService) ListBlocked(ctx context.Context, blocker primitive.ObjectID) ([]models.Block, error) {
	return s.blocks.ListBlocked(ctx, blocker)
}
