package services

import (
	"context"
	"testing"

	"github.com/bekarys04/Social_Network/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBlockCascadesConnectionRemoval(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	conns := newFakeConnectionStore()
	blocks := newFakeBlockStore()
	users := newFakeUserStore(alice, bob)
	notifier := newFakeNotifier()

	connSvc := NewConnectionService(conns, blocks, users, notifier)
	blockSvc := NewBlockService(blocks, conns, users)

	edge, err := connSvc.Request(ctx, alice, bob)
	require.NoError(t, err)
	require.NoError(t, connSvc.Respond(ctx, edge.ID, bob, true))
	require.Equal(t, 1, conns.edgeCount())

	require.NoError(t, blockSvc.Block(ctx, bob, alice))

	// The accepted edge is gone, not just masked.
	assert.Equal(t, 0, conns.edgeCount())

	blocked, err := blockSvc.IsBlockedEitherDirection(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, blocked)

	// Re-requesting while blocked is refused.
	_, err = connSvc.Request(ctx, alice, bob)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestBlockIsIdempotent(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	conns := newFakeConnectionStore()
	blocks := newFakeBlockStore()
	blockSvc := NewBlockService(blocks, conns, newFakeUserStore(alice, bob))

	require.NoError(t, blockSvc.Block(ctx, alice, bob))
	require.NoError(t, blockSvc.Block(ctx, alice, bob))

	blocked, err := blockSvc.IsBlockedEitherDirection(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestBlockSelf(t *testing.T) {
	alice := primitive.NewObjectID()
	blockSvc := NewBlockService(newFakeBlockStore(), newFakeConnectionStore(), newFakeUserStore(alice))

	err := blockSvc.Block(context.Background(), alice, alice)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUnblockDoesNotRestoreConnection(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	conns := newFakeConnectionStore()
	blocks := newFakeBlockStore()
	users := newFakeUserStore(alice, bob)
	notifier := newFakeNotifier()

	connSvc := NewConnectionService(conns, blocks, users, notifier)
	blockSvc := NewBlockService(blocks, conns, users)

	edge, err := connSvc.Request(ctx, alice, bob)
	require.NoError(t, err)
	require.NoError(t, connSvc.Respond(ctx, edge.ID, bob, true))

	require.NoError(t, blockSvc.Block(ctx, bob, alice))
	require.NoError(t, blockSvc.Unblock(ctx, bob, alice))

	blocked, err := blockSvc.IsBlockedEitherDirection(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, blocked)

	// The cascaded removal stands; the pair must reconnect explicitly.
	assert.Equal(t, 0, conns.edgeCount())
	_, err = connSvc.Request(ctx, alice, bob)
	assert.NoError(t, err)
}
