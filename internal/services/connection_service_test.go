package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bekarys04/Social_Network/internal/apperrors"
	"github.com/bekarys04/Social_Network/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newConnectionFixture(userIDs ...primitive.ObjectID) (*ConnectionService, *fakeConnectionStore, *fakeBlockStore, *fakeNotifier) {
	conns := newFakeConnectionStore()
	blocks := newFakeBlockStore()
	notifier := newFakeNotifier()
	svc := NewConnectionService(conns, blocks, newFakeUserStore(userIDs...), notifier)
	return svc, conns, blocks, notifier
}

func TestRequestCreatesPendingEdge(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	svc, _, _, notifier := newConnectionFixture(alice, bob)

	edge, err := svc.Request(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionPending, edge.Status)
	assert.Equal(t, alice, edge.InitiatorID)

	// Receiver gets a friend_request alert.
	notifs := notifier.notificationsFor(bob)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotifFriendRequest, notifs[0].Type)

	status, err := svc.StatusBetween(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, models.RelationPendingSent, status)

	status, err = svc.StatusBetween(ctx, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, models.RelationPendingReceived, status)
}

func TestRequestToSelf(t *testing.T) {
	alice := primitive.NewObjectID()
	svc, _, _, _ := newConnectionFixture(alice)

	_, err := svc.Request(context.Background(), alice, alice)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRequestUnknownReceiver(t *testing.T) {
	alice := primitive.NewObjectID()
	svc, _, _, _ := newConnectionFixture(alice)

	_, err := svc.Request(context.Background(), alice, primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRequestDuplicateEitherDirection(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	svc, conns, _, _ := newConnectionFixture(alice, bob)

	_, err := svc.Request(ctx, alice, bob)
	require.NoError(t, err)

	_, err = svc.Request(ctx, alice, bob)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.Request(ctx, bob, alice)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	assert.Equal(t, 1, conns.edgeCount())
}

func TestRequestBlockedPair(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	svc, _, blocks, _ := newConnectionFixture(alice, bob)

	require.NoError(t, blocks.Upsert(ctx, bob, alice))

	_, err := svc.Request(ctx, alice, bob)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

// Two simultaneous requests for the same pair must leave exactly one edge.
func TestConcurrentOppositeRequests(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	svc, conns, _, _ := newConnectionFixture(alice, bob)

	var successes, conflicts int32
	var wg sync.WaitGroup
	run := func(from, to primitive.ObjectID) {
		defer wg.Done()
		_, err := svc.Request(ctx, from, to)
		switch {
		case err == nil:
			atomic.AddInt32(&successes, 1)
		case errors.Is(err, apperrors.ErrConflict):
			atomic.AddInt32(&conflicts, 1)
		}
	}

	wg.Add(2)
	go run(alice, bob)
	go run(bob, alice)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&successes))
	assert.Equal(t, int32(1), atomic.LoadInt32(&conflicts))
	assert.Equal(t, 1, conns.edgeCount())
}

func TestRespondAccept(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	svc, _, _, notifier := newConnectionFixture(alice, bob)

	edge, err := svc.Request(ctx, alice, bob)
	require.NoError(t, err)

	require.NoError(t, svc.Respond(ctx, edge.ID, bob, true))

	status, err := svc.StatusBetween(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, models.RelationAccepted, status)

	// Initiator is notified of the acceptance.
	notifs := notifier.notificationsFor(alice)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotifFriendAccept, notifs[0].Type)
}

func TestRespondForbidden(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	mallory := primitive.NewObjectID()
	svc, _, _, _ := newConnectionFixture(alice, bob, mallory)

	edge, err := svc.Request(ctx, alice, bob)
	require.NoError(t, err)

	// The initiator cannot accept their own request.
	assert.ErrorIs(t, svc.Respond(ctx, edge.ID, alice, true), apperrors.ErrForbidden)
	// A third party cannot respond at all.
	assert.ErrorIs(t, svc.Respond(ctx, edge.ID, mallory, true), apperrors.ErrForbidden)
}

func TestRespondNonPending(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	svc, _, _, _ := newConnectionFixture(alice, bob)

	edge, err := svc.Request(ctx, alice, bob)
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, edge.ID, bob, true))

	assert.ErrorIs(t, svc.Respond(ctx, edge.ID, bob, true), apperrors.ErrInvalidState)
}

func TestRespondUnknownEdge(t *testing.T) {
	svc, _, _, _ := newConnectionFixture()
	err := svc.Respond(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// Declining deletes the edge, so a later request starts over.
func TestRespondDeclineDeletesEdge(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	svc, conns, _, _ := newConnectionFixture(alice, bob)

	edge, err := svc.Request(ctx, alice, bob)
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, edge.ID, bob, false))

	assert.Equal(t, 0, conns.edgeCount())

	status, err := svc.StatusBetween(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, models.RelationNone, status)

	_, err = svc.Request(ctx, bob, alice)
	assert.NoError(t, err)
}

func TestRemoveFriend(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	svc, _, _, _ := newConnectionFixture(alice, bob)

	edge, err := svc.Request(ctx, alice, bob)
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, edge.ID, bob, true))

	require.NoError(t, svc.Remove(ctx, alice, bob))

	// Removal is not idempotent: repeating reports NotFound.
	assert.ErrorIs(t, svc.Remove(ctx, alice, bob), apperrors.ErrNotFound)
}

func TestRemovePendingEdgeNotFound(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	svc, _, _, _ := newConnectionFixture(alice, bob)

	_, err := svc.Request(ctx, alice, bob)
	require.NoError(t, err)

	// Only accepted edges can be removed.
	assert.ErrorIs(t, svc.Remove(ctx, alice, bob), apperrors.ErrNotFound)
}

func TestListPendingAndFriends(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	carol := primitive.NewObjectID()
	svc, _, _, _ := newConnectionFixture(alice, bob, carol)

	edge, err := svc.Request(ctx, alice, bob)
	require.NoError(t, err)
	_, err = svc.Request(ctx, carol, bob)
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	// The sender's own outgoing request is not in their pending list.
	pending, err = svc.ListPending(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, svc.Respond(ctx, edge.ID, bob, true))

	friends, err := svc.ListFriends(ctx, bob)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, alice, friends[0].ID)
}
