package services

import (
	"context"
	"testing"

	"github.com/bekarys04/Social_Network/internal/apperrors"
	"github.com/bekarys04/Social_Network/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type messageFixture struct {
	svc      *MessageService
	connSvc  *ConnectionService
	store    *fakeMessageStore
	notifier *fakeNotifier
}

func newMessageFixture(userIDs ...primitive.ObjectID) *messageFixture {
	conns := newFakeConnectionStore()
	blocks := newFakeBlockStore()
	users := newFakeUserStore(userIDs...)
	notifier := newFakeNotifier()
	store := newFakeMessageStore()
	privacySvc := NewPrivacyService(newFakePrivacyStore(), conns, blocks)

	return &messageFixture{
		svc:      NewMessageService(store, privacySvc, notifier),
		connSvc:  NewConnectionService(conns, blocks, users, notifier),
		store:    store,
		notifier: notifier,
	}
}

func befriend(t *testing.T, f *messageFixture, a, b primitive.ObjectID) {
	t.Helper()
	edge, err := f.connSvc.Request(context.Background(), a, b)
	require.NoError(t, err)
	require.NoError(t, f.connSvc.Respond(context.Background(), edge.ID, b, true))
}

// Sending to an offline recipient still persists the message, increments
// unread and leaves a durable notification.
func TestSendWhileRecipientOffline(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	f := newMessageFixture(alice, bob)
	befriend(t, f, alice, bob)

	msg, err := f.svc.Send(ctx, alice, bob, "hello", "", "")
	require.NoError(t, err)
	assert.False(t, msg.ID.IsZero())

	history, err := f.svc.History(ctx, bob, alice)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "hello", history[0].Text)

	unread, err := f.svc.UnreadCount(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	notifs := f.notifier.notificationsFor(bob)
	require.NotEmpty(t, notifs)
	last := notifs[len(notifs)-1]
	assert.Equal(t, models.NotifMessage, last.Type)
}

func TestSendWhileRecipientOnlineSkipsNotification(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	f := newMessageFixture(alice, bob)
	befriend(t, f, alice, bob)

	f.notifier.online[bob.Hex()] = true

	_, err := f.svc.Send(ctx, alice, bob, "hi again", "", "")
	require.NoError(t, err)

	require.Len(t, f.notifier.delivered, 1)
	for _, n := range f.notifier.notificationsFor(bob) {
		assert.NotEqual(t, models.NotifMessage, n.Type)
	}
}

func TestSendRespectsMessagingPolicy(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	f := newMessageFixture(alice, bob)

	// Default policy is friends-only and the pair are strangers.
	_, err := f.svc.Send(ctx, alice, bob, "hello stranger", "", "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSendValidation(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	f := newMessageFixture(alice, bob)
	befriend(t, f, alice, bob)

	_, err := f.svc.Send(ctx, alice, alice, "hi", "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = f.svc.Send(ctx, alice, bob, "   ", "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// Three messages in sequence: history keeps send order, the conversation
// summary carries only the last one.
func TestConversationOrderingAndSummary(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	f := newMessageFixture(alice, bob)
	befriend(t, f, alice, bob)

	for _, text := range []string{"m1", "m2", "m3"} {
		_, err := f.svc.Send(ctx, alice, bob, text, "", "")
		require.NoError(t, err)
	}

	history, err := f.svc.History(ctx, alice, bob)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "m1", history[0].Text)
	assert.Equal(t, "m2", history[1].Text)
	assert.Equal(t, "m3", history[2].Text)

	summaries, err := f.svc.ListConversations(ctx, alice)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, bob, summaries[0].PartnerID)
	assert.Equal(t, "m3", summaries[0].LastMessage.Text)
	assert.Equal(t, int64(0), summaries[0].UnreadCount)

	summaries, err = f.svc.ListConversations(ctx, bob)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(3), summaries[0].UnreadCount)
}

func TestMarkConversationRead(t *testing.T) {
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	f := newMessageFixture(alice, bob)
	befriend(t, f, alice, bob)

	_, err := f.svc.Send(ctx, alice, bob, "one", "", "")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, alice, bob, "two", "", "")
	require.NoError(t, err)

	n, err := f.svc.MarkConversationRead(ctx, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	unread, err := f.svc.UnreadCount(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestConversationKeyCanonical(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	assert.Equal(t, models.ConversationKey(a, b), models.ConversationKey(b, a))
}
