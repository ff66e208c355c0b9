package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bekarys04/Social_Network/internal/apperrors"
	"github.com/bekarys04/Social_Network/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes. The connection fake reproduces the unique-index
// behavior of the real collection: one edge per canonical pair, enforced
// atomically under its lock.

type fakeConnectionStore struct {
	mu    sync.Mutex
	byKey map[string]*models.Connection
	byID  map[primitive.ObjectID]*models.Connection
}

func newFakeConnectionStore() *fakeConnectionStore {
	return &fakeConnectionStore{
		byKey: make(map[string]*models.Connection),
		byID:  make(map[primitive.ObjectID]*models.Connection),
	}
}

func pairKey(a, b primitive.ObjectID) string {
	lo, hi := models.CanonicalPair(a, b)
	return lo.Hex() + ":" + hi.Hex()
}

func (f *fakeConnectionStore) CreateEdge(_ context.Context, initiator, other primitive.ObjectID) (*models.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := pairKey(initiator, other)
	if _, exists := f.byKey[key]; exists {
		return nil, fmt.Errorf("edge already exists for pair: %w", apperrors.ErrConflict)
	}

	lo, hi := models.CanonicalPair(initiator, other)
	edge := &models.Connection{
		ID:          primitive.NewObjectID(),
		UserLo:      lo,
		UserHi:      hi,
		InitiatorID: initiator,
		Status:      models.ConnectionPending,
		CreatedAt:   time.Now(),
	}
	f.byKey[key] = edge
	f.byID[edge.ID] = edge
	return edge, nil
}

func (f *fakeConnectionStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	edge, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("connection: %w", apperrors.ErrNotFound)
	}
	copied := *edge
	return &copied, nil
}

func (f *fakeConnectionStore) GetBetween(_ context.Context, a, b primitive.ObjectID) (*models.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	edge, ok := f.byKey[pairKey(a, b)]
	if !ok {
		return nil, fmt.Errorf("connection: %w", apperrors.ErrNotFound)
	}
	copied := *edge
	return &copied, nil
}

func (f *fakeConnectionStore) Accept(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	edge, ok := f.byID[id]
	if !ok || edge.Status != models.ConnectionPending {
		return fmt.Errorf("connection is not pending: %w", apperrors.ErrInvalidState)
	}
	now := time.Now()
	edge.Status = models.ConnectionAccepted
	edge.AcceptedAt = &now
	return nil
}

func (f *fakeConnectionStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	edge, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("connection: %w", apperrors.ErrNotFound)
	}
	delete(f.byID, id)
	delete(f.byKey, pairKey(edge.UserLo, edge.UserHi))
	return nil
}

func (f *fakeConnectionStore) DeleteAccepted(_ context.Context, a, b primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	edge, ok := f.byKey[pairKey(a, b)]
	if !ok || edge.Status != models.ConnectionAccepted {
		return fmt.Errorf("no accepted connection: %w", apperrors.ErrNotFound)
	}
	delete(f.byID, edge.ID)
	delete(f.byKey, pairKey(a, b))
	return nil
}

func (f *fakeConnectionStore) DeleteBetween(_ context.Context, a, b primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if edge, ok := f.byKey[pairKey(a, b)]; ok {
		delete(f.byID, edge.ID)
		delete(f.byKey, pairKey(a, b))
	}
	return nil
}

func (f *fakeConnectionStore) GetPendingFor(_ context.Context, userID primitive.ObjectID) ([]models.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pending []models.Connection
	for _, edge := range f.byKey {
		if edge.Status != models.ConnectionPending || edge.InitiatorID == userID {
			continue
		}
		if edge.UserLo == userID || edge.UserHi == userID {
			pending = append(pending, *edge)
		}
	}
	return pending, nil
}

func (f *fakeConnectionStore) GetFriendIDs(_ context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var friends []primitive.ObjectID
	for _, edge := range f.byKey {
		if edge.Status != models.ConnectionAccepted {
			continue
		}
		if edge.UserLo == userID || edge.UserHi == userID {
			friends = append(friends, edge.Other(userID))
		}
	}
	return friends, nil
}

func (f *fakeConnectionStore) HasMutualFriend(ctx context.Context, viewer, owner primitive.ObjectID) (bool, error) {
	ownerFriends, _ := f.GetFriendIDs(ctx, owner)
	viewerFriends, _ := f.GetFriendIDs(ctx, viewer)
	for _, of := range ownerFriends {
		for _, vf := range viewerFriends {
			if of == vf {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeConnectionStore) edgeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byKey)
}

type fakeBlockStore struct {
	mu     sync.Mutex
	blocks map[string]bool // "blocker:blocked"
}

func newFakeBlockStore() *fakeBlockStore {
	return &fakeBlockStore{blocks: make(map[string]bool)}
}

func (f *fakeBlockStore) Upsert(_ context.Context, blocker, blocked primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocks[blocker.Hex()+":"+blocked.Hex()] = true
	return nil
}

func (f *fakeBlockStore) Delete(_ context.Context, blocker, blocked primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blocks, blocker.Hex()+":"+blocked.Hex())
	return nil
}

func (f *fakeBlockStore) ExistsEitherDirection(_ context.Context, a, b primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blocks[a.Hex()+":"+b.Hex()] || f.blocks[b.Hex()+":"+a.Hex()], nil
}

func (f *fakeBlockStore) ListBlocked(_ context.Context, blocker primitive.ObjectID) ([]models.Block, error) {
	return nil, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore(ids ...primitive.ObjectID) *fakeUserStore {
	f := &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
	for i, id := range ids {
		f.users[id] = &models.User{ID: id, Username: fmt.Sprintf("user%d", i+1)}
	}
	return f
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	return user, nil
}

func (f *fakeUserStore) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []models.User
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (f *fakeUserStore) UpdateLastActive(_ context.Context, id primitive.ObjectID) error {
	return nil
}

type fakePrivacyStore struct {
	mu       sync.Mutex
	settings map[primitive.ObjectID]*models.PrivacySettings
}

func newFakePrivacyStore() *fakePrivacyStore {
	return &fakePrivacyStore{settings: make(map[primitive.ObjectID]*models.PrivacySettings)}
}

func (f *fakePrivacyStore) GetOrCreate(_ context.Context, userID primitive.ObjectID) (*models.PrivacySettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.settings[userID]; ok {
		return s, nil
	}
	s := models.DefaultPrivacySettings(userID)
	f.settings[userID] = s
	return s, nil
}

func (f *fakePrivacyStore) Update(_ context.Context, settings *models.PrivacySettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[settings.UserID] = settings
	return nil
}

type fakeMessageStore struct {
	mu       sync.Mutex
	messages []models.Message
	seq      int
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{}
}

func (f *fakeMessageStore) Insert(_ context.Context, msg *models.Message) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	msg.ID = primitive.NewObjectID()
	msg.ConversationKey = models.ConversationKey(msg.SenderID, msg.ReceiverID)
	msg.CreatedAt = time.Unix(int64(f.seq), 0)
	f.messages = append(f.messages, *msg)
	return msg, nil
}

func (f *fakeMessageStore) History(_ context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := models.ConversationKey(a, b)
	var history []models.Message
	for _, msg := range f.messages {
		if msg.ConversationKey == key {
			history = append(history, msg)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.Before(history[j].CreatedAt)
	})
	return history, nil
}

func (f *fakeMessageStore) LatestPerPartner(_ context.Context, userID primitive.ObjectID) ([]models.ConversationSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	latest := make(map[string]models.Message)
	unread := make(map[string]int64)
	for _, msg := range f.messages {
		if msg.SenderID != userID && msg.ReceiverID != userID {
			continue
		}
		if prev, ok := latest[msg.ConversationKey]; !ok || msg.CreatedAt.After(prev.CreatedAt) {
			latest[msg.ConversationKey] = msg
		}
		if msg.ReceiverID == userID && !msg.Read {
			unread[msg.ConversationKey]++
		}
	}

	var summaries []models.ConversationSummary
	for key, msg := range latest {
		partner := msg.SenderID
		if partner == userID {
			partner = msg.ReceiverID
		}
		summaries = append(summaries, models.ConversationSummary{
			PartnerID:   partner,
			LastMessage: msg,
			UnreadCount: unread[key],
		})
	}
	return summaries, nil
}

func (f *fakeMessageStore) MarkConversationRead(_ context.Context, reader, partner primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := models.ConversationKey(reader, partner)
	var n int64
	for i := range f.messages {
		if f.messages[i].ConversationKey == key && f.messages[i].ReceiverID == reader && !f.messages[i].Read {
			f.messages[i].Read = true
			n++
		}
	}
	return n, nil
}

func (f *fakeMessageStore) CountUnread(_ context.Context, userID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, msg := range f.messages {
		if msg.ReceiverID == userID && !msg.Read {
			n++
		}
	}
	return n, nil
}

// fakeNotifier records dispatched events instead of pushing them.
type fakeNotifier struct {
	mu        sync.Mutex
	notifs    []*models.Notification
	delivered []*models.Message
	online    map[string]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{online: make(map[string]bool)}
}

func (f *fakeNotifier) Notify(_ context.Context, notif *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	notif.ID = primitive.NewObjectID()
	f.notifs = append(f.notifs, notif)
	return nil
}

func (f *fakeNotifier) DeliverMessage(msg *models.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delivered = append(f.delivered, msg)
}

func (f *fakeNotifier) Online(userID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.online[userID]
}

func (f *fakeNotifier) notificationsFor(userID primitive.ObjectID) []*models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for _, n := range f.notifs {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
