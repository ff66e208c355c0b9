package realtime

import (
	"context"

	"github.com/bekarys04/Social_Network/internal/models"
	"github.com/sirupsen/logrus"
)

// NotificationPersister is the durable fallback for dispatched notifications.
type NotificationPersister interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
}

// Dispatcher fans events out to all live handles of a target user. Durable
// events (messages, notifications) are persisted before any live push, so a
// failed push only costs immediacy, never the event. Ambient events (typing,
// status) are fire-and-forget.
type Dispatcher struct {
	registry *Registry
	notifs   NotificationPersister
}

func NewDispatcher(registry *Registry, notifs NotificationPersister) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		notifs:   notifs,
	}
}

// Notify persists the notification and then pushes it to the recipient's
// live sessions. The returned error reflects persistence only; delivery
// failures are absorbed here.
func (d *Dispatcher) Notify(ctx context.Context, notif *models.Notification) error {
	if err := d.notifs.CreateNotification(ctx, notif); err != nil {
		return err
	}

	d.fanOut(notif.UserID.Hex(), NotificationEvent{
		Type:         EventNewNotification,
		Notification: *notif,
	})
	return nil
}

// DeliverMessage pushes an already-persisted message to every live session
// of the receiver and echoes it to the sender's other sessions.
func (d *Dispatcher) DeliverMessage(msg *models.Message) {
	event := MessageEvent{
		Type:           EventNewMessage,
		ConversationID: msg.ConversationKey,
		Message:        *msg,
	}
	d.fanOut(msg.ReceiverID.Hex(), event)
	d.fanOut(msg.SenderID.Hex(), event)
}

// BroadcastStatus pushes a presence change to each of the given users.
// Never persisted.
func (d *Dispatcher) BroadcastStatus(userID, status string, targets []string) {
	event := StatusEvent{Type: EventUserStatusUpdate, UserID: userID, Status: status}
	for _, target := range targets {
		d.fanOut(target, event)
	}
}

// Online reports whether the user has any live session right now.
func (d *Dispatcher) Online(userID string) bool {
	return d.registry.IsOnline(userID)
}

// SendTyping pushes a typing indicator to one user. Never persisted.
func (d *Dispatcher) SendTyping(fromUserID, toUserID string, typing bool) {
	d.fanOut(toUserID, TypingEvent{Type: EventDisplayTyping, UserID: fromUserID, Typing: typing})
}

// fanOut attempts delivery to every live handle of the target. A handle that
// died after the snapshot fails its write; that is logged and ignored, the
// persisted record is the retry mechanism.
func (d *Dispatcher) fanOut(userID string, event interface{}) {
	for _, h := range d.registry.LiveHandles(userID) {
		if err := h.SendJSON(event); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"userID":  userID,
				"session": h.ID(),
			}).Warn("Live delivery failed, relying on durable record")
		}
	}
}
