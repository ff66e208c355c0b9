package realtime

import "github.com/bekarys04/Social_Network/internal/models"

// Outbound event types pushed over the live channel.
const (
	EventNewMessage       = "newMessage"
	EventNewNotification  = "newNotification"
	EventUserStatusUpdate = "userStatusUpdate"
	EventDisplayTyping    = "displayTyping"
)

// Inbound frame types accepted from a client.
const (
	FrameJoinConversation = "joinConversation"
	FrameTyping           = "typing"
)

// User status values carried by userStatusUpdate.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

type MessageEvent struct {
	Type           string         `json:"type"`
	ConversationID string         `json:"conversation_id"`
	Message        models.Message `json:"message"`
}

type NotificationEvent struct {
	Type         string              `json:"type"`
	Notification models.Notification `json:"notification"`
}

type StatusEvent struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

type TypingEvent struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
	Typing bool   `json:"typing"`
}

// InboundFrame is the shape of frames read from a client connection.
type InboundFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id,omitempty"`
	ReceiverID     string `json:"receiver_id,omitempty"`
	Text           string `json:"text,omitempty"`
	Typing         bool   `json:"typing,omitempty"`
}
