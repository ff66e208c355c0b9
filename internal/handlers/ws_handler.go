package handlers

import (
	"net/http"

	"github.com/bekarys04/Social_Network/internal/realtime"
	"github.com/bekarys04/Social_Network/internal/services"
	jwtutil "github.com/bekarys04/Social_Network/pkg/jwt"
	"github.com/bekarys04/Social_Network/pkg/logger"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WSHandler owns the live websocket endpoint. Each accepted connection
// becomes a session in the presence registry; the dispatcher takes care of
// routing events to it afterwards.
type WSHandler struct {
	Registry   *realtime.Registry
	Dispatcher *realtime.Dispatcher
	Messages   *services.MessageService
	JWTSecret  string
}

func NewWSHandler(registry *realtime.Registry, dispatcher *realtime.Dispatcher, messages *services.MessageService, jwtSecret string) *WSHandler {
	return &WSHandler{Registry: registry, Dispatcher: dispatcher, Messages: messages, JWTSecret: jwtSecret}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS authenticates the token from the query string, upgrades the
// connection and runs the read loop until the client goes away.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		logger.Log.Warnf("WebSocket auth failed: %v", err)
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warnf("WebSocket upgrade failed: %v", err)
		return
	}

	session := realtime.NewSession(userID, conn)
	h.Registry.Register(userID, session)
	logger.Log.WithField("user_id", userID).Info("WebSocket connected")

	defer func() {
		h.Registry.Unregister(userID, session)
		session.Close()
		logger.Log.WithField("user_id", userID).Info("WebSocket disconnected")
	}()

	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return
	}

	for {
		var frame realtime.InboundFrame
		if err := session.ReadJSON(&frame); err != nil {
			break // client went away
		}

		switch frame.Type {
		case realtime.FrameTyping:
			h.Dispatcher.SendTyping(userID, frame.ReceiverID, frame.Typing)

		case realtime.FrameJoinConversation:
			partnerID, err := primitive.ObjectIDFromHex(frame.ReceiverID)
			if err != nil {
				continue
			}
			if _, err := h.Messages.MarkConversationRead(r.Context(), userObjID, partnerID); err != nil {
				logger.Log.Warnf("Failed to mark conversation read for %s: %v", userID, err)
			}

		default:
			// Plain text frames are accepted over the socket as well; the
			// service persists and fans out exactly like the REST path.
			if frame.Text == "" {
				continue
			}
			receiverID, err := primitive.ObjectIDFromHex(frame.ReceiverID)
			if err != nil {
				continue
			}
			if _, err := h.Messages.Send(r.Context(), userObjID, receiverID, frame.Text, "", ""); err != nil {
				logger.Log.Warnf("Failed to send message over socket: %v", err)
			}
		}
	}
}
