package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handle is one live, addressable delivery channel belonging to a user.
// The registry and dispatcher only ever see this interface.
type Handle interface {
	ID() string
	SendJSON(v interface{}) error
	Close() error
}

// Session wraps a websocket connection as a Handle. Writes are serialized
// with a mutex because gorilla/websocket allows only one concurrent writer.
type Session struct {
	id     string
	UserID string
	conn   *websocket.Conn
	mu     sync.Mutex
}

// NewSession creates a session for an upgraded connection.
func NewSession(userID string, conn *websocket.Conn) *Session {
	return &Session{
		id:     uuid.NewString(),
		UserID: userID,
		conn:   conn,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) SendJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *Session) Close() error {
	return s.conn.Close()
}

// ReadJSON reads the next inbound frame. Reads are only ever done from the
// session's own connection goroutine, so no locking is needed here.
func (s *Session) ReadJSON(v interface{}) error {
	return s.conn.ReadJSON(v)
}
