package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/codedocs/board-manager/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// sendBuffer is the per-session outbound queue size. A session
	// that falls this far behind the room is dropped instead of
	// blocking everyone else's delivery.
	sendBuffer = 64

	writeWait = 10 * time.Second
)

// Session is the server-side state of one live connection: the
// resolved user, the bound board and the outbound event queue.
// Inbound commands are processed strictly in arrival order.
type Session struct {
	id     string
	conn   *websocket.Conn
	user   *models.User
	board  *models.Board
	engine *Engine

	send chan Event
	done chan struct{}
	once sync.Once
}

func newSession(conn *websocket.Conn, user *models.User, board *models.Board, engine *Engine) *Session {
	return &Session{
		id:     uuid.NewString(),
		conn:   conn,
		user:   user,
		board:  board,
		engine: engine,
		send:   make(chan Event, sendBuffer),
		done:   make(chan struct{}),
	}
}

// enqueue queues an event for delivery without ever blocking the
// caller. A full queue means the client stopped reading; the session
// is shut down and the room moves on.
func (s *Session) enqueue(evt Event) {
	select {
	case <-s.done:
	default:
		select {
		case s.send <- evt:
		default:
			s.shutdown()
		}
	}
}

// broadcast sends an event to the whole room, sender included.
func (s *Session) broadcast(evt Event) {
	s.engine.broadcaster.Broadcast(s.board.ID, evt)
}

// writePump is the session's single writer goroutine.
func (s *Session) writePump() {
	for {
		select {
		case <-s.done:
			return
		case evt := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(evt); err != nil {
				s.shutdown()
				return
			}
		}
	}
}

// readPump receives and dispatches commands until the connection
// drops. A dispatch error means the store failed mid-command; the
// session closes rather than silently dropping mutations.
func (s *Session) readPump() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg map[string]interface{}
		if err := json.Unmarshal(data, &msg); err != nil {
			s.enqueue(errorEvent("", http.StatusBadRequest, "malformed payload"))
			continue
		}

		if err := s.dispatch(msg); err != nil {
			s.engine.logger.Errorw("command failed, closing session",
				"session_id", s.id,
				"board_id", s.board.ID,
				"error", err,
			)
			closeMsg := websocket.FormatCloseMessage(closeCode(http.StatusInternalServerError), "storage failure")
			_ = s.conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait))
			return
		}
	}
}

func (s *Session) shutdown() {
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}
