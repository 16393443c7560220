package realtime

import (
	"errors"
	"net/http"
	"time"

	"github.com/codedocs/board-manager/internal/dto"
	"github.com/codedocs/board-manager/internal/repository"
	"github.com/codedocs/board-manager/internal/token"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine runs the collaboration protocol for board connections: it
// authenticates the credential, binds the session to a board, joins
// the room and serves commands until the connection goes away.
type Engine struct {
	resolver    token.Resolver
	registry    *Registry
	broadcaster Broadcaster
	boards      repository.BoardRepository
	accesses    repository.AccessRepository
	nodes       repository.NodeRepository
	columns     repository.ColumnRepository
	users       repository.UserRepository
	logger      *zap.SugaredLogger
}

// EngineDeps lists the collaborators an Engine needs.
type EngineDeps struct {
	Resolver    token.Resolver
	Registry    *Registry
	Broadcaster Broadcaster
	Boards      repository.BoardRepository
	Accesses    repository.AccessRepository
	Nodes       repository.NodeRepository
	Columns     repository.ColumnRepository
	Users       repository.UserRepository
	Logger      *zap.SugaredLogger
}

func NewEngine(deps EngineDeps) *Engine {
	return &Engine{
		resolver:    deps.Resolver,
		registry:    deps.Registry,
		broadcaster: deps.Broadcaster,
		boards:      deps.Boards,
		accesses:    deps.Accesses,
		nodes:       deps.Nodes,
		columns:     deps.Columns,
		users:       deps.Users,
		logger:      deps.Logger,
	}
}

// Serve drives one connection from handshake to teardown. It blocks
// until the connection closes.
func (e *Engine) Serve(conn *websocket.Conn, boardID, credential string) {
	userID, err := e.resolver.Resolve(credential)
	if err != nil {
		rejectConn(conn, http.StatusUnauthorized, "invalid access token")
		return
	}

	user, err := e.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rejectConn(conn, http.StatusUnauthorized, "unknown user")
		} else {
			rejectConn(conn, http.StatusInternalServerError, "storage failure")
		}
		return
	}

	board, err := e.boards.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rejectConn(conn, http.StatusNotFound, "board not found")
		} else {
			rejectConn(conn, http.StatusInternalServerError, "storage failure")
		}
		return
	}

	access, err := e.accesses.GetOrCreate(user, board)
	if err != nil {
		rejectConn(conn, http.StatusInternalServerError, "storage failure")
		return
	}

	s := newSession(conn, user, board, e)
	userSessions := e.registry.Join(board.ID, s)
	go s.writePump()

	s.enqueue(Event{"type": EvtChannelName, "channel_name": s.id})
	s.enqueue(Event{"type": EvtYourAccess, "user": dto.ToUserWithAccessDTO(*access)})
	s.enqueue(Event{"type": CmdBoardInfo, "board": dto.ToBoardDTO(*board)})

	// Presence is per user, not per connection: only the user's first
	// live session announces them. The count comes from the join
	// itself, under the registry lock, so concurrent joins of one
	// user cannot both (or neither) announce.
	if userSessions == 1 {
		e.broadcaster.Broadcast(board.ID, Event{
			"type": EvtNewUser,
			"user": dto.ToUserWithAccessDTO(*access),
		})
	}

	e.logger.Infow("session joined",
		"session_id", s.id,
		"board_id", board.ID,
		"user_id", user.ID,
	)

	s.readPump()
	e.teardown(s)
}

// teardown deregisters the session and, if this was the user's last
// session on the board, announces their departure and frees every
// node lock they still held.
func (e *Engine) teardown(s *Session) {
	if e.registry.Leave(s.board.ID, s) == 0 {
		e.broadcaster.Broadcast(s.board.ID, Event{
			"type": EvtDeleteUser,
			"user": dto.ToUserDTO(*s.user),
		})

		nodes, err := e.nodes.ReleaseAllLocks(s.board.ID, s.user.ID)
		if err != nil {
			e.logger.Errorw("failed to release node locks on disconnect",
				"session_id", s.id,
				"board_id", s.board.ID,
				"user_id", s.user.ID,
				"error", err,
			)
		} else {
			for _, n := range nodes {
				e.broadcaster.Broadcast(s.board.ID, Event{
					"type": EvtNodeChanged,
					"node": dto.ToNodeDTO(n, s.board.Prefix),
				})
			}
		}
	}

	s.shutdown()
	e.logger.Infow("session left",
		"session_id", s.id,
		"board_id", s.board.ID,
		"user_id", s.user.ID,
	)
}

// rejectConn refuses a connection before it enters the room. The
// close code carries the HTTP-style status shifted into the
// application range.
func rejectConn(conn *websocket.Conn, httpStatus int, reason string) {
	msg := websocket.FormatCloseMessage(closeCode(httpStatus), reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	_ = conn.Close()
}
