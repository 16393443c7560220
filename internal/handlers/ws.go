package handlers

import (
	"net/http"

	"github.com/codedocs/board-manager/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler upgrades board connections and hands them to the realtime engine.
type WSHandler struct {
	engine   *realtime.Engine
	upgrader websocket.Upgrader
	logger   *zap.SugaredLogger
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(engine *realtime.Engine, logger *zap.SugaredLogger) *WSHandler {
	return &WSHandler{
		engine: engine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// Connect upgrades the request and runs the session until it closes.
// Authentication happens after the upgrade so failures can be reported
// through a websocket close code instead of a plain HTTP status.
func (h *WSHandler) Connect(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}

	h.engine.Serve(conn, c.Param("board_id"), c.Param("token"))
}
