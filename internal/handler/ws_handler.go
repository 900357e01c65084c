package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dark0-7s/scams-20b.io/internal/errs"
	"github.com/dark0-7s/scams-20b.io/internal/service"
)

// StreamWSHandler serves live updates over WebSocket for native clients that
// cannot hold an EventSource open.
type StreamWSHandler struct {
	hub      *service.LiveHub
	sess     service.SessionServicer
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewStreamWSHandler creates the WebSocket stream handler.
func NewStreamWSHandler(hub *service.LiveHub, sess service.SessionServicer, readBuf, writeBuf int, logger *zap.Logger) *StreamWSHandler {
	return &StreamWSHandler{
		hub:  hub,
		sess: sess,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBuf,
			WriteBufferSize: writeBuf,
			// Allow all origins for dev; in prod set CheckOrigin.
		},
		logger: logger,
	}
}

// ServeWS upgrades GET /api/sessions/:id/ws and pushes LiveUpdate frames as
// JSON text messages. The subscription is one-directional: client messages
// are read only to detect disconnects.
func (h *StreamWSHandler) ServeWS(c *gin.Context) {
	sessionID := c.Param("id")
	sess, err := h.sess.Get(sessionID)
	if err != nil {
		if errors.Is(err, errs.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return
	}
	if !sess.Active {
		c.JSON(http.StatusGone, gin.H{"error": "session already stopped"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := h.hub.Subscribe(sessionID)

	// Writer: push updates until the hub closes the channel.
	go func() {
		for update := range sub.Ch {
			if err := conn.WriteJSON(update); err != nil {
				break
			}
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session stopped"))
		_ = conn.Close()
	}()

	// Reader: detect client disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			break
		}
	}
	h.hub.Unsubscribe(sub)
	_ = conn.Close()
}
