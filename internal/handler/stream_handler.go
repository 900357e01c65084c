package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dark0-7s/scams-20b.io/internal/errs"
	"github.com/dark0-7s/scams-20b.io/internal/service"
)

// StreamHandler serves the SSE live-update stream for a session.
type StreamHandler struct {
	hub    *service.LiveHub
	sess   service.SessionServicer
	logger *zap.Logger
}

// NewStreamHandler creates the SSE stream handler.
func NewStreamHandler(hub *service.LiveHub, sess service.SessionServicer, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{hub: hub, sess: sess, logger: logger}
}

// Stream handles GET /api/sessions/:id/stream. The server writes
// `data: {"type":"attendance","data":…}` frames until the session stops or
// the client disconnects. Late joiners only see subsequent events.
func (h *StreamHandler) Stream(c *gin.Context) {
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

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	sub := h.hub.Subscribe(sessionID)
	defer h.hub.Unsubscribe(sub)

	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	fmt.Fprintf(c.Writer, ": connected\n\n")
	flusher.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case update, open := <-sub.Ch:
			if !open {
				// Session stopped; hub closed the channel.
				return
			}
			data, err := json.Marshal(update)
			if err != nil {
				h.logger.Warn("marshal live update failed", zap.Error(err))
				continue
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", data)
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}
