package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dark0-7s/scams-20b.io/internal/errs"
	"github.com/dark0-7s/scams-20b.io/internal/model"
	"github.com/dark0-7s/scams-20b.io/internal/service"
)

// SessionHandler handles the REST API for sessions.
type SessionHandler struct {
	svc service.SessionServicer
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(svc service.SessionServicer) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// ListSessions godoc
// GET /api/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.svc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sessions"})
		return
	}
	c.JSON(http.StatusOK, model.ListSessionsResponse{Sessions: sessions})
}

// StartSession godoc
// POST /api/sessions
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req model.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	sess, err := h.svc.Start(req.TimetableID, req.Mode)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		case errors.Is(err, errs.ErrSessionConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "active session exists for timetable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		}
		return
	}
	c.JSON(http.StatusCreated, model.SessionResponse{Session: *sess})
}

// StopSession godoc
// POST /api/sessions/:id/stop
func (h *SessionHandler) StopSession(c *gin.Context) {
	id := c.Param("id")
	sess, err := h.svc.Stop(id)
	if err != nil {
		if errors.Is(err, errs.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stop session"})
		return
	}
	c.JSON(http.StatusOK, model.SessionResponse{Session: *sess})
}
