package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dark0-7s/scams-20b.io/internal/errs"
	"github.com/dark0-7s/scams-20b.io/internal/model"
	"github.com/dark0-7s/scams-20b.io/internal/service"
)

// AttendanceHandler handles attendance event ingestion.
type AttendanceHandler struct {
	svc service.AttendanceIngester
}

// NewAttendanceHandler creates an attendance handler.
func NewAttendanceHandler(svc service.AttendanceIngester) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// Ingest godoc
// POST /api/attendance
func (h *AttendanceHandler) Ingest(c *gin.Context) {
	var req model.IngestAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	rec, err := h.svc.Ingest(req.Event)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUnknownSession):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown or inactive session"})
		case errors.Is(err, errs.ErrStaleEvent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "stale event timestamp"})
		case errors.Is(err, errs.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ingest event"})
		}
		return
	}
	c.JSON(http.StatusOK, model.IngestAttendanceResponse{OK: true, Record: *rec})
}
