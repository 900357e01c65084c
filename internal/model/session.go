package model

// SessionMode selects the authentication path ingestion uses.
type SessionMode string

const (
	SessionModeBLE    SessionMode = "ble"
	SessionModeOnline SessionMode = "online"
)

// Session is the API view of an attendance session (not the GORM entity).
type Session struct {
	ID          string      `json:"id"`
	TimetableID string      `json:"timetableId"`
	Mode        SessionMode `json:"mode"`
	StartedAt   int64       `json:"startedAt"` // epoch ms
	StoppedAt   *int64      `json:"stoppedAt,omitempty"`
	Active      bool        `json:"active"`
}

// StartSessionRequest is the request body for POST /api/sessions.
type StartSessionRequest struct {
	TimetableID string      `json:"timetableId" binding:"required"`
	Mode        SessionMode `json:"mode" binding:"required,oneof=ble online"`
}

// SessionResponse wraps a single session (start/stop responses).
type SessionResponse struct {
	Session Session `json:"session"`
}

// ListSessionsResponse is the response for GET /api/sessions.
type ListSessionsResponse struct {
	Sessions []Session `json:"sessions"`
}
