package model

// AttendanceMethod is how the event was captured.
type AttendanceMethod string

const (
	MethodBLE    AttendanceMethod = "ble"
	MethodOnline AttendanceMethod = "online"
	MethodManual AttendanceMethod = "manual"
)

// EventMetadata carries the optional per-method fields. BLE events use
// Nonce/MAC (and usually RSSI); online/manual events may carry Room/Source.
type EventMetadata struct {
	Nonce  string `json:"nonce,omitempty"`
	MAC    string `json:"mac,omitempty"`
	RSSI   *int   `json:"rssi,omitempty"`
	Room   string `json:"room,omitempty"`
	Source string `json:"source,omitempty"` // "anchor" or "client"
}

// AttendanceEvent is a not-yet-persisted submission from a device.
type AttendanceEvent struct {
	SessionID string           `json:"sessionId" binding:"required"`
	UserID    string           `json:"userId" binding:"required"`
	Method    AttendanceMethod `json:"method" binding:"required,oneof=ble online manual"`
	Timestamp int64            `json:"timestamp" binding:"required"` // epoch ms
	Metadata  *EventMetadata   `json:"metadata,omitempty"`
}

// AttendanceRecord is a persisted, accepted event.
type AttendanceRecord struct {
	ID        string           `json:"id"`
	SessionID string           `json:"sessionId"`
	UserID    string           `json:"userId"`
	Method    AttendanceMethod `json:"method"`
	Timestamp int64            `json:"timestamp"`
	Metadata  *EventMetadata   `json:"metadata,omitempty"`
}

// IngestAttendanceRequest is the request body for POST /api/attendance.
type IngestAttendanceRequest struct {
	Event AttendanceEvent `json:"event" binding:"required"`
}

// IngestAttendanceResponse is the success response for POST /api/attendance.
type IngestAttendanceResponse struct {
	OK     bool             `json:"ok"`
	Record AttendanceRecord `json:"record"`
}

// LiveUpdate is the frame pushed to stream subscribers.
type LiveUpdate struct {
	Type string           `json:"type"` // always "attendance"
	Data AttendanceRecord `json:"data"`
}
