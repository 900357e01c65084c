package errs

import "errors"

// Domain sentinel errors, mapped to HTTP status codes in handlers.
var (
	// ErrInvalidRequest: session start with missing or unusable fields (400).
	ErrInvalidRequest = errors.New("timetable id and mode are required")
	// ErrSessionNotFound: stop/stream referenced a session id that does not exist (404).
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionConflict: an active session already exists for the timetable (409).
	ErrSessionConflict = errors.New("active session already exists for timetable")
	// ErrUnknownSession: ingestion target session is absent or already stopped (400).
	ErrUnknownSession = errors.New("unknown or inactive session")
	// ErrStaleEvent: event timestamp outside the freshness window (400).
	ErrStaleEvent = errors.New("event timestamp outside freshness window")
	// ErrUnauthenticated: BLE MAC missing or invalid (401).
	ErrUnauthenticated = errors.New("beacon authentication failed")
)
