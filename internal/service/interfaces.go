package service

import "github.com/dark0-7s/scams-20b.io/internal/model"

// SessionServicer is the session lifecycle contract handlers depend on.
type SessionServicer interface {
	List() ([]model.Session, error)
	Get(id string) (*model.Session, error)
	Start(timetableID string, mode model.SessionMode) (*model.Session, error)
	Stop(id string) (*model.Session, error)
}

// AttendanceIngester is the ingestion contract handlers depend on.
type AttendanceIngester interface {
	Ingest(ev model.AttendanceEvent) (*model.AttendanceRecord, error)
}
