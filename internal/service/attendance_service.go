package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dark0-7s/scams-20b.io/internal/beacon"
	"github.com/dark0-7s/scams-20b.io/internal/errs"
	"github.com/dark0-7s/scams-20b.io/internal/model"
)

// macTruncBytes is the number of HMAC bytes a beacon advertisement carries.
const macTruncBytes = 8

// AttendanceService validates incoming attendance events and records the
// accepted ones. It is the only writer of attendance entries.
type AttendanceService struct {
	db        *gorm.DB
	hub       *LiveHub
	secret    string
	freshness int64 // accept window in ms, symmetric around now
	log       *zap.Logger
}

// NewAttendanceService creates the ingestion engine.
func NewAttendanceService(db *gorm.DB, hub *LiveHub, secret string, freshnessMS int64, log *zap.Logger) *AttendanceService {
	return &AttendanceService{db: db, hub: hub, secret: secret, freshness: freshnessMS, log: log}
}

// Ingest runs the validation pipeline and persists the event as a record.
// Resubmission for the same (session, user) returns the existing record
// unchanged, so retries never double-count a student.
func (s *AttendanceService) Ingest(ev model.AttendanceEvent) (*model.AttendanceRecord, error) {
	var sess model.AttendanceSession
	if err := s.db.Where("id = ?", ev.SessionID).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUnknownSession
		}
		return nil, err
	}
	if !sess.Active {
		return nil, errs.ErrUnknownSession
	}

	delta := time.Now().UnixMilli() - ev.Timestamp
	if delta < 0 {
		delta = -delta
	}
	if delta > s.freshness {
		return nil, errs.ErrStaleEvent
	}

	// Only beacon-sourced events carry a MAC; online/manual submissions in a
	// BLE session arrive over an already-authenticated channel and skip the
	// check.
	if sess.Mode == string(model.SessionModeBLE) && ev.Method == model.MethodBLE {
		if err := s.verifyBeaconMAC(ev); err != nil {
			return nil, err
		}
	}

	var existing model.AttendanceEntry
	err := s.db.Where("session_id = ? AND user_id = ?", ev.SessionID, ev.UserID).
		First(&existing).Error
	if err == nil {
		return entryToRecord(&existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ent := eventToEntry(ev)
	ent.ID = "att_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	if err := s.db.Create(ent).Error; err != nil {
		// Lost a concurrent insert race for the same (session, user); the
		// winner's row is the record.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if e := s.db.Where("session_id = ? AND user_id = ?", ev.SessionID, ev.UserID).
				First(&existing).Error; e == nil {
				return entryToRecord(&existing), nil
			}
		}
		return nil, err
	}

	rec := entryToRecord(ent)
	s.hub.Publish(ev.SessionID, *rec)
	s.log.Info("attendance recorded",
		zap.String("session_id", ev.SessionID),
		zap.String("user_id", ev.UserID),
		zap.String("method", string(ev.Method)))
	return rec, nil
}

// verifyBeaconMAC checks the truncated HMAC a BLE beacon signed over
// sessionId|userId|floor(ts/1000)|nonce. Failures are logged for audit:
// an invalid MAC on an active session may be a spoofing attempt.
func (s *AttendanceService) verifyBeaconMAC(ev model.AttendanceEvent) error {
	meta := ev.Metadata
	if meta == nil || meta.Nonce == "" || meta.MAC == "" {
		s.log.Warn("ble event missing nonce or mac",
			zap.String("session_id", ev.SessionID),
			zap.String("user_id", ev.UserID))
		return errs.ErrUnauthenticated
	}
	payload := beacon.Payload(ev.SessionID, ev.UserID, ev.Timestamp, meta.Nonce)
	expected := beacon.TruncatedHMAC(s.secret, payload, macTruncBytes)
	if !beacon.ConstantTimeEqual(expected, meta.MAC) {
		s.log.Warn("ble mac mismatch",
			zap.String("session_id", ev.SessionID),
			zap.String("user_id", ev.UserID))
		return errs.ErrUnauthenticated
	}
	return nil
}

func eventToEntry(ev model.AttendanceEvent) *model.AttendanceEntry {
	ent := &model.AttendanceEntry{
		SessionID: ev.SessionID,
		UserID:    ev.UserID,
		Method:    string(ev.Method),
		Timestamp: ev.Timestamp,
	}
	if m := ev.Metadata; m != nil {
		ent.Nonce = m.Nonce
		ent.MAC = m.MAC
		ent.RSSI = m.RSSI
		ent.Room = m.Room
		ent.Source = m.Source
	}
	return ent
}

func entryToRecord(ent *model.AttendanceEntry) *model.AttendanceRecord {
	rec := &model.AttendanceRecord{
		ID:        ent.ID,
		SessionID: ent.SessionID,
		UserID:    ent.UserID,
		Method:    model.AttendanceMethod(ent.Method),
		Timestamp: ent.Timestamp,
	}
	if ent.Nonce != "" || ent.MAC != "" || ent.RSSI != nil || ent.Room != "" || ent.Source != "" {
		rec.Metadata = &model.EventMetadata{
			Nonce:  ent.Nonce,
			MAC:    ent.MAC,
			RSSI:   ent.RSSI,
			Room:   ent.Room,
			Source: ent.Source,
		}
	}
	return rec
}
