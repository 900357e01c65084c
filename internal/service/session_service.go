package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dark0-7s/scams-20b.io/internal/errs"
	"github.com/dark0-7s/scams-20b.io/internal/model"
)

// SessionService manages attendance session lifecycle and enforces the
// one-active-session-per-timetable invariant.
type SessionService struct {
	db  *gorm.DB
	hub *LiveHub
	log *zap.Logger

	// startMu serializes the conflict-check-then-create in Start within this
	// process; the partial unique index on (timetable_id) WHERE active is the
	// durable backstop across instances.
	startMu sync.Mutex
}

// NewSessionService creates a session service.
func NewSessionService(db *gorm.DB, hub *LiveHub, log *zap.Logger) *SessionService {
	return &SessionService{db: db, hub: hub, log: log}
}

// List returns all known sessions.
func (s *SessionService) List() ([]model.Session, error) {
	var ents []model.AttendanceSession
	if err := s.db.Order("started_at").Find(&ents).Error; err != nil {
		return nil, err
	}
	out := make([]model.Session, 0, len(ents))
	for i := range ents {
		out = append(out, *sessionToAPI(&ents[i]))
	}
	return out, nil
}

// Get returns a session by id.
func (s *SessionService) Get(id string) (*model.Session, error) {
	var ent model.AttendanceSession
	if err := s.db.Where("id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSessionNotFound
		}
		return nil, err
	}
	return sessionToAPI(&ent), nil
}

// Start creates a new active session for the timetable slot. Fails with
// ErrSessionConflict while another session for the same slot is active.
func (s *SessionService) Start(timetableID string, mode model.SessionMode) (*model.Session, error) {
	// Guarded here as well as at the HTTP boundary: the service is also
	// reachable from CLI wiring.
	if timetableID == "" {
		return nil, errs.ErrInvalidRequest
	}
	if mode != model.SessionModeBLE && mode != model.SessionModeOnline {
		return nil, errs.ErrInvalidRequest
	}

	s.startMu.Lock()
	defer s.startMu.Unlock()

	var count int64
	err := s.db.Model(&model.AttendanceSession{}).
		Where("timetable_id = ? AND active = ?", timetableID, true).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errs.ErrSessionConflict
	}

	ent := &model.AttendanceSession{
		ID:          uuid.New().String(),
		TimetableID: timetableID,
		Mode:        string(mode),
		StartedAt:   time.Now().UnixMilli(),
		Active:      true,
	}
	if err := s.db.Create(ent).Error; err != nil {
		// Another instance won the partial unique index race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.ErrSessionConflict
		}
		return nil, err
	}

	s.log.Info("session started",
		zap.String("session_id", ent.ID),
		zap.String("timetable_id", timetableID),
		zap.String("mode", string(mode)))
	return sessionToAPI(ent), nil
}

// Stop ends the session's active window and tears down its live subscribers.
// Stopping an already-stopped session returns it unchanged.
func (s *SessionService) Stop(id string) (*model.Session, error) {
	var ent model.AttendanceSession
	if err := s.db.Where("id = ?", id).First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSessionNotFound
		}
		return nil, err
	}
	if !ent.Active {
		return sessionToAPI(&ent), nil
	}

	now := time.Now().UnixMilli()
	if err := s.db.Model(&ent).Updates(map[string]interface{}{
		"active":     false,
		"stopped_at": now,
	}).Error; err != nil {
		return nil, err
	}
	ent.Active = false
	ent.StoppedAt = &now

	s.hub.CloseSession(id)
	s.log.Info("session stopped",
		zap.String("session_id", id),
		zap.String("timetable_id", ent.TimetableID))
	return sessionToAPI(&ent), nil
}

func sessionToAPI(ent *model.AttendanceSession) *model.Session {
	return &model.Session{
		ID:          ent.ID,
		TimetableID: ent.TimetableID,
		Mode:        model.SessionMode(ent.Mode),
		StartedAt:   ent.StartedAt,
		StoppedAt:   ent.StoppedAt,
		Active:      ent.Active,
	}
}
