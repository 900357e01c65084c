package model

// AttendanceSession is the session entity (GORM).
type AttendanceSession struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	TimetableID string `gorm:"size:64;not null;index"`
	Mode        string `gorm:"size:10;not null"` // ble, online
	StartedAt   int64  `gorm:"not null"`         // epoch ms
	StoppedAt   *int64 `gorm:"column:stopped_at"`
	Active      bool   `gorm:"not null;default:true"`
}

func (AttendanceSession) TableName() string { return "attendance_sessions" }

// AttendanceEntry is the accepted attendance record entity (GORM).
// The (session_id, user_id) unique index enforces one record per user
// per session at the storage layer.
type AttendanceEntry struct {
	ID        string `gorm:"size:40;primaryKey"`
	SessionID string `gorm:"type:uuid;not null;uniqueIndex:idx_session_user"`
	UserID    string `gorm:"size:64;not null;uniqueIndex:idx_session_user"`
	Method    string `gorm:"size:10;not null"` // ble, online, manual
	Timestamp int64  `gorm:"not null"`         // epoch ms
	Nonce     string `gorm:"size:64"`
	MAC       string `gorm:"column:mac;size:64"`
	RSSI      *int   `gorm:"column:rssi"`
	Room      string `gorm:"size:64"`
	Source    string `gorm:"size:16"`
}

func (AttendanceEntry) TableName() string { return "attendance_entries" }
