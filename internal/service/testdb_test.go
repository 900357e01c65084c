package service

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dark0-7s/scams-20b.io/internal/model"
)

// newTestDB opens a per-test in-memory sqlite database with the same
// uniqueness constraints the postgres migrations create.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.AttendanceSession{}, &model.AttendanceEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// sqlite supports the same partial unique index as the postgres migration.
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_session_per_timetable ON attendance_sessions (timetable_id) WHERE active").Error; err != nil {
		t.Fatalf("create partial index: %v", err)
	}
	return db
}
