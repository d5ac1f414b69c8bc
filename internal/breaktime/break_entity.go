package breaktime

import (
	"time"

	"github.com/google/uuid"
)

// Interval is one break inside an attendance session. The partial unique
// index allows at most one open interval per session.
type Interval struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	AttendanceID  uuid.UUID  `gorm:"column:attendance_id;type:uuid;not null;index;uniqueIndex:uq_break_open,where:break_end IS NULL"`
	BreakStart    time.Time  `gorm:"column:break_start;not null"`
	BreakEnd      *time.Time `gorm:"column:break_end"`
	BreakDuration *float64   `gorm:"column:break_duration"`
}

func (Interval) TableName() string {
	return "break_times"
}

func (i Interval) IsOpen() bool {
	return i.BreakEnd == nil
}
