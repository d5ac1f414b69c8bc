package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusIn  = "IN"
	StatusOut = "OUT"
)

// Event is one row of the attendance ledger. Rows are only ever inserted.
type Event struct {
	ID           uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;index:idx_attendance_employee_created,priority:1"`
	Status       string       `gorm:"column:status;type:varchar(3);not null"`
	Confidence   float64      `gorm:"column:confidence;not null"`
	ClockInTime  *string      `gorm:"column:clock_in_time;type:varchar(8)"`
	ClockOutTime *string      `gorm:"column:clock_out_time;type:varchar(8)"`
	TotalHours   *float64     `gorm:"column:total_hours"`
	IsLate       *bool        `gorm:"column:is_late"`
	ExpectedTime *string      `gorm:"column:expected_time;type:varchar(8)"`
	CreatedAt    time.Time    `gorm:"column:created_at;not null;index:idx_attendance_employee_created,priority:2;index"`
	Employee     *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Event) TableName() string {
	return "attendance"
}

func (e Event) IsIn() bool {
	return e.Status == StatusIn
}

type EmployeeRef struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmpCode string    `gorm:"column:emp_code"`
	Name    string    `gorm:"column:name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
