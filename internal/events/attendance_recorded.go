package events

import "time"

const AttendanceRecordedTopic = "attendance.events.recorded.v1"

const EventAttendanceRecorded = "attendance_recorded"

type AttendanceRecordedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EventID    string    `json:"event_id"`
	EmployeeID string    `json:"employee_id"`
	EmpCode    string    `json:"emp_code"`
	Status     string    `json:"status"`
	IsLate     *bool     `json:"is_late,omitempty"`
	TotalHours *float64  `json:"total_hours,omitempty"`
	Confidence float64   `json:"confidence"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Day is the calendar day the event counts towards, in loc.
func (e AttendanceRecordedEvent) Day(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return e.OccurredAt.In(loc).Format("2006-01-02")
}
