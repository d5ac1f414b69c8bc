package events

import "time"

const EmployeeLifecycleTopic = "attendance.employee.lifecycle.v1"

const (
	EventEmployeeRegistered  = "employee_registered"
	EventEmployeeFaceUpdated = "employee_face_updated"
)

type EmployeeRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	EmpCode    string    `json:"emp_code"`
	UserID     string    `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
