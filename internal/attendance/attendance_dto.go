package attendance

type CheckInRequest struct {
	EmpCode string `json:"empCode" binding:"required,max=32"`
	Image   string `json:"image" binding:"required"`
}

type ClockOutRequest struct {
	EmpCode string `json:"empCode" binding:"required,max=32"`
	Image   string `json:"image" binding:"required"`
}

type HistoryQuery struct {
	EmpCode string
	Limit   int
}

type EmployeeSummary struct {
	ID      string `json:"id"`
	EmpCode string `json:"empCode"`
	Name    string `json:"name"`
}

type CheckInResponse struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Status       string          `json:"status"`
	Confidence   float64         `json:"confidence"`
	Employee     EmployeeSummary `json:"employee"`
	IsLate       *bool           `json:"isLate,omitempty"`
	ClockInTime  string          `json:"clockInTime,omitempty"`
	ExpectedTime string          `json:"expectedTime,omitempty"`
	ClockOutTime string          `json:"clockOutTime,omitempty"`
	TotalHours   *float64        `json:"totalHours,omitempty"`
}

type ClockOutResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	Status         string          `json:"status"`
	Confidence     float64         `json:"confidence"`
	Employee       EmployeeSummary `json:"employee"`
	ClockInTime    string          `json:"clockInTime"`
	ClockOutTime   string          `json:"clockOutTime"`
	TotalHours     float64         `json:"totalHours"`
	LateArrival    float64         `json:"lateArrival"`
	EarlyDeparture float64         `json:"earlyDeparture"`
	OvertimeHours  float64         `json:"overtimeHours"`
	NegativeHours  float64         `json:"negativeHours"`
}

type EventResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"emp_id"`
	EmpCode      string   `json:"emp_code,omitempty"`
	Name         string   `json:"name,omitempty"`
	Status       string   `json:"status"`
	Confidence   float64  `json:"confidence"`
	ClockInTime  *string  `json:"clock_in_time,omitempty"`
	ClockOutTime *string  `json:"clock_out_time,omitempty"`
	TotalHours   *float64 `json:"total_hours,omitempty"`
	IsLate       *bool    `json:"is_late,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

type StatsResponse struct {
	TotalEmployees int64 `json:"total_employees"`
	TotalRecords   int64 `json:"total_records"`
	TotalCheckins  int64 `json:"total_checkins"`
	TotalCheckouts int64 `json:"total_checkouts"`
}
