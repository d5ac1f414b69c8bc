package breaktime

type BreakResponse struct {
	ID            string   `json:"id"`
	AttendanceID  string   `json:"attendance_id"`
	BreakStart    string   `json:"break_start"`
	BreakEnd      *string  `json:"break_end,omitempty"`
	BreakDuration *float64 `json:"break_duration,omitempty"`
}

type TodayResponse struct {
	Breaks       []BreakResponse `json:"breaks"`
	Active       *BreakResponse  `json:"active,omitempty"`
	TotalMinutes float64         `json:"total_minutes"`
}
