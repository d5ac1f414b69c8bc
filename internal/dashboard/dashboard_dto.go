package dashboard

import (
	"github.com/RNiyam/attendance-system/internal/attendance"
	"github.com/RNiyam/attendance-system/internal/breaktime"
	"github.com/RNiyam/attendance-system/internal/employee"
)

type KPIs struct {
	TotalAttendanceDays int     `json:"totalAttendanceDays"`
	LateArrivals        int     `json:"lateArrivals"`
	OnTimeArrivals      int     `json:"onTimeArrivals"`
	OnTimeRate          float64 `json:"onTimeRate"`
	TotalHoursWorked    float64 `json:"totalHoursWorked"`
	OvertimeHours       float64 `json:"overtimeHours"`
	AvgHoursPerDay      float64 `json:"avgHoursPerDay"`
	ThisWeekAttendance  int     `json:"thisWeekAttendance"`
	TodayAttendance     int     `json:"todayAttendance"`
}

type WeekDay struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	DayName string `json:"day_name"`
	Status  string `json:"status"`
	IsLate  *bool  `json:"is_late,omitempty"`
}

type EmployeeDashboard struct {
	Employee           employee.EmployeeResponse `json:"employee"`
	TodayAttendance    *attendance.EventResponse `json:"todayAttendance"`
	Breaks             breaktime.TodayResponse   `json:"breaks"`
	CurrentTime        *float64                  `json:"currentTime"`
	AttendanceOverview []WeekDay                 `json:"attendanceOverview"`
	KPIs               KPIs                      `json:"kpis"`
}

type TodayTotals struct {
	Day            string `json:"day"`
	TotalEmployees int64  `json:"total_employees"`
	TotalRecords   int64  `json:"total_records"`
	CheckIns       int64  `json:"checkins"`
	CheckOuts      int64  `json:"checkouts"`
	Late           int64  `json:"late_count"`
	Source         string `json:"source"`
}

type AdminDashboard struct {
	Stats            TodayTotals                 `json:"stats"`
	RecentAttendance []attendance.EventResponse  `json:"recentAttendance"`
	Employees        []employee.EmployeeResponse `json:"employees"`
}
