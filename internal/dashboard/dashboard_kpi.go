package dashboard

import (
	"math"
	"time"

	"github.com/RNiyam/attendance-system/internal/attendance"
)

const (
	kpiWindowDays  = 30
	weekWindowDays = 7
)

// KPIWindowStart is the earliest instant the employee KPIs look at.
func KPIWindowStart(schedule attendance.Schedule, now time.Time) time.Time {
	return schedule.StartOfDay(now).AddDate(0, 0, -kpiWindowDays)
}

// ComputeKPIs folds an employee's ledger rows into the 30-day dashboard
// figures. Rows older than the window are ignored.
func ComputeKPIs(rows []attendance.Event, schedule attendance.Schedule, now time.Time) KPIs {
	today := schedule.StartOfDay(now)
	windowStart := today.AddDate(0, 0, -kpiWindowDays)
	weekStart := today.AddDate(0, 0, -weekWindowDays)

	var (
		k        KPIs
		checkIns int
		sessions int
		days     = make(map[string]struct{})
	)

	for _, e := range rows {
		if e.CreatedAt.Before(windowStart) {
			continue
		}

		if e.IsIn() {
			checkIns++
			days[e.CreatedAt.In(today.Location()).Format("2006-01-02")] = struct{}{}
			if e.IsLate != nil {
				if *e.IsLate {
					k.LateArrivals++
				} else {
					k.OnTimeArrivals++
				}
			}
			if !e.CreatedAt.Before(weekStart) {
				k.ThisWeekAttendance++
			}
			if !e.CreatedAt.Before(today) {
				k.TodayAttendance++
			}
			continue
		}

		if e.TotalHours != nil {
			sessions++
			k.TotalHoursWorked += *e.TotalHours
			if over := *e.TotalHours - schedule.ShiftHours; over > 0 {
				k.OvertimeHours += over
			}
		}
	}

	k.TotalAttendanceDays = len(days)
	if checkIns > 0 {
		k.OnTimeRate = round2(float64(k.OnTimeArrivals) * 100 / float64(checkIns))
	}
	if sessions > 0 {
		k.AvgHoursPerDay = round2(k.TotalHoursWorked / float64(sessions))
	}
	k.TotalHoursWorked = round2(k.TotalHoursWorked)
	k.OvertimeHours = round2(k.OvertimeHours)
	return k
}

// WeekOverview lists the rows recorded since the start of the current
// calendar week (Sunday).
func WeekOverview(rows []attendance.Event, schedule attendance.Schedule, now time.Time) []WeekDay {
	today := schedule.StartOfDay(now)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))

	out := make([]WeekDay, 0, len(rows))
	for _, e := range rows {
		if e.CreatedAt.Before(weekStart) {
			continue
		}
		local := e.CreatedAt.In(today.Location())
		out = append(out, WeekDay{
			Date:    local.Format("2006-01-02"),
			Time:    local.Format("15:04:05"),
			DayName: local.Weekday().String(),
			Status:  e.Status,
			IsLate:  e.IsLate,
		})
	}
	return out
}

// latestToday returns the last row created on the current day, if any.
// rows are ordered oldest first.
func latestToday(rows []attendance.Event, schedule attendance.Schedule, now time.Time) *attendance.Event {
	if len(rows) == 0 {
		return nil
	}
	last := rows[len(rows)-1]
	if last.CreatedAt.Before(schedule.StartOfDay(now)) {
		return nil
	}
	return &last
}

// sessionHours is the time elapsed since an open clock-in.
func sessionHours(latest *attendance.Event, now time.Time) *float64 {
	if latest == nil || !latest.IsIn() {
		return nil
	}
	h := round2(now.Sub(latest.CreatedAt).Hours())
	if h < 0 {
		h = 0
	}
	return &h
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
