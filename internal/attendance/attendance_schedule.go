package attendance

import (
	"fmt"
	"math"
	"time"

	"github.com/RNiyam/attendance-system/internal/config"
)

const clockLayout = "15:04:05"

// Schedule is the fixed working day every metric is measured against.
type Schedule struct {
	WorkStart  time.Duration // offset from local midnight
	WorkEnd    time.Duration
	ShiftHours float64
	Location   *time.Location
}

func NewSchedule(cfg config.Schedule) (Schedule, error) {
	start, err := parseClock(cfg.WorkStart)
	if err != nil {
		return Schedule{}, fmt.Errorf("work start: %w", err)
	}
	end, err := parseClock(cfg.WorkEnd)
	if err != nil {
		return Schedule{}, fmt.Errorf("work end: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{WorkStart: start, WorkEnd: end, ShiftHours: cfg.ShiftHours, Location: loc}, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
}

func (s Schedule) loc() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

func (s Schedule) midnight(t time.Time) time.Time {
	t = t.In(s.loc())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc())
}

// ExpectedIn is the expected arrival on the calendar day of t.
func (s Schedule) ExpectedIn(t time.Time) time.Time {
	return s.midnight(t).Add(s.WorkStart)
}

// ExpectedOut is the expected departure on the calendar day of t.
func (s Schedule) ExpectedOut(t time.Time) time.Time {
	return s.midnight(t).Add(s.WorkEnd)
}

// StartOfDay is local midnight of the day containing t.
func (s Schedule) StartOfDay(t time.Time) time.Time {
	return s.midnight(t)
}

func (s Schedule) ExpectedTime() string {
	return time.Time{}.Add(s.WorkStart).Format(clockLayout)
}

func (s Schedule) Clock(t time.Time) string {
	return t.In(s.loc()).Format(clockLayout)
}

// CheckInMetrics is derived for every IN event.
type CheckInMetrics struct {
	IsLate       bool
	ClockInTime  string
	ExpectedTime string
}

// CheckOutMetrics is derived for every OUT event.
type CheckOutMetrics struct {
	ClockInTime  string
	ClockOutTime string
	TotalHours   float64
}

// ShiftMetrics is the extended breakdown returned on the authenticated
// clock-out path. Exactly one of OvertimeHours and NegativeHours is non-zero
// unless the session matched the shift length exactly.
type ShiftMetrics struct {
	LateArrival    float64 // minutes
	EarlyDeparture float64 // minutes
	OvertimeHours  float64
	NegativeHours  float64
}

func (s Schedule) CheckIn(now time.Time) CheckInMetrics {
	return CheckInMetrics{
		IsLate:       now.After(s.ExpectedIn(now)),
		ClockInTime:  s.Clock(now),
		ExpectedTime: s.ExpectedTime(),
	}
}

func (s Schedule) CheckOut(in Event, now time.Time) CheckOutMetrics {
	clockIn := s.Clock(in.CreatedAt)
	if in.ClockInTime != nil && *in.ClockInTime != "" {
		clockIn = *in.ClockInTime
	}
	return CheckOutMetrics{
		ClockInTime:  clockIn,
		ClockOutTime: s.Clock(now),
		TotalHours:   hoursBetween(in.CreatedAt, now),
	}
}

// Shift measures lateness against the clock-in day and early departure
// against the clock-out day.
func (s Schedule) Shift(clockIn, clockOut time.Time) ShiftMetrics {
	var m ShiftMetrics

	if expected := s.ExpectedIn(clockIn); clockIn.After(expected) {
		m.LateArrival = clockIn.Sub(expected).Minutes()
	}
	if expected := s.ExpectedOut(clockOut); clockOut.Before(expected) {
		m.EarlyDeparture = expected.Sub(clockOut).Minutes()
	}

	worked := hoursBetween(clockIn, clockOut)
	if worked > s.ShiftHours {
		m.OvertimeHours = worked - s.ShiftHours
	} else {
		m.NegativeHours = s.ShiftHours - worked
	}
	return m
}

func hoursBetween(from, to time.Time) float64 {
	return math.Max(0, to.Sub(from).Hours())
}
