package attendance

import (
	"testing"
	"time"

	"github.com/RNiyam/attendance-system/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchedule() Schedule {
	return Schedule{WorkStart: 9 * time.Hour, WorkEnd: 17 * time.Hour, ShiftHours: 8, Location: time.UTC}
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestNewSchedule(t *testing.T) {
	s, err := NewSchedule(config.Schedule{WorkStart: "08:30:00", WorkEnd: "17:30:00", ShiftHours: 9, Timezone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour+30*time.Minute, s.WorkStart)
	assert.Equal(t, "08:30:00", s.ExpectedTime())

	_, err = NewSchedule(config.Schedule{WorkStart: "9am", WorkEnd: "17:00:00", ShiftHours: 8})
	assert.Error(t, err)
}

func TestSchedule_CheckIn(t *testing.T) {
	s := testSchedule()

	early := s.CheckIn(at(8, 59))
	assert.False(t, early.IsLate)
	assert.Equal(t, "08:59:00", early.ClockInTime)
	assert.Equal(t, "09:00:00", early.ExpectedTime)

	assert.False(t, s.CheckIn(at(9, 0)).IsLate)
	assert.True(t, s.CheckIn(at(9, 0).Add(time.Second)).IsLate)
}

func TestSchedule_CheckOut(t *testing.T) {
	s := testSchedule()
	in := Event{Status: StatusIn, CreatedAt: at(9, 0)}

	m := s.CheckOut(in, at(13, 30))
	assert.InDelta(t, 4.5, m.TotalHours, 1e-9)
	assert.Equal(t, "09:00:00", m.ClockInTime)
	assert.Equal(t, "13:30:00", m.ClockOutTime)

	stored := "08:55:00"
	in.ClockInTime = &stored
	assert.Equal(t, "08:55:00", s.CheckOut(in, at(13, 30)).ClockInTime)

	// Clock skew never produces negative hours.
	assert.Zero(t, s.CheckOut(in, at(8, 0)).TotalHours)
}

func TestSchedule_Shift(t *testing.T) {
	s := testSchedule()

	t.Run("late and short", func(t *testing.T) {
		m := s.Shift(at(9, 30), at(16, 0))
		assert.InDelta(t, 30, m.LateArrival, 1e-9)
		assert.InDelta(t, 60, m.EarlyDeparture, 1e-9)
		assert.Zero(t, m.OvertimeHours)
		assert.InDelta(t, 1.5, m.NegativeHours, 1e-9)
	})

	t.Run("on time with overtime", func(t *testing.T) {
		m := s.Shift(at(8, 45), at(18, 45))
		assert.Zero(t, m.LateArrival)
		assert.Zero(t, m.EarlyDeparture)
		assert.InDelta(t, 2, m.OvertimeHours, 1e-9)
		assert.Zero(t, m.NegativeHours)
	})
}
