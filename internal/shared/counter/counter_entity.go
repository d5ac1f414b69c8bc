package counter

import "time"

// Counter backs GetNextValue. One row per counter type.
type Counter struct {
	CounterType string    `gorm:"column:counter_type;type:varchar(64);primaryKey"`
	LastValue   int64     `gorm:"column:last_value;not null;default:0"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now()"`
}

func (Counter) TableName() string {
	return "counters"
}
