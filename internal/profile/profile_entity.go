package profile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile holds the personal details captured at onboarding. One row per
// user account.
type Profile struct {
	UserID        uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey"`
	Username      *string        `gorm:"column:username;type:varchar(50);uniqueIndex:uq_profile_username"`
	PhoneNumber   string         `gorm:"column:phone_number;type:varchar(15)"`
	Gender        string         `gorm:"column:gender;type:varchar(10)"`
	DateOfBirth   *time.Time     `gorm:"column:date_of_birth;type:date"`
	MaritalStatus string         `gorm:"column:marital_status;type:varchar(10)"`
	ProfilePhoto  string         `gorm:"column:profile_photo;type:text"`
	Preferences   datatypes.JSON `gorm:"column:preferences;type:jsonb"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
}

func (Profile) TableName() string {
	return "user_profiles"
}
