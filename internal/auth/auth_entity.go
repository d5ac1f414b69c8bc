package auth

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Email            *string   `gorm:"type:varchar(255);uniqueIndex:uq_users_email"`
	MobileNumber     *string   `gorm:"type:varchar(15);uniqueIndex:uq_users_mobile"`
	Password         *string   `gorm:"type:varchar(255)"`
	Role             string    `gorm:"type:varchar(50);not null;default:'employee'"`
	IsMobileVerified bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (User) TableName() string { return "users" }
