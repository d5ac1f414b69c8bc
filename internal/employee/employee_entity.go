package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Employee struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Code          string         `gorm:"column:emp_code;type:varchar(32);not null;uniqueIndex:uq_employee_code"`
	Name          string         `gorm:"column:name;type:varchar(255);not null"`
	UserID        *uuid.UUID     `gorm:"column:user_id;type:uuid;uniqueIndex:uq_employee_user"`
	FaceEmbedding datatypes.JSON `gorm:"column:face_embedding;type:jsonb"`
	HasFace       bool           `gorm:"column:has_face;->;-:migration"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// Enrolled is an employee whose stored embedding passed validation and can be
// sent for verification.
type Enrolled struct {
	ID        uuid.UUID
	Code      string
	Name      string
	Embedding []float64
}
