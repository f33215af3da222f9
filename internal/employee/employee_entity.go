package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EmploymentActive     = "ACTIVE"
	EmploymentTerminated = "TERMINATED"
)

type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName    string    `gorm:"type:varchar(255);not null"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex:uq_employee_email;not null"`
	Designation string    `gorm:"type:varchar(120)"`
	Phone       string    `gorm:"type:varchar(30)"`

	// Salary disimpan dalam satuan terkecil (sen) untuk hindari floating error.
	Salary      int64  `gorm:"type:bigint;not null;default:0"`
	BankAccount string `gorm:"type:varchar(64)"`
	PhotoURL    string `gorm:"type:text"`

	IsVerified       bool      `gorm:"not null;default:false"`
	EmploymentStatus string    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	HireDate         time.Time `gorm:"type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
