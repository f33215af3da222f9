package worklog

import (
	"time"

	"github.com/google/uuid"
)

type WorkLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Task       string    `gorm:"type:varchar(120);not null"`
	Hours      int       `gorm:"not null"`
	WorkDate   time.Time `gorm:"type:date;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (WorkLog) TableName() string {
	return "work_logs"
}
