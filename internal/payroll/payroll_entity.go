package payroll

import (
	"time"

	"github.com/google/uuid"
)

// PayrollRecord adalah satu permintaan pembayaran gaji untuk satu karyawan
// pada satu periode. Data karyawan di-snapshot saat request dibuat; perubahan
// profil sesudahnya tidak mengubah record lama.
type PayrollRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Snapshot karyawan saat request
	EmployeeName  string `gorm:"type:varchar(255);not null"`
	EmployeeEmail string `gorm:"type:varchar(255);not null;index:uq_payroll_period,unique"`

	// Amount dalam satuan terkecil (sen), immutable setelah create.
	Amount int64 `gorm:"type:bigint;not null"`

	Month string `gorm:"type:varchar(12);not null;index:uq_payroll_period,unique"`
	Year  int    `gorm:"not null;index:uq_payroll_period,unique"`

	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RequestedBy uuid.UUID `gorm:"type:uuid;not null"`

	// Terisi hanya saat transisi ke APPROVED lewat capture yang sukses.
	PaymentDate   *time.Time `gorm:"index"`
	TransactionID *string    `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}
