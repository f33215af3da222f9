package payroll

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, record *PayrollRecord) error
	FindByID(ctx context.Context, id string) (*PayrollRecord, error)
	FindAll(ctx context.Context, filter GetPayrollsFilterRequest) ([]PayrollRecord, error)
	ExistsForPeriod(ctx context.Context, employeeEmail, month string, year int) (bool, error)
	FindByEmailPaginated(ctx context.Context, employeeEmail string, page, limit int) ([]PayrollRecord, int64, error)
	ApproveIfPending(ctx context.Context, id string, paymentDate time.Time, transactionID string) (bool, error)
	RejectIfPending(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, record *PayrollRecord) error {
	if r.tx != nil {
		// Di dalam transaksi outbox, insert lewat tx yang sama supaya
		// record dan event-nya atomic.
		query := `
            INSERT INTO payroll_records (
                id, employee_id, employee_name, employee_email,
                amount, month, year, status, requested_by, created_at, updated_at
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        `
		_, err := r.tx.ExecContext(ctx, query,
			record.ID, record.EmployeeID, record.EmployeeName, record.EmployeeEmail,
			record.Amount, record.Month, record.Year, record.Status, record.RequestedBy,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayrollRecord, error) {
	var record PayrollRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	return &record, err
}

func (r *repository) FindAll(ctx context.Context, filter GetPayrollsFilterRequest) ([]PayrollRecord, error) {
	db := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var records []PayrollRecord
	err := db.Find(&records).Error
	return records, err
}

func (r *repository) ExistsForPeriod(ctx context.Context, employeeEmail, month string, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Where("employee_email = ?", employeeEmail).
		Where("month = ?", month).
		Where("year = ?", year).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByEmailPaginated(ctx context.Context, employeeEmail string, page, limit int) ([]PayrollRecord, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Where("employee_email = ?", employeeEmail)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []PayrollRecord
	err := base.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error
	return records, total, err
}

// ApproveIfPending adalah titik enforcement transisi: update hanya terjadi
// jika status masih PENDING. false berarti request lain sudah mendahului.
func (r *repository) ApproveIfPending(ctx context.Context, id string, paymentDate time.Time, transactionID string) (bool, error) {
	if r.tx != nil {
		query := `
            UPDATE payroll_records
            SET status = $2, payment_date = $3, transaction_id = $4, updated_at = NOW()
            WHERE id = $1 AND status = $5
        `
		res, err := r.tx.ExecContext(ctx, query, id, StatusApproved, paymentDate, transactionID, StatusPending)
		if err != nil {
			return false, err
		}
		affected, err := res.RowsAffected()
		return affected > 0, err
	}

	res := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":         StatusApproved,
			"payment_date":   paymentDate,
			"transaction_id": transactionID,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) RejectIfPending(ctx context.Context, id string) (bool, error) {
	if r.tx != nil {
		query := `
            UPDATE payroll_records
            SET status = $2, updated_at = NOW()
            WHERE id = $1 AND status = $3
        `
		res, err := r.tx.ExecContext(ctx, query, id, StatusRejected, StatusPending)
		if err != nil {
			return false, err
		}
		affected, err := res.RowsAffected()
		return affected > 0, err
	}

	res := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Update("status", StatusRejected)
	return res.RowsAffected > 0, res.Error
}
