package worklog

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=worklog_repo.go -destination=mock/worklog_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, wl *WorkLog) error
	FindByEmployeePaginated(ctx context.Context, employeeID string, page, limit int) ([]WorkLog, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, wl *WorkLog) error {
	return r.db.WithContext(ctx).Create(wl).Error
}

func (r *repository) FindByEmployeePaginated(ctx context.Context, employeeID string, page, limit int) ([]WorkLog, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&WorkLog{}).
		Where("employee_id = ?", employeeID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []WorkLog
	err := base.
		Order("work_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error
	return logs, total, err
}
