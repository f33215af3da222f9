package worklog_test

import (
	"context"
	"testing"

	"go-ems/internal/rbac"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/worklog"
	worklogerrors "go-ems/internal/worklog/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeWorkLogRepository struct {
	createFn                   func(ctx context.Context, wl *worklog.WorkLog) error
	findByEmployeePaginatedFn  func(ctx context.Context, employeeID string, page, limit int) ([]worklog.WorkLog, int64, error)
}

func (f *fakeWorkLogRepository) Create(ctx context.Context, wl *worklog.WorkLog) error {
	if f.createFn != nil {
		return f.createFn(ctx, wl)
	}
	return nil
}

func (f *fakeWorkLogRepository) FindByEmployeePaginated(ctx context.Context, employeeID string, page, limit int) ([]worklog.WorkLog, int64, error) {
	if f.findByEmployeePaginatedFn != nil {
		return f.findByEmployeePaginatedFn(ctx, employeeID, page, limit)
	}
	return nil, 0, nil
}

func employeeActor(employeeID string) contextutil.Actor {
	return contextutil.Actor{
		UserID:     uuid.New().String(),
		EmployeeID: employeeID,
		Email:      "budi@corp.test",
		Role:       rbac.RoleEmployee,
	}
}

func TestWorkLogService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		var persisted *worklog.WorkLog
		repo := &fakeWorkLogRepository{
			createFn: func(ctx context.Context, wl *worklog.WorkLog) error {
				persisted = wl
				return nil
			},
		}
		svc := worklog.NewService(repo)

		resp, err := svc.Create(ctx, employeeActor(employeeID), worklog.CreateWorkLogRequest{
			Task:     "Quarterly report",
			Hours:    8,
			WorkDate: "2025-03-10",
		})

		assert.NoError(t, err)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, "2025-03-10", resp.WorkDate)
		assert.NotNil(t, persisted)
		assert.Equal(t, 8, persisted.Hours)
	})

	t.Run("actor without employee link", func(t *testing.T) {
		svc := worklog.NewService(&fakeWorkLogRepository{})

		actor := contextutil.Actor{UserID: uuid.New().String(), Role: rbac.RoleAdmin}
		_, err := svc.Create(ctx, actor, worklog.CreateWorkLogRequest{
			Task: "Quarterly report", Hours: 8, WorkDate: "2025-03-10",
		})

		assert.ErrorIs(t, err, worklogerrors.ErrNotLinkedToEmployee)
	})

	t.Run("hours bounds", func(t *testing.T) {
		svc := worklog.NewService(&fakeWorkLogRepository{})

		_, err := svc.Create(ctx, employeeActor(employeeID), worklog.CreateWorkLogRequest{
			Task: "Quarterly report", Hours: 0, WorkDate: "2025-03-10",
		})
		assert.ErrorIs(t, err, worklogerrors.ErrInvalidHours)

		_, err = svc.Create(ctx, employeeActor(employeeID), worklog.CreateWorkLogRequest{
			Task: "Quarterly report", Hours: 25, WorkDate: "2025-03-10",
		})
		assert.ErrorIs(t, err, worklogerrors.ErrInvalidHours)
	})

	t.Run("invalid work date", func(t *testing.T) {
		svc := worklog.NewService(&fakeWorkLogRepository{})

		_, err := svc.Create(ctx, employeeActor(employeeID), worklog.CreateWorkLogRequest{
			Task: "Quarterly report", Hours: 8, WorkDate: "10/03/2025",
		})

		assert.ErrorIs(t, err, worklogerrors.ErrInvalidWorkDate)
	})
}

func TestWorkLogService_GetByEmployee(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("employee reads own logs", func(t *testing.T) {
		repo := &fakeWorkLogRepository{
			findByEmployeePaginatedFn: func(ctx context.Context, eid string, page, limit int) ([]worklog.WorkLog, int64, error) {
				assert.Equal(t, employeeID, eid)
				return []worklog.WorkLog{{ID: uuid.New(), EmployeeID: uuid.MustParse(employeeID), Hours: 8}}, 1, nil
			},
		}
		svc := worklog.NewService(repo)

		logs, meta, err := svc.GetByEmployee(ctx, employeeActor(employeeID), employeeID, 1, 10)

		assert.NoError(t, err)
		assert.Len(t, logs, 1)
		assert.Equal(t, int64(1), meta.Total)
	})

	t.Run("employee may not read another employee", func(t *testing.T) {
		svc := worklog.NewService(&fakeWorkLogRepository{})

		_, _, err := svc.GetByEmployee(ctx, employeeActor(employeeID), uuid.New().String(), 1, 10)

		assert.ErrorIs(t, err, worklogerrors.ErrForbiddenWorklog)
	})

	t.Run("hr may read any employee", func(t *testing.T) {
		repo := &fakeWorkLogRepository{}
		svc := worklog.NewService(repo)

		actor := contextutil.Actor{UserID: uuid.New().String(), Role: rbac.RoleHR}
		_, _, err := svc.GetByEmployee(ctx, actor, employeeID, 1, 10)

		assert.NoError(t, err)
	})

	t.Run("pagination defaults", func(t *testing.T) {
		repo := &fakeWorkLogRepository{
			findByEmployeePaginatedFn: func(ctx context.Context, eid string, page, limit int) ([]worklog.WorkLog, int64, error) {
				assert.Equal(t, 1, page)
				assert.Equal(t, 10, limit)
				return nil, 0, nil
			},
		}
		svc := worklog.NewService(repo)

		_, _, err := svc.GetByEmployee(ctx, employeeActor(employeeID), employeeID, 0, 0)

		assert.NoError(t, err)
	})
}
