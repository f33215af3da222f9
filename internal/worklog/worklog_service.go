package worklog

import (
	"context"
	"time"

	"go-ems/internal/rbac"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"
	worklogerrors "go-ems/internal/worklog/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=worklog_service.go -destination=mock/worklog_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor contextutil.Actor, req CreateWorkLogRequest) (WorkLogResponse, error)
	GetByEmployee(ctx context.Context, actor contextutil.Actor, employeeID string, page, limit int) ([]WorkLogResponse, response.PaginationMeta, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("worklog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("worklog.service")
	}
	return &service{repo: repo, logger: l}
}

// Create mencatat satu entri kerja milik actor sendiri.
func (s *service) Create(ctx context.Context, actor contextutil.Actor, req CreateWorkLogRequest) (WorkLogResponse, error) {
	employeeID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return WorkLogResponse{}, worklogerrors.ErrNotLinkedToEmployee
	}

	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		return WorkLogResponse{}, worklogerrors.ErrInvalidWorkDate
	}
	if req.Hours < 1 || req.Hours > 24 {
		return WorkLogResponse{}, worklogerrors.ErrInvalidHours
	}

	wl := &WorkLog{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Task:       req.Task,
		Hours:      req.Hours,
		WorkDate:   workDate,
	}

	if err := s.repo.Create(ctx, wl); err != nil {
		s.logger.Error("create worklog persist failed",
			zap.String("employee_id", actor.EmployeeID),
			zap.Error(err),
		)
		return WorkLogResponse{}, err
	}

	return mapToResponse(*wl), nil
}

// GetByEmployee: role employee hanya boleh membaca miliknya sendiri.
func (s *service) GetByEmployee(ctx context.Context, actor contextutil.Actor, employeeID string, page, limit int) ([]WorkLogResponse, response.PaginationMeta, error) {
	if actor.Role != rbac.RoleAdmin && actor.Role != rbac.RoleHR {
		if actor.EmployeeID != employeeID {
			return nil, response.PaginationMeta{}, worklogerrors.ErrForbiddenWorklog
		}
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	logs, total, err := s.repo.FindByEmployeePaginated(ctx, employeeID, page, limit)
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}

	meta := response.NewPaginationMeta(total, page, limit)
	return mapToListResponse(logs), meta, nil
}

func mapToResponse(wl WorkLog) WorkLogResponse {
	return WorkLogResponse{
		ID:         wl.ID.String(),
		EmployeeID: wl.EmployeeID.String(),
		Task:       wl.Task,
		Hours:      wl.Hours,
		WorkDate:   wl.WorkDate.Format("2006-01-02"),
	}
}

func mapToListResponse(logs []WorkLog) []WorkLogResponse {
	resp := make([]WorkLogResponse, len(logs))
	for i, wl := range logs {
		resp[i] = mapToResponse(wl)
	}
	return resp
}
