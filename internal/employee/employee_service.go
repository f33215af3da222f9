package employee

import (
	"context"
	"encoding/json"
	"time"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	employeeOptionsKey = "employees:options"
	optionsCacheTTL    = 10 * time.Minute
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter GetEmployeesFilterRequest) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdateSalary(ctx context.Context, id string, req UpdateSalaryRequest) (EmployeeResponse, error)
	ToggleVerified(ctx context.Context, id string) (EmployeeResponse, error)
	Terminate(ctx context.Context, id string) (EmployeeResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		s.logger.Warn("create employee invalid hire_date",
			zap.String("hire_date", req.HireDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}
	if req.Salary <= 0 {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}

	empl := &Employee{
		ID:               uuid.New(),
		FullName:         req.FullName,
		Email:            req.Email,
		Designation:      req.Designation,
		Phone:            req.Phone,
		Salary:           req.Salary,
		BankAccount:      req.BankAccount,
		PhotoURL:         req.PhotoURL,
		EmploymentStatus: EmploymentActive,
		HireDate:         hireDate,
	}

	if err := s.repo.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("create employee success",
		zap.String("employee_id", empl.ID.String()),
		zap.String("email", empl.Email),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, filter GetEmployeesFilterRequest) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(employees), nil
}

// GetOptions mengembalikan daftar ringkas untuk dropdown, di-cache di Redis.
// Singleflight mencegah cache stampede saat key kosong.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, employeeOptionsKey).Result(); err == nil {
			var options []EmployeeOption
			if err := json.Unmarshal([]byte(cached), &options); err == nil {
				return options, nil
			}
		}
	}

	v, err, _ := s.sf.Do(employeeOptionsKey, func() (interface{}, error) {
		employees, err := s.repo.FindAll(ctx, GetEmployeesFilterRequest{Status: EmploymentActive})
		if err != nil {
			return nil, err
		}

		options := make([]EmployeeOption, len(employees))
		for i, empl := range employees {
			options[i] = EmployeeOption{
				ID:       empl.ID.String(),
				FullName: empl.FullName,
				Email:    empl.Email,
			}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(options); err == nil {
				_ = s.rdb.Set(ctx, employeeOptionsKey, payload, optionsCacheTTL).Err()
			}
		}

		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	empl, err := s.findExisting(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl.FullName = req.FullName
	empl.Designation = req.Designation
	empl.Phone = req.Phone
	empl.BankAccount = req.BankAccount
	empl.PhotoURL = req.PhotoURL

	if err := s.repo.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)
	return mapToResponse(*empl), nil
}

// UpdateSalary menaikkan gaji. Gaji tidak boleh turun.
func (s *service) UpdateSalary(ctx context.Context, id string, req UpdateSalaryRequest) (EmployeeResponse, error) {
	empl, err := s.findExisting(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if req.Salary <= 0 {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}
	if req.Salary < empl.Salary {
		s.logger.Warn("salary decrease rejected",
			zap.String("employee_id", id),
			zap.Int64("current", empl.Salary),
			zap.Int64("requested", req.Salary),
		)
		return EmployeeResponse{}, employeeerrors.ErrSalaryDecrease
	}

	empl.Salary = req.Salary
	if err := s.repo.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("salary updated",
		zap.String("employee_id", id),
		zap.Int64("salary", req.Salary),
	)
	return mapToResponse(*empl), nil
}

func (s *service) ToggleVerified(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.findExisting(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl.IsVerified = !empl.IsVerified
	if err := s.repo.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("verification toggled",
		zap.String("employee_id", id),
		zap.Bool("is_verified", empl.IsVerified),
	)
	return mapToResponse(*empl), nil
}

// Terminate menandai karyawan berhenti. Baris tidak dihapus karena riwayat
// payroll merujuk snapshot karyawan ini.
func (s *service) Terminate(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.findExisting(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if empl.EmploymentStatus == EmploymentTerminated {
		return EmployeeResponse{}, employeeerrors.ErrAlreadyTerminated
	}

	empl.EmploymentStatus = EmploymentTerminated
	if err := s.repo.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("employee terminated", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) findExisting(ctx context.Context, id string) (*Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return empl, nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, employeeOptionsKey).Err()
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               empl.ID.String(),
		FullName:         empl.FullName,
		Email:            empl.Email,
		Designation:      empl.Designation,
		Phone:            empl.Phone,
		Salary:           empl.Salary,
		BankAccount:      empl.BankAccount,
		PhotoURL:         empl.PhotoURL,
		IsVerified:       empl.IsVerified,
		EmploymentStatus: empl.EmploymentStatus,
		HireDate:         empl.HireDate.Format("2006-01-02"),
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, empl := range employees {
		resp[i] = mapToResponse(empl)
	}
	return resp
}
