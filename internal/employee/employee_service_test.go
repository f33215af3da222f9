package employee_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-ems/internal/employee"
	employeeerrors "go-ems/internal/employee/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeRepository struct {
	createFn      func(ctx context.Context, empl *employee.Employee) error
	findAllFn     func(ctx context.Context, filter employee.GetEmployeesFilterRequest) ([]employee.Employee, error)
	findByIDFn    func(ctx context.Context, id string) (*employee.Employee, error)
	findByEmailFn func(ctx context.Context, email string) (*employee.Employee, error)
	updateFn      func(ctx context.Context, empl *employee.Employee) error
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context, filter employee.GetEmployeesFilterRequest) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func activeEmployee(id uuid.UUID) *employee.Employee {
	return &employee.Employee{
		ID:               id,
		FullName:         "Siti Rahma",
		Email:            "siti@corp.test",
		Salary:           500000,
		IsVerified:       true,
		EmploymentStatus: employee.EmploymentActive,
		HireDate:         time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeEmployeeRepository{}
		svc := employee.NewService(repo, nil)

		resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Siti Rahma",
			Email:    "siti@corp.test",
			Salary:   500000,
			HireDate: "2024-06-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, employee.EmploymentActive, resp.EmploymentStatus)
		assert.False(t, resp.IsVerified)
		assert.Equal(t, "2024-06-01", resp.HireDate)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			createFn: func(ctx context.Context, empl *employee.Employee) error {
				return employeeerrors.ErrEmailAlreadyExists
			},
		}
		svc := employee.NewService(repo, nil)

		_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Siti Rahma",
			Email:    "siti@corp.test",
			Salary:   500000,
			HireDate: "2024-06-01",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmailAlreadyExists)
	})

	t.Run("invalid hire date", func(t *testing.T) {
		svc := employee.NewService(&fakeEmployeeRepository{}, nil)

		_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Siti Rahma",
			Email:    "siti@corp.test",
			Salary:   500000,
			HireDate: "01-06-2024",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})
}

func TestEmployeeService_UpdateSalary(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("raise succeeds", func(t *testing.T) {
		var persisted *employee.Employee
		repo := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return activeEmployee(employeeID), nil
			},
			updateFn: func(ctx context.Context, empl *employee.Employee) error {
				persisted = empl
				return nil
			},
		}
		svc := employee.NewService(repo, nil)

		resp, err := svc.UpdateSalary(ctx, employeeID.String(), employee.UpdateSalaryRequest{Salary: 600000})

		assert.NoError(t, err)
		assert.Equal(t, int64(600000), resp.Salary)
		assert.NotNil(t, persisted)
		assert.Equal(t, int64(600000), persisted.Salary)
	})

	t.Run("decrease is rejected", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return activeEmployee(employeeID), nil
			},
			updateFn: func(ctx context.Context, empl *employee.Employee) error {
				t.Error("a rejected salary change must not be persisted")
				return nil
			},
		}
		svc := employee.NewService(repo, nil)

		_, err := svc.UpdateSalary(ctx, employeeID.String(), employee.UpdateSalaryRequest{Salary: 400000})

		assert.ErrorIs(t, err, employeeerrors.ErrSalaryDecrease)
	})

	t.Run("equal salary is allowed", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return activeEmployee(employeeID), nil
			},
		}
		svc := employee.NewService(repo, nil)

		resp, err := svc.UpdateSalary(ctx, employeeID.String(), employee.UpdateSalaryRequest{Salary: 500000})

		assert.NoError(t, err)
		assert.Equal(t, int64(500000), resp.Salary)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := employee.NewService(&fakeEmployeeRepository{}, nil)

		_, err := svc.UpdateSalary(ctx, "not-a-uuid", employee.UpdateSalaryRequest{Salary: 600000})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_ToggleVerified(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	repo := &fakeEmployeeRepository{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			empl := activeEmployee(employeeID)
			empl.IsVerified = false
			return empl, nil
		},
	}
	svc := employee.NewService(repo, nil)

	resp, err := svc.ToggleVerified(ctx, employeeID.String())

	assert.NoError(t, err)
	assert.True(t, resp.IsVerified)
}

func TestEmployeeService_Terminate(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success keeps the row", func(t *testing.T) {
		var persisted *employee.Employee
		repo := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return activeEmployee(employeeID), nil
			},
			updateFn: func(ctx context.Context, empl *employee.Employee) error {
				persisted = empl
				return nil
			},
		}
		svc := employee.NewService(repo, nil)

		resp, err := svc.Terminate(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, employee.EmploymentTerminated, resp.EmploymentStatus)
		assert.NotNil(t, persisted)
		assert.Equal(t, employee.EmploymentTerminated, persisted.EmploymentStatus)
	})

	t.Run("already terminated", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				empl := activeEmployee(employeeID)
				empl.EmploymentStatus = employee.EmploymentTerminated
				return empl, nil
			},
		}
		svc := employee.NewService(repo, nil)

		_, err := svc.Terminate(ctx, employeeID.String())

		assert.ErrorIs(t, err, employeeerrors.ErrAlreadyTerminated)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips repository", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		cached, _ := json.Marshal([]employee.EmployeeOption{
			{ID: uuid.New().String(), FullName: "Siti Rahma", Email: "siti@corp.test"},
		})
		redisMock.ExpectGet("employees:options").SetVal(string(cached))

		repo := &fakeEmployeeRepository{
			findAllFn: func(ctx context.Context, filter employee.GetEmployeesFilterRequest) ([]employee.Employee, error) {
				t.Error("repository must not be queried on cache hit")
				return nil, nil
			},
		}
		svc := employee.NewService(repo, rdb)

		options, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, options, 1)
		assert.Equal(t, "Siti Rahma", options[0].FullName)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss queries active employees and fills cache", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet("employees:options").RedisNil()
		redisMock.Regexp().ExpectSet("employees:options", `.*`, 10*time.Minute).SetVal("OK")

		repo := &fakeEmployeeRepository{
			findAllFn: func(ctx context.Context, filter employee.GetEmployeesFilterRequest) ([]employee.Employee, error) {
				assert.Equal(t, employee.EmploymentActive, filter.Status)
				return []employee.Employee{*activeEmployee(uuid.New()), *activeEmployee(uuid.New())}, nil
			},
		}
		svc := employee.NewService(repo, rdb)

		options, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, options, 2)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
