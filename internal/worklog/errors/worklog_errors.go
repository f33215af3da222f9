package worklogerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrInvalidWorkDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid work_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"hours must be between 1 and 24",
		http.StatusBadRequest,
	)
	ErrNotLinkedToEmployee = apperror.New(
		apperror.CodeForbidden,
		"your account is not linked to an employee profile",
		http.StatusForbidden,
	)
	ErrForbiddenWorklog = apperror.New(
		apperror.CodeForbidden,
		"you may only view your own work logs",
		http.StatusForbidden,
	)
)
