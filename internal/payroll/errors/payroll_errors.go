package payrollerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll record not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be one of the twelve canonical month names",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be a four-digit year not beyond the current year",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"payroll amount must be a positive number",
		http.StatusBadRequest,
	)
	ErrDuplicatePeriod = apperror.New(
		apperror.CodeConflict,
		"a payroll request already exists for this employee and period",
		http.StatusConflict,
	)
	ErrEmployeeNotEligible = apperror.New(
		apperror.CodeInvalidInput,
		"employee is not eligible for payroll (unverified or terminated)",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"payroll record is not in a state that allows this transition",
		http.StatusBadRequest,
	)
	ErrAlreadyProcessing = apperror.New(
		apperror.CodeConflict,
		"this payroll record is already being processed",
		http.StatusConflict,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"this payroll record was already processed by another request",
		http.StatusConflict,
	)
	ErrPaymentFailed = apperror.New(
		apperror.CodePaymentFailed,
		"payment capture failed",
		http.StatusPaymentRequired,
	)
	ErrNotAuthorized = apperror.New(
		apperror.CodeForbidden,
		"caller role is not allowed to perform this payroll operation",
		http.StatusForbidden,
	)
	ErrForbiddenHistory = apperror.New(
		apperror.CodeForbidden,
		"you may only view your own payroll history",
		http.StatusForbidden,
	)
	ErrInvalidPage = apperror.New(
		apperror.CodeInvalidInput,
		"page and limit must be positive integers",
		http.StatusBadRequest,
	)
)
