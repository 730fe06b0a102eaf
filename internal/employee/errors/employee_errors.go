package employeeerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrMatriculeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Matricule already exists",
		http.StatusConflict,
	)
	ErrEmployeeHasPayslips = apperror.New(
		apperror.CodeConflict,
		"Employee has payslips and cannot be deleted",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrGradeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Grade not found",
		http.StatusNotFound,
	)
	ErrWorkplaceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Workplace not found",
		http.StatusNotFound,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)

var (
	ErrFirstNameRequired = apperror.RequiredField("First Name")
	ErrLastNameRequired  = apperror.RequiredField("Last Name")
)
