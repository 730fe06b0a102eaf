package gradeerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrGradeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Grade not found",
		http.StatusNotFound,
	)
	ErrGradeLabelExists = apperror.New(
		apperror.CodeConflict,
		"A grade with the same label already exists",
		http.StatusConflict,
	)
	ErrGradeInUse = apperror.New(
		apperror.CodeConflict,
		"Grade is still assigned to employees",
		http.StatusConflict,
	)
	ErrInvalidGradeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid grade ID",
		http.StatusBadRequest,
	)
	ErrInvalidBaseSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Base salary must be zero or positive",
		http.StatusBadRequest,
	)
)

var ErrLabelRequired = apperror.RequiredField("Label")
