package elementerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrElementNotFound = apperror.New(
		apperror.CodeNotFound,
		"Compensation element not found",
		http.StatusNotFound,
	)
	ErrElementNameExists = apperror.New(
		apperror.CodeConflict,
		"Compensation element name already exists",
		http.StatusConflict,
	)
	ErrInvalidElementID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid compensation element ID",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"Kind must be GAIN or DEDUCTION",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must not be negative",
		http.StatusBadRequest,
	)
)

var ErrNameRequired = apperror.RequiredField("Name")
