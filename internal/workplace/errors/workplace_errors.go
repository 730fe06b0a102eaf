package workplaceerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrWorkplaceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Workplace not found",
		http.StatusNotFound,
	)
	ErrWorkplaceInUse = apperror.New(
		apperror.CodeConflict,
		"Workplace still has employees assigned",
		http.StatusConflict,
	)
	ErrInvalidWorkplaceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid workplace ID",
		http.StatusBadRequest,
	)
	ErrInvalidZone = apperror.New(
		apperror.CodeInvalidInput,
		"Zone must be URBAN or RURAL",
		http.StatusBadRequest,
	)
)

var ErrNameRequired = apperror.RequiredField("Name")
