package ledgererrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrPaymentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payment not found",
		http.StatusNotFound,
	)
	ErrDebtNotFound = apperror.New(
		apperror.CodeNotFound,
		"Debt not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateActivePayment = apperror.New(
		apperror.CodeConflict,
		"An active payment already exists for this employee and month",
		http.StatusConflict,
	)
	ErrCompletedPaymentExists = apperror.New(
		apperror.CodeConflict,
		"A completed payment already exists for this month",
		http.StatusConflict,
	)
	ErrInvalidPaymentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payment ID",
		http.StatusBadRequest,
	)
	ErrInvalidDebtID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid debt ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payment status",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must be greater than or equal to zero",
		http.StatusBadRequest,
	)
	ErrReportGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate payments report",
		http.StatusInternalServerError,
	)
)
