package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payslip not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrGradeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Grade not found for employee",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payroll period",
		http.StatusBadRequest,
	)
	ErrInvalidPayslipID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payslip ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidPaidAt = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid paid_at format, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"Payslip is not pending payment",
		http.StatusConflict,
	)
	ErrInconsistentTotals = apperror.New(
		apperror.CodeInternalError,
		"Payslip totals are inconsistent",
		http.StatusInternalServerError,
	)
	ErrPayslipNotGenerated = apperror.New(
		apperror.CodeNotFound,
		"Payslip PDF has not been generated yet",
		http.StatusNotFound,
	)
	ErrPDFGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate payslip PDF",
		http.StatusInternalServerError,
	)
)
