package salaryrecorderrors

import (
	"net/http"

	"go-hr-payroll/internal/shared/apperror"
)

var (
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrNegativeMoneyValue = apperror.New(
		apperror.CodeInvalidInput,
		"salary amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrNoAttendanceRecords = apperror.New(
		apperror.CodeInvalidState,
		"no attendance records exist for this period",
		http.StatusBadRequest,
	)
	ErrDuplicateEmployeeRow = apperror.New(
		apperror.CodeInvalidInput,
		"batch contains more than one row for the same employee",
		http.StatusBadRequest,
	)
)
