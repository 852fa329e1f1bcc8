package taxationerrors

import (
	"net/http"

	"go-hr-payroll/internal/shared/apperror"
)

var (
	ErrUnsupportedGender = apperror.New(
		apperror.CodeInvalidInput,
		"gender must be Male or Female",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrUnsupportedTaxYear = apperror.New(
		apperror.CodeInvalidInput,
		"no tax schedule configured for the requested year",
		http.StatusBadRequest,
	)
	ErrResultNotCached = apperror.New(
		apperror.CodeNotFound,
		"no cached tax result for this employee",
		http.StatusNotFound,
	)
)
