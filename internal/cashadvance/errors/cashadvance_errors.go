package cashadvanceerrors

import (
	"net/http"

	"go-paytrack/internal/shared/apperror"
)

var (
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must be greater than zero",
		http.StatusBadRequest,
	)

	ErrAmountExceedsCeiling = apperror.New(
		apperror.CodeInvalidInput,
		"Amount exceeds the maximum cash advance",
		http.StatusBadRequest,
	)

	ErrAdvanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Cash advance not found",
		http.StatusNotFound,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee id",
		http.StatusBadRequest,
	)

	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid actor id",
		http.StatusBadRequest,
	)
)
