package clockerrors

import (
	"net/http"

	"go-paytrack/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"Already clocked in for today",
		http.StatusConflict,
	)

	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeConflict,
		"Already clocked out for today",
		http.StatusConflict,
	)

	ErrNoOpenSession = apperror.New(
		apperror.CodeNotFound,
		"No open clock-in found for today",
		http.StatusNotFound,
	)

	ErrClockOutBeforeClockIn = apperror.New(
		apperror.CodeInvalidInput,
		"Clock-out must not be earlier than clock-in",
		http.StatusBadRequest,
	)

	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid timestamp format, expected RFC3339",
		http.StatusBadRequest,
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
