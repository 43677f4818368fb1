package leaveerrors

import (
	"net/http"

	"go-teamdesk/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave application not found",
		http.StatusNotFound,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidationFailed,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.Validation("Start date cannot be after end date")
	ErrReasonRequired   = apperror.RequiredField("reason")
	ErrInvalidStatus    = apperror.InvalidField("status")
	ErrNotTeamMember    = apperror.Validation("User is not a member of the selected team")

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Leave application has already been decided",
		http.StatusConflict,
	)
	ErrNotTeamLeader = apperror.New(
		apperror.CodeForbidden,
		"Only the team leader can decide this leave application",
		http.StatusForbidden,
	)
	ErrForeignUser = apperror.New(
		apperror.CodeForbidden,
		"Cannot apply for leave on behalf of another user",
		http.StatusForbidden,
	)
	ErrUnknownReference = apperror.New(
		apperror.CodeInvalidInput,
		"User or team does not exist",
		http.StatusBadRequest,
	)
)
