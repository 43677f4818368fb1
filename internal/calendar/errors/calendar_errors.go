package calendarerrors

import (
	"net/http"

	"go-teamdesk/internal/shared/apperror"
)

var (
	ErrEventNotFound = apperror.New(
		apperror.CodeNotFound,
		"Calendar event not found",
		http.StatusNotFound,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid ID",
		http.StatusBadRequest,
	)
	ErrTeamNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Team does not exist",
		http.StatusBadRequest,
	)
	ErrNotTeamLeader = apperror.New(
		apperror.CodeForbidden,
		"Only the team leader can manage this calendar",
		http.StatusForbidden,
	)

	ErrTitleRequired = apperror.RequiredField("title")
	ErrTitleTooLong  = apperror.Validation("title must be at most 100 characters")
)
