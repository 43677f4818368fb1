package teamerrors

import (
	"net/http"

	"go-teamdesk/internal/shared/apperror"
)

var (
	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"Team not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaderRole = apperror.New(
		apperror.CodeValidationFailed,
		"Selected team leader is not of role Team Lead",
		http.StatusBadRequest,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid ID",
		http.StatusBadRequest,
	)
	ErrUnknownUser = apperror.New(
		apperror.CodeInvalidInput,
		"Leader or member does not exist",
		http.StatusBadRequest,
	)
)
