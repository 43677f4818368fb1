package userroleerrors

import (
	"net/http"

	"go-teamdesk/internal/shared/apperror"
)

var (
	ErrUserRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"User role not found",
		http.StatusNotFound,
	)
	ErrRoleAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"User already has a role record",
		http.StatusConflict,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeValidationFailed,
		"Role is not a valid choice",
		http.StatusBadRequest,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid ID",
		http.StatusBadRequest,
	)
)
