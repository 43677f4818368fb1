package tickettypeerrors

import (
	"net/http"

	"go-teamdesk/internal/shared/apperror"
)

var (
	ErrTicketTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Ticket type not found",
		http.StatusNotFound,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid ID",
		http.StatusBadRequest,
	)

	ErrNameRequired = apperror.RequiredField("name")
	ErrNameTooLong  = apperror.Validation("name must be at most 30 characters")
)
