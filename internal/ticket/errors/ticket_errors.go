package ticketerrors

import (
	"net/http"

	"go-teamdesk/internal/shared/apperror"
)

var (
	ErrTicketNotFound = apperror.New(
		apperror.CodeNotFound,
		"Ticket not found",
		http.StatusNotFound,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid ID",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Ticket cannot move to the requested status",
		http.StatusConflict,
	)
	ErrNotTeamLeader = apperror.New(
		apperror.CodeForbidden,
		"Only the team leader can respond to this ticket",
		http.StatusForbidden,
	)
	ErrForeignUser = apperror.New(
		apperror.CodeForbidden,
		"Cannot raise a ticket on behalf of another user",
		http.StatusForbidden,
	)
	ErrUnknownReference = apperror.New(
		apperror.CodeInvalidInput,
		"Referenced user, team or ticket type does not exist",
		http.StatusBadRequest,
	)

	ErrIssueDetailRequired = apperror.RequiredField("issue_detail")
	ErrTicketNumberTooLong = apperror.Validation("ticket_number must be at most 10 characters")
	ErrInvalidStatus       = apperror.InvalidField("ticket_status")
	ErrTicketTypeInactive  = apperror.Validation("Selected ticket type is not active")
)
