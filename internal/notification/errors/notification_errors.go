package notificationerrors

import (
	"net/http"

	"go-teamdesk/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Notification not found",
		http.StatusNotFound,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid ID",
		http.StatusBadRequest,
	)
	ErrMessageRequired = apperror.RequiredField("Message")
	ErrTitleTooLong    = apperror.New(
		apperror.CodeValidationFailed,
		"Title must be at most 50 characters",
		http.StatusBadRequest,
	)
)
