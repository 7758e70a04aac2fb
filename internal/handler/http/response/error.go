package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/auth"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/apperr"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
		return
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
		return
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
		return
	}

	appErr, ok := apperr.As(err)
	if !ok {
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	switch appErr.Kind {
	case apperr.KindValidation:
		AppError(w, http.StatusBadRequest, appErr.Code, appErr.Message)
	case apperr.KindConflict, apperr.KindPrecondition:
		AppError(w, http.StatusConflict, appErr.Code, appErr.Message)
	case apperr.KindNotFound:
		AppError(w, http.StatusNotFound, appErr.Code, appErr.Message)
	case apperr.KindAuthorization:
		AppError(w, http.StatusForbidden, appErr.Code, appErr.Message)
	case apperr.KindDependency:
		slog.Error("dependency failure", "error", err)
		ServiceUnavailable(w, appErr.Message)
	default:
		slog.Error("unhandled error kind", "kind", appErr.Kind, "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
