package transport

import (
	"errors"
	"net/http"

	"nova-commerce/internal/middleware"
	"nova-commerce/internal/repository"
	"nova-commerce/internal/service"

	"go.uber.org/zap"
)

// respondServiceError maps service and repository errors onto the HTTP
// error taxonomy. Unexpected errors are logged server-side and reported
// with a generic message.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case service.IsValidationError(err),
		errors.Is(err, service.ErrPasswordsDoNotMatch),
		errors.Is(err, service.ErrInvalidOrderStatus):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, repository.ErrEmailAlreadyUsed),
		errors.Is(err, repository.ErrCategoryAlreadyExists):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidAdminCredentials),
		errors.Is(err, service.ErrCurrentPasswordIncorrect):
		middleware.RespondWithError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())

	default:
		logger.Error("Unexpected error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
