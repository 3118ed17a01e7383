package adaptor

import (
	"errors"
	"net/http"

	"airline-api/internal/usecase"
	"airline-api/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors to HTTP responses. notFound is the
// message sent for ErrNotFound.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation, notFound string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid input", nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, notFound)

	case errors.Is(err, usecase.ErrAlreadyDeparted):
		log.Warn(operation+" failed - flight departed", zap.Error(err))
		utils.ResponseBadRequest(w, "Flight has already departed", nil)

	case errors.Is(err, usecase.ErrNoSeatsAvailable):
		log.Warn(operation+" failed - no seats", zap.Error(err))
		utils.ResponseNotFound(w, "No seats available in this class")

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, "Request conflicted with a concurrent update, please retry")

	case errors.Is(err, usecase.ErrTransient):
		log.Warn(operation+" failed - storage unavailable", zap.Error(err))
		w.Header().Set("Retry-After", "1")
		utils.ResponseServiceUnavailable(w, "Service temporarily unavailable, please retry")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
