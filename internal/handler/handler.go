package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"menu-catalog/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeSuccess writes the single-object success envelope.
func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, model.SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// writeList writes the paginated listing envelope.
func writeList(w http.ResponseWriter, items interface{}, pagination model.Pagination) {
	writeJSON(w, http.StatusOK, model.ListResponse{
		Data:       items,
		Pagination: pagination,
	})
}

// writeError writes the error envelope with the given status, code and
// message.
func writeError(w http.ResponseWriter, status int, code, message, details string, logger zerolog.Logger) {
	logger.Debug().
		Str("code", code).
		Str("message", message).
		Int("status", status).
		Msg("request rejected")

	writeJSON(w, status, model.ErrorResponse{
		Error: model.ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// writeServiceError classifies a service-layer error into exactly one
// envelope and status code. Unexpected errors are logged in full but reach
// the client only as a generic internal error.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "Validation failed", validationErr.Error(), logger)
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case model.ErrCodeNotFound:
			status = http.StatusNotFound
		case model.ErrCodeDuplicateItem:
			status = http.StatusConflict
		}
		writeError(w, status, domainErr.Code, domainErr.Message, "", logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected service error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "An internal server error occurred", "", logger)
}
