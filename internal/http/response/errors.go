package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kvitka/hotel-bookings/internal/domain"
	"github.com/kvitka/hotel-bookings/pkg/logger"
)

// ErrorResponse represents a structured JSON error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

// Common error codes
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeRateLimit          = "RATE_LIMIT_EXCEEDED"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodePasswordMismatch   = "PASSWORD_MISMATCH"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailNotConfirmed  = "EMAIL_NOT_CONFIRMED"
	CodeConfirmationFailed = "CONFIRMATION_FAILED"
	CodeInvalidName        = "INVALID_NAME"
	CodeInvalidPhone       = "INVALID_PHONE"
	CodeInvalidBirthday    = "INVALID_BIRTHDAY"
	CodeInvalidPersons     = "INVALID_PERSON_COUNT"
	CodePastDate           = "PAST_DATE"
	CodeInvalidDateRange   = "INVALID_DATE_RANGE"
	CodeProfileIncomplete  = "PROFILE_INCOMPLETE"
	CodeSaveRejected       = "SAVE_REJECTED"
)

// WriteError writes a structured JSON error response
func WriteError(w http.ResponseWriter, statusCode int, message string, code string) {
	writeErrorResponse(w, statusCode, ErrorResponse{Error: message, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, errResp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// DomainError maps a service-layer error onto the HTTP envelope. Unknown
// errors become opaque 500s.
func DomainError(w http.ResponseWriter, err error) {
	var nameErr *domain.InvalidNameError
	if errors.As(err, &nameErr) {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Error: nameErr.Error(),
			Code:  CodeInvalidName,
			Field: nameErr.Field,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateAccount):
		WriteError(w, http.StatusConflict, err.Error(), CodeEmailExists)
	case errors.Is(err, domain.ErrPasswordMismatch):
		WriteError(w, http.StatusBadRequest, err.Error(), CodePasswordMismatch)
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, err.Error(), CodeInvalidCredentials)
	case errors.Is(err, domain.ErrEmailNotConfirmed):
		WriteError(w, http.StatusForbidden, err.Error(), CodeEmailNotConfirmed)
	case errors.Is(err, domain.ErrConfirmationFailed):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeConfirmationFailed)
	case errors.Is(err, domain.ErrInvalidPhone):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidPhone)
	case errors.Is(err, domain.ErrInvalidBirthday):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidBirthday)
	case errors.Is(err, domain.ErrInvalidPersonCount):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidPersons)
	case errors.Is(err, domain.ErrPastDate):
		WriteError(w, http.StatusBadRequest, err.Error(), CodePastDate)
	case errors.Is(err, domain.ErrInvalidDateRange):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidDateRange)
	case errors.Is(err, domain.ErrProfileIncomplete):
		WriteError(w, http.StatusForbidden, err.Error(), CodeProfileIncomplete)
	case errors.Is(err, domain.ErrSaveRejected):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeSaveRejected)
	case errors.Is(err, domain.ErrRoomDataInUse), errors.Is(err, domain.ErrAlreadyExists):
		WriteError(w, http.StatusConflict, err.Error(), CodeConflict)
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not found", CodeNotFound)
	default:
		WriteError(w, http.StatusInternalServerError, "internal error", CodeInternalError)
	}
}

// Convenience functions for common errors
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message, CodeForbidden)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimit)
}
