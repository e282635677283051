package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/ledgercore/internal/adapter/http/dto"
	"github.com/iho/ledgercore/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes. Lock timeouts and
// id collisions map to 409: the former is retryable as-is, the latter needs a
// different id.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransaction):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, domain.ErrLockTimeout):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// rejectionReason labels a post failure for metrics.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTooFewEntries):
		return "too_few_entries"
	case errors.Is(err, domain.ErrNegativeAmount):
		return "negative_amount"
	case errors.Is(err, domain.ErrInvalidDirection):
		return "invalid_direction"
	case errors.Is(err, domain.ErrUnbalancedEntries):
		return "unbalanced"
	case errors.Is(err, domain.ErrInvalidTransaction):
		return "invalid"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return "duplicate_id"
	case errors.Is(err, domain.ErrLockTimeout):
		return "lock_timeout"
	default:
		return "store_error"
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
