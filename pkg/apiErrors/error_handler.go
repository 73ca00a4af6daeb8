package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Error codes returned to the dashboard frontend.
const (
	// Validation errors
	ErrInvalidRequest      = "VAL_001" // malformed request
	ErrMissingRequiredData = "VAL_002" // required parameter absent
	ErrInvalidFormat       = "VAL_003" // parameter present but unparseable

	// Date-range errors
	ErrInvalidDateRange = "RNG_001" // explicit start date after end date

	// Upstream errors
	ErrUpstreamFetch = "UPS_001" // tariff sheet could not be fetched

	// Server errors
	ErrInternalServer = "SRV_001"
)

var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrInvalidDateRange:    http.StatusBadRequest,
	ErrUpstreamFetch:       http.StatusBadGateway,
	ErrInternalServer:      http.StatusInternalServerError,
}

// APIError is the standard error payload.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError writes the coded error with its mapped HTTP status.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
