package dto

import "net/http"

// Response is the envelope every endpoint returns
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries the stable machine-readable code plus a human message
type ErrorInfo struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []ValidationDetail `json:"details,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewErrorResponse wraps an error code and message in an error envelope
func NewErrorResponse(code, message string) Response {
	return Response{Success: false, Error: &ErrorInfo{Code: code, Message: message}}
}

// ValidationDetail points at a single rejected request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationErrorResponse wraps per-field validation failures
func NewValidationErrorResponse(message string, details []ValidationDetail) Response {
	return Response{
		Success: false,
		Error:   &ErrorInfo{Code: ErrCodeValidation, Message: message, Details: details},
	}
}

// Error codes owned by the HTTP layer
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// GetHTTPStatus maps a domain error code to an HTTP status. Business-rule
// rejections are 422: the request was well-formed but the basket cannot be
// processed as submitted.
func GetHTTPStatus(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "ALREADY_EXISTS", "DUPLICATE_BASKET", "CONCURRENCY_CONFLICT":
		return http.StatusConflict
	case "PRICING_AUTH_REQUIRED", "PRICING_AUTH_DENIED":
		return http.StatusForbidden
	case "INSUFFICIENT_STOCK", "SERIALIZED_MISMATCH", "CREDIT_REJECTED",
		"NO_OPEN_SESSION", "INVALID_STATE":
		return http.StatusUnprocessableEntity
	case "STORAGE_FAILURE", ErrCodeInternal:
		return http.StatusInternalServerError
	case "":
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
