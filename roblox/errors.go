package roblox

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidCookie indicates the authentication probe rejected the cookie
	ErrInvalidCookie = errors.New("roblox: cookie rejected by authentication probe")
	// ErrCSRFTokenMissing indicates the probe response carried no anti-forgery token
	ErrCSRFTokenMissing = errors.New("roblox: probe response did not include an x-csrf-token header")
)

// apiErrorEnvelope is the failure shape shared by every Roblox API host:
// an ordered list of error entries, most relevant first.
type apiErrorEnvelope struct {
	Errors []apiErrorEntry `json:"errors"`
}

type apiErrorEntry struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIError represents a non-success response from the Roblox API.
// Message holds the first entry of the error envelope when the body
// carried one, otherwise the textual HTTP status.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("roblox API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates missing or rejected credentials
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// newAPIError normalizes a non-success response into an *APIError. The
// envelope's entry order is trusted as relevance order, so the first
// entry wins; an absent, empty, or malformed envelope falls back to the
// HTTP status line.
func newAPIError(statusCode int, status string, body []byte) *APIError {
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		first := envelope.Errors[0]
		return &APIError{
			StatusCode: statusCode,
			Code:       first.Code,
			Message:    first.Message,
		}
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    status,
	}
}

// DecodeError indicates a success response whose body did not match the
// shape the caller asked Do to produce.
type DecodeError struct {
	Err error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("roblox: failed to decode response body: %v", e.Err)
}

// Unwrap returns the underlying decoding error
func (e *DecodeError) Unwrap() error {
	return e.Err
}
