package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable wraps failures to reach a service or read its answer.
	ErrUnavailable = errors.New("service unavailable")
)

// APIError is a non-2xx answer from a backend service.
type APIError struct {
	Service string
	Status  int
	Message string
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s service returned %d: %s", e.Service, e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

func newAPIError(service string, status int, body []byte) *APIError {
	return &APIError{
		Service: service,
		Status:  status,
		Message: errorMessage(status, body),
		Body:    string(body),
	}
}

// errorMessage prefers a JSON message or error field, then the raw text
// body, then the status text.
func errorMessage(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return http.StatusText(status)
	}

	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
		return http.StatusText(status)
	}

	if len(trimmed) > 300 {
		trimmed = trimmed[:300]
	}
	return trimmed
}

// StatusOf maps err to the status a handler should answer with. Client
// errors from a backend pass through; everything else is a bad gateway.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
	}
	return http.StatusBadGateway
}

// MessageOf is the user-facing message for err.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Service temporarily unavailable. Please try again."
}
