package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired is matched by any error caused by a 403 from the API.
// The API answers 403 for expired or invalid bearer tokens alike.
var ErrSessionExpired = errors.New("session expired")

// ErrEmptyResponse is reported when an endpoint that must return a body
// returns nothing
var ErrEmptyResponse = errors.New("empty response body")

// Error is a non-2xx answer from the API
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Is makes errors.Is(err, ErrSessionExpired) true for 403 answers
func (e *Error) Is(target error) bool {
	return target == ErrSessionExpired && e.StatusCode == http.StatusForbidden
}

// DecodeError is reported when a 2xx body does not have the expected shape
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UserMessage returns a message suitable for a notification. API messages
// are passed through; anything else gets a generic text.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.StatusCode < 500 {
		return apiErr.Message
	}
	return "Something went wrong. Please try again later."
}
