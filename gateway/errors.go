package gateway

import (
	"errors"
	"fmt"
)

// APIError is a backend response with status >= 400.
type APIError struct {
	Status  int
	Message string // from the {"message": ...} body, may be empty
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: backend returned status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: backend returned status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// MessageOf returns the server-provided message carried by err, or "".
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// MessageOr returns the server-provided message carried by err, or fallback.
func MessageOr(err error, fallback string) string {
	if msg := MessageOf(err); msg != "" {
		return msg
	}
	return fallback
}
