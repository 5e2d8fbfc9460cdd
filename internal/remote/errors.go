package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound matches any *Error with a 404 status
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized matches any *Error with a 401 status
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidResponseFormat is returned when a login response carries
	// none of the known token fields
	ErrInvalidResponseFormat = errors.New("invalid response format")
)

// Error is a non-2xx response from a backend
type Error struct {
	Status  int
	Message string // server-supplied message, may be empty
	Body    []byte
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, http.StatusText(e.Status))
}

// Is lets errors.Is match status-class sentinels
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// StatusCode returns the HTTP status of err, or 0 if err is not a remote error
func StatusCode(err error) int {
	var re *Error
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}

// MessageOr returns the server-supplied message carried by err, or fallback
// when there is none
func MessageOr(err error, fallback string) string {
	var re *Error
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}

// errorBody covers the error shapes the backends produce:
// {"message": "..."} and {"error": {"message": "..."}}
type errorBody struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func newError(status int, body []byte) *Error {
	e := &Error{Status: status, Body: body}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return e
	}
	if eb.Message != "" {
		e.Message = eb.Message
		return e
	}

	var nested struct {
		Message string `json:"message"`
	}
	if len(eb.Error) > 0 && json.Unmarshal(eb.Error, &nested) == nil {
		e.Message = nested.Message
	}
	return e
}
