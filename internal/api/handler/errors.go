package handler

import (
	"net/http"

	"github.com/mcoot/deckbuilder/internal/api/apierr"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewNotFoundError creates a not found error
func NewNotFoundError() error {
	return apierr.NewNotFoundError()
}
