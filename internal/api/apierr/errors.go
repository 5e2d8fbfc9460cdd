package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/services/auth"
)

// APIError is the error body every endpoint returns
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeDeckNotFound       = "DECK_NOT_FOUND"
	CodeDeckFull           = "DECK_FULL"
	CodeCardNotFound       = "CARD_NOT_FOUND"
	CodeCardNotInDeck      = "CARD_NOT_IN_DECK"
	CodeUnknownCard        = "UNKNOWN_CARD"
	CodeDefinitionNotFound = "DEFINITION_NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.apiError)
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Deck errors
	case errors.Is(err, model.ErrDeckNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeDeckNotFound, "Deck not found"}}
	case errors.Is(err, model.ErrNotDeckOwner):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "You do not own this deck"}}
	case errors.Is(err, model.ErrInvalidDeckType):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Deck type must be STANDARD or COMMANDER"}}
	case errors.Is(err, model.ErrCommanderRequired):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Commander decks require a commander"}}
	case errors.Is(err, model.ErrDeckNameRequired):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Deck name is required"}}
	case errors.Is(err, model.ErrNoCardsToAdd):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "No cards to add"}}
	case errors.Is(err, model.ErrDeckFull):
		return &httpError{http.StatusConflict, APIError{CodeDeckFull, "Deck size limit reached"}}
	case errors.Is(err, model.ErrCardNotInDeck):
		return &httpError{http.StatusNotFound, APIError{CodeCardNotInDeck, "Card is not in this deck"}}

	// Card errors
	case errors.Is(err, model.ErrCardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCardNotFound, "No card matched your search"}}
	case errors.Is(err, model.ErrAmbiguousCard):
		return &httpError{http.StatusNotFound, APIError{CodeCardNotFound, "More than one card matched your search"}}
	case errors.Is(err, model.ErrUnknownCardName):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownCard, "Unknown card name: " + unwrapDetail(err)}}
	case errors.Is(err, model.ErrDefinitionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeDefinitionNotFound, "No definition for that word"}}

	// User and auth errors
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrUserExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, auth.ErrMissingCredentials):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Username and password are required"}}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// unwrapDetail returns the text a wrapped sentinel adds, e.g. the card name
// in "unknown card name: Foo"
func unwrapDetail(err error) string {
	return strings.TrimPrefix(err.Error(), model.ErrUnknownCardName.Error()+": ")
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewNotFoundError creates an error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{"NOT_FOUND", "Not found"}}
}
