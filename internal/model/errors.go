package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username already exists")

	// Deck errors
	ErrDeckNotFound      = errors.New("deck not found")
	ErrNotDeckOwner      = errors.New("deck belongs to another user")
	ErrInvalidDeckType   = errors.New("invalid deck type")
	ErrCommanderRequired = errors.New("commander decks require a commander")
	ErrCardNotInDeck     = errors.New("card is not in deck")
	ErrDeckFull          = errors.New("deck size limit reached")
	ErrDeckNameRequired  = errors.New("deck name is required")
	ErrNoCardsToAdd      = errors.New("no cards to add")

	// Card errors
	ErrCardNotFound    = errors.New("card not found")
	ErrAmbiguousCard   = errors.New("more than one card matched")
	ErrUnknownCardName = errors.New("unknown card name")

	// Definition errors
	ErrDefinitionNotFound = errors.New("definition not found")
)
