package storage

import (
	"context"

	"github.com/mcoot/deckbuilder/internal/model"
)

// Storage defines the interface for deck service persistence
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, username string) (*model.User, error)

	// Deck operations
	SaveDeck(ctx context.Context, deck *model.StoredDeck) error
	GetDeck(ctx context.Context, id model.DeckID) (*model.StoredDeck, error)
	GetDecksByOwner(ctx context.Context, owner string) ([]*model.StoredDeck, error)
	DeleteDeck(ctx context.Context, id model.DeckID) error
}
