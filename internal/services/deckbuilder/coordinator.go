// Package deckbuilder drives the deck creation form
package deckbuilder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/notify"
	"github.com/mcoot/deckbuilder/internal/remote"
)

// MaxSuggestions caps the commander suggestion list
const MaxSuggestions = 25

// ErrInvalidForm is returned by Create when a required field is missing
var ErrInvalidForm = errors.New("required deck fields missing")

// DeckCreator creates decks on the remote deck service
type DeckCreator interface {
	CreateDeck(ctx context.Context, name string, deckType model.DeckType, commanderName string) (*model.Deck, error)
}

// Suggester returns card name completions
type Suggester interface {
	GetCardNameSuggestions(ctx context.Context, query string) (*remote.Catalog, error)
}

// Form is the deck creation form. A nil Type means no type is selected.
type Form struct {
	Name                 string
	Type                 *model.DeckType
	CommanderName        string
	CommanderSuggestions []string
}

// Valid reports whether every required field is filled in. The commander
// name is only required for commander decks.
func (f Form) Valid() bool {
	if f.Name == "" || f.Type == nil {
		return false
	}
	return !(*f.Type == model.DeckTypeCommander && f.CommanderName == "")
}

// Coordinator owns the deck creation form
type Coordinator struct {
	creator   DeckCreator
	suggester Suggester
	notifier  notify.Notifier
	logger    *slog.Logger

	mu   sync.Mutex
	form Form
}

// New creates a Coordinator with an empty form
func New(creator DeckCreator, suggester Suggester, notifier notify.Notifier, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		creator:   creator,
		suggester: suggester,
		notifier:  notifier,
		logger:    logger,
	}
}

// Form returns a copy of the current form
func (c *Coordinator) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.form
	f.CommanderSuggestions = append([]string(nil), c.form.CommanderSuggestions...)
	return f
}

// SetName sets the deck name
func (c *Coordinator) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Name = name
}

// SelectType sets the deck type; nil clears the selection
func (c *Coordinator) SelectType(deckType *model.DeckType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Type = deckType
}

// SetCommanderName sets the commander name
func (c *Coordinator) SetCommanderName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.CommanderName = name
}

// IsFormValid reports whether the form can be submitted
func (c *Coordinator) IsFormValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Valid()
}

// SearchCommanderSuggestions refreshes the commander suggestions. Queries
// shorter than two characters clear the list without a lookup. A failed
// lookup leaves the list as it was.
func (c *Coordinator) SearchCommanderSuggestions(ctx context.Context, query string) {
	if len(query) < 2 {
		c.mu.Lock()
		c.form.CommanderSuggestions = nil
		c.mu.Unlock()
		return
	}

	catalog, err := c.suggester.GetCardNameSuggestions(ctx, query)
	if err != nil {
		c.logger.Warn("commander suggestions failed", "query", query, "error", err)
		return
	}
	if catalog == nil || catalog.Data == nil {
		return
	}

	names := catalog.Data
	if len(names) > MaxSuggestions {
		names = names[:MaxSuggestions]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.CommanderSuggestions = append([]string(nil), names...)
}

// Create submits the form. The form is reset after the deck is created.
// A service that answers with no deck is treated as a silent no-op.
func (c *Coordinator) Create(ctx context.Context) (*model.Deck, error) {
	form := c.Form()
	if !form.Valid() {
		c.notifier.Notify(notify.Notification{
			Severity: notify.SeverityError,
			Summary:  "Validation Error",
			Detail:   "Please fill out all required fields",
			Life:     notify.LifeShort,
		})
		return nil, ErrInvalidForm
	}

	commanderName := ""
	if *form.Type == model.DeckTypeCommander {
		commanderName = form.CommanderName
	}

	deck, err := c.creator.CreateDeck(ctx, form.Name, *form.Type, commanderName)
	if err != nil {
		c.logger.Error("failed to create deck", "name", form.Name, "type", *form.Type, "error", err)
		c.notifier.Notify(notify.Error(remote.MessageOr(err, "Failed to create deck")).WithLife(notify.LifeLong))
		return nil, fmt.Errorf("create deck: %w", err)
	}
	if deck == nil {
		c.logger.Warn("deck service returned no deck", "name", form.Name)
		return nil, nil
	}

	c.notifier.Notify(notify.Success("Deck created successfully").WithLife(notify.LifeShort))
	c.Reset()
	return deck, nil
}

// Reset clears the form
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = Form{}
}
