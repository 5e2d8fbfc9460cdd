// Package deckview coordinates loading and editing a single selected deck
// together with the list of the user's decks.
package deckview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/notify"
	"github.com/mcoot/deckbuilder/internal/queue"
	"github.com/mcoot/deckbuilder/internal/remote"
)

// Errors returned when an operation is not allowed in the current state
var (
	ErrNoDeckSelected = errors.New("no deck selected")
	ErrQueueEmpty     = errors.New("card queue is empty")
	ErrBusy           = errors.New("deck is being modified")
	ErrStaleLoad      = errors.New("deck load superseded by a newer request")
)

const (
	failedAdd    = "Failed to add cards to deck"
	failedRemove = "Failed to remove card from deck"
	failedDelete = "Failed to delete deck"

	creatureType = "Creature"
)

// State of the selected deck
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateMutating
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateMutating:
		return "mutating"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DeckService is the subset of the remote deck service used by the view
type DeckService interface {
	GetMyDecks(ctx context.Context) ([]model.Deck, error)
	GetDeckByID(ctx context.Context, id model.DeckID) (*model.Deck, error)
	AddCardsToDeck(ctx context.Context, id model.DeckID, names []string) (*model.Deck, error)
	RemoveCardFromDeck(ctx context.Context, id model.DeckID, cardID model.CardID) (*model.Deck, error)
	DeleteDeck(ctx context.Context, id model.DeckID) error
}

// Suggester returns card name completions
type Suggester interface {
	GetCardNameSuggestions(ctx context.Context, query string) (*remote.Catalog, error)
}

// Confirmer asks the user to accept or decline a destructive action
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface
type ConfirmFunc func(message string) bool

// Confirm calls f(message)
func (f ConfirmFunc) Confirm(message string) bool {
	return f(message)
}

// Coordinator owns the deck view state. Remote calls are made without
// holding the lock so readers are never blocked by the network.
type Coordinator struct {
	service   DeckService
	suggester Suggester
	notifier  notify.Notifier
	logger    *slog.Logger

	mu           sync.Mutex
	state        State
	deck         *model.Deck
	decks        []model.Deck
	loadingDecks bool
	generation   uint64
	queue        *queue.Queue
	input        queue.Input
	suggestions  []string
}

// New creates a Coordinator with nothing loaded
func New(service DeckService, suggester Suggester, notifier notify.Notifier, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		service:   service,
		suggester: suggester,
		notifier:  notifier,
		logger:    logger,
		queue:     queue.New(),
		input:     queue.NewInput(),
	}
}

// LoadDecks refreshes the list of the user's decks. On failure the
// previous list is kept.
func (c *Coordinator) LoadDecks(ctx context.Context) error {
	c.mu.Lock()
	c.loadingDecks = true
	c.mu.Unlock()

	decks, err := c.service.GetMyDecks(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadingDecks = false
	if err != nil {
		c.logger.Error("failed to load decks", "error", err)
		return fmt.Errorf("load decks: %w", err)
	}
	c.decks = decks
	return nil
}

// Decks returns the cached deck list
func (c *Coordinator) Decks() []model.Deck {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Deck, len(c.decks))
	copy(out, c.decks)
	return out
}

// LoadingDecks reports whether a deck list refresh is in flight
func (c *Coordinator) LoadingDecks() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadingDecks
}

// DecksByType returns the cached decks of the given type
func (c *Coordinator) DecksByType(deckType model.DeckType) []model.Deck {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []model.Deck
	for _, d := range c.decks {
		if d.Type == deckType {
			out = append(out, d)
		}
	}
	return out
}

// Load selects a deck. A response for a load that has since been
// superseded by another call to Load is discarded and ErrStaleLoad is
// returned.
func (c *Coordinator) Load(ctx context.Context, id model.DeckID) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = StateLoading
	c.mu.Unlock()

	deck, err := c.service.GetDeckByID(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.logger.Debug("discarding superseded deck load", "deck_id", id)
		return ErrStaleLoad
	}
	if err != nil {
		c.logger.Error("failed to load deck", "deck_id", id, "error", err)
		c.state = StateUnloaded
		c.deck = nil
		return fmt.Errorf("load deck %s: %w", id, err)
	}

	c.deck = deck
	c.state = StateLoaded
	c.queue.Clear()
	c.input.Reset()
	return nil
}

// Unload drops the selected deck
func (c *Coordinator) Unload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.state = StateUnloaded
	c.deck = nil
}

// State returns the selected deck's state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Deck returns a copy of the selected deck, or nil
func (c *Coordinator) Deck() *model.Deck {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deck == nil {
		return nil
	}
	return c.deck.Clone()
}

// SearchCardSuggestions replaces the card name suggestions. Queries shorter
// than two characters leave the current suggestions untouched.
func (c *Coordinator) SearchCardSuggestions(ctx context.Context, query string) {
	if len(query) < 2 {
		return
	}

	catalog, err := c.suggester.GetCardNameSuggestions(ctx, query)
	var names []string
	if err != nil {
		c.logger.Warn("card suggestions failed", "query", query, "error", err)
	} else if catalog != nil {
		names = catalog.Data
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.suggestions = append([]string{}, names...)
}

// Suggestions returns the current card name suggestions
func (c *Coordinator) Suggestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.suggestions...)
}

// Input returns the add-card form
func (c *Coordinator) Input() queue.Input {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// SetInput replaces the add-card form
func (c *Coordinator) SetInput(in queue.Input) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = in
}

// QueueInput adds the form's card to the queue, resetting the form when
// the add was accepted
func (c *Coordinator) QueueInput() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.AddInput(&c.input)
}

// QueueCard adds quantity copies of name to the queue
func (c *Coordinator) QueueCard(name string, quantity int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Add(name, quantity)
}

// RemoveQueued drops the queue entry at index
func (c *Coordinator) RemoveQueued(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue.Remove(index)
}

// ClearQueue empties the queue
func (c *Coordinator) ClearQueue() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue.Clear()
}

// Queued returns the queued entries
func (c *Coordinator) Queued() []queue.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Entries()
}

// QueuedTotal returns the number of queued cards
func (c *Coordinator) QueuedTotal() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Total()
}

// AddQueuedCards commits the queue to the selected deck in one request
func (c *Coordinator) AddQueuedCards(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateMutating {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.state != StateLoaded || c.deck == nil {
		c.mu.Unlock()
		return ErrNoDeckSelected
	}
	if c.queue.Len() == 0 {
		c.mu.Unlock()
		return ErrQueueEmpty
	}
	id := c.deck.ID
	names := c.queue.Flatten()
	c.state = StateMutating
	c.mu.Unlock()

	deck, err := c.service.AddCardsToDeck(ctx, id, names)
	if err != nil {
		c.logger.Error("failed to add cards", "deck_id", id, "count", len(names), "error", err)
		c.finishMutation(nil)
		c.notifier.Notify(notify.Error(remote.MessageOr(err, failedAdd)))
		return fmt.Errorf("add cards to deck %s: %w", id, err)
	}

	c.mu.Lock()
	c.queue.Clear()
	c.mu.Unlock()
	c.finishMutation(deck)

	c.notifier.Notify(notify.Success(fmt.Sprintf("Added %d card(s) to deck", len(names))))
	c.reloadDecks(ctx)
	return nil
}

// RemoveCard removes one copy of card from the selected deck
func (c *Coordinator) RemoveCard(ctx context.Context, card model.Card) error {
	c.mu.Lock()
	if c.deck == nil {
		c.mu.Unlock()
		return ErrNoDeckSelected
	}
	if c.state == StateMutating {
		c.mu.Unlock()
		return ErrBusy
	}
	id := c.deck.ID
	c.state = StateMutating
	c.mu.Unlock()

	deck, err := c.service.RemoveCardFromDeck(ctx, id, card.ID)
	if err != nil {
		c.logger.Error("failed to remove card", "deck_id", id, "card_id", card.ID, "error", err)
		c.finishMutation(nil)
		c.notifier.Notify(notify.Error(remote.MessageOr(err, failedRemove)))
		return fmt.Errorf("remove card %s from deck %s: %w", card.ID, id, err)
	}

	c.finishMutation(deck)
	c.notifier.Notify(notify.Success(fmt.Sprintf("Removed %s from deck", card.Name)))
	c.reloadDecks(ctx)
	return nil
}

// ConfirmAndDelete deletes deck after the user accepts. Reports whether
// the deck was deleted.
func (c *Coordinator) ConfirmAndDelete(ctx context.Context, deck model.Deck, confirmer Confirmer) (bool, error) {
	message := fmt.Sprintf("Are you sure you want to delete the deck %q? This action cannot be undone.", deck.Name)
	if !confirmer.Confirm(message) {
		return false, nil
	}

	if err := c.service.DeleteDeck(ctx, deck.ID); err != nil {
		c.logger.Error("failed to delete deck", "deck_id", deck.ID, "error", err)
		c.notifier.Notify(notify.Error(failedDelete))
		return false, fmt.Errorf("delete deck %s: %w", deck.ID, err)
	}

	c.mu.Lock()
	if c.deck != nil && c.deck.ID == deck.ID {
		c.generation++
		c.deck = nil
		c.state = StateUnloaded
	}
	c.mu.Unlock()

	c.notifier.Notify(notify.Success("Deck deleted successfully"))
	c.reloadDecks(ctx)
	return true, nil
}

// CardsByType returns the selected deck's cards whose type line contains
// cardType. The commander is never listed among the creatures.
func (c *Coordinator) CardsByType(cardType string) []model.Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deck == nil {
		return nil
	}
	return filterByType(c.deck, cardType)
}

// GroupByName collapses cards with the same name into one entry each, in
// first-seen order
func GroupByName(cards []model.Card) []model.GroupedCard {
	index := make(map[string]int)
	var groups []model.GroupedCard
	for _, card := range cards {
		if i, ok := index[card.Name]; ok {
			groups[i].Count++
			continue
		}
		index[card.Name] = len(groups)
		groups = append(groups, model.GroupedCard{Name: card.Name, Count: 1, Card: card})
	}
	return groups
}

func filterByType(deck *model.Deck, cardType string) []model.Card {
	var out []model.Card
	for _, card := range deck.Cards {
		if !strings.Contains(card.TypeLine, cardType) {
			continue
		}
		if cardType == creatureType && deck.IsCommander(card) {
			continue
		}
		out = append(out, card)
	}
	return out
}

// finishMutation leaves the Mutating state, replacing the snapshot when
// the server returned one
func (c *Coordinator) finishMutation(deck *model.Deck) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateMutating {
		c.state = StateLoaded
	}
	if deck != nil && c.deck != nil && deck.ID == c.deck.ID {
		c.deck = deck
	}
}

func (c *Coordinator) reloadDecks(ctx context.Context) {
	// failures are already logged and the old list kept
	_ = c.LoadDecks(ctx)
}
