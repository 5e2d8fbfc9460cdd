// Package lookup drives the keyword glossary and single card search.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/notify"
	"github.com/mcoot/deckbuilder/internal/remote"
)

const (
	// MaxSuggestions caps the card name suggestion list
	MaxSuggestions = 25

	// DefaultConcurrency bounds parallel card lookups in ShowCards
	DefaultConcurrency = 4
)

const failedDefinition = "An error occurred while fetching the definition."

// ErrNoMatch is returned when a card search matched nothing
var ErrNoMatch = errors.New("no card matched")

// Glossary is the list of keywords with definitions on the deck service
var Glossary = []string{
	"Vigilance", "Deathtouch", "Double Strike", "First Strike", "Flying", "Haste", "Lifelink", "Reach",
	"Trample", "Tap", "Destroy", "Permanent", "Discard", "Enchant", "Exile", "Flash", "Goad", "Hexproof",
	"Indestructible", "Mana", "Menace", "Mulligan", "Planeswalker", "Sacrifice", "Scry", "Spell", "Token",
}

// CardService is the subset of the remote deck service used for lookups
type CardService interface {
	GetDefinition(ctx context.Context, word string) (*model.Definition, error)
	GetCardsByName(ctx context.Context, name string) ([]model.Card, error)
	GetCardByID(ctx context.Context, id model.CardID) (*model.Card, error)
}

// Suggester returns card name completions
type Suggester interface {
	GetCardNameSuggestions(ctx context.Context, query string) (*remote.Catalog, error)
}

// Dialog is the result panel. Only one of Definition and Card is set.
type Dialog struct {
	Visible    bool
	Header     string
	Definition *model.Definition
	Card       *model.Card
}

// Coordinator owns the lookup view state
type Coordinator struct {
	service     CardService
	suggester   Suggester
	notifier    notify.Notifier
	logger      *slog.Logger
	concurrency int

	mu          sync.Mutex
	dialog      Dialog
	suggestions []string
}

// New creates a lookup Coordinator
func New(service CardService, suggester Suggester, notifier notify.Notifier, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		service:     service,
		suggester:   suggester,
		notifier:    notifier,
		logger:      logger,
		concurrency: DefaultConcurrency,
	}
}

// WordSuggestions returns the glossary words containing query, ignoring case
func WordSuggestions(query string) []string {
	query = strings.ToLower(query)
	var out []string
	for _, word := range Glossary {
		if strings.Contains(strings.ToLower(word), query) {
			out = append(out, word)
		}
	}
	return out
}

// Dialog returns the current result panel
func (c *Coordinator) Dialog() Dialog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog
}

// Close hides the result panel
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = Dialog{}
}

// Suggestions returns the current card name suggestions
func (c *Coordinator) Suggestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.suggestions...)
}

// SearchCardSuggestions refreshes the card name suggestions. Queries
// shorter than two characters clear the list without a lookup.
func (c *Coordinator) SearchCardSuggestions(ctx context.Context, query string) {
	if len(query) < 2 {
		c.mu.Lock()
		c.suggestions = nil
		c.mu.Unlock()
		return
	}

	catalog, err := c.suggester.GetCardNameSuggestions(ctx, query)
	if err != nil {
		c.logger.Warn("card suggestions failed", "query", query, "error", err)
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
	c.suggestions = append([]string(nil), names...)
}

// ShowDefinition opens the panel with the definition of word
func (c *Coordinator) ShowDefinition(ctx context.Context, word string) (*model.Definition, error) {
	c.mu.Lock()
	c.dialog = Dialog{Visible: true, Header: word}
	c.mu.Unlock()

	def, err := c.service.GetDefinition(ctx, word)
	if err != nil {
		c.logger.Error("failed to fetch definition", "word", word, "error", err)
		if !errors.Is(err, context.Canceled) {
			c.notifier.Notify(notify.Error(remote.MessageOr(err, failedDefinition)).WithLife(notify.LifeLong))
		}
		return nil, fmt.Errorf("definition of %q: %w", word, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dialog.Header == word {
		c.dialog.Definition = def
	}
	return def, nil
}

// ShowCard opens the panel with the single card matching name. When the
// search fails the panel stays closed and a notification explains why.
func (c *Coordinator) ShowCard(ctx context.Context, name string) (*model.Card, error) {
	c.mu.Lock()
	c.dialog = Dialog{Visible: true, Header: name}
	c.mu.Unlock()

	card, err := c.fetchCard(ctx, name)
	if err != nil {
		c.mu.Lock()
		c.dialog.Visible = false
		c.mu.Unlock()
		c.reportCardError(name, err)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dialog.Header == name {
		c.dialog.Card = card
	}
	return card, nil
}

// Show looks up word when it is set, otherwise cardName. Nothing happens
// when both are empty.
func (c *Coordinator) Show(ctx context.Context, word, cardName string) error {
	switch {
	case word != "":
		_, err := c.ShowDefinition(ctx, word)
		return err
	case cardName != "":
		_, err := c.ShowCard(ctx, cardName)
		return err
	}
	return nil
}

// ShowCards looks several cards up in parallel without touching the panel.
// Results are in the order of names.
func (c *Coordinator) ShowCards(ctx context.Context, names ...string) ([]*model.Card, error) {
	cards := make([]*model.Card, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, name := range names {
		g.Go(func() error {
			card, err := c.fetchCard(ctx, name)
			if err != nil {
				c.reportCardError(name, err)
				return err
			}
			cards[i] = card
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Coordinator) fetchCard(ctx context.Context, name string) (*model.Card, error) {
	matches, err := c.service.GetCardsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", name, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("search %q: %w", name, ErrNoMatch)
	}

	card, err := c.service.GetCardByID(ctx, matches[0].ID)
	if err != nil {
		return nil, fmt.Errorf("card %s: %w", matches[0].ID, err)
	}
	return card, nil
}

func (c *Coordinator) reportCardError(name string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	c.logger.Error("card search failed", "name", name, "error", err)

	if errors.Is(err, remote.ErrNotFound) || errors.Is(err, ErrNoMatch) {
		c.notifier.Notify(notify.Notification{
			Severity: notify.SeverityError,
			Summary:  "Card Not Found",
			Detail:   "Either more than one card matched your search, or 0 cards matched. Try again.",
			Life:     notify.LifeLong,
		})
		return
	}
	c.notifier.Notify(notify.Error("An error occurred while searching for the card.").WithLife(notify.LifeLong))
}
