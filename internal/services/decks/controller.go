package decks

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/deckbuilder/internal/dependencies/clock"
	"github.com/mcoot/deckbuilder/internal/dependencies/idgen"
	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/storage"
)

// CardResolver looks a card up by its exact name
type CardResolver interface {
	Resolve(name string) (*model.Card, error)
}

// Controller manages decks and their card lists on behalf of their owners
type Controller struct {
	storage storage.Storage
	cards   CardResolver
	clock   clock.Clock
	ids     idgen.Generator
	logger  *slog.Logger

	// serialises read-modify-write of deck card lists
	mu sync.Mutex
}

// NewController creates a new deck Controller
func NewController(
	storage storage.Storage,
	cards CardResolver,
	clock clock.Clock,
	ids idgen.Generator,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		cards:   cards,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// CreateDeck creates an empty deck owned by owner. commanderName is
// required for commander decks and ignored otherwise.
func (c *Controller) CreateDeck(ctx context.Context, owner, name string, deckType model.DeckType, commanderName string) (*model.StoredDeck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrDeckNameRequired
	}
	if !deckType.Valid() {
		return nil, model.ErrInvalidDeckType
	}

	var commander *model.Card
	if deckType == model.DeckTypeCommander {
		if strings.TrimSpace(commanderName) == "" {
			return nil, model.ErrCommanderRequired
		}
		card, err := c.cards.Resolve(commanderName)
		if err != nil {
			return nil, err
		}
		commander = card
	}

	now := c.clock.Now()
	deck := &model.StoredDeck{
		Deck: model.Deck{
			ID:        model.DeckID(c.ids.NewID()),
			Name:      name,
			Type:      deckType,
			Commander: commander,
			Cards:     []model.Card{},
			SizeLimit: deckType.SizeLimit(),
		},
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveDeck(ctx, deck); err != nil {
		return nil, err
	}

	c.logger.Info("deck created",
		slog.String("deck_id", string(deck.ID)),
		slog.String("owner", owner),
		slog.String("type", string(deckType)),
	)
	return deck, nil
}

// ListDecks returns every deck owned by owner
func (c *Controller) ListDecks(ctx context.Context, owner string) ([]*model.StoredDeck, error) {
	return c.storage.GetDecksByOwner(ctx, owner)
}

// GetDeck returns a deck if owner owns it
func (c *Controller) GetDeck(ctx context.Context, owner string, id model.DeckID) (*model.StoredDeck, error) {
	deck, err := c.storage.GetDeck(ctx, id)
	if err != nil {
		return nil, err
	}
	if deck.Owner != owner {
		return nil, model.ErrNotDeckOwner
	}
	return deck, nil
}

// AddCards appends one copy of each named card. Either every name resolves
// and fits, or the deck is left unchanged.
func (c *Controller) AddCards(ctx context.Context, owner string, id model.DeckID, names []string) (*model.StoredDeck, error) {
	if len(names) == 0 {
		return nil, model.ErrNoCardsToAdd
	}

	added := make([]model.Card, 0, len(names))
	for _, name := range names {
		card, err := c.cards.Resolve(name)
		if err != nil {
			return nil, err
		}
		added = append(added, *card)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	deck, err := c.GetDeck(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if size(deck)+len(added) > deck.SizeLimit {
		return nil, model.ErrDeckFull
	}

	deck.Cards = append(deck.Cards, added...)
	deck.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveDeck(ctx, deck); err != nil {
		return nil, err
	}

	c.logger.Info("cards added",
		slog.String("deck_id", string(id)),
		slog.Int("count", len(added)),
	)
	return deck, nil
}

// RemoveCard removes one copy of the card with cardID
func (c *Controller) RemoveCard(ctx context.Context, owner string, id model.DeckID, cardID model.CardID) (*model.StoredDeck, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deck, err := c.GetDeck(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, card := range deck.Cards {
		if card.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, model.ErrCardNotInDeck
	}

	deck.Cards = append(deck.Cards[:idx], deck.Cards[idx+1:]...)
	deck.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveDeck(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// DeleteDeck deletes a deck owned by owner
func (c *Controller) DeleteDeck(ctx context.Context, owner string, id model.DeckID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.GetDeck(ctx, owner, id); err != nil {
		return err
	}
	if err := c.storage.DeleteDeck(ctx, id); err != nil {
		return err
	}

	c.logger.Info("deck deleted", slog.String("deck_id", string(id)), slog.String("owner", owner))
	return nil
}

// size counts the deck's cards, including the commander
func size(deck *model.StoredDeck) int {
	n := len(deck.Cards)
	if deck.Commander != nil {
		n++
	}
	return n
}
