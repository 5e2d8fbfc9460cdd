package model

import "time"

// DeckID identifies a deck in the deck service
type DeckID string

// DeckType is the format a deck is built for
type DeckType string

const (
	DeckTypeStandard  DeckType = "STANDARD"
	DeckTypeCommander DeckType = "COMMANDER"
)

// Valid reports whether t is a known deck type
func (t DeckType) Valid() bool {
	return t == DeckTypeStandard || t == DeckTypeCommander
}

// Default size limits per deck type
const (
	StandardSizeLimit  = 60
	CommanderSizeLimit = 100
)

// SizeLimit returns the card count limit for the deck type
func (t DeckType) SizeLimit() int {
	if t == DeckTypeCommander {
		return CommanderSizeLimit
	}
	return StandardSizeLimit
}

// Deck is a user's deck. The deck service owns it; clients hold a
// snapshot fetched per view.
type Deck struct {
	ID        DeckID   `json:"id"`
	Name      string   `json:"deckName"`
	Type      DeckType `json:"deckType"`
	Commander *Card    `json:"commander,omitempty"`
	Cards     []Card   `json:"cards"`
	SizeLimit int      `json:"sizeLimit"`
}

// IsCommander reports whether card is the deck's designated commander
func (d *Deck) IsCommander(card Card) bool {
	return d.Commander != nil && card.ID == d.Commander.ID
}

// Clone returns a deep copy of the deck
func (d *Deck) Clone() *Deck {
	c := *d
	c.Cards = append([]Card(nil), d.Cards...)
	if d.Commander != nil {
		commander := *d.Commander
		c.Commander = &commander
	}
	return &c
}

// StoredDeck is the deck service's persisted record
type StoredDeck struct {
	Deck
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the stored deck
func (d *StoredDeck) Clone() *StoredDeck {
	return &StoredDeck{
		Deck:      *d.Deck.Clone(),
		Owner:     d.Owner,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
