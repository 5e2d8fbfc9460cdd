package response

import "github.com/mcoot/deckbuilder/internal/model"

// Login is the response for a successful login
type Login struct {
	JWT string `json:"jwt"`
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}

// Message is a bare informational response
type Message struct {
	Message string `json:"message"`
}

// Catalog mirrors the card database's autocomplete response
type Catalog struct {
	Object      string   `json:"object"`
	TotalValues int      `json:"total_values"`
	Data        []string `json:"data"`
}

// CatalogFromNames wraps names as a Catalog
func CatalogFromNames(names []string) Catalog {
	return Catalog{
		Object:      "catalog",
		TotalValues: len(names),
		Data:        names,
	}
}

// DeckFromModel strips storage-only fields from a stored deck
func DeckFromModel(d *model.StoredDeck) model.Deck {
	deck := d.Deck
	if deck.Cards == nil {
		deck.Cards = []model.Card{}
	}
	return deck
}

// DecksFromModel converts a list of stored decks
func DecksFromModel(decks []*model.StoredDeck) []model.Deck {
	result := make([]model.Deck, len(decks))
	for i, d := range decks {
		result[i] = DeckFromModel(d)
	}
	return result
}
