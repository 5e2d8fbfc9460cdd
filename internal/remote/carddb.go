package remote

import (
	"context"
	"net/http"
	"net/url"
)

// DefaultCardDatabaseURL is the public card database
const DefaultCardDatabaseURL = "https://api.scryfall.com"

// Catalog is the card database's autocomplete response
type Catalog struct {
	Object      string   `json:"object"`
	TotalValues int      `json:"total_values"`
	Data        []string `json:"data"`
}

// CardDatabase is the client for the public card database
type CardDatabase struct {
	client *Client
}

// NewCardDatabase creates a card database client
func NewCardDatabase(baseURL string, httpClient *http.Client) *CardDatabase {
	if baseURL == "" {
		baseURL = DefaultCardDatabaseURL
	}
	return &CardDatabase{client: NewClient(baseURL, nil, httpClient)}
}

// GetCardNameSuggestions returns card names matching query
func (d *CardDatabase) GetCardNameSuggestions(ctx context.Context, query string) (*Catalog, error) {
	var catalog Catalog
	err := d.client.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/cards/autocomplete",
		Query:  url.Values{"q": {query}},
	}, &catalog)
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}
