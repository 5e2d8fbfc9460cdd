package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mcoot/deckbuilder/internal/model"
)

// DefaultDeckServiceURL is where the deck service listens by default
const DefaultDeckServiceURL = "http://localhost:8080"

// tokenFields are the login response fields that may carry the token, in
// order of preference
var tokenFields = []string{"jwt", "token", "jwtToken"}

// Credentials is the body of the login and create-user calls
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DeckService is the client for the deck service backend
type DeckService struct {
	client *Client
}

// NewDeckService creates a deck service client
func NewDeckService(baseURL string, tokens TokenSource, httpClient *http.Client) *DeckService {
	if baseURL == "" {
		baseURL = DefaultDeckServiceURL
	}
	return &DeckService{client: NewClient(baseURL, tokens, httpClient)}
}

// Health checks that the deck service is up
func (s *DeckService) Health(ctx context.Context) error {
	_, err := s.client.DoRaw(ctx, Request{Method: http.MethodGet, Path: "/health"})
	return err
}

// GetDefinition fetches the rules definition of word
func (s *DeckService) GetDefinition(ctx context.Context, word string) (*model.Definition, error) {
	var def model.Definition
	err := s.client.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/definition/" + url.PathEscape(word),
	}, &def)
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// GetCardsByName searches cards by name
func (s *DeckService) GetCardsByName(ctx context.Context, name string) ([]model.Card, error) {
	var cards []model.Card
	err := s.client.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/cards/search",
		Query:  url.Values{"cardName": {name}},
	}, &cards)
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// GetCardByID fetches a single card
func (s *DeckService) GetCardByID(ctx context.Context, id model.CardID) (*model.Card, error) {
	var card model.Card
	err := s.client.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/card/" + url.PathEscape(string(id)),
	}, &card)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Login exchanges credentials for a bearer token
func (s *DeckService) Login(ctx context.Context, creds Credentials) (string, error) {
	raw, err := s.client.DoRaw(ctx, Request{
		Method: http.MethodPost,
		Path:   "/user/login",
		Body:   creds,
	})
	if err != nil {
		return "", err
	}
	return TokenFromResponse(raw)
}

// CreateUser registers a new account
func (s *DeckService) CreateUser(ctx context.Context, creds Credentials) error {
	_, err := s.client.DoRaw(ctx, Request{
		Method: http.MethodPost,
		Path:   "/user/create",
		Body:   creds,
	})
	return err
}

// CreateDeck creates a deck. commanderName is sent only when non-empty.
func (s *DeckService) CreateDeck(ctx context.Context, name string, deckType model.DeckType, commanderName string) (*model.Deck, error) {
	q := url.Values{
		"deckName": {name},
		"deckType": {string(deckType)},
	}
	if commanderName != "" {
		q.Set("commanderName", commanderName)
	}

	raw, err := s.client.DoRaw(ctx, Request{
		Method: http.MethodPost,
		Path:   "/deck/create",
		Query:  q,
		Auth:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeOptionalDeck(raw)
}

// GetMyDecks lists the decks owned by the authenticated user
func (s *DeckService) GetMyDecks(ctx context.Context) ([]model.Deck, error) {
	var decks []model.Deck
	err := s.client.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/decks/AllUserDecks",
		Auth:   true,
	}, &decks)
	if err != nil {
		return nil, err
	}
	return decks, nil
}

// GetDeckByID fetches one deck
func (s *DeckService) GetDeckByID(ctx context.Context, id model.DeckID) (*model.Deck, error) {
	var deck model.Deck
	err := s.client.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/deck/" + url.PathEscape(string(id)),
		Auth:   true,
	}, &deck)
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

// AddCardsToDeck adds cards in one batch. names repeats a name once per copy.
func (s *DeckService) AddCardsToDeck(ctx context.Context, id model.DeckID, names []string) (*model.Deck, error) {
	q := url.Values{"deckId": {string(id)}}
	for _, name := range names {
		q.Add("cardNames", name)
	}

	var deck model.Deck
	err := s.client.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/deck/addCard",
		Query:  q,
		Auth:   true,
	}, &deck)
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

// RemoveCardFromDeck removes one copy of a card
func (s *DeckService) RemoveCardFromDeck(ctx context.Context, id model.DeckID, cardID model.CardID) (*model.Deck, error) {
	var deck model.Deck
	err := s.client.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   "/deck/removeCard",
		Query:  url.Values{"deckId": {string(id)}, "cardId": {string(cardID)}},
		Auth:   true,
	}, &deck)
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

// DeleteDeck deletes a deck
func (s *DeckService) DeleteDeck(ctx context.Context, id model.DeckID) error {
	_, err := s.client.DoRaw(ctx, Request{
		Method: http.MethodDelete,
		Path:   "/deck/delete/" + url.PathEscape(string(id)),
		Auth:   true,
	})
	return err
}

// TokenFromResponse extracts the bearer token from a login response body,
// trying each known field in order
func TokenFromResponse(body []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponseFormat, err)
	}

	for _, name := range tokenFields {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		var token string
		if err := json.Unmarshal(raw, &token); err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrInvalidResponseFormat
}

func decodeOptionalDeck(raw []byte) (*model.Deck, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var deck model.Deck
	if err := json.Unmarshal(raw, &deck); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &deck, nil
}
