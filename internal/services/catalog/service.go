package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/mcoot/deckbuilder/internal/model"
)

// AutocompleteLimit caps the number of names Autocomplete returns
const AutocompleteLimit = 20

//go:embed seed.json
var seedData []byte

// Seed is the on-disk catalog format
type Seed struct {
	Definitions map[string]model.Definition `json:"definitions"`
	Cards       []model.Card                `json:"cards"`
}

// Service serves card records and rules definitions
type Service struct {
	logger *slog.Logger

	mu          sync.RWMutex
	cards       []model.Card
	byID        map[model.CardID]model.Card
	byName      map[string]model.Card
	definitions map[string]model.Definition
}

// New creates a catalog loaded with the built-in seed
func New(logger *slog.Logger) (*Service, error) {
	s := &Service{logger: logger}
	if err := s.LoadJSON(seedData); err != nil {
		return nil, fmt.Errorf("failed to load built-in catalog: %w", err)
	}
	return s, nil
}

// LoadFromFile replaces the catalog with the contents of a seed file
func (s *Service) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.LoadJSON(data)
}

// LoadJSON replaces the catalog with a JSON-encoded Seed
func (s *Service) LoadJSON(data []byte) error {
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return err
	}
	s.Load(seed)
	return nil
}

// Load replaces the catalog with seed
func (s *Service) Load(seed Seed) {
	byID := make(map[model.CardID]model.Card, len(seed.Cards))
	byName := make(map[string]model.Card, len(seed.Cards))
	for _, card := range seed.Cards {
		byID[card.ID] = card
		byName[strings.ToLower(card.Name)] = card
	}

	definitions := make(map[string]model.Definition, len(seed.Definitions))
	for word, def := range seed.Definitions {
		definitions[strings.ToLower(word)] = def
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append([]model.Card(nil), seed.Cards...)
	s.byID = byID
	s.byName = byName
	s.definitions = definitions

	s.logger.Info("catalog loaded",
		slog.Int("cards", len(seed.Cards)),
		slog.Int("definitions", len(seed.Definitions)),
	)
}

// Definition returns the rules definition of word (case-insensitive)
func (s *Service) Definition(word string) (*model.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.definitions[strings.ToLower(strings.TrimSpace(word))]
	if !ok {
		return nil, model.ErrDefinitionNotFound
	}
	return &def, nil
}

// Search finds the single card matching name. An exact (case-insensitive)
// name match wins; otherwise the name is treated as a substring and must
// match exactly one card.
func (s *Service) Search(name string) ([]model.Card, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, model.ErrCardNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if card, ok := s.byName[needle]; ok {
		return []model.Card{card}, nil
	}

	var matches []model.Card
	for _, card := range s.cards {
		if strings.Contains(strings.ToLower(card.Name), needle) {
			matches = append(matches, card)
		}
	}

	switch len(matches) {
	case 0:
		return nil, model.ErrCardNotFound
	case 1:
		return matches, nil
	default:
		return nil, model.ErrAmbiguousCard
	}
}

// Card returns the card with the given id
func (s *Service) Card(id model.CardID) (*model.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.byID[id]
	if !ok {
		return nil, model.ErrCardNotFound
	}
	return &card, nil
}

// Resolve returns the card whose name equals name (case-insensitive)
func (s *Service) Resolve(name string) (*model.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownCardName, name)
	}
	return &card, nil
}

// Autocomplete returns card names containing query, prefix matches first.
// Queries shorter than two characters return nothing.
func (s *Service) Autocomplete(query string) []string {
	needle := strings.ToLower(strings.TrimSpace(query))
	if len(needle) < 2 {
		return []string{}
	}

	s.mu.RLock()
	var prefix, contains []string
	for _, card := range s.cards {
		lower := strings.ToLower(card.Name)
		switch {
		case strings.HasPrefix(lower, needle):
			prefix = append(prefix, card.Name)
		case strings.Contains(lower, needle):
			contains = append(contains, card.Name)
		}
	}
	s.mu.RUnlock()

	sort.Strings(prefix)
	sort.Strings(contains)
	names := append(prefix, contains...)
	if len(names) > AutocompleteLimit {
		names = names[:AutocompleteLimit]
	}
	if names == nil {
		names = []string{}
	}
	return names
}
