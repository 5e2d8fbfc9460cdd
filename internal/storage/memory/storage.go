package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Decks are copied on the way in and out so callers never share state.
type Storage struct {
	mu sync.RWMutex

	users      map[string]*model.User
	decks      map[model.DeckID]*model.StoredDeck
	ownerIndex map[string]map[model.DeckID]struct{}
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:      make(map[string]*model.User),
		decks:      make(map[model.DeckID]*model.StoredDeck),
		ownerIndex: make(map[string]map[model.DeckID]struct{}),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		return model.ErrUserExists
	}
	u := *user
	s.users[user.Username] = &u
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// Deck operations

func (s *Storage) SaveDeck(ctx context.Context, deck *model.StoredDeck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[deck.ID] = deck.Clone()
	if s.ownerIndex[deck.Owner] == nil {
		s.ownerIndex[deck.Owner] = make(map[model.DeckID]struct{})
	}
	s.ownerIndex[deck.Owner][deck.ID] = struct{}{}
	return nil
}

func (s *Storage) GetDeck(ctx context.Context, id model.DeckID) (*model.StoredDeck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deck, ok := s.decks[id]
	if !ok {
		return nil, model.ErrDeckNotFound
	}
	return deck.Clone(), nil
}

// GetDecksByOwner returns the owner's decks oldest first
func (s *Storage) GetDecksByOwner(ctx context.Context, owner string) ([]*model.StoredDeck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	decks := make([]*model.StoredDeck, 0, len(s.ownerIndex[owner]))
	for id := range s.ownerIndex[owner] {
		if deck, ok := s.decks[id]; ok {
			decks = append(decks, deck.Clone())
		}
	}
	sortDecks(decks)
	return decks, nil
}

func (s *Storage) DeleteDeck(ctx context.Context, id model.DeckID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	deck, ok := s.decks[id]
	if !ok {
		return nil
	}
	delete(s.decks, id)
	delete(s.ownerIndex[deck.Owner], id)
	return nil
}

func sortDecks(decks []*model.StoredDeck) {
	sort.Slice(decks, func(i, j int) bool {
		if decks[i].CreatedAt.Equal(decks[j].CreatedAt) {
			return decks[i].ID < decks[j].ID
		}
		return decks[i].CreatedAt.Before(decks[j].CreatedAt)
	})
}
