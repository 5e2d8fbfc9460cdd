package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	keys   keys
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		keys:   keys{prefix: prefix},
	}
}

// Client exposes the underlying client so other components can share the pool
func (s *Storage) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// SETNX keeps usernames unique without a separate existence check
	created, err := s.client.SetNX(ctx, s.keys.user(user.Username), data, 0).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrUserExists
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	data, err := s.client.Get(ctx, s.keys.user(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Deck operations

func (s *Storage) SaveDeck(ctx context.Context, deck *model.StoredDeck) error {
	data, err := json.Marshal(deck)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.keys.deck(deck.ID), data, 0)
	pipe.SAdd(ctx, s.keys.ownerDecks(deck.Owner), string(deck.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetDeck(ctx context.Context, id model.DeckID) (*model.StoredDeck, error) {
	data, err := s.client.Get(ctx, s.keys.deck(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDeckNotFound
		}
		return nil, err
	}

	var deck model.StoredDeck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// GetDecksByOwner returns the owner's decks oldest first
func (s *Storage) GetDecksByOwner(ctx context.Context, owner string) ([]*model.StoredDeck, error) {
	ids, err := s.client.SMembers(ctx, s.keys.ownerDecks(owner)).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.StoredDeck{}, nil
	}

	deckKeys := make([]string, len(ids))
	for i, id := range ids {
		deckKeys[i] = s.keys.deck(model.DeckID(id))
	}

	values, err := s.client.MGet(ctx, deckKeys...).Result()
	if err != nil {
		return nil, err
	}

	decks := make([]*model.StoredDeck, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Deck deleted since the index was read
		}
		var deck model.StoredDeck
		if err := json.Unmarshal([]byte(str), &deck); err != nil {
			continue // Skip invalid data
		}
		decks = append(decks, &deck)
	}

	sort.Slice(decks, func(i, j int) bool {
		if decks[i].CreatedAt.Equal(decks[j].CreatedAt) {
			return decks[i].ID < decks[j].ID
		}
		return decks[i].CreatedAt.Before(decks[j].CreatedAt)
	})
	return decks, nil
}

func (s *Storage) DeleteDeck(ctx context.Context, id model.DeckID) error {
	deck, err := s.GetDeck(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrDeckNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.keys.deck(id))
	pipe.SRem(ctx, s.keys.ownerDecks(deck.Owner), string(id))
	_, err = pipe.Exec(ctx)
	return err
}
