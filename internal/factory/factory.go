package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/deckbuilder/internal/dependencies/clock"
	"github.com/mcoot/deckbuilder/internal/dependencies/idgen"
	"github.com/mcoot/deckbuilder/internal/services/auth"
	"github.com/mcoot/deckbuilder/internal/services/catalog"
	"github.com/mcoot/deckbuilder/internal/services/decks"
	"github.com/mcoot/deckbuilder/internal/storage"
	"github.com/mcoot/deckbuilder/internal/storage/memory"
	redisstorage "github.com/mcoot/deckbuilder/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired components of the deck service
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   idgen.Generator

	// Services
	AuthService    *auth.Service
	Catalog        *catalog.Service
	DeckController *decks.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// CatalogPath is a JSON card catalog to load instead of the built-in seed (optional)
	CatalogPath string
	// AuthConfig holds configuration for the auth service (optional)
	// Zero fields fall back to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory' or 'redis'", storageType)
	}

	cat, err := catalog.New(logger)
	if err != nil {
		return nil, err
	}
	if cfg.CatalogPath != "" {
		if err := cat.LoadFromFile(cfg.CatalogPath); err != nil {
			return nil, err
		}
	}

	return newWithDependencies(store, cat, clock.New(), idgen.New(), cfg.AuthConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	cat *catalog.Service,
	clk clock.Clock,
	ids idgen.Generator,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	return &App{
		Storage:        store,
		Clock:          clk,
		IDs:            ids,
		AuthService:    auth.New(store, clk, authCfg, logger),
		Catalog:        cat,
		DeckController: decks.NewController(store, cat, clk, ids, logger),
	}
}
