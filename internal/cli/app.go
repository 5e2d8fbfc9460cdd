package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/deckbuilder/internal/notify"
	"github.com/mcoot/deckbuilder/internal/remote"
	"github.com/mcoot/deckbuilder/internal/services/account"
	"github.com/mcoot/deckbuilder/internal/services/deckbuilder"
	"github.com/mcoot/deckbuilder/internal/services/deckview"
	"github.com/mcoot/deckbuilder/internal/services/lookup"
	"github.com/mcoot/deckbuilder/internal/session"
)

var errNotLoggedIn = errors.New("not logged in: run 'deckctl login' first")

// App is the wired client used by the commands of a single invocation
type App struct {
	Logger   *slog.Logger
	Session  *session.Store
	Feed     session.ChangeFeed
	Decks    *remote.DeckService
	CardDB   *remote.CardDatabase
	Notifier notify.Notifier

	Account *account.Coordinator
	Builder *deckbuilder.Coordinator
	View    *deckview.Coordinator
	Lookup  *lookup.Coordinator

	closers []func() error
}

// NewApp wires the client from cfg. Notifications are written to notes.
func NewApp(ctx context.Context, cfg *Config, notes io.Writer) (*App, error) {
	logger := newLogger(cfg.Verbose, notes)
	app := &App{Logger: logger}

	persist, feed, err := app.tokenStore(cfg)
	if err != nil {
		return nil, err
	}
	app.Feed = feed

	navigator := session.NavigatorFunc(func(path string) {
		logger.Debug("navigate", slog.String("path", path))
	})
	app.Session = session.New(persist, navigator, logger)
	if err := app.Session.Restore(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}

	httpClient := remote.NewHTTPClient(logger)
	app.Decks = remote.NewDeckService(cfg.ServerURL, app.Session, httpClient)
	app.CardDB = remote.NewCardDatabase(cfg.CardDBURL, httpClient)
	app.Notifier = &printNotifier{out: NewOutput(cfg.Output, notes)}

	app.Account = account.New(app.Decks, app.Session, navigator, logger)
	app.Builder = deckbuilder.New(app.Decks, app.CardDB, app.Notifier, logger)
	app.View = deckview.New(app.Decks, app.CardDB, app.Notifier, logger)
	app.Lookup = lookup.New(app.Decks, app.CardDB, app.Notifier, logger)

	return app, nil
}

// tokenStore picks where the token lives: an explicit token stays in
// memory, a Redis URL selects the shared Redis store, otherwise the file
func (a *App) tokenStore(cfg *Config) (session.TokenStore, session.ChangeFeed, error) {
	if cfg.Token != "" {
		mem := session.NewMemoryTokenStore()
		_ = mem.Save(context.Background(), cfg.Token)
		return mem, nil, nil
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		a.closers = append(a.closers, client.Close)
		store := session.NewRedisTokenStore(client, cfg.Profile)
		return store, store, nil
	}

	store := session.NewFileTokenStore(cfg.TokenFile)
	return store, store, nil
}

// RequireAuth fails when there is no session
func (a *App) RequireAuth() error {
	if !a.Session.CanActivate() {
		return errNotLoggedIn
	}
	return nil
}

// Close releases connections held by the app
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
