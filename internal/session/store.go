// Package session holds the process-wide authentication token and tells
// interested components when the user logs in or out.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// LandingPath is where the user is sent after logging out
const LandingPath = "/home"

// Source says where a session change originated
type Source string

const (
	// SourceLocal is a change made through this Store
	SourceLocal Source = "local"
	// SourceExternal is a change observed on a ChangeFeed, e.g. another
	// process sharing the same token storage
	SourceExternal Source = "external"
)

// Change is delivered to observers on every login/logout transition
type Change struct {
	Authenticated bool
	Source        Source
}

// Navigator moves the user to another view
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface
type NavigatorFunc func(path string)

// Navigate calls f(path)
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// Store wraps the single persisted bearer token
type Store struct {
	persist   TokenStore
	navigator Navigator
	logger    *slog.Logger

	mu        sync.RWMutex
	token     string
	observers map[int]func(Change)
	nextID    int
}

// New creates a Store backed by persist. navigator may be nil.
func New(persist TokenStore, navigator Navigator, logger *slog.Logger) *Store {
	if persist == nil {
		persist = NewMemoryTokenStore()
	}
	return &Store{
		persist:   persist,
		navigator: navigator,
		logger:    logger.With(slog.String("component", "session")),
		observers: make(map[int]func(Change)),
	}
}

// Restore loads the persisted token, if any. Observers are not notified.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.persist.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// SetToken stores token and notifies observers that the session is
// authenticated
// The token is held before it is persisted so that a feed echoing this
// write back is seen as unchanged.
func (s *Store) SetToken(ctx context.Context, token string) error {
	previous := s.swapToken(token)
	if err := s.persist.Save(ctx, token); err != nil {
		s.restoreToken(token, previous)
		return fmt.Errorf("failed to save token: %w", err)
	}

	s.logger.Info("session started", slog.String("principal", PrincipalFromToken(token)))
	s.publish(Change{Authenticated: token != "", Source: SourceLocal})
	return nil
}

// ClearToken removes the token, notifies observers and redirects to the
// landing view
func (s *Store) ClearToken(ctx context.Context) error {
	previous := s.swapToken("")
	if err := s.persist.Clear(ctx); err != nil {
		s.restoreToken("", previous)
		return fmt.Errorf("failed to clear token: %w", err)
	}

	s.logger.Info("session ended")
	s.publish(Change{Authenticated: false, Source: SourceLocal})
	s.navigate(LandingPath)
	return nil
}

func (s *Store) swapToken(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.token
	s.token = token
	return previous
}

// restoreToken undoes a failed write unless something else replaced the
// token in the meantime
func (s *Store) restoreToken(written, previous string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == written {
		s.token = previous
	}
}

// Token returns the current token, or "" when logged out
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a non-empty token is present
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// CurrentPrincipal returns a human-readable identity decoded from the token,
// or "" if the token is absent or cannot be decoded
func (s *Store) CurrentPrincipal() string {
	return PrincipalFromToken(s.Token())
}

// CanActivate guards views that need a session. Unauthenticated users are
// sent to the landing view.
func (s *Store) CanActivate() bool {
	if s.IsAuthenticated() {
		return true
	}
	s.navigate(LandingPath)
	return false
}

// Subscribe registers fn for session changes and returns a function that
// unregisters it
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Follow applies token changes published on feed until ctx is done.
// It returns once the feed is being watched.
func (s *Store) Follow(ctx context.Context, feed ChangeFeed) error {
	changes, err := feed.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch token changes: %w", err)
	}

	go func() {
		for token := range changes {
			s.applyExternal(token)
		}
	}()
	return nil
}

func (s *Store) applyExternal(token string) {
	s.mu.Lock()
	if token == s.token {
		s.mu.Unlock()
		return
	}
	s.token = token
	s.mu.Unlock()

	authenticated := token != ""
	s.logger.Info("session changed externally", slog.Bool("authenticated", authenticated))
	s.publish(Change{Authenticated: authenticated, Source: SourceExternal})
	if !authenticated {
		s.navigate(LandingPath)
	}
}

func (s *Store) publish(change Change) {
	s.mu.RLock()
	observers := make([]func(Change), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(change)
	}
}

func (s *Store) navigate(path string) {
	if s.navigator != nil {
		s.navigator.Navigate(path)
	}
}
