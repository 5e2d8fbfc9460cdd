package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file feed waits for writes to settle
const DefaultDebounce = 50 * time.Millisecond

// FileTokenStore keeps the token in a single file, like a fixed key in
// browser local storage
type FileTokenStore struct {
	path     string
	debounce time.Duration

	mu      sync.Mutex
	written *string // last token written through this store, nil before any write
}

// NewFileTokenStore creates a token store at path
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path, debounce: DefaultDebounce}
}

// Ensure FileTokenStore implements the interfaces
var (
	_ TokenStore = (*FileTokenStore)(nil)
	_ ChangeFeed = (*FileTokenStore)(nil)
)

// Path returns the token file location
func (f *FileTokenStore) Path() string {
	return f.path
}

// Load returns the stored token; a missing file means logged out
func (f *FileTokenStore) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with owner-only permissions
func (f *FileTokenStore) Save(ctx context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}
	f.recordWrite(token)
	return os.WriteFile(f.path, []byte(token), 0600)
}

// Clear removes the token file
func (f *FileTokenStore) Clear(ctx context.Context) error {
	f.recordWrite("")
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (f *FileTokenStore) recordWrite(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = &token
}

func (f *FileTokenStore) isOwnWrite(token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written != nil && *f.written == token
}

// Watch reports changes to the token file made by other processes. A file
// that holds what this store last wrote is not reported.
func (f *FileTokenStore) Watch(ctx context.Context) (<-chan string, error) {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: the file itself comes and goes on login/logout
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	last, err := f.Load(ctx)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}

	out := make(chan string, 1)
	go f.run(ctx, watcher, last, out)
	return out, nil
}

func (f *FileTokenStore) run(ctx context.Context, watcher *fsnotify.Watcher, last string, out chan<- string) {
	defer close(out)
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(f.path)
	timer := time.NewTimer(f.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			timer.Reset(f.debounce)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}

		case <-timer.C:
			token, err := f.Load(ctx)
			if err != nil || token == last {
				continue
			}
			last = token
			if f.isOwnWrite(token) {
				continue
			}
			select {
			case out <- token:
			case <-ctx.Done():
				return
			}
		}
	}
}
