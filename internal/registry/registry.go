// Package registry provides a global registry of display backends.
// Backends register themselves in init() functions, allowing the CLI to
// discover and start them without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/display"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
)

// GameFactory builds a game that presents its frames to sink.
// The backend calls it once it knows where frames should go.
type GameFactory func(sink display.Sink) (*bounce.Game, error)

// Runner owns the terminal (or other device) for the duration of a session.
// It builds the game with newGame, feeds it input and returns when the user
// quits or ctx is cancelled.
type Runner func(ctx context.Context, rt core.RuntimeConfig, newGame GameFactory) error

// Backend is a registered display and input backend.
type Backend struct {
	ID    string
	Title string
	Run   Runner
}

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	ID    string
	Title string
}

var (
	backends = make(map[string]Backend)
	mu       sync.RWMutex
)

// Register adds a backend to the registry.
// Typically called from a backend's init() function.
// Panics if a backend with the same ID is already registered.
func Register(b Backend) {
	mu.Lock()
	defer mu.Unlock()

	if b.ID == "" || b.Run == nil {
		panic("registry: backend needs an ID and a Run function")
	}
	if _, exists := backends[b.ID]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", b.ID))
	}
	backends[b.ID] = b
}

// List returns information about all registered backends, sorted by ID.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(backends))
	for _, b := range backends {
		result = append(result, BackendInfo{ID: b.ID, Title: b.Title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the backend with the given ID.
// Returns an error if the backend ID is not registered.
func Get(id string) (Backend, error) {
	mu.RLock()
	defer mu.RUnlock()

	b, ok := backends[id]
	if !ok {
		return Backend{}, fmt.Errorf("registry: unknown backend %q", id)
	}
	return b, nil
}

// Exists checks if a backend with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := backends[id]
	return ok
}
