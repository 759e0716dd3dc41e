// Package registry provides a global registry for host factories.
// Hosts register themselves in init() functions, allowing the CLI
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
)

// Host is a platform that can run the game loop.
// The engine drives it through engine.Host; the CLI drives it through Run.
type Host interface {
	engine.Host

	// ImageLoader returns a loader producing images this host can draw.
	ImageLoader(fsys fs.FS) engine.ImageLoader

	// Run blocks until the host stops, running the registered frame callbacks.
	// It returns the error that stopped the loop, if any.
	Run() error
}

// Options configures a new host.
type Options struct {
	Config config.Config
	Logger *log.Logger
}

// HostInfo contains metadata about a registered host.
type HostInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new host.
type Factory func(opts Options) (Host, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a host factory to the registry.
// Typically called from a host package's init() function.
// Panics if a host with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: host %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered hosts, sorted by ID.
func List() []HostInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]HostInfo, 0, len(factories))
	for id := range factories {
		result = append(result, HostInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new host by its ID.
// Returns an error if the host ID is not registered.
func Create(id string, opts Options) (Host, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown host %q", id)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	h, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create host %q: %w", id, err)
	}
	return h, nil
}

// Exists checks if a host with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
