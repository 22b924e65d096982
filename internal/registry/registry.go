// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/llama-leap/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered id.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what a host needs from a mounted game.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and terminal output.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "llamaleap").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Tick advances the simulation by one frame.
	Tick() core.StepResult

	// Apply feeds one input action into the game immediately.
	Apply(a core.Action) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// Display returns the last published DisplayState.
	Display() core.DisplayState

	// CanRead reports whether a "read message" affordance should be offered.
	CanRead() bool

	// CloseLabel is the text of the close affordance.
	CloseLabel() string

	// Close stops the game for good and notifies the embedding context.
	Close()
}

// Mount is what an embedding context supplies when creating a game.
type Mount struct {
	Variant    string      // Visual theme name
	OnClose    func()      // Called once when control returns to the host
	Busy       func() bool // External busy flag, banner only
	Seed       int64       // RNG seed for deterministic gameplay
	ConfigPath string      // Optional tuning file
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that mounts a new instance of a game.
type Factory func(m Mount) (Game, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create mounts a new game by its ID.
func Create(id string, m Mount) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}

	g, err := f(m)
	if err != nil {
		return nil, fmt.Errorf("registry: mount %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Title returns the registered title of a game, or "" if unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	return titles[id]
}
