// Package sim runs self-play games over a shared move catalog.
package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/blokus-rl/blokus-engine/internal/game"
	"github.com/blokus-rl/blokus-engine/internal/game/events"
	"github.com/blokus-rl/blokus-engine/internal/game/rules"
)

// Instance is one live game tracked by the manager. The engine inside is
// single-threaded; each instance belongs to exactly one goroutine at a time.
type Instance struct {
	ID        string
	Engine    *game.Engine
	CreatedAt time.Time
}

// Manager tracks active game instances. All games share the manager's
// catalog; creating a game never rebuilds move data.
type Manager struct {
	catalog *rules.Catalog
	bus     *events.EventBus // optional, attached to every created game
	logger  zerolog.Logger

	mu    sync.RWMutex
	games map[string]*Instance
}

// NewManager creates a game manager over a shared catalog. bus may be nil.
func NewManager(catalog *rules.Catalog, bus *events.EventBus, logger zerolog.Logger) *Manager {
	return &Manager{
		catalog: catalog,
		bus:     bus,
		logger:  logger.With().Str("component", "game_manager").Logger(),
		games:   make(map[string]*Instance),
	}
}

// CreateGame spawns a fresh game instance with a unique ID
func (m *Manager) CreateGame() *Instance {
	id := uuid.NewString()
	engine := game.NewEngine(m.catalog, m.logger)
	if m.bus != nil {
		engine.AttachBus(id, m.bus)
	}

	instance := &Instance{
		ID:        id,
		Engine:    engine,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.games[id] = instance
	m.mu.Unlock()

	m.logger.Debug().Str("game_id", id).Msg("Game created")
	return instance
}

// Get returns the instance with the given ID
func (m *Manager) Get(id string) (*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	instance, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("game %s not found", id)
	}
	return instance, nil
}

// Remove drops a finished game from the registry
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.games, id)
	m.mu.Unlock()

	m.logger.Debug().Str("game_id", id).Msg("Game removed")
}

// Len returns the number of tracked games
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
