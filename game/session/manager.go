package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"nextstop/game/config"
	"nextstop/game/service"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// SessionCapacity is the most players one game seats.
const SessionCapacity = 6

// Manager is the registry of running games and the matchmaker that places
// joining players into them.
type Manager struct {
	sessions map[uuid.UUID]*service.Coordinator
	configs  *config.Manager
	mu       sync.RWMutex
}

// NewManager creates a registry backed by the given city map manager.
func NewManager(configs *config.Manager) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*service.Coordinator),
		configs:  configs,
	}
}

// JoinOrCreate finds a running game on the requested city with a free
// seat, or starts a new one with playerID as conductor. The scan holds the
// read lock and the insert the write lock; two players joining a full city
// at the same instant can each create a game. That window is accepted:
// both games are playable and the registry never blocks joins behind game
// construction. Which eligible game a joiner lands in is unspecified.
func (m *Manager) JoinOrCreate(city string, playerID uuid.UUID) (*service.Coordinator, error) {
	city = strings.ToLower(city)

	m.mu.RLock()
	for _, coord := range m.sessions {
		if coord.City() == city && !coord.Ended() && coord.PlayerCount() < SessionCapacity {
			m.mu.RUnlock()
			return coord, nil
		}
	}
	m.mu.RUnlock()

	cityMap, err := m.configs.CityMap(city)
	if err != nil {
		return nil, fmt.Errorf("cannot start game for city %q: %w", city, err)
	}

	coord := service.NewCoordinator(cityMap.City, cityMap, playerID)

	m.mu.Lock()
	m.sessions[coord.ID()] = coord
	m.mu.Unlock()

	return coord, nil
}

// Get retrieves a session by ID.
func (m *Manager) Get(id uuid.UUID) (*service.Coordinator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	coord, exists := m.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return coord, nil
}

// List returns every registered session.
func (m *Manager) List() []*service.Coordinator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Coordinator, 0, len(m.sessions))
	for _, coord := range m.sessions {
		result = append(result, coord)
	}
	return result
}

// Delete removes a session from the registry. Connected clients keep their
// coordinator reference until they disconnect.
func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Count returns the number of registered sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RemoveEnded sweeps finished games out of the registry and reports how
// many were removed. Main runs this on a ticker.
func (m *Manager) RemoveEnded() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, coord := range m.sessions {
		if coord.Ended() {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
