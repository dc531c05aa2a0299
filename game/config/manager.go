package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"nextstop/game/engine"
)

var (
	ErrCityNotFound = errors.New("city map not found")
	ErrInvalidMap   = errors.New("invalid city map")
)

// CityInfo summarizes an available city map for listings.
type CityInfo struct {
	City         string `json:"city"`
	StationCount int    `json:"station_count"`
	LineCount    int    `json:"line_count"`
}

// Manager handles city map loading and caching. Files in the config
// directory take precedence over the compiled-in defaults.
type Manager struct {
	configDir string
	maps      map[string]*engine.CityMap
	mu        sync.RWMutex
}

// NewManager creates a manager over a config directory. The directory may
// be empty or missing; the built-in city maps are always available.
func NewManager(configDir string) (*Manager, error) {
	m := &Manager{
		configDir: configDir,
		maps:      make(map[string]*engine.CityMap),
	}

	for city, cityMap := range defaultCityMaps() {
		if err := engine.ValidateCityMap(cityMap); err != nil {
			return nil, fmt.Errorf("built-in map %q is broken: %w", city, err)
		}
		m.maps[city] = cityMap
	}

	return m, nil
}

// CityMap returns the map for a city, loading it from disk on first use.
func (m *Manager) CityMap(city string) (*engine.CityMap, error) {
	city = strings.ToLower(city)

	m.mu.RLock()
	if cached, exists := m.maps[city]; exists {
		m.mu.RUnlock()
		return cached, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock.
	if cached, exists := m.maps[city]; exists {
		return cached, nil
	}

	cityMap, err := m.loadFromFile(city)
	if err != nil {
		return nil, err
	}

	m.maps[city] = cityMap
	return cityMap, nil
}

// loadFromFile reads and validates <configDir>/<city>.json. Callers hold
// the write lock.
func (m *Manager) loadFromFile(city string) (*engine.CityMap, error) {
	if m.configDir == "" {
		return nil, ErrCityNotFound
	}

	path := filepath.Join(m.configDir, city+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("failed to read map file: %w", err)
	}

	var cityMap engine.CityMap
	if err := json.Unmarshal(data, &cityMap); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", path, err)
	}

	if err := engine.ValidateCityMap(&cityMap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}

	return &cityMap, nil
}

// ListCities returns the loaded and on-disk cities, sorted by name.
func (m *Manager) ListCities() []CityInfo {
	names := map[string]bool{}

	m.mu.RLock()
	for city := range m.maps {
		names[city] = true
	}
	m.mu.RUnlock()

	if m.configDir != "" {
		if entries, err := os.ReadDir(m.configDir); err == nil {
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
					continue
				}
				names[strings.TrimSuffix(entry.Name(), ".json")] = true
			}
		}
	}

	sorted := make([]string, 0, len(names))
	for city := range names {
		sorted = append(sorted, city)
	}
	sort.Strings(sorted)

	infos := make([]CityInfo, 0, len(sorted))
	for _, city := range sorted {
		cityMap, err := m.CityMap(city)
		if err != nil {
			// A broken file in the directory should not hide the rest.
			continue
		}
		infos = append(infos, CityInfo{
			City:         cityMap.City,
			StationCount: len(cityMap.Stations),
			LineCount:    len(cityMap.Lines),
		})
	}

	return infos
}
