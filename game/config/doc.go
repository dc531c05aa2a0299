// Package config loads and caches the static city map topology used by
// every game session.
//
// The config package implements:
//   - Loading city maps (stations, lines, adjacency) from JSON files
//   - Compiled-in default maps for the four supported cities
//   - Thread-safe caching with validation on first load
//
// City maps are build-time data: once loaded they are shared by reference
// across sessions and never mutated. The Manager validates each map with
// engine.ValidateCityMap before handing it out, so a malformed file fails
// at load time rather than mid-game.
//
// Usage:
//
//	mgr, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	m, err := mgr.CityMap("amsterdam")
//	cities := mgr.ListCities()
package config
