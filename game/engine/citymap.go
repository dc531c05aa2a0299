package engine

import "fmt"

// LineID identifies a subway line within a city map.
type LineID string

// Station is a stop on one or more lines. X and Y are presentation hints
// for clients; the rules never read them.
type Station struct {
	ID            string   `json:"id"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
	Lines         []LineID `json:"lines"`
	IsTransferHub bool     `json:"is_transfer_hub"`
}

// CompletionPoints is the score pair for completing a line: the first
// player to finish it earns First, everyone after earns Later.
type CompletionPoints struct {
	First int `json:"first"`
	Later int `json:"later"`
}

// SubwayLine is an ordered run of stations, forward from the train's
// starting point. Ring lines wrap around instead of terminating.
type SubwayLine struct {
	ID               LineID           `json:"id"`
	Color            string           `json:"color"`
	Stations         []string         `json:"stations"`
	IsRing           bool             `json:"is_ring"`
	CompletionPoints CompletionPoints `json:"completion_points"`
}

// CityMap is the static station/line topology for one city. It is shared
// by every session playing that city and must never be mutated.
type CityMap struct {
	City            string                `json:"city"`
	Stations        map[string]Station    `json:"stations"`
	Lines           map[LineID]SubwayLine `json:"lines"`
	SpecialStations []string              `json:"special_stations,omitempty"`
}

// Line looks up a line by ID.
func (m *CityMap) Line(id LineID) (SubwayLine, bool) {
	line, ok := m.Lines[id]
	return line, ok
}

// StationByID looks up a station by ID.
func (m *CityMap) StationByID(id string) (Station, bool) {
	st, ok := m.Stations[id]
	return st, ok
}

// TotalLineStations sums station counts over all lines. Stations served by
// several lines count once per line, matching the scoring sheet where each
// line prints its own row of stations.
func (m *CityMap) TotalLineStations() int {
	total := 0
	for _, line := range m.Lines {
		total += len(line.Stations)
	}
	return total
}

// ValidateCityMap checks a city map for internal consistency before it is
// handed to any session.
func ValidateCityMap(m *CityMap) error {
	if m.City == "" {
		return fmt.Errorf("map validation: city is required")
	}
	if len(m.Lines) == 0 {
		return fmt.Errorf("map validation: at least one line is required")
	}
	if len(m.Stations) == 0 {
		return fmt.Errorf("map validation: at least one station is required")
	}

	for id, line := range m.Lines {
		if id != line.ID {
			return fmt.Errorf("map validation: line %q keyed as %q", line.ID, id)
		}
		if len(line.Stations) == 0 {
			return fmt.Errorf("map validation: line %q has no stations", id)
		}
		if line.IsRing && len(line.Stations) < 3 {
			return fmt.Errorf("map validation: ring line %q needs at least 3 stations, got %d", id, len(line.Stations))
		}
		cp := line.CompletionPoints
		if cp.Later <= 0 || cp.First < cp.Later {
			return fmt.Errorf("map validation: line %q completion points must satisfy first >= later > 0, got (%d, %d)",
				id, cp.First, cp.Later)
		}
		seen := make(map[string]bool, len(line.Stations))
		for _, stationID := range line.Stations {
			if seen[stationID] {
				return fmt.Errorf("map validation: line %q lists station %q twice", id, stationID)
			}
			seen[stationID] = true

			station, ok := m.Stations[stationID]
			if !ok {
				return fmt.Errorf("map validation: line %q references unknown station %q", id, stationID)
			}
			if !containsLine(station.Lines, id) {
				return fmt.Errorf("map validation: station %q is on line %q but does not list it", stationID, id)
			}
		}
	}

	for id, station := range m.Stations {
		if id != station.ID {
			return fmt.Errorf("map validation: station %q keyed as %q", station.ID, id)
		}
		if len(station.Lines) == 0 {
			return fmt.Errorf("map validation: station %q belongs to no line", id)
		}
		for _, lineID := range station.Lines {
			line, ok := m.Lines[lineID]
			if !ok {
				return fmt.Errorf("map validation: station %q references unknown line %q", id, lineID)
			}
			if !containsStation(line.Stations, id) {
				return fmt.Errorf("map validation: station %q lists line %q but the line does not stop there", id, lineID)
			}
		}
		if station.IsTransferHub && len(station.Lines) < 2 {
			return fmt.Errorf("map validation: transfer hub %q must connect at least 2 lines", id)
		}
	}

	return nil
}

func containsLine(lines []LineID, id LineID) bool {
	for _, l := range lines {
		if l == id {
			return true
		}
	}
	return false
}

func containsStation(stations []string, id string) bool {
	for _, s := range stations {
		if s == id {
			return true
		}
	}
	return false
}
