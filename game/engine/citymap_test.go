package engine

import (
	"strings"
	"testing"
)

func TestValidateCityMap(t *testing.T) {
	if err := ValidateCityMap(testCityMap()); err != nil {
		t.Fatalf("Test map should validate: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(m *CityMap)
		wantMsg string
	}{
		{
			name:    "missing city",
			mutate:  func(m *CityMap) { m.City = "" },
			wantMsg: "city is required",
		},
		{
			name:    "no lines",
			mutate:  func(m *CityMap) { m.Lines = map[LineID]SubwayLine{} },
			wantMsg: "at least one line",
		},
		{
			name: "line references unknown station",
			mutate: func(m *CityMap) {
				line := m.Lines["red"]
				line.Stations = append(line.Stations, "nowhere")
				m.Lines["red"] = line
			},
			wantMsg: "unknown station",
		},
		{
			name: "station missing line back-reference",
			mutate: func(m *CityMap) {
				st := m.Stations["dam"]
				st.Lines = []LineID{"blue"}
				m.Stations["dam"] = st
			},
			wantMsg: "does not list it",
		},
		{
			name: "duplicate station on line",
			mutate: func(m *CityMap) {
				line := m.Lines["blue"]
				line.Stations = append(line.Stations, "central")
				m.Lines["blue"] = line
			},
			wantMsg: "twice",
		},
		{
			name: "bad completion points",
			mutate: func(m *CityMap) {
				line := m.Lines["red"]
				line.CompletionPoints = CompletionPoints{First: 2, Later: 5}
				m.Lines["red"] = line
			},
			wantMsg: "completion points",
		},
		{
			name: "ring too short",
			mutate: func(m *CityMap) {
				line := m.Lines["blue"]
				line.IsRing = true
				m.Lines["blue"] = line
			},
			wantMsg: "ring line",
		},
		{
			name: "hub with one line",
			mutate: func(m *CityMap) {
				st := m.Stations["dam"]
				st.IsTransferHub = true
				m.Stations["dam"] = st
			},
			wantMsg: "transfer hub",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testCityMap()
			tt.mutate(m)

			err := ValidateCityMap(m)
			if err == nil {
				t.Fatal("Expected validation to fail")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error %q should mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestTotalLineStations(t *testing.T) {
	m := testCityMap()

	// Five red stations plus two blue; the shared hub counts once per line.
	if got := m.TotalLineStations(); got != 7 {
		t.Errorf("TotalLineStations() = %d, want 7", got)
	}
}
