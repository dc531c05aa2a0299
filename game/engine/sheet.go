package engine

import "github.com/google/uuid"

// PlayerSheet is one player's scoring sheet for a city. Windows only ever
// fill, station marks only ever accumulate, and a line is recorded as
// completed at most once.
type PlayerSheet struct {
	PlayerID       uuid.UUID                   `json:"player_id"`
	City           string                      `json:"city"`
	TrainCars      map[LineID][]string         `json:"train_cars"`
	MarkedStations map[string]StationMark      `json:"marked_stations"`
	CompletedLines []LineID                    `json:"completed_lines"`
	LineCompletion map[LineID]CompletionStatus `json:"line_completion_status"`
}

// NewPlayerSheet initializes an empty sheet against a city map: one row of
// empty windows per line, nothing marked, nothing completed.
func NewPlayerSheet(playerID uuid.UUID, m *CityMap) *PlayerSheet {
	trainCars := make(map[LineID][]string, len(m.Lines))
	completion := make(map[LineID]CompletionStatus, len(m.Lines))
	for lineID := range m.Lines {
		trainCars[lineID] = make([]string, WindowsPerLine)
		completion[lineID] = CompletionStatus{Kind: StatusNotCompleted}
	}

	return &PlayerSheet{
		PlayerID:       playerID,
		City:           m.City,
		TrainCars:      trainCars,
		MarkedStations: make(map[string]StationMark),
		CompletedLines: []LineID{},
		LineCompletion: completion,
	}
}

// CanUseLine reports whether the line still has an empty window.
func (s *PlayerSheet) CanUseLine(lineID LineID) bool {
	windows, ok := s.TrainCars[lineID]
	if !ok {
		return false
	}
	for _, w := range windows {
		if w == "" {
			return true
		}
	}
	return false
}

// AddCardToLine writes the card's window value into the first empty window,
// left to right. The sheet is untouched on failure.
func (s *PlayerSheet) AddCardToLine(lineID LineID, card Card) error {
	windows, ok := s.TrainCars[lineID]
	if !ok {
		return ErrUnknownLine
	}
	for i, w := range windows {
		if w == "" {
			windows[i] = card.WindowValue()
			return nil
		}
	}
	return ErrLineFull
}

// MarkStationsFromLine applies the card's marking rule along the line and
// returns the station IDs that were newly marked. Free-ride cards mark
// nothing here; the target station arrives as a separate explicit action.
// The mark set is computed before anything is written, so a failure never
// leaves a partial result.
func (s *PlayerSheet) MarkStationsFromLine(lineID LineID, card Card, m *CityMap) ([]string, error) {
	line, ok := m.Line(lineID)
	if !ok {
		return nil, ErrUnknownLine
	}

	switch card.Kind {
	case CardFreeRide:
		return []string{}, nil

	case CardTransfer:
		stationID, found := s.nextUnmarkedStation(&line)
		if !found {
			return []string{}, nil
		}
		station, ok := m.StationByID(stationID)
		if !ok {
			return nil, ErrUnknownStation
		}
		s.MarkedStations[stationID] = StationMark{
			Kind:        MarkTransferNumber,
			Connections: len(station.Lines),
		}
		return []string{stationID}, nil

	default:
		value, _ := card.PipValue()
		marked := s.stationsToMark(&line, value, card.Kind == CardExpress)
		for _, stationID := range marked {
			s.MarkedStations[stationID] = StationMark{Kind: MarkCross}
		}
		return marked, nil
	}
}

// nextUnmarkedStation walks the line from the train car and returns the
// first station this player has not marked.
func (s *PlayerSheet) nextUnmarkedStation(line *SubwayLine) (string, bool) {
	for _, stationID := range line.Stations {
		if _, marked := s.MarkedStations[stationID]; !marked {
			return stationID, true
		}
	}
	return "", false
}

// stationsToMark scans the line left to right consuming value marks.
// Hitting an already-marked station stops the scan unless the card is an
// express, which skips it without consuming a mark.
func (s *PlayerSheet) stationsToMark(line *SubwayLine, value int, express bool) []string {
	marked := []string{}
	remaining := value

	for _, stationID := range line.Stations {
		if remaining == 0 {
			break
		}
		if _, taken := s.MarkedStations[stationID]; taken {
			if express {
				continue
			}
			break
		}
		marked = append(marked, stationID)
		remaining--
	}

	return marked
}

// CheckLineCompletion records the line as completed if every station on it
// is now marked. It returns true only the first time the line completes;
// repeat calls are no-ops.
func (s *PlayerSheet) CheckLineCompletion(lineID LineID, m *CityMap) bool {
	line, ok := m.Line(lineID)
	if !ok {
		return false
	}

	for _, stationID := range line.Stations {
		if _, marked := s.MarkedStations[stationID]; !marked {
			return false
		}
	}

	for _, completed := range s.CompletedLines {
		if completed == lineID {
			return false
		}
	}

	s.CompletedLines = append(s.CompletedLines, lineID)
	return true
}

// AllWindowsFilled reports whether every window on every line is filled,
// the game's end condition.
func (s *PlayerSheet) AllWindowsFilled() bool {
	for _, windows := range s.TrainCars {
		for _, w := range windows {
			if w == "" {
				return false
			}
		}
	}
	return true
}

// Score totals the sheet: completion points for finished lines, double the
// connection count for each transfer number, minus half an empty station
// each (rounded down). Valid play cannot mark more stations than exist, but
// the subtraction clamps at zero anyway.
func (s *PlayerSheet) Score(m *CityMap) int {
	score := 0

	for _, lineID := range s.CompletedLines {
		if status, ok := s.LineCompletion[lineID]; ok {
			switch status.Kind {
			case StatusFirstToComplete, StatusLaterCompletion:
				score += status.Points
			}
		}
	}

	for _, mark := range s.MarkedStations {
		if mark.Kind == MarkTransferNumber {
			score += mark.Connections * 2
		}
	}

	empty := m.TotalLineStations() - len(s.MarkedStations)
	if empty < 0 {
		empty = 0
	}
	score -= empty / 2

	return score
}
