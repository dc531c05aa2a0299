package engine

import (
	"testing"

	"github.com/google/uuid"
)

// testCityMap builds a small two-line map: a five-station red line and a
// two-station blue line sharing the hub "central". Seven line-stations in
// total, matching the scoring examples.
func testCityMap() *CityMap {
	return &CityMap{
		City: "testville",
		Stations: map[string]Station{
			"central": {ID: "central", Lines: []LineID{"red", "blue"}, IsTransferHub: true},
			"dam":     {ID: "dam", Lines: []LineID{"red"}},
			"museum":  {ID: "museum", Lines: []LineID{"red"}},
			"park":    {ID: "park", Lines: []LineID{"red"}},
			"harbor":  {ID: "harbor", Lines: []LineID{"red"}},
			"airport": {ID: "airport", Lines: []LineID{"blue"}},
		},
		Lines: map[LineID]SubwayLine{
			"red": {
				ID:               "red",
				Color:            "#FF0000",
				Stations:         []string{"central", "dam", "museum", "park", "harbor"},
				CompletionPoints: CompletionPoints{First: 6, Later: 3},
			},
			"blue": {
				ID:               "blue",
				Color:            "#0000FF",
				Stations:         []string{"central", "airport"},
				CompletionPoints: CompletionPoints{First: 6, Later: 2},
			},
		},
	}
}

func TestNewPlayerSheet(t *testing.T) {
	m := testCityMap()
	sheet := NewPlayerSheet(uuid.New(), m)

	if len(sheet.TrainCars) != 2 {
		t.Fatalf("Expected 2 train car rows, got %d", len(sheet.TrainCars))
	}
	for lineID, windows := range sheet.TrainCars {
		if len(windows) != WindowsPerLine {
			t.Errorf("Line %q: expected %d windows, got %d", lineID, WindowsPerLine, len(windows))
		}
		for i, w := range windows {
			if w != "" {
				t.Errorf("Line %q window %d should start empty, got %q", lineID, i, w)
			}
		}
	}
	if len(sheet.MarkedStations) != 0 {
		t.Errorf("Expected no marked stations, got %d", len(sheet.MarkedStations))
	}
	for lineID, status := range sheet.LineCompletion {
		if status.Kind != StatusNotCompleted {
			t.Errorf("Line %q should start not completed, got %q", lineID, status.Kind)
		}
	}
}

func TestAddCardToLine(t *testing.T) {
	m := testCityMap()
	sheet := NewPlayerSheet(uuid.New(), m)

	cards := []Card{
		{Kind: CardNumber, Value: 3},
		{Kind: CardTransfer},
		{Kind: CardSix},
		{Kind: CardExpress, Value: 2},
	}
	for _, card := range cards {
		if err := sheet.AddCardToLine("red", card); err != nil {
			t.Fatalf("AddCardToLine failed: %v", err)
		}
	}

	want := []string{"3", "+", "6", "2"}
	for i, w := range sheet.TrainCars["red"] {
		if w != want[i] {
			t.Errorf("Window %d = %q, want %q", i, w, want[i])
		}
	}

	// Fifth card has nowhere to go and must not mutate.
	err := sheet.AddCardToLine("red", Card{Kind: CardNumber, Value: 1})
	if err != ErrLineFull {
		t.Fatalf("Expected ErrLineFull, got %v", err)
	}
	if sheet.CanUseLine("red") {
		t.Error("Line should be full")
	}
	if !sheet.CanUseLine("blue") {
		t.Error("Blue line should still have empty windows")
	}
}

func TestAddCardToLine_UnknownLine(t *testing.T) {
	sheet := NewPlayerSheet(uuid.New(), testCityMap())

	if err := sheet.AddCardToLine("ghost", Card{Kind: CardNumber, Value: 1}); err != ErrUnknownLine {
		t.Fatalf("Expected ErrUnknownLine, got %v", err)
	}
}

func TestMarkStationsFromLine_NumberHaltsAtMark(t *testing.T) {
	m := testCityMap()
	sheet := NewPlayerSheet(uuid.New(), m)

	marked, err := sheet.MarkStationsFromLine("red", Card{Kind: CardNumber, Value: 2}, m)
	if err != nil {
		t.Fatalf("MarkStationsFromLine failed: %v", err)
	}
	if len(marked) != 2 || marked[0] != "central" || marked[1] != "dam" {
		t.Fatalf("Expected [central dam], got %v", marked)
	}

	// The scan halts immediately at the first already-marked station.
	marked, err = sheet.MarkStationsFromLine("red", Card{Kind: CardNumber, Value: 2}, m)
	if err != nil {
		t.Fatalf("MarkStationsFromLine failed: %v", err)
	}
	if len(marked) != 0 {
		t.Fatalf("Expected no stations marked, got %v", marked)
	}
}

func TestMarkStationsFromLine_ExpressSkipsMarks(t *testing.T) {
	m := testCityMap()
	sheet := NewPlayerSheet(uuid.New(), m)

	// Stations 1-3 already marked.
	for _, id := range []string{"central", "dam", "museum"} {
		sheet.MarkedStations[id] = StationMark{Kind: MarkCross}
	}

	marked, err := sheet.MarkStationsFromLine("red", Card{Kind: CardExpress, Value: 2}, m)
	if err != nil {
		t.Fatalf("MarkStationsFromLine failed: %v", err)
	}
	if len(marked) != 2 || marked[0] != "park" || marked[1] != "harbor" {
		t.Fatalf("Express should mark [park harbor], got %v", marked)
	}
}

func TestMarkStationsFromLine_Transfer(t *testing.T) {
	m := testCityMap()
	sheet := NewPlayerSheet(uuid.New(), m)

	marked, err := sheet.MarkStationsFromLine("red", Card{Kind: CardTransfer}, m)
	if err != nil {
		t.Fatalf("MarkStationsFromLine failed: %v", err)
	}
	if len(marked) != 1 || marked[0] != "central" {
		t.Fatalf("Transfer should mark [central], got %v", marked)
	}

	mark := sheet.MarkedStations["central"]
	if mark.Kind != MarkTransferNumber {
		t.Errorf("Expected transfer number mark, got %q", mark.Kind)
	}
	if mark.Connections != 2 {
		t.Errorf("Expected 2 connections, got %d", mark.Connections)
	}
}

func TestMarkStationsFromLine_FreeRideMarksNothing(t *testing.T) {
	m := testCityMap()
	sheet := NewPlayerSheet(uuid.New(), m)

	marked, err := sheet.MarkStationsFromLine("red", Card{Kind: CardFreeRide}, m)
	if err != nil {
		t.Fatalf("MarkStationsFromLine failed: %v", err)
	}
	if len(marked) != 0 {
		t.Fatalf("Free ride should mark nothing, got %v", marked)
	}
	if len(sheet.MarkedStations) != 0 {
		t.Error("Free ride should not mutate the sheet")
	}
}

func TestMarkMonotonicity(t *testing.T) {
	m := testCityMap()
	sheet := NewPlayerSheet(uuid.New(), m)

	if _, err := sheet.MarkStationsFromLine("red", Card{Kind: CardTransfer}, m); err != nil {
		t.Fatalf("MarkStationsFromLine failed: %v", err)
	}
	before := sheet.MarkedStations["central"]

	// Further marking passes over the line leave the existing mark alone.
	if _, err := sheet.MarkStationsFromLine("red", Card{Kind: CardNumber, Value: 5}, m); err != nil {
		t.Fatalf("MarkStationsFromLine failed: %v", err)
	}
	if _, err := sheet.MarkStationsFromLine("red", Card{Kind: CardExpress, Value: 4}, m); err != nil {
		t.Fatalf("MarkStationsFromLine failed: %v", err)
	}

	after := sheet.MarkedStations["central"]
	if before != after {
		t.Errorf("Mark changed from %+v to %+v", before, after)
	}
}

func TestCheckLineCompletion_Once(t *testing.T) {
	m := testCityMap()
	sheet := NewPlayerSheet(uuid.New(), m)

	sheet.MarkedStations["central"] = StationMark{Kind: MarkCross}
	if sheet.CheckLineCompletion("blue", m) {
		t.Fatal("Line should not complete with a station missing")
	}

	sheet.MarkedStations["airport"] = StationMark{Kind: MarkCross}
	if !sheet.CheckLineCompletion("blue", m) {
		t.Fatal("Line should complete once every station is marked")
	}

	// Repeat checks never record it twice.
	for i := 0; i < 3; i++ {
		if sheet.CheckLineCompletion("blue", m) {
			t.Fatal("Completion should only be reported once")
		}
	}
	if len(sheet.CompletedLines) != 1 {
		t.Fatalf("Expected 1 completed line, got %d", len(sheet.CompletedLines))
	}
}

func TestScore(t *testing.T) {
	m := testCityMap()
	sheet := NewPlayerSheet(uuid.New(), m)

	// One line completed first (6 pts), transfer numbers with 2 and 3
	// connections (adds 10), three of seven line-stations covered
	// (penalty floor(4/2) = 2). Total: 6 + 10 - 2 = 14.
	sheet.MarkedStations["central"] = StationMark{Kind: MarkTransferNumber, Connections: 2}
	sheet.MarkedStations["airport"] = StationMark{Kind: MarkTransferNumber, Connections: 3}
	sheet.MarkedStations["dam"] = StationMark{Kind: MarkCross}
	sheet.CompletedLines = []LineID{"blue"}
	sheet.LineCompletion["blue"] = CompletionStatus{Kind: StatusFirstToComplete, Points: 6}

	if got := sheet.Score(m); got != 14 {
		t.Errorf("Score() = %d, want 14", got)
	}
}

func TestScore_EmptySheet(t *testing.T) {
	m := testCityMap()
	sheet := NewPlayerSheet(uuid.New(), m)

	// Seven empty line-stations: penalty floor(7/2) = 3.
	if got := sheet.Score(m); got != -3 {
		t.Errorf("Score() = %d, want -3", got)
	}
}

func TestScore_ClampsEmptyCount(t *testing.T) {
	m := testCityMap()
	sheet := NewPlayerSheet(uuid.New(), m)

	// More marks than line-stations cannot happen in valid play, but the
	// penalty must not underflow if it ever does.
	for i := 0; i < 10; i++ {
		sheet.MarkedStations[string(rune('a'+i))] = StationMark{Kind: MarkCross}
	}
	if got := sheet.Score(m); got != 0 {
		t.Errorf("Score() = %d, want 0", got)
	}
}

func TestAllWindowsFilled(t *testing.T) {
	m := testCityMap()
	sheet := NewPlayerSheet(uuid.New(), m)

	if sheet.AllWindowsFilled() {
		t.Fatal("Fresh sheet should not be full")
	}

	for lineID := range sheet.TrainCars {
		for i := 0; i < WindowsPerLine; i++ {
			if err := sheet.AddCardToLine(lineID, Card{Kind: CardNumber, Value: 1}); err != nil {
				t.Fatalf("AddCardToLine failed: %v", err)
			}
		}
	}

	if !sheet.AllWindowsFilled() {
		t.Fatal("Sheet with every window filled should report full")
	}
}
