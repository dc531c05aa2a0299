package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// GameState owns the authoritative state of one game: the deck and discard
// pile, the revealed card, every player's sheet, and the round counter. It
// is not safe for concurrent use; the session layer serializes access.
type GameState struct {
	ID          uuid.UUID                   `json:"id"`
	City        string                      `json:"city"`
	Players     map[uuid.UUID]*PlayerSheet  `json:"players"`
	CurrentCard *Card                       `json:"current_card,omitempty"`
	Deck        Deck                        `json:"deck"`
	DiscardPile []Card                      `json:"discard_pile"`
	Round       int                         `json:"round"`
	GameEnded   bool                        `json:"game_ended"`
	Conductor   uuid.UUID                   `json:"conductor"`
}

// NewGameState creates a game for a city with a freshly shuffled deck. The
// conductor is the player credited with controlling card reveals.
func NewGameState(city string, conductor uuid.UUID) *GameState {
	deck := NewDeck()
	ShuffleDeck(deck, NewShuffleSeed())

	return &GameState{
		ID:          uuid.New(),
		City:        city,
		Players:     make(map[uuid.UUID]*PlayerSheet),
		Deck:        deck,
		DiscardPile: []Card{},
		Conductor:   conductor,
	}
}

// AddPlayer initializes a sheet for the player against the city map.
func (g *GameState) AddPlayer(playerID uuid.UUID, m *CityMap) {
	g.Players[playerID] = NewPlayerSheet(playerID, m)
}

// DrawCard pops the top of the deck. An empty deck pulls the discard pile
// back in and reshuffles once; false means both piles are exhausted.
func (g *GameState) DrawCard() (Card, bool) {
	if len(g.Deck) == 0 {
		if len(g.DiscardPile) == 0 {
			return Card{}, false
		}
		g.Deck = append(g.Deck, g.DiscardPile...)
		g.DiscardPile = g.DiscardPile[:0]
		ShuffleDeck(g.Deck, NewShuffleSeed())
	}

	card := g.Deck[len(g.Deck)-1]
	g.Deck = g.Deck[:len(g.Deck)-1]
	return card, true
}

// RevealCard draws and sets the current card. False means the game cannot
// continue; callers should treat it as the end of play.
func (g *GameState) RevealCard() (Card, bool) {
	card, ok := g.DrawCard()
	if !ok {
		return Card{}, false
	}
	g.CurrentCard = &card
	return card, true
}

// ProcessAction validates and applies one player action against the current
// card, returning the notifications to deliver. Validation failures return
// before any state is written.
func (g *GameState) ProcessAction(playerID uuid.UUID, action Action, m *CityMap) ([]ActionEvent, error) {
	if g.GameEnded {
		return nil, ErrGameEnded
	}
	if g.CurrentCard == nil {
		return nil, ErrNoCardRevealed
	}
	card := *g.CurrentCard

	switch action.Kind {
	case ActionChooseLine:
		return g.applyChooseLine(playerID, action.LineID, card, m)

	case ActionMarkTransferStation:
		return g.applyMarkTransferStation(playerID, action.StationID, card, m)

	case ActionMarkFreeRideStation:
		return g.applyMarkFreeRideStation(playerID, action.StationID, card, m)

	case ActionCompleteLineAnnouncement:
		// Purely informational; nothing to validate or mutate.
		return []ActionEvent{{
			Kind:     EventLineCompleted,
			PlayerID: playerID,
			LineID:   action.LineID,
		}}, nil

	default:
		return nil, fmt.Errorf("unknown action kind %q", action.Kind)
	}
}

// applyChooseLine fills a window and marks stations in one step. All
// preconditions are checked up front so the window never fills without the
// marks landing too.
func (g *GameState) applyChooseLine(playerID uuid.UUID, lineID LineID, card Card, m *CityMap) ([]ActionEvent, error) {
	line, ok := m.Line(lineID)
	if !ok {
		return nil, ErrUnknownLine
	}

	// First-completion status depends on the other players' sheets, so
	// capture it before this player's marks land.
	othersCompleted := false
	for id, sheet := range g.Players {
		if id == playerID {
			continue
		}
		for _, completed := range sheet.CompletedLines {
			if completed == lineID {
				othersCompleted = true
				break
			}
		}
	}

	sheet, ok := g.Players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if !sheet.CanUseLine(lineID) {
		return nil, ErrLineFull
	}

	if err := sheet.AddCardToLine(lineID, card); err != nil {
		return nil, err
	}
	marked, err := sheet.MarkStationsFromLine(lineID, card, m)
	if err != nil {
		return nil, err
	}

	var events []ActionEvent
	if sheet.CheckLineCompletion(lineID, m) {
		status := CompletionStatus{Kind: StatusFirstToComplete, Points: line.CompletionPoints.First}
		if othersCompleted {
			status = CompletionStatus{Kind: StatusLaterCompletion, Points: line.CompletionPoints.Later}
		}
		sheet.LineCompletion[lineID] = status

		events = append(events, ActionEvent{
			Kind:     EventLineCompleted,
			PlayerID: playerID,
			LineID:   lineID,
		})
	}

	events = append(events, ActionEvent{
		Kind:     EventActionResult,
		PlayerID: playerID,
		Success:  true,
		Message:  fmt.Sprintf("Marked %d stations", len(marked)),
	})
	return events, nil
}

func (g *GameState) applyMarkTransferStation(playerID uuid.UUID, stationID string, card Card, m *CityMap) ([]ActionEvent, error) {
	if card.Kind != CardTransfer {
		return nil, ErrWrongCardForTransfer
	}
	station, ok := m.StationByID(stationID)
	if !ok {
		return nil, ErrUnknownStation
	}
	sheet, ok := g.Players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	// A mark, once set, never changes kind.
	if _, marked := sheet.MarkedStations[stationID]; marked {
		return nil, ErrStationAlreadyMarked
	}

	connections := len(station.Lines)
	sheet.MarkedStations[stationID] = StationMark{
		Kind:        MarkTransferNumber,
		Connections: connections,
	}

	return []ActionEvent{{
		Kind:     EventActionResult,
		PlayerID: playerID,
		Success:  true,
		Message:  fmt.Sprintf("Marked transfer station with %d connections", connections),
	}}, nil
}

func (g *GameState) applyMarkFreeRideStation(playerID uuid.UUID, stationID string, card Card, m *CityMap) ([]ActionEvent, error) {
	if card.Kind != CardFreeRide {
		return nil, ErrWrongCardForFreeRide
	}
	if _, ok := m.StationByID(stationID); !ok {
		return nil, ErrUnknownStation
	}
	sheet, ok := g.Players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if _, marked := sheet.MarkedStations[stationID]; marked {
		return nil, ErrStationAlreadyMarked
	}

	sheet.MarkedStations[stationID] = StationMark{Kind: MarkCross}

	return []ActionEvent{{
		Kind:     EventActionResult,
		PlayerID: playerID,
		Success:  true,
		Message:  "Marked free ride station",
	}}, nil
}

// CheckGameEnd reports whether every window on every sheet is filled. Deck
// exhaustion alone does not end the game.
func (g *GameState) CheckGameEnd() bool {
	if len(g.Players) == 0 {
		return false
	}
	for _, sheet := range g.Players {
		if !sheet.AllWindowsFilled() {
			return false
		}
	}
	return true
}

// NextRound files the current card to the discard pile and advances the
// round counter. A six instead folds the discard pile and itself back into
// the deck for a reshuffle. Sets GameEnded when every sheet is full.
func (g *GameState) NextRound() {
	g.Round++

	if g.CurrentCard != nil {
		card := *g.CurrentCard
		g.CurrentCard = nil
		if card.Kind == CardSix {
			g.reshuffleAll(card)
		} else {
			g.DiscardPile = append(g.DiscardPile, card)
		}
	}

	if g.CheckGameEnd() {
		g.GameEnded = true
	}
}

// reshuffleAll returns the discard pile and the given card to the deck and
// shuffles. Triggered by the six.
func (g *GameState) reshuffleAll(card Card) {
	g.Deck = append(g.Deck, g.DiscardPile...)
	g.DiscardPile = g.DiscardPile[:0]
	g.Deck = append(g.Deck, card)
	ShuffleDeck(g.Deck, NewShuffleSeed())
}

// FinalScores computes every player's score against the city map.
func (g *GameState) FinalScores(m *CityMap) map[uuid.UUID]int {
	scores := make(map[uuid.UUID]int, len(g.Players))
	for playerID, sheet := range g.Players {
		scores[playerID] = sheet.Score(m)
	}
	return scores
}

// Clone returns a deep copy safe to hand outside the session lock.
func (g *GameState) Clone() *GameState {
	clone := &GameState{
		ID:          g.ID,
		City:        g.City,
		Players:     make(map[uuid.UUID]*PlayerSheet, len(g.Players)),
		Deck:        append(Deck{}, g.Deck...),
		DiscardPile: append([]Card{}, g.DiscardPile...),
		Round:       g.Round,
		GameEnded:   g.GameEnded,
		Conductor:   g.Conductor,
	}
	if g.CurrentCard != nil {
		card := *g.CurrentCard
		clone.CurrentCard = &card
	}
	for id, sheet := range g.Players {
		clone.Players[id] = sheet.clone()
	}
	return clone
}

func (s *PlayerSheet) clone() *PlayerSheet {
	clone := &PlayerSheet{
		PlayerID:       s.PlayerID,
		City:           s.City,
		TrainCars:      make(map[LineID][]string, len(s.TrainCars)),
		MarkedStations: make(map[string]StationMark, len(s.MarkedStations)),
		CompletedLines: append([]LineID{}, s.CompletedLines...),
		LineCompletion: make(map[LineID]CompletionStatus, len(s.LineCompletion)),
	}
	for lineID, windows := range s.TrainCars {
		clone.TrainCars[lineID] = append([]string{}, windows...)
	}
	for stationID, mark := range s.MarkedStations {
		clone.MarkedStations[stationID] = mark
	}
	for lineID, status := range s.LineCompletion {
		clone.LineCompletion[lineID] = status
	}
	return clone
}
