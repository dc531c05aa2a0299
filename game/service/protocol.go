package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"nextstop/game/engine"
)

// MessageType tags a wire message.
type MessageType string

const (
	// Client to server.
	MsgJoinGame     MessageType = "join_game"
	MsgPlayerAction MessageType = "player_action"
	MsgStartGame    MessageType = "start_game"

	// Server to client.
	MsgGameJoined    MessageType = "game_joined"
	MsgGameState     MessageType = "game_state"
	MsgCardRevealed  MessageType = "card_revealed"
	MsgActionResult  MessageType = "player_action_result"
	MsgLineCompleted MessageType = "line_completed"
	MsgGameEnded     MessageType = "game_ended"
	MsgError         MessageType = "error"
)

// Message is the single envelope for everything on the wire. Type selects
// which fields are meaningful; the rest are omitted from the JSON.
type Message struct {
	Type MessageType `json:"type"`

	// join_game
	City       string `json:"city,omitempty"`
	PlayerName string `json:"player_name,omitempty"`

	// player_action
	Action *engine.Action `json:"action,omitempty"`

	// game_joined
	GameID   uuid.UUID `json:"game_id,omitempty"`
	PlayerID uuid.UUID `json:"player_id,omitempty"`

	// game_state
	State *engine.GameState `json:"state,omitempty"`

	// card_revealed. Round is not omitempty: the first reveal happens in
	// round zero and clients must still see the field.
	Card  *engine.Card `json:"card,omitempty"`
	Round int          `json:"round"`

	// player_action_result / line_completed
	Success bool          `json:"success,omitempty"`
	Detail  string        `json:"detail,omitempty"`
	LineID  engine.LineID `json:"line_id,omitempty"`

	// game_ended
	Scores map[string]int `json:"scores,omitempty"`

	// error
	Error string `json:"error,omitempty"`
}

// Encode marshals the message for the wire. The message set contains no
// unmarshalable types, so failure here is a programming error.
func (m Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

func NewGameJoined(gameID, playerID uuid.UUID, city string) Message {
	return Message{Type: MsgGameJoined, GameID: gameID, PlayerID: playerID, City: city}
}

func NewGameStateMsg(state *engine.GameState) Message {
	return Message{Type: MsgGameState, State: state}
}

func NewCardRevealed(card engine.Card, round int) Message {
	return Message{Type: MsgCardRevealed, Card: &card, Round: round}
}

func NewActionResult(playerID uuid.UUID, success bool, detail string) Message {
	return Message{Type: MsgActionResult, PlayerID: playerID, Success: success, Detail: detail}
}

func NewLineCompleted(playerID uuid.UUID, lineID engine.LineID) Message {
	return Message{Type: MsgLineCompleted, PlayerID: playerID, LineID: lineID}
}

func NewGameEnded(scores map[uuid.UUID]int) Message {
	out := make(map[string]int, len(scores))
	for playerID, score := range scores {
		out[playerID.String()] = score
	}
	return Message{Type: MsgGameEnded, Scores: out}
}

func NewErrorMsg(err error) Message {
	return Message{Type: MsgError, Error: err.Error()}
}

// SessionInfo is the REST-facing summary of one session.
type SessionInfo struct {
	ID          uuid.UUID `json:"id"`
	City        string    `json:"city"`
	PlayerCount int       `json:"player_count"`
	Round       int       `json:"round"`
	GameEnded   bool      `json:"game_ended"`
	CreatedAt   time.Time `json:"created_at"`
}
