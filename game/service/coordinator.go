package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"nextstop/game/engine"
)

var ErrDeckExhausted = errors.New("deck and discard pile are both empty")

// Outbox delivers encoded messages to one connected player. TrySend must
// not block: it reports false when the recipient cannot take the message,
// and the caller drops it.
type Outbox interface {
	TrySend(data []byte) bool
}

type playerConn struct {
	name   string
	outbox Outbox
}

// Coordinator owns one game. Every read and write of the underlying
// GameState goes through its mutex, so the engine itself stays lock-free.
type Coordinator struct {
	mu        sync.Mutex
	state     *engine.GameState
	cityMap   *engine.CityMap
	players   map[uuid.UUID]playerConn
	createdAt time.Time
}

// NewCoordinator starts a game for a city. The first player to join is the
// conductor.
func NewCoordinator(city string, cityMap *engine.CityMap, conductor uuid.UUID) *Coordinator {
	return &Coordinator{
		state:     engine.NewGameState(city, conductor),
		cityMap:   cityMap,
		players:   make(map[uuid.UUID]playerConn),
		createdAt: time.Now(),
	}
}

// ID returns the game's identifier.
func (c *Coordinator) ID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.ID
}

// City returns the city this game is played on.
func (c *Coordinator) City() string {
	return c.state.City
}

// AddPlayer registers a player's outbox and, on first join, their sheet.
// A player reconnecting after a drop gets their existing sheet back. The
// joiner receives a game_joined confirmation and everyone gets a fresh
// snapshot.
func (c *Coordinator) AddPlayer(playerID uuid.UUID, name string, outbox Outbox) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.state.Players[playerID]; !exists {
		c.state.AddPlayer(playerID, c.cityMap)
	}
	c.players[playerID] = playerConn{name: name, outbox: outbox}

	c.unicastLocked(playerID, NewGameJoined(c.state.ID, playerID, c.state.City))
	c.broadcastLocked(NewGameStateMsg(c.state.Clone()))
}

// RemovePlayer drops the player's outbox. The sheet stays: its windows
// still count toward the end-of-game condition, and the player can rejoin
// with the same ID.
func (c *Coordinator) RemovePlayer(playerID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.players, playerID)
}

// PlayerCount counts sheets, not live connections. A session that once
// held six players stays full even while some are disconnected.
func (c *Coordinator) PlayerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.state.Players)
}

// Ended reports whether the game has finished.
func (c *Coordinator) Ended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.GameEnded
}

// Dispatch runs one player action through the rules. Line completions are
// broadcast to the whole table; results and errors go back to the actor
// alone. An action that fills the last open window ends the game on the
// spot: the final scores and a closing snapshot go out to everyone.
func (c *Coordinator) Dispatch(playerID uuid.UUID, action engine.Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	events, err := c.state.ProcessAction(playerID, action, c.cityMap)
	if err != nil {
		c.unicastLocked(playerID, NewErrorMsg(err))
		return err
	}

	for _, ev := range events {
		switch ev.Kind {
		case engine.EventLineCompleted:
			c.broadcastLocked(NewLineCompleted(ev.PlayerID, ev.LineID))
		case engine.EventActionResult:
			c.unicastLocked(playerID, NewActionResult(ev.PlayerID, ev.Success, ev.Message))
		}
	}

	if c.state.CheckGameEnd() {
		c.state.GameEnded = true
		c.broadcastLocked(NewGameEnded(c.state.FinalScores(c.cityMap)))
		c.broadcastLocked(NewGameStateMsg(c.state.Clone()))
	}
	return nil
}

// StartRound advances the game one round: the previous card is resolved
// (discarded, or the six's reshuffle), then the next card is revealed and
// pushed to the table with a snapshot. When resolving the previous card
// ends the game, the final scores are broadcast instead.
func (c *Coordinator) StartRound() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.GameEnded {
		return engine.ErrGameEnded
	}

	if c.state.CurrentCard != nil {
		c.state.NextRound()
		if c.state.GameEnded {
			c.broadcastLocked(NewGameEnded(c.state.FinalScores(c.cityMap)))
			c.broadcastLocked(NewGameStateMsg(c.state.Clone()))
			return nil
		}
	}

	card, ok := c.state.RevealCard()
	if !ok {
		return ErrDeckExhausted
	}

	c.broadcastLocked(NewCardRevealed(card, c.state.Round))
	c.broadcastLocked(NewGameStateMsg(c.state.Clone()))
	return nil
}

// Broadcast sends a message to every connected player.
func (c *Coordinator) Broadcast(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.broadcastLocked(msg)
}

// Unicast sends a message to one player, if connected.
func (c *Coordinator) Unicast(playerID uuid.UUID, msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unicastLocked(playerID, msg)
}

func (c *Coordinator) broadcastLocked(msg Message) {
	data, err := msg.Encode()
	if err != nil {
		log.Printf("Failed to encode %s message: %v", msg.Type, err)
		return
	}
	for playerID, conn := range c.players {
		if !conn.outbox.TrySend(data) {
			log.Printf("Dropping %s message for busy player %s", msg.Type, playerID)
		}
	}
}

func (c *Coordinator) unicastLocked(playerID uuid.UUID, msg Message) {
	conn, exists := c.players[playerID]
	if !exists {
		return
	}
	data, err := msg.Encode()
	if err != nil {
		log.Printf("Failed to encode %s message: %v", msg.Type, err)
		return
	}
	if !conn.outbox.TrySend(data) {
		log.Printf("Dropping %s message for busy player %s", msg.Type, playerID)
	}
}

// Snapshot returns a deep copy of the game state.
func (c *Coordinator) Snapshot() *engine.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Info summarizes the session for listings.
func (c *Coordinator) Info() SessionInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SessionInfo{
		ID:          c.state.ID,
		City:        c.state.City,
		PlayerCount: len(c.state.Players),
		Round:       c.state.Round,
		GameEnded:   c.state.GameEnded,
		CreatedAt:   c.createdAt,
	}
}
