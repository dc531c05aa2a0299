package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"nextstop/game/service"
	"nextstop/game/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Outbound buffer per connection; a full buffer drops messages.
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Handler upgrades /ws requests and speaks the game protocol with each
// connection.
type Handler struct {
	registry *session.Manager
}

// NewHandler creates a websocket handler over the session registry.
func NewHandler(registry *session.Manager) *Handler {
	return &Handler{registry: registry}
}

// ServeHTTP upgrades the connection and starts its pumps.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{
		registry: h.registry,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
	}

	go c.writePump()
	go c.readPump()
}

// client is one player's connection. Until join_game arrives it belongs to
// no game; afterwards coord and playerID are set for the connection's life.
type client struct {
	registry *session.Manager
	conn     *websocket.Conn
	send     chan []byte
	coord    *service.Coordinator
	playerID uuid.UUID
}

// TrySend queues a message without blocking. False means the buffer is
// full and the message is lost.
func (c *client) TrySend(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) sendMessage(msg service.Message) {
	data, err := msg.Encode()
	if err != nil {
		log.Printf("Failed to encode %s message: %v", msg.Type, err)
		return
	}
	c.TrySend(data)
}

// readPump pumps messages from the connection into the game.
func (c *client) readPump() {
	defer func() {
		if c.coord != nil {
			c.coord.RemovePlayer(c.playerID)
		}
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg service.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			// Undecodable input gets no reply.
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *client) handleMessage(msg service.Message) {
	switch msg.Type {
	case service.MsgJoinGame:
		c.handleJoin(msg)

	case service.MsgStartGame:
		if c.coord == nil {
			return
		}
		if err := c.coord.StartRound(); err != nil {
			c.sendMessage(service.NewErrorMsg(err))
		}

	case service.MsgPlayerAction:
		if c.coord == nil || msg.Action == nil {
			return
		}
		// Dispatch reports failures to this player itself.
		c.coord.Dispatch(c.playerID, *msg.Action)

	default:
		// Unknown or server-only types from a client are ignored.
	}
}

func (c *client) handleJoin(msg service.Message) {
	if c.coord != nil {
		return
	}

	playerID := uuid.New()
	coord, err := c.registry.JoinOrCreate(msg.City, playerID)
	if err != nil {
		c.sendMessage(service.NewErrorMsg(err))
		return
	}

	c.coord = coord
	c.playerID = playerID
	coord.AddPlayer(playerID, msg.PlayerName, c)

	log.Printf("Player %s joined game %s in %s", playerID, coord.ID(), coord.City())
}

// writePump pumps queued messages to the connection and pings the peer.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Fold queued messages into the same frame.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
