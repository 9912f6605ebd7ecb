package ws

import (
	"github.com/gorilla/websocket"

	"github.com/mvidak/tictactoe-go/internal/model"
)

const sendBufferSize = 16

// Client is one websocket connection bound to an authenticated identity. A
// connection participates in at most one room at a time.
type Client struct {
	conn     *websocket.Conn
	send     chan model.Event
	playerID model.PlayerID
	room     model.RoomCode
}

func newClient(conn *websocket.Conn, playerID model.PlayerID) *Client {
	return &Client{
		conn:     conn,
		send:     make(chan model.Event, sendBufferSize),
		playerID: playerID,
	}
}

// trySend queues an event without blocking. A client whose buffer is full is
// considered dead; the event is dropped and the read loop will reap the
// connection.
func (c *Client) trySend(event model.Event) {
	select {
	case c.send <- event:
	default:
	}
}

// readPump reads commands off the connection and dispatches them until the
// connection drops
func (c *Client) readPump(h *Handler) {
	defer func() {
		h.disconnect(c)
		c.conn.Close()
	}()

	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			return
		}
		h.dispatch(c, cmd)
	}
}

// writePump drains the send channel onto the connection
func (c *Client) writePump() {
	defer c.conn.Close()

	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			return
		}
	}
}
