package ws

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/fib2048/internal/core"
	"github.com/vovakirdan/fib2048/internal/games/fib2048"
)

// client is one websocket connection and the game it owns.
// Only readPump touches the game, so requests are applied in order.
type client struct {
	conn   *websocket.Conn
	game   *fib2048.Game
	send   chan []byte
	done   chan struct{} // Closed when writePump exits
	logger *log.Logger
	seed   func() int64
}

// readPump decodes requests, applies them and queues the replies.
func (c *client) readPump() {
	defer func() {
		close(c.send)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // Deadline errors surface on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read failed", "error", err)
			}
			return
		}

		reply, err := json.Marshal(c.handle(data))
		if err != nil {
			c.logger.Error("encode reply", "error", err)
			return
		}
		select {
		case c.send <- reply:
		case <-c.done:
			return
		}
	}
}

// writePump sends queued replies and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			//nolint:errcheck // A failed deadline makes the write below fail
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // Peer may already be gone
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.Warn("write failed", "error", err)
				return
			}

		case <-ticker.C:
			//nolint:errcheck // A failed deadline makes the write below fail
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handle applies one request to the game and builds the reply.
func (c *client) handle(data []byte) any {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return errorReply(err)
	}

	var changed bool
	switch req.Type {
	case TypeMove:
		dir, err := fib2048.ParseDirection(req.Direction)
		if err != nil {
			return errorReply(err)
		}
		res, err := c.game.Move(dir)
		if err != nil {
			c.logger.Error("board fault", "error", err)
			return errorReply(err)
		}
		changed = res.Changed

	case TypeTiles:

	case TypeReset:
		c.game.Reset(core.RuntimeConfig{Seed: c.seed()})
		if err := c.game.Err(); err != nil {
			return errorReply(err)
		}
		changed = true

	default:
		return ErrorMessage{Type: TypeError, Error: fmt.Sprintf("unknown request type %q", req.Type)}
	}

	return c.stateReply(changed)
}

func (c *client) stateReply(changed bool) StateMessage {
	return StateMessage{
		Type:    TypeState,
		Tiles:   c.game.Board().Tiles(),
		Changed: changed,
		Moves:   c.game.State().Moves,
	}
}

func errorReply(err error) ErrorMessage {
	return ErrorMessage{Type: TypeError, Error: err.Error()}
}
