package ws

import "github.com/vovakirdan/fib2048/internal/games/fib2048"

// Message types.
const (
	TypeMove  = "move"
	TypeTiles = "tiles"
	TypeReset = "reset"
	TypeState = "state"
	TypeError = "error"
)

// Request is sent by the client.
type Request struct {
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"` // For "move"
}

// StateMessage reports the board after a request.
type StateMessage struct {
	Type    string         `json:"type"`
	Tiles   []fib2048.Tile `json:"tiles"`
	Changed bool           `json:"changed"`
	Moves   int            `json:"moves"`
}

// ErrorMessage reports a rejected request. The connection stays open.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
