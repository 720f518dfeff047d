package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeBestMove  MessageType = "bestMove"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is the body of a "move" message, in board indices (0 = a8).
type MovePayload struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// BestMovePayload asks the engine for a suggestion in the current position.
type BestMovePayload struct {
	Depth    int    `json:"depth"`
	Strategy string `json:"strategy"`
}

// ErrorPayload wraps an error message for the client.
type ErrorPayload struct {
	Error string `json:"error"`
}
