package controller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessengine/internal/middleware"
	"github.com/benbeisheim/chessengine/internal/service"
	"github.com/benbeisheim/chessengine/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	// Extract game ID and player ID from context
	gameID, _ := c.Locals(middleware.LocalGameID).(string)
	playerID, _ := c.Locals(middleware.LocalPlayerID).(string)

	// Register this connection with the game
	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("failed to register connection: %v", err)
		wsc.sendError(c, gameID, err)
		c.Close()
		return
	}

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error for player %s: %v", playerID, err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("parse error: %v", err)
			wsc.sendError(c, gameID, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(c, gameID, playerID, msg); err != nil {
			wsc.sendError(c, gameID, err)
		}
	}

	// Clean up when connection closes
	wsc.gameService.UnregisterConnection(gameID, playerID)
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(c *websocket.Conn, gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		// The new state reaches every connection through the game broadcast
		_, err := wsc.gameService.HandleMove(gameID, playerID, move.From, move.To)
		return err

	case ws.MessageTypeBestMove:
		var req ws.BestMovePayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				return err
			}
		}
		analysis, err := wsc.gameService.SuggestMove(context.Background(), gameID, service.SearchRequest{
			Depth:    req.Depth,
			Strategy: req.Strategy,
		})
		if err != nil {
			return err
		}
		return wsc.send(c, gameID, ws.MessageTypeBestMove, analysis)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) send(c *websocket.Conn, gameID string, kind ws.MessageType, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return wsc.gameService.Send(gameID, c, ws.Message{
		Type:    kind,
		Payload: json.RawMessage(body),
	})
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(c *websocket.Conn, gameID string, err error) {
	if err := wsc.send(c, gameID, ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()}); err != nil {
		log.Warnf("send error message: %v", err)
	}
}
