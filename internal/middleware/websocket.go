package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

// Locals keys read by the websocket controller once the connection is up.
const (
	LocalGameID   = "wsGameID"
	LocalPlayerID = "wsPlayerID"
)

// WebSocketUpgrade admits upgrade requests for a game that carry a player
// identity. EnsurePlayerID must run first.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		playerID, _ := c.Locals("playerID").(string)
		switch {
		case gameID == "":
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game ID is required"})
		case playerID == "":
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "player ID is required"})
		}

		// The connection outlives this request, so nothing may alias its buffers
		c.Locals(LocalGameID, utils.CopyString(gameID))
		c.Locals(LocalPlayerID, playerID)
		return c.Next()
	}
}
