package controller

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the REST API on router, which is expected to carry
// the player identity middleware.
func RegisterRoutes(router fiber.Router, gc *GameController) {
	gameRoutes := router.Group("/game")
	gameRoutes.Get("/", gc.ListGames)
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Post("/join/:gameId", gc.JoinGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Get("/:gameId/moves", gc.LegalMoves)
	gameRoutes.Post("/:gameId/move", gc.MakeMove)

	router.Post("/analysis/bestmove", gc.BestMove)
}
