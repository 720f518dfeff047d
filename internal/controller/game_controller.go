package controller

import (
	"errors"

	"github.com/benbeisheim/chessengine/internal/engine"
	"github.com/benbeisheim/chessengine/internal/model"
	"github.com/benbeisheim/chessengine/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	VsComputer   bool           `json:"vsComputer"`
	ComputerSide model.Alliance `json:"computerSide"`
	Depth        int            `json:"depth"`
	Strategy     string         `json:"strategy"`
}

type moveRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

type bestMoveRequest struct {
	FEN      string `json:"fen"`
	Depth    int    `json:"depth"`
	Strategy string `json:"strategy"`
}

// statusFor maps service and chess errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrSelfCheck),
		errors.Is(err, model.ErrInvalidSquare),
		errors.Is(err, model.ErrInvalidFEN),
		errors.Is(err, model.ErrInvalidPosition):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrUnknownStrategy):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrSearchTimeout):
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}
	if req.ComputerSide != "" && !req.ComputerSide.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "computerSide must be white or black",
		})
	}

	gameID, err := gc.gameService.CreateGame(service.GameOptions{
		VsComputer:   req.VsComputer,
		ComputerSide: req.ComputerSide,
		Depth:        req.Depth,
		Strategy:     req.Strategy,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"games": gc.gameService.ListGames(),
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	from := c.QueryInt("from", -1)
	squares, err := gc.gameService.LegalDestinations(c.Params("gameId"), from)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"from": from,
		"to":   squares,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil || req.From == nil || req.To == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "from and to are required",
		})
	}
	playerID := c.Locals("playerID").(string)

	state, err := gc.gameService.HandleMove(c.Params("gameId"), playerID, *req.From, *req.To)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) BestMove(c *fiber.Ctx) error {
	var req bestMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.FEN == "" {
		req.FEN = model.FENStartPos
	}

	analysis, err := gc.gameService.BestMove(c.UserContext(), req.FEN, service.SearchRequest{
		Depth:    req.Depth,
		Strategy: req.Strategy,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(analysis)
}
