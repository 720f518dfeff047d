package service

import (
	"context"
	"fmt"

	"github.com/benbeisheim/chessengine/internal/model"
	"github.com/benbeisheim/chessengine/internal/notation"
	"github.com/benbeisheim/chessengine/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type GameService struct {
	gameManager *GameManager
	search      *SearchService
}

func NewGameService(gameManager *GameManager, search *SearchService) *GameService {
	return &GameService{
		gameManager: gameManager,
		search:      search,
	}
}

// Analysis is the engine's answer for an arbitrary position.
type Analysis struct {
	Move            string `json:"move"`
	SAN             string `json:"san"`
	From            int    `json:"from"`
	To              int    `json:"to"`
	Score           int    `json:"score"`
	Depth           int    `json:"depth"`
	Strategy        string `json:"strategy"`
	BoardsEvaluated int64  `json:"boardsEvaluated"`
	ElapsedMillis   int64  `json:"elapsedMs"`
}

func (gs *GameService) CreateGame(opts GameOptions) (string, error) {
	game, err := gs.gameManager.CreateGame(opts)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return game.ID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Alliance, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) ListGames() []string {
	return gs.gameManager.ListGames()
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, from, to int) (model.GameState, error) {
	return gs.gameManager.MakeMove(gameID, playerID, from, to)
}

func (gs *GameService) LegalDestinations(gameID string, from int) ([]int, error) {
	return gs.gameManager.LegalDestinations(gameID, from)
}

// BestMove searches the position described by fen.
func (gs *GameService) BestMove(ctx context.Context, fen string, req SearchRequest) (Analysis, error) {
	pos, err := model.ParseFEN(fen)
	if err != nil {
		return Analysis{}, err
	}
	return gs.analyse(ctx, pos, req)
}

// SuggestMove searches the current position of a running game.
func (gs *GameService) SuggestMove(ctx context.Context, gameID string, req SearchRequest) (Analysis, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Analysis{}, err
	}
	return gs.analyse(ctx, game.Position(), req)
}

func (gs *GameService) analyse(ctx context.Context, pos *model.Position, req SearchRequest) (Analysis, error) {
	outcome, err := gs.search.BestMove(ctx, pos, req)
	if err != nil {
		return Analysis{}, err
	}
	result := outcome.Result
	analysis := Analysis{
		Move:            result.Move.String(),
		From:            result.Move.From(),
		To:              result.Move.To,
		Score:           result.Score,
		Depth:           result.Depth,
		Strategy:        outcome.Strategy,
		BoardsEvaluated: result.BoardsEvaluated,
		ElapsedMillis:   result.Elapsed.Milliseconds(),
	}
	if !result.Move.IsNull() {
		analysis.SAN = notation.SANOrCoordinate(result.Move)
	}
	return analysis, nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}

func (gs *GameService) Send(gameID string, conn *websocket.Conn, msg ws.Message) error {
	return gs.gameManager.Send(gameID, conn, msg)
}
