// service/game_manager.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/benbeisheim/chessengine/internal/model"
	"github.com/benbeisheim/chessengine/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
)

var ErrGameNotFound = errors.New("game not found")

// GameOptions configures a new game. A computer game hands ComputerSide to
// the engine; Depth and Strategy fall back to the search defaults.
type GameOptions struct {
	VsComputer   bool
	ComputerSide model.Alliance
	Depth        int
	Strategy     string
}

type GameManager struct {
	games   map[string]*model.Game
	search  *SearchService
	notate  model.Notator
	pending sync.WaitGroup
	mu      sync.RWMutex
}

func NewGameManager(search *SearchService, notate model.Notator) *GameManager {
	return &GameManager{
		games:  make(map[string]*model.Game),
		search: search,
		notate: notate,
	}
}

func (gm *GameManager) CreateGame(opts GameOptions) (*model.Game, error) {
	game := model.NewGame(uuid.New().String(), gm.notate)
	if opts.VsComputer {
		side := opts.ComputerSide
		if side == "" {
			side = model.Black
		}
		strategy, err := gm.search.Strategy(opts.Strategy)
		if err != nil {
			return nil, err
		}
		if err := game.SetComputer(model.ComputerOpponent{
			Alliance: side,
			Depth:    gm.search.Depth(opts.Depth),
			Strategy: strategy.String(),
		}); err != nil {
			return nil, err
		}
	}

	gm.mu.Lock()
	gm.games[game.ID] = game
	gm.mu.Unlock()
	log.Infof("created game %s (computer: %t)", game.ID, opts.VsComputer)

	gm.playComputerTurn(game)
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return game, nil
}

// ListGames returns the IDs of all games in a stable order.
func (gm *GameManager) ListGames() []string {
	gm.mu.RLock()
	ids := maps.Keys(gm.games)
	gm.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Alliance, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, from, to int) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	state, err := game.MakeMove(playerID, from, to)
	if err != nil {
		return model.GameState{}, err
	}
	gm.playComputerTurn(game)
	return state, nil
}

// LegalDestinations lists the squares the piece on from may move to.
func (gm *GameManager) LegalDestinations(gameID string, from int) ([]int, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if !model.IsValidSquare(from) {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidSquare, from)
	}
	moves := game.Position().CurrentSide().LegalMovesFrom(from)
	squares := make([]int, 0, len(moves))
	for _, m := range moves {
		squares = append(squares, m.To)
	}
	return squares, nil
}

// playComputerTurn searches in the background when the engine is to move.
// A search that runs over time is still played once it finishes, since
// nobody else can move for the engine. The result is dropped if the position
// changed while it was thinking.
func (gm *GameManager) playComputerTurn(game *model.Game) {
	if !game.ComputerToMove() {
		return
	}
	computer := game.Computer()
	pos := game.Position()

	gm.pending.Add(1)
	go func() {
		defer gm.pending.Done()
		results := gm.search.RequestMove(context.Background(), pos, SearchRequest{
			Depth:    computer.Depth,
			Strategy: computer.Strategy,
		})
		outcome, err := gm.search.Await(context.Background(), results)
		if errors.Is(err, ErrSearchTimeout) {
			log.Warnf("computer in game %s: %v, waiting for the depth %d search", game.ID, err, computer.Depth)
			outcome = <-results
			err = outcome.Err
		}
		if err != nil {
			log.Errorf("computer search in game %s: %v", game.ID, err)
			return
		}
		if outcome.Result.Move.IsNull() {
			return
		}
		if err := game.ApplyComputerMove(pos, outcome.Result.Move); err != nil {
			log.Warnf("discarding computer move %s in game %s: %v", outcome.Result.Move, game.ID, err)
		}
	}()
}

// Wait blocks until every computer turn started so far has finished.
func (gm *GameManager) Wait() {
	gm.pending.Wait()
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

// Send writes msg to a connection of gameID. Connections that belong to no
// known game are written directly.
func (gm *GameManager) Send(gameID string, conn *websocket.Conn, msg ws.Message) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return conn.WriteJSON(msg)
	}
	return game.Send(conn, msg)
}
