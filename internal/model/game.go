package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessengine/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Connection is the part of a websocket connection a game writes to.
type Connection interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Connection // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // one writer at a time per game
	sentPly     int        // newest state broadcast so far, guarded by writeMu
}

// Notator renders a move for the move history.
type Notator func(Move) string

// ComputerOpponent describes the engine-controlled side of a game.
type ComputerOpponent struct {
	Alliance Alliance `json:"color"`
	Depth    int      `json:"depth"`
	Strategy string   `json:"strategy"`
}

// The Game struct holds the current Position of one game and its observers.
// The Position is only ever replaced by the result of a successful transition.
type Game struct {
	ID          string
	mu          sync.Mutex
	position    *Position
	moveLog     *MoveLog
	players     map[Alliance]string
	computer    *ComputerOpponent
	resolve     *string
	clocks      map[Alliance]*Clock
	notate      Notator
	connections *GameConnections // Connections just for this game
}

type GameState struct {
	ID              string         `json:"id"`
	Ply             int            `json:"ply"`
	FEN             string         `json:"fen"`
	Board           []*Piece       `json:"board"`
	ToMove          Alliance       `json:"toMove"`
	IsCheck         bool           `json:"isCheck"`
	Resolve         *string        `json:"resolve"`
	LegalMoves      []SimpleMove   `json:"legalMoves"`
	MoveHistory     []SimpleMove   `json:"moveHistory"`
	CapturedPieces  CapturedPieces `json:"capturedPieces"`
	EnPassantTarget *int           `json:"enPassantTarget"`
	LastMove        *SimpleMove    `json:"lastMove"`
	Players         struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

type SimpleMove struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	Notation string `json:"notation,omitempty"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string, notate Notator) *Game {
	if notate == nil {
		notate = Move.String
	}
	g := &Game{
		ID:          id,
		position:    NewStandardPosition(),
		moveLog:     NewMoveLog(),
		players:     make(map[Alliance]string),
		clocks:      map[Alliance]*Clock{White: NewClock(), Black: NewClock()},
		notate:      notate,
		connections: NewGameConnections(),
	}
	g.clocks[White].Start()
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Connection),
	}
}

// SetComputer hands one side of the board to the engine.
func (g *Game) SetComputer(opponent ComputerOpponent) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !opponent.Alliance.Valid() {
		return fmt.Errorf("invalid computer side %q", opponent.Alliance)
	}
	if g.players[opponent.Alliance] != "" {
		return ErrGameFull
	}
	g.computer = &opponent
	return nil
}

func (g *Game) Computer() *ComputerOpponent {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.computer == nil {
		return nil
	}
	c := *g.computer
	return &c
}

func (g *Game) AddPlayer(playerID string) (Alliance, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if a, ok := g.allianceOf(playerID); ok {
		return a, nil
	}
	for _, a := range []Alliance{White, Black} {
		if g.players[a] == "" && (g.computer == nil || g.computer.Alliance != a) {
			g.players[a] = playerID
			log.Infof("player %s joined game %s as %s", playerID, g.ID, a)
			return a, nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) allianceOf(playerID string) (Alliance, bool) {
	for a, id := range g.players {
		if id != "" && id == playerID {
			return a, true
		}
	}
	return "", false
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.allianceOf(playerID)
	return ok
}

func (g *Game) canSpectate() bool {
	return g.players[White] == "" || g.players[Black] == "" || g.computer != nil
}

// Position returns the current board.
func (g *Game) Position() *Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.position
}

// ComputerToMove reports whether the engine owns the side to move of a game
// that is still running.
func (g *Game) ComputerToMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.resolve == nil && g.computer != nil && g.computer.Alliance == g.position.ToMove()
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.stateLocked()
}

func (g *Game) stateLocked() GameState {
	pos := g.position
	side := pos.CurrentSide()
	state := GameState{
		ID:          g.ID,
		Ply:         g.moveLog.Size(),
		FEN:         pos.FEN(),
		Board:       make([]*Piece, NumSquares),
		ToMove:      pos.ToMove(),
		IsCheck:     side.IsInCheck(),
		Resolve:     g.resolve,
		LegalMoves:  make([]SimpleMove, 0, side.MoveCount()),
		MoveHistory: make([]SimpleMove, 0, g.moveLog.Size()),
	}
	for sq := range state.Board {
		state.Board[sq], _ = pos.TileAt(sq)
	}
	if g.resolve == nil {
		for _, m := range side.LegalMoves() {
			state.LegalMoves = append(state.LegalMoves, SimpleMove{From: m.From(), To: m.To})
		}
	}
	for _, ply := range g.moveLog.Moves() {
		state.MoveHistory = append(state.MoveHistory, SimpleMove{From: ply.Move.From(), To: ply.Move.To, Notation: ply.Notation})
	}
	if n := len(state.MoveHistory); n > 0 {
		last := state.MoveHistory[n-1]
		state.LastMove = &last
	}
	taken := g.moveLog.TakenPieces()
	state.CapturedPieces = CapturedPieces{White: taken[White], Black: taken[Black]}
	if ep := pos.EnPassantPawn(); ep != nil {
		target := ep.Square - 8*ep.Alliance.Direction()
		state.EnPassantTarget = &target
	}
	state.Players.White = g.clientPlayer(White)
	state.Players.Black = g.clientPlayer(Black)
	return state
}

func (g *Game) clientPlayer(a Alliance) ClientPlayer {
	return ClientPlayer{
		ID:       g.players[a],
		Color:    a,
		Computer: g.computer != nil && g.computer.Alliance == a,
		TimeUsed: int(g.clocks[a].Used().Milliseconds() / 100),
	}
}

// MakeMove plays from -> to for playerID. Attempts that are not legal leave
// the game untouched.
func (g *Game) MakeMove(playerID string, from, to int) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil {
		return GameState{}, ErrGameOver
	}
	alliance, ok := g.allianceOf(playerID)
	if !ok {
		return GameState{}, ErrNotInGame
	}
	if alliance != g.position.ToMove() {
		return GameState{}, ErrNotYourTurn
	}
	if !IsValidSquare(from) || !IsValidSquare(to) {
		return GameState{}, fmt.Errorf("%w: %d -> %d", ErrInvalidSquare, from, to)
	}

	move := FindMove(g.position, from, to)
	transition := g.position.CurrentSide().MakeMove(move)
	if !transition.Status.IsDone() {
		return GameState{}, fmt.Errorf("%s -> %s: %w", SquareName(from), SquareName(to), transition.Status.Err())
	}
	g.applyLocked(transition)
	return g.stateLocked(), nil
}

// ApplyComputerMove plays a move found by a search that started from
// searched. If the game moved on in the meantime the result is discarded.
func (g *Game) ApplyComputerMove(searched *Position, move Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil {
		return ErrGameOver
	}
	if g.position != searched {
		return ErrStalePosition
	}
	if g.computer == nil || g.computer.Alliance != g.position.ToMove() {
		return ErrNotYourTurn
	}
	transition := g.position.CurrentSide().MakeMove(move)
	if !transition.Status.IsDone() {
		return fmt.Errorf("computer move %s: %w", move, transition.Status.Err())
	}
	g.applyLocked(transition)
	return nil
}

func (g *Game) applyLocked(t MoveTransition) {
	mover := t.Origin.ToMove()
	g.clocks[mover].Stop()

	g.moveLog.Add(t.Move, g.notate(t.Move), t.Position)
	g.position = t.Position

	next := g.position.CurrentSide()
	switch {
	case next.IsInCheckmate():
		result := "checkmate"
		g.resolve = &result
	case next.IsInStalemate():
		result := "stalemate"
		g.resolve = &result
	default:
		g.clocks[next.Alliance()].Start()
	}
	log.Debugf("game %s: %s", g.ID, t.Move.Describe())

	go g.broadcastState(g.stateLocked())
}

// RegisterConnection subscribes conn to the game's state broadcasts and sends
// it the current state.
func (g *Game) RegisterConnection(playerID string, conn Connection) error {
	g.mu.Lock()
	isAuthorized := g.canSpectate()
	if _, ok := g.allianceOf(playerID); ok {
		isAuthorized = true
	}
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the existing connection and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infof("registered connection for player %s in game %s", playerID, g.ID)

	// Taken after the connection is visible, so no newer state can skip it
	go g.broadcastState(g.GetState())
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[playerID]; exists {
		log.Infof("unregistering connection for player %s in game %s", playerID, g.ID)
		delete(g.connections.connections, playerID)
	}
}

// broadcastState sends state to every connection unless a later state has
// already gone out. Snapshots may arrive here out of order.
func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("marshal state for game %s: %v", g.ID, err)
		return
	}
	msg := ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	}

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	if state.Ply < g.connections.sentPly {
		log.Debugf("game %s: dropping stale state at ply %d", g.ID, state.Ply)
		return
	}
	g.connections.sentPly = state.Ply

	g.connections.mu.RLock()
	active := make(map[string]Connection, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("send state to player %s: %v", playerID, err)
			g.connections.mu.Lock()
			delete(g.connections.connections, playerID)
			g.connections.mu.Unlock()
		}
	}
}

// Send writes msg to conn, serialised with every other write for this game.
func (g *Game) Send(conn Connection, msg ws.Message) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()

	return conn.WriteJSON(msg)
}
