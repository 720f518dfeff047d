package model

import "fmt"

type MoveKind int

const (
	MoveNull MoveKind = iota
	MoveNormal
	MoveCapture
	MovePawnDoubleStep
	MoveEnPassant
	MovePromotion
	MoveCastleKingside
	MoveCastleQueenside
)

var moveKindNames = [...]string{
	MoveNull:            "null",
	MoveNormal:          "normal",
	MoveCapture:         "capture",
	MovePawnDoubleStep:  "double-step",
	MoveEnPassant:       "en-passant",
	MovePromotion:       "promotion",
	MoveCastleKingside:  "castle-kingside",
	MoveCastleQueenside: "castle-queenside",
}

func (k MoveKind) String() string {
	if k < 0 || int(k) >= len(moveKindNames) {
		return "unknown"
	}
	return moveKindNames[k]
}

// Move is one state transition from its origin Position. Kind selects which
// of the optional fields are meaningful:
//   - Captured: MoveCapture, MoveEnPassant, and MovePromotion over a capture
//   - Rook, RookTo: the castling kinds
//
// A promotion always produces a queen.
type Move struct {
	Kind     MoveKind
	Piece    Piece
	To       int
	Captured *Piece
	Rook     *Piece
	RookTo   int
	origin   *Position
}

// NullMove stands in for "no move found". It must never be executed.
var NullMove = Move{Kind: MoveNull, To: -1, RookTo: -1, Piece: Piece{Square: -1}}

func newMove(kind MoveKind, origin *Position, piece Piece, to int, captured *Piece) Move {
	return Move{Kind: kind, Piece: piece, To: to, Captured: detached(captured), RookTo: -1, origin: origin}
}

// detached copies a piece held by a Position so callers cannot write through
// to the board.
func detached(piece *Piece) *Piece {
	if piece == nil {
		return nil
	}
	c := *piece
	return &c
}

func (m Move) From() int {
	return m.Piece.Square
}

func (m Move) IsNull() bool {
	return m.Kind == MoveNull
}

func (m Move) IsAttack() bool {
	return m.Captured != nil
}

func (m Move) IsCastle() bool {
	return m.Kind == MoveCastleKingside || m.Kind == MoveCastleQueenside
}

// Origin is the Position the move was generated from.
func (m Move) Origin() *Position {
	return m.origin
}

// Equals compares moves by origin square, destination square and moved piece,
// regardless of kind.
func (m Move) Equals(o Move) bool {
	return m.From() == o.From() && m.To == o.To && m.Piece.SameAs(o.Piece)
}

// Underlying returns the plain move a promotion wraps; other moves return
// themselves.
func (m Move) Underlying() Move {
	if m.Kind != MovePromotion {
		return m
	}
	inner := m
	inner.Kind = MoveNormal
	if m.Captured != nil {
		inner.Kind = MoveCapture
	}
	return inner
}

// Execute applies the move to its origin Position and returns the resulting
// Position. The origin is left untouched.
func (m Move) Execute() (*Position, error) {
	if m.Kind == MoveNull || m.origin == nil {
		return nil, ErrNullMoveExecution
	}
	return m.execute(), nil
}

func (m Move) execute() *Position {
	if m.Kind == MovePromotion {
		next := m.Underlying().execute()
		queen := Piece{Type: Queen, Alliance: m.Piece.Alliance, Square: m.To, HasMoved: true}
		next.tiles[m.To] = &queen
		return next
	}

	origin := m.origin
	next := &Position{
		tiles:        origin.tiles,
		toMove:       m.Piece.Alliance.Opponent(),
		whiteCastled: origin.whiteCastled,
		blackCastled: origin.blackCastled,
	}
	next.tiles[m.Piece.Square] = nil
	if m.Captured != nil {
		next.tiles[m.Captured.Square] = nil
	}
	moved := m.Piece.moveTo(m.To)
	next.tiles[m.To] = &moved

	switch m.Kind {
	case MovePawnDoubleStep:
		next.enPassant = &moved
	case MoveCastleKingside, MoveCastleQueenside:
		next.tiles[m.Rook.Square] = nil
		rook := m.Rook.moveTo(m.RookTo)
		next.tiles[m.RookTo] = &rook
		if m.Piece.Alliance == White {
			next.whiteCastled = true
		} else {
			next.blackCastled = true
		}
	}
	return next
}

// String renders the move in coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.Kind == MoveNull {
		return "0000"
	}
	s := SquareName(m.From()) + SquareName(m.To)
	if m.Kind == MovePromotion {
		s += "q"
	}
	return s
}

// Describe is a longer human-readable form used in logs.
func (m Move) Describe() string {
	if m.Kind == MoveNull {
		return "null move"
	}
	return fmt.Sprintf("%s %s %s->%s (%s)", m.Piece.Alliance, m.Piece.Type, SquareName(m.From()), SquareName(m.To), m.Kind)
}

// FindMove scans the legal moves of the side to move for one that travels
// from -> to. It returns NullMove when none matches.
func FindMove(pos *Position, from, to int) Move {
	if pos == nil {
		return NullMove
	}
	for _, m := range pos.CurrentSide().legalMoves {
		if m.From() == from && m.To == to {
			return m
		}
	}
	return NullMove
}
