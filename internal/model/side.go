package model

import "fmt"

// Side is one alliance's view of a Position: its legal moves and check state.
// It is derived once per Position and borrows that Position.
type Side struct {
	position   *Position
	alliance   Alliance
	king       Piece
	legalMoves []Move
	inCheck    bool
}

type castleLayout struct {
	kind        MoveKind
	kingFrom    int
	kingTo      int
	rookFrom    int
	rookTo      int
	empty       []int
	kingTransit []int
}

var castleLayouts = map[Alliance][]castleLayout{
	White: {
		{MoveCastleKingside, 60, 62, 63, 61, []int{61, 62}, []int{61, 62}},
		{MoveCastleQueenside, 60, 58, 56, 59, []int{57, 58, 59}, []int{59, 58}},
	},
	Black: {
		{MoveCastleKingside, 4, 6, 7, 5, []int{5, 6}, []int{5, 6}},
		{MoveCastleQueenside, 4, 2, 0, 3, []int{1, 2, 3}, []int{3, 2}},
	},
}

func newSide(p *Position, a Alliance) *Side {
	kingSq := p.kingSquare(a)
	if kingSq < 0 {
		panic(fmt.Errorf("%w: no %s king on the board", ErrInvalidPosition, a))
	}
	s := &Side{
		position: p,
		alliance: a,
		king:     *p.tiles[kingSq],
		inCheck:  p.IsSquareAttacked(kingSq, a.Opponent()),
	}
	pseudo := p.pseudoLegalMoves(a)
	s.legalMoves = make([]Move, 0, len(pseudo)+2)
	for _, m := range pseudo {
		if !s.leavesKingAttacked(m.execute(), m) {
			s.legalMoves = append(s.legalMoves, m)
		}
	}
	s.legalMoves = append(s.legalMoves, s.castles()...)
	return s
}

func (s *Side) leavesKingAttacked(next *Position, m Move) bool {
	kingSq := s.king.Square
	if m.Piece.Type == King {
		kingSq = m.To
	}
	return next.IsSquareAttacked(kingSq, s.alliance.Opponent())
}

func (s *Side) castles() []Move {
	if s.inCheck || s.king.HasMoved {
		return nil
	}
	p := s.position
	opponent := s.alliance.Opponent()
	var moves []Move
	for _, c := range castleLayouts[s.alliance] {
		if s.king.Square != c.kingFrom {
			continue
		}
		rook := p.tiles[c.rookFrom]
		if rook == nil || rook.Type != Rook || rook.Alliance != s.alliance || rook.HasMoved {
			continue
		}
		blocked := false
		for _, sq := range c.empty {
			if p.occupied(sq) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		attacked := false
		for _, sq := range c.kingTransit {
			if p.IsSquareAttacked(sq, opponent) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}
		m := newMove(c.kind, p, s.king, c.kingTo, nil)
		m.Rook = detached(rook)
		m.RookTo = c.rookTo
		moves = append(moves, m)
	}
	return moves
}

func (s *Side) Alliance() Alliance {
	return s.alliance
}

func (s *Side) Position() *Position {
	return s.position
}

func (s *Side) King() Piece {
	return s.king
}

func (s *Side) Opponent() *Side {
	return s.position.Side(s.alliance.Opponent())
}

func (s *Side) ActivePieces() []Piece {
	return s.position.ActivePieces(s.alliance)
}

// LegalMoves lists pseudo-legal moves that do not expose the king, ordered by
// the moving piece's square and then by generation order, with castles last.
func (s *Side) LegalMoves() []Move {
	moves := make([]Move, len(s.legalMoves))
	copy(moves, s.legalMoves)
	return moves
}

// MoveCount is the number of legal moves without copying them.
func (s *Side) MoveCount() int {
	return len(s.legalMoves)
}

// LegalMovesFrom lists the legal moves of the piece standing on square.
func (s *Side) LegalMovesFrom(square int) []Move {
	var moves []Move
	for _, m := range s.legalMoves {
		if m.From() == square {
			moves = append(moves, m)
		}
	}
	return moves
}

func (s *Side) IsInCheck() bool {
	return s.inCheck
}

func (s *Side) IsInCheckmate() bool {
	return s.inCheck && !s.hasEscapeMoves()
}

func (s *Side) IsInStalemate() bool {
	return !s.inCheck && !s.hasEscapeMoves()
}

func (s *Side) IsCastled() bool {
	return s.position.HasCastled(s.alliance)
}

func (s *Side) hasEscapeMoves() bool {
	for _, m := range s.legalMoves {
		if s.attempt(m).Status.IsDone() {
			return true
		}
	}
	return false
}

// MakeMove attempts move for this side. Failures leave the Position unchanged
// and are reported through the transition status.
func (s *Side) MakeMove(move Move) MoveTransition {
	if s.alliance != s.position.toMove {
		return MoveTransition{Origin: s.position, Position: s.position, Move: move, Status: MoveIllegal}
	}
	return s.attempt(move)
}

func (s *Side) attempt(move Move) MoveTransition {
	failed := MoveTransition{Origin: s.position, Position: s.position, Move: move}
	legal, ok := s.find(move)
	if !ok {
		failed.Status = MoveIllegal
		return failed
	}
	next := legal.execute()
	if next.IsSquareAttacked(next.kingSquare(s.alliance), s.alliance.Opponent()) {
		failed.Status = MoveLeavesPlayerInCheck
		return failed
	}
	return MoveTransition{Origin: s.position, Position: next, Move: legal, Status: MoveDone}
}

func (s *Side) find(move Move) (Move, bool) {
	if move.IsNull() {
		return NullMove, false
	}
	for _, m := range s.legalMoves {
		if m.Equals(move) {
			return m, true
		}
	}
	return NullMove, false
}
