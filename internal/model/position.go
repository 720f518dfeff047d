package model

import (
	"fmt"
	"strings"
	"sync"
)

// Position is an immutable snapshot of the board. Every executed move yields
// a new Position; nothing reachable from a Position is ever mutated, so older
// positions stay valid for as long as anyone holds them.
type Position struct {
	tiles        [NumSquares]*Piece
	toMove       Alliance
	enPassant    *Piece
	whiteCastled bool
	blackCastled bool

	sidesOnce sync.Once
	white     *Side
	black     *Side
}

// NewPosition builds a Position from a set of pieces. It rejects boards that
// do not have exactly one king per side, that place two pieces on a square,
// whose en-passant pawn is not a pawn that could just have double-stepped, or
// where the side that just moved is still in check.
func NewPosition(pieces []Piece, toMove Alliance, enPassant *Piece) (*Position, error) {
	if !toMove.Valid() {
		return nil, fmt.Errorf("%w: unknown side to move %q", ErrInvalidPosition, toMove)
	}
	p := &Position{toMove: toMove}
	kings := map[Alliance]int{}
	for i := range pieces {
		piece := pieces[i]
		if !IsValidSquare(piece.Square) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSquare, piece.Square)
		}
		if !piece.Alliance.Valid() || piece.Type.Value() == 0 {
			return nil, fmt.Errorf("%w: malformed piece %+v", ErrInvalidPosition, piece)
		}
		if p.tiles[piece.Square] != nil {
			return nil, fmt.Errorf("%w: square %s occupied twice", ErrInvalidPosition, SquareName(piece.Square))
		}
		if piece.Type == King {
			kings[piece.Alliance]++
		}
		p.tiles[piece.Square] = &piece
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, fmt.Errorf("%w: need exactly one king per side, have white=%d black=%d",
			ErrInvalidPosition, kings[White], kings[Black])
	}
	if enPassant != nil {
		if !IsValidSquare(enPassant.Square) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSquare, enPassant.Square)
		}
		on := p.tiles[enPassant.Square]
		if on == nil || on.Type != Pawn ||
			on.Alliance != toMove.Opponent() || !isDoubleStepSquare(on.Alliance, on.Square) {
			return nil, fmt.Errorf("%w: %s is not an en-passant pawn", ErrInvalidPosition, SquareName(enPassant.Square))
		}
		p.enPassant = on
	}
	mover := toMove.Opponent()
	if p.IsSquareAttacked(p.kingSquare(mover), toMove) {
		return nil, fmt.Errorf("%w: %s king is in check with %s to move", ErrInvalidPosition, mover, toMove)
	}
	return p, nil
}

// isDoubleStepSquare reports whether a pawn of alliance a standing on square
// could have arrived there with a two-square advance.
func isDoubleStepSquare(a Alliance, square int) bool {
	row := square / squaresPerRow
	if a == White {
		return row == 4
	}
	return row == 3
}

// TileAt returns a copy of the piece on square, or nil if it is empty.
func (p *Position) TileAt(square int) (*Piece, error) {
	if !IsValidSquare(square) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSquare, square)
	}
	return detached(p.tiles[square]), nil
}

func (p *Position) ToMove() Alliance {
	return p.toMove
}

// EnPassantPawn returns the pawn that may be captured en passant on this ply.
func (p *Position) EnPassantPawn() *Piece {
	return detached(p.enPassant)
}

func (p *Position) HasCastled(a Alliance) bool {
	if a == White {
		return p.whiteCastled
	}
	return p.blackCastled
}

// ActivePieces lists the pieces of one side in ascending square order.
func (p *Position) ActivePieces(a Alliance) []Piece {
	pieces := make([]Piece, 0, 16)
	for _, tile := range p.tiles {
		if tile != nil && tile.Alliance == a {
			pieces = append(pieces, *tile)
		}
	}
	return pieces
}

func (p *Position) Side(a Alliance) *Side {
	p.sidesOnce.Do(func() {
		p.white = newSide(p, White)
		p.black = newSide(p, Black)
	})
	if a == White {
		return p.white
	}
	return p.black
}

// CurrentSide is the side to move.
func (p *Position) CurrentSide() *Side {
	return p.Side(p.toMove)
}

func (p *Position) WhiteSide() *Side {
	return p.Side(White)
}

func (p *Position) BlackSide() *Side {
	return p.Side(Black)
}

func (p *Position) kingSquare(a Alliance) int {
	for sq, tile := range p.tiles {
		if tile != nil && tile.Type == King && tile.Alliance == a {
			return sq
		}
	}
	return -1
}

func (p *Position) occupied(square int) bool {
	return p.tiles[square] != nil
}

// IsSquareAttacked reports whether any piece of attacker could capture on
// square. Pawns attack their diagonals whether or not the square is occupied.
func (p *Position) IsSquareAttacked(square int, attacker Alliance) bool {
	if !IsValidSquare(square) {
		return false
	}
	for _, offset := range knightOffsets {
		from := square - offset
		if IsValidSquare(from) && !knightExcluded(from, offset) && p.holds(from, attacker, Knight) {
			return true
		}
	}
	for _, offset := range kingOffsets {
		from := square - offset
		if IsValidSquare(from) && !kingExcluded(from, offset) && p.holds(from, attacker, King) {
			return true
		}
	}
	for _, offset := range pawnAttackOffsets {
		delta := offset * attacker.Direction()
		from := square - delta
		if IsValidSquare(from) && !diagonalExcluded(from, delta) && p.holds(from, attacker, Pawn) {
			return true
		}
	}
	if p.rayHits(square, attacker, bishopDirections, diagonalExcluded, Bishop) {
		return true
	}
	return p.rayHits(square, attacker, rookDirections, orthogonalExcluded, Rook)
}

// rayHits walks outward from square and reports whether the first piece met
// on any ray is an attacker slider of the given kind or a queen.
func (p *Position) rayHits(square int, attacker Alliance, directions []int, excluded func(int, int) bool, slider PieceType) bool {
	for _, dir := range directions {
		cur := square
		for !excluded(cur, dir) {
			cur += dir
			if !IsValidSquare(cur) {
				break
			}
			tile := p.tiles[cur]
			if tile == nil {
				continue
			}
			if tile.Alliance == attacker && (tile.Type == slider || tile.Type == Queen) {
				return true
			}
			break
		}
	}
	return false
}

func (p *Position) holds(square int, a Alliance, kind PieceType) bool {
	tile := p.tiles[square]
	return tile != nil && tile.Alliance == a && tile.Type == kind
}

func (p *Position) pseudoLegalMoves(a Alliance) []Move {
	moves := make([]Move, 0, 48)
	for _, tile := range p.tiles {
		if tile != nil && tile.Alliance == a {
			moves = append(moves, CandidateMoves(*tile, p)...)
		}
	}
	return moves
}

// String draws the board from white's side, rank 8 first.
func (p *Position) String() string {
	var sb strings.Builder
	for sq, tile := range p.tiles {
		if tile == nil {
			sb.WriteString("-")
		} else {
			sb.WriteString(tile.String())
		}
		if (sq+1)%squaresPerRow == 0 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}
