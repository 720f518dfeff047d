package model

import (
	"fmt"
	"strings"
)

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

// Value is the fixed material worth of a piece kind.
func (p PieceType) Value() int {
	switch p {
	case Pawn:
		return 100
	case Knight:
		return 300
	case Bishop:
		return 300
	case Rook:
		return 500
	case Queen:
		return 900
	case King:
		return 10000
	}
	return 0
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

const (
	NumSquares    = 64
	squaresPerRow = 8
)

// Piece is an immutable value; moving a piece yields a new Piece.
type Piece struct {
	Type     PieceType `json:"type"`
	Alliance Alliance  `json:"color"`
	Square   int       `json:"square"`
	HasMoved bool      `json:"hasMoved"`
}

func (p Piece) moveTo(square int) Piece {
	return Piece{Type: p.Type, Alliance: p.Alliance, Square: square, HasMoved: true}
}

// SameAs reports whether two pieces are the same piece identity: kind, side
// and square. HasMoved does not take part.
func (p Piece) SameAs(o Piece) bool {
	return p.Type == o.Type && p.Alliance == o.Alliance && p.Square == o.Square
}

func (p Piece) String() string {
	n := p.Type.getPieceNotation()
	if p.Alliance == Black {
		return strings.ToLower(n)
	}
	return n
}

// Square indices run row-major from a8 (0) to h1 (63).
var (
	firstColumn   = initColumn(0)
	secondColumn  = initColumn(1)
	seventhColumn = initColumn(6)
	eighthColumn  = initColumn(7)

	firstRow   = initRow(0)
	secondRow  = initRow(1)
	seventhRow = initRow(6)
	eighthRow  = initRow(7)
)

func initColumn(column int) [NumSquares]bool {
	var mask [NumSquares]bool
	for sq := column; sq < NumSquares; sq += squaresPerRow {
		mask[sq] = true
	}
	return mask
}

func initRow(row int) [NumSquares]bool {
	var mask [NumSquares]bool
	for sq := row * squaresPerRow; sq < (row+1)*squaresPerRow; sq++ {
		mask[sq] = true
	}
	return mask
}

func IsValidSquare(square int) bool {
	return square >= 0 && square < NumSquares
}

// SquareName renders a square index in algebraic form, e.g. 52 -> "e2".
func SquareName(square int) string {
	if !IsValidSquare(square) {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+square%squaresPerRow, 8-square/squaresPerRow)
}

// ParseSquare is the inverse of SquareName.
func ParseSquare(name string) (int, error) {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return -1, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	col := int(name[0] - 'a')
	row := 8 - int(name[1]-'0')
	return row*squaresPerRow + col, nil
}

var backRank = [squaresPerRow]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardPosition returns the canonical starting arrangement with white to move.
func NewStandardPosition() *Position {
	pieces := make([]Piece, 0, 32)
	for col := 0; col < squaresPerRow; col++ {
		pieces = append(pieces,
			Piece{Type: backRank[col], Alliance: Black, Square: col},
			Piece{Type: Pawn, Alliance: Black, Square: squaresPerRow + col},
			Piece{Type: Pawn, Alliance: White, Square: 6*squaresPerRow + col},
			Piece{Type: backRank[col], Alliance: White, Square: 7*squaresPerRow + col},
		)
	}
	pos, err := NewPosition(pieces, White, nil)
	if err != nil {
		panic(err)
	}
	return pos
}
