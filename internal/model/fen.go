package model

import (
	"fmt"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieces = map[rune]PieceType{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
}

// ParseFEN builds a Position from a FEN string. Castling rights decide the
// HasMoved flag of kings and corner rooks; pawns off their starting rank count
// as moved. The halfmove and fullmove fields are accepted but not kept.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: expected at least 4 fields, got %d", ErrInvalidFEN, len(fields))
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	var pieces []Piece
	for row, rank := range ranks {
		col := 0
		for _, ch := range rank {
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			lower := ch
			alliance := Black
			if ch >= 'A' && ch <= 'Z' {
				lower = ch + ('a' - 'A')
				alliance = White
			}
			kind, ok := fenPieces[lower]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			if col >= squaresPerRow {
				return nil, fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, 8-row)
			}
			pieces = append(pieces, Piece{Type: kind, Alliance: alliance, Square: row*squaresPerRow + col})
			col++
		}
		if col != squaresPerRow {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, 8-row, col)
		}
	}

	var toMove Alliance
	switch fields[1] {
	case "w":
		toMove = White
	case "b":
		toMove = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}

	rights := fields[2]
	if rights != "-" && strings.Trim(rights, "KQkq") != "" {
		return nil, fmt.Errorf("%w: castling field %q", ErrInvalidFEN, rights)
	}
	for i := range pieces {
		pieces[i].HasMoved = hasMovedFromFEN(pieces[i], rights)
	}

	var enPassant *Piece
	if fields[3] != "-" {
		target, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en-passant field: %w", ErrInvalidFEN, err)
		}
		pawn := toMove.Opponent()
		enPassant = &Piece{Type: Pawn, Alliance: pawn, Square: target + 8*pawn.Direction(), HasMoved: true}
	}

	pos, err := NewPosition(pieces, toMove, enPassant)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
	}
	return pos, nil
}

func hasMovedFromFEN(p Piece, rights string) bool {
	switch p.Type {
	case Pawn:
		return !p.Alliance.IsPawnStartSquare(p.Square)
	case King:
		for _, c := range castleLayouts[p.Alliance] {
			if p.Square == c.kingFrom && strings.ContainsRune(rights, castleRight(p.Alliance, c.kind)) {
				return false
			}
		}
		return true
	case Rook:
		for _, c := range castleLayouts[p.Alliance] {
			if p.Square == c.rookFrom && strings.ContainsRune(rights, castleRight(p.Alliance, c.kind)) {
				return false
			}
		}
		return true
	}
	return false
}

func castleRight(a Alliance, kind MoveKind) rune {
	r := 'k'
	if kind == MoveCastleQueenside {
		r = 'q'
	}
	if a == White {
		r -= 'a' - 'A'
	}
	return r
}

// FEN encodes the position. Castling rights are derived from unmoved kings
// and corner rooks; the move clocks are always written as "0 1".
func (p *Position) FEN() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < squaresPerRow; col++ {
			tile := p.tiles[row*squaresPerRow+col]
			if tile == nil {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteString(tile.String())
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.toMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	rights := ""
	for _, a := range []Alliance{White, Black} {
		for _, c := range castleLayouts[a] {
			king, rook := p.tiles[c.kingFrom], p.tiles[c.rookFrom]
			if king != nil && king.Type == King && king.Alliance == a && !king.HasMoved &&
				rook != nil && rook.Type == Rook && rook.Alliance == a && !rook.HasMoved {
				rights += string(castleRight(a, c.kind))
			}
		}
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	sb.WriteByte(' ')
	if p.enPassant != nil {
		sb.WriteString(SquareName(p.enPassant.Square - 8*p.enPassant.Alliance.Direction()))
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(" 0 1")
	return sb.String()
}
