package model

var (
	knightOffsets     = []int{-17, -15, -10, -6, 6, 10, 15, 17}
	kingOffsets       = []int{-9, -8, -7, -1, 1, 7, 8, 9}
	bishopDirections  = []int{-9, -7, 7, 9}
	rookDirections    = []int{-8, -1, 1, 8}
	queenDirections   = []int{-9, -8, -7, -1, 1, 7, 8, 9}
	pawnAttackOffsets = []int{7, 9}
)

// Index arithmetic alone cannot tell "off the h-file" from "onto the next
// rank", so every offset is checked against the column the piece stands on.

func knightExcluded(square, offset int) bool {
	switch {
	case firstColumn[square] && (offset == -17 || offset == -10 || offset == 6 || offset == 15):
		return true
	case secondColumn[square] && (offset == -10 || offset == 6):
		return true
	case seventhColumn[square] && (offset == -6 || offset == 10):
		return true
	case eighthColumn[square] && (offset == -15 || offset == -6 || offset == 10 || offset == 17):
		return true
	}
	return false
}

func kingExcluded(square, offset int) bool {
	return firstColumn[square] && (offset == -9 || offset == -1 || offset == 7) ||
		eighthColumn[square] && (offset == -7 || offset == 1 || offset == 9)
}

func diagonalExcluded(square, offset int) bool {
	return firstColumn[square] && (offset == -9 || offset == 7) ||
		eighthColumn[square] && (offset == -7 || offset == 9)
}

func orthogonalExcluded(square, offset int) bool {
	return firstColumn[square] && offset == -1 ||
		eighthColumn[square] && offset == 1
}

// queenExcluded covers both ray families; -8 and 8 never wrap.
func queenExcluded(square, offset int) bool {
	return diagonalExcluded(square, offset) || orthogonalExcluded(square, offset)
}

// CandidateMoves returns the pseudo-legal moves of piece on pos, without
// regard to whether they leave the mover's king attacked. Castling is not a
// piece rule; Side adds it.
func CandidateMoves(piece Piece, pos *Position) []Move {
	switch piece.Type {
	case Pawn:
		return pawnMoves(piece, pos)
	case Knight:
		return jumpMoves(piece, pos, knightOffsets, knightExcluded)
	case Bishop:
		return slideMoves(piece, pos, bishopDirections, diagonalExcluded)
	case Rook:
		return slideMoves(piece, pos, rookDirections, orthogonalExcluded)
	case Queen:
		return slideMoves(piece, pos, queenDirections, queenExcluded)
	case King:
		return jumpMoves(piece, pos, kingOffsets, kingExcluded)
	}
	return nil
}

func slideMoves(piece Piece, pos *Position, directions []int, excluded func(int, int) bool) []Move {
	moves := make([]Move, 0, 14)
	for _, dir := range directions {
		cur := piece.Square
		for !excluded(cur, dir) {
			cur += dir
			if !IsValidSquare(cur) {
				break
			}
			occupant := pos.tiles[cur]
			if occupant == nil {
				moves = append(moves, newMove(MoveNormal, pos, piece, cur, nil))
				continue
			}
			if occupant.Alliance != piece.Alliance {
				moves = append(moves, newMove(MoveCapture, pos, piece, cur, occupant))
			}
			break
		}
	}
	return moves
}

func jumpMoves(piece Piece, pos *Position, offsets []int, excluded func(int, int) bool) []Move {
	moves := make([]Move, 0, len(offsets))
	for _, offset := range offsets {
		dest := piece.Square + offset
		if !IsValidSquare(dest) || excluded(piece.Square, offset) {
			continue
		}
		occupant := pos.tiles[dest]
		switch {
		case occupant == nil:
			moves = append(moves, newMove(MoveNormal, pos, piece, dest, nil))
		case occupant.Alliance != piece.Alliance:
			moves = append(moves, newMove(MoveCapture, pos, piece, dest, occupant))
		}
	}
	return moves
}

func pawnMoves(piece Piece, pos *Position) []Move {
	moves := make([]Move, 0, 4)
	dir := piece.Alliance.Direction()

	forward := piece.Square + 8*dir
	if IsValidSquare(forward) && !pos.occupied(forward) {
		moves = append(moves, promoteIfLast(newMove(MoveNormal, pos, piece, forward, nil)))

		jump := piece.Square + 16*dir
		if !piece.HasMoved && piece.Alliance.IsPawnStartSquare(piece.Square) &&
			IsValidSquare(jump) && !pos.occupied(jump) {
			moves = append(moves, newMove(MovePawnDoubleStep, pos, piece, jump, nil))
		}
	}

	for _, offset := range pawnAttackOffsets {
		delta := offset * dir
		dest := piece.Square + delta
		if !IsValidSquare(dest) || diagonalExcluded(piece.Square, delta) {
			continue
		}
		occupant := pos.tiles[dest]
		if occupant != nil {
			if occupant.Alliance != piece.Alliance {
				moves = append(moves, promoteIfLast(newMove(MoveCapture, pos, piece, dest, occupant)))
			}
			continue
		}
		ep := pos.enPassant
		if ep != nil && ep.Alliance != piece.Alliance && ep.Square == dest-8*dir {
			moves = append(moves, newMove(MoveEnPassant, pos, piece, dest, ep))
		}
	}
	return moves
}

// promoteIfLast wraps a pawn move landing on the far rank in a promotion.
func promoteIfLast(m Move) Move {
	if !m.Piece.Alliance.IsPromotionSquare(m.To) {
		return m
	}
	return Move{
		Kind:     MovePromotion,
		Piece:    m.Piece,
		To:       m.To,
		Captured: m.Captured,
		RookTo:   -1,
		origin:   m.origin,
	}
}
