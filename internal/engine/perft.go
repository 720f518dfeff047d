package engine

import "github.com/benbeisheim/chessengine/internal/model"

// Perft counts the leaf nodes of the legal move tree to depth. Promotions
// only ever produce a queen, so positions with promotions count fewer nodes
// than reference tables that include underpromotion.
func Perft(pos *model.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	side := pos.CurrentSide()
	if depth == 1 {
		return uint64(side.MoveCount())
	}
	var nodes uint64
	for _, move := range side.LegalMoves() {
		transition := side.MakeMove(move)
		if transition.Status.IsDone() {
			nodes += Perft(transition.Position, depth-1)
		}
	}
	return nodes
}

// PerftDivide splits the perft count by root move, keyed by coordinate notation.
func PerftDivide(pos *model.Position, depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	if depth <= 0 {
		return counts
	}
	side := pos.CurrentSide()
	for _, move := range side.LegalMoves() {
		transition := side.MakeMove(move)
		if transition.Status.IsDone() {
			counts[move.String()] = Perft(transition.Position, depth-1)
		}
	}
	return counts
}
