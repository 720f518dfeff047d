// Package notation renders engine moves for people.
package notation

import (
	"fmt"

	"github.com/benbeisheim/chessengine/internal/model"
	"github.com/notnil/chess"
)

// SAN renders move in standard algebraic notation against the position it
// was generated from, e.g. "Nf3", "exd6", "O-O", "e8=Q+".
func SAN(move model.Move) (string, error) {
	origin := move.Origin()
	if move.IsNull() || origin == nil {
		return "", model.ErrNullMoveExecution
	}
	fen, err := chess.FEN(origin.FEN())
	if err != nil {
		return "", fmt.Errorf("loading position %q: %w", origin.FEN(), err)
	}
	pos := chess.NewGame(fen).Position()
	decoded, err := chess.UCINotation{}.Decode(pos, move.String())
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", move, err)
	}
	// Only generated moves carry the check tag that decides "+" and "#".
	for _, valid := range pos.ValidMoves() {
		if valid.S1() == decoded.S1() && valid.S2() == decoded.S2() && valid.Promo() == decoded.Promo() {
			return chess.AlgebraicNotation{}.Encode(pos, valid), nil
		}
	}
	return "", fmt.Errorf("%s is not legal in %s: %w", move, origin.FEN(), model.ErrIllegalMove)
}

// SANOrCoordinate falls back to coordinate notation when SAN cannot be produced.
func SANOrCoordinate(move model.Move) string {
	san, err := SAN(move)
	if err != nil {
		return move.String()
	}
	return san
}
