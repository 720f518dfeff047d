package model_test

import (
	"testing"

	"github.com/benbeisheim/chessengine/internal/model"
)

func mustFEN(t *testing.T, fen string) *model.Position {
	t.Helper()
	pos, err := model.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func sq(t *testing.T, name string) int {
	t.Helper()
	square, err := model.ParseSquare(name)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", name, err)
	}
	return square
}

// play applies a sequence of coordinate moves such as "e2e4" and fails the
// test if any of them is not legal.
func play(t *testing.T, pos *model.Position, moves ...string) *model.Position {
	t.Helper()
	for _, uci := range moves {
		move := model.FindMove(pos, sq(t, uci[:2]), sq(t, uci[2:4]))
		if move.IsNull() {
			t.Fatalf("%s is not legal in %s", uci, pos.FEN())
		}
		transition := pos.CurrentSide().MakeMove(move)
		if !transition.Status.IsDone() {
			t.Fatalf("%s: %s", uci, transition.Status)
		}
		pos = transition.Position
	}
	return pos
}

func moveSet(moves []model.Move) map[string]bool {
	set := make(map[string]bool, len(moves))
	for _, m := range moves {
		set[m.String()] = true
	}
	return set
}
