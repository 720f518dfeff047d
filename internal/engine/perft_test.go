package engine

import (
	"testing"

	"github.com/benbeisheim/chessengine/internal/model"
)

func TestPerft(t *testing.T) {
	cases := []struct {
		name   string
		fen    string
		counts []uint64
	}{
		{"initial", model.FENStartPos, []uint64{20, 400, 8902}},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []uint64{48, 2039}},
		{"rook endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustFEN(t, tc.fen)
			for i, want := range tc.counts {
				depth := i + 1
				if testing.Short() && depth > 2 {
					break
				}
				if got := Perft(pos, depth); got != want {
					t.Fatalf("perft(%d): got %d want %d", depth, got, want)
				}
			}
		})
	}
}

func TestPerftAfterOpeningMoves(t *testing.T) {
	// Reference depth-1 counts for black after each white opening move.
	want := map[string]uint64{"e2e4": 20, "d2d4": 20, "g1f3": 20, "a2a3": 20}
	pos := model.NewStandardPosition()
	for uci, count := range want {
		from, _ := model.ParseSquare(uci[:2])
		to, _ := model.ParseSquare(uci[2:])
		transition := pos.CurrentSide().MakeMove(model.FindMove(pos, from, to))
		if !transition.Status.IsDone() {
			t.Fatalf("%s: %s", uci, transition.Status)
		}
		if got := Perft(transition.Position, 1); got != count {
			t.Fatalf("after %s: got %d want %d", uci, got, count)
		}
	}
}

func TestPerftDivide(t *testing.T) {
	pos := model.NewStandardPosition()
	div := PerftDivide(pos, 2)
	if len(div) != 20 {
		t.Fatalf("root moves: got %d want 20", len(div))
	}
	var total uint64
	for move, n := range div {
		if n != 20 {
			t.Fatalf("%s: got %d want 20", move, n)
		}
		total += n
	}
	if total != Perft(pos, 2) {
		t.Fatalf("divide total %d disagrees with perft", total)
	}
	if got := PerftDivide(pos, 0); len(got) != 0 {
		t.Fatalf("depth 0 divide: %v", got)
	}
	if got := Perft(pos, 0); got != 1 {
		t.Fatalf("perft(0): got %d want 1", got)
	}
}

func BenchmarkPerft3(b *testing.B) {
	pos := model.NewStandardPosition()
	for i := 0; i < b.N; i++ {
		Perft(pos, 3)
	}
}
