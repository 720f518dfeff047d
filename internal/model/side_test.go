package model_test

import (
	"testing"

	"github.com/benbeisheim/chessengine/internal/model"
)

func TestFoolsMate(t *testing.T) {
	pos := play(t, model.NewStandardPosition(), "f2f3", "e7e5", "g2g4", "d8h4")

	white := pos.CurrentSide()
	if white.Alliance() != model.White {
		t.Fatalf("side to move: got %s want white", white.Alliance())
	}
	if !white.IsInCheck() {
		t.Fatalf("white should be in check")
	}
	if got := white.MoveCount(); got != 0 {
		t.Fatalf("white legal moves: got %d want 0: %v", got, white.LegalMoves())
	}
	if !white.IsInCheckmate() || white.IsInStalemate() {
		t.Fatalf("checkmate=%t stalemate=%t", white.IsInCheckmate(), white.IsInStalemate())
	}
	if pos.BlackSide().IsInCheck() || pos.BlackSide().IsInCheckmate() {
		t.Fatalf("black should be neither in check nor mated")
	}
}

func TestStalemate(t *testing.T) {
	pos := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	black := pos.CurrentSide()
	if black.IsInCheck() {
		t.Fatalf("black should not be in check")
	}
	if got := black.MoveCount(); got != 0 {
		t.Fatalf("black legal moves: got %d want 0: %v", got, black.LegalMoves())
	}
	if !black.IsInStalemate() || black.IsInCheckmate() {
		t.Fatalf("stalemate=%t checkmate=%t", black.IsInStalemate(), black.IsInCheckmate())
	}
}

func TestCheckIsDetected(t *testing.T) {
	pos := play(t, model.NewStandardPosition(), "e2e4", "f7f6", "d1h5")

	black := pos.CurrentSide()
	if !black.IsInCheck() {
		t.Fatalf("Qh5 should check the black king")
	}
	if black.IsInCheckmate() {
		t.Fatalf("g7g6 blocks, so this is not mate")
	}
	legal := moveSet(black.LegalMoves())
	if !legal["g7g6"] || len(legal) != 1 {
		t.Fatalf("black legal moves: got %v want only g7g6", legal)
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	pos := mustFEN(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")
	side := pos.CurrentSide()

	if moves := side.LegalMovesFrom(sq(t, "e2")); len(moves) != 0 {
		t.Fatalf("pinned bishop has legal moves: %v", moves)
	}
	bishop, _ := pos.TileAt(sq(t, "e2"))
	candidates := model.CandidateMoves(*bishop, pos)
	if len(candidates) == 0 {
		t.Fatalf("bishop should have pseudo-legal moves")
	}
	for _, move := range candidates {
		transition := side.MakeMove(move)
		if transition.Status != model.MoveIllegal {
			t.Fatalf("%s: got %s want illegal", move, transition.Status)
		}
		if transition.Position != pos {
			t.Fatalf("%s: failed transition replaced the position", move)
		}
	}
}

func TestKingCannotStepIntoAttack(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1")
	got := moveSet(pos.CurrentSide().LegalMoves())
	want := map[string]bool{"e1d2": true, "e1f1": true}
	if len(got) != len(want) {
		t.Fatalf("legal moves: got %v want %v", got, want)
	}
	for m := range want {
		if !got[m] {
			t.Fatalf("legal moves: got %v want %v", got, want)
		}
	}
}

func TestLegalMovesNeverExposeTheKing(t *testing.T) {
	for _, fen := range []string{
		model.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	} {
		pos := mustFEN(t, fen)
		side := pos.CurrentSide()
		legal := moveSet(side.LegalMoves())
		opponent := side.Alliance().Opponent()

		for _, piece := range side.ActivePieces() {
			for _, move := range model.CandidateMoves(piece, pos) {
				next, err := move.Execute()
				if err != nil {
					t.Fatalf("%s: %v", move, err)
				}
				king := next.Side(side.Alliance()).King().Square
				exposed := next.IsSquareAttacked(king, opponent)
				if exposed == legal[move.String()] {
					t.Fatalf("%s in %s: exposed=%t legal=%t", move, fen, exposed, legal[move.String()])
				}
			}
		}
	}
}

func TestMakeMoveOutOfTurn(t *testing.T) {
	pos := model.NewStandardPosition()
	black := pos.BlackSide()
	move := black.LegalMovesFrom(sq(t, "e7"))[0]

	transition := black.MakeMove(move)
	if transition.Status != model.MoveIllegal || transition.Position != pos {
		t.Fatalf("black moved out of turn: %s", transition.Status)
	}
	if transition.Status.Err() == nil {
		t.Fatalf("failed status should map to an error")
	}
}

func TestCastling(t *testing.T) {
	cases := []struct {
		name    string
		fen     string
		allowed []string
		denied  []string
	}{
		{"both sides clear", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1g1", "e1c1"}, nil},
		{"black both sides clear", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", []string{"e8g8", "e8c8"}, nil},
		{"kingside right lost", "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1", []string{"e1c1"}, []string{"e1g1"}},
		{"transit square attacked", "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1", []string{"e1c1"}, []string{"e1g1"}},
		{"in check", "4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1", nil, []string{"e1g1", "e1c1"}},
		{"path blocked", "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1", nil, []string{"e1g1", "e1c1"}},
		{"rook square attacked only", "1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1", []string{"e1c1"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			legal := moveSet(mustFEN(t, tc.fen).CurrentSide().LegalMoves())
			for _, m := range tc.allowed {
				if !legal[m] {
					t.Fatalf("%s should be legal, have %v", m, legal)
				}
			}
			for _, m := range tc.denied {
				if legal[m] {
					t.Fatalf("%s should not be legal", m)
				}
			}
		})
	}
}

func TestCastleExecution(t *testing.T) {
	pos := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	move := model.FindMove(pos, sq(t, "e1"), sq(t, "g1"))
	if move.Kind != model.MoveCastleKingside || !move.IsCastle() {
		t.Fatalf("e1g1: got %s", move.Kind)
	}
	next := play(t, pos, "e1g1")
	if got, want := next.FEN(), "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 0 1"; got != want {
		t.Fatalf("after O-O: got %s want %s", got, want)
	}
	if !next.HasCastled(model.White) || next.HasCastled(model.Black) {
		t.Fatalf("castled flags: white=%t black=%t", next.HasCastled(model.White), next.HasCastled(model.Black))
	}

	next = play(t, next, "e8c8")
	if got, want := next.FEN(), "2kr3r/8/8/8/8/8/8/R4RK1 w - - 0 1"; got != want {
		t.Fatalf("after O-O-O: got %s want %s", got, want)
	}
	if !next.BlackSide().IsCastled() {
		t.Fatalf("black should have castled")
	}
}
