package model_test

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chessengine/internal/model"
)

func TestNullMove(t *testing.T) {
	if !model.NullMove.IsNull() {
		t.Fatalf("NullMove.IsNull() = false")
	}
	if _, err := model.NullMove.Execute(); !errors.Is(err, model.ErrNullMoveExecution) {
		t.Fatalf("Execute: got %v want ErrNullMoveExecution", err)
	}
	if got := model.NullMove.String(); got != "0000" {
		t.Fatalf("String: got %q want 0000", got)
	}
	transition := model.NewStandardPosition().CurrentSide().MakeMove(model.NullMove)
	if transition.Status != model.MoveIllegal {
		t.Fatalf("MakeMove(NullMove): got %s want illegal", transition.Status)
	}
}

func TestFindMove(t *testing.T) {
	pos := model.NewStandardPosition()

	move := model.FindMove(pos, sq(t, "e2"), sq(t, "e4"))
	if move.Kind != model.MovePawnDoubleStep || move.Origin() != pos {
		t.Fatalf("e2e4: got %s from %p", move.Kind, move.Origin())
	}
	if move.Piece.Type != model.Pawn || move.Piece.Alliance != model.White {
		t.Fatalf("e2e4 moves %+v", move.Piece)
	}

	for _, tc := range [][2]string{{"e2", "e5"}, {"e7", "e5"}, {"d4", "d5"}, {"g1", "g3"}} {
		if m := model.FindMove(pos, sq(t, tc[0]), sq(t, tc[1])); !m.IsNull() {
			t.Fatalf("%s%s should not be found, got %s", tc[0], tc[1], m)
		}
	}
	if m := model.FindMove(pos, -1, 99); !m.IsNull() {
		t.Fatalf("out of range squares should give the null move, got %s", m)
	}
	if m := model.FindMove(nil, 52, 36); !m.IsNull() {
		t.Fatalf("nil position should give the null move, got %s", m)
	}
}

func TestMoveEquality(t *testing.T) {
	pos := model.NewStandardPosition()
	a := model.FindMove(pos, sq(t, "g1"), sq(t, "f3"))
	b := model.FindMove(pos, sq(t, "g1"), sq(t, "f3"))
	c := model.FindMove(pos, sq(t, "g1"), sq(t, "h3"))
	if !a.Equals(b) {
		t.Fatalf("%s should equal %s", a, b)
	}
	if a.Equals(c) {
		t.Fatalf("%s should not equal %s", a, c)
	}

	// Equality ignores the kind: a promotion equals its underlying move.
	promo := model.FindMove(mustFEN(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1"), sq(t, "a7"), sq(t, "a8"))
	if promo.Kind != model.MovePromotion {
		t.Fatalf("a7a8: got %s want promotion", promo.Kind)
	}
	if inner := promo.Underlying(); inner.Kind != model.MoveNormal || !inner.Equals(promo) {
		t.Fatalf("underlying of %s: %s", promo, inner.Kind)
	}
}

func TestPromotion(t *testing.T) {
	cases := []struct {
		name     string
		fen      string
		move     string
		captured bool
		san      string
	}{
		{"white push", "8/P6k/8/8/8/8/8/K7 w - - 0 1", "a7a8", false, "a7a8q"},
		{"white capture", "1r5k/P7/8/8/8/8/8/K7 w - - 0 1", "a7b8", true, "a7b8q"},
		{"black push", "k7/8/8/8/8/8/6Kp/8 b - - 0 1", "h2h1", false, "h2h1q"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustFEN(t, tc.fen)
			from, to := sq(t, tc.move[:2]), sq(t, tc.move[2:])
			move := model.FindMove(pos, from, to)
			if move.Kind != model.MovePromotion {
				t.Fatalf("%s: got %s want promotion", tc.move, move.Kind)
			}
			if move.IsAttack() != tc.captured {
				t.Fatalf("%s: IsAttack = %t", tc.move, move.IsAttack())
			}
			if got := move.String(); got != tc.san {
				t.Fatalf("String: got %q want %q", got, tc.san)
			}

			next := play(t, pos, tc.move)
			piece, _ := next.TileAt(to)
			if piece == nil || piece.Type != model.Queen || piece.Alliance != pos.ToMove() {
				t.Fatalf("%s: landed %+v want a %s queen", tc.move, piece, pos.ToMove())
			}
			if vacated, _ := next.TileAt(from); vacated != nil {
				t.Fatalf("%s: origin still holds %+v", tc.move, vacated)
			}
		})
	}
}

func TestEnPassantWindow(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/pppppppp/8/4P3/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")

	pos = play(t, pos, "d7d5")
	ep := pos.EnPassantPawn()
	if ep == nil || ep.Square != sq(t, "d5") || ep.Alliance != model.Black {
		t.Fatalf("en-passant pawn after d7d5: %+v", ep)
	}
	if got := pos.FEN(); got != "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 1" {
		t.Fatalf("FEN after d7d5: %s", got)
	}

	capture := model.FindMove(pos, sq(t, "e5"), sq(t, "d6"))
	if capture.Kind != model.MoveEnPassant {
		t.Fatalf("e5d6: got %s want en-passant", capture.Kind)
	}
	if capture.Captured == nil || capture.Captured.Square != sq(t, "d5") {
		t.Fatalf("e5d6 captures %+v", capture.Captured)
	}
	taken := play(t, pos, "e5d6")
	if p, _ := taken.TileAt(sq(t, "d5")); p != nil {
		t.Fatalf("captured pawn still on d5: %+v", p)
	}
	if p, _ := taken.TileAt(sq(t, "d6")); p == nil || p.Alliance != model.White || p.Type != model.Pawn {
		t.Fatalf("d6 after capture: %+v", p)
	}
	if taken.EnPassantPawn() != nil {
		t.Fatalf("en-passant pawn survived a capture")
	}

	// One ply later the window is closed.
	later := play(t, pos, "g1f3", "g8f6")
	if later.EnPassantPawn() != nil {
		t.Fatalf("en-passant pawn survived two plies")
	}
	if m := model.FindMove(later, sq(t, "e5"), sq(t, "d6")); !m.IsNull() {
		t.Fatalf("e5d6 is still legal after the window closed: %s", m.Kind)
	}
}

func TestPawnDoubleStepNeedsClearPath(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1")
	if m := model.FindMove(pos, sq(t, "e2"), sq(t, "e4")); !m.IsNull() {
		t.Fatalf("e2e4 jumped over a blocker")
	}
	if m := model.FindMove(pos, sq(t, "e2"), sq(t, "e3")); !m.IsNull() {
		t.Fatalf("e2e3 moved onto an occupied square")
	}

	// A pawn that has moved back onto its start rank cannot double-step.
	moved := model.Piece{Type: model.Pawn, Alliance: model.White, Square: sq(t, "a2"), HasMoved: true}
	pos, err := model.NewPosition([]model.Piece{
		{Type: model.King, Alliance: model.White, Square: sq(t, "e1")},
		{Type: model.King, Alliance: model.Black, Square: sq(t, "e8")},
		moved,
	}, model.White, nil)
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	if m := model.FindMove(pos, sq(t, "a2"), sq(t, "a4")); !m.IsNull() {
		t.Fatalf("moved pawn double-stepped")
	}
}

func TestEdgeWrapExclusion(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		from  string
		count int
	}{
		{"knight in the corner", "4k3/8/8/8/8/8/8/N3K3 w - - 0 1", "a1", 2},
		{"knight on the h-file", "4k3/8/8/8/7N/8/8/4K3 w - - 0 1", "h4", 4},
		{"bishop on the long diagonal", "4k3/8/8/8/8/8/8/B3K3 w - - 0 1", "a1", 7},
		{"bishop on the h-file", "4k3/8/7B/8/8/8/8/4K3 w - - 0 1", "h6", 7},
		{"rook on the a-file", "4k3/8/8/R7/8/8/8/4K3 w - - 0 1", "a5", 14},
		{"king in the corner", "4k3/8/8/8/8/8/8/K7 w - - 0 1", "a1", 3},
		{"pawn on the h-file", "4k3/8/8/8/8/8/7P/4K3 w - - 0 1", "h2", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustFEN(t, tc.fen)
			piece, _ := pos.TileAt(sq(t, tc.from))
			if got := len(model.CandidateMoves(*piece, pos)); got != tc.count {
				t.Fatalf("got %d candidate moves want %d", got, tc.count)
			}
		})
	}
}
