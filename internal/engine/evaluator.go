package engine

import "github.com/benbeisheim/chessengine/internal/model"

// Evaluator scores a Position; positive values favour white, which is always
// the maximising side.
type Evaluator interface {
	Evaluate(pos *model.Position, depth int) int
}

const (
	CheckBonus     = 50
	CheckmateBonus = 10000
	DepthBonus     = 100
	CastleBonus    = 60
)

type StandardEvaluator struct{}

func (StandardEvaluator) Evaluate(pos *model.Position, depth int) int {
	return scoreSide(pos.WhiteSide(), depth) - scoreSide(pos.BlackSide(), depth)
}

func scoreSide(side *model.Side, depth int) int {
	return pieceValue(side) +
		mobility(side) +
		check(side) +
		checkmate(side, depth) +
		castled(side)
}

func pieceValue(side *model.Side) int {
	score := 0
	for _, piece := range side.ActivePieces() {
		score += piece.Type.Value()
	}
	return score
}

func mobility(side *model.Side) int {
	return side.MoveCount()
}

func check(side *model.Side) int {
	if side.Opponent().IsInCheck() {
		return CheckBonus
	}
	return 0
}

// checkmate scales with the remaining depth so that mates found nearer the
// root outscore deeper ones.
func checkmate(side *model.Side, depth int) int {
	if side.Opponent().IsInCheckmate() {
		return CheckmateBonus * depthBonus(depth)
	}
	return 0
}

func depthBonus(depth int) int {
	if depth == 0 {
		return 1
	}
	return DepthBonus * depth
}

func castled(side *model.Side) int {
	if side.IsCastled() {
		return CastleBonus
	}
	return 0
}
