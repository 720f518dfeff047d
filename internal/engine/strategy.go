package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/benbeisheim/chessengine/internal/model"
)

var ErrUnknownStrategy = errors.New("unknown search strategy")

const (
	StrategyMinimax   = "minimax"
	StrategyAlphaBeta = "alphabeta"
)

// Result describes one completed root search.
type Result struct {
	Move            model.Move
	Score           int
	Depth           int
	BoardsEvaluated int64
	Elapsed         time.Duration
}

// Strategy picks a move for the side to move by searching to a fixed depth.
// White maximises and black minimises at every node of the tree. Among moves
// of equal value the first one in legal-move order wins.
type Strategy interface {
	Search(pos *model.Position, depth int) Result
	BestMove(pos *model.Position, depth int) model.Move
	String() string
}

func NewStrategy(name string, evaluator Evaluator) (Strategy, error) {
	switch strings.ToLower(name) {
	case StrategyMinimax:
		return NewMinimax(evaluator), nil
	case StrategyAlphaBeta, "":
		return NewAlphaBeta(evaluator), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, name)
}

// isEndGameScenario reports checkmate or stalemate for the side to move.
func isEndGameScenario(pos *model.Position) bool {
	side := pos.CurrentSide()
	return side.IsInCheckmate() || side.IsInStalemate()
}

type rootSearch struct {
	evaluator Evaluator
	evaluated int64
}

func (s *rootSearch) evaluate(pos *model.Position, depth int) int {
	s.evaluated++
	return s.evaluator.Evaluate(pos, depth)
}

// run drives the root node: it asks child for the value of every legal move
// and keeps the first strictly better one. child receives the best value
// found so far, which AlphaBeta uses as its window bound.
func (s *rootSearch) run(pos *model.Position, depth int, child func(next *model.Position, maximizing bool, best int) int) Result {
	start := time.Now()
	result := Result{Move: model.NullMove, Depth: depth}
	if isEndGameScenario(pos) {
		result.Score = s.evaluate(pos, depth)
		result.BoardsEvaluated = s.evaluated
		result.Elapsed = time.Since(start)
		return result
	}

	side := pos.CurrentSide()
	maximizing := side.Alliance() == model.White
	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}
	for _, move := range side.LegalMoves() {
		transition := side.MakeMove(move)
		if !transition.Status.IsDone() {
			continue
		}
		value := child(transition.Position, maximizing, best)
		if maximizing && value > best || !maximizing && value < best {
			best = value
			result.Move = transition.Move
		}
	}
	result.Score = best
	result.BoardsEvaluated = s.evaluated
	result.Elapsed = time.Since(start)
	return result
}

// clampDepth treats anything below one ply as a one-ply search.
func clampDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	return depth
}

func defaultEvaluator(evaluator Evaluator) Evaluator {
	if evaluator == nil {
		return StandardEvaluator{}
	}
	return evaluator
}
