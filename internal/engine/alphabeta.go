package engine

import (
	"math"

	"github.com/benbeisheim/chessengine/internal/model"
)

// AlphaBeta returns the same move and score as Minimax for the same position
// and depth while visiting fewer nodes.
type AlphaBeta struct {
	evaluator Evaluator
}

func NewAlphaBeta(evaluator Evaluator) *AlphaBeta {
	return &AlphaBeta{evaluator: defaultEvaluator(evaluator)}
}

func (a *AlphaBeta) String() string {
	return StrategyAlphaBeta
}

func (a *AlphaBeta) BestMove(pos *model.Position, depth int) model.Move {
	return a.Search(pos, depth).Move
}

func (a *AlphaBeta) Search(pos *model.Position, depth int) Result {
	depth = clampDepth(depth)
	s := &alphaBetaSearch{rootSearch{evaluator: a.evaluator}}
	return s.run(pos, depth, func(next *model.Position, maximizing bool, best int) int {
		// A child can only replace the current best by beating it, so the
		// best value so far bounds the window on that side.
		if maximizing {
			return s.min(next, depth-1, best, math.MaxInt)
		}
		return s.max(next, depth-1, math.MinInt, best)
	})
}

type alphaBetaSearch struct {
	rootSearch
}

func (s *alphaBetaSearch) min(pos *model.Position, depth, alpha, beta int) int {
	if depth <= 0 || isEndGameScenario(pos) {
		return s.evaluate(pos, depth)
	}
	lowest := beta
	side := pos.CurrentSide()
	for _, move := range side.LegalMoves() {
		transition := side.MakeMove(move)
		if !transition.Status.IsDone() {
			continue
		}
		if value := s.max(transition.Position, depth-1, alpha, lowest); value < lowest {
			lowest = value
		}
		if lowest <= alpha {
			break
		}
	}
	return lowest
}

func (s *alphaBetaSearch) max(pos *model.Position, depth, alpha, beta int) int {
	if depth <= 0 || isEndGameScenario(pos) {
		return s.evaluate(pos, depth)
	}
	highest := alpha
	side := pos.CurrentSide()
	for _, move := range side.LegalMoves() {
		transition := side.MakeMove(move)
		if !transition.Status.IsDone() {
			continue
		}
		if value := s.min(transition.Position, depth-1, highest, beta); value > highest {
			highest = value
		}
		if highest >= beta {
			break
		}
	}
	return highest
}
