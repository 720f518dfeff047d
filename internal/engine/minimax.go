package engine

import (
	"math"

	"github.com/benbeisheim/chessengine/internal/model"
)

type Minimax struct {
	evaluator Evaluator
}

func NewMinimax(evaluator Evaluator) *Minimax {
	return &Minimax{evaluator: defaultEvaluator(evaluator)}
}

func (m *Minimax) String() string {
	return StrategyMinimax
}

func (m *Minimax) BestMove(pos *model.Position, depth int) model.Move {
	return m.Search(pos, depth).Move
}

func (m *Minimax) Search(pos *model.Position, depth int) Result {
	depth = clampDepth(depth)
	s := &minimaxSearch{rootSearch{evaluator: m.evaluator}}
	return s.run(pos, depth, func(next *model.Position, maximizing bool, _ int) int {
		if maximizing {
			return s.min(next, depth-1)
		}
		return s.max(next, depth-1)
	})
}

type minimaxSearch struct {
	rootSearch
}

func (s *minimaxSearch) min(pos *model.Position, depth int) int {
	if depth <= 0 || isEndGameScenario(pos) {
		return s.evaluate(pos, depth)
	}
	lowest := math.MaxInt
	side := pos.CurrentSide()
	for _, move := range side.LegalMoves() {
		transition := side.MakeMove(move)
		if !transition.Status.IsDone() {
			continue
		}
		if value := s.max(transition.Position, depth-1); value < lowest {
			lowest = value
		}
	}
	return lowest
}

func (s *minimaxSearch) max(pos *model.Position, depth int) int {
	if depth <= 0 || isEndGameScenario(pos) {
		return s.evaluate(pos, depth)
	}
	highest := math.MinInt
	side := pos.CurrentSide()
	for _, move := range side.LegalMoves() {
		transition := side.MakeMove(move)
		if !transition.Status.IsDone() {
			continue
		}
		if value := s.min(transition.Position, depth-1); value > highest {
			highest = value
		}
	}
	return highest
}
