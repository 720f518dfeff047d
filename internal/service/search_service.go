package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbeisheim/chessengine/internal/engine"
	"github.com/benbeisheim/chessengine/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

var ErrSearchTimeout = errors.New("search timed out")

type SearchOptions struct {
	DefaultDepth int
	MaxDepth     int
	Strategy     string
	Timeout      time.Duration
}

// SearchRequest selects depth and strategy for one search. Zero values fall
// back to the service defaults.
type SearchRequest struct {
	Depth    int
	Strategy string
}

type SearchOutcome struct {
	Result   engine.Result
	Strategy string
	Err      error
}

// SearchService runs engine searches off the caller's goroutine. A started
// search always runs to completion; callers that stop waiting simply never
// read its outcome.
type SearchService struct {
	opts      SearchOptions
	evaluator engine.Evaluator
}

func NewSearchService(opts SearchOptions) *SearchService {
	if opts.DefaultDepth < 1 {
		opts.DefaultDepth = 1
	}
	if opts.MaxDepth < opts.DefaultDepth {
		opts.MaxDepth = opts.DefaultDepth
	}
	if opts.Strategy == "" {
		opts.Strategy = engine.StrategyAlphaBeta
	}
	return &SearchService{opts: opts, evaluator: engine.StandardEvaluator{}}
}

func (s *SearchService) Depth(requested int) int {
	switch {
	case requested <= 0:
		return s.opts.DefaultDepth
	case requested > s.opts.MaxDepth:
		return s.opts.MaxDepth
	}
	return requested
}

func (s *SearchService) Strategy(name string) (engine.Strategy, error) {
	if name == "" {
		name = s.opts.Strategy
	}
	return engine.NewStrategy(name, s.evaluator)
}

// RequestMove starts a search for the side to move in pos and returns a
// channel that receives exactly one outcome.
func (s *SearchService) RequestMove(ctx context.Context, pos *model.Position, req SearchRequest) <-chan SearchOutcome {
	out := make(chan SearchOutcome, 1)
	strategy, err := s.Strategy(req.Strategy)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		out <- SearchOutcome{Err: err}
		close(out)
		return out
	}

	depth := s.Depth(req.Depth)
	go func() {
		defer close(out)
		log.Debugf("thinking with depth %d (%s) for %s", depth, strategy, pos.ToMove())
		result := strategy.Search(pos, depth)
		log.Infof("%s depth %d: %s score %d, %d boards evaluated in %s",
			strategy, depth, result.Move, result.Score, result.BoardsEvaluated, result.Elapsed)
		out <- SearchOutcome{Result: result, Strategy: strategy.String()}
	}()
	return out
}

// BestMove waits for a search to finish, for ctx to end or for the configured
// timeout, whichever comes first.
func (s *SearchService) BestMove(ctx context.Context, pos *model.Position, req SearchRequest) (SearchOutcome, error) {
	return s.Await(ctx, s.RequestMove(ctx, pos, req))
}

// Await waits on a channel returned by RequestMove. When it gives up with
// ErrSearchTimeout the outcome is still delivered to results later, so a
// caller that cannot do without a move may keep reading.
func (s *SearchService) Await(ctx context.Context, results <-chan SearchOutcome) (SearchOutcome, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	select {
	case outcome := <-results:
		return outcome, s.waitError(outcome.Err)
	case <-ctx.Done():
		return SearchOutcome{}, s.waitError(ctx.Err())
	}
}

func (s *SearchService) waitError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrSearchTimeout, s.opts.Timeout)
	}
	return err
}
