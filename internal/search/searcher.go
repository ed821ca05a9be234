package search

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/cricklet/magicchess/internal/movegen"
)

const (
	DefaultAspirationMargin = 50
	DefaultDepth            = 6
	MaxDepth                = 32
)

type Result struct {
	BestMove Move
	Line     []Move
	Score    int
	Depth    int
	Nodes    int
	Elapsed  time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("depth %v score %v nodes %v time %v pv %v",
		r.Depth, ScoreString(r.Score, r.Depth), humanize.Comma(int64(r.Nodes)),
		r.Elapsed.Round(time.Millisecond), MovesString(r.Line))
}

func (r Result) IsMate() bool {
	return IsMate(r.Score)
}

// NodesPerSecond is zero until some time has elapsed.
func (r Result) NodesPerSecond() int {
	if r.Elapsed <= 0 {
		return 0
	}
	return int(float64(r.Nodes) / r.Elapsed.Seconds())
}

type Searcher struct {
	generator *movegen.Generator
	evaluator Evaluator
	logger    Logger

	aspirationMargin int
	defaultDepth     int
	maxDepth         int
	onIteration      func(Result)
}

type SearchOption interface {
	apply(s *Searcher)
}

type WithLogger struct {
	Logger Logger
}

func (o WithLogger) apply(s *Searcher) {
	s.logger = o.Logger
}

type WithAspirationMargin struct {
	Margin int
}

func (o WithAspirationMargin) apply(s *Searcher) {
	s.aspirationMargin = MaxInt(o.Margin, 1)
}

// WithDefaultDepth is used when the search params name neither a depth
// nor a duration.
type WithDefaultDepth struct {
	Depth int
}

func (o WithDefaultDepth) apply(s *Searcher) {
	s.defaultDepth = MinInt(MaxInt(o.Depth, 1), MaxPly-1)
}

type WithMaxDepth struct {
	Depth int
}

func (o WithMaxDepth) apply(s *Searcher) {
	s.maxDepth = MinInt(MaxInt(o.Depth, 1), MaxPly-1)
}

// WithOnIteration is called on the search goroutine after every completed
// iteration of a timed search, and once after a fixed depth search.
type WithOnIteration struct {
	Callback func(Result)
}

func (o WithOnIteration) apply(s *Searcher) {
	s.onIteration = o.Callback
}

func NewSearcher(generator *movegen.Generator, evaluator Evaluator, options ...SearchOption) *Searcher {
	s := &Searcher{
		generator:        generator,
		evaluator:        evaluator,
		logger:           SilentLogger,
		aspirationMargin: DefaultAspirationMargin,
		defaultDepth:     DefaultDepth,
		maxDepth:         MaxDepth,
		onIteration:      func(Result) {},
	}
	for _, option := range options {
		option.apply(s)
	}
	return s
}

// Search runs one search on a dedicated goroutine and blocks until it is
// done. Extra options apply to this search only.
func (s *Searcher) Search(pos Position, params SearchParams, options ...SearchOption) (Result, Error) {
	searcher := *s
	for _, option := range options {
		option.apply(&searcher)
	}

	var result Result

	group := errgroup.Group{}
	group.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = Errorf("search of %v panicked: %v\n%s", pos.Fen(), r, debug.Stack())
			}
		}()
		result = searcher.run(pos, params)
		return nil
	})
	if err := group.Wait(); err != nil {
		return Result{}, Wrap(err)
	}

	return result, NilError
}

func (s *Searcher) run(pos Position, params SearchParams) Result {
	start := time.Now()
	c := NewSearchContext(s.generator, s.evaluator)

	if !s.generator.HasLegalMove(&pos) {
		score := 0
		if s.generator.InCheck(&pos) {
			score = -MateScore
		}
		return Result{Score: score, Elapsed: time.Since(start)}
	}

	if params.Duration.HasValue() {
		return s.deepen(c, &pos, start, params.Duration.Value())
	}

	depth := MinInt(MaxInt(params.Depth.ValueOr(s.defaultDepth), 1), MaxPly-1)
	line, score, nodes := c.Negamax(&pos, -Infinity, Infinity, depth)
	result := newResult(line, score, depth, nodes, start)
	s.report(result)
	return result
}

func newResult(line []Move, score int, depth int, nodes int, start time.Time) Result {
	result := Result{
		Line:    line,
		Score:   score,
		Depth:   depth,
		Nodes:   nodes,
		Elapsed: time.Since(start),
	}
	if len(line) > 0 {
		result.BestMove = line[0]
	}
	return result
}

func (s *Searcher) report(result Result) {
	s.logger.Debug().
		Int("depth", result.Depth).
		Str("score", ScoreString(result.Score, result.Depth)).
		Str("nodes", humanize.Comma(int64(result.Nodes))).
		Dur("elapsed", result.Elapsed).
		Str("pv", MovesString(result.Line)).
		Msg("search iteration")
	s.onIteration(result)
}

// deepen runs iterative deepening until the budget is spent. The clock is
// only checked between iterations, so the last iteration may overrun.
func (s *Searcher) deepen(c *SearchContext, pos *Position, start time.Time, budget time.Duration) Result {
	line, score, nodes := c.Negamax(pos, -Infinity, Infinity, 1)
	result := newResult(line, score, 1, nodes, start)
	s.report(result)

	for depth := 2; depth <= s.maxDepth; depth++ {
		if time.Since(start) >= budget || IsMate(result.Score) {
			break
		}

		line, score, iterationNodes := s.aspirationSearch(c, pos, result.Score, depth)
		nodes += iterationNodes

		result = newResult(line, score, depth, nodes, start)
		s.report(result)
	}

	return result
}

// aspirationSearch searches a narrow window around the previous score. An
// empty line means the true score fell outside the window; the failing
// side's margin doubles and the same depth is searched again.
func (s *Searcher) aspirationSearch(c *SearchContext, pos *Position, previous int, depth int) ([]Move, int, int) {
	alphaMargin, betaMargin := s.aspirationMargin, s.aspirationMargin
	nodes := 0

	for {
		alpha := clampScore(previous - alphaMargin)
		beta := clampScore(previous + betaMargin)

		line, score, windowNodes := c.Negamax(pos, alpha, beta, depth)
		nodes += windowNodes

		if len(line) > 0 || (alpha == -Infinity && beta == Infinity) {
			return line, score, nodes
		}

		if score <= alpha {
			alphaMargin = MinInt(alphaMargin*2, 2*Infinity)
		} else {
			betaMargin = MinInt(betaMargin*2, 2*Infinity)
		}
		s.logger.Debug().
			Int("depth", depth).
			Int("alpha", alpha).
			Int("beta", beta).
			Msg("aspiration window failed")
	}
}
