package search

import (
	"testing"
	"time"

	"github.com/cricklet/magicchess/internal/evaluation"
	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/cricklet/magicchess/internal/movegen"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pp = spew.ConfigState{Indent: "\t", DisablePointerAddresses: true, DisableCapacities: true}

func newGenerator(t *testing.T) *movegen.Generator {
	g, err := movegen.NewDefault()
	require.True(t, IsNil(err), err)
	return g
}

func newSearcher(t *testing.T, options ...SearchOption) *Searcher {
	return NewSearcher(newGenerator(t), evaluation.Evaluator{}, options...)
}

const (
	backRankMateFen = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	foolsMateFen    = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemateFen    = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	tacticalFen     = "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4"
)

func TestNegamaxAtDepthZeroIsQuiescence(t *testing.T) {
	g := newGenerator(t)
	windows := [][2]int{{-Infinity, Infinity}, {-50, 50}, {100, 300}, {-300, -100}}

	for _, fen := range []string{StartFen, tacticalFen, backRankMateFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"} {
		position := MustParseFen(fen)
		for _, window := range windows {
			c := NewSearchContext(g, evaluation.Evaluator{})
			line, score, nodes := c.Negamax(&position, window[0], window[1], 0)

			q := NewSearchContext(g, evaluation.Evaluator{})
			quiescenceScore, quiescenceNodes := q.Quiescence(&position, window[0], window[1], 1)

			assert.Empty(t, line)
			assert.Equal(t, quiescenceScore, score, fen)
			assert.Equal(t, quiescenceNodes, nodes, fen)
		}
	}
}

func TestCheckmateAndStalemateScores(t *testing.T) {
	g := newGenerator(t)

	mated := MustParseFen(foolsMateFen)
	c := NewSearchContext(g, evaluation.Evaluator{})
	line, score, nodes := c.Negamax(&mated, -Infinity, Infinity, 3)
	assert.Empty(t, line)
	assert.Equal(t, -(MateScore + 3), score)
	assert.Equal(t, 1, nodes)

	stalemate := MustParseFen(stalemateFen)
	line, score, _ = c.Negamax(&stalemate, -Infinity, Infinity, 3)
	assert.Empty(t, line)
	assert.Equal(t, 0, score)
}

func TestFindsMateInOne(t *testing.T) {
	searcher := newSearcher(t)
	result, err := searcher.Search(MustParseFen(backRankMateFen), SearchParams{Depth: Some(2)})
	require.True(t, IsNil(err), err)

	assert.Equal(t, "a1a8", result.BestMove.String(), pp.Sdump(result))
	assert.True(t, result.IsMate())
	assert.Equal(t, MateScore+1, result.Score)
	assert.Equal(t, 1, MatePlies(result.Score, result.Depth))
	assert.Equal(t, "mate 1", UCIScoreString(result.Score, result.Depth))
}

func TestFindsMateInOneWithTimeBudget(t *testing.T) {
	searcher := newSearcher(t)
	result, err := searcher.Search(MustParseFen(backRankMateFen), SearchParams{Duration: Some(2 * time.Second)})
	require.True(t, IsNil(err), err)

	assert.Equal(t, "a1a8", result.BestMove.String())
	assert.Equal(t, 1, MateMoves(result.Score, result.Depth))
	// deepening stops as soon as a mate is found
	assert.Equal(t, 2, result.Depth)
}

func TestWinsHangingQueen(t *testing.T) {
	searcher := newSearcher(t)
	position := MustParseFen("4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")

	result, err := searcher.Search(position, SearchParams{Depth: Some(3)})
	require.True(t, IsNil(err), err)
	assert.Equal(t, "d1d5", result.BestMove.String())
	assert.Greater(t, result.Score, 300)
}

func TestNoLegalMovesAtRoot(t *testing.T) {
	searcher := newSearcher(t)

	result, err := searcher.Search(MustParseFen(foolsMateFen), SearchParams{Depth: Some(3)})
	require.True(t, IsNil(err), err)
	assert.Equal(t, NoMove, result.BestMove)
	assert.Equal(t, -MateScore, result.Score)

	result, err = searcher.Search(MustParseFen(stalemateFen), SearchParams{Depth: Some(3)})
	require.True(t, IsNil(err), err)
	assert.Equal(t, NoMove, result.BestMove)
	assert.Equal(t, 0, result.Score)
}

func TestAspirationMatchesFullWindow(t *testing.T) {
	g := newGenerator(t)
	position := MustParseFen(tacticalFen)

	full := NewSearchContext(g, evaluation.Evaluator{})
	_, expected, _ := full.Negamax(&position, -Infinity, Infinity, 3)

	searcher := NewSearcher(g, evaluation.Evaluator{}, WithAspirationMargin{1})
	for _, guess := range []int{expected, expected + 400, expected - 400, Infinity - 10} {
		c := NewSearchContext(g, evaluation.Evaluator{})
		line, score, nodes := searcher.aspirationSearch(c, &position, guess, 3)
		assert.NotEmpty(t, line, "guess %v", guess)
		assert.Equal(t, expected, score, "guess %v", guess)
		assert.Greater(t, nodes, 0)
	}
}

func TestTimedSearchReportsIterations(t *testing.T) {
	depths := []int{}
	searcher := newSearcher(t, WithMaxDepth{4})

	result, err := searcher.Search(MustParseFen(StartFen), SearchParams{Duration: Some(time.Minute)},
		WithOnIteration{func(r Result) {
			depths = append(depths, r.Depth)
		}})
	require.True(t, IsNil(err), err)

	assert.Equal(t, []int{1, 2, 3, 4}, depths)
	assert.Equal(t, 4, result.Depth)
	assert.NotEqual(t, NoMove, result.BestMove)
	assert.Equal(t, result.BestMove, result.Line[0])
}

func TestTimedSearchStopsBetweenIterations(t *testing.T) {
	searcher := newSearcher(t)

	result, err := searcher.Search(MustParseFen(StartFen), SearchParams{Duration: Some(time.Nanosecond)})
	require.True(t, IsNil(err), err)
	assert.Equal(t, 1, result.Depth)
	assert.NotEqual(t, NoMove, result.BestMove)
}

func TestKillersAreFreshPerSearch(t *testing.T) {
	g := newGenerator(t)
	position := MustParseFen(tacticalFen)

	c := NewSearchContext(g, evaluation.Evaluator{})
	c.Negamax(&position, -Infinity, Infinity, 4)

	stored := 0
	for ply := range c.killers {
		if c.killers[ply][0] != NoMove {
			stored++
		}
	}
	assert.Greater(t, stored, 0)

	fresh := NewSearchContext(g, evaluation.Evaluator{})
	assert.Equal(t, [MaxPly][2]Move{}, fresh.killers)
	assert.Equal(t, [NumPieces][64]int{}, fresh.history)
}

func TestStoreKillerShiftsSlots(t *testing.T) {
	c := NewSearchContext(nil, nil)
	a := NewMove(G1, F3, WN, XX, QuietFlags)
	b := NewMove(B1, C3, WN, XX, QuietFlags)

	c.storeKiller(2, a)
	c.storeKiller(2, b)
	assert.Equal(t, [2]Move{b, a}, c.killers[2])
	assert.Equal(t, [2]Move{}, c.killers[1])
}

func TestMoveOrdering(t *testing.T) {
	g := newGenerator(t)
	// the b4 pawn can take the queen on c5 or the knight on a5, the queen on
	// c1 can take the c5 queen too
	position := MustParseFen("4k3/8/8/n1q5/1P6/8/8/2Q1K3 w - - 0 1")

	c := NewSearchContext(g, evaluation.Evaluator{})
	quiet := NewMove(E1, F1, WK, XX, QuietFlags)
	killer := NewMove(E1, D2, WK, XX, QuietFlags)
	historyMove := NewMove(E1, E2, WK, XX, QuietFlags)
	c.storeKiller(0, killer)
	c.storeHistory(historyMove, 3)

	moves := []Move{}
	g.GeneratePseudoMoves(&position, &moves)
	c.orderMoves(&position, moves, 0)

	assert.Equal(t, "b4c5", moves[0].String(), "pawn takes queen")
	assert.Equal(t, "c1c5", moves[1].String(), "queen takes queen")
	assert.Equal(t, "b4a5", moves[2].String(), "pawn takes knight")

	captures := 0
	for _, m := range moves {
		if m.IsCapture() {
			captures++
		}
	}
	assert.Equal(t, killer, moves[captures])
	assert.Equal(t, historyMove, moves[captures+1])
	assert.Less(t, c.scoreMove(&position, quiet, 0), c.scoreMove(&position, historyMove, 0))
}

func TestMvvLva(t *testing.T) {
	assert.Equal(t, 505, mvvLva[Pawn][Queen])
	assert.Equal(t, 100, mvvLva[King][Pawn])
	assert.Greater(t, mvvLva[Queen][Rook], mvvLva[Pawn][Bishop])
}

func TestSearchRecoversPanics(t *testing.T) {
	searcher := NewSearcher(newGenerator(t), EvaluatorFunc(func(*Position) int {
		panic("broken evaluator")
	}))

	_, err := searcher.Search(MustParseFen(StartFen), SearchParams{Depth: Some(2)})
	assert.False(t, IsNil(err))
	assert.Contains(t, err.Error(), "broken evaluator")
}
