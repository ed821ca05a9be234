package search

import (
	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/cricklet/magicchess/internal/movegen"
)

const (
	// MaxPly bounds the main search recursion; killers are stored per ply.
	MaxPly = 64
	// MaxQuiescencePly bounds the capture-only recursion.
	MaxQuiescencePly = 32
)

type Evaluator interface {
	// Evaluate scores pos from the side to move's perspective.
	Evaluate(pos *Position) int
}

type EvaluatorFunc func(pos *Position) int

func (f EvaluatorFunc) Evaluate(pos *Position) int {
	return f(pos)
}

// SearchContext holds the mutable state of one root search. A new context
// is made for every search and is only touched by that search's goroutine.
type SearchContext struct {
	generator *movegen.Generator
	evaluator Evaluator

	killers [MaxPly][2]Move
	history [NumPieces][64]int
}

func NewSearchContext(generator *movegen.Generator, evaluator Evaluator) *SearchContext {
	return &SearchContext{
		generator: generator,
		evaluator: evaluator,
	}
}

// Negamax is a fail-hard alpha-beta search. It returns the principal
// variation, the score, and the number of nodes visited. The variation is
// empty when no move raised alpha, including after a beta cutoff (which
// returns beta).
func (c *SearchContext) Negamax(pos *Position, alpha int, beta int, depth int) ([]Move, int, int) {
	return c.negamax(pos, alpha, beta, depth, 0)
}

func (c *SearchContext) negamax(pos *Position, alpha int, beta int, depth int, ply int) ([]Move, int, int) {
	if depth <= 0 || ply >= MaxPly {
		score, nodes := c.Quiescence(pos, alpha, beta, 1)
		return nil, score, nodes
	}

	nodes := 1

	buffer := movegen.GetMovesBuffer()
	defer movegen.ReleaseMovesBuffer(buffer)

	moves := (*[]Move)(buffer)
	c.generator.GeneratePseudoMoves(pos, moves)
	c.orderMoves(pos, *moves, ply)

	var line []Move
	legalMoves := 0

	for _, move := range *moves {
		next, ok := c.generator.MakeMove(*pos, move)
		if !ok {
			continue
		}
		legalMoves++

		childLine, childScore, childNodes := c.negamax(&next, -beta, -alpha, depth-1, ply+1)
		nodes += childNodes
		score := -childScore

		if score >= beta {
			if !move.IsCapture() {
				c.storeKiller(ply, move)
			}
			return nil, beta, nodes
		}
		if score > alpha {
			alpha = score
			line = append([]Move{move}, childLine...)
			if !move.IsCapture() {
				c.storeHistory(move, depth)
			}
		}
	}

	if legalMoves == 0 {
		if c.generator.InCheck(pos) {
			return nil, -(MateScore + depth), nodes
		}
		return nil, 0, nodes
	}

	return line, alpha, nodes
}

// Quiescence searches captures only until the position is quiet, so the
// static evaluation is never taken in the middle of an exchange.
func (c *SearchContext) Quiescence(pos *Position, alpha int, beta int, ply int) (int, int) {
	nodes := 1

	standPat := c.evaluator.Evaluate(pos)
	if standPat >= beta {
		return beta, nodes
	}
	if standPat > alpha {
		alpha = standPat
	}
	if ply >= MaxQuiescencePly {
		return alpha, nodes
	}

	buffer := movegen.GetMovesBuffer()
	defer movegen.ReleaseMovesBuffer(buffer)

	moves := (*[]Move)(buffer)
	c.generator.GeneratePseudoCaptures(pos, moves)
	c.orderMoves(pos, *moves, MinInt(ply, MaxPly-1))

	for _, move := range *moves {
		next, ok := c.generator.MakeMove(*pos, move)
		if !ok {
			continue
		}

		childScore, childNodes := c.Quiescence(&next, -beta, -alpha, ply+1)
		nodes += childNodes
		score := -childScore

		if score >= beta {
			return beta, nodes
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha, nodes
}
