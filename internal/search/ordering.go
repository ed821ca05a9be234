package search

import (
	"sort"

	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
)

// mvvLva is indexed [attacker][victim]: the most valuable victim first,
// then the least valuable attacker.
var mvvLva = func() [6][6]int {
	result := [6][6]int{}
	for attacker := range result {
		for victim := range result[attacker] {
			result[attacker][victim] = 100*(victim+1) + 5 - attacker
		}
	}
	return result
}()

const (
	_captureScore    = 10000
	_firstKiller     = 9000
	_secondKiller    = 8000
	_maxHistoryScore = _secondKiller - 1
)

func victimType(pos *Position, move Move) PieceType {
	if move.IsEnPassant() {
		return Pawn
	}
	return pos.PieceAt(move.Target()).PieceType()
}

func (c *SearchContext) scoreMove(pos *Position, move Move, ply int) int {
	if move.IsCapture() {
		victim := victimType(pos, move)
		if victim == InvalidPiece {
			return _captureScore
		}
		return _captureScore + mvvLva[move.Piece().PieceType()][victim]
	}
	if c.killers[ply][0] == move {
		return _firstKiller
	}
	if c.killers[ply][1] == move {
		return _secondKiller
	}
	return MinInt(c.history[move.Piece()][move.Target()], _maxHistoryScore)
}

type scoredMoves struct {
	moves  []Move
	scores []int
}

func (s scoredMoves) Len() int           { return len(s.moves) }
func (s scoredMoves) Less(i, j int) bool { return s.scores[i] > s.scores[j] }
func (s scoredMoves) Swap(i, j int) {
	s.moves[i], s.moves[j] = s.moves[j], s.moves[i]
	s.scores[i], s.scores[j] = s.scores[j], s.scores[i]
}

// orderMoves sorts moves best first. Equal scores keep generation order.
func (c *SearchContext) orderMoves(pos *Position, moves []Move, ply int) {
	scores := make([]int, len(moves))
	for i, move := range moves {
		scores[i] = c.scoreMove(pos, move, ply)
	}
	sort.Stable(scoredMoves{moves, scores})
}

func (c *SearchContext) storeKiller(ply int, move Move) {
	c.killers[ply][1] = c.killers[ply][0]
	c.killers[ply][0] = move
}

func (c *SearchContext) storeHistory(move Move, depth int) {
	c.history[move.Piece()][move.Target()] += depth * depth
}
