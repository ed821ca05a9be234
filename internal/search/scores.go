package search

import (
	"fmt"
)

const (
	Infinity  = 5000000
	MateScore = 4999900
)

// A side with no legal moves while in check scores -(MateScore + depth),
// where depth is the remaining depth at that node. Quicker mates keep more
// depth and so score higher.

func IsMate(score int) bool {
	return score >= MateScore || score <= -MateScore
}

// MatePlies is the number of plies until mate for a score found by an
// iteration of the given depth. It is negative when the side to move is
// being mated.
func MatePlies(score int, depth int) int {
	if !IsMate(score) {
		return 0
	}
	if score > 0 {
		return depth - (score - MateScore)
	}
	return -(depth - (-score - MateScore))
}

// MateMoves converts MatePlies into full moves, as reported by UCI.
func MateMoves(score int, depth int) int {
	plies := MatePlies(score, depth)
	if plies < 0 {
		return -((-plies + 1) / 2)
	}
	return (plies + 1) / 2
}

func ScoreString(score int, depth int) string {
	if IsMate(score) {
		moves := MateMoves(score, depth)
		if moves < 0 {
			return fmt.Sprint("mate-", -moves)
		}
		return fmt.Sprint("mate+", moves)
	}
	return fmt.Sprint(score)
}

func UCIScoreString(score int, depth int) string {
	if IsMate(score) {
		return fmt.Sprint("mate ", MateMoves(score, depth))
	}
	return fmt.Sprint("cp ", score)
}

func clampScore(score int) int {
	if score > Infinity {
		return Infinity
	}
	if score < -Infinity {
		return -Infinity
	}
	return score
}
