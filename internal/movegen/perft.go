package movegen

import (
	"sort"

	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
)

// Perft counts the leaf nodes of the legal move tree to depth.
func (g *Generator) Perft(pos Position, depth int) int {
	if depth == 0 {
		return 1
	}

	buffer := GetMovesBuffer()
	defer ReleaseMovesBuffer(buffer)
	g.GeneratePseudoMoves(&pos, (*[]Move)(buffer))

	count := 0
	for _, move := range *buffer {
		next, ok := g.MakeMove(pos, move)
		if !ok {
			continue
		}
		if depth == 1 {
			count++
		} else {
			count += g.Perft(next, depth-1)
		}
	}
	return count
}

type PerftDivideEntry struct {
	Move  Move
	Nodes int
}

// PerftDivide splits the perft count by root move, sorted by move text.
// The progress bar advances once per root move.
func (g *Generator) PerftDivide(pos Position, depth int, newProgress func(total int) ProgressBar) ([]PerftDivideEntry, int) {
	moves := g.GenerateLegalMoves(&pos)
	progress := newProgress(len(moves))
	sort.Slice(moves, func(i, j int) bool {
		return moves[i].String() < moves[j].String()
	})

	result := make([]PerftDivideEntry, 0, len(moves))
	total := 0
	for _, move := range moves {
		next, _ := g.MakeMove(pos, move)
		nodes := 1
		if depth > 1 {
			nodes = g.Perft(next, depth-1)
		}
		result = append(result, PerftDivideEntry{move, nodes})
		total += nodes
		progress.Add(1)
	}
	progress.Close()

	return result, total
}
