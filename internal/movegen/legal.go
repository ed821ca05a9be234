package movegen

import (
	"strings"

	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
)

func (g *Generator) GenerateLegalMoves(pos *Position) []Move {
	buffer := GetMovesBuffer()
	defer ReleaseMovesBuffer(buffer)

	g.GeneratePseudoMoves(pos, (*[]Move)(buffer))

	result := []Move{}
	for _, move := range *buffer {
		if _, ok := g.MakeMove(*pos, move); ok {
			result = append(result, move)
		}
	}
	return result
}

func (g *Generator) HasLegalMove(pos *Position) bool {
	buffer := GetMovesBuffer()
	defer ReleaseMovesBuffer(buffer)

	g.GeneratePseudoMoves(pos, (*[]Move)(buffer))
	for _, move := range *buffer {
		if _, ok := g.MakeMove(*pos, move); ok {
			return true
		}
	}
	return false
}

// FindMove matches coordinate notation ("e2e4", "e7e8q") against the legal
// moves of pos.
func (g *Generator) FindMove(pos *Position, text string) (Move, Error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, move := range g.GenerateLegalMoves(pos) {
		if move.String() == text {
			return move, NilError
		}
	}
	return NoMove, Errorf("no legal move '%v' in %v", text, pos.Fen())
}

// ApplyMoves plays a sequence of coordinate moves from pos.
func (g *Generator) ApplyMoves(pos Position, texts []string) (Position, Error) {
	for _, text := range texts {
		move, err := g.FindMove(&pos, text)
		if !IsNil(err) {
			return pos, err
		}
		pos, _ = g.MakeMove(pos, move)
	}
	return pos, NilError
}
