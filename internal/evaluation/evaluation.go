package evaluation

import (
	. "github.com/cricklet/magicchess/internal/bitboards"
	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
)

type EvaluationBitboard struct {
	multiplier int
	b          Bitboard
}

var _developmentScale = 10

// Tables are written from white's side, rank 8 at the top.
var RookDevelopmentBitboards = evaluationsPerPlayer([8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{1, 2, 2, 2, 2, 2, 2, 1},
	{-1, 0, 0, 0, 0, 0, 0, -1},
	{-1, 0, 0, 0, 0, 0, 0, -1},
	{-1, 0, 0, 0, 0, 0, 0, -1},
	{-1, 0, 0, 0, 0, 0, 0, -1},
	{-1, 0, 0, 0, 0, 0, 0, -1},
	{0, 0, 0, 2, 2, 0, 0, 0},
}, _developmentScale)

var PawnDevelopmentBitboards = evaluationsPerPlayer([8][8]int{
	{4, 4, 4, 4, 4, 4, 4, 4},
	{3, 3, 3, 4, 4, 3, 3, 3},
	{2, 2, 2, 3, 3, 2, 2, 2},
	{2, 2, 2, 3, 3, 2, 2, 2},
	{1, 1, 1, 3, 3, 1, 1, 1},
	{0, 0, 0, 2, 2, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
}, _developmentScale*2)

var BishopDevelopmentBitboards = evaluationsPerPlayer([8][8]int{
	{-1, -1, -1, -1, -1, -1, -1, -1},
	{-1, 0, 0, 0, 0, 0, 0, -1},
	{-1, 0, 1, 2, 2, 1, 0, -1},
	{-1, 1, 1, 2, 2, 1, 1, -1},
	{-1, 0, 2, 2, 2, 2, 0, -1},
	{-1, 2, 2, 2, 2, 2, 2, -1},
	{-1, 1, 0, 0, 0, 0, 1, -1},
	{-1, -1, -1, -1, -1, -1, -1, -1},
}, _developmentScale)

var KnightDevelopmentBitboards = evaluationsPerPlayer([8][8]int{
	{-2, -2, -2, -2, -2, -2, -2, -2},
	{-2, -1, 0, 0, 0, 0, -1, -2},
	{-2, 0, 1, 2, 2, 1, 0, -2},
	{-2, 1, 2, 2, 2, 2, 1, -2},
	{-2, 0, 2, 2, 2, 2, 0, -2},
	{-2, 1, 1, 2, 2, 1, 1, -2},
	{-2, -1, 0, 0, 0, 0, -1, -2},
	{-2, -2, -2, -2, -2, -2, -2, -2},
}, _developmentScale)

var QueenDevelopmentBitboards = evaluationsPerPlayer([8][8]int{
	{-2, -2, -2, -1, -1, -2, -2, -2},
	{-2, 0, 0, 0, 0, 0, 0, -2},
	{-2, 0, 1, 1, 1, 1, 0, -2},
	{-1, 0, 1, 1, 1, 1, 0, -1},
	{0, 0, 1, 1, 1, 1, 0, 0},
	{-2, 0, 1, 1, 1, 1, 0, -2},
	{-2, 0, 1, 0, 0, 1, 0, -2},
	{-2, -2, -2, -1, -1, -2, -2, -2},
}, _developmentScale/2)

// the king wants to stay tucked behind its pawns
var KingDevelopmentBitboards = evaluationsPerPlayer([8][8]int{
	{-3, -4, -4, -5, -5, -4, -4, -3},
	{-3, -4, -4, -5, -5, -4, -4, -3},
	{-3, -4, -4, -5, -5, -4, -4, -3},
	{-3, -4, -4, -5, -5, -4, -4, -3},
	{-2, -3, -3, -4, -4, -3, -3, -2},
	{-1, -2, -2, -2, -2, -2, -2, -1},
	{2, 2, 0, 0, 0, 0, 2, 2},
	{2, 3, 1, 0, 0, 1, 3, 2},
}, _developmentScale)

// AllDevelopmentBitboards is indexed by PieceType.
var AllDevelopmentBitboards = [6][2][]EvaluationBitboard{
	PawnDevelopmentBitboards,
	KnightDevelopmentBitboards,
	BishopDevelopmentBitboards,
	RookDevelopmentBitboards,
	QueenDevelopmentBitboards,
	KingDevelopmentBitboards,
}

// PieceValues is indexed by PieceType. The king is never captured, so it
// carries no material.
var PieceValues = [6]int{100, 300, 350, 500, 900, 0}

func bitboardFromArray(lookup int, array [8][8]int) Bitboard {
	b := Bitboard(0)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if array[i][j] == lookup {
				b |= SingleBitboard((7-i)*8 + j)
			}
		}
	}
	return b
}

func evaluationsFromArray(array [8][8]int, scale int) []EvaluationBitboard {
	result := []EvaluationBitboard{}
	seen := map[int]bool{}
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			k := array[i][j]
			if k == 0 || seen[k] {
				continue
			}
			seen[k] = true
			result = append(result, EvaluationBitboard{k * scale, bitboardFromArray(k, array)})
		}
	}
	return result
}

func evaluationsPerPlayer(whiteOrientedEvalArray [8][8]int, scale int) [2][]EvaluationBitboard {
	return [2][]EvaluationBitboard{
		evaluationsFromArray(whiteOrientedEvalArray, scale),
		evaluationsFromArray(FlipArray(whiteOrientedEvalArray), scale),
	}
}

func evaluateDevelopmentForPiece(b Bitboard, e []EvaluationBitboard) int {
	result := 0
	for _, eval := range e {
		result += eval.multiplier * OnesCount(eval.b&b)
	}
	return result
}

func EvaluateDevelopment(b *Bitboards, player Player) int {
	development := 0
	for _, pieceType := range AllPieceTypes {
		development += evaluateDevelopmentForPiece(
			b.Players[player].Pieces[pieceType], AllDevelopmentBitboards[pieceType][player])
	}
	return development
}

func EvaluateMaterial(b *Bitboards, player Player) int {
	material := 0
	for _, pieceType := range AllPieceTypes {
		material += PieceValues[pieceType] * OnesCount(b.Players[player].Pieces[pieceType])
	}
	return material
}

// Evaluate scores the position from the side to move's perspective.
func Evaluate(pos *Position) int {
	player := pos.Player
	enemy := player.Other()

	return EvaluateMaterial(&pos.Bitboards, player) + EvaluateDevelopment(&pos.Bitboards, player) -
		EvaluateMaterial(&pos.Bitboards, enemy) - EvaluateDevelopment(&pos.Bitboards, enemy)
}

// Evaluator adapts Evaluate to the searcher's evaluator interface.
type Evaluator struct{}

func (Evaluator) Evaluate(pos *Position) int {
	return Evaluate(pos)
}
