package movegen

import (
	. "github.com/cricklet/magicchess/internal/bitboards"
	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
)

var _castlingRookMoves = func() [64][2]int {
	result := [64][2]int{}
	result[G1] = [2]int{H1, F1}
	result[C1] = [2]int{A1, D1}
	result[G8] = [2]int{H8, F8}
	result[C8] = [2]int{A8, D8}
	return result
}()

// MakeMove applies a pseudo-legal move to a copy of pos. When the move
// would leave the mover's king attacked it returns pos unchanged and
// false. pos itself is never modified.
func (g *Generator) MakeMove(pos Position, move Move) (Position, bool) {
	next := pos

	player := pos.Player
	enemy := player.Other()
	source, target, piece := move.Source(), move.Target(), move.Piece()

	next.ClearSquare(source, piece)

	if move.IsEnPassant() {
		captured := target - PawnPushOffsets[player]
		next.Players[enemy].Pieces[Pawn] &^= SingleBitboard(captured)
	} else if move.IsCapture() {
		for pieceType := range next.Players[enemy].Pieces {
			next.Players[enemy].Pieces[pieceType] &^= SingleBitboard(target)
		}
	}

	if move.IsPromotion() {
		next.SetSquare(target, move.Promotion())
	} else {
		next.SetSquare(target, piece)
	}

	next.EnPassantTarget = NoSquare
	if move.IsDoublePush() {
		next.EnPassantTarget = source + PawnPushOffsets[player]
	}

	if move.IsCastling() {
		rook := PieceForPlayer[player][Rook]
		rookMove := _castlingRookMoves[target]
		next.ClearSquare(rookMove[0], rook)
		next.SetSquare(rookMove[1], rook)
	}

	next.CastlingRights &= CastlingRightsMask[source] & CastlingRightsMask[target]

	next.RecomputeOccupancy()

	if piece.PieceType() == Pawn || move.IsCapture() {
		next.HalfMoveClock = 0
	} else {
		next.HalfMoveClock++
	}
	if player == Black {
		next.FullMoveClock++
	}

	if g.IsAttackedBy(next.KingIndex(player), enemy, &next) {
		return pos, false
	}

	next.Player = enemy
	return next, true
}
