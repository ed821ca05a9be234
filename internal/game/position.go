package game

import (
	"fmt"

	. "github.com/cricklet/magicchess/internal/bitboards"
	. "github.com/cricklet/magicchess/internal/helpers"
)

type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastlingRights  CastlingRights = 0
	AllCastlingRights CastlingRights = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

var _castlingRightsChars = []struct {
	right CastlingRights
	char  byte
}{
	{WhiteKingside, 'K'},
	{WhiteQueenside, 'Q'},
	{BlackKingside, 'k'},
	{BlackQueenside, 'q'},
}

func (c CastlingRights) String() string {
	result := []byte{}
	for _, entry := range _castlingRightsChars {
		if c&entry.right != 0 {
			result = append(result, entry.char)
		}
	}
	if len(result) == 0 {
		return "-"
	}
	return string(result)
}

// CastlingRightsMask is intersected with the rights for both the source and
// the target square of every move. Moving a king or rook, or capturing a
// rook on its home square, clears the matching rights.
var CastlingRightsMask = func() [64]CastlingRights {
	result := [64]CastlingRights{}
	for i := range result {
		result[i] = AllCastlingRights
	}
	result[A1] &^= WhiteQueenside
	result[E1] &^= WhiteKingside | WhiteQueenside
	result[H1] &^= WhiteKingside
	result[A8] &^= BlackQueenside
	result[E8] &^= BlackKingside | BlackQueenside
	result[H8] &^= BlackKingside
	return result
}()

// Position is a plain value: assigning it copies the whole board.
type Position struct {
	Bitboards

	Player          Player
	EnPassantTarget int // NoSquare unless the last move was a double push
	CastlingRights  CastlingRights

	HalfMoveClock int
	FullMoveClock int
}

func (p *Position) PieceBitboard(piece Piece) Bitboard {
	return p.Players[piece.Player()].Pieces[piece.PieceType()]
}

func (p *Position) KingIndex(player Player) int {
	kings := p.Players[player].Pieces[King]
	if kings == 0 {
		return NoSquare
	}
	return kings.FirstIndexOfOne()
}

func (p *Position) HasEnPassantTarget() bool {
	return p.EnPassantTarget != NoSquare
}

func (p *Position) String() string {
	return p.ToBoardArray().String()
}

func (p *Position) Unicode() string {
	return p.ToBoardArray().Unicode() + fmt.Sprintf("%v to move, castling %v, en passant %v\n",
		p.Player, p.CastlingRights, StringFromBoardIndex(p.EnPassantTarget))
}

// CheckInvariants verifies the bitboards agree with each other and that
// each side has exactly one king.
func (p *Position) CheckInvariants() Error {
	errs := []Error{}

	if p.Player != White && p.Player != Black {
		errs = append(errs, Errorf("invalid side to move %v", p.Player))
	}

	seen := Bitboard(0)
	occupied := Bitboard(0)
	for _, player := range []Player{White, Black} {
		playerOccupied := Bitboard(0)
		for _, pieceType := range AllPieceTypes {
			pieces := p.Players[player].Pieces[pieceType]
			if seen&pieces != 0 {
				errs = append(errs, Errorf("%v overlaps another piece at %v",
					PieceForPlayer[player][pieceType], StringFromBoardIndex((seen&pieces).FirstIndexOfOne())))
			}
			seen |= pieces
			playerOccupied |= pieces
		}
		if playerOccupied != p.Players[player].Occupied {
			errs = append(errs, Errorf("%v occupancy is stale", player))
		}
		occupied |= playerOccupied

		if kings := OnesCount(p.Players[player].Pieces[King]); kings != 1 {
			errs = append(errs, Errorf("%v has %v kings", player, kings))
		}
		if p.Players[player].Pieces[Pawn]&(RankBitboard(0)|RankBitboard(7)) != 0 {
			errs = append(errs, Errorf("%v has a pawn on a back rank", player))
		}
	}
	if occupied != p.Occupied {
		errs = append(errs, Errorf("occupancy is stale"))
	}

	if p.EnPassantTarget != NoSquare {
		rank := p.EnPassantTarget / 8
		if (p.Player == White && rank != 5) || (p.Player == Black && rank != 2) {
			errs = append(errs, Errorf("en passant target %v impossible for %v",
				StringFromBoardIndex(p.EnPassantTarget), p.Player))
		}
	}
	if p.EnPassantTarget < 0 || p.EnPassantTarget > NoSquare {
		errs = append(errs, Errorf("en passant target %v out of range", p.EnPassantTarget))
	}

	return Join(errs...)
}
