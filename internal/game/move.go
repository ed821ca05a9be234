package game

import (
	"strings"

	. "github.com/cricklet/magicchess/internal/helpers"
)

// Move packs a move into 32 bits:
//
//	bits  0-5   source square
//	bits  6-11  target square
//	bits 12-15  moved piece
//	bits 16-19  promotion piece (XX for none)
//	bit  20     capture
//	bit  21     double pawn push
//	bit  22     en passant
//	bit  23     castling
type Move uint32

const NoMove Move = 0

type MoveFlags uint32

const (
	QuietFlags     MoveFlags = 0
	CaptureFlag    MoveFlags = 1 << 20
	DoublePushFlag MoveFlags = 1 << 21
	EnPassantFlag  MoveFlags = 1 << 22
	CastlingFlag   MoveFlags = 1 << 23
)

const (
	_sourceShift    = 0
	_targetShift    = 6
	_pieceShift     = 12
	_promotionShift = 16

	_squareMask = 0x3f
	_pieceMask  = 0xf
)

func NewMove(source int, target int, piece Piece, promotion Piece, flags MoveFlags) Move {
	return Move(uint32(source)<<_sourceShift |
		uint32(target)<<_targetShift |
		uint32(piece)<<_pieceShift |
		uint32(promotion)<<_promotionShift |
		uint32(flags))
}

func (m Move) Source() int {
	return int(m>>_sourceShift) & _squareMask
}

func (m Move) Target() int {
	return int(m>>_targetShift) & _squareMask
}

func (m Move) Piece() Piece {
	return Piece(m>>_pieceShift) & _pieceMask
}

func (m Move) Promotion() Piece {
	return Piece(m>>_promotionShift) & _pieceMask
}

func (m Move) Flags() MoveFlags {
	return MoveFlags(m) & (CaptureFlag | DoublePushFlag | EnPassantFlag | CastlingFlag)
}

func (m Move) IsCapture() bool {
	return MoveFlags(m)&CaptureFlag != 0
}

func (m Move) IsDoublePush() bool {
	return MoveFlags(m)&DoublePushFlag != 0
}

func (m Move) IsEnPassant() bool {
	return MoveFlags(m)&EnPassantFlag != 0
}

func (m Move) IsCastling() bool {
	return MoveFlags(m)&CastlingFlag != 0
}

func (m Move) IsPromotion() bool {
	return m.Promotion() != XX
}

// IsQuiet is true for moves that neither capture nor promote.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// String renders coordinate notation, eg "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	result := StringFromBoardIndex(m.Source()) + StringFromBoardIndex(m.Target())
	if m.IsPromotion() {
		result += m.Promotion().PieceType().String()
	}
	return result
}

func (m Move) DebugString() string {
	result := m.Piece().String() + StringFromBoardIndex(m.Source())
	if m.IsCapture() {
		result += "x"
	}
	result += StringFromBoardIndex(m.Target())
	if m.IsPromotion() {
		result += "=" + m.Promotion().String()
	}
	if m.IsEnPassant() {
		result += " e.p."
	}
	if m.IsCastling() {
		result += " castle"
	}
	return result
}

func MovesString(moves []Move) string {
	return strings.Join(MapSlice(moves, Move.String), " ")
}
