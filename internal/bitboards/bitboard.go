package bitboards

import (
	"math/bits"
	"strings"

	. "github.com/cricklet/magicchess/internal/helpers"
)

// Bitboard has one bit per square, bit 0 = a1, bit 63 = h8.
type Bitboard uint64

type PlayerBitboards struct {
	Occupied Bitboard
	Pieces   [6]Bitboard // indexed via PieceType
}

type Bitboards struct {
	Occupied Bitboard
	Players  [2]PlayerBitboards
}

type Dir int

const (
	N Dir = iota
	S
	E
	W

	NE
	NW
	SE
	SW

	NNE
	NNW
	SSE
	SSW
	ENE
	ESE
	WNW
	WSW

	NumDirs
)

var KnightDirs = []Dir{NNE, NNW, SSE, SSW, ENE, ESE, WNW, WSW}

var RookDirs = []Dir{N, S, E, W}

var BishopDirs = []Dir{NE, NW, SE, SW}

var KingDirs = []Dir{N, S, E, W, NE, NW, SE, SW}

// PawnCaptureDirs is indexed by the capturing player.
var PawnCaptureDirs = [2][2]Dir{
	{NE, NW},
	{SE, SW},
}

const (
	OffsetN int = 8
	OffsetS int = -8
	OffsetE int = 1
	OffsetW int = -1
)

var Offsets = [NumDirs]int{
	OffsetN,
	OffsetS,
	OffsetE,
	OffsetW,

	OffsetN + OffsetE,
	OffsetN + OffsetW,
	OffsetS + OffsetE,
	OffsetS + OffsetW,

	OffsetN + OffsetN + OffsetE,
	OffsetN + OffsetN + OffsetW,
	OffsetS + OffsetS + OffsetE,
	OffsetS + OffsetS + OffsetW,
	OffsetE + OffsetN + OffsetE,
	OffsetE + OffsetS + OffsetE,
	OffsetW + OffsetN + OffsetW,
	OffsetW + OffsetS + OffsetW,
}

var PawnPushOffsets = [2]int{OffsetN, OffsetS}

var AllZeros Bitboard = Bitboard(0)
var AllOnes Bitboard = ^AllZeros

func RankBitboard(rank int) Bitboard {
	return Bitboard(0xff) << (8 * rank)
}

func FileBitboard(file int) Bitboard {
	return Bitboard(0x0101010101010101) << file
}

var (
	MaskN Bitboard = ^RankBitboard(7)
	MaskS Bitboard = ^RankBitboard(0)
	MaskE Bitboard = ^FileBitboard(7)
	MaskW Bitboard = ^FileBitboard(0)

	MaskNN Bitboard = ^RankBitboard(6)
	MaskSS Bitboard = ^RankBitboard(1)
	MaskEE Bitboard = ^FileBitboard(6)
	MaskWW Bitboard = ^FileBitboard(1)

	MaskAllEdges Bitboard = MaskN & MaskS & MaskE & MaskW
)

// PreMoveMasks clear the squares from which a step in the direction
// would leave the board (or wrap around a file edge).
var PreMoveMasks = [NumDirs]Bitboard{
	MaskN,
	MaskS,
	MaskE,
	MaskW,

	MaskN & MaskE,
	MaskN & MaskW,
	MaskS & MaskE,
	MaskS & MaskW,

	MaskNN & MaskN & MaskE,
	MaskNN & MaskN & MaskW,
	MaskSS & MaskS & MaskE,
	MaskSS & MaskS & MaskW,
	MaskEE & MaskN & MaskE,
	MaskEE & MaskS & MaskE,
	MaskWW & MaskN & MaskW,
	MaskWW & MaskS & MaskW,
}

// PawnHomeRanks and PawnPromotionRanks are indexed by the pawn's player.
var PawnHomeRanks = [2]Bitboard{RankBitboard(1), RankBitboard(6)}
var PawnPromotionRanks = [2]Bitboard{RankBitboard(7), RankBitboard(0)}

var SingleBitboards [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		result[i] = Bitboard(1) << i
	}
	return result
}()

func SingleBitboard(index int) Bitboard {
	return SingleBitboards[index]
}

func BitboardWithSquares(indices ...int) Bitboard {
	result := Bitboard(0)
	for _, index := range indices {
		result |= SingleBitboard(index)
	}
	return result
}

// Step moves every bit one step in dir, dropping bits that would wrap.
func (b Bitboard) Step(dir Dir) Bitboard {
	return RotateTowardsIndex64(b&PreMoveMasks[dir], Offsets[dir])
}

func OnesCount(b Bitboard) int {
	return bits.OnesCount64(uint64(b))
}

func (b Bitboard) IsSet(index int) bool {
	return b&SingleBitboard(index) != 0
}

func (b Bitboard) LeastSignificantOne() Bitboard {
	return b & -b
}

func (b Bitboard) FirstIndexOfOne() int {
	return bits.TrailingZeros64(uint64(b))
}

// NextIndexOfOne pops the lowest set bit: `index, b = b.NextIndexOfOne()`.
func (b Bitboard) NextIndexOfOne() (int, Bitboard) {
	return bits.TrailingZeros64(uint64(b)), b & (b - 1)
}

func (b Bitboard) EachIndexOfOne(callback func(int)) {
	for b != 0 {
		var index int
		index, b = b.NextIndexOfOne()
		callback(index)
	}
}

func RotateTowardsIndex64(b Bitboard, n int) Bitboard {
	return Bitboard(bits.RotateLeft64(uint64(b), n))
}

func (b Bitboard) String() string {
	ranks := [8]string{}
	for rank := 0; rank < 8; rank++ {
		row := strings.Builder{}
		for file := 0; file < 8; file++ {
			if b.IsSet(IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)})) {
				row.WriteByte('1')
			} else {
				row.WriteByte('0')
			}
		}
		ranks[7-rank] = row.String()
	}
	return strings.Join(ranks[:], "\n")
}

// BitboardFromStrings reads rows top (rank 8) to bottom, files a-h left to right.
func BitboardFromStrings(rows [8]string) Bitboard {
	b := Bitboard(0)
	for inverseRank, line := range rows {
		for file, c := range line {
			if c == '1' {
				b |= SingleBitboard(IndexFromFileRank(FileRank{File: File(file), Rank: Rank(7 - inverseRank)}))
			}
		}
	}
	return b
}

func (b *Bitboards) PieceAt(index int) Piece {
	single := SingleBitboard(index)
	if b.Occupied&single == 0 {
		return XX
	}
	for _, player := range []Player{White, Black} {
		if b.Players[player].Occupied&single == 0 {
			continue
		}
		for _, pieceType := range AllPieceTypes {
			if b.Players[player].Pieces[pieceType]&single != 0 {
				return PieceForPlayer[player][pieceType]
			}
		}
	}
	return XX
}

func (b *Bitboards) ClearSquare(index int, piece Piece) {
	player := piece.Player()
	clear := ^SingleBitboard(index)

	b.Occupied &= clear
	b.Players[player].Occupied &= clear
	b.Players[player].Pieces[piece.PieceType()] &= clear
}

func (b *Bitboards) SetSquare(index int, piece Piece) {
	player := piece.Player()
	set := SingleBitboard(index)

	b.Occupied |= set
	b.Players[player].Occupied |= set
	b.Players[player].Pieces[piece.PieceType()] |= set
}

// RecomputeOccupancy rebuilds the three aggregate boards from the twelve
// piece boards.
func (b *Bitboards) RecomputeOccupancy() {
	b.Occupied = 0
	for player := range b.Players {
		occupied := Bitboard(0)
		for _, pieces := range b.Players[player].Pieces {
			occupied |= pieces
		}
		b.Players[player].Occupied = occupied
		b.Occupied |= occupied
	}
}

func (b *Bitboards) ToBoardArray() BoardArray {
	result := BoardArray{}
	for index := 0; index < 64; index++ {
		result[index] = b.PieceAt(index)
	}
	return result
}
