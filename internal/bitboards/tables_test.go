package bitboards

import (
	"math/rand"
	"testing"

	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTables(t *testing.T) *AttackTables {
	tables, err := NewAttackTables()
	require.True(t, IsNil(err), err)
	return tables
}

func TestLeaperAttacks(t *testing.T) {
	tables := newTables(t)

	assert.Equal(t, BitboardWithSquares(B3, C2), tables.KnightAttacks[A1])
	assert.Equal(t, BitboardWithSquares(F7, G6), tables.KnightAttacks[H8])
	assert.Equal(t, 8, OnesCount(tables.KnightAttacks[E4]))

	assert.Equal(t, BitboardWithSquares(A2, B2, B1), tables.KingAttacks[A1])
	assert.Equal(t, 8, OnesCount(tables.KingAttacks[D4]))

	// pawn attacks never wrap around the a/h files
	assert.Equal(t, SingleBitboard(B3), tables.PawnAttacks[White][A2])
	assert.Equal(t, SingleBitboard(G3), tables.PawnAttacks[White][H2])
	assert.Equal(t, BitboardWithSquares(D6, F6), tables.PawnAttacks[Black][E7])
	assert.Equal(t, Bitboard(0), tables.PawnAttacks[White][E8])
}

func TestBlockerMasksExcludeEdges(t *testing.T) {
	assert.Equal(t, BitboardFromStrings([8]string{
		"00000000",
		"10000000",
		"10000000",
		"10000000",
		"10000000",
		"10000000",
		"10000000",
		"01111110",
	}), generateBlockerMask(A1, RookDirs))
	assert.Equal(t, 12, OnesCount(generateBlockerMask(A1, RookDirs)))
	assert.Equal(t, 10, OnesCount(generateBlockerMask(E4, RookDirs)))
	assert.Equal(t, 9, OnesCount(generateBlockerMask(D4, BishopDirs)))
}

func TestMagicMatchesRaysWithEmptyBoard(t *testing.T) {
	tables := newTables(t)
	for i := 0; i < 64; i++ {
		assert.Equal(t, RayAttacks(i, 0, RookDirs), tables.RookAttacks(i, 0), StringFromBoardIndex(i))
		assert.Equal(t, RayAttacks(i, 0, BishopDirs), tables.BishopAttacks(i, 0), StringFromBoardIndex(i))
	}
}

func TestMagicMatchesRaysWithRandomOccupancy(t *testing.T) {
	tables := newTables(t)
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 2000; trial++ {
		occupied := Bitboard(r.Uint64() & r.Uint64())
		i := r.Intn(64)
		assert.Equal(t, RayAttacks(i, occupied, RookDirs), tables.RookAttacks(i, occupied))
		assert.Equal(t, RayAttacks(i, occupied, BishopDirs), tables.BishopAttacks(i, occupied))
		assert.Equal(t,
			RayAttacks(i, occupied, KingDirs),
			tables.QueenAttacks(i, occupied))
	}
}

func TestRookAttacksStopAtBlockers(t *testing.T) {
	tables := newTables(t)
	occupied := BitboardWithSquares(D6, B4, D2, G4)
	expected := BitboardWithSquares(D5, D6, C4, B4, D3, D2, E4, F4, G4)
	assert.Equal(t, expected, tables.RookAttacks(D4, occupied))
}

func TestMagicTableRejectsWrongBitCount(t *testing.T) {
	magics := RookMagics
	magics[E4].BitsInMagicIndex = 4
	_, err := NewMagicTable(RookDirs, magics, "rook")
	assert.False(t, IsNil(err))
}
