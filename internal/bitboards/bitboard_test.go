package bitboards

import (
	"strings"
	"testing"

	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestSingleBoards(t *testing.T) {
	assert.Equal(t, strings.Join([]string{
		"00000001",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
	}, "\n"), SingleBitboard(H8).String())
	assert.Equal(t, strings.Join([]string{
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"10000000",
	}, "\n"), SingleBitboard(A1).String())
	assert.Equal(t, SingleBitboard(H1), BitboardFromStrings([8]string{
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000001",
	}))
}

func TestDirMasks(t *testing.T) {
	assert.Equal(t, strings.Join([]string{
		"00000000",
		"11111111",
		"11111111",
		"11111111",
		"11111111",
		"11111111",
		"11111111",
		"11111111",
	}, "\n"), PreMoveMasks[N].String())
	assert.Equal(t, strings.Join([]string{
		"00000000",
		"11111110",
		"11111110",
		"11111110",
		"11111110",
		"11111110",
		"11111110",
		"11111110",
	}, "\n"), PreMoveMasks[NE].String())
	assert.Equal(t, strings.Join([]string{
		"01111111",
		"01111111",
		"01111111",
		"01111111",
		"01111111",
		"01111111",
		"00000000",
		"00000000",
	}, "\n"), PreMoveMasks[SSW].String())
}

func TestNextIndexOfOne(t *testing.T) {
	b := BitboardWithSquares(C3, A1, H8)
	indices := []int{}
	for b != 0 {
		var index int
		index, b = b.NextIndexOfOne()
		indices = append(indices, index)
	}
	assert.Equal(t, []int{A1, C3, H8}, indices)
}

func TestSetAndClearSquare(t *testing.T) {
	b := Bitboards{}
	b.SetSquare(E4, WN)
	b.SetSquare(D5, BP)
	assert.Equal(t, WN, b.PieceAt(E4))
	assert.Equal(t, BP, b.PieceAt(D5))
	assert.Equal(t, XX, b.PieceAt(A1))
	assert.Equal(t, BitboardWithSquares(E4, D5), b.Occupied)

	b.ClearSquare(E4, WN)
	assert.Equal(t, XX, b.PieceAt(E4))
	assert.Equal(t, Bitboard(0), b.Players[White].Occupied)

	b.Players[White].Pieces[Queen] = SingleBitboard(A8)
	b.RecomputeOccupancy()
	assert.Equal(t, BitboardWithSquares(A8, D5), b.Occupied)
	assert.Equal(t, SingleBitboard(A8), b.Players[White].Occupied)
}
