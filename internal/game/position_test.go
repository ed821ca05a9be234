package game

import (
	"testing"

	. "github.com/cricklet/magicchess/internal/bitboards"
	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	for _, fen := range fens {
		position, err := ParseFen(fen)
		require.True(t, IsNil(err), err)
		assert.Equal(t, fen, position.Fen())
	}
}

func TestStartPosition(t *testing.T) {
	position := MustParseFen(StartFen)
	assert.Equal(t, White, position.Player)
	assert.Equal(t, AllCastlingRights, position.CastlingRights)
	assert.Equal(t, NoSquare, position.EnPassantTarget)
	assert.Equal(t, 32, OnesCount(position.Occupied))
	assert.Equal(t, RankBitboard(1), position.PieceBitboard(WP))
	assert.Equal(t, E1, position.KingIndex(White))
	assert.Equal(t, E8, position.KingIndex(Black))
	assert.Equal(t, WQ, position.PieceAt(D1))
	assert.True(t, IsNil(position.CheckInvariants()))
}

func TestShortFens(t *testing.T) {
	position, err := ParseFen("4k3/8/8/8/8/8/8/4K3 b")
	require.True(t, IsNil(err), err)
	assert.Equal(t, Black, position.Player)
	assert.Equal(t, NoCastlingRights, position.CastlingRights)
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K3 b - - 0 1", position.Fen())
}

func TestInvalidFens(t *testing.T) {
	invalid := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkz - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
		"rnbqqbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
	}
	for _, fen := range invalid {
		_, err := ParseFen(fen)
		assert.False(t, IsNil(err), fen)
	}
}

func TestCastlingRightsNeedPieces(t *testing.T) {
	position := MustParseFen("r3k3/8/8/8/8/8/8/4K2R w KQkq - 0 1")
	assert.Equal(t, WhiteKingside|BlackQueenside, position.CastlingRights, spew.Sdump(position))
}

func TestCastlingRightsMask(t *testing.T) {
	assert.Equal(t, CastlingRights(13), CastlingRightsMask[A1])
	assert.Equal(t, CastlingRights(12), CastlingRightsMask[E1])
	assert.Equal(t, CastlingRights(14), CastlingRightsMask[H1])
	assert.Equal(t, CastlingRights(7), CastlingRightsMask[A8])
	assert.Equal(t, CastlingRights(3), CastlingRightsMask[E8])
	assert.Equal(t, CastlingRights(11), CastlingRightsMask[H8])
	assert.Equal(t, AllCastlingRights, CastlingRightsMask[D4])
}

func TestInvariantsCatchOverlap(t *testing.T) {
	position := MustParseFen(StartFen)
	position.Players[Black].Pieces[Queen] |= SingleBitboard(E2)
	assert.False(t, IsNil(position.CheckInvariants()))

	position = MustParseFen(StartFen)
	position.Players[White].Pieces[Knight] |= SingleBitboard(E4)
	assert.False(t, IsNil(position.CheckInvariants()))
	position.RecomputeOccupancy()
	assert.True(t, IsNil(position.CheckInvariants()))
}
