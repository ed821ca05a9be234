package evaluation

import (
	"strings"
	"testing"

	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluation(t *testing.T) {
	s := "4k3/2R5/8/7r/8/r7/3R4/4K3 b - - 10 5"
	position, err := ParseFen(s)
	require.True(t, IsNil(err), err)

	assert.Equal(t, strings.Join([]string{
		"....k...",
		"..R.....",
		"........",
		".......r",
		"........",
		"r.......",
		"...R....",
		"....K...",
	}, "\n"), position.String())

	whiteRooks := position.Players[White].Pieces[Rook]
	blackRooks := position.Players[Black].Pieces[Rook]
	assert.Equal(t, 2*_developmentScale, evaluateDevelopmentForPiece(whiteRooks, RookDevelopmentBitboards[White]))
	assert.Equal(t, -2*_developmentScale, evaluateDevelopmentForPiece(blackRooks, RookDevelopmentBitboards[Black]))
}

func TestStartPositionIsBalanced(t *testing.T) {
	position := MustParseFen(StartFen)
	assert.Equal(t, 0, Evaluate(&position))
	assert.Equal(t, 4000, EvaluateMaterial(&position.Bitboards, White))

	position.Player = Black
	assert.Equal(t, 0, Evaluate(&position))
}

func TestEvaluateIsFromSideToMove(t *testing.T) {
	whiteUp := MustParseFen("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	blackToMove := MustParseFen("4k3/8/8/8/8/8/8/3QK3 b - - 0 1")

	assert.Greater(t, Evaluate(&whiteUp), 800)
	assert.Equal(t, -Evaluate(&whiteUp), Evaluate(&blackToMove))
	assert.Equal(t, Evaluate(&whiteUp), Evaluator{}.Evaluate(&whiteUp))
}
