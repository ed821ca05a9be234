package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMateScores(t *testing.T) {
	// mated one ply into a depth 4 search: the child had 3 plies remaining
	matedChild := -(MateScore + 3)
	assert.True(t, IsMate(matedChild))
	assert.True(t, IsMate(-matedChild))
	assert.False(t, IsMate(900))

	assert.Equal(t, 1, MatePlies(-matedChild, 4))
	assert.Equal(t, 1, MateMoves(-matedChild, 4))
	assert.Equal(t, "mate+1", ScoreString(-matedChild, 4))
	assert.Equal(t, "mate 1", UCIScoreString(-matedChild, 4))

	// being mated in two plies
	assert.Equal(t, -2, MatePlies(-(MateScore + 2), 4))
	assert.Equal(t, -1, MateMoves(-(MateScore + 2), 4))
	assert.Equal(t, "mate-1", ScoreString(-(MateScore + 2), 4))

	// mating in three plies is two moves
	assert.Equal(t, 3, MatePlies(MateScore+3, 6))
	assert.Equal(t, 2, MateMoves(MateScore+3, 6))

	assert.Equal(t, "35", ScoreString(35, 5))
	assert.Equal(t, "cp -35", UCIScoreString(-35, 5))
	assert.Equal(t, 0, MatePlies(35, 5))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, Infinity, clampScore(Infinity+10))
	assert.Equal(t, -Infinity, clampScore(-Infinity-10))
	assert.Equal(t, 12, clampScore(12))
}
