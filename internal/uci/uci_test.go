package uci

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cricklet/magicchess/internal/config"
	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/cricklet/magicchess/internal/movegen"
)

func newTestRunner(t *testing.T) *UciRunner {
	generator, err := movegen.NewDefault()
	require.True(t, IsNil(err), err)
	cfg, err := config.Load("")
	require.True(t, IsNil(err), err)
	cfg.Depth = 3
	return NewUciRunner(generator, cfg, SilentLogger)
}

func handleAll(t *testing.T, r *UciRunner, inputs ...string) []string {
	result := []string{}
	for _, line := range inputs {
		output, err := r.HandleInput(line)
		require.True(t, IsNil(err), "%v: %v", line, err)
		result = append(result, output...)
	}
	return result
}

func TestUciHandshake(t *testing.T) {
	r := newTestRunner(t)
	output := handleAll(t, r, "uci", "isready", "ucinewgame", "")
	assert.Equal(t, []string{"id name magicchess", "id author cricklet", "uciok", "readyok"}, output)
}

func TestUciGoDepth(t *testing.T) {
	r := newTestRunner(t)
	output := handleAll(t, r,
		"position fen 2kr3r/p1p2ppp/2n1b3/2bqp3/Pp1p4/1P1P1N1P/2PBBPP1/R2Q1RK1 w - - 24 13",
		"position fen 2kr3r/p1p2ppp/2n1b3/2bqp3/Pp1p4/1P1P1N1P/2PBBPP1/R2Q1RK1 w - - 24 13 moves g2g4",
		"go depth 2",
	)

	require.Len(t, output, 2)
	assert.True(t, strings.HasPrefix(output[0], "info depth 2 score cp "), output[0])
	assert.Contains(t, output[0], " pv ")
	assert.True(t, strings.HasPrefix(output[1], "bestmove "), output[1])
	assert.NotEqual(t, "bestmove 0000", output[1])
}

func TestUciMateScore(t *testing.T) {
	r := newTestRunner(t)
	output := handleAll(t, r,
		"position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
		"go depth 2",
	)

	require.Len(t, output, 2)
	assert.Contains(t, output[0], "score mate 1")
	assert.Equal(t, "bestmove a1a8", output[1])
}

func TestUciGoMovetimeReportsEachIteration(t *testing.T) {
	r := newTestRunner(t)
	output := handleAll(t, r, "position startpos moves e2e4 e7e5", "go movetime 1")

	require.GreaterOrEqual(t, len(output), 2)
	assert.True(t, strings.HasPrefix(output[0], "info depth 1 "), output[0])
	assert.True(t, strings.HasPrefix(output[len(output)-1], "bestmove "))
}

func TestUciGoWithoutPositionUsesStartpos(t *testing.T) {
	r := newTestRunner(t)
	output := handleAll(t, r, "go depth 1")
	require.Len(t, output, 2)
	assert.True(t, strings.HasPrefix(output[1], "bestmove "))
}

func TestUciNoLegalMoves(t *testing.T) {
	r := newTestRunner(t)
	output := handleAll(t, r, "position startpos moves f2f3 e7e5 g2g4 d8h4", "go depth 3")
	assert.Equal(t, []string{"bestmove 0000"}, output)
}

func TestUciPerft(t *testing.T) {
	r := newTestRunner(t)
	output := handleAll(t, r, "position startpos", "go perft 2")

	require.Len(t, output, 22)
	assert.Equal(t, "a2a3: 20", output[0])
	assert.Equal(t, "Nodes searched: 400", output[21])
}

func TestUciClockBudget(t *testing.T) {
	r := newTestRunner(t)
	handleAll(t, r, "position startpos moves e2e4")

	params, err := r.parseGo(strings.Fields("wtime 1000 btime 30000 winc 0 binc 2000"))
	require.True(t, IsNil(err), err)
	assert.Equal(t, int64(2000), params.Duration.Value().Milliseconds())

	params, err = r.parseGo(strings.Fields("wtime 30000 btime 100 binc 2000"))
	require.True(t, IsNil(err), err)
	assert.Equal(t, int64(50), params.Duration.Value().Milliseconds())

	params, err = r.parseGo(nil)
	require.True(t, IsNil(err), err)
	assert.Equal(t, 3, params.Depth.Value())
}

func TestUciErrors(t *testing.T) {
	r := newTestRunner(t)
	for _, line := range []string{
		"position",
		"position fen",
		"position startpos e2e4",
		"position startpos moves e2e5",
		"go depth",
		"go depth x",
		"go sideways",
		"go perft 0",
		"bogus",
	} {
		_, err := r.HandleInput(line)
		assert.False(t, IsNil(err), line)
	}
}

func TestUciDisplay(t *testing.T) {
	r := newTestRunner(t)
	output := handleAll(t, r, "position startpos", "d")
	require.Len(t, output, 9)
	assert.Equal(t, "rnbqkbnr", output[0])
	assert.Equal(t, "Fen: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", output[8])
}
