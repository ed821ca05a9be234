package engine

import (
	"fmt"
	"strings"

	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/cricklet/magicchess/internal/movegen"
	"github.com/cricklet/magicchess/internal/search"
)

// Engine is one game: a start position, the moves played from it, and a
// searcher to pick the next one.
type Engine struct {
	Logger Logger

	generator *movegen.Generator
	searcher  *search.Searcher

	StartFen string

	// positions[i] is the position before history[i]
	positions []Position
	history   []Move
}

func NewEngine(generator *movegen.Generator, searcher *search.Searcher, logger Optional[Logger]) *Engine {
	return &Engine{
		Logger:    logger.ValueOr(SilentLogger),
		generator: generator,
		searcher:  searcher,
	}
}

func (e *Engine) Reset() {
	e.StartFen = ""
	e.positions = nil
	e.history = nil
}

func (e *Engine) IsNew() bool {
	return len(e.positions) == 0
}

func (e *Engine) Position() Position {
	return e.positions[len(e.positions)-1]
}

func (e *Engine) LastMove() Optional[Move] {
	if len(e.history) > 0 {
		return Some(e.history[len(e.history)-1])
	}
	return Empty[Move]()
}

func (e *Engine) Rewind(num int) Error {
	if e.IsNew() {
		return Errorf("position not setup")
	}
	if num < 0 {
		return Errorf("invalid rewind %v", num)
	}
	num = MinInt(num, len(e.history))
	e.history = e.history[:len(e.history)-num]
	e.positions = e.positions[:len(e.positions)-num]
	return NilError
}

func (e *Engine) PerformMove(move Move) Error {
	if e.IsNew() {
		return Errorf("position not setup")
	}

	next, ok := e.generator.MakeMove(e.Position(), move)
	if !ok {
		return Errorf("PerformMove: %v is illegal in %v", move, e.FenString())
	}

	e.history = append(e.history, move)
	e.positions = append(e.positions, next)
	return NilError
}

func (e *Engine) PerformMoveFromString(s string) Error {
	if e.IsNew() {
		return Errorf("position not setup")
	}
	pos := e.Position()
	move, err := e.generator.FindMove(&pos, s)
	if !IsNil(err) {
		return Errorf("PerformMoveFromString: %w", err)
	}
	return e.PerformMove(move)
}

func firstIndexNotMatching[A any, B any](a []A, b []B, matches func(A, B) bool) int {
	for i := 0; i < MinInt(len(a), len(b)); i++ {
		if !matches(a[i], b[i]) {
			return i
		}
	}
	return MinInt(len(a), len(b))
}

// SetupPosition reuses the current game when input extends it, so a GUI
// resending the whole move list each turn only plays the new moves. On error
// the previous game is left untouched.
func (e *Engine) SetupPosition(input GameInput) Error {
	previous := *e
	previous.positions = append([]Position(nil), e.positions...)
	previous.history = append([]Move(nil), e.history...)

	err := e.setupPosition(input)
	if !IsNil(err) {
		*e = previous
		return err
	}

	e.Logger.Debug().
		Str("fen", e.FenString()).
		Int("moves", len(e.history)).
		Msg("position setup")

	return NilError
}

func (e *Engine) setupPosition(input GameInput) Error {
	if e.IsNew() || e.StartFen != input.Fen {
		pos, err := ParseFen(input.Fen)
		if !IsNil(err) {
			return Errorf("couldn't create game from %v: %w", input.Fen, err)
		}
		e.Reset()
		e.StartFen = input.Fen
		e.positions = []Position{pos}
	}

	matching := firstIndexNotMatching(e.history, input.Moves, func(m Move, s string) bool {
		return m.String() == s
	})
	err := e.Rewind(len(e.history) - matching)
	if !IsNil(err) {
		return err
	}

	for _, m := range input.Moves[matching:] {
		err := e.PerformMoveFromString(m)
		if !IsNil(err) {
			return err
		}
	}

	return NilError
}

// MovesForSelection lists the legal moves starting on the selected square.
func (e *Engine) MovesForSelection(selection string) ([]string, Error) {
	index, err := BoardIndexFromString(selection)
	if !IsNil(err) {
		return nil, Errorf("failed to parse selection %w", err)
	}
	if e.IsNew() {
		return nil, Errorf("position not setup")
	}

	moves := FilterSlice(e.LegalMoves(), func(m Move) bool {
		return m.Source() == index
	})
	return MapSlice(moves, func(m Move) string {
		return m.String()
	}), NilError
}

func (e *Engine) LegalMoves() []Move {
	pos := e.Position()
	return e.generator.GenerateLegalMoves(&pos)
}

func (e *Engine) FenString() string {
	pos := e.Position()
	return pos.Fen()
}

func (e *Engine) MoveHistory() []string {
	return MapSlice(e.history, func(m Move) string {
		return m.String()
	})
}

func (e *Engine) PgnFromMoveHistory() string {
	result := strings.Builder{}
	fullMove := e.positions[0].FullMoveClock
	for i, move := range e.history {
		player := e.positions[i].Player
		if player == White {
			result.WriteString(fmt.Sprintf("%v. ", fullMove))
		} else if i == 0 {
			result.WriteString(fmt.Sprintf("%v... ", fullMove))
		}

		result.WriteString(move.String())
		result.WriteString(" ")

		if player == Black {
			fullMove++
		}
	}
	return strings.TrimSpace(result.String())
}

func (e *Engine) Player() Player {
	return e.Position().Player
}

func (e *Engine) PlayerIsInCheck() bool {
	pos := e.Position()
	return e.generator.InCheck(&pos)
}

func (e *Engine) NoValidMoves() bool {
	pos := e.Position()
	return !e.generator.HasLegalMove(&pos)
}

func (e *Engine) DrawClock() int {
	return e.Position().HalfMoveClock
}

func (e *Engine) Search(params SearchParams, options ...search.SearchOption) (search.Result, Error) {
	if e.IsNew() {
		return search.Result{}, Errorf("position not setup")
	}

	e.Logger.Info().
		Str("fen", e.FenString()).
		Str("params", params.String()).
		Msg("search started")

	result, err := e.searcher.Search(e.Position(), params, options...)
	if !IsNil(err) {
		return result, err
	}

	e.Logger.Info().
		Str("bestmove", result.BestMove.String()).
		Str("score", search.ScoreString(result.Score, result.Depth)).
		Int("depth", result.Depth).
		Int("nodes", result.Nodes).
		Msg("search finished")

	return result, NilError
}
