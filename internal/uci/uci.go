package uci

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cricklet/magicchess/internal/config"
	"github.com/cricklet/magicchess/internal/engine"
	"github.com/cricklet/magicchess/internal/evaluation"
	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/cricklet/magicchess/internal/movegen"
	"github.com/cricklet/magicchess/internal/search"
)

const EngineName = "magicchess"

type UciRunner struct {
	engine    *engine.Engine
	generator *movegen.Generator
	config    config.Config
	logger    Logger
}

func NewUciRunner(generator *movegen.Generator, cfg config.Config, logger Logger) *UciRunner {
	searcher := search.NewSearcher(generator, evaluation.Evaluator{}, append(cfg.SearchOptions(), search.WithLogger{Logger: logger})...)
	return &UciRunner{
		engine:    engine.NewEngine(generator, searcher, Some(logger)),
		generator: generator,
		config:    cfg,
		logger:    logger,
	}
}

func (u *UciRunner) HandleInput(input string) ([]string, Error) {
	input = strings.TrimSpace(input)
	u.logger.Debug().Str("input", input).Msg("uci")

	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, NilError
	}

	switch fields[0] {
	case "uci":
		return []string{
			"id name " + EngineName,
			"id author cricklet",
			"uciok",
		}, NilError
	case "isready":
		return []string{"readyok"}, NilError
	case "ucinewgame":
		u.engine.Reset()
		return nil, NilError
	case "position":
		gameInput, err := parsePosition(fields[1:])
		if !IsNil(err) {
			return nil, err
		}
		return nil, u.engine.SetupPosition(gameInput)
	case "go":
		if u.engine.IsNew() {
			err := u.engine.SetupPosition(GameInput{Fen: StartFen})
			if !IsNil(err) {
				return nil, err
			}
		}
		if len(fields) > 2 && fields[1] == "perft" {
			return u.perft(fields[2])
		}
		params, err := u.parseGo(fields[1:])
		if !IsNil(err) {
			return nil, err
		}
		return u.search(params)
	case "d":
		if u.engine.IsNew() {
			return nil, Errorf("position not setup")
		}
		pos := u.engine.Position()
		return append(strings.Split(strings.TrimSpace(pos.String()), "\n"), "Fen: "+pos.Fen()), NilError
	case "quit", "stop":
		return nil, NilError
	}

	return nil, Errorf("unknown command '%v'", input)
}

func parseFen(fields []string) (string, []string) {
	if len(fields) == 0 {
		return "", nil
	}
	if fields[0] == "startpos" {
		return StartFen, fields[1:]
	}
	if fields[0] == "fen" {
		end := len(fields)
		for i, field := range fields {
			if field == "moves" {
				end = i
				break
			}
		}
		return strings.Join(fields[1:end], " "), fields[end:]
	}
	return "", fields
}

func parseMoves(fields []string) []string {
	if len(fields) > 0 && fields[0] == "moves" {
		return fields[1:]
	}
	return []string{}
}

func parsePosition(fields []string) (GameInput, Error) {
	fen, rest := parseFen(fields)
	if fen == "" {
		return GameInput{}, Errorf("position needs startpos or fen: %v", fields)
	}
	if len(rest) > 0 && rest[0] != "moves" {
		return GameInput{}, Errorf("unexpected %v after position", rest)
	}
	return GameInput{Fen: fen, Moves: parseMoves(rest)}, NilError
}

// parseGo reads the go arguments. Clock arguments become a budget of a
// thirtieth of the remaining time plus half the increment.
func (u *UciRunner) parseGo(fields []string) (SearchParams, Error) {
	values := map[string]int{}
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth", "movetime", "wtime", "btime", "winc", "binc", "movestogo":
			if i+1 >= len(fields) {
				return SearchParams{}, Errorf("go %v needs a value", fields[i])
			}
			value, err := strconv.Atoi(fields[i+1])
			if err != nil {
				return SearchParams{}, Wrap(err)
			}
			values[fields[i]] = value
			i++
		case "infinite":
		default:
			return SearchParams{}, Errorf("unknown go argument '%v'", fields[i])
		}
	}

	if depth, ok := values["depth"]; ok {
		return SearchParams{Depth: Some(depth)}, NilError
	}
	if movetime, ok := values["movetime"]; ok {
		return SearchParams{Duration: Some(time.Duration(movetime) * time.Millisecond)}, NilError
	}

	remaining, increment := "wtime", "winc"
	if u.engine.Player() == Black {
		remaining, increment = "btime", "binc"
	}
	if clock, ok := values[remaining]; ok {
		movesToGo := 30
		if n, ok := values["movestogo"]; ok && n > 0 {
			movesToGo = n
		}
		budget := clock/movesToGo + values[increment]/2
		budget = MaxInt(MinInt(budget, clock/2), 1)
		return SearchParams{Duration: Some(time.Duration(budget) * time.Millisecond)}, NilError
	}

	return u.config.DefaultSearchParams(), NilError
}

func InfoString(result search.Result) string {
	return fmt.Sprintf("info depth %v score %v nodes %v nps %v time %v pv %v",
		result.Depth,
		search.UCIScoreString(result.Score, result.Depth),
		result.Nodes,
		result.NodesPerSecond(),
		result.Elapsed.Milliseconds(),
		MovesString(result.Line))
}

func (u *UciRunner) search(params SearchParams) ([]string, Error) {
	output := []string{}
	result, err := u.engine.Search(params, search.WithOnIteration{Callback: func(r search.Result) {
		output = append(output, InfoString(r))
	}})
	if !IsNil(err) {
		return nil, err
	}

	return append(output, "bestmove "+result.BestMove.String()), NilError
}

func (u *UciRunner) perft(depthString string) ([]string, Error) {
	depth, err := strconv.Atoi(depthString)
	if err != nil || depth < 1 {
		return nil, Errorf("invalid perft depth '%v'", depthString)
	}

	entries, total := u.generator.PerftDivide(u.engine.Position(), depth, func(int) ProgressBar {
		return NoProgressBar
	})
	output := MapSlice(entries, func(entry movegen.PerftDivideEntry) string {
		return fmt.Sprintf("%v: %v", entry.Move, entry.Nodes)
	})
	return append(output, "", fmt.Sprintf("Nodes searched: %v", total)), NilError
}
