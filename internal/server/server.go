package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"github.com/cricklet/magicchess/internal/config"
	"github.com/cricklet/magicchess/internal/engine"
	"github.com/cricklet/magicchess/internal/evaluation"
	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/cricklet/magicchess/internal/movegen"
	"github.com/cricklet/magicchess/internal/search"
)

type MovesResponse struct {
	Fen     string   `json:"fen"`
	Player  string   `json:"player"`
	InCheck bool     `json:"inCheck"`
	Moves   []string `json:"moves"`
}

type SearchRequest struct {
	Fen        string   `json:"fen"`
	Moves      []string `json:"moves"`
	Depth      *int     `json:"depth"`
	MoveTimeMs *int     `json:"movetime"`
}

type SearchResponse struct {
	BestMove    string   `json:"bestMove"`
	Score       int      `json:"score"`
	ScoreString string   `json:"scoreString"`
	Mate        bool     `json:"mate"`
	Depth       int      `json:"depth"`
	Nodes       int      `json:"nodes"`
	ElapsedMs   int64    `json:"elapsedMs"`
	Pv          []string `json:"pv"`
}

func responseFromResult(result search.Result) SearchResponse {
	return SearchResponse{
		BestMove:    result.BestMove.String(),
		Score:       result.Score,
		ScoreString: search.ScoreString(result.Score, result.Depth),
		Mate:        result.IsMate(),
		Depth:       result.Depth,
		Nodes:       result.Nodes,
		ElapsedMs:   result.Elapsed.Milliseconds(),
		Pv: lo.Map(result.Line, func(m Move, _ int) string {
			return m.String()
		}),
	}
}

type Server struct {
	generator *movegen.Generator
	config    config.Config
	logger    Logger
	upgrader  websocket.Upgrader
}

func NewServer(generator *movegen.Generator, cfg config.Config, logger Logger) *Server {
	return &Server{
		generator: generator,
		config:    cfg,
		logger:    logger,
	}
}

func (s *Server) newEngine() *engine.Engine {
	searcher := search.NewSearcher(s.generator, evaluation.Evaluator{},
		append(s.config.SearchOptions(), search.WithLogger{Logger: s.logger})...)
	return engine.NewEngine(s.generator, searcher, Some(s.logger))
}

// searchParams prefers an explicit depth, then a movetime, then the
// configured default.
func (s *Server) searchParams(depth *int, moveTimeMs *int) SearchParams {
	if depth != nil {
		return SearchParams{Depth: Some(*depth)}
	}
	if moveTimeMs != nil {
		return SearchParams{Duration: Some(time.Duration(*moveTimeMs) * time.Millisecond)}
	}
	return s.config.DefaultSearchParams()
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/moves", s.handleMoves).Methods(http.MethodGet)
	router.HandleFunc("/search", s.handleSearch).Methods(http.MethodPost)
	router.HandleFunc("/ws", s.handleWebsocket)
	return router
}

func (s *Server) ListenAndServe() Error {
	s.logger.Info().Str("addr", s.config.ServerAddr).Msg("serving")
	return Wrap(http.ListenAndServe(s.config.ServerAddr, s.Router()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func playerString(p Player) string {
	if p == White {
		return "white"
	}
	return "black"
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		fen = StartFen
	}

	e := s.newEngine()
	err := e.SetupPosition(GameInput{Fen: fen})
	if !IsNil(err) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	moves := lo.Map(e.LegalMoves(), func(m Move, _ int) string {
		return m.String()
	})
	if selection := r.URL.Query().Get("selection"); selection != "" {
		moves, err = e.MovesForSelection(selection)
		if !IsNil(err) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, MovesResponse{
		Fen:     e.FenString(),
		Player:  playerString(e.Player()),
		InCheck: e.PlayerIsInCheck(),
		Moves:   moves,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	request := SearchRequest{}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if request.Fen == "" {
		request.Fen = StartFen
	}

	e := s.newEngine()
	err := e.SetupPosition(GameInput{Fen: request.Fen, Moves: request.Moves})
	if !IsNil(err) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := e.Search(s.searchParams(request.Depth, request.MoveTimeMs))
	if !IsNil(err) {
		s.logger.Println("search:", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, responseFromResult(result))
}

type UpdateToWeb struct {
	FenString     string   `json:"fenString"`
	LastMove      string   `json:"lastMove"`
	Selection     string   `json:"selection"`
	PossibleMoves []string `json:"possibleMoves"`
	Player        string   `json:"player"`
	InCheck       bool     `json:"inCheck"`
	GameOver      bool     `json:"gameOver"`
}

type SearchFromWeb struct {
	Depth      *int `json:"depth"`
	MoveTimeMs *int `json:"movetime"`
	Play       bool `json:"play"`
}

type MessageFromWeb struct {
	NewFen    *string        `json:"newFen"`
	Selection *string        `json:"selection"`
	Move      *string        `json:"move"`
	Rewind    *int           `json:"rewind"`
	Search    *SearchFromWeb `json:"search"`
}

// MessageToWeb sets exactly one field.
type MessageToWeb struct {
	Update    *UpdateToWeb    `json:"update,omitempty"`
	Iteration *SearchResponse `json:"iteration,omitempty"`
	BestMove  *SearchResponse `json:"bestMove,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type connection struct {
	conn   *websocket.Conn
	engine *engine.Engine
	logger Logger
	mutex  sync.Mutex
}

func (c *connection) send(message MessageToWeb) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if err := c.conn.WriteJSON(message); err != nil {
		c.logger.Println("websocket write:", err)
	}
}

func (c *connection) sendError(err Error) {
	c.send(MessageToWeb{Error: err.Error()})
}

func (c *connection) sendUpdate(update UpdateToWeb) {
	update.FenString = c.engine.FenString()
	update.Player = playerString(c.engine.Player())
	update.InCheck = c.engine.PlayerIsInCheck()
	update.GameOver = c.engine.NoValidMoves()
	if lastMove := c.engine.LastMove(); lastMove.HasValue() {
		update.LastMove = lastMove.Value().String()
	}
	c.send(MessageToWeb{Update: &update})
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Println("websocket upgrade:", err)
		return
	}
	defer conn.Close()

	c := &connection{conn: conn, engine: s.newEngine(), logger: s.logger}
	if err := c.engine.SetupPosition(GameInput{Fen: StartFen}); !IsNil(err) {
		c.sendError(err)
		return
	}

	for {
		message := MessageFromWeb{}
		if err := conn.ReadJSON(&message); err != nil {
			s.logger.Debug().Err(err).Msg("websocket closed")
			return
		}
		s.handleMessageFromWeb(c, message)
	}
}

func (s *Server) handleMessageFromWeb(c *connection, message MessageFromWeb) {
	update := UpdateToWeb{}

	if message.NewFen != nil {
		err := c.engine.SetupPosition(GameInput{Fen: *message.NewFen})
		if !IsNil(err) {
			c.sendError(err)
			return
		}
	} else if message.Selection != nil {
		update.Selection = *message.Selection
		moves, err := c.engine.MovesForSelection(*message.Selection)
		if !IsNil(err) {
			c.sendError(err)
			return
		}
		update.PossibleMoves = moves
	} else if message.Move != nil {
		err := c.engine.PerformMoveFromString(*message.Move)
		if !IsNil(err) {
			c.sendError(err)
			return
		}
	} else if message.Rewind != nil {
		err := c.engine.Rewind(*message.Rewind)
		if !IsNil(err) {
			c.sendError(err)
			return
		}
	} else if message.Search != nil {
		params := s.searchParams(message.Search.Depth, message.Search.MoveTimeMs)
		result, err := c.engine.Search(params, search.WithOnIteration{Callback: func(r search.Result) {
			iteration := responseFromResult(r)
			c.send(MessageToWeb{Iteration: &iteration})
		}})
		if !IsNil(err) {
			c.sendError(err)
			return
		}

		bestMove := responseFromResult(result)
		c.send(MessageToWeb{BestMove: &bestMove})

		if !message.Search.Play || result.BestMove == NoMove {
			return
		}
		if err := c.engine.PerformMove(result.BestMove); !IsNil(err) {
			c.sendError(err)
			return
		}
	} else {
		c.sendError(Errorf("empty message"))
		return
	}

	c.sendUpdate(update)
}
