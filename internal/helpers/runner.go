package helpers

import (
	"strconv"
	"time"
)

// GameInput is a starting FEN plus the coordinate moves played from it.
type GameInput struct {
	Fen   string
	Moves []string
}

// SearchParams selects the search mode: a fixed depth, or a time budget
// checked between completed iterations.
type SearchParams struct {
	Depth    Optional[int]
	Duration Optional[time.Duration]
}

func (p SearchParams) String() string {
	if p.Duration.HasValue() {
		return "movetime " + p.Duration.Value().String()
	}
	if p.Depth.HasValue() {
		return "depth " + strconv.Itoa(p.Depth.Value())
	}
	return "default"
}
