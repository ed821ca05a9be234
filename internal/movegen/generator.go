package movegen

import (
	. "github.com/cricklet/magicchess/internal/bitboards"
	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
)

// Generator produces moves from the shared, immutable attack tables. It
// holds no per-position state and is safe to use from many goroutines.
type Generator struct {
	tables *AttackTables
}

func New(tables *AttackTables) *Generator {
	return &Generator{tables: tables}
}

func NewDefault() (*Generator, Error) {
	tables, err := NewAttackTables()
	if !IsNil(err) {
		return nil, err
	}
	return New(tables), NilError
}

func (g *Generator) Tables() *AttackTables {
	return g.tables
}

type MovesBuffer []Move

var GetMovesBuffer, ReleaseMovesBuffer, StatsMovesBuffer = CreatePool(
	func() MovesBuffer {
		return make(MovesBuffer, 0, 256)
	},
	func(t *MovesBuffer) {
		*t = (*t)[:0]
	},
)

// IsAttackedBy reports whether any piece of attacker attacks index.
func (g *Generator) IsAttackedBy(index int, attacker Player, pos *Position) bool {
	pieces := &pos.Players[attacker].Pieces
	occupied := pos.Occupied

	// a pawn of the defending color standing on index would attack exactly
	// the squares the attacking pawns must stand on
	if g.tables.PawnAttacks[attacker.Other()][index]&pieces[Pawn] != 0 {
		return true
	}
	if g.tables.KnightAttacks[index]&pieces[Knight] != 0 {
		return true
	}
	if g.tables.KingAttacks[index]&pieces[King] != 0 {
		return true
	}
	if g.tables.BishopAttacks(index, occupied)&(pieces[Bishop]|pieces[Queen]) != 0 {
		return true
	}
	if g.tables.RookAttacks(index, occupied)&(pieces[Rook]|pieces[Queen]) != 0 {
		return true
	}
	return false
}

// IsAttacked reports whether the side not to move attacks index.
func (g *Generator) IsAttacked(index int, pos *Position) bool {
	return g.IsAttackedBy(index, pos.Player.Other(), pos)
}

func (g *Generator) InCheck(pos *Position) bool {
	return g.IsAttacked(pos.KingIndex(pos.Player), pos)
}

var _promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

func addPawnMoves(moves *[]Move, player Player, source int, target int, flags MoveFlags) {
	pawn := PieceForPlayer[player][Pawn]
	if PawnPromotionRanks[player].IsSet(target) {
		for _, pieceType := range _promotionOrder {
			*moves = append(*moves, NewMove(source, target, pawn, PieceForPlayer[player][pieceType], flags))
		}
		return
	}
	*moves = append(*moves, NewMove(source, target, pawn, XX, flags))
}

func (g *Generator) generatePawnMoves(pos *Position, moves *[]Move, capturesOnly bool) {
	player := pos.Player
	enemies := pos.Players[player.Other()].Occupied
	push := PawnPushOffsets[player]

	pawns := pos.Players[player].Pieces[Pawn]
	for pawns != 0 {
		var source int
		source, pawns = pawns.NextIndexOfOne()

		target := source + push
		if !capturesOnly && !pos.Occupied.IsSet(target) {
			addPawnMoves(moves, player, source, target, QuietFlags)

			skip := target + push
			if PawnHomeRanks[player].IsSet(source) && !pos.Occupied.IsSet(skip) {
				*moves = append(*moves, NewMove(source, skip, PieceForPlayer[player][Pawn], XX, DoublePushFlag))
			}
		}

		attacks := g.tables.PawnAttacks[player][source]
		captures := attacks & enemies
		for captures != 0 {
			target, captures = captures.NextIndexOfOne()
			addPawnMoves(moves, player, source, target, CaptureFlag)
		}

		if pos.HasEnPassantTarget() && attacks.IsSet(pos.EnPassantTarget) {
			*moves = append(*moves, NewMove(source, pos.EnPassantTarget, PieceForPlayer[player][Pawn], XX, CaptureFlag|EnPassantFlag))
		}
	}
}

func (g *Generator) generatePieceMoves(pos *Position, moves *[]Move, capturesOnly bool) {
	player := pos.Player
	enemies := pos.Players[player.Other()].Occupied
	allowed := ^pos.Players[player].Occupied
	if capturesOnly {
		allowed = enemies
	}

	for _, pieceType := range []PieceType{Knight, Bishop, Rook, Queen, King} {
		piece := PieceForPlayer[player][pieceType]
		sources := pos.Players[player].Pieces[pieceType]
		for sources != 0 {
			var source int
			source, sources = sources.NextIndexOfOne()

			targets := g.tables.Attacks(pieceType, source, pos.Occupied) & allowed
			for targets != 0 {
				var target int
				target, targets = targets.NextIndexOfOne()

				flags := QuietFlags
				if enemies.IsSet(target) {
					flags = CaptureFlag
				}
				*moves = append(*moves, NewMove(source, target, piece, XX, flags))
			}
		}
	}
}

type castlingCandidate struct {
	right   CastlingRights
	king    Piece
	from    int
	to      int
	transit int
	empty   Bitboard
}

var _castlingCandidates = [2][2]castlingCandidate{
	{
		{WhiteKingside, WK, E1, G1, F1, BitboardWithSquares(F1, G1)},
		{WhiteQueenside, WK, E1, C1, D1, BitboardWithSquares(B1, C1, D1)},
	},
	{
		{BlackKingside, BK, E8, G8, F8, BitboardWithSquares(F8, G8)},
		{BlackQueenside, BK, E8, C8, D8, BitboardWithSquares(B8, C8, D8)},
	},
}

// generateCastlingMoves checks the rights, the empty squares between king
// and rook, and that the king neither starts on nor passes through an
// attacked square. Landing in check is left to the legality filter.
func (g *Generator) generateCastlingMoves(pos *Position, moves *[]Move) {
	for _, candidate := range _castlingCandidates[pos.Player] {
		if pos.CastlingRights&candidate.right == 0 {
			continue
		}
		if pos.Occupied&candidate.empty != 0 {
			continue
		}
		if g.IsAttacked(candidate.from, pos) || g.IsAttacked(candidate.transit, pos) {
			continue
		}
		*moves = append(*moves, NewMove(candidate.from, candidate.to, candidate.king, XX, CastlingFlag))
	}
}

// GeneratePseudoMoves appends every move for the side to move, ignoring
// whether it leaves the mover's own king attacked.
func (g *Generator) GeneratePseudoMoves(pos *Position, moves *[]Move) {
	g.generatePawnMoves(pos, moves, false)
	g.generatePieceMoves(pos, moves, false)
	g.generateCastlingMoves(pos, moves)
}

// GeneratePseudoCaptures appends captures, capture promotions and en
// passant only.
func (g *Generator) GeneratePseudoCaptures(pos *Position, moves *[]Move) {
	g.generatePawnMoves(pos, moves, true)
	g.generatePieceMoves(pos, moves, true)
}
