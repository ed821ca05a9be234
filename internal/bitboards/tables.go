package bitboards

import (
	. "github.com/cricklet/magicchess/internal/helpers"
)

// AttackTables is built once by NewAttackTables and only read afterwards,
// so a single instance can be shared by any number of goroutines.
type AttackTables struct {
	PawnAttacks   [2][64]Bitboard // indexed by the pawn's player
	KnightAttacks [64]Bitboard
	KingAttacks   [64]Bitboard

	Rook   MagicTable
	Bishop MagicTable
}

func leaperAttacks(dirs []Dir) [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		for _, dir := range dirs {
			result[i] |= SingleBitboard(i).Step(dir)
		}
	}
	return result
}

func NewAttackTables() (*AttackTables, Error) {
	tables := &AttackTables{
		KnightAttacks: leaperAttacks(KnightDirs),
		KingAttacks:   leaperAttacks(KingDirs),
	}
	for _, player := range []Player{White, Black} {
		tables.PawnAttacks[player] = leaperAttacks(PawnCaptureDirs[player][:])
	}

	var err Error
	tables.Rook, err = NewMagicTable(RookDirs, RookMagics, "rook")
	if !IsNil(err) {
		return nil, err
	}
	tables.Bishop, err = NewMagicTable(BishopDirs, BishopMagics, "bishop")
	if !IsNil(err) {
		return nil, err
	}

	return tables, NilError
}

func (t *AttackTables) PawnAttackBitboard(player Player, index int) Bitboard {
	return t.PawnAttacks[player][index]
}

func (t *AttackTables) KnightAttackBitboard(index int) Bitboard {
	return t.KnightAttacks[index]
}

func (t *AttackTables) KingAttackBitboard(index int) Bitboard {
	return t.KingAttacks[index]
}

func (t *AttackTables) RookAttacks(index int, occupied Bitboard) Bitboard {
	return t.Rook.Lookup(index, occupied)
}

func (t *AttackTables) BishopAttacks(index int, occupied Bitboard) Bitboard {
	return t.Bishop.Lookup(index, occupied)
}

func (t *AttackTables) QueenAttacks(index int, occupied Bitboard) Bitboard {
	return t.Rook.Lookup(index, occupied) | t.Bishop.Lookup(index, occupied)
}

// Attacks returns the squares a piece of the given type on index attacks.
// Pawns need a player, see PawnAttackBitboard.
func (t *AttackTables) Attacks(pieceType PieceType, index int, occupied Bitboard) Bitboard {
	switch pieceType {
	case Knight:
		return t.KnightAttacks[index]
	case Bishop:
		return t.Bishop.Lookup(index, occupied)
	case Rook:
		return t.Rook.Lookup(index, occupied)
	case Queen:
		return t.QueenAttacks(index, occupied)
	case King:
		return t.KingAttacks[index]
	}
	return 0
}
