package helpers

import (
	"strings"
)

type File uint
type Rank uint

type FileRank struct {
	File File
	Rank Rank
}

type Player uint

const (
	White Player = iota
	Black
	NoPlayer
)

var _playerStrings = [3]string{
	"white", "black", "none",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

func PlayerFromString(c string) (Player, Error) {
	switch c {
	case "w":
		return White, NilError
	case "b":
		return Black, NilError
	default:
		return NoPlayer, Errorf("invalid player char %v", c)
	}
}

// PieceType is ordered by value, MVV-LVA indexes on it directly.
type PieceType uint

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	InvalidPiece
)

var AllPieceTypes = [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

func (p PieceType) String() string {
	return [7]string{
		"p", "n", "b", "r", "q", "k", "?",
	}[p]
}

func (p PieceType) IsValid() bool {
	return p <= King
}

func PieceTypeFromString(s string) PieceType {
	switch s {
	case "p":
		return Pawn
	case "n":
		return Knight
	case "b":
		return Bishop
	case "r":
		return Rook
	case "q":
		return Queen
	case "k":
		return King
	default:
		return InvalidPiece
	}
}

// Piece is one of the 12 colored kinds, or XX for none. It fits in 4 bits.
type Piece uint

const (
	XX Piece = iota
	WP
	WN
	WB
	WR
	WQ
	WK
	BP
	BN
	BB
	BR
	BQ
	BK
)

const NumPieces = 13

var PieceTypeLookup = [16]PieceType{
	InvalidPiece,
	Pawn, Knight, Bishop, Rook, Queen, King,
	Pawn, Knight, Bishop, Rook, Queen, King,
	InvalidPiece, InvalidPiece, InvalidPiece,
}

var PlayerLookup = [16]Player{
	NoPlayer,
	White, White, White, White, White, White,
	Black, Black, Black, Black, Black, Black,
	NoPlayer, NoPlayer, NoPlayer,
}

var PieceForPlayer = [2][6]Piece{
	{WP, WN, WB, WR, WQ, WK},
	{BP, BN, BB, BR, BQ, BK},
}

func (p Piece) PieceType() PieceType {
	return PieceTypeLookup[p&0xf]
}

func (p Piece) Player() Player {
	return PlayerLookup[p&0xf]
}

func (p Piece) IsValid() bool {
	return p >= WP && p <= BK
}

func (p Piece) IsWhite() bool {
	return p >= WP && p <= WK
}

func (p Piece) IsBlack() bool {
	return p >= BP && p <= BK
}

func PieceFromString(c rune) (Piece, Error) {
	index := strings.IndexRune(_pieceChars, c)
	if index <= 0 {
		return XX, Errorf("invalid piece %q", c)
	}
	return Piece(index), NilError
}

const _pieceChars = " PNBRQKpnbrqk"

func (p Piece) String() string {
	if p >= NumPieces {
		return "?"
	}
	return string(_pieceChars[p])
}

func (p PieceType) Unicode() string {
	return []string{
		"♟", "♞", "♝", "♜", "♛", "♚", " ",
	}[p]
}

func (f File) String() string {
	return [8]string{
		"a", "b", "c", "d", "e", "f", "g", "h",
	}[f]
}

func (r Rank) String() string {
	return [8]string{
		"1", "2", "3", "4", "5", "6", "7", "8",
	}[r]
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c) - '1'
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %q", c)
	}
	return Rank(rank), NilError
}

func FileFromChar(c byte) (File, Error) {
	file := int(c) - 'a'
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %q", c)
	}
	return File(file), NilError
}

func (v FileRank) String() string {
	return v.File.String() + v.Rank.String()
}

func FileRankFromString(s string) (FileRank, Error) {
	if len(s) != 2 {
		return FileRank{}, Errorf("invalid location %v", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return FileRank{}, Join(Errorf("invalid location %v", s), fileErr, rankErr)
	}

	return FileRank{file, rank}, NilError
}

func IndexFromFileRank(location FileRank) int {
	return int(location.Rank)*8 + int(location.File)
}

func FileRankFromIndex(index int) FileRank {
	f := File(index & 0b111)
	r := Rank(index >> 3)
	return FileRank{f, r}
}

func StringFromBoardIndex(index int) string {
	if index < 0 || index >= 64 {
		return "-"
	}
	return FileRankFromIndex(index).String()
}

func BoardIndexFromString(s string) (int, Error) {
	location, err := FileRankFromString(s)
	if !IsNil(err) {
		return 0, err
	}
	return IndexFromFileRank(location), NilError
}

// Squares, a1 = 0 through h8 = 63.
const (
	A1 = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8

	NoSquare
)

type BoardArray [64]Piece

const _hintForeground = "\033[38;5;244m"
const _whiteForeground = "\033[38;5;255m"
const _blackForeground = "\033[38;5;232m"
const _whiteBackground = "\033[48;5;244m"
const _blackBackground = "\033[48;5;243m"
const _resetColors = "\x1b[0m"

func (b BoardArray) String() string {
	result := ""
	for rank := 7; rank >= 0; rank-- {
		for _, p := range b[rank*8 : (rank+1)*8] {
			if p == XX {
				result += "."
			} else {
				result += p.String()
			}
		}
		if rank != 0 {
			result += "\n"
		}
	}
	return result
}

func (b BoardArray) Unicode() string {
	result := "  "
	for file := 0; file < 8; file++ {
		result += _hintForeground + " " + File(file).String() + " " + _resetColors
	}
	result += "\n"

	for rank := 7; rank >= 0; rank-- {
		result += _hintForeground + Rank(rank).String() + " " + _resetColors
		for file := 0; file < 8; file++ {
			piece := b[IndexFromFileRank(FileRank{File(file), Rank(rank)})]

			if (file+rank)%2 == 1 {
				result += _whiteBackground
			} else {
				result += _blackBackground
			}
			if piece.IsWhite() {
				result += _whiteForeground
			} else {
				result += _blackForeground
			}

			result += " " + piece.PieceType().Unicode() + " " + _resetColors
		}
		result += "\n"
	}

	return result
}
