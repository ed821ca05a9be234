package game

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/cricklet/magicchess/internal/helpers"
)

const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func fenStringForPlayer(p Player) string {
	if p == White {
		return "w"
	}
	return "b"
}

func fenStringForBoard(b BoardArray) string {
	s := strings.Builder{}
	for rank := 7; rank >= 0; rank-- {
		numSpaces := 0
		for file := 0; file < 8; file++ {
			piece := b[IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)})]
			if piece == XX {
				numSpaces++
				continue
			}
			if numSpaces > 0 {
				s.WriteString(strconv.Itoa(numSpaces))
				numSpaces = 0
			}
			s.WriteString(piece.String())
		}
		if numSpaces > 0 {
			s.WriteString(strconv.Itoa(numSpaces))
		}
		if rank != 0 {
			s.WriteByte('/')
		}
	}
	return s.String()
}

func (p *Position) Fen() string {
	return fmt.Sprintf("%v %v %v %v %v %v",
		fenStringForBoard(p.ToBoardArray()),
		fenStringForPlayer(p.Player),
		p.CastlingRights,
		StringFromBoardIndex(p.EnPassantTarget),
		p.HalfMoveClock,
		p.FullMoveClock)
}

func MustParseFen(s string) Position {
	position, err := ParseFen(s)
	if !IsNil(err) {
		panic(err)
	}
	return position
}

// ParseFen accepts the board and side to move, optionally followed by
// castling and en passant fields, optionally followed by both clocks.
func ParseFen(s string) (Position, Error) {
	ss := strings.Fields(s)
	if len(ss) != 6 && len(ss) != 4 && len(ss) != 2 {
		return Position{}, Errorf("wrong num %v of fields in '%v'", len(ss), s)
	}

	position := Position{
		EnPassantTarget: NoSquare,
		FullMoveClock:   1,
	}

	rank, file := 7, 0
	for _, c := range ss[0] {
		switch {
		case c == '/':
			if file != 8 || rank == 0 {
				return Position{}, Errorf("wrong number of squares in rank %v of '%v'", rank+1, s)
			}
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			piece, err := PieceFromString(c)
			if !IsNil(err) {
				return Position{}, Join(Errorf("unknown character '%c' in '%v'", c, s), err)
			}
			if file >= 8 {
				return Position{}, Errorf("too many squares in rank %v of '%v'", rank+1, s)
			}
			position.SetSquare(IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)}), piece)
			file++
		}
		if file > 8 {
			return Position{}, Errorf("too many squares in rank %v of '%v'", rank+1, s)
		}
	}
	if rank != 0 || file != 8 {
		return Position{}, Errorf("incomplete board in '%v'", s)
	}

	player, err := PlayerFromString(ss[1])
	if !IsNil(err) {
		return Position{}, Join(Errorf("invalid player in '%v'", s), err)
	}
	position.Player = player

	if len(ss) >= 4 {
		for _, c := range ss[2] {
			switch c {
			case '-':
			case 'K':
				position.CastlingRights |= WhiteKingside
			case 'Q':
				position.CastlingRights |= WhiteQueenside
			case 'k':
				position.CastlingRights |= BlackKingside
			case 'q':
				position.CastlingRights |= BlackQueenside
			default:
				return Position{}, Errorf("invalid castling rights '%v' in '%v'", ss[2], s)
			}
		}

		if ss[3] != "-" {
			target, err := BoardIndexFromString(ss[3])
			if !IsNil(err) {
				return Position{}, Join(Errorf("invalid en passant target in '%v'", s), err)
			}
			position.EnPassantTarget = target
		}
	}

	if len(ss) == 6 {
		halfMoveClock, err := strconv.Atoi(ss[4])
		if err != nil {
			return Position{}, Join(Errorf("invalid half move clock in '%v'", s), Wrap(err))
		}
		fullMoveClock, err := strconv.Atoi(ss[5])
		if err != nil {
			return Position{}, Join(Errorf("invalid full move clock in '%v'", s), Wrap(err))
		}
		position.HalfMoveClock, position.FullMoveClock = halfMoveClock, fullMoveClock
	}

	position.dropUnsupportedCastlingRights()

	if err := position.CheckInvariants(); !IsNil(err) {
		return Position{}, Join(Errorf("invalid position '%v'", s), err)
	}

	return position, NilError
}

// dropUnsupportedCastlingRights clears rights whose king or rook is not on
// its home square, so move generation can trust the rights alone.
func (p *Position) dropUnsupportedCastlingRights() {
	required := []struct {
		right      CastlingRights
		king, rook Piece
		kingIndex  int
		rookIndex  int
	}{
		{WhiteKingside, WK, WR, E1, H1},
		{WhiteQueenside, WK, WR, E1, A1},
		{BlackKingside, BK, BR, E8, H8},
		{BlackQueenside, BK, BR, E8, A8},
	}
	for _, r := range required {
		if p.PieceAt(r.kingIndex) != r.king || p.PieceAt(r.rookIndex) != r.rook {
			p.CastlingRights &^= r.right
		}
	}
}
