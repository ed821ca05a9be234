package bitboards

import (
	"fmt"
	"math/bits"

	. "github.com/cricklet/magicchess/internal/helpers"
)

type MagicValue struct {
	Magic            uint64
	BitsInMagicIndex int
}

func (m MagicValue) String() string {
	return fmt.Sprintf("{%#016x, %v}", m.Magic, m.BitsInMagicIndex)
}

// MagicTable answers slider attack queries in one multiply and one shift:
//
//	Moves[square][((occupancy & BlockerMasks[square]) * magic) >> (64 - bits)]
type MagicTable struct {
	Magics       [64]MagicValue
	BlockerMasks [64]Bitboard
	Moves        [64][]Bitboard
}

var RookMagics = [64]MagicValue{
	{0x8a80104000800020, 12}, {0x0140002000100040, 11}, {0x02801880a0017001, 11}, {0x0100081001000420, 11}, {0x0200020010080420, 11}, {0x03001c0002010008, 11}, {0x8480008002000100, 11}, {0x2080088004402900, 12},
	{0x0000800098204000, 11}, {0x2024401000200040, 10}, {0x0100802000801000, 10}, {0x0120800800801000, 10}, {0x0208808088000400, 10}, {0x0002802200800400, 10}, {0x2200800100020080, 10}, {0x0801000060821100, 11},
	{0x0080044006422000, 11}, {0x0100808020004000, 10}, {0x12108a0010204200, 10}, {0x0140848010000802, 10}, {0x0481828014002800, 10}, {0x8094004002004100, 10}, {0x4010040010010802, 10}, {0x0000020008806104, 11},
	{0x0100400080208000, 11}, {0x2040002120081000, 10}, {0x0021200680100081, 10}, {0x0020100080080080, 10}, {0x0002000a00200410, 10}, {0x0000020080800400, 10}, {0x0080088400100102, 10}, {0x0080004600042881, 11},
	{0x4040008040800020, 11}, {0x0440003000200801, 10}, {0x0004200011004500, 10}, {0x0188020010100100, 10}, {0x0014800401802800, 10}, {0x2080040080800200, 10}, {0x0124080204001001, 10}, {0x0200046502000484, 11},
	{0x0480400080088020, 11}, {0x1000422010034000, 10}, {0x0030200100110040, 10}, {0x0000100021010009, 10}, {0x2002080100110004, 10}, {0x0202008004008002, 10}, {0x0020020004010100, 10}, {0x2048440040820001, 11},
	{0x0101002200408200, 11}, {0x0040802000401080, 10}, {0x4008142004410100, 10}, {0x02060820c0120200, 10}, {0x0001001004080100, 10}, {0x020c020080040080, 10}, {0x2935610830022400, 10}, {0x0044440041009200, 11},
	{0x0280001040802101, 12}, {0x2100190040002085, 11}, {0x80c0084100102001, 11}, {0x4024081001000421, 11}, {0x00020030a0244872, 11}, {0x0012001008414402, 11}, {0x02006104900a0804, 11}, {0x0001004081002402, 12},
}

var BishopMagics = [64]MagicValue{
	{0x0040040844404084, 6}, {0x002004208a004208, 5}, {0x0010190041080202, 5}, {0x0108060845042010, 5}, {0x0581104180800210, 5}, {0x2112080446200010, 5}, {0x1080820820060210, 5}, {0x03c0808410220200, 6},
	{0x0004050404440404, 5}, {0x0000021001420088, 5}, {0x24d0080801082102, 5}, {0x0001020a0a020400, 5}, {0x0000040308200402, 5}, {0x0004011002100800, 5}, {0x0401484104104005, 5}, {0x0801010402020200, 5},
	{0x00400210c3880100, 5}, {0x0404022024108200, 5}, {0x0810018200204102, 7}, {0x0004002801a02003, 7}, {0x0085040820080400, 7}, {0x810102c808880400, 7}, {0x000e900410884800, 5}, {0x8002020480840102, 5},
	{0x0220200865090201, 5}, {0x2010100a02021202, 5}, {0x0152048408022401, 7}, {0x0020080002081110, 9}, {0x4001001021004000, 9}, {0x800040400a011002, 7}, {0x00e4004081011002, 5}, {0x001c004001012080, 5},
	{0x8004200962a00220, 5}, {0x8422100208500202, 5}, {0x2000402200300c08, 7}, {0x8646020080080080, 9}, {0x80020a0200100808, 9}, {0x2010004880111000, 7}, {0x623000a080011400, 5}, {0x42008c0340209202, 5},
	{0x0209188240001000, 5}, {0x400408a884001800, 5}, {0x00110400a6080400, 7}, {0x1840060a44020800, 7}, {0x0090080104000041, 7}, {0x0201011000808101, 7}, {0x1a2208080504f080, 5}, {0x8012020600211212, 5},
	{0x0500861011240000, 5}, {0x0180806108200800, 5}, {0x4000020e01040044, 5}, {0x300000261044000a, 5}, {0x0802241102020002, 5}, {0x0020906061210001, 5}, {0x5a84841004010310, 5}, {0x0004010801011c04, 5},
	{0x000a010109502200, 6}, {0x0000004a02012000, 5}, {0x500201010098b028, 5}, {0x8040002811040900, 5}, {0x0028000010020204, 5}, {0x06000020202d0240, 5}, {0x8918844842082200, 5}, {0x4010011029020020, 6},
}


func MagicIndex(magic uint64, blockerBoard Bitboard, bitsInIndex int) int {
	return int((uint64(blockerBoard) * magic) >> (64 - bitsInIndex))
}

func (t *MagicTable) Lookup(index int, occupied Bitboard) Bitboard {
	magic := t.Magics[index]
	return t.Moves[index][MagicIndex(magic.Magic, occupied&t.BlockerMasks[index], magic.BitsInMagicIndex)]
}

// generateWalkBitboard ray casts from pieceBoard in dir, stopping on (and
// including) the first blocker.
func generateWalkBitboard(
	pieceBoard Bitboard,
	blockerBoard Bitboard,
	dir Dir,
	output Bitboard,
) Bitboard {
	potential := pieceBoard
	for potential != 0 {
		potential = potential.Step(dir)
		output |= potential
		potential &= ^blockerBoard
	}
	return output
}

func RayAttacks(index int, blockers Bitboard, dirs []Dir) Bitboard {
	result := Bitboard(0)
	for _, dir := range dirs {
		result = generateWalkBitboard(SingleBitboard(index), blockers, dir, result)
	}
	return result
}

// generateBlockerMask is every square a ray passes through, minus the last
// square on each ray. A piece on the board edge never changes the result.
func generateBlockerMask(startIndex int, dirs []Dir) Bitboard {
	result := Bitboard(0)
	for _, dir := range dirs {
		walk := generateWalkBitboard(SingleBitboard(startIndex), Bitboard(0), dir, 0)
		result |= walk & PreMoveMasks[dir]
	}
	return result &^ SingleBitboard(startIndex)
}

// generateBlockerBoard projects the bits of seed onto the set bits of the
// mask, lowest first.
func generateBlockerBoard(blockerMask Bitboard, seed int) Bitboard {
	result := Bitboard(0)
	remaining := blockerMask
	for i := 0; remaining != 0; i++ {
		var index int
		index, remaining = remaining.NextIndexOfOne()
		if seed&(1<<i) != 0 {
			result |= SingleBitboard(index)
		}
	}
	return result
}

func NewMagicTable(dirs []Dir, magics [64]MagicValue, label string) (MagicTable, Error) {
	result := MagicTable{Magics: magics}

	for i := 0; i < 64; i++ {
		blockerMask := generateBlockerMask(i, dirs)
		result.BlockerMasks[i] = blockerMask

		magic := magics[i]
		numBits := bits.OnesCount64(uint64(blockerMask))
		if numBits != magic.BitsInMagicIndex {
			return MagicTable{}, Errorf("%v magic for %v expects %v relevant bits, mask has %v",
				label, StringFromBoardIndex(i), magic.BitsInMagicIndex, numBits)
		}

		result.Moves[i] = make([]Bitboard, 1<<numBits)
		filled := make([]bool, 1<<numBits)

		for seed := 0; seed < 1<<numBits; seed++ {
			blockerBoard := generateBlockerBoard(blockerMask, seed)
			moves := RayAttacks(i, blockerBoard, dirs)

			magicIndex := MagicIndex(magic.Magic, blockerBoard, magic.BitsInMagicIndex)
			if filled[magicIndex] && result.Moves[i][magicIndex] != moves {
				return MagicTable{}, Errorf("%v magic for %v collides at index %v",
					label, StringFromBoardIndex(i), magicIndex)
			}
			result.Moves[i][magicIndex] = moves
			filled[magicIndex] = true
		}
	}

	return result, NilError
}
