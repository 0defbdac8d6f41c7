package poker

// CKC is a card packed in the Cactus-Kev layout used by the lookup evaluators:
//
//	+--------+--------+--------+--------+
//	|xxxbbbbb|bbbbbbbb|cdhsrrrr|xxpppppp|
//	+--------+--------+--------+--------+
//
//	p = prime of the rank (deuce=2, trey=3, four=5, ..., ace=41)
//	r = rank index (deuce=0, trey=1, ..., ace=12)
//	cdhs = one-hot suit flag
//	b = one-hot rank flag
//
// ORing five cards yields their rank-presence mask in bits 16-28, ANDing them
// leaves a suit bit only for a flush, and multiplying the low bytes gives a
// product that identifies the rank multiset.
type CKC uint32

const (
	ckcPrimeMask = 0x3F
	ckcRankShift = 8
	ckcSuitMask  = 0xF000
	ckcFlagShift = 16
)

// rankPrimes assigns a distinct prime to each rank, deuce first.
var rankPrimes = [13]uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

// suitFlags maps suit index to its flag bit (clubs=0x8000 ... spades=0x1000).
var suitFlags = [4]uint32{0x8000, 0x4000, 0x2000, 0x1000}

// ckcByIndex holds the encoding of every card by bit position.
var ckcByIndex = func() [52]CKC {
	var table [52]CKC
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			table[int(suit)*13+int(rank)] = Encode(rank, suit)
		}
	}
	return table
}()

// Encode packs a rank (0-12) and suit (0-3) into a CKC.
// Out-of-range arguments are masked into range rather than rejected.
func Encode(rank, suit uint8) CKC {
	rank %= 13
	suit &= 3
	return CKC(uint32(1)<<(ckcFlagShift+uint(rank)) |
		suitFlags[suit] |
		uint32(rank)<<ckcRankShift |
		rankPrimes[rank])
}

// CKC returns the packed encoding of the card.
// The zero Card and multi-bit values encode as 0.
func (c Card) CKC() CKC {
	if !c.Valid() {
		return 0
	}
	return ckcByIndex[c.Index()]
}

// EncodeCards packs cards into dst, which must be at least len(cards) long.
func EncodeCards(dst []CKC, cards []Card) []CKC {
	dst = dst[:len(cards)]
	for i, c := range cards {
		dst[i] = c.CKC()
	}
	return dst
}

// RankIndex returns the 4-bit rank field.
func (k CKC) RankIndex() uint8 {
	return uint8(k>>ckcRankShift) & 0xF
}

// Prime returns the rank prime stored in the low bits.
func (k CKC) Prime() uint32 {
	return uint32(k) & ckcPrimeMask
}

// RankFlag returns the 13-bit one-hot rank field.
func (k CKC) RankFlag() uint16 {
	return uint16(k >> ckcFlagShift)
}

// SuitFlag returns the 4-bit one-hot suit field, already shifted down.
func (k CKC) SuitFlag() uint8 {
	return uint8((uint32(k) & ckcSuitMask) >> 12)
}

// Suit returns the suit index (0-3) of the flag.
func (k CKC) Suit() uint8 {
	switch uint32(k) & ckcSuitMask {
	case 0x8000:
		return Clubs
	case 0x4000:
		return Diamonds
	case 0x2000:
		return Hearts
	default:
		return Spades
	}
}

// Decode returns the rank and suit the card was encoded from.
func (k CKC) Decode() (rank, suit uint8) {
	return k.RankIndex(), k.Suit()
}

// Card converts back to the bitset representation.
func (k CKC) Card() Card {
	rank, suit := k.Decode()
	return NewCard(rank, suit)
}

// Valid reports whether k has the shape produced by Encode.
func (k CKC) Valid() bool {
	rank := k.RankIndex()
	if rank > Ace {
		return false
	}
	flag := k.RankFlag()
	suit := k.SuitFlag()
	return flag == 1<<rank &&
		suit != 0 && suit&(suit-1) == 0 &&
		uint32(k)&0xC0 == 0 &&
		k.Prime() == rankPrimes[rank] &&
		uint32(k)>>29 == 0
}

// String returns the two-character notation of the encoded card.
func (k CKC) String() string {
	if !k.Valid() {
		return "??"
	}
	return k.Card().String()
}
