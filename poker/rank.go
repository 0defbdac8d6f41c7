package poker

// HandRank represents the strength of a poker hand. Lower values are stronger:
// 1 is a royal flush and 7462 is 7-5-4-3-2 offsuit. Zero and anything above
// 7462 are invalid.
type HandRank uint16

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
// The zero value is Invalid.
type HandType uint8

const (
	Invalid HandType = iota
	HighCard
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

const (
	straightFlushCount = 10
	fourOfAKindCount   = 13 * 12
	fullHouseCount     = 13 * 12
	flushCount         = 1277
	straightCount      = 10
	threeOfAKindCount  = 13 * 66
	twoPairCount       = 78 * 11
	onePairCount       = 13 * 220
	highCardCount      = 1277
)

// First rank value of each category.
const (
	baseStraightFlush = 1
	baseFourOfAKind   = baseStraightFlush + straightFlushCount
	baseFullHouse     = baseFourOfAKind + fourOfAKindCount
	baseFlush         = baseFullHouse + fullHouseCount
	baseStraight      = baseFlush + flushCount
	baseThreeOfAKind  = baseStraight + straightCount
	baseTwoPair       = baseThreeOfAKind + threeOfAKindCount
	baseOnePair       = baseTwoPair + twoPairCount
	baseHighCard      = baseOnePair + onePairCount
)

// Bounds of the valid rank range.
const (
	BestRank  HandRank = baseStraightFlush
	WorstRank HandRank = baseHighCard + highCardCount - 1
)

// DistinctRanks is the number of distinct 5-card hand values.
const DistinctRanks = int(WorstRank)

// handTypeBoundaries mark the exclusive upper bound for each category in descending strength order.
var handTypeBoundaries = [...]HandRank{
	HandRank(baseFourOfAKind),
	HandRank(baseFullHouse),
	HandRank(baseFlush),
	HandRank(baseStraight),
	HandRank(baseThreeOfAKind),
	HandRank(baseTwoPair),
	HandRank(baseOnePair),
	HandRank(baseHighCard),
	WorstRank + 1,
}

// typesByStrength lists categories in the same order as handTypeBoundaries.
var typesByStrength = [...]HandType{
	StraightFlush,
	FourOfAKind,
	FullHouse,
	Flush,
	Straight,
	ThreeOfAKind,
	TwoPair,
	Pair,
	HighCard,
}

// Valid reports whether hr lies in [BestRank, WorstRank].
func (hr HandRank) Valid() bool {
	return hr >= BestRank && hr <= WorstRank
}

// Type returns the type of hand (pair, flush, etc.).
func (hr HandRank) Type() HandType {
	switch {
	case !hr.Valid():
		return Invalid
	case hr < handTypeBoundaries[0]:
		return StraightFlush
	case hr < handTypeBoundaries[1]:
		return FourOfAKind
	case hr < handTypeBoundaries[2]:
		return FullHouse
	case hr < handTypeBoundaries[3]:
		return Flush
	case hr < handTypeBoundaries[4]:
		return Straight
	case hr < handTypeBoundaries[5]:
		return ThreeOfAKind
	case hr < handTypeBoundaries[6]:
		return TwoPair
	case hr < handTypeBoundaries[7]:
		return Pair
	default:
		return HighCard
	}
}

// String returns a human-readable hand description.
func (hr HandRank) String() string {
	if hr == BestRank {
		return "Royal Flush"
	}
	return hr.Type().String()
}

// Compare returns 1 if hr is stronger than other, -1 if weaker and 0 on a tie.
func (hr HandRank) Compare(other HandRank) int {
	return CompareHands(hr, other)
}

// Strength returns the rank flipped so that bigger is better (7462 for a royal
// flush, 1 for the worst high card, 0 when invalid).
func (hr HandRank) Strength() uint16 {
	if !hr.Valid() {
		return 0
	}
	return uint16(WorstRank+1) - uint16(hr)
}

// Percentile returns where the rank sits among the distinct hand values,
// 100 being the best and 0 the worst or invalid.
func (hr HandRank) Percentile() float64 {
	if !hr.Valid() {
		return 0
	}
	return 100.0 * float64(WorstRank-hr) / float64(WorstRank-BestRank)
}

// String returns the category name.
func (t HandType) String() string {
	switch t {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Invalid"
	}
}

// HandTypes returns every valid category from strongest to weakest.
func HandTypes() []HandType {
	out := make([]HandType, len(typesByStrength))
	copy(out, typesByStrength[:])
	return out
}

// TypeBounds returns the inclusive rank range of a category.
// Invalid yields (0, 0).
func TypeBounds(t HandType) (lo, hi HandRank) {
	lo = BestRank
	for i, bt := range typesByStrength {
		if bt == t {
			return lo, handTypeBoundaries[i] - 1
		}
		lo = handTypeBoundaries[i]
	}
	return 0, 0
}

// TypeCount returns the number of distinct rank values in a category.
func TypeCount(t HandType) int {
	lo, hi := TypeBounds(t)
	if lo == 0 {
		return 0
	}
	return int(hi-lo) + 1
}

// IsAligned reports whether the category t agrees with the band of r.
func IsAligned(r HandRank, t HandType) bool {
	lo, hi := TypeBounds(t)
	if lo == 0 {
		return !r.Valid()
	}
	return r >= lo && r <= hi
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie.
// Invalid ranks lose to every valid rank and tie with each other.
func CompareHands(a, b HandRank) int {
	av, bv := a.Valid(), b.Valid()
	switch {
	case !av && !bv:
		return 0
	case !av:
		return -1
	case !bv:
		return 1
	case a < b:
		return 1
	case a > b:
		return -1
	}
	return 0
}
