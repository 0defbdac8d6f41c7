package poker

import "testing"

func TestHandTypeBands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		typ    HandType
		lo, hi HandRank
	}{
		{StraightFlush, 1, 10},
		{FourOfAKind, 11, 166},
		{FullHouse, 167, 322},
		{Flush, 323, 1599},
		{Straight, 1600, 1609},
		{ThreeOfAKind, 1610, 2467},
		{TwoPair, 2468, 3325},
		{Pair, 3326, 6185},
		{HighCard, 6186, 7462},
	}

	total := 0
	for _, tc := range tests {
		lo, hi := TypeBounds(tc.typ)
		if lo != tc.lo || hi != tc.hi {
			t.Errorf("TypeBounds(%s) = [%d, %d], want [%d, %d]", tc.typ, lo, hi, tc.lo, tc.hi)
		}
		if tc.lo.Type() != tc.typ || tc.hi.Type() != tc.typ {
			t.Errorf("band edges of %s classify as %s and %s", tc.typ, tc.lo.Type(), tc.hi.Type())
		}
		if (tc.hi + 1).Valid() && (tc.hi+1).Type() == tc.typ {
			t.Errorf("%d should be outside %s", tc.hi+1, tc.typ)
		}
		total += TypeCount(tc.typ)
	}

	if total != DistinctRanks {
		t.Errorf("bands cover %d ranks, want %d", total, DistinctRanks)
	}
	if lo, hi := TypeBounds(Invalid); lo != 0 || hi != 0 {
		t.Errorf("TypeBounds(Invalid) = [%d, %d]", lo, hi)
	}
}

func TestHandRankValidity(t *testing.T) {
	t.Parallel()
	for _, r := range []HandRank{0, WorstRank + 1, 65535} {
		if r.Valid() {
			t.Errorf("%d should be invalid", r)
		}
		if r.Type() != Invalid || r.String() != "Invalid" {
			t.Errorf("%d: type %s, string %q", r, r.Type(), r.String())
		}
		if r.Strength() != 0 || r.Percentile() != 0 {
			t.Errorf("%d: strength %d, percentile %f", r, r.Strength(), r.Percentile())
		}
	}
}

func TestHandRankString(t *testing.T) {
	t.Parallel()
	tests := map[HandRank]string{
		1:    "Royal Flush",
		2:    "Straight Flush",
		11:   "Four of a Kind",
		200:  "Full House",
		400:  "Flush",
		1605: "Straight",
		2000: "Three of a Kind",
		3000: "Two Pair",
		5000: "Pair",
		7462: "High Card",
	}
	for r, want := range tests {
		if got := r.String(); got != want {
			t.Errorf("HandRank(%d).String() = %q, want %q", r, got, want)
		}
	}
}

func TestStrengthAndPercentile(t *testing.T) {
	t.Parallel()
	if BestRank.Strength() != 7462 || WorstRank.Strength() != 1 {
		t.Errorf("strength range is [%d, %d]", WorstRank.Strength(), BestRank.Strength())
	}
	if BestRank.Percentile() != 100 || WorstRank.Percentile() != 0 {
		t.Errorf("percentile range is [%f, %f]", WorstRank.Percentile(), BestRank.Percentile())
	}
	if HandRank(100).Strength() <= HandRank(101).Strength() {
		t.Error("strength must grow as rank falls")
	}
}

func TestIsAligned(t *testing.T) {
	t.Parallel()
	if !IsAligned(1, StraightFlush) || !IsAligned(7462, HighCard) {
		t.Error("band edges should align")
	}
	if IsAligned(11, StraightFlush) || IsAligned(1609, ThreeOfAKind) {
		t.Error("ranks outside a band should not align")
	}
	if !IsAligned(0, Invalid) || IsAligned(5, Invalid) {
		t.Error("only invalid ranks align with Invalid")
	}
}

func TestCompareHands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b HandRank
		want int
	}{
		{1, 2, 1},
		{7462, 7461, -1},
		{500, 500, 0},
		{7462, 0, 1},
		{0, 7462, -1},
		{0, 8000, 0},
	}
	for _, tc := range tests {
		if got := CompareHands(tc.a, tc.b); got != tc.want {
			t.Errorf("CompareHands(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
		if got := tc.a.Compare(tc.b); got != tc.want {
			t.Errorf("%d.Compare(%d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestHandTypesOrder(t *testing.T) {
	t.Parallel()
	types := HandTypes()
	if len(types) != 9 || types[0] != StraightFlush || types[8] != HighCard {
		t.Fatalf("unexpected order %v", types)
	}
	types[0] = Invalid
	if HandTypes()[0] != StraightFlush {
		t.Error("HandTypes must return a copy")
	}
}
