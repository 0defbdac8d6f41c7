package poker

import (
	"cmp"
	"testing"

	paulhankin "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteBest evaluates every 5-card subset independently of the permutation tables.
func bruteBest(cards []CKC) HandRank {
	best := WorstRank + 1
	n := len(cards)
	for mask := 0; mask < 1<<n; mask++ {
		var sub []CKC
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sub = append(sub, cards[i])
			}
		}
		if len(sub) != 5 {
			continue
		}
		best = min(best, Eval5(sub[0], sub[1], sub[2], sub[3], sub[4]))
	}
	return best
}

func TestPermutationTables(t *testing.T) {
	t.Parallel()
	assert.Len(t, perm6, 6)
	assert.Len(t, perm7, 21)

	seen := make(map[[5]uint8]bool)
	for _, p := range perm7 {
		require.False(t, seen[p], "duplicate subset %v", p)
		seen[p] = true
		for i := 1; i < 5; i++ {
			require.Less(t, p[i-1], p[i])
		}
		require.Less(t, p[4], uint8(7))
	}
	assert.Equal(t, [5]uint8{0, 1, 2, 3, 4}, perm7[0])
	assert.Equal(t, [5]uint8{2, 3, 4, 5, 6}, perm7[20])
}

func TestEval7MatchesBruteForce(t *testing.T) {
	t.Parallel()
	deck := NewSeededDeck(5)
	var seven [7]CKC
	var six [6]CKC

	for i := 0; i < 5000; i++ {
		deck.DealEncoded(seven[:])
		require.Equal(t, bruteBest(seven[:]), Eval7(&seven))

		copy(six[:], seven[:6])
		require.Equal(t, bruteBest(six[:]), Eval6(&six))
	}
}

func TestEvalBestKnownHands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		wantType HandType
		want     HandRank
	}{
		{"royal flush on the board", "AsKsQsJsTs2c3d", StraightFlush, 1},
		{"wheel hidden among pairs", "Ah2d3c4s5h5d5c", Straight, 1609},
		{"flush beats straight", "2h4h6h8hTh9c7d", Flush, 0},
		{"two trips make a full house", "KcKdKh9c9d9sAh", FullHouse, 0},
		{"quads with best kicker", "7c7d7h7sAh2c3d", FourOfAKind, 0},
		{"six card pair", "AcAd9h7s5c3d", Pair, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cards := MustParseCards(tc.cards)
			k := EncodeCards(make([]CKC, len(cards)), cards)
			for _, lookup := range Lookups {
				got := EvalBest(k, lookup)
				assert.Equal(t, tc.wantType, got.Type(), "lookup %s", lookup)
				if tc.want != 0 {
					assert.Equal(t, tc.want, got, "lookup %s", lookup)
				}
			}
		})
	}
}

func TestEvalBestPanicsOnBadLength(t *testing.T) {
	t.Parallel()
	k := EncodeCards(make([]CKC, 8), MustParseCards("AsKsQsJsTs9s8s7s"))
	assert.Panics(t, func() { EvalBest(k[:4], LookupBinarySearch) })
	assert.Panics(t, func() { EvalBest(k, LookupBinarySearch) })
	assert.Panics(t, func() { BestFive(k[:3], LookupPerfectHash) })
}

func TestBestFive(t *testing.T) {
	t.Parallel()
	cards := MustParseCards("2c9sAs3dKsQsJs")
	k := EncodeCards(make([]CKC, 7), cards)

	rank, five := BestFive(k, LookupPerfectHash)
	assert.Equal(t, HandRank(323), rank, "ace-high flush")
	got := make([]Card, 5)
	for i, c := range five {
		got[i] = c.Card()
	}
	assert.ElementsMatch(t, MustParseCards("9sAsKsQsJs"), got)
}

func TestEvaluateBatch(t *testing.T) {
	t.Parallel()
	deck := NewSeededDeck(9)
	hands := make([][7]CKC, 64)
	for i := range hands {
		deck.DealEncoded(hands[i][:])
	}

	out := EvaluateBatch(hands, nil)
	require.Len(t, out, len(hands))
	for i := range hands {
		assert.Equal(t, Eval7(&hands[i]), out[i])
	}

	reuse := make([]HandRank, 100)
	out = EvaluateBatch(hands[:10], reuse)
	assert.Len(t, out, 10)
	assert.Same(t, &reuse[0], &out[0])
}

var phSuits = [4]paulhankin.Suit{paulhankin.Club, paulhankin.Diamond, paulhankin.Heart, paulhankin.Spade}

func toPaulHankin(t testing.TB, k CKC) paulhankin.Card {
	t.Helper()
	rank, suit := k.Decode()
	r := paulhankin.Rank(rank + 2)
	if rank == Ace {
		r = paulhankin.Rank(1)
	}
	c, err := paulhankin.MakeCard(phSuits[suit], r)
	require.NoError(t, err)
	return c
}

// Ranks from an independent evaluator order hands the same way, even though
// its scale runs the other way.
func TestEval7OrderingMatchesIndependentEvaluator(t *testing.T) {
	t.Parallel()
	deck := NewSeededDeck(21)
	var a, b [7]CKC
	var pa, pb [7]paulhankin.Card

	for i := 0; i < 5000; i++ {
		deck.DealEncoded(a[:])
		deck.DealEncoded(b[:])
		for j := range a {
			pa[j] = toPaulHankin(t, a[j])
			pb[j] = toPaulHankin(t, b[j])
		}

		ours := CompareHands(Eval7(&a), Eval7(&b))
		theirs := cmp.Compare(paulhankin.Eval7(&pa), paulhankin.Eval7(&pb))
		require.Equal(t, theirs, ours, "hands %v vs %v", a, b)
	}
}

func BenchmarkEval7(b *testing.B) {
	deck := NewSeededDeck(1)
	hands := make([][7]CKC, 1024)
	for i := range hands {
		deck.DealEncoded(hands[i][:])
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Eval7(&hands[i&1023])
	}
}

func BenchmarkEvaluateBatch(b *testing.B) {
	deck := NewSeededDeck(1)
	hands := make([][7]CKC, 1024)
	for i := range hands {
		deck.DealEncoded(hands[i][:])
	}
	out := make([]HandRank, len(hands))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out = EvaluateBatch(hands, out)
	}
}
