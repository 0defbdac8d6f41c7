package poker

import "fmt"

// perm6 and perm7 list every 5-card subset of 6 and 7 cards by index.
var (
	perm6 = func() (p [6][5]uint8) {
		copy(p[:], combinations5(6))
		return p
	}()
	perm7 = func() (p [21][5]uint8) {
		copy(p[:], combinations5(7))
		return p
	}()
)

// combinations5 enumerates 5-element index subsets of n in lexicographic order.
func combinations5(n int) [][5]uint8 {
	var out [][5]uint8
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					for e := d + 1; e < n; e++ {
						out = append(out, [5]uint8{uint8(a), uint8(b), uint8(c), uint8(d), uint8(e)})
					}
				}
			}
		}
	}
	return out
}

// Eval6 returns the best rank among the 6 five-card subsets.
func Eval6(cards *[6]CKC) HandRank {
	return bestOf(cards[:], perm6[:], Eval5)
}

// Eval7 returns the best rank among the 21 five-card subsets.
func Eval7(cards *[7]CKC) HandRank {
	return bestOf(cards[:], perm7[:], Eval5)
}

// EvalBest evaluates 5, 6 or 7 encoded cards with the given lookup and returns
// the best rank. Any other length panics.
func EvalBest(cards []CKC, lookup Lookup) HandRank {
	eval := lookup.Func()
	switch len(cards) {
	case 5:
		return eval(cards[0], cards[1], cards[2], cards[3], cards[4])
	case 6:
		return bestOf(cards, perm6[:], eval)
	case 7:
		return bestOf(cards, perm7[:], eval)
	default:
		panic(fmt.Sprintf("poker: cannot evaluate %d cards", len(cards)))
	}
}

// BestFive is EvalBest that also reports which five cards make the hand.
// When several subsets tie, the first in combination order wins.
func BestFive(cards []CKC, lookup Lookup) (HandRank, [5]CKC) {
	eval := lookup.Func()
	var perms [][5]uint8
	switch len(cards) {
	case 5:
		rank := eval(cards[0], cards[1], cards[2], cards[3], cards[4])
		return rank, [5]CKC(cards)
	case 6:
		perms = perm6[:]
	case 7:
		perms = perm7[:]
	default:
		panic(fmt.Sprintf("poker: cannot evaluate %d cards", len(cards)))
	}

	best := WorstRank + 1
	var bestIdx [5]uint8
	for _, p := range perms {
		rank := eval(cards[p[0]], cards[p[1]], cards[p[2]], cards[p[3]], cards[p[4]])
		if rank < best {
			best, bestIdx = rank, p
		}
	}
	var five [5]CKC
	for i, j := range bestIdx {
		five[i] = cards[j]
	}
	return best, five
}

// bestOf scans every subset once, keeping the numerically lowest rank.
func bestOf(cards []CKC, perms [][5]uint8, eval func(c1, c2, c3, c4, c5 CKC) HandRank) HandRank {
	best := WorstRank + 1
	for _, p := range perms {
		if rank := eval(cards[p[0]], cards[p[1]], cards[p[2]], cards[p[3]], cards[p[4]]); rank < best {
			best = rank
		}
	}
	return best
}

// EvaluateBatch evaluates multiple 7-card hands and writes results into out.
// If out is nil or smaller than hands, a new slice is allocated and returned.
func EvaluateBatch(hands [][7]CKC, out []HandRank) []HandRank {
	if len(out) < len(hands) {
		out = make([]HandRank, len(hands))
	} else {
		out = out[:len(hands)]
	}

	for i := range hands {
		out[i] = Eval7(&hands[i])
	}

	return out
}
