package poker

import (
	"cmp"
	"fmt"
	"math/bits"
	"slices"
)

// Table sizes.
const (
	maskTableSize   = 1 << 13 // every 13-bit rank-presence mask
	pairedHandCount = fourOfAKindCount + fullHouseCount + threeOfAKindCount + twoPairCount + onePairCount
	hashTableSize   = 1 << 13
	hashBucketCount = 512
)

// straightMasks lists the ten straights from broadway down to the wheel.
var straightMasks = [straightCount]uint16{
	0x1F00, 0x0F80, 0x07C0, 0x03E0, 0x01F0,
	0x00F8, 0x007C, 0x003E, 0x001F,
	0x100F, // A-2-3-4-5
}

// lookupTables holds every precomputed table used by the 5-card evaluators.
// It is built once and only read afterwards.
type lookupTables struct {
	// flushes maps the rank mask of a suited hand to its rank value.
	flushes [maskTableSize]uint16
	// unique5 maps the rank mask of an unsuited hand with five distinct ranks
	// to its rank value; zero for masks with fewer than five bits.
	unique5 [maskTableSize]uint16
	// products holds the prime product of every paired hand, ascending,
	// with values as the parallel rank values.
	products [pairedHandCount]uint32
	values   [pairedHandCount]uint16
	// hashAdjust and hashValues implement a perfect hash over products.
	hashAdjust [hashBucketCount]uint16
	hashValues [hashTableSize]uint16
}

var tables = buildTables()

func buildTables() *lookupTables {
	t := &lookupTables{}
	t.buildDistinct()
	t.buildPaired()
	t.buildHash()
	return t
}

// buildDistinct fills flushes and unique5. Non-straight masks are ranked in
// descending numeric order, which is the poker order for high-card comparison.
func (t *lookupTables) buildDistinct() {
	for i, mask := range straightMasks {
		t.flushes[mask] = uint16(baseStraightFlush + i)
		t.unique5[mask] = uint16(baseStraight + i)
	}

	next := 0
	for mask := maskTableSize - 1; mask >= 0; mask-- {
		if bits.OnesCount16(uint16(mask)) != 5 || isStraightMask(uint16(mask)) {
			continue
		}
		t.flushes[mask] = uint16(baseFlush + next)
		t.unique5[mask] = uint16(baseHighCard + next)
		next++
	}
	if next != flushCount {
		panic(fmt.Sprintf("poker: generated %d flush masks, want %d", next, flushCount))
	}
}

func isStraightMask(mask uint16) bool {
	return slices.Contains(straightMasks[:], mask)
}

// buildPaired enumerates every rank multiset containing a repeated rank in
// strength order and records its prime product.
func (t *lookupTables) buildPaired() {
	type entry struct {
		product uint32
		value   uint16
	}
	entries := make([]entry, 0, pairedHandCount)
	value := uint16(baseFourOfAKind)
	add := func(ranks ...uint8) {
		product := uint32(1)
		for _, r := range ranks {
			product *= rankPrimes[r]
		}
		entries = append(entries, entry{product: product, value: value})
		value++
	}

	for quad := int(Ace); quad >= 0; quad-- {
		q := uint8(quad)
		for _, kicker := range ranksDescending(q) {
			add(q, q, q, q, kicker)
		}
	}
	for trip := int(Ace); trip >= 0; trip-- {
		tr := uint8(trip)
		for _, pair := range ranksDescending(tr) {
			add(tr, tr, tr, pair, pair)
		}
	}
	value = baseThreeOfAKind
	for trip := int(Ace); trip >= 0; trip-- {
		tr := uint8(trip)
		kickers := ranksDescending(tr)
		for i := 0; i < len(kickers); i++ {
			for j := i + 1; j < len(kickers); j++ {
				add(tr, tr, tr, kickers[i], kickers[j])
			}
		}
	}
	for high := int(Ace); high >= 0; high-- {
		for low := high - 1; low >= 0; low-- {
			h, l := uint8(high), uint8(low)
			for _, kicker := range ranksDescending(h, l) {
				add(h, h, l, l, kicker)
			}
		}
	}
	for pair := int(Ace); pair >= 0; pair-- {
		p := uint8(pair)
		kickers := ranksDescending(p)
		for i := 0; i < len(kickers); i++ {
			for j := i + 1; j < len(kickers); j++ {
				for k := j + 1; k < len(kickers); k++ {
					add(p, p, kickers[i], kickers[j], kickers[k])
				}
			}
		}
	}

	if len(entries) != pairedHandCount || value != baseHighCard {
		panic(fmt.Sprintf("poker: generated %d paired hands ending at %d", len(entries), value))
	}

	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.product, b.product)
	})
	for i, e := range entries {
		if i > 0 && entries[i-1].product == e.product {
			panic(fmt.Sprintf("poker: duplicate prime product %d", e.product))
		}
		t.products[i] = e.product
		t.values[i] = e.value
	}
}

// ranksDescending returns all ranks from ace down to deuce, skipping excluded ones.
func ranksDescending(exclude ...uint8) []uint8 {
	out := make([]uint8, 0, 13)
	for r := int(Ace); r >= 0; r-- {
		if !slices.Contains(exclude, uint8(r)) {
			out = append(out, uint8(r))
		}
	}
	return out
}

// hashParts runs the fixed multiplicative mix over a prime product and splits
// the result into a 13-bit slot and a 9-bit bucket. Every step wraps at 32 bits.
func hashParts(u uint32) (slot, bucket uint32) {
	u += 0xe91aaa35
	u ^= u >> 16
	u += u << 8
	u ^= u >> 4
	bucket = (u >> 8) & (hashBucketCount - 1)
	slot = (u + (u << 2)) >> 19
	return slot, bucket
}

// buildHash picks a displacement per bucket so that slot^adjust[bucket] is
// unique across all paired products. Buckets are placed largest first, each
// taking the smallest displacement that lands on free slots only.
func (t *lookupTables) buildHash() {
	type member struct {
		slot  uint32
		value uint16
	}
	var buckets [hashBucketCount][]member
	for i, product := range t.products {
		slot, b := hashParts(product)
		for _, m := range buckets[b] {
			if m.slot == slot {
				panic(fmt.Sprintf("poker: products collide inside hash bucket %d", b))
			}
		}
		buckets[b] = append(buckets[b], member{slot: slot, value: t.values[i]})
	}

	order := make([]int, hashBucketCount)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(len(buckets[b]), len(buckets[a]))
	})

	var used [hashTableSize]bool
	fits := func(members []member, d uint32) bool {
		for _, m := range members {
			if used[m.slot^d] {
				return false
			}
		}
		return true
	}

	for _, b := range order {
		members := buckets[b]
		if len(members) == 0 {
			continue
		}
		d := uint32(0)
		for d < hashTableSize && !fits(members, d) {
			d++
		}
		if d == hashTableSize {
			panic(fmt.Sprintf("poker: no perfect-hash displacement for bucket %d", b))
		}
		t.hashAdjust[b] = uint16(d)
		for _, m := range members {
			used[m.slot^d] = true
			t.hashValues[m.slot^d] = m.value
		}
	}
}
