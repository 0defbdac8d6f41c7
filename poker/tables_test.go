package poker

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistinctTables(t *testing.T) {
	t.Parallel()
	flushValues := make(map[uint16]bool)
	var fiveBit int

	for mask := 0; mask < maskTableSize; mask++ {
		f, u := tables.flushes[mask], tables.unique5[mask]
		if bits.OnesCount16(uint16(mask)) != 5 {
			require.Zero(t, f, "mask %013b", mask)
			require.Zero(t, u, "mask %013b", mask)
			continue
		}
		fiveBit++

		fr, ur := HandRank(f), HandRank(u)
		if isStraightMask(uint16(mask)) {
			assert.Equal(t, StraightFlush, fr.Type())
			assert.Equal(t, Straight, ur.Type())
			assert.Equal(t, fr-baseStraightFlush, ur-baseStraight, "mask %013b", mask)
		} else {
			assert.Equal(t, Flush, fr.Type())
			assert.Equal(t, HighCard, ur.Type())
			assert.Equal(t, fr-baseFlush, ur-baseHighCard, "mask %013b", mask)
		}
		require.False(t, flushValues[f], "value %d reused", f)
		flushValues[f] = true
	}

	assert.Equal(t, 1287, fiveBit)
	assert.Len(t, flushValues, straightFlushCount+flushCount)
}

func TestNonStraightMasksDescend(t *testing.T) {
	t.Parallel()
	next := 0
	for mask := maskTableSize - 1; mask >= 0; mask-- {
		if bits.OnesCount16(uint16(mask)) != 5 || isStraightMask(uint16(mask)) {
			continue
		}
		require.Equal(t, uint16(baseHighCard+next), tables.unique5[mask], "mask %013b", mask)
		require.Equal(t, uint16(baseFlush+next), tables.flushes[mask], "mask %013b", mask)
		next++
	}
	assert.Equal(t, highCardCount, next)
}

func TestPairedTable(t *testing.T) {
	t.Parallel()
	seen := make(map[uint16]bool)
	for i := range tables.products {
		if i > 0 {
			require.Less(t, tables.products[i-1], tables.products[i])
		}
		v := tables.values[i]
		require.False(t, seen[v])
		seen[v] = true

		typ := HandRank(v).Type()
		require.Contains(t, []HandType{FourOfAKind, FullHouse, ThreeOfAKind, TwoPair, Pair}, typ)
	}
	assert.Len(t, seen, pairedHandCount)
}

func TestPerfectHashResolvesEveryProduct(t *testing.T) {
	t.Parallel()
	slots := make(map[uint32]bool)
	for i, product := range tables.products {
		slot := findFast(product)
		require.Less(t, slot, uint32(hashTableSize))
		require.False(t, slots[slot], "slot %d reused by product %d", slot, product)
		slots[slot] = true
		require.Equal(t, tables.values[i], tables.hashValues[slot], "product %d", product)
	}

	for _, d := range tables.hashAdjust {
		assert.Less(t, d, uint16(hashTableSize))
	}
}

func TestLookupProductPanicsOnMiss(t *testing.T) {
	t.Parallel()
	// 2^5 would need five deuces.
	assert.Panics(t, func() { lookupProduct(32) })
}
