package poker

import (
	"fmt"
	"slices"
)

// The 5-card evaluators assume five distinct cards produced by Encode. Other
// inputs never index outside the tables, but the returned rank carries no
// meaning (and the binary-search path may panic on an unknown product).

// Eval5 evaluates five encoded cards using a binary search over the sorted
// prime products for paired hands.
func Eval5(c1, c2, c3, c4, c5 CKC) HandRank {
	if rank, ok := evalDistinct(c1, c2, c3, c4, c5); ok {
		return rank
	}
	return lookupProduct(primeProduct(c1, c2, c3, c4, c5))
}

// Eval5Hash evaluates five encoded cards using the perfect hash for paired hands.
func Eval5Hash(c1, c2, c3, c4, c5 CKC) HandRank {
	if rank, ok := evalDistinct(c1, c2, c3, c4, c5); ok {
		return rank
	}
	return HandRank(tables.hashValues[findFast(primeProduct(c1, c2, c3, c4, c5))])
}

// evalDistinct resolves flushes and hands with five distinct ranks straight
// from the rank-presence mask.
func evalDistinct(c1, c2, c3, c4, c5 CKC) (HandRank, bool) {
	mask := uint32(c1|c2|c3|c4|c5) >> ckcFlagShift & (maskTableSize - 1)

	if uint32(c1&c2&c3&c4&c5)&ckcSuitMask != 0 {
		return HandRank(tables.flushes[mask]), true
	}
	if rank := tables.unique5[mask]; rank != 0 {
		return HandRank(rank), true
	}
	return 0, false
}

func primeProduct(c1, c2, c3, c4, c5 CKC) uint32 {
	return c1.Prime() * c2.Prime() * c3.Prime() * c4.Prime() * c5.Prime()
}

// lookupProduct binary-searches the paired products. A miss means the input
// was not five distinct cards from one deck, which is a broken invariant.
func lookupProduct(product uint32) HandRank {
	i, found := slices.BinarySearch(tables.products[:], product)
	if !found {
		panic(fmt.Sprintf("poker: prime product %d not in table", product))
	}
	return HandRank(tables.values[i])
}

// findFast maps a paired prime product to its hashValues slot.
func findFast(product uint32) uint32 {
	slot, bucket := hashParts(product)
	return slot ^ uint32(tables.hashAdjust[bucket])
}

// Lookup selects how paired hands are resolved.
type Lookup uint8

const (
	// LookupBinarySearch searches the sorted prime products.
	LookupBinarySearch Lookup = iota
	// LookupPerfectHash uses the multiplicative perfect hash.
	LookupPerfectHash
	// LookupCHD uses a compress-hash-displace minimal perfect hash.
	LookupCHD
)

// Lookups lists every supported strategy.
var Lookups = []Lookup{LookupBinarySearch, LookupPerfectHash, LookupCHD}

// String returns the configuration name of the lookup.
func (l Lookup) String() string {
	switch l {
	case LookupBinarySearch:
		return "binary"
	case LookupPerfectHash:
		return "hash"
	case LookupCHD:
		return "chd"
	default:
		return fmt.Sprintf("lookup(%d)", uint8(l))
	}
}

// ParseLookup parses a lookup name as produced by String.
func ParseLookup(s string) (Lookup, error) {
	for _, l := range Lookups {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown lookup %q (want binary, hash or chd)", s)
}

// Func returns the 5-card evaluator for the lookup. Unknown values fall back
// to binary search.
func (l Lookup) Func() func(c1, c2, c3, c4, c5 CKC) HandRank {
	switch l {
	case LookupPerfectHash:
		return Eval5Hash
	case LookupCHD:
		return Eval5CHD
	default:
		return Eval5
	}
}
