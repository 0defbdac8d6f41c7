package poker

import (
	"fmt"
	"sync"

	"github.com/opencoff/go-chd"
)

// chdIndex resolves paired prime products through a CHD minimal perfect hash.
type chdIndex struct {
	table  *chd.Chd
	values []uint16
}

// chdLookup is built on first use; most callers never select LookupCHD.
var chdLookup = sync.OnceValue(func() *chdIndex {
	idx, err := newCHDIndex(tables.products[:], tables.values[:])
	if err != nil {
		panic(fmt.Sprintf("poker: %v", err))
	}
	return idx
})

func newCHDIndex(products []uint32, values []uint16) (*chdIndex, error) {
	b, err := chd.New()
	if err != nil {
		return nil, fmt.Errorf("creating chd builder: %w", err)
	}
	for _, p := range products {
		b.Add(uint64(p))
	}

	table, err := b.Freeze(0.9)
	if err != nil {
		return nil, fmt.Errorf("freezing chd table: %w", err)
	}

	slots := make([]uint64, len(products))
	var maxSlot uint64
	for i, p := range products {
		slots[i] = table.Find(uint64(p))
		maxSlot = max(maxSlot, slots[i])
	}

	idx := &chdIndex{table: table, values: make([]uint16, maxSlot+1)}
	for i, slot := range slots {
		if idx.values[slot] != 0 {
			return nil, fmt.Errorf("chd slot %d assigned twice", slot)
		}
		idx.values[slot] = values[i]
	}
	return idx, nil
}

func (idx *chdIndex) lookup(product uint32) HandRank {
	slot := idx.table.Find(uint64(product))
	if slot >= uint64(len(idx.values)) {
		return 0
	}
	return HandRank(idx.values[slot])
}

// Eval5CHD evaluates five encoded cards, resolving paired hands through the CHD index.
func Eval5CHD(c1, c2, c3, c4, c5 CKC) HandRank {
	if rank, ok := evalDistinct(c1, c2, c3, c4, c5); ok {
		return rank
	}
	return chdLookup().lookup(primeProduct(c1, c2, c3, c4, c5))
}
