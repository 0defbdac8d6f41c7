package poker

import (
	rand "math/rand/v2"

	"github.com/lox/pokereval/internal/randutil"
)

// Deck deals random hands for sampling and benchmarks. It is not safe for
// concurrent use; give each goroutine its own.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand
}

// NewDeck returns a shuffled deck drawing from rng. A nil rng uses the
// package-level source.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	for i := range d.cards {
		d.cards[i] = Card(1) << i
	}
	d.Shuffle()
	return d
}

// NewSeededDeck returns a deck whose deals are reproducible for a given seed.
func NewSeededDeck(seed int64) *Deck {
	return NewDeck(randutil.New(seed))
}

func (d *Deck) intn(n int) int {
	if d.rng != nil {
		return d.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Shuffle restores all 52 cards and shuffles them with Fisher-Yates.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal returns the next n cards, or nil if fewer remain. The slice aliases
// the deck and is only valid until the next Shuffle.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		return nil
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// DealOne returns the next card, or 0 once the deck is empty.
func (d *Deck) DealOne() Card {
	if d.next >= len(d.cards) {
		return 0
	}
	card := d.cards[d.next]
	d.next++
	return card
}

// DealEncoded fills dst with the next len(dst) cards in CKC form, reshuffling
// first when too few remain.
func (d *Deck) DealEncoded(dst []CKC) {
	if len(dst) > len(d.cards) {
		panic("poker: cannot deal more than 52 cards")
	}
	if d.CardsRemaining() < len(dst) {
		d.Shuffle()
	}
	for i := range dst {
		dst[i] = d.cards[d.next].CKC()
		d.next++
	}
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
