package poker

import (
	"errors"
	"fmt"
)

var (
	// ErrHandSize is returned when a hand does not hold 5, 6 or 7 cards.
	ErrHandSize = errors.New("hand must contain 5, 6 or 7 cards")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("duplicate card")
	// ErrInvalidCard is returned for a value that is not one of the 52 cards.
	ErrInvalidCard = errors.New("invalid card")
)

// Result is a validated evaluation.
type Result struct {
	Rank HandRank
	Type HandType
	Best [5]Card // the five cards that make the hand
}

// Compare returns 1 if r beats other, -1 if it loses and 0 on a tie.
func (r Result) Compare(other Result) int {
	return CompareHands(r.Rank, other.Rank)
}

// String returns e.g. "Flush (As Js 9s 5s 2s)".
func (r Result) String() string {
	return fmt.Sprintf("%s (%s)", r.Rank, FormatCards(r.Best[:]))
}

// Evaluator validates hands before handing them to the table evaluators.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	lookup Lookup
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLookup selects the paired-hand lookup strategy.
func WithLookup(l Lookup) Option {
	return func(e *Evaluator) {
		e.lookup = l
	}
}

// NewEvaluator creates a new evaluator using binary search unless configured otherwise.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{lookup: LookupBinarySearch}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lookup returns the configured lookup strategy.
func (e *Evaluator) Lookup() Lookup {
	return e.lookup
}

// Evaluate checks that cards form a legal 5, 6 or 7 card hand and returns its
// best five-card rank.
func (e *Evaluator) Evaluate(cards ...Card) (Result, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Result{}, fmt.Errorf("%w: got %d", ErrHandSize, len(cards))
	}

	var seen Hand
	var encoded [7]CKC
	for i, c := range cards {
		if !c.Valid() {
			return Result{}, fmt.Errorf("%w at position %d: %#x", ErrInvalidCard, i, uint64(c))
		}
		if seen.HasCard(c) {
			return Result{}, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen.AddCard(c)
		encoded[i] = c.CKC()
	}

	rank, five := BestFive(encoded[:len(cards)], e.lookup)
	res := Result{Rank: rank, Type: rank.Type()}
	for i, k := range five {
		res.Best[i] = k.Card()
	}
	return res, nil
}

// EvaluateString parses card notation and evaluates it.
func (e *Evaluator) EvaluateString(s string) (Result, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Result{}, err
	}
	return e.Evaluate(cards...)
}

// EvaluateHand evaluates a hand bitset holding 5 to 7 cards.
func (e *Evaluator) EvaluateHand(h Hand) (Result, error) {
	if n := h.CountCards(); n < 5 || n > 7 {
		return Result{}, fmt.Errorf("%w: got %d", ErrHandSize, n)
	}
	if uint64(h)>>52 != 0 {
		return Result{}, fmt.Errorf("%w: bits above 52 set", ErrInvalidCard)
	}
	return e.Evaluate(h.Cards()...)
}

// Evaluate7Cards evaluates the best 5-card hand from a 7-card bitset with the
// default lookup, returning 0 (invalid) for any other card count.
func Evaluate7Cards(hand Hand) HandRank {
	if hand.CountCards() != 7 || uint64(hand)>>52 != 0 {
		return 0
	}
	var cards [7]CKC
	i := 0
	for rest := uint64(hand); rest != 0; rest &= rest - 1 {
		cards[i] = Card(rest & -rest).CKC()
		i++
	}
	return Eval7(&cards)
}

// Winners returns the indexes of the strongest results; more than one on a split.
func Winners(results []Result) []int {
	var winners []int
	for i, r := range results {
		if len(winners) == 0 {
			winners = append(winners, i)
			continue
		}
		switch r.Compare(results[winners[0]]) {
		case 1:
			winners = append(winners[:0], i)
		case 0:
			winners = append(winners, i)
		}
	}
	return winners
}
