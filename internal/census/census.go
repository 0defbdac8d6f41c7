// Package census enumerates every five-card hand from a 52-card deck and
// checks the evaluators against the known distribution of poker hands.
package census

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokereval/poker"
)

// TotalHands is C(52,5).
const TotalHands = 2598960

// expectedFrequency is how many of the C(52,5) hands fall in each category.
var expectedFrequency = map[poker.HandType]int{
	poker.StraightFlush: 40,
	poker.FourOfAKind:   624,
	poker.FullHouse:     3744,
	poker.Flush:         5108,
	poker.Straight:      10200,
	poker.ThreeOfAKind:  54912,
	poker.TwoPair:       123552,
	poker.Pair:          1098240,
	poker.HighCard:      1302540,
}

// Config controls a census run.
type Config struct {
	// Workers caps concurrent goroutines; zero means runtime.NumCPU.
	Workers int
	// Lookups are evaluated for every hand. The first is the reference the
	// others are compared with; empty means binary search only.
	Lookups []poker.Lookup
	// ProgressInterval enables periodic progress logging when positive.
	ProgressInterval time.Duration
	Clock            quartz.Clock
	Logger           *log.Logger
}

// Report summarises a census run.
type Report struct {
	Hands int
	// Distinct is the number of different rank values seen.
	Distinct int
	// Values counts distinct rank values per category.
	Values map[poker.HandType]int
	// Frequency counts hands per category.
	Frequency map[poker.HandType]int
	// Mismatches counts hands where a secondary lookup disagreed with the first.
	Mismatches map[poker.Lookup]int
	Elapsed    time.Duration
}

// tally is one worker's share of the counts.
type tally struct {
	hits       [poker.WorstRank + 1]uint32
	mismatches []int
}

// Run evaluates all C(52,5) hands. The work is split by the first card of each
// combination and spread across cfg.Workers goroutines.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if len(cfg.Lookups) == 0 {
		cfg.Lookups = []poker.Lookup{poker.LookupBinarySearch}
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	logger := cfg.Logger.WithPrefix("census")

	var deck [52]poker.CKC
	for i := range deck {
		deck[i] = poker.Card(1 << i).CKC()
	}

	evals := make([]func(c1, c2, c3, c4, c5 poker.CKC) poker.HandRank, len(cfg.Lookups))
	for i, l := range cfg.Lookups {
		evals[i] = l.Func()
	}

	start := cfg.Clock.Now()
	var done atomic.Int64

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.ProgressInterval > 0 {
		cfg.Clock.TickerFunc(runCtx, cfg.ProgressInterval, func() error {
			logger.Info("Progress", "hands", done.Load(), "total", TotalHands)
			return nil
		}, "census", "progress")
	}

	logger.Debug("Starting census", "workers", cfg.Workers, "lookups", cfg.Lookups)

	var (
		mu     sync.Mutex
		merged tally
	)
	merged.mismatches = make([]int, len(evals))

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(cfg.Workers)
	for first := 0; first < 48; first++ {
		g.Go(func() error {
			local := tally{mismatches: make([]int, len(evals))}
			n, err := enumerateFrom(gctx, &deck, first, evals, &local)
			done.Add(int64(n))
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			for v, c := range local.hits {
				merged.hits[v] += c
			}
			for i, m := range local.mismatches {
				merged.mismatches[i] += m
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("census aborted: %w", err)
	}

	report := &Report{
		Values:     make(map[poker.HandType]int),
		Frequency:  make(map[poker.HandType]int),
		Mismatches: make(map[poker.Lookup]int),
		Elapsed:    cfg.Clock.Since(start),
	}
	for v, c := range merged.hits {
		if c == 0 {
			continue
		}
		t := poker.HandRank(v).Type()
		report.Hands += int(c)
		report.Distinct++
		report.Values[t]++
		report.Frequency[t] += int(c)
	}
	for i, l := range cfg.Lookups[1:] {
		report.Mismatches[l] = merged.mismatches[i+1]
	}

	logger.Info("Census complete", "hands", report.Hands, "distinct", report.Distinct, "elapsed", report.Elapsed)
	return report, nil
}

// enumerateFrom evaluates every combination whose lowest card index is first.
func enumerateFrom(ctx context.Context, deck *[52]poker.CKC, first int, evals []func(c1, c2, c3, c4, c5 poker.CKC) poker.HandRank, t *tally) (int, error) {
	n := 0
	c1 := deck[first]
	for b := first + 1; b < 49; b++ {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		c2 := deck[b]
		for c := b + 1; c < 50; c++ {
			c3 := deck[c]
			for d := c + 1; d < 51; d++ {
				c4 := deck[d]
				for e := d + 1; e < 52; e++ {
					c5 := deck[e]
					rank := evals[0](c1, c2, c3, c4, c5)
					if rank.Valid() {
						t.hits[rank]++
					}
					for i := 1; i < len(evals); i++ {
						if evals[i](c1, c2, c3, c4, c5) != rank {
							t.mismatches[i]++
						}
					}
					n++
				}
			}
		}
	}
	return n, nil
}

// Verify compares the report against the known distribution and returns an
// error listing every deviation.
func (r *Report) Verify() error {
	var problems []string
	if r.Hands != TotalHands {
		problems = append(problems, fmt.Sprintf("evaluated %d hands, want %d", r.Hands, TotalHands))
	}
	if r.Distinct != poker.DistinctRanks {
		problems = append(problems, fmt.Sprintf("saw %d distinct ranks, want %d", r.Distinct, poker.DistinctRanks))
	}
	for _, t := range poker.HandTypes() {
		if got, want := r.Values[t], poker.TypeCount(t); got != want {
			problems = append(problems, fmt.Sprintf("%s: %d distinct ranks, want %d", t, got, want))
		}
		if got, want := r.Frequency[t], expectedFrequency[t]; got != want {
			problems = append(problems, fmt.Sprintf("%s: %d hands, want %d", t, got, want))
		}
	}
	for l, m := range r.Mismatches {
		if m != 0 {
			problems = append(problems, fmt.Sprintf("lookup %s disagreed on %d hands", l, m))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, "; "))
}

// ExpectedFrequency returns how many five-card hands belong to t.
func ExpectedFrequency(t poker.HandType) int {
	return expectedFrequency[t]
}

// TypeSummary is one category row of a Summary.
type TypeSummary struct {
	Type     string `json:"type"`
	Best     uint16 `json:"best"`
	Worst    uint16 `json:"worst"`
	Distinct int    `json:"distinct"`
	Hands    int    `json:"hands"`
	Expected int    `json:"expected"`
}

// Summary is the serialisable form of a Report.
type Summary struct {
	Hands      int            `json:"hands"`
	Distinct   int            `json:"distinct"`
	Types      []TypeSummary  `json:"types"`
	Mismatches map[string]int `json:"mismatches,omitempty"`
	ElapsedMS  int64          `json:"elapsed_ms"`
	Verified   bool           `json:"verified"`
	Problems   string         `json:"problems,omitempty"`
}

// Summary lists categories from strongest to weakest along with the outcome of Verify.
func (r *Report) Summary() Summary {
	s := Summary{
		Hands:     r.Hands,
		Distinct:  r.Distinct,
		ElapsedMS: r.Elapsed.Milliseconds(),
		Verified:  true,
	}
	for _, t := range poker.HandTypes() {
		lo, hi := poker.TypeBounds(t)
		s.Types = append(s.Types, TypeSummary{
			Type:     t.String(),
			Best:     uint16(lo),
			Worst:    uint16(hi),
			Distinct: r.Values[t],
			Hands:    r.Frequency[t],
			Expected: expectedFrequency[t],
		})
	}
	if len(r.Mismatches) > 0 {
		s.Mismatches = make(map[string]int, len(r.Mismatches))
		for l, m := range r.Mismatches {
			s.Mismatches[l.String()] = m
		}
	}
	if err := r.Verify(); err != nil {
		s.Verified = false
		s.Problems = err.Error()
	}
	return s
}
