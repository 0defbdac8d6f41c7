package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/pokereval/internal/statistics"
	"github.com/lox/pokereval/poker"
)

type BenchCmd struct {
	Hands  int    `short:"n" default:"1000000" help:"Number of random hands per strategy"`
	Cards  int    `default:"7" help:"Cards per hand (5, 6 or 7)"`
	Seed   *int64 `help:"Random seed for reproducible hands"`
	Only   string `help:"Only benchmark this lookup strategy"`
	Rounds int    `short:"r" default:"3" help:"Timed passes over the hands per strategy"`
}

// benchResult is the timing of one lookup strategy.
type benchResult struct {
	Lookup  poker.Lookup
	Hands   int
	Elapsed time.Duration // total over all rounds
	// Rate holds hands per second for each round.
	Rate statistics.Sample
	// Checksum sums every rank of one pass so strategies can be compared for agreement.
	Checksum uint64
}

func perSecond(hands int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(hands) / elapsed.Seconds()
}

func (c *BenchCmd) Run(g *Globals) error {
	_, logger, err := g.load()
	if err != nil {
		return err
	}
	if c.Hands <= 0 {
		return fmt.Errorf("hands must be positive, got %d", c.Hands)
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.Cards < 5 || c.Cards > 7 {
		return fmt.Errorf("cards must be 5, 6 or 7, got %d", c.Cards)
	}

	lookups := poker.Lookups
	if c.Only != "" {
		l, err := poker.ParseLookup(c.Only)
		if err != nil {
			return err
		}
		lookups = []poker.Lookup{l}
	}

	clock := quartz.NewReal()
	seed := clock.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("Dealing hands", "hands", c.Hands, "cards", c.Cards, "seed", seed)

	hands := dealHands(poker.NewSeededDeck(seed), c.Hands, c.Cards)
	results := runBench(clock, hands, lookups, c.Rounds)
	printBench(os.Stdout, results)

	for _, r := range results[1:] {
		if r.Checksum != results[0].Checksum {
			return fmt.Errorf("lookup %s disagrees with %s", r.Lookup, results[0].Lookup)
		}
	}
	return nil
}

// dealHands deals n hands of size cards into one flat slice.
func dealHands(deck *poker.Deck, n, cards int) [][]poker.CKC {
	flat := make([]poker.CKC, n*cards)
	hands := make([][]poker.CKC, n)
	for i := range hands {
		hands[i] = flat[i*cards : (i+1)*cards : (i+1)*cards]
		deck.DealEncoded(hands[i])
	}
	return hands
}

func runBench(clock quartz.Clock, hands [][]poker.CKC, lookups []poker.Lookup, rounds int) []benchResult {
	results := make([]benchResult, 0, len(lookups))
	for _, l := range lookups {
		// Build lazily initialised indexes before timing.
		if len(hands) > 0 {
			_ = poker.EvalBest(hands[0], l)
		}

		r := benchResult{Lookup: l, Hands: len(hands)}
		for round := 0; round < rounds; round++ {
			var sum uint64
			start := clock.Now()
			for _, h := range hands {
				sum += uint64(poker.EvalBest(h, l))
			}
			elapsed := clock.Since(start)

			r.Elapsed += elapsed
			r.Rate.Add(perSecond(len(hands), elapsed))
			r.Checksum = sum
		}
		results = append(results, r)
	}
	return results
}

func printBench(out io.Writer, results []benchResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("LOOKUP")+"\t"+headerStyle.Render("HANDS")+"\t"+
		headerStyle.Render("ROUNDS")+"\t"+headerStyle.Render("ELAPSED")+"\t"+headerStyle.Render("HANDS/SEC (95% CI)"))
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			handStyle.Render(r.Lookup.String()), r.Hands, r.Rate.Count(), r.Elapsed.Round(time.Microsecond), r.Rate.String())
	}
	_ = w.Flush()
}
