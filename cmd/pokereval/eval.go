package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/lox/pokereval/poker"
)

type EvalCmd struct {
	Hands []string `arg:"" help:"Hands to evaluate, e.g. 'AsKsQsJsTs' or 'Ah Kd 7s 7c 2d 2h Ks'"`
	Board string   `short:"b" help:"Community cards appended to every hand"`
}

func (c *EvalCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	e := g.evaluator(cfg)
	logger.Debug("Evaluating hands", "count", len(c.Hands), "lookup", e.Lookup())

	results, err := evaluateAll(e, c.Hands, c.Board)
	if err != nil {
		return err
	}
	printResults(os.Stdout, c.Hands, results, nil)
	return nil
}

type CompareCmd struct {
	Hands []string `arg:"" help:"Two or more hands to compare"`
	Board string   `short:"b" help:"Community cards shared by every hand, e.g. 'Td7s8h2c3d'"`
}

func (c *CompareCmd) Run(g *Globals) error {
	if len(c.Hands) < 2 {
		return fmt.Errorf("compare needs at least two hands, got %d", len(c.Hands))
	}
	cfg, _, err := g.load()
	if err != nil {
		return err
	}

	results, err := evaluateAll(g.evaluator(cfg), c.Hands, c.Board)
	if err != nil {
		return err
	}
	winners := poker.Winners(results)
	printResults(os.Stdout, c.Hands, results, winners)

	fmt.Println()
	if len(winners) == 1 {
		fmt.Println(winStyle.Render(fmt.Sprintf("%s wins with %s", c.Hands[winners[0]], results[winners[0]].Rank)))
	} else {
		fmt.Println(tieStyle.Render(fmt.Sprintf("Split pot between %d hands with %s", len(winners), results[winners[0]].Rank)))
	}
	return nil
}

// evaluateAll evaluates each hand with the board appended.
func evaluateAll(e *poker.Evaluator, hands []string, board string) ([]poker.Result, error) {
	results := make([]poker.Result, len(hands))
	for i, hand := range hands {
		res, err := e.EvaluateString(hand + board)
		if err != nil {
			return nil, fmt.Errorf("hand %q: %w", hand, err)
		}
		results[i] = res
	}
	return results, nil
}

// printResults writes one row per hand, marking winners when given.
func printResults(out io.Writer, hands []string, results []poker.Result, winners []int) {
	won := make(map[int]bool, len(winners))
	for _, w := range winners {
		won[w] = true
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("HAND")+"\t"+headerStyle.Render("CATEGORY")+"\t"+
		headerStyle.Render("RANK")+"\t"+headerStyle.Render("BEST FIVE")+"\t"+headerStyle.Render("PERCENTILE"))
	for i, res := range results {
		hand := handStyle.Render(hands[i])
		if won[i] {
			hand = winStyle.Render(hands[i] + " *")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.2f%%\n",
			hand,
			categoryStyle.Render(res.Rank.String()),
			res.Rank,
			poker.FormatCards(res.Best[:]),
			res.Rank.Percentile())
	}
	_ = w.Flush()
}
