package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/pokereval/internal/census"
	"github.com/lox/pokereval/internal/fileutil"
	"github.com/lox/pokereval/poker"
)

type CensusCmd struct {
	Workers  int           `short:"w" help:"Concurrent workers (overrides config)"`
	All      bool          `help:"Cross-check every lookup strategy against binary search"`
	Progress time.Duration `default:"2s" help:"Progress logging interval, 0 to disable"`
	Output   string        `short:"o" type:"path" help:"Write the report as JSON to this file"`
}

func (c *CensusCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	workers := cfg.Census.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}
	lookups := []poker.Lookup{cfg.LookupStrategy()}
	if c.All {
		lookups = poker.Lookups
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	report, err := census.Run(ctx, census.Config{
		Workers:          workers,
		Lookups:          lookups,
		ProgressInterval: c.Progress,
		Clock:            quartz.NewReal(),
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	printReport(os.Stdout, report)
	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, report.Summary()); err != nil {
			return err
		}
		logger.Info("Wrote census report", "path", c.Output)
	}
	if err := report.Verify(); err != nil {
		fmt.Println(errorStyle.Render("Distribution check failed"))
		return err
	}
	fmt.Println(winStyle.Render("Distribution matches all 2,598,960 hands"))
	return nil
}

func printReport(out io.Writer, r *census.Report) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, headerStyle.Render("CATEGORY")+"\t"+headerStyle.Render("DISTINCT")+"\t"+
		headerStyle.Render("HANDS")+"\t"+headerStyle.Render("EXPECTED")+"\t")
	for _, t := range poker.HandTypes() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t\n",
			categoryStyle.Render(t.String()), r.Values[t], r.Frequency[t], census.ExpectedFrequency(t))
	}
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\t\n", headerStyle.Render("Total"), r.Distinct, r.Hands, census.TotalHands)
	_ = w.Flush()

	for l, m := range r.Mismatches {
		fmt.Fprintf(out, "lookup %s: %d mismatches\n", l, m)
	}
	fmt.Fprintf(out, "elapsed %s\n", r.Elapsed.Round(time.Millisecond))
}
