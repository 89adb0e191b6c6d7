package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sibexico/PageSim/paging"
	"github.com/urfave/cli/v2"
)

var CompareCmd = cli.Command{
	Action: compare,
	Name:   "compare",
	Usage:  "runs every policy over the same reference string and ranks them by page faults",
	Flags: []cli.Flag{
		&framesFlag,
		&pagesFlag,
		&refsFlag,
	},
	ArgsUsage: "[<page> ...]",
}

// barWidth is the length of the bar of the policy with the most faults
const barWidth = 40

func compare(context *cli.Context) error {
	config, err := loadConfig(context)
	if err != nil {
		return err
	}
	if err := applySimulationFlags(context, config); err != nil {
		return err
	}

	sequence, err := referenceSequence(context, config)
	if err != nil {
		return err
	}
	cfg, err := config.SimulationConfig(sequence)
	if err != nil {
		return err
	}

	results, err := paging.RunAllPoliciesWithPages(cfg.Sequence, cfg.Frames, cfg.Pages)
	if err != nil {
		return err
	}
	for _, result := range results {
		slog.Debug("policy finished", "summary", result.Summary)
	}

	fmt.Fprintf(context.App.Writer, "%d frames over %d references\n\n", cfg.Frames, len(cfg.Sequence))
	printComparison(context.App.Writer, results)
	return nil
}

// printComparison prints results in their given order with a bar per policy
// proportional to its faults
func printComparison(out io.Writer, results []paging.PolicyResult) {
	maxFaults := 0
	for _, result := range results {
		if result.Summary.Faults > maxFaults {
			maxFaults = result.Summary.Faults
		}
	}

	fmt.Fprintf(out, "%-6s  %6s  %4s  %9s\n", "policy", "faults", "hits", "hit ratio")
	for _, result := range results {
		bar := 0
		if maxFaults > 0 {
			bar = result.Summary.Faults * barWidth / maxFaults
		}
		fmt.Fprintf(out, "%-6s  %6d  %4d  %8.1f%%  %s\n",
			result.Algorithm,
			result.Summary.Faults,
			result.Summary.Hits,
			result.Summary.HitRatio*100,
			strings.Repeat("#", bar),
		)
	}
}
