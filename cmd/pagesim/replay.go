package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sibexico/PageSim/paging"
	"github.com/urfave/cli/v2"
)

var ReplayCmd = cli.Command{
	Action: replay,
	Name:   "replay",
	Usage:  "prints a trace recorded with run --trace-out",
	Flags: []cli.Flag{
		&summaryOnlyFlag,
		&jsonFlag,
	},
	ArgsUsage: "<trace-file>",
}

var (
	summaryOnlyFlag = cli.BoolFlag{
		Name:  "summary-only",
		Usage: "print only the run summary",
	}
	jsonFlag = cli.BoolFlag{
		Name:  "json",
		Usage: "print the trace as JSON instead of a table",
	}
)

// replayReport is the JSON form of a replayed trace
type replayReport struct {
	Pages    int                 `json:"pages"`
	Sequence []paging.PageID     `json:"sequence"`
	Summary  paging.RunSummary   `json:"summary"`
	Steps    []paging.StepRecord `json:"steps,omitempty"`
}

func printReportJSON(out io.Writer, trace *paging.Trace, summaryOnly bool) error {
	report := replayReport{
		Pages:    trace.Pages,
		Sequence: trace.Sequence,
		Summary:  trace.Summary(),
	}
	if !summaryOnly {
		report.Steps = trace.Steps
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return nil
}

func replay(context *cli.Context) error {
	// parse the file argument
	if context.Args().Len() != 1 {
		return fmt.Errorf("missing trace file")
	}
	path := context.Args().Get(0)

	if _, err := loadConfig(context); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read trace file: %w", err)
	}
	trace, err := paging.DecodeTrace(data)
	if err != nil {
		return err
	}

	out := context.App.Writer
	summaryOnly := context.Bool(summaryOnlyFlag.Name)
	if context.Bool(jsonFlag.Name) {
		return printReportJSON(out, trace, summaryOnly)
	}

	fmt.Fprintf(out, "%s with %d frames over %d references, %d pages, %d steps recorded\n",
		trace.Algorithm, trace.Frames, len(trace.Sequence), trace.Pages, len(trace.Steps))

	if !summaryOnly {
		fmt.Fprintln(out)
		printStepHeader(out)
		for _, step := range trace.Steps {
			printStep(out, step)
		}
	}

	printSummary(out, trace.Summary())
	return nil
}
