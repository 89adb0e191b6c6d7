package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sibexico/PageSim/paging"
	"github.com/urfave/cli/v2"
)

var RunCmd = cli.Command{
	Action: run,
	Name:   "run",
	Usage:  "simulates one replacement policy over a reference string",
	Flags: []cli.Flag{
		&framesFlag,
		&pagesFlag,
		&policyFlag,
		&refsFlag,
		&intervalFlag,
		&traceOutFlag,
		&compressionFlag,
	},
	ArgsUsage: "[<page> ...]",
}

var (
	framesFlag = cli.IntFlag{
		Name:  "frames",
		Usage: "number of physical frames (default from configuration: 3)",
	}
	pagesFlag = cli.IntFlag{
		Name:  "pages",
		Usage: "size of the page universe, 0 derives it from the reference string (default from configuration: 10)",
	}
	policyFlag = cli.StringFlag{
		Name:  "policy",
		Usage: "replacement policy: FIFO, LRU, MRU or OPT (default from configuration: FIFO)",
	}
	refsFlag = cli.StringFlag{
		Name:  "refs",
		Usage: "reference string such as \"7 0 1 2\" or \"7,0,1,2\"; positional arguments are used if absent",
	}
	intervalFlag = cli.DurationFlag{
		Name:  "interval",
		Usage: "auto-play delay between steps, rounded up to whole milliseconds; 0 runs the whole string at once",
	}
	traceOutFlag = cli.StringFlag{
		Name:  "trace-out",
		Usage: "writes the recorded trace to this file, disabled if empty",
	}
	compressionFlag = cli.StringFlag{
		Name:  "compression",
		Usage: "trace compression: none, lz4 or snappy (default from configuration: snappy)",
	}
)

// applySimulationFlags overrides the configuration with the flags that were given
func applySimulationFlags(context *cli.Context, config *paging.Config) error {
	if context.IsSet(framesFlag.Name) {
		config.Frames = context.Int(framesFlag.Name)
	}
	if context.IsSet(pagesFlag.Name) {
		config.Pages = context.Int(pagesFlag.Name)
	}
	if context.IsSet(policyFlag.Name) {
		config.Algorithm = context.String(policyFlag.Name)
	}
	if context.IsSet(intervalFlag.Name) {
		ms, err := intervalMillis(context.Duration(intervalFlag.Name))
		if err != nil {
			return err
		}
		config.StepIntervalMs = ms
	}
	if context.IsSet(compressionFlag.Name) {
		config.TraceCompression = context.String(compressionFlag.Name)
	}
	return config.Validate()
}

// intervalMillis converts an auto-play delay to whole milliseconds, rounding
// up so that a positive delay never turns into batch mode
func intervalMillis(d time.Duration) (int, error) {
	if d < 0 {
		return 0, fmt.Errorf("interval must not be negative, got %v", d)
	}
	return int((d + time.Millisecond - 1) / time.Millisecond), nil
}

// referenceSequence takes the reference string from --refs, then from the
// positional arguments, then from the configuration
func referenceSequence(context *cli.Context, config *paging.Config) ([]paging.PageID, error) {
	if context.IsSet(refsFlag.Name) {
		return ParseReferenceString(context.String(refsFlag.Name))
	}
	if context.Args().Present() {
		return ParseReferenceString(strings.Join(context.Args().Slice(), " "))
	}
	return config.ReferenceSequence(), nil
}

func run(context *cli.Context) error {
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

	sim, err := paging.NewSimulator(cfg)
	if err != nil {
		return err
	}
	sim.SetLogger(slog.Default())

	out := context.App.Writer
	fmt.Fprintf(out, "%s with %d frames over %d references\n\n", cfg.Algorithm, cfg.Frames, len(cfg.Sequence))
	printStepHeader(out)

	if interval := config.StepInterval(); interval > 0 {
		ctx, cancel := cancelOnInterrupt(context.Context)
		defer cancel()

		player := paging.NewPlayer(sim, paging.NewTimeTicker(interval))
		err := player.Play(ctx, func(record paging.StepRecord) {
			printStep(out, record)
		})
		if ctx.Err() != nil {
			fmt.Fprintf(out, "\ninterrupted after %d of %d references\n", sim.Position(), sim.Len())
		} else if err != nil {
			return err
		}
	} else {
		records, err := sim.RunToCompletion()
		if err != nil {
			return err
		}
		for _, record := range records {
			printStep(out, record)
		}
	}

	printSummary(out, sim.Summary())
	sim.Metrics().LogMetrics(slog.Default())

	if path := context.String(traceOutFlag.Name); path != "" {
		if err := writeTrace(path, sim.Trace(), config.TraceCompression); err != nil {
			return err
		}
		fmt.Fprintf(out, "trace written to %s\n", path)
	}
	return nil
}

func writeTrace(path string, trace *paging.Trace, compression string) error {
	compressionType, err := paging.ParseCompressionType(compression)
	if err != nil {
		return err
	}
	data, err := paging.EncodeTrace(trace, compressionType)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trace file: %w", err)
	}
	slog.Debug("trace written",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
		slog.String("compression", compressionType.String()),
	)
	return nil
}
