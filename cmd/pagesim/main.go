package main

import (
	"fmt"
	"os"

	"github.com/sibexico/PageSim/paging"
	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./cmd/pagesim <command> <flags>

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "JSON configuration file; PAGESIM_* environment variables are applied on top",
		Value: "",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "log level (debug, info, warn, error), overrides the configuration",
		Value: "",
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "pagesim",
		Usage: "demand paging simulator for FIFO, LRU, MRU and OPT page replacement",
		Flags: []cli.Flag{
			&configFlag,
			&logLevelFlag,
		},
		Commands: []*cli.Command{
			&RunCmd,
			&CompareCmd,
			&ReplayCmd,
		},
	}
}

// loadConfig resolves the configuration of a command: defaults, then the
// optional config file, then the environment, then the --log-level flag.
// The default logger is configured as a side effect.
func loadConfig(context *cli.Context) (*paging.Config, error) {
	config := paging.DefaultConfig()
	if path := context.String(configFlag.Name); path != "" {
		loaded, err := paging.LoadConfigFromFile(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	if level := context.String(logLevelFlag.Name); level != "" {
		config.LogLevel = level
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	initLogger(context.App.ErrWriter, config.LogLevel)
	return config, nil
}
