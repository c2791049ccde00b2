package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/quantfoundry/backtester/config"
	"github.com/quantfoundry/backtester/engine"
	"github.com/quantfoundry/backtester/statistics"
)

func main() {
	app := &cli.App{
		Name:  "backtester",
		Usage: "event driven portfolio backtesting over daily bars",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "path to a run configuration file, repeatable for a batch",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "directory to write per-run result JSON into",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log at debug level",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // nothing to do about a failed flush

	paths := c.StringSlice("config")
	cfgs := make([]*config.Config, 0, len(paths))
	for _, path := range paths {
		cfg, err := config.ReadConfigFromFile(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("could not load %v: %v", path, err), 1)
		}
		if cfg.Nickname == "" {
			cfg.Nickname = filepath.Base(path)
		}
		cfgs = append(cfgs, cfg)
	}

	reports := engine.RunAll(c.Context, cfgs, logger)
	failed := false
	for i := range reports {
		if reports[i].Err != nil {
			failed = true
			logger.Errorw("run failed",
				"run", reports[i].Nickname,
				"error", reports[i].Err)
			continue
		}
		statistics.PrintResults(logger, reports[i].Nickname, reports[i].Results)
		if dir := c.String("output"); dir != "" {
			if err = writeReport(dir, &reports[i]); err != nil {
				return cli.Exit(err.Error(), 1)
			}
		}
	}
	if failed {
		return cli.Exit("one or more runs failed", 1)
	}
	return nil
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func writeReport(dir string, report *engine.RunReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%v-results.json", report.Nickname)
	return os.WriteFile(filepath.Join(dir, name), out, 0o644)
}
