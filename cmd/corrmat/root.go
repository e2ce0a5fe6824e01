package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/utkarsh5026/corrmat/cmat"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// settings is the resolved command line, environment and config file.
type settings struct {
	Input     string
	Header    bool
	Rows      int
	Samples   int
	Rho       float64
	Seed      int64
	Kind      cmat.Kind
	Transform bool
	Threads   int
	Tile      int
	MaxMemGiB float64
	Blocking  bool
	Split     cmat.Split
	Pin       bool
	Precision int
	Report    string
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var log *logrus.Logger

	root := &cobra.Command{
		Use:           "corrmat",
		Short:         "Virtual correlation matrices over large sample tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if path := v.GetString("config"); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config %s: %w", path, err)
				}
			}
			log = setupLogger(v.GetString("log-level"))
			return nil
		},
	}

	f := root.PersistentFlags()
	f.String("config", "", "configuration file (yaml, json or toml)")
	f.String("log-level", "warn", "log level: debug, info, warn, error")
	f.StringP("input", "i", "", "sample table, one series per line; .csv or whitespace separated, - for stdin")
	f.Bool("header", false, "skip the first line of the input")
	f.Int("rows", 0, "generate this many synthetic series instead of reading input")
	f.Int("samples", 100, "samples per synthetic series")
	f.Float64("rho", 0.3, "correlation between synthetic series")
	f.Int64("seed", 1, "seed of the synthetic generator")
	f.String("kind", "pearson", "coefficient: pearson or tetrachoric")
	f.Bool("transform", false, "apply Fisher's r-to-z transform")
	f.Int("threads", cmat.Auto, "worker threads, -1 for all CPUs")
	f.Int("tile", cmat.Auto, "tile edge: -1 auto, 0 no cache, V full storage")
	f.Float64("max-mem", -1, "memory budget in GiB, negative for 2 GiB")
	f.Bool("blocking", false, "spawn workers per refill instead of keeping a pool")
	f.String("split", "grid", "tile split among workers: grid or halving")
	f.Bool("pin", false, "pin workers to CPUs")
	f.Int("precision", 64, "element precision: 32 or 64")
	f.String("report", "", "write a yaml report of the plan and statistics to this file")

	v.SetEnvPrefix("CORRMAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	load := func() (settings, error) { return loadSettings(v) }
	logger := func() *logrus.Logger { return log }

	root.AddCommand(
		newPlanCmd(load),
		newWalkCmd(load, logger),
		newShowCmd(load, logger),
		newGetCmd(load, logger),
	)
	return root
}

func loadSettings(v *viper.Viper) (settings, error) {
	s := settings{
		Input:     v.GetString("input"),
		Header:    v.GetBool("header"),
		Rows:      v.GetInt("rows"),
		Samples:   v.GetInt("samples"),
		Rho:       v.GetFloat64("rho"),
		Seed:      v.GetInt64("seed"),
		Transform: v.GetBool("transform"),
		Threads:   v.GetInt("threads"),
		Tile:      v.GetInt("tile"),
		MaxMemGiB: v.GetFloat64("max-mem"),
		Blocking:  v.GetBool("blocking"),
		Pin:       v.GetBool("pin"),
		Precision: v.GetInt("precision"),
		Report:    v.GetString("report"),
	}

	switch strings.ToLower(v.GetString("kind")) {
	case "pearson":
		s.Kind = cmat.Pearson
	case "tetrachoric":
		s.Kind = cmat.Tetrachoric
	default:
		return s, fmt.Errorf("unknown kind %q", v.GetString("kind"))
	}

	switch strings.ToLower(v.GetString("split")) {
	case "grid":
		s.Split = cmat.Grid
	case "halving":
		s.Split = cmat.Halving
	default:
		return s, fmt.Errorf("unknown split %q", v.GetString("split"))
	}

	if s.Precision != 32 && s.Precision != 64 {
		return s, fmt.Errorf("precision must be 32 or 64, got %d", s.Precision)
	}
	if s.Input == "" && s.Rows <= 0 {
		return s, fmt.Errorf("either --input or --rows is required")
	}
	return s, nil
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}
