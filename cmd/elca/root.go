package main

import (
	"fmt"
	"os"

	"github.com/IWUGERMANY/elca-sub014/config"
	"github.com/IWUGERMANY/elca-sub014/engine"
	"github.com/IWUGERMANY/elca-sub014/output"
	"github.com/IWUGERMANY/elca-sub014/store/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	dbPath    string
	logLevel  string
	outFormat string
	noColor   bool

	cfg *config.Config
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "elca",
	Short: "Benchmark scoring and unit conversion for building life-cycle assessments",
	Long: `elca scores the life-cycle assessment of a building against a benchmark
version and resolves the unit conversions its process configs need.

Benchmark versions and process life cycles are imported from JSON or YAML
documents into a SQLite database and referenced by ID afterwards.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "config file (toml, yaml or json)")
	flags.StringVar(&dbPath, "db", "", "SQLite database path (overrides database.path)")
	flags.StringVar(&logLevel, "log-level", "", "log level (overrides log.level)")
	flags.StringVar(&outFormat, "format", "", "output format: table or json (overrides output.format)")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(lifecycleCmd)
	rootCmd.AddCommand(componentCmd)
	rootCmd.AddCommand(convertCmd)
}

// setup loads the configuration, applies flag overrides and configures
// the logger.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.LoadOrDefault()
	}
	if err != nil {
		return err
	}

	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if outFormat != "" {
		cfg.Output.Format = outFormat
	}
	if noColor {
		cfg.Output.Color = false
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	if cfg.Log.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return nil
}

// openEngine opens the configured database. The returned func closes it.
func openEngine() (*engine.Engine, func(), error) {
	s, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.WithField("path", cfg.Database.Path).Debug("database opened")

	e := engine.New(s,
		engine.WithLogger(log),
		engine.WithWorkers(cfg.Engine.Workers),
		engine.WithTransitiveConversions(cfg.Conversion.Transitive),
	)
	return e, func() { s.Close() }, nil
}

func printer(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), output.ParseFormat(cfg.Output.Format), cfg.Output.Color)
}
