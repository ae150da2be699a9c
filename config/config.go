/*
config.go - CLI and engine configuration

PURPOSE:
  Loads settings from an optional file (toml, yaml or json, chosen by
  extension) and from ELCA_* environment variables, on top of defaults.

PRECEDENCE:
  defaults < file < environment

ENVIRONMENT:
  ELCA_DATABASE_PATH=./elca.db   -> database.path
  ELCA_ENGINE_WORKERS=8          -> engine.workers
  ELCA_LOG_LEVEL=debug           -> log.level
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ELCA_"

type Config struct {
	Database   DatabaseConfig   `koanf:"database"`
	Log        LogConfig        `koanf:"log"`
	Benchmark  BenchmarkConfig  `koanf:"benchmark"`
	Conversion ConversionConfig `koanf:"conversion"`
	Engine     EngineConfig     `koanf:"engine"`
	Output     OutputConfig     `koanf:"output"`
}

type DatabaseConfig struct {
	// Path of the SQLite file; ":memory:" keeps everything in memory.
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

type BenchmarkConfig struct {
	// Version is the benchmark version used when a command gets none.
	Version int64 `koanf:"version"`
}

type ConversionConfig struct {
	// Transitive lets converters chain known conversions.
	Transitive bool `koanf:"transitive"`
}

type EngineConfig struct {
	Workers int `koanf:"workers"`
}

type OutputConfig struct {
	Format string `koanf:"format"` // table, json
	Color  bool   `koanf:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "elca.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Engine: EngineConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
	}
}

// Load reads path (if non-empty) and the environment over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault looks for elca.{toml,yaml,yml,json} in the working
// directory and falls back to defaults plus environment.
func LoadOrDefault() (*Config, error) {
	for _, name := range []string{"elca.toml", "elca.yaml", "elca.yml", "elca.json"} {
		if _, err := os.Stat(name); err == nil {
			return Load(name)
		}
	}
	return Load("")
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	default:
		return toml.Parser()
	}
}

// envKey maps ELCA_ENGINE_WORKERS to engine.workers.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

func (c *Config) Validate() error {
	if c.Engine.Workers < 1 {
		return fmt.Errorf("engine.workers must be at least 1, got %d", c.Engine.Workers)
	}
	switch c.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("output.format must be table or json, got %q", c.Output.Format)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
