// Package config loads csv2sql CLI configuration from file, environment
// variables, and flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DefaultBatchSize is the default number of rows per INSERT statement.
const DefaultBatchSize = 1000

// Config holds the settings of one csv2sql invocation.
type Config struct {
	// Table is the target table name; empty derives it from the input path
	Table string `koanf:"table"`
	// Dialect is the target SQL dialect name
	Dialect string `koanf:"dialect"`
	// Output is the output path; empty or "-" means standard output
	Output string `koanf:"output"`
	// BatchSize is the number of rows per INSERT statement
	BatchSize int `koanf:"batch_size"`
	// SchemaOnly emits only the CREATE TABLE statement
	SchemaOnly bool `koanf:"schema_only"`
	// DataOnly emits only INSERT statements
	DataOnly bool `koanf:"data_only"`
	// PrimaryKey names the column to declare as PRIMARY KEY
	PrimaryKey string `koanf:"primary_key"`
	// GuessPrimaryKey declares the detected candidate column, if any
	GuessPrimaryKey bool `koanf:"guess_primary_key"`
	// NoHeader treats the first input row as data
	NoHeader bool `koanf:"no_header"`
	// NullTokens lists cell values treated as NULL besides the empty string
	NullTokens []string `koanf:"null_tokens"`
	// Verbose enables debug logging
	Verbose bool `koanf:"verbose"`
}

// findConfigFile finds the config file to use.
// Priority: explicit path > csv2sql.yaml > csv2sql.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("csv2sql.yaml"); err == nil {
		return "csv2sql.yaml"
	}
	if _, err := os.Stat("csv2sql.yml"); err == nil {
		return "csv2sql.yml"
	}
	return ""
}

// Load loads configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"dialect":    "generic",
		"batch_size": DefaultBatchSize,
		"verbose":    false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, when present
	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 3. Environment variables (CSV2SQL_ prefix)
	// Transform: CSV2SQL_BATCH_SIZE -> batch_size
	if err := k.Load(env.Provider("CSV2SQL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CSV2SQL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags override everything else
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case flag names to snake_case config keys
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
