// Package cli provides the command-line interface for csv2sql.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/nao1215/csv2sql"
	"github.com/nao1215/csv2sql/internal/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "csv2sql [input]",
		Short: "Generate SQL from CSV, TSV, and XLSX files",
		Long: `csv2sql infers a table schema from tabular data and generates
CREATE TABLE and batched INSERT statements for the chosen SQL dialect.

The input is a file path, or standard input when omitted (or "-").
Compressed inputs (.gz, .bz2, .xz, .zst) are decompressed automatically,
and an output path ending in .gz, .xz, or .zst is compressed on write.`,
		Example: `  # Print generic SQL for a CSV file
  csv2sql users.csv --table users

  # PostgreSQL dialect, written to a file
  csv2sql users.csv -t users -d postgresql -o users.sql

  # Schema only, from standard input
  cat users.csv | csv2sql -t users --schema-only

  # Small INSERT batches with a declared primary key
  csv2sql data.csv.gz -t data -b 100 --primary-key id`,
		Args:          cobra.MaximumNArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("csv2sql {{.Version}} (built %s, commit %s)\n", BuildDate, GitCommit))

	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./csv2sql.yaml)")
	flags.StringP("table", "t", "", "table name (default: derived from the input file name)")
	flags.StringP("dialect", "d", "generic", "SQL dialect: "+strings.Join(csv2sql.Dialects(), ", "))
	flags.StringP("output", "o", "", "output SQL file (default: standard output)")
	flags.IntP("batch-size", "b", config.DefaultBatchSize, "rows per INSERT statement")
	flags.BoolP("schema-only", "s", false, "generate only the CREATE TABLE statement")
	flags.Bool("data-only", false, "generate only INSERT statements")
	flags.StringP("primary-key", "p", "", "column to declare as PRIMARY KEY")
	flags.Bool("guess-primary-key", false, "declare the detected primary-key candidate, if any")
	flags.Bool("no-header", false, "treat the first row as data (columns become column_1, column_2, ...)")
	flags.StringSlice("null-tokens", nil, "cell values treated as NULL besides the empty string")
	flags.BoolP("verbose", "v", false, "verbose output")

	return rootCmd
}

// newLogger builds the stderr logger used for row warnings and progress.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// run executes one conversion.
func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)

	// An unknown dialect is rejected before any input is touched.
	dialect, err := csv2sql.ParseDialect(cfg.Dialect)
	if err != nil {
		return err
	}

	opts := csv2sql.NewConvertOptions().
		WithTableName(cfg.Table).
		WithDialect(dialect).
		WithBatchSize(cfg.BatchSize).
		WithPrimaryKey(cfg.PrimaryKey).
		WithNullTokens(cfg.NullTokens...).
		WithLogger(logger)
	if cfg.SchemaOnly {
		opts = opts.WithSchemaOnly()
	}
	if cfg.DataOnly {
		opts = opts.WithDataOnly()
	}
	if cfg.GuessPrimaryKey {
		opts = opts.WithGuessPrimaryKey()
	}
	if cfg.NoHeader {
		opts = opts.WithNoHeader()
	}

	input := ""
	if len(args) == 1 {
		input = args[0]
	}

	ctx := cmd.Context()
	if input == "" || input == "-" {
		logger.Debug("reading from standard input", "dialect", dialect.String())
		return csv2sql.ConvertReaderToFile(ctx, cmd.InOrStdin(), cfg.Output, opts)
	}
	logger.Debug("converting input file",
		"input", input, "dialect", dialect.String(), "batch_size", cfg.BatchSize)
	return csv2sql.ConvertToFile(ctx, input, cfg.Output, opts)
}
