package csv2sql

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ConvertOptions configures a conversion run.
//
// Example:
//
//	opts := csv2sql.NewConvertOptions().
//		WithTableName("users").
//		WithDialect(csv2sql.DialectPostgreSQL).
//		WithBatchSize(500)
//
//	err := csv2sql.Convert(ctx, "users.csv", os.Stdout, opts)
type ConvertOptions struct {
	// TableName is the target table name. Empty means: derive from the
	// input file's base name ("data" for non-file input).
	TableName string
	// Dialect selects the target SQL dialect
	Dialect Dialect
	// BatchSize is the number of rows per INSERT statement
	BatchSize BatchSize
	// SchemaOnly emits only the CREATE TABLE statement
	SchemaOnly bool
	// DataOnly emits only INSERT statements
	DataOnly bool
	// PrimaryKey names the column to declare as PRIMARY KEY
	PrimaryKey string
	// GuessPrimaryKey declares the detected candidate column, if any
	GuessPrimaryKey bool
	// NullTokens extends the set of cell values treated as NULL beyond the
	// empty string
	NullTokens NullTokens
	// NoHeader treats the first row as data and synthesizes column names
	NoHeader bool
	// Format is the input format for reader-based input (default CSV);
	// file input detects the format from the path instead
	Format FileType
	// Compression is the input compression for reader-based input
	Compression CompressionType
	// Logger receives skipped-row warnings; nil discards them
	Logger *slog.Logger
}

// NewConvertOptions creates default conversion options: generic dialect,
// batch size 1000, header row present, only empty cells treated as NULL.
func NewConvertOptions() ConvertOptions {
	return ConvertOptions{
		Dialect:   DialectGeneric,
		BatchSize: NewBatchSize(DefaultBatchSize),
		Format:    FileTypeCSV,
	}
}

// WithTableName sets the target table name.
func (o ConvertOptions) WithTableName(name string) ConvertOptions {
	o.TableName = name
	return o
}

// WithDialect sets the target SQL dialect.
func (o ConvertOptions) WithDialect(d Dialect) ConvertOptions {
	o.Dialect = d
	return o
}

// WithBatchSize sets the number of rows per INSERT statement.
func (o ConvertOptions) WithBatchSize(size int) ConvertOptions {
	o.BatchSize = NewBatchSize(size)
	return o
}

// WithSchemaOnly emits only the CREATE TABLE statement.
func (o ConvertOptions) WithSchemaOnly() ConvertOptions {
	o.SchemaOnly = true
	return o
}

// WithDataOnly emits only INSERT statements.
func (o ConvertOptions) WithDataOnly() ConvertOptions {
	o.DataOnly = true
	return o
}

// WithPrimaryKey declares the named column as PRIMARY KEY in the DDL.
func (o ConvertOptions) WithPrimaryKey(column string) ConvertOptions {
	o.PrimaryKey = column
	return o
}

// WithGuessPrimaryKey declares the detected primary-key candidate, if any.
func (o ConvertOptions) WithGuessPrimaryKey() ConvertOptions {
	o.GuessPrimaryKey = true
	return o
}

// WithNullTokens sets additional cell values recognized as NULL.
func (o ConvertOptions) WithNullTokens(tokens ...string) ConvertOptions {
	o.NullTokens = NewNullTokens(tokens...)
	return o
}

// WithNoHeader treats the first row as data; columns are named
// column_1, column_2, and so on.
func (o ConvertOptions) WithNoHeader() ConvertOptions {
	o.NoHeader = true
	return o
}

// WithFormat sets the input format for reader-based input.
func (o ConvertOptions) WithFormat(ft FileType) ConvertOptions {
	o.Format = ft
	return o
}

// WithCompression sets the input compression for reader-based input.
func (o ConvertOptions) WithCompression(c CompressionType) ConvertOptions {
	o.Compression = c
	return o
}

// WithLogger sets the logger for skipped-row warnings.
func (o ConvertOptions) WithLogger(logger *slog.Logger) ConvertOptions {
	o.Logger = logger
	return o
}

// validate checks option consistency before any processing begins.
func (o ConvertOptions) validate() error {
	if o.SchemaOnly && o.DataOnly {
		return ErrConflictingOptions
	}
	return nil
}

// logger returns the configured logger or a discarding one.
func (o ConvertOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Convert reads the tabular file at path and writes SQL to w. The file is
// streamed twice: once to infer the schema and once to emit INSERT rows, so
// memory stays proportional to the column count, not the row count. XLSX
// input is the exception; it is decoded into memory by its reader.
func Convert(ctx context.Context, path string, w io.Writer, opts ConvertOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	fileType := detectFileType(path)
	if fileType == FileTypeUnsupported {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	// Inference pass.
	source, cleanup, err := openFileSource(path, fileType, opts.NoHeader)
	if err != nil {
		return err
	}
	hdr, stats, _, err := inferPass(ctx, source, opts, false)
	if closeErr := cleanup(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return NewErrorContext("schema inference", path).Error(err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = deriveTableName(path, opts.Dialect.Profile().reserved)
	}

	// Emission pass re-opens the file; a seekable input avoids buffering
	// the whole row set.
	return emitSQL(ctx, w, hdr, stats, tableName, opts, func() (rowSource, func() error, error) {
		return openFileSource(path, fileType, opts.NoHeader)
	})
}

// ConvertReader reads tabular data from r and writes SQL to w. Because a
// plain reader cannot be re-read, valid rows from the inference pass are
// buffered in memory and replayed for emission.
func ConvertReader(ctx context.Context, r io.Reader, w io.Writer, opts ConvertOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	reader, cleanup, err := newCompressionReader(r, opts.Compression)
	if err != nil {
		return err
	}
	source, err := newReaderSource(reader, opts.Format, opts.NoHeader)
	if err != nil {
		_ = cleanup()
		return err
	}

	buffer := !opts.SchemaOnly
	hdr, stats, rows, err := inferPass(ctx, source, opts, buffer)
	if closeErr := cleanup(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return NewErrorContext("schema inference", "").Error(err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "data"
	}

	return emitSQL(ctx, w, hdr, stats, tableName, opts, func() (rowSource, func() error, error) {
		return newBufferedSource(hdr, rows), func() error { return nil }, nil
	})
}

// ConvertToFile converts the input file and writes SQL to outputPath,
// compressing by extension (.sql.gz, .sql.xz, .sql.zst). An empty or "-"
// outputPath writes to standard output.
func ConvertToFile(ctx context.Context, inputPath, outputPath string, opts ConvertOptions) error {
	if outputPath == "" || outputPath == "-" {
		return Convert(ctx, inputPath, os.Stdout, opts)
	}

	file, err := os.Create(outputPath) //nolint:gosec // user-provided output path
	if err != nil {
		return fmt.Errorf("%w: %s", ErrOutputNotWritable, outputPath)
	}

	writer, closeCompressor, err := newCompressionWriter(file, detectCompressionType(outputPath))
	if err != nil {
		_ = file.Close()
		return err
	}

	convErr := Convert(ctx, inputPath, writer, opts)
	if err := closeCompressor(); err != nil && convErr == nil {
		convErr = fmt.Errorf("%w: %s", ErrOutputNotWritable, err)
	}
	if err := file.Close(); err != nil && convErr == nil {
		convErr = fmt.Errorf("%w: %s", ErrOutputNotWritable, err)
	}
	return convErr
}

// ConvertReaderToFile converts reader input and writes SQL to outputPath,
// compressing by extension. An empty or "-" outputPath writes to standard
// output.
func ConvertReaderToFile(ctx context.Context, r io.Reader, outputPath string, opts ConvertOptions) error {
	if outputPath == "" || outputPath == "-" {
		return ConvertReader(ctx, r, os.Stdout, opts)
	}

	file, err := os.Create(outputPath) //nolint:gosec // user-provided output path
	if err != nil {
		return fmt.Errorf("%w: %s", ErrOutputNotWritable, outputPath)
	}

	writer, closeCompressor, err := newCompressionWriter(file, detectCompressionType(outputPath))
	if err != nil {
		_ = file.Close()
		return err
	}

	convErr := ConvertReader(ctx, r, writer, opts)
	if err := closeCompressor(); err != nil && convErr == nil {
		convErr = fmt.Errorf("%w: %s", ErrOutputNotWritable, err)
	}
	if err := file.Close(); err != nil && convErr == nil {
		convErr = fmt.Errorf("%w: %s", ErrOutputNotWritable, err)
	}
	return convErr
}

// inferPass streams every row once, folding cells into per-column stats.
// Malformed rows (field count differing from the header) are skipped with a
// warning; the emission pass applies the identical rule so both passes see
// the same rows. When buffer is true, valid rows are also collected for
// replay.
func inferPass(ctx context.Context, source rowSource, opts ConvertOptions, buffer bool) (header, []*columnStats, []Record, error) {
	hdr := source.Header()
	if len(hdr) == 0 {
		return nil, nil, nil, ErrEmptyInput
	}

	logger := opts.logger()
	stats := make([]*columnStats, len(hdr))
	for i := range stats {
		stats[i] = newColumnStats()
	}

	var rows []Record
	rowNum := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}
		rec, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, nil, fmt.Errorf("csv2sql: failed to read row %d: %w", rowNum+1, err)
		}
		rowNum++
		if len(rec) != len(hdr) {
			logger.Warn("skipping malformed row",
				"row", rowNum, "fields", len(rec), "expected", len(hdr))
			continue
		}
		for i, cell := range rec {
			stats[i].observe(cell, opts.NullTokens)
		}
		if buffer {
			rows = append(rows, rec)
		}
	}
	return hdr, stats, rows, nil
}

// emitSQL builds the schema and renders DDL and INSERT statements. reopen
// supplies the row source for the emission pass; it is only invoked when
// data rows are wanted.
func emitSQL(ctx context.Context, w io.Writer, hdr header, stats []*columnStats, tableName string, opts ConvertOptions, reopen func() (rowSource, func() error, error)) error {
	profile := opts.Dialect.Profile()
	schema, err := buildSchema(tableName, hdr, stats, profile)
	if err != nil {
		return err
	}
	primaryKey, err := resolvePrimaryKey(schema, opts)
	if err != nil {
		return err
	}

	buffered := bufio.NewWriter(w)
	em := newEmitter(buffered, schema, profile, opts.BatchSize, opts.NullTokens)

	if !opts.DataOnly {
		if err := em.writeDDL(primaryKey); err != nil {
			return err
		}
	}
	if !opts.SchemaOnly {
		if err := emitRows(ctx, em, hdr, opts, reopen); err != nil {
			return err
		}
	}
	if err := em.finish(); err != nil {
		return err
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("%w: %s", ErrOutputNotWritable, err)
	}
	return nil
}

// emitRows streams the emission pass through the emitter, skipping
// malformed rows exactly as the inference pass did.
func emitRows(ctx context.Context, em *emitter, hdr header, opts ConvertOptions, reopen func() (rowSource, func() error, error)) error {
	source, cleanup, err := reopen()
	if err != nil {
		return err
	}
	defer cleanup() //nolint:errcheck // read side cleanup

	if !source.Header().equal(hdr) {
		return errors.New("csv2sql: input changed between passes")
	}

	logger := opts.logger()
	rowNum := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := source.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("csv2sql: failed to read row %d: %w", rowNum+1, err)
		}
		rowNum++
		if len(rec) != len(hdr) {
			// Already warned during the inference pass.
			logger.Debug("skipping malformed row",
				"row", rowNum, "fields", len(rec), "expected", len(hdr))
			continue
		}
		if err := em.writeRow(rec); err != nil {
			return err
		}
	}
}

// resolvePrimaryKey maps the primary-key options onto a schema column name.
// An explicit column must exist in the schema (after sanitization).
func resolvePrimaryKey(schema *TableSchema, opts ConvertOptions) (string, error) {
	if opts.PrimaryKey != "" {
		name := sanitizeIdentifier(opts.PrimaryKey, opts.Dialect.Profile().reserved)
		if !schema.HasColumn(name) {
			return "", fmt.Errorf("%w: %s", ErrUnknownColumn, opts.PrimaryKey)
		}
		return name, nil
	}
	if opts.GuessPrimaryKey {
		if name, ok := schema.PrimaryKeyCandidate(); ok {
			return name, nil
		}
	}
	return "", nil
}
