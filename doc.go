// Package csv2sql generates dialect-specific SQL (CREATE TABLE and batched
// INSERT statements) from CSV, TSV, and Excel (XLSX) files without loading
// the full dataset into memory.
//
// csv2sql never connects to a database. It reads tabular data, infers the
// narrowest SQL column type for each column, and writes plain SQL text that
// the caller can pipe into any client for the chosen dialect.
//
// # Features
//
//   - Streaming type inference (BOOLEAN, INTEGER, REAL, DATE, TIMESTAMP, TEXT)
//   - Dialect profiles for generic, SQLite, PostgreSQL, MySQL, and MSSQL
//   - Batched multi-row INSERT statements with a configurable batch size
//   - Automatic handling of compressed inputs (gzip, bzip2, xz, zstandard)
//   - Input from files, io.Reader, or standard input
//
// # Basic Usage
//
// The simplest way to use csv2sql is the Convert function:
//
//	opts := csv2sql.NewConvertOptions().WithTableName("users")
//	if err := csv2sql.Convert(ctx, "users.csv", os.Stdout, opts); err != nil {
//	    log.Fatal(err)
//	}
//
// To target a specific database, pick a dialect:
//
//	opts := csv2sql.NewConvertOptions().
//	    WithTableName("users").
//	    WithDialect(csv2sql.DialectPostgreSQL).
//	    WithBatchSize(500)
//
// # Table Naming
//
// When no table name is given it is derived from the input path:
//   - "users.csv" becomes table "users"
//   - "data.csv.gz" becomes table "data"
//   - "/path/to/Order Items.xlsx" becomes table "order_items"
//
// # Type Inference
//
// Each column starts at the most specific type and widens monotonically as
// disqualifying values are seen (BOOLEAN -> INTEGER -> REAL -> DATE ->
// TIMESTAMP -> TEXT). TEXT is the universal fallback, so malformed values
// never abort a run. Empty cells (and any configured null tokens) mark the
// column nullable and render as the dialect's NULL keyword.
package csv2sql
