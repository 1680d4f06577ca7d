package csv2sql

import (
	"strconv"
	"strings"
)

// Processing constants
const (
	// DefaultBatchSize is the default number of rows per INSERT statement
	DefaultBatchSize = 1000
	// MinBatchSize is the minimum allowed rows per INSERT statement
	MinBatchSize = 1
)

// File format delimiters
const (
	// csvDelimiter is the delimiter for CSV files
	csvDelimiter = ','
	// tsvDelimiter is the delimiter for TSV files
	tsvDelimiter = '\t'
)

// ColumnType represents an inferred SQL column type.
//
// The values are ordered by specificity: a larger value is a wider type.
// Type inference starts at the most specific type a value allows and only
// ever widens, so ColumnTypeText is the universal fallback.
type ColumnType int

const (
	// ColumnTypeBoolean represents a BOOLEAN column
	ColumnTypeBoolean ColumnType = iota
	// ColumnTypeInteger represents an INTEGER column
	ColumnTypeInteger
	// ColumnTypeReal represents a REAL (floating point) column
	ColumnTypeReal
	// ColumnTypeDate represents a DATE column (YYYY-MM-DD)
	ColumnTypeDate
	// ColumnTypeTimestamp represents a TIMESTAMP column (date plus time, optional zone)
	ColumnTypeTimestamp
	// ColumnTypeText represents a TEXT column
	ColumnTypeText
)

// String returns the generic SQL keyword for the column type.
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeBoolean:
		return "BOOLEAN"
	case ColumnTypeInteger:
		return "INTEGER"
	case ColumnTypeReal:
		return "REAL"
	case ColumnTypeDate:
		return "DATE"
	case ColumnTypeTimestamp:
		return "TIMESTAMP"
	case ColumnTypeText:
		return "TEXT"
	default:
		return "TEXT"
	}
}

// isNumeric reports whether literals of this type are rendered unquoted.
func (ct ColumnType) isNumeric() bool {
	return ct == ColumnTypeInteger || ct == ColumnTypeReal
}

// widen returns the wider of the two types.
func (ct ColumnType) widen(other ColumnType) ColumnType {
	if other > ct {
		return other
	}
	return ct
}

// header is the input header row.
type header []string

// newHeader creates a new header.
func newHeader(h []string) header {
	return header(h)
}

// equal compares headers.
func (h header) equal(h2 header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Record represents one data row as a slice of raw string fields.
type Record []string

// newRecord creates a new Record.
func newRecord(r []string) Record {
	return Record(r)
}

// equal compares records.
func (r Record) equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// BatchSize represents a rows-per-INSERT batch size with validation
type BatchSize int

// NewBatchSize creates a new BatchSize with validation
func NewBatchSize(size int) BatchSize {
	if size < MinBatchSize {
		return BatchSize(DefaultBatchSize)
	}
	return BatchSize(size)
}

// Int returns the int value of BatchSize
func (bs BatchSize) Int() int {
	return int(bs)
}

// String returns the string representation of BatchSize
func (bs BatchSize) String() string {
	return strconv.Itoa(int(bs))
}

// IsValid checks if the batch size is valid
func (bs BatchSize) IsValid() bool {
	return int(bs) >= MinBatchSize
}

// NullTokens is the set of cell values treated as SQL NULL.
//
// The empty string is always a null token. Additional tokens (for example
// "NULL" or "N/A") are matched case-insensitively.
type NullTokens map[string]struct{}

// NewNullTokens creates a null token set from the given tokens.
func NewNullTokens(tokens ...string) NullTokens {
	nt := make(NullTokens, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		nt[t] = struct{}{}
	}
	return nt
}

// IsNull reports whether the raw cell value means SQL NULL.
func (nt NullTokens) IsNull(value string) bool {
	if value == "" {
		return true
	}
	if len(nt) == 0 {
		return false
	}
	_, ok := nt[strings.ToLower(value)]
	return ok
}
