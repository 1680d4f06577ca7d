package csv2sql

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Column is one column of the generated table.
type Column struct {
	// Name is the sanitized SQL identifier
	Name string
	// Ordinal is the zero-based column position
	Ordinal int
	// Type is the inferred column type
	Type ColumnType
	// Nullable is true if any observed cell was empty or a null token
	Nullable bool
	// PrimaryKeyCandidate marks the advisory primary-key guess. Emission of
	// a PRIMARY KEY clause is a caller option, never automatic.
	PrimaryKeyCandidate bool
}

// TableSchema is the immutable result of the inference pass: a table name
// plus columns in input order.
type TableSchema struct {
	Name    string
	Columns []Column
}

// ColumnNames returns the column names in schema order.
func (ts *TableSchema) ColumnNames() []string {
	names := make([]string, len(ts.Columns))
	for i, c := range ts.Columns {
		names[i] = c.Name
	}
	return names
}

// PrimaryKeyCandidate returns the name of the advisory primary-key column,
// if one was detected.
func (ts *TableSchema) PrimaryKeyCandidate() (string, bool) {
	for _, c := range ts.Columns {
		if c.PrimaryKeyCandidate {
			return c.Name, true
		}
	}
	return "", false
}

// HasColumn reports whether the schema contains the named column.
func (ts *TableSchema) HasColumn(name string) bool {
	for _, c := range ts.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// sanitizeIdentifier turns an arbitrary header cell into a valid SQL
// identifier: lowercase, every character outside [a-z0-9_] replaced with an
// underscore, and an underscore prefix when the result starts with a digit
// or collides with a reserved word of the target dialect.
//
// The function is idempotent: sanitizing an already-sanitized identifier
// returns it unchanged.
func sanitizeIdentifier(name string, reserved map[string]struct{}) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	result := b.String()

	if result == "" {
		return "column"
	}
	if result[0] >= '0' && result[0] <= '9' {
		result = "_" + result
	}
	if _, ok := reserved[result]; ok {
		result = "_" + result
	}
	return result
}

// deriveTableName produces a table name from an input path: the base name
// with compression and format extensions stripped, sanitized for the target
// dialect. An empty path yields "data" (stdin has no name to derive from).
func deriveTableName(path string, reserved map[string]struct{}) string {
	if path == "" || path == "-" {
		return "data"
	}
	base := filepath.Base(removeCompressionExtension(path))
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		return "data"
	}
	return sanitizeIdentifier(base, reserved)
}

// buildSchema combines per-column classification results with header names
// into a TableSchema. Duplicate names after sanitization get _2, _3, ...
// suffixes in encounter order.
func buildSchema(tableName string, hdr header, stats []*columnStats, profile *DialectProfile) (*TableSchema, error) {
	if len(hdr) == 0 {
		return nil, ErrEmptyInput
	}
	if len(hdr) != len(stats) {
		return nil, fmt.Errorf("csv2sql: header has %d columns but stats has %d", len(hdr), len(stats))
	}

	seen := make(map[string]struct{}, len(hdr))
	columns := make([]Column, len(hdr))
	for i, name := range hdr {
		sanitized := sanitizeIdentifier(name, profile.reserved)
		if _, dup := seen[sanitized]; dup {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", sanitized, n)
				if _, taken := seen[candidate]; !taken {
					sanitized = candidate
					break
				}
			}
		}
		seen[sanitized] = struct{}{}

		columns[i] = Column{
			Name:     sanitized,
			Ordinal:  i,
			Type:     stats[i].columnType(),
			Nullable: stats[i].isNullable(),
		}
	}

	// Advisory primary key: the first integer column with no NULLs and no
	// duplicate values.
	for i := range columns {
		if columns[i].Type == ColumnTypeInteger && !columns[i].Nullable && stats[i].isUnique() {
			columns[i].PrimaryKeyCandidate = true
			break
		}
	}

	return &TableSchema{
		Name:    sanitizeIdentifier(tableName, profile.reserved),
		Columns: columns,
	}, nil
}
