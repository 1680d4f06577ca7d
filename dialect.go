package csv2sql

import (
	"fmt"
	"strings"
)

// Dialect identifies a target SQL engine's syntax variant.
type Dialect int

const (
	// DialectGeneric represents portable ANSI-flavored SQL (the default)
	DialectGeneric Dialect = iota
	// DialectSQLite represents SQLite
	DialectSQLite
	// DialectPostgreSQL represents PostgreSQL
	DialectPostgreSQL
	// DialectMySQL represents MySQL
	DialectMySQL
	// DialectMSSQL represents Microsoft SQL Server
	DialectMSSQL
)

// String returns the dialect name as accepted by ParseDialect.
func (d Dialect) String() string {
	switch d {
	case DialectGeneric:
		return "generic"
	case DialectSQLite:
		return "sqlite"
	case DialectPostgreSQL:
		return "postgresql"
	case DialectMySQL:
		return "mysql"
	case DialectMSSQL:
		return "mssql"
	default:
		return "generic"
	}
}

// ParseDialect maps a dialect name to a Dialect. The match is
// case-insensitive. Unknown names return ErrUnsupportedDialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "generic":
		return DialectGeneric, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgresql", "postgres":
		return DialectPostgreSQL, nil
	case "mysql":
		return DialectMySQL, nil
	case "mssql", "sqlserver":
		return DialectMSSQL, nil
	default:
		return DialectGeneric, fmt.Errorf("%w: %s", ErrUnsupportedDialect, name)
	}
}

// Dialects returns the names of all supported dialects.
func Dialects() []string {
	return []string{"generic", "sqlite", "postgresql", "mysql", "mssql"}
}

// DialectProfile is an immutable description of one dialect's identifier
// quoting, type keywords, literal syntax, and statement terminator. Profiles
// are shared static values; they carry no mutable state.
type DialectProfile struct {
	dialect         Dialect
	quoteOpen       string
	quoteClose      string
	typeKeywords    map[ColumnType]string
	boolTrue        string
	boolFalse       string
	nullKeyword     string
	terminator      string
	escapeBackslash bool
	reserved        map[string]struct{}
}

// reservedWords is the shared core of SQL reserved words checked during
// identifier sanitization. Dialect-specific additions are folded in below.
var reservedWords = makeReservedSet(
	"all", "alter", "and", "as", "asc", "between", "by", "case", "check",
	"column", "constraint", "create", "default", "delete", "desc", "distinct",
	"drop", "else", "end", "exists", "foreign", "from", "group", "having",
	"in", "index", "inner", "insert", "into", "is", "join", "key", "left",
	"like", "limit", "not", "null", "on", "or", "order", "outer", "primary",
	"references", "right", "select", "set", "table", "then", "to", "union",
	"unique", "update", "values", "view", "when", "where",
)

func makeReservedSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

var dialectProfiles = map[Dialect]*DialectProfile{
	DialectGeneric: {
		// The generic profile emits bare identifiers; sanitization already
		// guarantees they are quote-free and reserved-word safe.
		dialect:    DialectGeneric,
		quoteOpen:  "",
		quoteClose: "",
		typeKeywords: map[ColumnType]string{
			ColumnTypeBoolean:   "BOOLEAN",
			ColumnTypeInteger:   "INTEGER",
			ColumnTypeReal:      "REAL",
			ColumnTypeDate:      "DATE",
			ColumnTypeTimestamp: "TIMESTAMP",
			ColumnTypeText:      "TEXT",
		},
		boolTrue:    "TRUE",
		boolFalse:   "FALSE",
		nullKeyword: "NULL",
		terminator:  ";",
		reserved:    reservedWords,
	},
	DialectSQLite: {
		dialect:    DialectSQLite,
		quoteOpen:  `"`,
		quoteClose: `"`,
		typeKeywords: map[ColumnType]string{
			// SQLite has no native boolean, date, or timestamp storage
			// classes; booleans become 0/1 and temporals ISO8601 text.
			ColumnTypeBoolean:   "INTEGER",
			ColumnTypeInteger:   "INTEGER",
			ColumnTypeReal:      "REAL",
			ColumnTypeDate:      "TEXT",
			ColumnTypeTimestamp: "TEXT",
			ColumnTypeText:      "TEXT",
		},
		boolTrue:    "1",
		boolFalse:   "0",
		nullKeyword: "NULL",
		terminator:  ";",
		reserved:    reservedWords,
	},
	DialectPostgreSQL: {
		dialect:    DialectPostgreSQL,
		quoteOpen:  `"`,
		quoteClose: `"`,
		typeKeywords: map[ColumnType]string{
			ColumnTypeBoolean:   "BOOLEAN",
			ColumnTypeInteger:   "INTEGER",
			ColumnTypeReal:      "DOUBLE PRECISION",
			ColumnTypeDate:      "DATE",
			ColumnTypeTimestamp: "TIMESTAMP",
			ColumnTypeText:      "TEXT",
		},
		boolTrue:    "TRUE",
		boolFalse:   "FALSE",
		nullKeyword: "NULL",
		terminator:  ";",
		reserved:    reservedWords,
	},
	DialectMySQL: {
		dialect:    DialectMySQL,
		quoteOpen:  "`",
		quoteClose: "`",
		typeKeywords: map[ColumnType]string{
			ColumnTypeBoolean:   "TINYINT(1)",
			ColumnTypeInteger:   "INT",
			ColumnTypeReal:      "DOUBLE",
			ColumnTypeDate:      "DATE",
			ColumnTypeTimestamp: "DATETIME",
			ColumnTypeText:      "TEXT",
		},
		boolTrue:        "1",
		boolFalse:       "0",
		nullKeyword:     "NULL",
		terminator:      ";",
		escapeBackslash: true,
		reserved:        reservedWords,
	},
	DialectMSSQL: {
		dialect:    DialectMSSQL,
		quoteOpen:  "[",
		quoteClose: "]",
		typeKeywords: map[ColumnType]string{
			ColumnTypeBoolean:   "BIT",
			ColumnTypeInteger:   "INT",
			ColumnTypeReal:      "FLOAT",
			ColumnTypeDate:      "DATE",
			ColumnTypeTimestamp: "DATETIME2",
			ColumnTypeText:      "TEXT",
		},
		boolTrue:    "1",
		boolFalse:   "0",
		nullKeyword: "NULL",
		terminator:  ";",
		reserved:    reservedWords,
	},
}

// Profile returns the immutable DialectProfile for the dialect.
func (d Dialect) Profile() *DialectProfile {
	if p, ok := dialectProfiles[d]; ok {
		return p
	}
	return dialectProfiles[DialectGeneric]
}

// Dialect returns the dialect this profile describes.
func (p *DialectProfile) Dialect() Dialect {
	return p.dialect
}

// QuoteIdentifier quotes an identifier with the dialect's quote characters,
// doubling any embedded closing quote.
func (p *DialectProfile) QuoteIdentifier(name string) string {
	if p.quoteClose == "" {
		return name
	}
	escaped := strings.ReplaceAll(name, p.quoteClose, p.quoteClose+p.quoteClose)
	return p.quoteOpen + escaped + p.quoteClose
}

// TypeKeyword returns the dialect's DDL keyword for the column type.
func (p *DialectProfile) TypeKeyword(t ColumnType) string {
	if kw, ok := p.typeKeywords[t]; ok {
		return kw
	}
	return p.typeKeywords[ColumnTypeText]
}

// QuoteLiteral renders one non-null cell value as a SQL literal for a column
// of the given inferred type. Numeric values pass through unquoted, booleans
// become the dialect's boolean literal, and everything else is a quoted
// string with embedded quotes escaped.
func (p *DialectProfile) QuoteLiteral(raw string, t ColumnType) string {
	value := strings.TrimSpace(raw)
	switch {
	case t.isNumeric():
		return value
	case t == ColumnTypeBoolean:
		switch strings.ToLower(value) {
		case "true", "yes", "1":
			return p.boolTrue
		default:
			return p.boolFalse
		}
	default:
		escaped := strings.ReplaceAll(raw, "'", "''")
		if p.escapeBackslash {
			escaped = strings.ReplaceAll(escaped, `\`, `\\`)
		}
		return "'" + escaped + "'"
	}
}

// NullKeyword returns the dialect's NULL literal.
func (p *DialectProfile) NullKeyword() string {
	return p.nullKeyword
}

// StatementTerminator returns the dialect's statement terminator.
func (p *DialectProfile) StatementTerminator() string {
	return p.terminator
}
