package csv2sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Dialect
		wantErr bool
	}{
		{name: "generic", input: "generic", want: DialectGeneric},
		{name: "empty defaults to generic", input: "", want: DialectGeneric},
		{name: "sqlite", input: "sqlite", want: DialectSQLite},
		{name: "sqlite3 alias", input: "sqlite3", want: DialectSQLite},
		{name: "postgresql", input: "postgresql", want: DialectPostgreSQL},
		{name: "postgres alias", input: "postgres", want: DialectPostgreSQL},
		{name: "mysql uppercase", input: "MySQL", want: DialectMySQL},
		{name: "mssql", input: "mssql", want: DialectMSSQL},
		{name: "unknown", input: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDialect(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedDialect)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialectProfile_QuoteIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dialect Dialect
		ident   string
		want    string
	}{
		{name: "generic is bare", dialect: DialectGeneric, ident: "users", want: "users"},
		{name: "sqlite double quotes", dialect: DialectSQLite, ident: "users", want: `"users"`},
		{name: "postgresql double quotes", dialect: DialectPostgreSQL, ident: "users", want: `"users"`},
		{name: "mysql backticks", dialect: DialectMySQL, ident: "users", want: "`users`"},
		{name: "mssql brackets", dialect: DialectMSSQL, ident: "users", want: "[users]"},
		{name: "embedded quote is doubled", dialect: DialectPostgreSQL, ident: `we"ird`, want: `"we""ird"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.dialect.Profile().QuoteIdentifier(tt.ident)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialectProfile_TypeKeyword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dialect Dialect
		ct      ColumnType
		want    string
	}{
		{name: "generic boolean", dialect: DialectGeneric, ct: ColumnTypeBoolean, want: "BOOLEAN"},
		{name: "sqlite boolean is integer", dialect: DialectSQLite, ct: ColumnTypeBoolean, want: "INTEGER"},
		{name: "sqlite timestamp is text", dialect: DialectSQLite, ct: ColumnTypeTimestamp, want: "TEXT"},
		{name: "postgresql real", dialect: DialectPostgreSQL, ct: ColumnTypeReal, want: "DOUBLE PRECISION"},
		{name: "mysql boolean", dialect: DialectMySQL, ct: ColumnTypeBoolean, want: "TINYINT(1)"},
		{name: "mysql timestamp", dialect: DialectMySQL, ct: ColumnTypeTimestamp, want: "DATETIME"},
		{name: "mssql boolean", dialect: DialectMSSQL, ct: ColumnTypeBoolean, want: "BIT"},
		{name: "mssql timestamp", dialect: DialectMSSQL, ct: ColumnTypeTimestamp, want: "DATETIME2"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.dialect.Profile().TypeKeyword(tt.ct)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialectProfile_QuoteLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dialect Dialect
		raw     string
		ct      ColumnType
		want    string
	}{
		{name: "integer passes through", dialect: DialectGeneric, raw: "42", ct: ColumnTypeInteger, want: "42"},
		{name: "real passes through", dialect: DialectGeneric, raw: "-3.14", ct: ColumnTypeReal, want: "-3.14"},
		{name: "text is quoted", dialect: DialectGeneric, raw: "Alice", ct: ColumnTypeText, want: "'Alice'"},
		{name: "apostrophe is doubled", dialect: DialectGeneric, raw: "O'Brien", ct: ColumnTypeText, want: "'O''Brien'"},
		{name: "date is quoted", dialect: DialectGeneric, raw: "2023-01-15", ct: ColumnTypeDate, want: "'2023-01-15'"},
		{name: "generic true", dialect: DialectGeneric, raw: "yes", ct: ColumnTypeBoolean, want: "TRUE"},
		{name: "generic false", dialect: DialectGeneric, raw: "no", ct: ColumnTypeBoolean, want: "FALSE"},
		{name: "postgresql boolean word", dialect: DialectPostgreSQL, raw: "true", ct: ColumnTypeBoolean, want: "TRUE"},
		{name: "mysql boolean renders as digit", dialect: DialectMySQL, raw: "true", ct: ColumnTypeBoolean, want: "1"},
		{name: "sqlite boolean renders as digit", dialect: DialectSQLite, raw: "FALSE", ct: ColumnTypeBoolean, want: "0"},
		{name: "mysql backslash is escaped", dialect: DialectMySQL, raw: `C:\tmp`, ct: ColumnTypeText, want: `'C:\\tmp'`},
		{name: "postgresql backslash passes through", dialect: DialectPostgreSQL, raw: `C:\tmp`, ct: ColumnTypeText, want: `'C:\tmp'`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.dialect.Profile().QuoteLiteral(tt.raw, tt.ct)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialectProfile_Statics(t *testing.T) {
	t.Parallel()

	for _, name := range Dialects() {
		d, err := ParseDialect(name)
		require.NoError(t, err)
		p := d.Profile()
		assert.Equal(t, "NULL", p.NullKeyword())
		assert.Equal(t, ";", p.StatementTerminator())
		assert.Equal(t, d, p.Dialect())
	}
}
