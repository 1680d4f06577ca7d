package csv2sql

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite" // sqlite driver for validating generated SQL
)

// The sqlite dialect output must be executable as-is: the generated DDL and
// INSERT statements are run against an in-memory SQLite database and the
// loaded rows are checked.
func TestGeneratedSQL_ExecutesOnSQLite(t *testing.T) {
	t.Parallel()

	input := strings.NewReader(usersCSV)
	opts := NewConvertOptions().
		WithTableName("users").
		WithDialect(DialectSQLite).
		WithBatchSize(2).
		WithGuessPrimaryKey()

	var buf bytes.Buffer
	require.NoError(t, ConvertReader(context.Background(), input, &buf, opts))

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck // test cleanup

	// Statements are separated by blank lines.
	for _, stmt := range strings.Split(buf.String(), "\n\n") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err, "statement:\n%s", stmt)
	}

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "users"`).Scan(&count))
	assert.Equal(t, 3, count)

	var name string
	var active int
	row := db.QueryRow(`SELECT "name", "active" FROM "users" WHERE "id" = 3`)
	require.NoError(t, row.Scan(&name, &active))
	assert.Equal(t, "O'Brien", name)
	assert.Equal(t, 1, active)
}

// Every dialect's output must stay structurally identical: same statement
// count, same row count, same column order.
func TestGeneratedSQL_AllDialects(t *testing.T) {
	t.Parallel()

	for _, dialectName := range Dialects() {
		dialectName := dialectName
		t.Run(dialectName, func(t *testing.T) {
			t.Parallel()
			dialect, err := ParseDialect(dialectName)
			require.NoError(t, err)

			opts := NewConvertOptions().
				WithTableName("users").
				WithDialect(dialect).
				WithBatchSize(2)

			var buf bytes.Buffer
			require.NoError(t, ConvertReader(context.Background(), strings.NewReader(usersCSV), &buf, opts))

			got := buf.String()
			assert.Equal(t, 1, strings.Count(got, "CREATE TABLE"))
			assert.Equal(t, 2, strings.Count(got, "INSERT INTO"))
			assert.Equal(t, 3, strings.Count(got, ";"))
		})
	}
}
