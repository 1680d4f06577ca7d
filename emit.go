package csv2sql

import (
	"io"
	"strings"
)

// emitter renders a TableSchema and a stream of rows as SQL text. Rows are
// grouped into batches of batchSize; each batch becomes one multi-row INSERT
// statement. Output is byte-deterministic for identical input and options.
type emitter struct {
	w       io.Writer
	schema  *TableSchema
	profile *DialectProfile
	batch   BatchSize
	nulls   NullTokens

	insertHeader string
	inBatch      int
	wroteAny     bool
}

// newEmitter creates an emitter writing to w.
func newEmitter(w io.Writer, schema *TableSchema, profile *DialectProfile, batch BatchSize, nulls NullTokens) *emitter {
	names := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		names[i] = profile.QuoteIdentifier(c.Name)
	}
	return &emitter{
		w:       w,
		schema:  schema,
		profile: profile,
		batch:   batch,
		nulls:   nulls,
		insertHeader: "INSERT INTO " + profile.QuoteIdentifier(schema.Name) +
			" (" + strings.Join(names, ", ") + ") VALUES\n",
	}
}

// writeString writes s, translating short writes into errors.
func (e *emitter) writeString(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

// separator writes the blank line between consecutive statements.
func (e *emitter) separator() error {
	if !e.wroteAny {
		e.wroteAny = true
		return nil
	}
	return e.writeString("\n\n")
}

// writeDDL writes the CREATE TABLE statement. primaryKey names the column to
// declare as PRIMARY KEY; it is empty when the caller did not request one.
func (e *emitter) writeDDL(primaryKey string) error {
	if err := e.separator(); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(e.profile.QuoteIdentifier(e.schema.Name))
	b.WriteString(" (\n")
	for i, c := range e.schema.Columns {
		b.WriteString("  ")
		b.WriteString(e.profile.QuoteIdentifier(c.Name))
		b.WriteString(" ")
		b.WriteString(e.profile.TypeKeyword(c.Type))
		if c.Name == primaryKey {
			b.WriteString(" PRIMARY KEY")
		} else if !c.Nullable {
			b.WriteString(" NOT NULL")
		}
		if i < len(e.schema.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	b.WriteString(e.profile.StatementTerminator())

	return e.writeString(b.String())
}

// writeRow adds one data row to the current batch, starting a new INSERT
// statement when needed and closing the batch once it reaches batchSize.
func (e *emitter) writeRow(rec Record) error {
	if e.inBatch == 0 {
		if err := e.separator(); err != nil {
			return err
		}
		if err := e.writeString(e.insertHeader); err != nil {
			return err
		}
	} else {
		if err := e.writeString(",\n"); err != nil {
			return err
		}
	}

	if err := e.writeString("  " + e.renderTuple(rec)); err != nil {
		return err
	}
	e.inBatch++

	if e.inBatch >= e.batch.Int() {
		return e.closeBatch()
	}
	return nil
}

// renderTuple renders one row as a parenthesized value list. Cells render by
// the column's inferred type from the schema pass; rows are never re-typed.
func (e *emitter) renderTuple(rec Record) string {
	var b strings.Builder
	b.WriteString("(")
	for i, c := range e.schema.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		var cell string
		if i < len(rec) {
			cell = rec[i]
		}
		if e.nulls.IsNull(strings.TrimSpace(cell)) {
			b.WriteString(e.profile.NullKeyword())
		} else {
			b.WriteString(e.profile.QuoteLiteral(cell, c.Type))
		}
	}
	b.WriteString(")")
	return b.String()
}

// closeBatch terminates the open INSERT statement, if any.
func (e *emitter) closeBatch() error {
	if e.inBatch == 0 {
		return nil
	}
	e.inBatch = 0
	return e.writeString(e.profile.StatementTerminator())
}

// finish closes any partial batch and writes the trailing newline.
func (e *emitter) finish() error {
	if err := e.closeBatch(); err != nil {
		return err
	}
	if !e.wroteAny {
		return nil
	}
	return e.writeString("\n")
}
