package csv2sql

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// File format extensions
const (
	extCSV  = ".csv"
	extTSV  = ".tsv"
	extXLSX = ".xlsx"
)

// FileType represents a supported input format.
type FileType int

const (
	// FileTypeCSV represents CSV input
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV input
	FileTypeTSV
	// FileTypeXLSX represents Excel XLSX input
	FileTypeXLSX
	// FileTypeUnsupported represents an unsupported input format
	FileTypeUnsupported
)

// String returns the format name.
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "csv"
	case FileTypeTSV:
		return "tsv"
	case FileTypeXLSX:
		return "xlsx"
	default:
		return "unsupported"
	}
}

// detectFileType determines the input format from a path, looking through
// any compression extension ("data.csv.gz" is CSV).
func detectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(removeCompressionExtension(path))) {
	case extCSV:
		return FileTypeCSV
	case extTSV:
		return FileTypeTSV
	case extXLSX:
		return FileTypeXLSX
	default:
		return FileTypeUnsupported
	}
}

// rowSource yields a header followed by data rows in input order. Next
// returns io.EOF after the last row. Field counts are not validated here;
// the driver applies the malformed-row policy so both passes see identical
// rows.
type rowSource interface {
	// Header returns the column names (synthesized in no-header mode).
	Header() header
	// Next returns the next data row, or io.EOF.
	Next() (Record, error)
}

// syntheticColumnName names column i (zero-based) in no-header mode.
func syntheticColumnName(i int) string {
	return fmt.Sprintf("column_%d", i+1)
}

// csvSource reads CSV or TSV rows from an io.Reader.
type csvSource struct {
	reader *csv.Reader
	header header
	// pending holds the first data row in no-header mode, where the row
	// that supplied the column count must still be emitted as data.
	pending Record
}

// newCSVSource creates a source for CSV or TSV input. In no-header mode the
// first row only determines the column count and is replayed as data.
func newCSVSource(r io.Reader, fileType FileType, noHeader bool) (*csvSource, error) {
	reader := csv.NewReader(r)
	if fileType == FileTypeTSV {
		reader.Comma = tsvDelimiter
	} else {
		reader.Comma = csvDelimiter
	}
	// Field counts are validated by the driver, not the parser, so that
	// malformed rows can be skipped instead of aborting the run.
	reader.FieldsPerRecord = -1

	first, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("csv2sql: failed to read header row: %w", err)
	}

	s := &csvSource{reader: reader}
	if noHeader {
		names := make([]string, len(first))
		for i := range first {
			names[i] = syntheticColumnName(i)
		}
		s.header = newHeader(names)
		s.pending = newRecord(first)
	} else {
		s.header = newHeader(first)
	}
	return s, nil
}

// Header returns the column names.
func (s *csvSource) Header() header {
	return s.header
}

// Next returns the next data row.
func (s *csvSource) Next() (Record, error) {
	if s.pending != nil {
		rec := s.pending
		s.pending = nil
		return rec, nil
	}
	rec, err := s.reader.Read()
	if err != nil {
		return nil, err
	}
	return newRecord(rec), nil
}

// xlsxSource reads rows from the first sheet of an Excel workbook. excelize
// needs the whole stream in memory, so XLSX input is never re-read.
type xlsxSource struct {
	header header
	rows   []Record
	pos    int
}

// newXLSXSource creates a source from XLSX input. Short rows are padded to
// the header width because excelize drops trailing empty cells.
func newXLSXSource(r io.Reader, noHeader bool) (*xlsxSource, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("csv2sql: failed to open XLSX input: %w", err)
	}
	defer workbook.Close() //nolint:errcheck // read-only access

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}
	allRows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("csv2sql: failed to read XLSX sheet %q: %w", sheets[0], err)
	}
	if len(allRows) == 0 {
		return nil, ErrEmptyInput
	}

	var hdr header
	var dataRows [][]string
	if noHeader {
		names := make([]string, len(allRows[0]))
		for i := range names {
			names[i] = syntheticColumnName(i)
		}
		hdr = newHeader(names)
		dataRows = allRows
	} else {
		hdr = newHeader(allRows[0])
		dataRows = allRows[1:]
	}

	records := make([]Record, 0, len(dataRows))
	for _, row := range dataRows {
		for len(row) < len(hdr) {
			row = append(row, "")
		}
		records = append(records, newRecord(row))
	}

	return &xlsxSource{header: hdr, rows: records}, nil
}

// Header returns the column names.
func (s *xlsxSource) Header() header {
	return s.header
}

// Next returns the next data row.
func (s *xlsxSource) Next() (Record, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	rec := s.rows[s.pos]
	s.pos++
	return rec, nil
}

// bufferedSource replays rows captured during the inference pass. Used when
// the input cannot be re-read (stdin, one-shot readers, XLSX streams).
type bufferedSource struct {
	header header
	rows   []Record
	pos    int
}

// newBufferedSource creates a replay source over already-validated rows.
func newBufferedSource(hdr header, rows []Record) *bufferedSource {
	return &bufferedSource{header: hdr, rows: rows}
}

// Header returns the column names.
func (s *bufferedSource) Header() header {
	return s.header
}

// Next returns the next data row.
func (s *bufferedSource) Next() (Record, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	rec := s.rows[s.pos]
	s.pos++
	return rec, nil
}

// openFileSource opens path, layering decompression by extension, and
// returns a rowSource for its format. The cleanup function closes the file
// and any decompressor.
func openFileSource(path string, fileType FileType, noHeader bool) (rowSource, func() error, error) {
	file, err := os.Open(path) //nolint:gosec // user-provided input path
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}

	reader, cleanup, err := newCompressionReader(file, detectCompressionType(path))
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	compositeCleanup := func() error {
		cleanupErr := cleanup()
		if closeErr := file.Close(); closeErr != nil && cleanupErr == nil {
			cleanupErr = closeErr
		}
		return cleanupErr
	}

	source, err := newReaderSource(reader, fileType, noHeader)
	if err != nil {
		_ = compositeCleanup()
		return nil, nil, err
	}
	return source, compositeCleanup, nil
}

// newReaderSource builds a rowSource for an already-decompressed stream.
func newReaderSource(r io.Reader, fileType FileType, noHeader bool) (rowSource, error) {
	switch fileType {
	case FileTypeCSV, FileTypeTSV:
		return newCSVSource(r, fileType, noHeader)
	case FileTypeXLSX:
		return newXLSXSource(r, noHeader)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileType)
	}
}
