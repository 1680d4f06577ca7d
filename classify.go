package csv2sql

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// maxPrimaryKeyTracking caps how many distinct integer values are tracked per
// column for primary-key candidate detection. Beyond the cap the column simply
// loses candidacy, keeping memory bounded on huge inputs.
const maxPrimaryKeyTracking = 1_000_000

// booleanTokens are the accepted boolean spellings, matched case-insensitively.
// The digit tokens "0" and "1" are valid booleans only when the column also
// contains at least one word token; a purely numeric 0/1 column is INTEGER.
var booleanTokens = map[string]bool{
	"true":  true,
	"yes":   true,
	"1":     true,
	"false": false,
	"no":    false,
	"0":     false,
}

// timestampPattern pairs a structural regex with the time layouts to try when
// the regex matches. A value is a timestamp only if one layout parses it.
type timestampPattern struct {
	pattern *regexp.Regexp
	formats []string
}

var timestampPatterns = []timestampPattern{
	// ISO8601 with timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
		[]string{time.RFC3339, time.RFC3339Nano},
	},
	// ISO8601 without timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.999999999"},
	},
	// Date and time with space
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?( ?(Z|[+-]\d{2}:?\d{2}))?$`),
		[]string{
			"2006-01-02 15:04:05",
			"2006-01-02 15:04:05.999999999",
			"2006-01-02 15:04:05Z07:00",
			"2006-01-02 15:04:05 Z07:00",
			"2006-01-02 15:04:05-0700",
		},
	},
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// isBooleanToken reports whether the value is one of the accepted boolean
// spellings, and whether it is a word token (true/false/yes/no) rather than
// a bare digit.
func isBooleanToken(value string) (ok, word bool) {
	lower := strings.ToLower(value)
	if _, found := booleanTokens[lower]; !found {
		return false, false
	}
	return true, lower != "0" && lower != "1"
}

// isInteger reports whether the value is an integer literal: an optional
// sign followed by digits, with no leading zeros. Leading-zero strings such
// as "007" stay TEXT so their representation is preserved.
func isInteger(value string) bool {
	digits := value
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return false
	}
	if len(digits) > 1 && digits[0] == '0' {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

// isReal reports whether the value is a non-integer numeric literal in
// decimal or exponential notation. strconv.ParseFloat alone is too permissive
// (it accepts "Inf", "NaN", hex floats, and underscores), so the character
// set is checked first.
func isReal(value string) bool {
	hasDigit := false
	hasMark := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.' || c == 'e' || c == 'E':
			hasMark = true
		case c == '+' || c == '-':
		default:
			return false
		}
	}
	if !hasDigit || !hasMark {
		return false
	}
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// isDate reports whether the value is a calendar date in YYYY-MM-DD form.
func isDate(value string) bool {
	if !datePattern.MatchString(value) {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// isTimestamp reports whether the value is a date plus time, with an
// optional fractional second and timezone.
func isTimestamp(value string) bool {
	// Cheap length filter before running regexes.
	if len(value) < len("2006-01-02T15:04:05") || len(value) > 35 {
		return false
	}
	for _, tp := range timestampPatterns {
		if tp.pattern.MatchString(value) {
			for _, format := range tp.formats {
				if _, err := time.Parse(format, value); err == nil {
					return true
				}
			}
		}
	}
	return false
}

// columnStats accumulates the running classification state for one column
// during the inference pass. State is constant-size per column except for
// optional primary-key uniqueness tracking.
type columnStats struct {
	nonEmpty int
	nullable bool

	allBooleanTokens bool
	sawBooleanWord   bool
	sawInteger       bool
	sawReal          bool
	sawDate          bool
	sawTimestamp     bool
	sawText          bool

	// Primary-key candidate tracking. Active only while every observed
	// value is an integer; dropped as soon as the column widens past
	// INTEGER, a duplicate appears, or the tracking cap is hit.
	distinct    map[int64]struct{}
	hasDup      bool
	gaveUpOnDup bool
}

// newColumnStats creates stats for one column.
func newColumnStats() *columnStats {
	return &columnStats{
		allBooleanTokens: true,
		distinct:         make(map[int64]struct{}),
	}
}

// dropDistinct releases uniqueness tracking once the column can no longer
// be a primary-key candidate.
func (cs *columnStats) dropDistinct() {
	cs.distinct = nil
}

// observe folds one cell value into the running classification. Null cells
// only set the nullable flag; they never influence the inferred type.
func (cs *columnStats) observe(value string, nulls NullTokens) {
	trimmed := strings.TrimSpace(value)
	if nulls.IsNull(trimmed) {
		cs.nullable = true
		cs.dropDistinct()
		return
	}
	cs.nonEmpty++

	boolOK, boolWord := isBooleanToken(trimmed)
	if boolOK && boolWord {
		cs.sawBooleanWord = true
		cs.dropDistinct()
		return
	}
	cs.allBooleanTokens = cs.allBooleanTokens && boolOK

	switch {
	case isInteger(trimmed):
		cs.sawInteger = true
		cs.trackDistinct(trimmed)
	case isReal(trimmed):
		cs.sawReal = true
		cs.dropDistinct()
	case isDate(trimmed):
		cs.sawDate = true
		cs.dropDistinct()
	case isTimestamp(trimmed):
		cs.sawTimestamp = true
		cs.dropDistinct()
	default:
		cs.sawText = true
		cs.dropDistinct()
	}
}

// trackDistinct records an integer value for duplicate detection.
func (cs *columnStats) trackDistinct(value string) {
	if cs.distinct == nil {
		return
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		cs.dropDistinct()
		return
	}
	if _, dup := cs.distinct[n]; dup {
		cs.hasDup = true
		cs.dropDistinct()
		return
	}
	if len(cs.distinct) >= maxPrimaryKeyTracking {
		cs.gaveUpOnDup = true
		cs.dropDistinct()
		return
	}
	cs.distinct[n] = struct{}{}
}

// columnType resolves the narrowest type that losslessly represents every
// observed non-null value. Widening is monotone over the kind flags, so the
// result does not depend on value order.
func (cs *columnStats) columnType() ColumnType {
	if cs.nonEmpty == 0 {
		return ColumnTypeText
	}

	// A column is BOOLEAN only when every value is a boolean token and at
	// least one is a word token; bare 0/1 columns fall through to INTEGER.
	if cs.allBooleanTokens && cs.sawBooleanWord {
		return ColumnTypeBoolean
	}
	if cs.sawText || (cs.sawBooleanWord && !cs.allBooleanTokens) {
		return ColumnTypeText
	}

	hasNumeric := cs.sawInteger || cs.sawReal
	hasTemporal := cs.sawDate || cs.sawTimestamp
	if hasNumeric && hasTemporal {
		return ColumnTypeText
	}
	if cs.sawTimestamp {
		return ColumnTypeTimestamp
	}
	if cs.sawDate {
		return ColumnTypeDate
	}
	if cs.sawReal {
		return ColumnTypeReal
	}
	if cs.sawInteger {
		return ColumnTypeInteger
	}
	return ColumnTypeText
}

// isNullable reports whether any null cell was observed. A column with zero
// non-empty values is nullable by definition.
func (cs *columnStats) isNullable() bool {
	return cs.nullable || cs.nonEmpty == 0
}

// isUnique reports whether every observed value was distinct. Only
// meaningful for columns that resolved to INTEGER.
func (cs *columnStats) isUnique() bool {
	return !cs.hasDup && !cs.gaveUpOnDup
}
