package csv2sql

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInteger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"0", true},
		{"1", true},
		{"42", true},
		{"-42", true},
		{"+7", true},
		{"007", false},
		{"-007", false},
		{"0.5", false},
		{"1e3", false},
		{"", false},
		{"+", false},
		{"abc", false},
		{"12a", false},
		{"99999999999999999999", false}, // overflows int64
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			if got := isInteger(tt.value); got != tt.want {
				t.Errorf("isInteger(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsReal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"0.5", true},
		{"-3.14", true},
		{"1e3", true},
		{"2.5E-4", true},
		{".5", true},
		{"42", false}, // integer, not real
		{"Inf", false},
		{"NaN", false},
		{"0x1p4", false},
		{"1_000.5", false},
		{"abc", false},
		{"", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			if got := isReal(tt.value); got != tt.want {
				t.Errorf("isReal(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsDateAndIsTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value         string
		wantDate      bool
		wantTimestamp bool
	}{
		{"2023-01-15", true, false},
		{"2023-13-01", false, false}, // no 13th month
		{"2023-02-30", false, false}, // February has no 30th
		{"2023-1-15", false, false},  // not zero padded
		{"2023-01-15T10:30:00", false, true},
		{"2023-01-15 10:30:00", false, true},
		{"2023-01-15T10:30:00Z", false, true},
		{"2023-01-15T10:30:00.123+09:00", false, true},
		{"2023-01-15 25:00:00", false, false}, // invalid hour
		{"10:30:00", false, false},            // time without date
		{"hello", false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantDate, isDate(tt.value), "isDate(%q)", tt.value)
			assert.Equal(t, tt.wantTimestamp, isTimestamp(tt.value), "isTimestamp(%q)", tt.value)
		})
	}
}

func inferFromValues(t *testing.T, values []string, nulls NullTokens) *columnStats {
	t.Helper()
	cs := newColumnStats()
	for _, v := range values {
		cs.observe(v, nulls)
	}
	return cs
}

func TestColumnStats_Widening(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []string
		want   ColumnType
	}{
		{
			name:   "boolean words",
			values: []string{"true", "false", "TRUE", "no", "Yes"},
			want:   ColumnTypeBoolean,
		},
		{
			name:   "boolean word mixed with digit token",
			values: []string{"1", "true", "0"},
			want:   ColumnTypeBoolean,
		},
		{
			name:   "bare zero and one stay integer",
			values: []string{"0", "1", "1", "0"},
			want:   ColumnTypeInteger,
		},
		{
			name:   "integers",
			values: []string{"1", "2", "-3", "+400"},
			want:   ColumnTypeInteger,
		},
		{
			name:   "boolean token with larger integer widens to integer",
			values: []string{"0", "1", "5"},
			want:   ColumnTypeInteger,
		},
		{
			name:   "boolean word with non-token integer widens to text",
			values: []string{"true", "5"},
			want:   ColumnTypeText,
		},
		{
			name:   "integers with a real widen to real",
			values: []string{"1", "2.5", "3"},
			want:   ColumnTypeReal,
		},
		{
			name:   "exponential notation is real",
			values: []string{"1e3", "2.5"},
			want:   ColumnTypeReal,
		},
		{
			name:   "dates",
			values: []string{"2023-01-15", "2023-02-20"},
			want:   ColumnTypeDate,
		},
		{
			name:   "date mixed with timestamp widens to timestamp",
			values: []string{"2023-01-15", "2023-02-20T10:30:00"},
			want:   ColumnTypeTimestamp,
		},
		{
			name:   "date mixed with number widens to text",
			values: []string{"2023-01-15", "42"},
			want:   ColumnTypeText,
		},
		{
			name:   "leading zeros preserve representation as text",
			values: []string{"007", "042"},
			want:   ColumnTypeText,
		},
		{
			name:   "plain text",
			values: []string{"Alice", "Bob"},
			want:   ColumnTypeText,
		},
		{
			name:   "single text value widens everything",
			values: []string{"1", "2", "x"},
			want:   ColumnTypeText,
		},
		{
			name:   "empty values only default to text",
			values: []string{"", "", ""},
			want:   ColumnTypeText,
		},
		{
			name:   "no values default to text",
			values: nil,
			want:   ColumnTypeText,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cs := inferFromValues(t, tt.values, nil)
			assert.Equal(t, tt.want, cs.columnType())
		})
	}
}

// The inferred type must not depend on the order values arrive in.
func TestColumnStats_OrderIndependence(t *testing.T) {
	t.Parallel()

	valueSets := [][]string{
		{"true", "1", "0", "false"},
		{"1", "2", "3", "2.5"},
		{"2023-01-15", "2023-02-20T10:30:00", "2023-03-01"},
		{"1", "2", "hello", "2023-01-15"},
		{"", "42", "", "7"},
		{"007", "42", "true"},
	}

	rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic shuffles
	for _, values := range valueSets {
		base := inferFromValues(t, values, nil).columnType()
		for i := 0; i < 20; i++ {
			shuffled := append([]string(nil), values...)
			rng.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})
			got := inferFromValues(t, shuffled, nil).columnType()
			require.Equal(t, base, got, "values %v shuffled as %v", values, shuffled)
		}
	}
}

func TestColumnStats_Nullable(t *testing.T) {
	t.Parallel()

	t.Run("empty cell sets nullable without affecting type", func(t *testing.T) {
		t.Parallel()
		cs := inferFromValues(t, []string{"1", "", "2"}, nil)
		assert.Equal(t, ColumnTypeInteger, cs.columnType())
		assert.True(t, cs.isNullable())
	})

	t.Run("no empty cells means not nullable", func(t *testing.T) {
		t.Parallel()
		cs := inferFromValues(t, []string{"1", "2"}, nil)
		assert.False(t, cs.isNullable())
	})

	t.Run("zero non-empty values is nullable", func(t *testing.T) {
		t.Parallel()
		cs := inferFromValues(t, []string{"", ""}, nil)
		assert.True(t, cs.isNullable())
	})

	t.Run("configured null token is treated as null", func(t *testing.T) {
		t.Parallel()
		nulls := NewNullTokens("NULL", "N/A")
		cs := inferFromValues(t, []string{"1", "null", "N/A", "2"}, nulls)
		assert.Equal(t, ColumnTypeInteger, cs.columnType())
		assert.True(t, cs.isNullable())
	})
}

func TestColumnStats_Uniqueness(t *testing.T) {
	t.Parallel()

	t.Run("distinct integers are unique", func(t *testing.T) {
		t.Parallel()
		cs := inferFromValues(t, []string{"1", "2", "3"}, nil)
		assert.True(t, cs.isUnique())
	})

	t.Run("duplicate integers are not unique", func(t *testing.T) {
		t.Parallel()
		cs := inferFromValues(t, []string{"1", "2", "2"}, nil)
		assert.False(t, cs.isUnique())
	})

	t.Run("sign normalization detects duplicates", func(t *testing.T) {
		t.Parallel()
		cs := inferFromValues(t, []string{"1", "+1"}, nil)
		assert.False(t, cs.isUnique())
	})
}
