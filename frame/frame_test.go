package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_HeaderLabels(t *testing.T) {
	f, err := Build([][]string{
		{"Name", "Qty"},
		{"apple", "3"},
		{"pear", "5"},
	})
	require.NoError(t, err)

	assert.False(t, f.Ordinal)
	assert.Equal(t, []string{"Name", "Qty"}, f.Labels())
	assert.Equal(t, 2, f.RowCount())
	assert.Equal(t, 2, f.ColCount())
	assert.Equal(t, []any{"apple", "3"}, f.Row(0))
}

func TestBuild_OrdinalLabels(t *testing.T) {
	f, err := Build([][]string{
		{"Inventory"},
		{"a", "b", "c"},
		{"d", "e", "f"},
	})
	require.NoError(t, err)

	assert.True(t, f.Ordinal)
	assert.Equal(t, []string{"0", "1", "2"}, f.Labels())
	assert.Equal(t, 2, f.RowCount(), "the single-cell header row is dropped")
	assert.Equal(t, []any{"a", "b", "c"}, f.Row(0))
}

func TestBuild_EmptyHeaderRow(t *testing.T) {
	f, err := Build([][]string{{}, {"x", "y"}})
	require.NoError(t, err)

	assert.True(t, f.Ordinal)
	assert.Equal(t, []string{"0", "1"}, f.Labels())
}

func TestBuild_PadsShortRows(t *testing.T) {
	f, err := Build([][]string{
		{"A", "B", "C"},
		{"1", "2", "3"},
		{"4"},
	})
	require.NoError(t, err)

	assert.Equal(t, []any{"4", nil, nil}, f.Row(1))
	assert.True(t, f.Columns[2].IsNull(1))
	assert.Equal(t, "", f.Columns[2].Raw(1))
}

func TestBuild_ShapeMismatch(t *testing.T) {
	_, err := Build([][]string{
		{"A", "B"},
		{"1", "2", "3"},
	})
	require.ErrorIs(t, err, ErrShape)
	assert.Contains(t, err.Error(), "2 columns passed, passed data had 3 columns")

	_, err = Build([][]string{
		{"A", "B", "C"},
		{"1", "2"},
	})
	assert.ErrorIs(t, err, ErrShape)
}

func TestBuild_HeaderOnly(t *testing.T) {
	f, err := Build([][]string{{"A", "B"}})
	require.NoError(t, err)
	assert.Equal(t, 0, f.RowCount())
	assert.Equal(t, 2, f.ColCount())
}

func TestBuild_Empty(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "text", Text.String())
	assert.Equal(t, "integer", Integer.String())
	assert.Equal(t, "float", Float.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestCoerce_AllOrNothing(t *testing.T) {
	f, err := Build([][]string{
		{"id", "code", "price"},
		{"1", "1", "1.5"},
		{"2", "x", "2"},
		{"3", "3", "3.25"},
	})
	require.NoError(t, err)

	failed := f.Coerce()
	require.Len(t, failed, 1)
	assert.Equal(t, "code", failed[0].Column)
	assert.Equal(t, 1, failed[0].Row)
	assert.Equal(t, "x", failed[0].Value)
	assert.Equal(t, `unable to parse string "x" at position 1`, failed[0].Error())

	id, code, price := f.Columns[0], f.Columns[1], f.Columns[2]
	assert.Equal(t, Integer, id.Kind)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, []any{id.Value(0), id.Value(1), id.Value(2)})

	assert.Equal(t, Text, code.Kind)
	assert.Equal(t, []any{"1", "x", "3"}, []any{code.Value(0), code.Value(1), code.Value(2)})

	assert.Equal(t, Float, price.Kind)
	assert.Equal(t, 1.5, price.Value(0))
	assert.Equal(t, 2.0, price.Value(1))
}

func TestCoerce_NullsMakeFloat(t *testing.T) {
	f, err := Build([][]string{
		{"a", "b"},
		{"1", ""},
		{"2", "  "},
		{"", "7"},
	})
	require.NoError(t, err)
	assert.Empty(t, f.Coerce())

	a := f.Columns[0]
	assert.Equal(t, Float, a.Kind)
	assert.Equal(t, 1.0, a.Value(0))
	assert.Nil(t, a.Value(2))
	assert.True(t, math.IsNaN(a.floats[2]))
}

func TestCoerce_AllBlankColumn(t *testing.T) {
	f, err := Build([][]string{{"a", "b"}, {"1", ""}, {"2", ""}})
	require.NoError(t, err)
	assert.Empty(t, f.Coerce())

	assert.Equal(t, Integer, f.Columns[0].Kind)
	assert.Equal(t, Float, f.Columns[1].Kind)
	assert.Nil(t, f.Columns[1].Value(0))
}

func TestCoerce_Idempotent(t *testing.T) {
	f, err := Build([][]string{{"a", "b"}, {"1", "x"}})
	require.NoError(t, err)

	assert.Len(t, f.Coerce(), 1)
	assert.Len(t, f.Coerce(), 1)
	assert.Equal(t, int64(1), f.Columns[0].Value(0))
}

func TestCoerce_TextColumnsOneErrorEach(t *testing.T) {
	f, err := Build([][]string{
		{"Name", "City"},
		{"Ann", "Oslo"},
		{"Bob", "Rome"},
	})
	require.NoError(t, err)

	failed := f.Coerce()
	require.Len(t, failed, 2)
	assert.Equal(t, "Name", failed[0].Column)
	assert.Equal(t, "City", failed[1].Column)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" 42 ", 42, true},
		{"-3.5", -3.5, true},
		{"+7", 7, true},
		{".5", 0.5, true},
		{"1e3", 1000, true},
		{"2.5E-1", 0.25, true},
		{"007", 7, true},
		{"", 0, false},
		{".", 0, false},
		{"1,000", 0, false},
		{"1 000", 0, false},
		{"$5", 0, false},
		{"12%", 0, false},
		{"0x1F", 0, false},
		{"inf", 0, false},
		{"NaN", 0, false},
		{"1e999", 0, false},
		{"1-2", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestCoerce_LargeIntegersFallBackToFloat(t *testing.T) {
	f, err := Build([][]string{{"a", "b"}, {"99999999999999999999", "1"}})
	require.NoError(t, err)
	assert.Empty(t, f.Coerce())

	assert.Equal(t, Float, f.Columns[0].Kind)
	assert.InDelta(t, 1e20, f.Columns[0].Value(0), 1e6)
}
