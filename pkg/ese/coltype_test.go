package ese

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnTypeString(t *testing.T) {
	assert.Equal(t, "LargeText", ColumnTypeLargeText.String())
	assert.Equal(t, "UInt16", ColumnTypeUInt16.String())
	assert.Equal(t, "ColumnType(42)", ColumnType(42).String())
}

func TestParseColumnType(t *testing.T) {
	tests := []struct {
		in   string
		want ColumnType
	}{
		{"LargeText", ColumnTypeLargeText},
		{"largetext", ColumnTypeLargeText},
		{"JET_coltypLongText", ColumnTypeLargeText},
		{"LongLong", ColumnTypeInt64},
		{"guid", ColumnTypeGuid},
		{" 8 ", ColumnTypeDateTime},
		{"99", ColumnType(99)},
	}
	for _, tt := range tests {
		got, err := ParseColumnType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseColumnType("varchar")
	require.Error(t, err)
	_, err = ParseColumnType("-1")
	require.Error(t, err)
}

func TestParseColumnTypeRoundTrip(t *testing.T) {
	for typ := ColumnTypeNull; typ.Known(); typ++ {
		got, err := ParseColumnType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
}
