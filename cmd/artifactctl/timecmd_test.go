package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/artifactkit/pkg/types"
)

func TestTimeCommand(t *testing.T) {
	tests := []struct {
		kind, value string
		wantUnix    float64
		wantUTC     string
	}{
		{"filetime", "132539328000000000", 1609459200, "2021-01-01T00:00:00Z"},
		{"filetime", "0x1D6DFD10C358000", 1609459200, "2021-01-01T00:00:00Z"},
		{"filetime", "0", 0, ""},
		{"ole", "44197.5", 1609502400, "2021-01-01T12:00:00Z"},
		{"ole", "25569", 0, "1970-01-01T00:00:00Z"},
		{"ole", "0", -2209161600, "1899-12-30T00:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.kind+"_"+tt.value, func(t *testing.T) {
			resetFlags(t)
			var buf bytes.Buffer
			require.NoError(t, runTime(&buf, tt.kind, tt.value))
			rows := decodeRows(t, buf.Bytes())
			require.Len(t, rows, 1)
			assert.InDelta(t, tt.wantUnix, rows[0]["Unix"], 0)
			assert.Equal(t, tt.wantUTC, rows[0]["UTC"])
		})
	}
}

func TestTimeCommandErrors(t *testing.T) {
	resetFlags(t)
	require.Error(t, runTime(&bytes.Buffer{}, "unix", "1"))
	require.Error(t, runTime(&bytes.Buffer{}, "filetime", "abc"))
	require.Error(t, runTime(&bytes.Buffer{}, "ole", "abc"))
	require.ErrorIs(t, runTime(&bytes.Buffer{}, "filetime", "0x7FFFFFFFFFFFFFFF"), types.ErrOutOfRange)
	require.ErrorIs(t, runTime(&bytes.Buffer{}, "ole", "NaN"), types.ErrOutOfRange)
}
