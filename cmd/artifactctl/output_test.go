package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/Velocidex/ordereddict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRowsJSON(t *testing.T) {
	resetFlags(t)
	var buf bytes.Buffer
	rows := []*ordereddict.Dict{
		ordereddict.NewDict().Set("Name", "a").Set("Count", 1),
		ordereddict.NewDict().Set("Name", "b").Set("Count", 2),
	}
	require.NoError(t, writeRows(&buf, rows))
	assert.JSONEq(t, `[{"Name":"a","Count":1},{"Name":"b","Count":2}]`, buf.String())
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Name")), bytes.Index(buf.Bytes(), []byte("Count")))
}

func TestWriteRowsJSONEmpty(t *testing.T) {
	resetFlags(t)
	var buf bytes.Buffer
	require.NoError(t, writeRows(&buf, nil))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestWriteRowsTable(t *testing.T) {
	resetFlags(t)
	jsonOut = false
	var buf bytes.Buffer
	rows := []*ordereddict.Dict{
		ordereddict.NewDict().Set("Program", `C:\Windows\explorer.exe`).Set("LastRun", nil),
	}
	require.NoError(t, writeRows(&buf, rows))
	out := buf.String()
	assert.Contains(t, out, "Program")
	assert.Contains(t, out, "LastRun")
	assert.Contains(t, out, `C:\Windows\explorer.exe`)

	buf.Reset()
	require.NoError(t, writeRows(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestTimestamp(t *testing.T) {
	assert.Empty(t, timestamp(0))
	assert.Equal(t, "2021-01-01T00:00:00Z", timestamp(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC).Unix()))
}
