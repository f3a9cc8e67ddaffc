package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// resetFlags restores global flag state and routes logs to t.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose, quiet, canonicalGUID = false, false, false
	jsonOut = true
	workers = 4
	eseType, eseCodepage = "LargeText", 0
	logger = zaptest.NewLogger(t)
}

// decodeRows parses writeRows JSON output.
func decodeRows(t *testing.T, out []byte) []map[string]any {
	t.Helper()
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out, &rows), string(out))
	return rows
}
