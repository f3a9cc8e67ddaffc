package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/artifactkit/internal/testutil"
	"github.com/joshuapare/artifactkit/pkg/types"
)

var deleted = time.Date(2022, 2, 2, 2, 2, 2, 0, time.UTC)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRecycleBinDirectory(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	writeFile(t, dir, "$IAAAAAA.txt", testutil.RecycleV1(10, deleted, `C:\old.txt`))
	writeFile(t, dir, "$IBBBBBB.docx", testutil.RecycleV2(2048, deleted, `C:\Users\bob\report.docx`))
	writeFile(t, dir, "$ICORRUPT", []byte{2, 0, 0})
	writeFile(t, dir, "$RAAAAAA.txt", []byte("file content"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "$ISUBDIR"), 0o700))

	var buf bytes.Buffer
	require.NoError(t, runRecycleBin(context.Background(), &buf, []string{dir}))

	rows := decodeRows(t, buf.Bytes())
	require.Len(t, rows, 2)
	assert.Equal(t, "$IAAAAAA.txt", rows[0]["File"])
	assert.Equal(t, `C:\old.txt`, rows[0]["OriginalPath"])
	assert.Equal(t, "2022-02-02T02:02:02Z", rows[0]["Deleted"])
	assert.Equal(t, `C:\Users\bob\report.docx`, rows[1]["OriginalPath"])
	assert.InDelta(t, 2048, rows[1]["Size"], 0)
	assert.InDelta(t, 2, rows[1]["Version"], 0)
}

func TestRecycleBinAllFail(t *testing.T) {
	resetFlags(t)
	path := writeFile(t, t.TempDir(), "$IBAD", []byte{9, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	var buf bytes.Buffer
	err := runRecycleBin(context.Background(), &buf, []string{path})
	require.ErrorIs(t, err, types.ErrUnsupportedVersion)
	assert.JSONEq(t, `[]`, buf.String())
}

func TestRecycleBinManyFilesKeepOrder(t *testing.T) {
	resetFlags(t)
	workers = 3
	dir := t.TempDir()
	var args []string
	for i := 0; i < 20; i++ {
		p := writeFile(t, dir, filepath.Base(t.Name())+string(rune('a'+i)),
			testutil.RecycleV2(uint64(i), deleted, string(rune('a'+i))))
		args = append(args, p)
	}

	var buf bytes.Buffer
	require.NoError(t, runRecycleBin(context.Background(), &buf, args))
	rows := decodeRows(t, buf.Bytes())
	require.Len(t, rows, 20)
	for i, r := range rows {
		assert.Equal(t, string(rune('a'+i)), r["OriginalPath"])
	}
}

func TestRecycleBinMissingPath(t *testing.T) {
	resetFlags(t)
	err := runRecycleBin(context.Background(), &bytes.Buffer{}, []string{filepath.Join(t.TempDir(), "nope")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecycleBinCancelled(t *testing.T) {
	resetFlags(t)
	path := writeFile(t, t.TempDir(), "$IA", testutil.RecycleV2(1, deleted, "a"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runRecycleBin(ctx, &bytes.Buffer{}, []string{path})
	require.ErrorIs(t, err, context.Canceled)
}
