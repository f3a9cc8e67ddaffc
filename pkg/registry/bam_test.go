package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/artifactkit/internal/testutil"
	"github.com/joshuapare/artifactkit/pkg/types"
	"github.com/joshuapare/artifactkit/pkg/wintime"
)

func TestDecodeBAMEntry(t *testing.T) {
	ts := time.Date(2022, 6, 1, 17, 4, 5, 0, time.UTC)

	got, err := DecodeBAMEntry(testutil.BAMValue(ts))
	require.NoError(t, err)
	assert.Equal(t, ts.Unix(), got)

	got, err = DecodeBAMEntry(testutil.FiletimeBytes(ts))
	require.NoError(t, err)
	assert.Equal(t, ts.Unix(), got)

	got, err = DecodeBAMEntry(make([]byte, 8))
	require.NoError(t, err)
	assert.Equal(t, wintime.Unset, got)
}

func TestDecodeBAMEntry_Short(t *testing.T) {
	for n := 0; n < BAMEntryMinSize; n++ {
		_, err := DecodeBAMEntry(make([]byte, n))
		require.ErrorIs(t, err, types.ErrTruncated, "len %d", n)
	}
}

func TestDecodeBAMValues(t *testing.T) {
	ts := time.Date(2022, 6, 1, 17, 4, 5, 0, time.UTC)
	sid := "S-1-5-21-3623811015-3361044348-30300820-1013"
	values := []Value{
		{Name: "Version", Data: []byte{1, 0, 0, 0}},
		{Name: `\Device\HarddiskVolume3\Windows\System32\cmd.exe`, Data: testutil.BAMValue(ts)},
		{Name: "SequenceNumber", Data: []byte{9, 0, 0, 0}},
		{Name: "Microsoft.Windows.Explorer", Data: []byte{1, 2, 3}},
	}

	entries, err := DecodeBAMValues(sid, values)
	require.ErrorIs(t, err, types.ErrTruncated)
	assert.Contains(t, err.Error(), "Microsoft.Windows.Explorer")
	require.Len(t, entries, 1)
	assert.Equal(t, BAMEntry{
		UserIdentifier: "1013",
		SID:            sid,
		ProgramPath:    `\Device\HarddiskVolume3\Windows\System32\cmd.exe`,
		LastRunTime:    ts.Unix(),
	}, entries[0])
}

func TestDecodeBAMValues_MetaOnly(t *testing.T) {
	entries, err := DecodeBAMValues("S-1-5-18", []Value{{Name: "Version"}, {Name: "SequenceNumber"}})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRIDFromSID(t *testing.T) {
	assert.Equal(t, "1001", RIDFromSID("S-1-5-21-1-2-3-1001"))
	assert.Equal(t, "18", RIDFromSID("S-1-5-18"))
	assert.Equal(t, "nosid", RIDFromSID("nosid"))
	assert.Equal(t, "", RIDFromSID("S-1-5-"))
}
