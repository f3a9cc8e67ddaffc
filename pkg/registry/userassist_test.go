package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/artifactkit/internal/testutil"
	"github.com/joshuapare/artifactkit/pkg/types"
)

func TestDecodeUserAssistName(t *testing.T) {
	tests := []struct {
		stored string
		want   string
	}{
		{`P:\Jvaqbjf\flfgrz32\pzq.rkr`, `C:\Windows\system32\cmd.exe`},
		{`{1NP14R77-02R7-4R5Q-O744-2RO1NR5198O7}\abgrcnq.rkr`, `System32\notepad.exe`},
		{`{00000000-0000-0000-0000-000000000000}\k.rkr`, `{00000000-0000-0000-0000-000000000000}\x.exe`},
		{"Zvpebfbsg.Jvaqbjf.Rkcybere", "Microsoft.Windows.Explorer"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeUserAssistName(tt.stored))
	}
}

func TestIsUserAssistMetaValue(t *testing.T) {
	assert.True(t, IsUserAssistMetaValue("HRZR_PGYFRFFVBA"))
	assert.False(t, IsUserAssistMetaValue("UEME_CTLSESSION"))
}

func TestDecodeUserAssist_Win7(t *testing.T) {
	last := time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)
	blob := testutil.UserAssistWin7(14, 9, 93_500, last)

	e, err := DecodeUserAssist(`P:\gbbyf\ncc.rkr`, blob)
	require.NoError(t, err)
	assert.Equal(t, `C:\tools\app.exe`, e.Name)
	assert.Equal(t, uint32(14), e.RunCount)
	assert.Equal(t, uint32(9), e.FocusCount)
	assert.Equal(t, 93500*time.Millisecond, e.FocusTime)
	assert.Equal(t, last.Unix(), e.LastRun)
}

func TestDecodeUserAssist_XP(t *testing.T) {
	last := time.Date(2008, 5, 5, 5, 5, 5, 0, time.UTC)
	blob := make([]byte, 16)
	blob[4] = 8
	copy(blob[8:], testutil.FiletimeBytes(last))

	e, err := DecodeUserAssist("HRZR_EHACNGU:abgrcnq.rkr", blob)
	require.NoError(t, err)
	assert.Equal(t, "UEME_RUNPATH:notepad.exe", e.Name)
	assert.Equal(t, uint32(3), e.RunCount)
	assert.Equal(t, last.Unix(), e.LastRun)

	blob[4] = 2
	e, err = DecodeUserAssist("k", blob)
	require.NoError(t, err)
	assert.Zero(t, e.RunCount)
}

func TestDecodeUserAssist_Sizes(t *testing.T) {
	_, err := DecodeUserAssist("k", make([]byte, 8))
	require.ErrorIs(t, err, types.ErrTruncated)

	_, err = DecodeUserAssist("k", make([]byte, 1612))
	require.ErrorIs(t, err, types.ErrUnsupportedVersion)
}
