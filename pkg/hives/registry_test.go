package hives

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/joshuapare/artifactkit/internal/testutil"
	"github.com/joshuapare/artifactkit/pkg/registry"
)

func systemHive() []byte {
	sid := `S-1-5-21-1-2-3-1001`
	return testutil.Hive(testutil.HiveKey{
		Name:    "ROOT",
		Written: ts,
		Subkeys: []testutil.HiveKey{
			{Name: "Select", Written: ts, Values: []testutil.HiveValue{
				{Name: "Current", Type: testutil.RegDWORD, Data: u32(1)},
			}},
			testutil.Key(ts, []testutil.HiveValue{
				{Name: "Version", Type: testutil.RegDWORD, Data: u32(1)},
				{Name: `\Device\HarddiskVolume2\Windows\explorer.exe`, Type: testutil.RegBinary, Data: testutil.BAMValue(ts)},
			}, "ControlSet001", "Services", "bam", "State", "UserSettings", sid),
		},
	})
}

func TestOpen_KeysAndValues(t *testing.T) {
	reg, err := Open(bytes.NewReader(systemHive()))
	require.NoError(t, err)

	root, err := reg.OpenKey("")
	require.NoError(t, err)
	assert.Equal(t, "ROOT", root.Name())
	assert.True(t, ts.Equal(root.LastWrite()), root.LastWrite())

	var names []string
	for _, sk := range root.Subkeys() {
		names = append(names, sk.Name())
	}
	assert.Equal(t, []string{"Select", "ControlSet001"}, names)

	sel, err := reg.OpenKey("select")
	require.NoError(t, err)
	data, ok := valueData(sel, "current")
	require.True(t, ok)
	assert.Equal(t, u32(1), data)
	assert.Empty(t, sel.Subkeys())

	user, err := reg.OpenKey(`ControlSet001/Services\bam\State\UserSettings\S-1-5-21-1-2-3-1001`)
	require.NoError(t, err)
	values := user.Values()
	require.Len(t, values, 2)
	assert.Equal(t, registry.Value{
		Name: `\Device\HarddiskVolume2\Windows\explorer.exe`,
		Data: testutil.BAMValue(ts),
	}, values[1])

	_, err = reg.OpenKey(`ControlSet001\Services\missing`)
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestOpen_ExtractBAM(t *testing.T) {
	reg, err := Open(bytes.NewReader(systemHive()))
	require.NoError(t, err)

	got, err := Extractor{Logger: zaptest.NewLogger(t)}.BAM(reg)
	require.NoError(t, err)
	assert.Equal(t, []registry.BAMEntry{{
		UserIdentifier: "1001",
		SID:            "S-1-5-21-1-2-3-1001",
		ProgramPath:    `\Device\HarddiskVolume2\Windows\explorer.exe`,
		LastRunTime:    ts.Unix(),
	}}, got)
}
