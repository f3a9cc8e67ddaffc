package registry

import (
	"strings"
	"time"

	"github.com/joshuapare/artifactkit/internal/buf"
	"github.com/joshuapare/artifactkit/pkg/types"
	"github.com/joshuapare/artifactkit/pkg/wintime"
)

// UserAssist value layouts, keyed by size.
const (
	userAssistWin7Size = 72
	userAssistXPSize   = 16

	uaWin7RunCount   = 4
	uaWin7FocusCount = 8
	uaWin7FocusTime  = 12
	uaWin7LastRun    = 60

	uaXPRunCount = 4
	uaXPLastRun  = 8
	// XP counters start at 5.
	uaXPRunBias = 5
)

// userAssistSession is the rotated name of the per-session counter value.
const userAssistSession = "UEME_CTLSESSION"

// knownFolders maps the folder GUIDs Explorer writes into UserAssist paths
// to their conventional names.
var knownFolders = map[string]string{
	"{1AC14E77-02E7-4E5D-B744-2EB1AE5198B7}": "System32",
	"{6D809377-6AF0-444B-8957-A3773F02200E}": "ProgramFilesX64",
	"{7C5A40EF-A0FB-4BFC-874A-C0F2E0B9FA8E}": "ProgramFilesX86",
	"{905E63B6-C1BF-494E-B29C-65B732D3D21A}": "ProgramFiles",
	"{F38BF404-1D43-42F2-9305-67DE0B28FC23}": "Windows",
	"{D65231B0-B2F1-4857-A4CE-A8E7C6EA7D27}": "SystemX86",
	"{0139D44E-6AFE-49F2-8690-3DAFCAE6FFB8}": "CommonPrograms",
	"{A77F5D77-2E2B-44C3-A6A2-ABA601054A51}": "Programs",
	"{9E3995AB-1F9C-4F13-B827-48B24B6C7174}": "UserPinned",
	"{B4BFCC3A-DB2C-424C-B029-7FE99A87C641}": "Desktop",
	"{374DE290-123F-4565-9164-39C4925E467B}": "Downloads",
	"{FDD39AD0-238F-46AF-ADB4-6C85480369C7}": "Documents",
}

// UserAssistEntry is one decoded UserAssist counter.
type UserAssistEntry struct {
	// Name is the de-rotated value name with known folder GUIDs replaced.
	Name       string
	RunCount   uint32
	FocusCount uint32
	FocusTime  time.Duration
	LastRun    int64
}

// DecodeUserAssistName reverses the ROT13 rotation of a UserAssist value
// name and replaces a leading known folder GUID with its name.
func DecodeUserAssistName(name string) string {
	n := rot13(name)
	if strings.HasPrefix(n, "{") {
		if end := strings.IndexByte(n, '}'); end > 0 {
			if folder, ok := knownFolders[strings.ToUpper(n[:end+1])]; ok {
				n = folder + n[end+1:]
			}
		}
	}
	return n
}

// IsUserAssistMetaValue reports whether the rotated value name is the
// session counter rather than a program entry.
func IsUserAssistMetaValue(name string) bool {
	return rot13(name) == userAssistSession
}

// DecodeUserAssist decodes a UserAssist value. name is the value name as
// stored (rotated). Windows 7 and later use a 72-byte layout, XP a 16-byte
// one; any other size is types.ErrUnsupportedVersion.
func DecodeUserAssist(name string, blob []byte) (UserAssistEntry, error) {
	e := UserAssistEntry{Name: DecodeUserAssistName(name)}
	switch len(blob) {
	case userAssistWin7Size:
		e.RunCount = buf.U32LE(blob[uaWin7RunCount:])
		e.FocusCount = buf.U32LE(blob[uaWin7FocusCount:])
		e.FocusTime = time.Duration(buf.U32LE(blob[uaWin7FocusTime:])) * time.Millisecond
		e.LastRun = wintime.FiletimeToUnix(buf.U64LE(blob[uaWin7LastRun:]))
	case userAssistXPSize:
		if n := buf.U32LE(blob[uaXPRunCount:]); n >= uaXPRunBias {
			e.RunCount = n - uaXPRunBias
		}
		e.LastRun = wintime.FiletimeToUnix(buf.U64LE(blob[uaXPLastRun:]))
	default:
		if len(blob) < userAssistXPSize {
			return UserAssistEntry{}, types.Truncatedf("userassist %q: %d bytes", e.Name, len(blob))
		}
		return UserAssistEntry{}, types.UnsupportedVersionf("userassist %q: unknown layout of %d bytes",
			e.Name, len(blob))
	}
	return e, nil
}
