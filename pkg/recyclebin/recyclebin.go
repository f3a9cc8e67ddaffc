// Package recyclebin decodes the $I metadata records Windows Vista and later
// write next to each item moved to the Recycle Bin.
package recyclebin

import (
	"time"

	"github.com/joshuapare/artifactkit/internal/buf"
	"github.com/joshuapare/artifactkit/pkg/types"
	"github.com/joshuapare/artifactkit/pkg/utf16le"
	"github.com/joshuapare/artifactkit/pkg/wintime"
)

// Record versions.
const (
	Version1 = 1 // Vista through 8.1
	Version2 = 2 // Windows 10 and later
)

const (
	offVersion = 0
	offSize    = 8
	offDeleted = 16
	offPath    = 24

	// v1 paths are a fixed MAX_PATH buffer
	v1PathBytes = 520
	v1Size      = offPath + v1PathBytes

	offV2PathLen = 24
	offV2Path    = 28
)

// Record is one decoded $I file.
type Record struct {
	Version      uint64
	OriginalSize uint64
	// DeletedTime is Unix seconds, wintime.Unset if not recorded.
	DeletedTime  int64
	OriginalPath string
}

// DeletedAt returns DeletedTime as a UTC time. It is the zero time when the
// record holds none.
func (r Record) DeletedAt() time.Time {
	if r.DeletedTime == wintime.Unset {
		return time.Time{}
	}
	return wintime.UnixToTime(r.DeletedTime)
}

// DecodeRecord decodes the contents of a $I file.
func DecodeRecord(raw []byte) (Record, error) {
	if len(raw) < offPath {
		return Record{}, types.Truncatedf("recyclebin: have %d bytes, need %d for header", len(raw), offPath)
	}

	r := Record{
		Version:      buf.U64LE(raw[offVersion:]),
		OriginalSize: buf.U64LE(raw[offSize:]),
		DeletedTime:  wintime.FiletimeToUnix(buf.U64LE(raw[offDeleted:])),
	}

	switch r.Version {
	case Version1:
		if len(raw) < v1Size {
			return Record{}, types.Truncatedf("recyclebin: v1 record of %d bytes, need %d", len(raw), v1Size)
		}
		r.OriginalPath = utf16le.DecodeTerminated(raw[offPath:v1Size])

	case Version2:
		n, ok := buf.U32At(raw, offV2PathLen)
		if !ok {
			return Record{}, types.Truncatedf("recyclebin: v2 record of %d bytes has no path length", len(raw))
		}
		end, err := buf.CheckListBounds(len(raw), offV2Path, int(n), 2)
		if err != nil {
			return Record{}, types.Truncatedf("recyclebin: v2 path of %d code units: %w", n, err)
		}
		r.OriginalPath = utf16le.DecodeTerminated(raw[offV2Path:end])

	default:
		return Record{}, types.UnsupportedVersionf("recyclebin: version %d", r.Version)
	}
	return r, nil
}
