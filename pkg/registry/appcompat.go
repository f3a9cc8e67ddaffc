package registry

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/artifactkit/internal/buf"
	"github.com/joshuapare/artifactkit/pkg/types"
	"github.com/joshuapare/artifactkit/pkg/utf16le"
	"github.com/joshuapare/artifactkit/pkg/wintime"
)

// Windows 10 AppCompatCache header sizes. The first u32 of the value is the
// offset of the first entry.
const (
	AppCompatWin10HeaderSize   = 0x30
	AppCompatWin10CUHeaderSize = 0x34

	// sig(4) + unknown(4) + entry data size(4)
	appCompatEntryHeaderSize = 12
)

var appCompatEntrySig = []byte("10ts")

// AppCompatEntry is one shim cache record. Position is the entry's index
// in the cache, most recent first.
type AppCompatEntry struct {
	Position     int
	Path         string
	LastModified int64
	DataSize     uint32
}

// DecodeAppCompatCache decodes the Windows 10 AppCompatCache value. Entries
// decoded before a corrupt one are returned together with the error.
func DecodeAppCompatCache(blob []byte) ([]AppCompatEntry, error) {
	hdr, ok := buf.U32At(blob, 0)
	if !ok {
		return nil, types.Truncatedf("appcompatcache: have %d bytes, need 4", len(blob))
	}
	if hdr != AppCompatWin10HeaderSize && hdr != AppCompatWin10CUHeaderSize {
		return nil, types.UnsupportedVersionf("appcompatcache: header size 0x%X", hdr)
	}

	c := buf.NewCursor(blob)
	if err := c.Seek(int(hdr)); err != nil {
		return nil, types.Truncatedf("appcompatcache: header: %w", err)
	}

	var out []AppCompatEntry
	for c.Remaining() > 0 {
		e, err := decodeAppCompatEntry(c)
		if err != nil {
			return out, fmt.Errorf("appcompatcache: entry %d at 0x%X: %w", len(out), c.Offset(), err)
		}
		e.Position = len(out)
		out = append(out, e)
	}
	return out, nil
}

// decodeAppCompatEntry reads one "10ts" record and leaves c at the next.
func decodeAppCompatEntry(c *buf.Cursor) (AppCompatEntry, error) {
	start := c.Offset()
	head, err := c.Bytes(appCompatEntryHeaderSize)
	if err != nil {
		return AppCompatEntry{}, types.Truncatedf("entry header: %w", err)
	}
	if !bytes.Equal(head[:4], appCompatEntrySig) {
		return AppCompatEntry{}, types.UnsupportedVersionf("signature %q", head[:4])
	}
	size := int(buf.U32LE(head[8:]))
	body, err := c.Bytes(size)
	if err != nil {
		return AppCompatEntry{}, types.Truncatedf("entry body of %d bytes at 0x%X: %w", size, start, err)
	}

	bc := buf.NewCursor(body)
	pathLen, err := bc.U16()
	if err != nil {
		return AppCompatEntry{}, types.Truncatedf("path size: %w", err)
	}
	path, err := bc.Bytes(int(pathLen))
	if err != nil {
		return AppCompatEntry{}, types.Truncatedf("path: %w", err)
	}
	ft, err := bc.U64()
	if err != nil {
		return AppCompatEntry{}, types.Truncatedf("last modified: %w", err)
	}
	dataSize, err := bc.U32()
	if err != nil {
		return AppCompatEntry{}, types.Truncatedf("data size: %w", err)
	}
	if bc.Remaining() < int(dataSize) {
		return AppCompatEntry{}, types.Truncatedf("data of %d bytes, %d left", dataSize, bc.Remaining())
	}

	return AppCompatEntry{
		Path:         utf16le.Decode(path),
		LastModified: wintime.FiletimeToUnix(ft),
		DataSize:     dataSize,
	}, nil
}
