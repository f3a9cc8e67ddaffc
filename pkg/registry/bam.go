package registry

import (
	"errors"
	"fmt"

	"github.com/joshuapare/artifactkit/internal/buf"
	"github.com/joshuapare/artifactkit/pkg/types"
	"github.com/joshuapare/artifactkit/pkg/wintime"
)

// BAMEntryMinSize is the number of leading bytes that hold the last-run
// FILETIME. The remainder of a BAM value is not decoded.
const BAMEntryMinSize = 8

// BAMEntry is one program execution recorded under a user's BAM key.
type BAMEntry struct {
	// UserIdentifier is the RID suffix of SID.
	UserIdentifier string
	SID            string
	ProgramPath    string
	LastRunTime    int64
}

// DecodeBAMEntry returns the last-run time stored in a BAM value.
func DecodeBAMEntry(blob []byte) (int64, error) {
	if len(blob) < BAMEntryMinSize {
		return wintime.Unset, types.Truncatedf("bam: have %d bytes, need %d", len(blob), BAMEntryMinSize)
	}
	return wintime.FiletimeToUnix(buf.U64LE(blob)), nil
}

// IsBAMMetaValue reports whether name is one of the bookkeeping values the
// service keeps next to the program entries.
func IsBAMMetaValue(name string) bool {
	return name == "SequenceNumber" || name == "Version"
}

// DecodeBAMValues decodes every program value of one user's BAM key.
// Bookkeeping values are skipped. Values that fail to decode are left out
// of the result and reported together in the returned error.
func DecodeBAMValues(sid string, values []Value) ([]BAMEntry, error) {
	rid := RIDFromSID(sid)
	entries := make([]BAMEntry, 0, len(values))
	var errs []error
	for _, v := range values {
		if IsBAMMetaValue(v.Name) {
			continue
		}
		ts, err := DecodeBAMEntry(v.Data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", v.Name, err))
			continue
		}
		entries = append(entries, BAMEntry{
			UserIdentifier: rid,
			SID:            sid,
			ProgramPath:    v.Name,
			LastRunTime:    ts,
		})
	}
	return entries, errors.Join(errs...)
}
