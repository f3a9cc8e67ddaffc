// Package wintime normalizes Windows timestamp encodings to Unix seconds.
//
// Two encodings appear in the artifacts this module decodes: FILETIME
// (100-nanosecond ticks since 1601-01-01 UTC) in registry values and $I
// records, and OLE Automation dates (float64 days since 1899-12-30) in ESE
// DateTime columns.
package wintime

import (
	"math"
	"time"

	"github.com/joshuapare/artifactkit/internal/buf"
	"github.com/joshuapare/artifactkit/pkg/types"
)

const (
	// Unset is returned for timestamps that are zero, negative, or beyond
	// MaxUnix. Windows uses 0 and 0x7FFFFFFFFFFFFFFF for "never".
	Unset int64 = 0

	ticksPerSecond = 10_000_000

	// filetimeEpochDelta is the number of seconds between 1601-01-01 and
	// 1970-01-01.
	filetimeEpochDelta = 11_644_473_600

	// MinUnix is 1601-01-01T00:00:00Z.
	MinUnix int64 = -filetimeEpochDelta
	// MaxUnix is 9999-12-31T23:59:59Z.
	MaxUnix int64 = 253_402_300_799

	secondsPerDay = 86_400
	// oleEpochUnix is 1899-12-30T00:00:00Z.
	oleEpochUnix int64 = -2_209_161_600
)

// FiletimeToUnix converts a FILETIME to Unix seconds, truncating sub-second
// ticks. Results at or before the Unix epoch, and results past MaxUnix,
// return Unset. The conversion is monotonic across the representable range.
func FiletimeToUnix(ft uint64) int64 {
	sec := int64(ft/ticksPerSecond) - filetimeEpochDelta
	if sec <= 0 || sec > MaxUnix {
		return Unset
	}
	return sec
}

// FiletimeToUnixChecked is FiletimeToUnix but reports FILETIMEs past
// 9999-12-31 as ErrOutOfRange instead of folding them into Unset.
func FiletimeToUnixChecked(ft uint64) (int64, error) {
	sec := int64(ft/ticksPerSecond) - filetimeEpochDelta
	if sec > MaxUnix {
		return Unset, types.OutOfRangef("filetime 0x%016X: beyond %d", ft, MaxUnix)
	}
	if sec <= 0 {
		return Unset, nil
	}
	return sec, nil
}

// FiletimeBytesToUnix reads an 8-byte little-endian FILETIME from b.
func FiletimeBytesToUnix(b []byte) (int64, error) {
	if len(b) < 8 {
		return Unset, types.Truncatedf("filetime: have %d bytes, need 8", len(b))
	}
	return FiletimeToUnix(buf.U64LE(b)), nil
}

// FiletimeToTime converts a FILETIME to time.Time, keeping sub-second
// precision. Unset values map to the zero time.Time.
func FiletimeToTime(ft uint64) time.Time {
	if FiletimeToUnix(ft) == Unset {
		return time.Time{}
	}
	sec := int64(ft/ticksPerSecond) - filetimeEpochDelta
	nsec := int64(ft%ticksPerSecond) * 100
	return time.Unix(sec, nsec).UTC()
}

// UnixToFiletime converts Unix seconds to a FILETIME. Values before 1601
// clamp to 0.
func UnixToFiletime(sec int64) uint64 {
	if sec < MinUnix {
		return 0
	}
	if sec > MaxUnix {
		sec = MaxUnix
	}
	return uint64(sec+filetimeEpochDelta) * ticksPerSecond
}

// UnixToTime converts Unix seconds to UTC time, mapping Unset to the zero
// time.Time.
func UnixToTime(sec int64) time.Time {
	if sec == Unset {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// OLEDateToUnix decodes an 8-byte little-endian OLE Automation date.
func OLEDateToUnix(b [8]byte) (int64, error) {
	return OLEDateValueToUnix(buf.F64LE(b[:]))
}

// OLEDateValueToUnix converts an OLE Automation date to Unix seconds. The
// integer part counts days from 1899-12-30 and the fraction is the time of
// day rounded to the nearest second. For negative dates the fraction still
// runs forward from midnight, so -1.25 is 1899-12-29 06:00. NaN, infinities
// and dates outside 1601..9999 return ErrOutOfRange.
func OLEDateValueToUnix(d float64) (int64, error) {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return Unset, types.OutOfRangef("ole date %v: not finite", d)
	}
	// Keeps the int64 conversion below well away from overflow; the exact
	// range check happens on the result.
	if math.Abs(d) > 1e7 {
		return Unset, types.OutOfRangef("ole date %v: outside 1601-01-01..9999-12-31", d)
	}
	days, frac := math.Modf(d)
	frac = math.Abs(frac)
	sec := oleEpochUnix + int64(days)*secondsPerDay + int64(math.Round(frac*secondsPerDay))
	if sec < MinUnix || sec > MaxUnix {
		return Unset, types.OutOfRangef("ole date %v: outside 1601-01-01..9999-12-31", d)
	}
	return sec, nil
}

// UnixToOLEDate converts Unix seconds to an OLE Automation date.
func UnixToOLEDate(sec int64) float64 {
	rel := sec - oleEpochUnix
	days := math.Floor(float64(rel) / secondsPerDay)
	frac := float64(rel-int64(days)*secondsPerDay) / secondsPerDay
	if days < 0 {
		return days - frac
	}
	return days + frac
}
