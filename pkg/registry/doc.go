// Package registry decodes binary registry values that carry forensic
// artifacts: SAM user records (the V and F values under
// SAM\Domains\Account\Users\<RID>), Background Activity Moderator last-run
// times, UserAssist counters and the Windows 10 AppCompatCache stream.
//
// Every decoder takes the raw value bytes and returns a typed record or a
// *types.Error. Offsets and lengths embedded in a value are validated
// against the value length before any slice is taken, so a corrupt length
// surfaces as types.ErrTruncated rather than a panic or a garbage string.
//
// Timestamps are Unix seconds; wintime.Unset (0) means the value recorded no
// time.
//
// Locating the values inside a hive is the job of package hives.
package registry
