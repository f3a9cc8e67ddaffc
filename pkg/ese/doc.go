// Package ese decodes individual Jet/ESE (Extensible Storage Engine) column
// values such as those found in WebCache, SRUM and Amcache databases.
//
// Page and catalog traversal are left to the caller. The package starts
// from a column type code and the raw bytes of one cell and produces a
// types.Field:
//
//	f, err := ese.DecodeCell(ese.ColumnTypeLargeText, raw)
//	if errors.Is(err, types.ErrTruncated) {
//	    // skip the cell
//	}
//
// LargeText cells may be stored plain, Express-tagged or 7-bit packed; the
// tag byte at offset 1 selects the branch. A 7-bit stream always unpacks
// to one trailing character that is not part of the value and is dropped.
//
// Decoder carries options that change presentation, such as canonical GUID
// formatting, and honours a column's codepage for Text columns.
package ese
