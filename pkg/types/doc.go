// Package types defines the values and errors shared by every decoder in
// this module.
//
// Field is the tagged union each decoder produces: Null, Text, Integer, Real,
// Timestamp (Unix seconds) or Blob. Fields are immutable values; Blob copies
// its input so no field aliases a caller's buffer.
//
// Errors carry a stable ErrKind (truncated, unsupported type, unsupported
// version, out of range, invalid encoding). Match them with errors.Is against
// the package sentinels:
//
//	f, err := ese.DecodeCell(ese.Int32, raw)
//	if errors.Is(err, types.ErrTruncated) {
//	    // skip this record, keep the batch going
//	}
//
// Decoders never panic on malformed input and never decide skip-or-abort
// policy; that is left to the caller.
//
// This package has no dependencies beyond the standard library.
package types
