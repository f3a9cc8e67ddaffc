// Package utf16le converts little-endian UTF-16 byte runs taken from
// registry values, ESE cells and $I records into Go strings.
//
// The decoder is deliberately permissive. Forensic inputs are fixed-width
// fields padded with NULs, truncated mid-character, or partially
// overwritten, and a damaged string should still produce best-effort text:
//
//   - an odd trailing byte is dropped
//   - NUL code units are dropped wherever they appear
//   - unpaired surrogates become U+FFFD
//
// Decode never fails. DecodeStrict is available for callers that need to
// know the input was well formed.
package utf16le
