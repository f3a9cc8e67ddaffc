// Package hives locates forensic artifacts inside offline registry hives
// and hands their raw values to the decoders in package registry.
//
// Hive access goes through the small Registry and Key interfaces. Open
// adapts an io.ReaderAt over a hive file using regparser; tests supply an
// in-memory tree instead.
//
// Extractor walks one artifact family per method. A record that fails to
// decode is logged at warn level, left out of the result, and its error
// joined into the returned error so callers can decide whether a partial
// result is acceptable. A missing top-level key is returned as
// ErrKeyNotFound with no records.
package hives
