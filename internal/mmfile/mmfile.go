// Package mmfile opens evidence files read-only as byte slices, memory
// mapped where the platform allows it.
package mmfile

import (
	"errors"
	"io"
	"sync"
)

// ErrClosed is returned by reads after Close.
var ErrClosed = errors.New("mmfile: file closed")

// File is a read-only view of a whole file. It implements io.ReaderAt so it
// can back a hive parser directly. Bytes must not be used after Close.
type File struct {
	mu     sync.RWMutex
	data   []byte
	unmap  func() error
	closed bool
}

// Open maps the file at path.
func Open(path string) (*File, error) {
	data, unmap, err := Map(path)
	if err != nil {
		return nil, err
	}
	return &File{data: data, unmap: unmap}, nil
}

// Bytes returns the file contents.
func (f *File) Bytes() []byte { return f.data }

// Len returns the file size.
func (f *File) Len() int { return len(f.data) }

// ReadAt implements io.ReaderAt.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, errors.New("mmfile: negative offset")
	}
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close releases the mapping. Calling Close twice is a no-op.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	f.data = nil
	return f.unmap()
}

func noop() error { return nil }
