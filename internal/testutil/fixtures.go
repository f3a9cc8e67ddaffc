// Package testutil builds binary artifact fixtures for tests.
package testutil

import (
	"encoding/binary"
	"time"

	"github.com/joshuapare/artifactkit/pkg/utf16le"
)

// Filetime converts t to FILETIME ticks.
func Filetime(t time.Time) uint64 {
	const delta = 11644473600
	return uint64(t.Unix()+delta)*10_000_000 + uint64(t.Nanosecond()/100)
}

// FiletimeBytes returns the little-endian encoding of Filetime(t).
func FiletimeBytes(t time.Time) []byte {
	return binary.LittleEndian.AppendUint64(nil, Filetime(t))
}

// SAMVStrings are the strings written by SAMV. Descriptor offsets follow the
// on-disk table.
type SAMVStrings struct {
	UserName    string
	FullName    string
	Comment     string
	UserComment string
	HomeDir     string
	ScriptPath  string
	ProfilePath string
}

// SAMV builds a V value holding s.
func SAMV(s SAMVStrings) []byte {
	const header = 0xCC
	blob := make([]byte, header)
	put := func(desc int, v string) {
		if v == "" {
			return
		}
		enc := utf16le.Encode(v)
		binary.LittleEndian.PutUint32(blob[desc:], uint32(len(blob)-header))
		binary.LittleEndian.PutUint32(blob[desc+4:], uint32(len(enc)))
		blob = append(blob, enc...)
		// strings are 4-byte aligned on disk
		for len(blob)%4 != 0 {
			blob = append(blob, 0)
		}
	}
	put(0x0C, s.UserName)
	put(0x18, s.FullName)
	put(0x24, s.Comment)
	put(0x30, s.UserComment)
	put(0x48, s.HomeDir)
	put(0x60, s.ScriptPath)
	put(0x6C, s.ProfilePath)
	return blob
}

// SAMFFields are the values written by SAMF.
type SAMFFields struct {
	LastLogin, PasswordReset, AccountExpires, LastFailedLogin time.Time
	RID                                                       uint32
	ACB                                                       uint16
	FailedLogins, Logins                                      uint16
}

// SAMF builds an 0x50 byte F value. Zero times are written as 0.
func SAMF(f SAMFFields) []byte {
	blob := make([]byte, 0x50)
	ft := func(off int, t time.Time) {
		if !t.IsZero() {
			binary.LittleEndian.PutUint64(blob[off:], Filetime(t))
		}
	}
	ft(0x08, f.LastLogin)
	ft(0x18, f.PasswordReset)
	ft(0x20, f.AccountExpires)
	ft(0x28, f.LastFailedLogin)
	binary.LittleEndian.PutUint32(blob[0x30:], f.RID)
	binary.LittleEndian.PutUint16(blob[0x38:], f.ACB)
	binary.LittleEndian.PutUint16(blob[0x40:], f.FailedLogins)
	binary.LittleEndian.PutUint16(blob[0x42:], f.Logins)
	return blob
}

// BAMValue builds a 24-byte BAM value whose first 8 bytes encode t.
func BAMValue(t time.Time) []byte {
	blob := make([]byte, 24)
	binary.LittleEndian.PutUint64(blob, Filetime(t))
	return blob
}

// UserAssistWin7 builds a 72-byte UserAssist counter.
func UserAssistWin7(runs, focus uint32, focusMS uint32, last time.Time) []byte {
	blob := make([]byte, 72)
	binary.LittleEndian.PutUint32(blob[4:], runs)
	binary.LittleEndian.PutUint32(blob[8:], focus)
	binary.LittleEndian.PutUint32(blob[12:], focusMS)
	binary.LittleEndian.PutUint64(blob[60:], Filetime(last))
	return blob
}

// AppCompatRecord is one entry written by AppCompatCache.
type AppCompatRecord struct {
	Path     string
	Modified time.Time
	Data     []byte
}

// AppCompatCache builds a Windows 10 cache value with a 0x34 byte header.
func AppCompatCache(records ...AppCompatRecord) []byte {
	blob := make([]byte, 0x34)
	binary.LittleEndian.PutUint32(blob, 0x34)
	for _, r := range records {
		path := utf16le.Encode(r.Path)
		var body []byte
		body = binary.LittleEndian.AppendUint16(body, uint16(len(path)))
		body = append(body, path...)
		body = binary.LittleEndian.AppendUint64(body, Filetime(r.Modified))
		body = binary.LittleEndian.AppendUint32(body, uint32(len(r.Data)))
		body = append(body, r.Data...)

		blob = append(blob, "10ts"...)
		blob = binary.LittleEndian.AppendUint32(blob, 0)
		blob = binary.LittleEndian.AppendUint32(blob, uint32(len(body)))
		blob = append(blob, body...)
	}
	return blob
}

// RecycleV1 builds a version 1 $I record with its fixed 520-byte path.
func RecycleV1(size uint64, deleted time.Time, path string) []byte {
	blob := make([]byte, 544)
	binary.LittleEndian.PutUint64(blob, 1)
	binary.LittleEndian.PutUint64(blob[8:], size)
	binary.LittleEndian.PutUint64(blob[16:], Filetime(deleted))
	copy(blob[24:], utf16le.Encode(path))
	return blob
}

// RecycleV2 builds a version 2 $I record. The path is written with a
// terminating NUL, which the length field counts.
func RecycleV2(size uint64, deleted time.Time, path string) []byte {
	enc := append(utf16le.Encode(path), 0, 0)
	blob := make([]byte, 28, 28+len(enc))
	binary.LittleEndian.PutUint64(blob, 2)
	binary.LittleEndian.PutUint64(blob[8:], size)
	binary.LittleEndian.PutUint64(blob[16:], Filetime(deleted))
	binary.LittleEndian.PutUint32(blob[24:], uint32(len(enc)/2))
	return append(blob, enc...)
}
