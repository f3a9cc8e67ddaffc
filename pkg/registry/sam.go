package registry

import (
	"fmt"

	"github.com/joshuapare/artifactkit/internal/buf"
	"github.com/joshuapare/artifactkit/pkg/types"
	"github.com/joshuapare/artifactkit/pkg/utf16le"
	"github.com/joshuapare/artifactkit/pkg/wintime"
)

// SAM V layout. The value opens with a table of 12-byte descriptors
// (offset, length, reserved); each offset is relative to the end of the
// table.
const (
	// SAMVHeaderSize is the size of the descriptor table (0xCC).
	SAMVHeaderSize = 204

	samVUserNameDesc    = 0x0C
	samVFullNameDesc    = 0x18
	samVCommentDesc     = 0x24
	samVUserCommentDesc = 0x30
	samVHomeDirDesc     = 0x48
	samVScriptPathDesc  = 0x60
	samVProfilePathDesc = 0x6C
)

// SAM F layout.
const (
	samFLastLogin       = 0x08
	samFPasswordReset   = 0x18
	samFAccountExpires  = 0x20
	samFLastFailedLogin = 0x28
	samFRID             = 0x30
	samFACBFlags        = 0x38
	samFFailedCount     = 0x40
	samFLoginCount      = 0x42

	// SAMFMinSize is the smallest F value holding every decoded field.
	SAMFMinSize = 0x44
)

// SAMV holds the strings of a SAM V value.
type SAMV struct {
	UserName    string
	FullName    string
	Comment     string
	UserComment string
	HomeDir     string
	ScriptPath  string
	ProfilePath string
}

// SAMF holds the account counters and times of a SAM F value. Times are
// Unix seconds, wintime.Unset when never set.
type SAMF struct {
	LastLogin        int64
	PasswordReset    int64
	AccountExpires   int64
	LastFailedLogin  int64
	RID              uint32
	ACBFlags         ACBFlags
	FailedLoginCount uint16
	LoginCount       uint16
}

// UserRecord is one local account decoded from its V and F values.
type UserRecord struct {
	SAMV
	SAMF
}

// DecodeSAMV decodes the strings of a SAM V value.
func DecodeSAMV(blob []byte) (SAMV, error) {
	if len(blob) < SAMVHeaderSize {
		return SAMV{}, types.Truncatedf("sam v: have %d bytes, need %d for descriptor table",
			len(blob), SAMVHeaderSize)
	}

	var v SAMV
	fields := []struct {
		name string
		desc int
		dst  *string
	}{
		{"user name", samVUserNameDesc, &v.UserName},
		{"full name", samVFullNameDesc, &v.FullName},
		{"comment", samVCommentDesc, &v.Comment},
		{"user comment", samVUserCommentDesc, &v.UserComment},
		{"home dir", samVHomeDirDesc, &v.HomeDir},
		{"script path", samVScriptPathDesc, &v.ScriptPath},
		{"profile path", samVProfilePathDesc, &v.ProfilePath},
	}
	for _, f := range fields {
		s, err := samVString(blob, f.desc)
		if err != nil {
			return SAMV{}, fmt.Errorf("sam v: %s: %w", f.name, err)
		}
		*f.dst = s
	}
	return v, nil
}

// samVString resolves one descriptor to its UTF-16 string.
func samVString(blob []byte, desc int) (string, error) {
	rel := buf.U32LE(blob[desc : desc+4])
	length := buf.U32LE(blob[desc+4 : desc+8])
	if length == 0 {
		return "", nil
	}
	off, ok := buf.AddOverflowSafe(SAMVHeaderSize, int(rel))
	if !ok {
		return "", types.Truncatedf("offset 0x%X overflows", rel)
	}
	s, ok := buf.Slice(blob, off, int(length))
	if !ok {
		return "", types.Truncatedf("%d bytes at %d exceed value length %d", length, off, len(blob))
	}
	return utf16le.Decode(s), nil
}

// DecodeSAMF decodes the fixed-layout SAM F value.
func DecodeSAMF(blob []byte) (SAMF, error) {
	if len(blob) < SAMFMinSize {
		return SAMF{}, types.Truncatedf("sam f: have %d bytes, need %d", len(blob), SAMFMinSize)
	}
	return SAMF{
		LastLogin:        wintime.FiletimeToUnix(buf.U64LE(blob[samFLastLogin:])),
		PasswordReset:    wintime.FiletimeToUnix(buf.U64LE(blob[samFPasswordReset:])),
		AccountExpires:   wintime.FiletimeToUnix(buf.U64LE(blob[samFAccountExpires:])),
		LastFailedLogin:  wintime.FiletimeToUnix(buf.U64LE(blob[samFLastFailedLogin:])),
		RID:              buf.U32LE(blob[samFRID:]),
		ACBFlags:         ACBFlags(buf.U16LE(blob[samFACBFlags:])),
		FailedLoginCount: buf.U16LE(blob[samFFailedCount:]),
		LoginCount:       buf.U16LE(blob[samFLoginCount:]),
	}, nil
}

// DecodeSAMUser decodes a user's V and F values into one record.
func DecodeSAMUser(v, f []byte) (UserRecord, error) {
	sv, err := DecodeSAMV(v)
	if err != nil {
		return UserRecord{}, err
	}
	sf, err := DecodeSAMF(f)
	if err != nil {
		return UserRecord{}, err
	}
	return UserRecord{SAMV: sv, SAMF: sf}, nil
}
