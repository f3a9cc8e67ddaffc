package registry

import "strings"

// Value is one named registry value as read from a hive.
type Value struct {
	Name string
	Data []byte
}

// RIDFromSID returns the relative identifier of a SID string, the final
// sub-authority ("S-1-5-21-...-1001" yields "1001"). Strings without a dash
// are returned unchanged.
func RIDFromSID(sid string) string {
	i := strings.LastIndexByte(sid, '-')
	if i < 0 {
		return sid
	}
	return sid[i+1:]
}

// rot13 reverses the letter rotation Explorer applies to UserAssist names.
func rot13(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+13)%26
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+13)%26
		default:
			return r
		}
	}, s)
}
