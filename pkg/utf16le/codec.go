package utf16le

import (
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/artifactkit/pkg/types"
)

const (
	asciiThreshold     = 0x80
	highSurrogateStart = 0xD800
	highSurrogateEnd   = 0xDBFF
	lowSurrogateStart  = 0xDC00
	lowSurrogateEnd    = 0xDFFF
)

var codec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Decode converts UTF-16LE bytes to a UTF-8 string, dropping the odd
// trailing byte and every NUL code unit. Invalid surrogates are replaced
// with U+FFFD.
func Decode(data []byte) string {
	data = evenPrefix(data)
	if len(data) == 0 {
		return ""
	}
	return decodeUnits(stripNUL(data))
}

// DecodeTerminated decodes up to the first NUL code unit. Use it for
// fixed-width fields whose bytes after the terminator are stale.
func DecodeTerminated(data []byte) string {
	data = evenPrefix(data)
	for i := 0; i < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return decodeUnits(data[:i])
		}
	}
	return decodeUnits(data)
}

// DecodeMulti splits a NUL-separated list of strings (REG_MULTI_SZ layout).
// Decoding stops at the first empty element, which marks the list end.
func DecodeMulti(data []byte) []string {
	data = evenPrefix(data)
	var out []string
	start := 0
	for i := 0; i < len(data); i += 2 {
		if data[i] != 0 || data[i+1] != 0 {
			continue
		}
		if i == start {
			return out
		}
		out = append(out, decodeUnits(data[start:i]))
		start = i + 2
	}
	if start < len(data) {
		out = append(out, decodeUnits(data[start:]))
	}
	return out
}

// DecodeStrict decodes data and reports ErrInvalidEncoding for odd lengths
// or unpaired surrogates. A single trailing NUL terminator is trimmed.
func DecodeStrict(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", types.InvalidEncodingf("utf16: odd length %d", len(data))
	}
	if n := len(data); n >= 2 && data[n-2] == 0 && data[n-1] == 0 {
		data = data[:n-2]
	}
	for i := 0; i < len(data); i += 2 {
		u := uint16(data[i]) | uint16(data[i+1])<<8
		switch {
		case u >= highSurrogateStart && u <= highSurrogateEnd:
			if i+3 >= len(data) {
				return "", types.InvalidEncodingf("utf16: unpaired high surrogate at %d", i)
			}
			lo := uint16(data[i+2]) | uint16(data[i+3])<<8
			if lo < lowSurrogateStart || lo > lowSurrogateEnd {
				return "", types.InvalidEncodingf("utf16: unpaired high surrogate at %d", i)
			}
			i += 2
		case u >= lowSurrogateStart && u <= lowSurrogateEnd:
			return "", types.InvalidEncodingf("utf16: unpaired low surrogate at %d", i)
		}
	}
	return decodeUnits(data), nil
}

// Encode converts s to UTF-16LE without a terminator or BOM.
func Encode(s string) []byte {
	out, err := codec.NewEncoder().Bytes([]byte(s))
	if err == nil {
		return out
	}
	units := utf16.Encode([]rune(s))
	out = make([]byte, 2*len(units))
	for i, u := range units {
		out[2*i] = byte(u)
		out[2*i+1] = byte(u >> 8)
	}
	return out
}

func evenPrefix(data []byte) []byte {
	return data[:len(data)&^1]
}

// stripNUL removes 0x0000 code units, copying only when one is present.
func stripNUL(data []byte) []byte {
	first := -1
	for i := 0; i < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			first = i
			break
		}
	}
	if first < 0 {
		return data
	}
	out := make([]byte, first, len(data))
	copy(out, data[:first])
	for i := first; i < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			continue
		}
		out = append(out, data[i], data[i+1])
	}
	return out
}

// decodeUnits decodes an even-length run of code units.
func decodeUnits(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	// Fast path: registry and ESE strings are overwhelmingly ASCII.
	allASCII := true
	for i := 0; i < len(data); i += 2 {
		if data[i+1] != 0 || data[i] >= asciiThreshold {
			allASCII = false
			break
		}
	}
	if allASCII {
		var b strings.Builder
		b.Grow(len(data) / 2)
		for i := 0; i < len(data); i += 2 {
			b.WriteByte(data[i])
		}
		return b.String()
	}

	out, err := codec.NewDecoder().Bytes(data)
	if err == nil {
		return string(out)
	}
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
	}
	return string(utf16.Decode(units))
}
