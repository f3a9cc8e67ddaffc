package ese

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/artifactkit/internal/buf"
	"github.com/joshuapare/artifactkit/pkg/types"
	"github.com/joshuapare/artifactkit/pkg/utf16le"
	"github.com/joshuapare/artifactkit/pkg/wintime"
)

// Codepages a Text column may declare.
const (
	CodepageUnicode = 1200
	CodepageWestern = 1252
	CodepageASCII   = 20127
)

// LargeText tag values found at offset 1.
const (
	largeTextTagExpress = 24
	largeTextTag7Bit    = 23
)

// guidSize is the on-disk size of a GUID column.
const guidSize = 16

// Column describes one catalog column. Codepage is only consulted for text
// columns; zero means UTF-16.
type Column struct {
	Name     string
	Type     ColumnType
	Codepage uint32
}

// Options controls presentation choices that have more than one accepted
// rendering.
type Options struct {
	// CanonicalGUID renders Guid cells as {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}
	// instead of decoding their bytes as UTF-16 text.
	CanonicalGUID bool
}

// Decoder decodes cells with a fixed set of options. The zero value is
// ready to use and safe for concurrent use.
type Decoder struct {
	Options Options
}

// DecodeCell decodes one cell with default options.
func DecodeCell(t ColumnType, raw []byte) (types.Field, error) {
	return Decoder{}.DecodeColumn(Column{Type: t}, raw)
}

// DecodeColumn decodes raw according to col.
func (d Decoder) DecodeColumn(col Column, raw []byte) (types.Field, error) {
	switch col.Type {
	case ColumnTypeText:
		return types.Text(decodeText(col.Codepage, raw)), nil
	case ColumnTypeLargeText:
		s, err := decodeLargeText(col.Codepage, raw)
		if err != nil {
			return types.Null(), err
		}
		return types.Text(s), nil
	}

	if !col.Type.Known() {
		return types.Null(), types.UnsupportedTypef("ese: column %q: type %d", col.Name, uint32(col.Type))
	}
	if col.Type == ColumnTypeNull || len(raw) == 0 {
		return types.Null(), nil
	}

	switch col.Type {
	case ColumnTypeBool:
		if raw[0] != 0 {
			return types.Integer(1), nil
		}
		return types.Integer(0), nil

	case ColumnTypeBinary, ColumnTypeLargeBinary:
		return types.Blob(raw), nil

	case ColumnTypeDateTime:
		b, err := fixed(col, raw, 8)
		if err != nil {
			return types.Null(), err
		}
		sec, err := wintime.OLEDateToUnix([8]byte(b))
		if err != nil {
			return types.Null(), fmt.Errorf("ese: column %q: %w", col.Name, err)
		}
		return types.Timestamp(sec), nil

	case ColumnTypeFloat32:
		b, err := fixed(col, raw, 4)
		if err != nil {
			return types.Null(), err
		}
		return types.Real(float64(buf.F32LE(b))), nil

	case ColumnTypeFloat64:
		b, err := fixed(col, raw, 8)
		if err != nil {
			return types.Null(), err
		}
		return types.Real(buf.F64LE(b)), nil

	case ColumnTypeGuid:
		if !d.Options.CanonicalGUID {
			return types.Text(utf16le.Decode(raw)), nil
		}
		b, err := fixed(col, raw, guidSize)
		if err != nil {
			return types.Null(), err
		}
		g, err := FormatGUID(b)
		if err != nil {
			return types.Null(), err
		}
		return types.Text(g), nil
	}

	return decodeInteger(col, raw)
}

// decodeInteger handles the fixed-width integer family.
func decodeInteger(col Column, raw []byte) (types.Field, error) {
	var width int
	switch col.Type {
	case ColumnTypeUInt8:
		width = 1
	case ColumnTypeInt16, ColumnTypeUInt16:
		width = 2
	case ColumnTypeInt32, ColumnTypeUInt32:
		width = 4
	case ColumnTypeCurrency, ColumnTypeInt64, ColumnTypeSuperLarge:
		width = 8
	default:
		return types.Null(), types.UnsupportedTypef("ese: column %q: type %s", col.Name, col.Type)
	}
	b, err := fixed(col, raw, width)
	if err != nil {
		return types.Null(), err
	}

	var v int64
	switch col.Type {
	case ColumnTypeUInt8:
		v = int64(b[0])
	case ColumnTypeInt16:
		v = int64(buf.I16LE(b))
	case ColumnTypeUInt16:
		v = int64(buf.U16LE(b))
	case ColumnTypeInt32:
		v = int64(buf.I32LE(b))
	case ColumnTypeUInt32:
		v = int64(buf.U32LE(b))
	default:
		v = buf.I64LE(b)
	}
	return types.Integer(v), nil
}

func fixed(col Column, raw []byte, width int) ([]byte, error) {
	b, ok := buf.Slice(raw, 0, width)
	if !ok {
		return nil, types.Truncatedf("ese: column %q: %s needs %d bytes, have %d",
			col.Name, col.Type, width, len(raw))
	}
	return b, nil
}

func decodeText(codepage uint32, raw []byte) string {
	switch codepage {
	case CodepageWestern, CodepageASCII:
		out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return string(raw)
		}
		return strings.TrimRight(string(out), "\x00")
	default:
		return utf16le.Decode(raw)
	}
}

func decodeLargeText(codepage uint32, raw []byte) (string, error) {
	switch {
	case len(raw) == 0:
		return "", nil
	case len(raw) == 1:
		return "", types.Truncatedf("ese: large text of 1 byte has no compression tag")
	}

	tag := raw[1]
	switch {
	case tag == largeTextTagExpress:
		return utf16le.Decode(raw[2:]), nil
	case tag >= largeTextTag7Bit:
		s := Decompress7Bit(raw[1:])
		if s == "" {
			return "", nil
		}
		// the final unpacked character is padding
		return s[:len(s)-1], nil
	default:
		return decodeText(codepage, raw), nil
	}
}

// Decompress7Bit unpacks a stream of 7-bit characters packed
// least-significant bit first. Every input byte adds 8 bits to the
// accumulator and a character is emitted whenever 7 are available, so n
// bytes yield n*8/7 characters including trailing padding.
func Decompress7Bit(stream []byte) string {
	out := make([]byte, 0, len(stream)*8/7)
	var acc uint32
	bits := 0
	for _, b := range stream {
		acc |= uint32(b) << bits
		bits += 8
		for bits >= 7 {
			out = append(out, byte(acc&0x7F))
			acc >>= 7
			bits -= 7
		}
	}
	return string(out)
}

// FormatGUID renders 16 on-disk GUID bytes in registry form. The first
// three groups are stored little-endian. Bytes past the sixteenth are
// ignored.
func FormatGUID(b []byte) (string, error) {
	if len(b) < guidSize {
		return "", types.Truncatedf("ese: guid needs %d bytes, have %d", guidSize, len(b))
	}
	var swapped [guidSize]byte
	copy(swapped[:], b[:guidSize])
	swapped[0], swapped[1], swapped[2], swapped[3] = b[3], b[2], b[1], b[0]
	swapped[4], swapped[5] = b[5], b[4]
	swapped[6], swapped[7] = b[7], b[6]

	u, err := uuid.FromBytes(swapped[:])
	if err != nil {
		return "", fmt.Errorf("ese: guid: %w", err)
	}
	return "{" + strings.ToUpper(u.String()) + "}", nil
}
