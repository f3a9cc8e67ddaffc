package types

import (
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"
)

// FieldKind tags the variant held by a Field.
type FieldKind uint8

const (
	KindNull FieldKind = iota
	KindText
	KindInteger
	KindReal
	KindTimestamp
	KindBlob
)

// String implements the Stringer interface for FieldKind.
func (k FieldKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindTimestamp:
		return "timestamp"
	case KindBlob:
		return "blob"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Field is one decoded value. The Kind always reflects the type declared by
// the source column or value, so callers switch on Kind and never inspect
// the payload to guess. The zero Field is Null.
type Field struct {
	kind FieldKind
	text string
	num  int64 // Integer and Timestamp (Unix seconds)
	real float64
	blob []byte
}

// Null returns the null field.
func Null() Field { return Field{} }

// Text returns a text field.
func Text(s string) Field { return Field{kind: KindText, text: s} }

// Integer returns an integer field.
func Integer(v int64) Field { return Field{kind: KindInteger, num: v} }

// Real returns a floating point field.
func Real(v float64) Field { return Field{kind: KindReal, real: v} }

// Timestamp returns a timestamp field holding Unix seconds.
func Timestamp(unix int64) Field { return Field{kind: KindTimestamp, num: unix} }

// Blob returns a binary field holding a private copy of b.
func Blob(b []byte) Field {
	c := make([]byte, len(b))
	copy(c, b)
	return Field{kind: KindBlob, blob: c}
}

// Kind reports which variant f holds.
func (f Field) Kind() FieldKind { return f.kind }

// IsNull reports whether f is the null field.
func (f Field) IsNull() bool { return f.kind == KindNull }

// AsText returns the text payload.
func (f Field) AsText() (string, bool) { return f.text, f.kind == KindText }

// AsInteger returns the integer payload.
func (f Field) AsInteger() (int64, bool) { return f.num, f.kind == KindInteger }

// AsReal returns the floating point payload.
func (f Field) AsReal() (float64, bool) { return f.real, f.kind == KindReal }

// AsTimestamp returns the Unix seconds payload.
func (f Field) AsTimestamp() (int64, bool) { return f.num, f.kind == KindTimestamp }

// AsBlob returns the binary payload. The slice must not be modified.
func (f Field) AsBlob() ([]byte, bool) { return f.blob, f.kind == KindBlob }

// Value returns the payload as an untyped Go value (nil for Null).
func (f Field) Value() any {
	switch f.kind {
	case KindText:
		return f.text
	case KindInteger, KindTimestamp:
		return f.num
	case KindReal:
		return f.real
	case KindBlob:
		return f.blob
	default:
		return nil
	}
}

// String renders the field for display. Timestamps print as RFC 3339 UTC.
func (f Field) String() string {
	switch f.kind {
	case KindText:
		return f.text
	case KindInteger:
		return strconv.FormatInt(f.num, 10)
	case KindReal:
		return strconv.FormatFloat(f.real, 'g', -1, 64)
	case KindTimestamp:
		return time.Unix(f.num, 0).UTC().Format(time.RFC3339)
	case KindBlob:
		return hex.EncodeToString(f.blob)
	default:
		return ""
	}
}

// MarshalJSON encodes the field as {"kind": ..., "value": ...}.
func (f Field) MarshalJSON() ([]byte, error) {
	v := f.Value()
	if f.kind == KindBlob {
		v = hex.EncodeToString(f.blob)
	}
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Value any    `json:"value"`
	}{f.kind.String(), v})
}
