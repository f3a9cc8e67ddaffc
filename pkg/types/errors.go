package types

import "fmt"

// ErrKind classifies decode failures so callers can branch on intent rather
// than text.
type ErrKind int

const (
	ErrKindTruncated          ErrKind = iota // declared or implied length exceeds the buffer
	ErrKindUnsupportedType                   // column or value type code outside the known set
	ErrKindUnsupportedVersion                // record version tag outside the known set
	ErrKindOutOfRange                        // derived timestamp or number not representable
	ErrKindInvalidEncoding                   // text could not be recovered even best-effort
)

// String returns a short stable name for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindTruncated:
		return "truncated"
	case ErrKindUnsupportedType:
		return "unsupported type"
	case ErrKindUnsupportedVersion:
		return "unsupported version"
	case ErrKindOutOfRange:
		return "out of range"
	case ErrKindInvalidEncoding:
		return "invalid encoding"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed decode error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrTruncated)
// holds for every truncation regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is checks.
var (
	// ErrTruncated indicates a read would cross the end of the record.
	ErrTruncated = &Error{Kind: ErrKindTruncated, Msg: "truncated record"}
	// ErrUnsupportedType indicates an unknown column or value type code.
	ErrUnsupportedType = &Error{Kind: ErrKindUnsupportedType, Msg: "unsupported type"}
	// ErrUnsupportedVersion indicates an unknown record version tag.
	ErrUnsupportedVersion = &Error{Kind: ErrKindUnsupportedVersion, Msg: "unsupported version"}
	// ErrOutOfRange indicates a value outside representable bounds.
	ErrOutOfRange = &Error{Kind: ErrKindOutOfRange, Msg: "value out of range"}
	// ErrInvalidEncoding indicates text that cannot be decoded.
	ErrInvalidEncoding = &Error{Kind: ErrKindInvalidEncoding, Msg: "invalid encoding"}
)

// Newf builds an error of the given kind. A trailing error argument that is
// consumed by %w becomes the cause.
func Newf(kind ErrKind, format string, args ...any) *Error {
	wrapped := fmt.Errorf(format, args...)
	e := &Error{Kind: kind, Msg: wrapped.Error()}
	if u, ok := wrapped.(interface{ Unwrap() error }); ok {
		if cause := u.Unwrap(); cause != nil {
			e.Msg = trimCause(e.Msg, cause.Error())
			e.Err = cause
		}
	}
	return e
}

func trimCause(msg, cause string) string {
	suffix := ": " + cause
	if len(msg) >= len(suffix) && msg[len(msg)-len(suffix):] == suffix {
		return msg[:len(msg)-len(suffix)]
	}
	return msg
}

// Truncatedf returns an ErrKindTruncated error.
func Truncatedf(format string, args ...any) *Error {
	return Newf(ErrKindTruncated, format, args...)
}

// UnsupportedTypef returns an ErrKindUnsupportedType error.
func UnsupportedTypef(format string, args ...any) *Error {
	return Newf(ErrKindUnsupportedType, format, args...)
}

// UnsupportedVersionf returns an ErrKindUnsupportedVersion error.
func UnsupportedVersionf(format string, args ...any) *Error {
	return Newf(ErrKindUnsupportedVersion, format, args...)
}

// OutOfRangef returns an ErrKindOutOfRange error.
func OutOfRangef(format string, args ...any) *Error {
	return Newf(ErrKindOutOfRange, format, args...)
}

// InvalidEncodingf returns an ErrKindInvalidEncoding error.
func InvalidEncodingf(format string, args ...any) *Error {
	return Newf(ErrKindInvalidEncoding, format, args...)
}
