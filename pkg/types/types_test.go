package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesKind(t *testing.T) {
	cause := errors.New("short read")
	err := Truncatedf("sam v: user name at %d: %w", 12, cause)

	require.ErrorIs(t, err, ErrTruncated)
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, "sam v: user name at 12: short read", err.Error())
	assert.Equal(t, "sam v: user name at 12", err.Msg)

	wrapped := fmt.Errorf("record 3: %w", err)
	require.ErrorIs(t, wrapped, ErrTruncated)

	var typed *Error
	require.ErrorAs(t, wrapped, &typed)
	assert.Equal(t, ErrKindTruncated, typed.Kind)
}

func TestErrorConstructorsKinds(t *testing.T) {
	tests := []struct {
		err  *Error
		want *Error
	}{
		{UnsupportedTypef("type %d", 99), ErrUnsupportedType},
		{UnsupportedVersionf("version %d", 3), ErrUnsupportedVersion},
		{OutOfRangef("ole date %v", 1e12), ErrOutOfRange},
		{InvalidEncodingf("odd length"), ErrInvalidEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.want.Kind.String(), func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.want)
			assert.Nil(t, tt.err.Unwrap())
		})
	}
}

func TestNilErrorString(t *testing.T) {
	var e *Error
	assert.Equal(t, "<nil>", e.Error())
}

func TestFieldVariants(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.Equal(t, KindNull, Field{}.Kind())

	s, ok := Text("admin").AsText()
	assert.True(t, ok)
	assert.Equal(t, "admin", s)

	_, ok = Text("admin").AsInteger()
	assert.False(t, ok)

	i, ok := Integer(-5).AsInteger()
	assert.True(t, ok)
	assert.Equal(t, int64(-5), i)

	ts, ok := Timestamp(86400).AsTimestamp()
	assert.True(t, ok)
	assert.Equal(t, int64(86400), ts)
	assert.Equal(t, "1970-01-02T00:00:00Z", Timestamp(86400).String())

	r, ok := Real(1.5).AsReal()
	assert.True(t, ok)
	assert.Equal(t, 1.5, r)
}

func TestBlobCopiesInput(t *testing.T) {
	src := []byte{1, 2, 3}
	f := Blob(src)
	src[0] = 9

	b, ok := f.AsBlob()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, b)
	assert.Equal(t, "010203", f.String())
}

func TestFieldMarshalJSON(t *testing.T) {
	out, err := json.Marshal([]Field{Null(), Text("x"), Integer(7), Blob([]byte{0xAB})})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"kind":"null","value":null},
		{"kind":"text","value":"x"},
		{"kind":"integer","value":7},
		{"kind":"blob","value":"ab"}
	]`, string(out))
}
