package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	assert.Equal(t, uint16(0x2301), U16LE(data))
	assert.Equal(t, uint32(0x67452301), U32LE(data))
	assert.Equal(t, uint64(0xefcdab8967452301), U64LE(data))
	assert.Equal(t, int32(0x67452301), I32LE(data))
	assert.Equal(t, int16(0x2301), I16LE(data))
	assert.Equal(t, int64(-0x1032547698badcff), I64LE(data))

	short := []byte{0xAA}
	assert.Zero(t, U16LE(short))
	assert.Zero(t, U32LE(short))
	assert.Zero(t, U64LE(short))
	assert.Zero(t, I64LE(short))
	assert.Zero(t, F64LE(short))
}

func TestFloatHelpers(t *testing.T) {
	b := make([]byte, 8)
	bits := math.Float64bits(2.5)
	for i := 0; i < 8; i++ {
		b[i] = byte(bits >> (8 * i))
	}
	assert.Equal(t, 2.5, F64LE(b))

	b32 := make([]byte, 4)
	bits32 := math.Float32bits(-1.5)
	for i := 0; i < 4; i++ {
		b32[i] = byte(bits32 >> (8 * i))
	}
	assert.Equal(t, float32(-1.5), F32LE(b32))
}

func TestAtHelpers(t *testing.T) {
	data := []byte{0x01, 0x00, 0x02, 0x00, 0x00, 0x00}

	v16, ok := U16At(data, 0)
	require.True(t, ok)
	assert.Equal(t, uint16(1), v16)

	v32, ok := U32At(data, 2)
	require.True(t, ok)
	assert.Equal(t, uint32(2), v32)

	_, ok = U32At(data, 3)
	assert.False(t, ok)
	_, ok = U64At(data, 0)
	assert.False(t, ok)
	_, ok = U16At(data, -2)
	assert.False(t, ok)
}
