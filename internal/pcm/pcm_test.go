package pcm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeInt16LE verifies decoding of edge-case sample values.
func TestDecodeInt16LE(t *testing.T) {
	src := []byte{
		0x00, 0x00, // 0
		0x01, 0x00, // 1
		0xff, 0xff, // -1
		0xff, 0x7f, // 32767
		0x00, 0x80, // -32768
		0x34, 0x12, // 0x1234
	}
	expected := []int16{0, 1, -1, 32767, -32768, 0x1234}

	got := DecodeInt16LE(make([]int16, len(src)/BytesPerSample), src)
	assert.Equal(t, expected, got)
}

// TestAppendInt16LE_RoundTrip checks encode/decode consistency on a
// signal that exercises both extremes and sign changes.
func TestAppendInt16LE_RoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 100, -100, 32767, -32768, 12345, -12345}

	encoded := AppendInt16LE(nil, samples)
	require.Len(t, encoded, len(samples)*BytesPerSample)

	decoded := DecodeInt16LE(make([]int16, len(samples)), encoded)
	assert.Equal(t, samples, decoded)
}

// TestAppendInt16LE_Extends verifies append semantics onto a prefix.
func TestAppendInt16LE_Extends(t *testing.T) {
	prefix := []byte{0xaa, 0xbb}
	out := AppendInt16LE(prefix, []int16{0x0102})
	assert.Equal(t, []byte{0xaa, 0xbb, 0x02, 0x01}, out)
}

// TestGrowInt16 verifies geometric growth and capacity reuse.
func TestGrowInt16(t *testing.T) {
	buf := GrowInt16(nil, 100)
	require.Len(t, buf, 100)
	firstCap := cap(buf)

	// A smaller request must reuse the same backing array.
	buf2 := GrowInt16(buf, 50)
	assert.Len(t, buf2, 50)
	assert.Equal(t, firstCap, cap(buf2))

	// Growing doubles until the request fits.
	buf3 := GrowInt16(buf2, firstCap*3)
	assert.Len(t, buf3, firstCap*3)
	assert.GreaterOrEqual(t, cap(buf3), firstCap*3)
}

// TestGrowBytes verifies the byte variant behaves identically.
func TestGrowBytes(t *testing.T) {
	buf := GrowBytes(nil, 64)
	require.Len(t, buf, 64)

	buf2 := GrowBytes(buf, 32)
	assert.Len(t, buf2, 32)
	assert.Equal(t, cap(buf), cap(buf2))

	buf3 := GrowBytes(buf2, cap(buf)*5)
	assert.GreaterOrEqual(t, cap(buf3), cap(buf)*5)
}
