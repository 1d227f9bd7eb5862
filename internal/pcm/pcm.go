// Package pcm converts between little-endian 16-bit PCM byte streams and
// int16 sample slices, and provides capacity-tracked scratch buffers so
// steady-state chunk processing does not reallocate on every call.
package pcm

import (
	"encoding/binary"
)

// BytesPerSample is the width of one 16-bit PCM sample in bytes.
const BytesPerSample = 2

// growthFactor doubles scratch capacity until it covers the request.
const growthFactor = 2

// DecodeInt16LE decodes little-endian 16-bit samples from src into dst.
// dst must have room for len(src)/BytesPerSample samples; the filled
// prefix of dst is returned. len(src) must be a multiple of BytesPerSample.
func DecodeInt16LE(dst []int16, src []byte) []int16 {
	n := len(src) / BytesPerSample
	dst = dst[:n]
	for i := range dst {
		dst[i] = int16(binary.LittleEndian.Uint16(src[i*BytesPerSample:]))
	}
	return dst
}

// AppendInt16LE appends the little-endian encoding of src to dst and
// returns the extended slice.
func AppendInt16LE(dst []byte, src []int16) []byte {
	for _, s := range src {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(s))
	}
	return dst
}

// GrowInt16 returns a slice of exactly n samples backed by buf when its
// capacity suffices, growing geometrically otherwise. Contents are not
// preserved; the caller overwrites the full length.
func GrowInt16(buf []int16, n int) []int16 {
	if cap(buf) >= n {
		return buf[:n]
	}
	newCap := cap(buf)
	if newCap == 0 {
		newCap = n
	}
	for newCap < n {
		newCap *= growthFactor
	}
	return make([]int16, n, newCap)
}

// GrowBytes is GrowInt16 for byte scratch buffers.
func GrowBytes(buf []byte, n int) []byte {
	if cap(buf) >= n {
		return buf[:n]
	}
	newCap := cap(buf)
	if newCap == 0 {
		newCap = n
	}
	for newCap < n {
		newCap *= growthFactor
	}
	return make([]byte, n, newCap)
}
