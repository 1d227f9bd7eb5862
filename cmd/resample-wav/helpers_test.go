package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNarrowSample covers rounding and saturation when narrowing
// decoded samples to 16 bits.
func TestNarrowSample(t *testing.T) {
	tests := []struct {
		name     string
		value    int
		bitDepth int
		want     int16
	}{
		{"16-bit passthrough", 1234, bitsPerSample16, 1234},
		{"16-bit negative", -1234, bitsPerSample16, -1234},
		{"16-bit max", 32767, bitsPerSample16, 32767},
		{"16-bit min", -32768, bitsPerSample16, -32768},
		{"24-bit full scale", 8388607, bitsPerSample24, 32767},
		{"24-bit negative full scale", -8388608, bitsPerSample24, -32768},
		{"24-bit unity step", 256, bitsPerSample24, 1},
		{"24-bit rounds up", 128, bitsPerSample24, 1},
		{"24-bit rounds down", 127, bitsPerSample24, 0},
		{"32-bit full scale", 2147483647, bitsPerSample32, 32767},
		{"32-bit negative full scale", -2147483648, bitsPerSample32, -32768},
		{"32-bit unity step", 65536, bitsPerSample32, 1},
		{"32-bit rounds to zero", 32767, bitsPerSample32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, narrowSample(tt.value, tt.bitDepth))
		})
	}
}

// TestClampInt16 saturates out of range values.
func TestClampInt16(t *testing.T) {
	assert.EqualValues(t, 32767, clampInt16(40000))
	assert.EqualValues(t, -32768, clampInt16(-40000))
	assert.EqualValues(t, 100, clampInt16(100))
}

// TestProgressTracker only reports on threshold crossings.
func TestProgressTracker(t *testing.T) {
	p := newProgressTracker(1000, true)
	assert.Equal(t, 0, p.lastProgress)

	p.reportIfNeeded(50) // 5%: below first threshold
	assert.Equal(t, 0, p.lastProgress)

	p.reportIfNeeded(150) // 15%
	assert.Equal(t, 15, p.lastProgress)

	p.reportIfNeeded(200) // 20%: within interval of last report
	assert.Equal(t, 15, p.lastProgress)

	p.reportIfNeeded(990) // 99%
	assert.Equal(t, 99, p.lastProgress)
}

// TestProgressTracker_UnknownTotal stays silent without a frame count.
func TestProgressTracker_UnknownTotal(t *testing.T) {
	p := newProgressTracker(0, true)
	p.reportIfNeeded(100000)
	assert.Equal(t, 0, p.lastProgress)
}
