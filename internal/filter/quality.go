// Package filter designs the fixed-point polyphase filter banks used by
// the resampling engine. A quality level in [1, 10] selects a preset that
// trades filter length (latency, CPU) against stopband attenuation; the
// bank itself is a Kaiser-windowed sinc lowpass quantized to Q15.
package filter

import (
	"fmt"
)

// Quality bounds for the public API.
const (
	MinQuality = 1
	MaxQuality = 10
)

// Preset holds the filter design parameters for one quality level.
type Preset struct {
	// BaseLength is the filter length at a 1:1 ratio, in taps.
	// Scaled up proportionally when decimating.
	BaseLength int

	// Oversample is the sinc table oversampling factor used when the
	// rate denominator is too large for a direct per-phase table.
	Oversample int

	// DownsampleBW and UpsampleBW are the passband edges relative to
	// the limiting Nyquist frequency. Below 1.0 to leave room for the
	// transition band.
	DownsampleBW float64
	UpsampleBW   float64

	// Beta is the Kaiser window β; larger values buy stopband
	// attenuation at the cost of a wider transition band.
	Beta float64
}

// presets indexes quality levels MinQuality..MaxQuality (row 0 = quality 1).
// The ladder follows the classic fixed-point resampler quality map:
// length grows roughly linearly with quality, the window β steps up at
// 3, 5 and 9, and the passband edges tighten toward Nyquist.
var presets = [...]Preset{
	{BaseLength: 16, Oversample: 4, DownsampleBW: 0.850, UpsampleBW: 0.880, Beta: 6},
	{BaseLength: 32, Oversample: 4, DownsampleBW: 0.882, UpsampleBW: 0.910, Beta: 6},
	{BaseLength: 48, Oversample: 8, DownsampleBW: 0.895, UpsampleBW: 0.917, Beta: 8},
	{BaseLength: 64, Oversample: 8, DownsampleBW: 0.921, UpsampleBW: 0.940, Beta: 8},
	{BaseLength: 80, Oversample: 16, DownsampleBW: 0.922, UpsampleBW: 0.940, Beta: 10},
	{BaseLength: 96, Oversample: 16, DownsampleBW: 0.940, UpsampleBW: 0.945, Beta: 10},
	{BaseLength: 128, Oversample: 16, DownsampleBW: 0.950, UpsampleBW: 0.950, Beta: 10},
	{BaseLength: 160, Oversample: 16, DownsampleBW: 0.960, UpsampleBW: 0.960, Beta: 10},
	{BaseLength: 192, Oversample: 32, DownsampleBW: 0.968, UpsampleBW: 0.968, Beta: 12},
	{BaseLength: 256, Oversample: 32, DownsampleBW: 0.975, UpsampleBW: 0.975, Beta: 12},
}

// PresetFor returns the preset for a quality level in [MinQuality, MaxQuality].
func PresetFor(quality int) (Preset, error) {
	if quality < MinQuality || quality > MaxQuality {
		return Preset{}, fmt.Errorf("quality %d out of range [%d, %d]", quality, MinQuality, MaxQuality)
	}
	return presets[quality-MinQuality], nil
}

// ValidatePresets checks the internal consistency of the preset table.
// Run once at process startup via the root package's Ready.
func ValidatePresets() error {
	prevLen := 0
	for i, p := range presets {
		q := i + MinQuality
		if p.BaseLength <= prevLen {
			return fmt.Errorf("quality %d: base length %d not increasing", q, p.BaseLength)
		}
		if p.BaseLength%tapAlignment != 0 {
			return fmt.Errorf("quality %d: base length %d not a multiple of %d", q, p.BaseLength, tapAlignment)
		}
		if p.Oversample&(p.Oversample-1) != 0 {
			return fmt.Errorf("quality %d: oversample %d not a power of two", q, p.Oversample)
		}
		if p.DownsampleBW <= 0 || p.DownsampleBW >= 1 || p.UpsampleBW <= 0 || p.UpsampleBW >= 1 {
			return fmt.Errorf("quality %d: bandwidth outside (0, 1)", q)
		}
		if p.Beta <= 0 {
			return fmt.Errorf("quality %d: non-positive Kaiser beta", q)
		}
		prevLen = p.BaseLength
	}
	return nil
}
