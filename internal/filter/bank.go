package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-pcm-resampler/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

// Bank is an immutable polyphase filter bank for one (quality, num/den)
// combination. It is shared read-only across all channels of an engine
// instance and rebuilt whenever the rates or quality change.
//
// Two layouts exist, chosen by the size of the reduced denominator:
//
//   - Direct: Coeffs holds Phases×TapsPerPhase Q15 taps, one fully
//     evaluated sub-filter per rate phase. Exact coefficients; used
//     whenever the phase count is modest, which covers the common
//     rate pairs.
//   - Interpolated: Coeffs holds an oversampled sinc table
//     (TapsPerPhase×Oversample plus guard taps); the engine derives the
//     sub-filter for an arbitrary phase by 4-point cubic interpolation.
type Bank struct {
	// TapsPerPhase is the filter length applied per output sample.
	TapsPerPhase int

	// Phases is the reduced rate denominator (number of distinct
	// fractional positions an output sample can take).
	Phases int

	// Oversample is the sinc table oversampling factor (interpolated
	// layout only; 0 for direct).
	Oversample int

	// Interpolated selects the oversampled-table layout.
	Interpolated bool

	// Cutoff is the normalized lowpass cutoff actually used, tracking
	// min(inRate, outRate)/2 scaled by the preset bandwidth.
	Cutoff float64

	// Coeffs are the Q15 fixed-point taps. Layout depends on Interpolated.
	Coeffs []int16
}

// Build designs the filter bank for the reduced ratio num/den at the given
// quality level. Deterministic: identical arguments yield identical banks.
func Build(quality, num, den int) (*Bank, error) {
	preset, err := PresetFor(quality)
	if err != nil {
		return nil, err
	}
	if num < 1 || den < 1 {
		return nil, fmt.Errorf("invalid reduced ratio %d/%d", num, den)
	}

	filtLen := preset.BaseLength
	oversample := preset.Oversample
	var cutoff float64

	if num > den {
		// Decimating: the cutoff must track the output Nyquist to stop
		// aliasing, and the filter stretches by the decimation factor.
		cutoff = preset.DownsampleBW * float64(den) / float64(num)
		filtLen = filtLen * num / den
		filtLen = ((filtLen - 1) &^ (tapAlignment - 1)) + tapAlignment
		for factor := 2; factor <= 16; factor *= 2 {
			if factor*den < num {
				oversample >>= 1
			}
		}
		if oversample < 1 {
			oversample = 1
		}
	} else {
		cutoff = preset.UpsampleBW
	}

	if filtLen > maxFilterLength {
		return nil, fmt.Errorf("ratio %d/%d needs %d taps at quality %d (limit %d)",
			num, den, filtLen, quality, maxFilterLength)
	}

	bank := &Bank{
		TapsPerPhase: filtLen,
		Phases:       den,
		Cutoff:       cutoff,
	}

	// One exact row per phase while the phase count stays within the
	// classic bound; only very large denominators fall back to the
	// cubic-interpolated prototype.
	if den <= directPhaseScale*(oversample+directPhaseSlack) {
		bank.Coeffs = buildDirectTable(preset, cutoff, filtLen, den)
	} else {
		bank.Interpolated = true
		bank.Oversample = oversample
		bank.Coeffs = buildInterpolatedTable(preset, cutoff, filtLen, oversample)
	}

	return bank, nil
}

// SizeBytes reports the coefficient storage size.
func (b *Bank) SizeBytes() int64 {
	return int64(len(b.Coeffs)) * 2
}

// buildDirectTable evaluates one windowed-sinc row per phase, normalizes
// each row to unity DC gain, and quantizes to Q15.
func buildDirectTable(preset Preset, cutoff float64, filtLen, den int) []int16 {
	coeffs := make([]int16, den*filtLen)
	row := make([]float64, filtLen)
	halfLen := filtLen / 2
	i0beta := mathutil.BesselI0(preset.Beta)

	for phase := range den {
		for j := range row {
			x := float64(j-halfLen+1) - float64(phase)/float64(den)
			row[j] = sincWindowed(cutoff, x, float64(halfLen), preset.Beta, i0beta)
		}

		// Unity DC gain per phase keeps amplitude and duration exact
		// regardless of where the phase samples the prototype.
		sum := f64.Sum(row)
		if math.Abs(sum) > sincZeroThreshold {
			f64.Scale(row, row, 1.0/sum)
		}

		for j, v := range row {
			coeffs[phase*filtLen+j] = quantizeQ15(v)
		}
	}

	return coeffs
}

// buildInterpolatedTable evaluates the oversampled prototype with guard
// taps on both ends, normalized so the average per-phase DC gain is unity.
func buildInterpolatedTable(preset Preset, cutoff float64, filtLen, oversample int) []int16 {
	tableLen := oversample*filtLen + interpTableSlack
	vals := make([]float64, tableLen)
	halfLen := float64(filtLen / 2)
	i0beta := mathutil.BesselI0(preset.Beta)

	for k := range vals {
		x := float64(k-InterpGuard)/float64(oversample) - halfLen
		vals[k] = sincWindowed(cutoff, x, halfLen, preset.Beta, i0beta)
	}

	// The full table integrates to oversample× the per-phase DC gain.
	sum := f64.Sum(vals)
	if math.Abs(sum) > sincZeroThreshold {
		f64.Scale(vals, vals, float64(oversample)/sum)
	}

	coeffs := make([]int16, tableLen)
	for k, v := range vals {
		coeffs[k] = quantizeQ15(v)
	}
	return coeffs
}

// sincWindowed evaluates the Kaiser-windowed sinc prototype at offset x
// from the filter center, scaled by cutoff so the continuous-time DC gain
// is one. i0beta caches BesselI0(beta).
func sincWindowed(cutoff, x, halfLen, beta, i0beta float64) float64 {
	ax := math.Abs(x)
	if ax < sincZeroThreshold {
		return cutoff
	}
	if ax > halfLen {
		return 0
	}

	arg := math.Pi * x * cutoff
	u := x / halfLen
	window := mathutil.BesselI0(beta*math.Sqrt(1.0-u*u)) / i0beta
	return cutoff * math.Sin(arg) / arg * window
}

// quantizeQ15 rounds to the nearest Q15 step and saturates to int16.
func quantizeQ15(v float64) int16 {
	r := math.Round(v * q15One)
	if r > maxInt16 {
		return maxInt16
	}
	if r < minInt16 {
		return minInt16
	}
	return int16(r)
}
