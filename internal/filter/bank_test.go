package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-pcm-resampler/internal/testutil"
)

// TestBuild_ArgumentValidation rejects bad qualities and ratios.
func TestBuild_ArgumentValidation(t *testing.T) {
	tests := []struct {
		name     string
		quality  int
		num, den int
	}{
		{"Quality too low", 0, 1, 1},
		{"Quality too high", 11, 1, 1},
		{"Zero numerator", 5, 0, 1},
		{"Zero denominator", 5, 1, 0},
		{"Negative numerator", 5, -2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.quality, tt.num, tt.den)
			assert.Error(t, err)
		})
	}
}

// TestBuild_Deterministic verifies identical inputs produce identical banks.
func TestBuild_Deterministic(t *testing.T) {
	a, err := Build(7, 147, 160)
	require.NoError(t, err)
	b, err := Build(7, 147, 160)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestBuild_LayoutSelection checks the direct/interpolated choice: exact
// per-phase rows up to 16*(oversample+8) phases, the shared oversampled
// prototype beyond that.
func TestBuild_LayoutSelection(t *testing.T) {
	tests := []struct {
		name         string
		quality      int
		num, den     int
		interpolated bool
	}{
		{"Doubling uses direct table", 5, 1, 2, false},
		{"Halving uses direct table", 5, 2, 1, false},
		{"Small denominator stays direct", 7, 3, 16, false},
		{"CD to DAT stays direct", 7, 147, 160, false},
		{"CD to 24k stays direct", 7, 147, 80, false},
		{"Denominator at the bound stays direct", 7, 147, 384, false},
		{"Denominator past the bound interpolates", 7, 147, 385, true},
		{"Prime output rate interpolates", 6, 44100, 48001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank, err := Build(tt.quality, tt.num, tt.den)
			require.NoError(t, err)
			assert.Equal(t, tt.interpolated, bank.Interpolated)
			assert.Equal(t, tt.den, bank.Phases)
			if tt.interpolated {
				assert.Len(t, bank.Coeffs, bank.TapsPerPhase*bank.Oversample+interpTableSlack)
			} else {
				assert.Len(t, bank.Coeffs, bank.TapsPerPhase*tt.den)
			}
		})
	}
}

// TestBuild_DirectPhaseDCGain verifies each direct phase sums to Q15 unity
// within quantization slack.
func TestBuild_DirectPhaseDCGain(t *testing.T) {
	bank, err := Build(5, 1, 2)
	require.NoError(t, err)
	require.False(t, bank.Interpolated)

	for phase := range bank.Phases {
		var sum int
		for j := range bank.TapsPerPhase {
			sum += int(bank.Coeffs[phase*bank.TapsPerPhase+j])
		}
		// Each tap may be off by half a Q15 step after rounding.
		assert.InDelta(t, q15One, sum, float64(bank.TapsPerPhase),
			"phase %d DC gain", phase)
	}
}

// TestBuild_DirectPhaseZeroSymmetric verifies the zero-phase row of a
// direct bank is an even filter. The row spans one extra tap past the
// symmetric support, so the final tap is excluded.
func TestBuild_DirectPhaseZeroSymmetric(t *testing.T) {
	bank, err := Build(5, 1, 2)
	require.NoError(t, err)
	require.False(t, bank.Interpolated)

	row := make([]float64, bank.TapsPerPhase-1)
	for j := range row {
		row[j] = float64(bank.Coeffs[j])
	}
	testutil.AssertSymmetric(t, row, 0.5)
}

// TestBuild_InterpolatedTableSymmetric verifies the oversampled prototype
// is symmetric about its center tap.
func TestBuild_InterpolatedTableSymmetric(t *testing.T) {
	bank, err := Build(7, 147, 1000)
	require.NoError(t, err)
	require.True(t, bank.Interpolated)

	center := InterpGuard + bank.Oversample*(bank.TapsPerPhase/2)
	require.Less(t, center, len(bank.Coeffs))
	assert.Equal(t, bank.Coeffs[center], maxAbsTap(bank.Coeffs), "center tap should dominate")

	span := min(center, len(bank.Coeffs)-1-center)
	for i := 1; i < span; i++ {
		assert.Equal(t, bank.Coeffs[center-i], bank.Coeffs[center+i],
			"asymmetry at offset %d", i)
	}
}

// TestBuild_DownsamplingScalesFilter checks cutoff and length adapt to
// the decimation factor.
func TestBuild_DownsamplingScalesFilter(t *testing.T) {
	up, err := Build(7, 1, 2)
	require.NoError(t, err)
	down, err := Build(7, 2, 1)
	require.NoError(t, err)

	assert.Less(t, down.Cutoff, up.Cutoff, "decimation must lower the cutoff")
	assert.Greater(t, down.TapsPerPhase, up.TapsPerPhase, "decimation must lengthen the filter")
	assert.Zero(t, down.TapsPerPhase%tapAlignment)
}

// TestBuild_ExtremeRatioRejected bounds coefficient table growth.
func TestBuild_ExtremeRatioRejected(t *testing.T) {
	_, err := Build(MaxQuality, 300, 1)
	assert.Error(t, err)
}

func maxAbsTap(coeffs []int16) int16 {
	var best int16
	for _, c := range coeffs {
		if c > best {
			best = c
		}
	}
	return best
}
