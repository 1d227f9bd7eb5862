package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPresetFor verifies the accepted quality range.
func TestPresetFor(t *testing.T) {
	tests := []struct {
		name    string
		quality int
		wantErr bool
	}{
		{"Below range", 0, true},
		{"Minimum", MinQuality, false},
		{"Default-ish middle", 7, false},
		{"Maximum", MaxQuality, false},
		{"Above range", 11, true},
		{"Negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := PresetFor(tt.quality)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, p.BaseLength)
		})
	}
}

// TestValidatePresets checks the shipped table passes its own invariants.
func TestValidatePresets(t *testing.T) {
	require.NoError(t, ValidatePresets())
}

// TestPresets_QualityLadder verifies higher quality buys longer filters
// and passband edges that move toward Nyquist.
func TestPresets_QualityLadder(t *testing.T) {
	for q := MinQuality + 1; q <= MaxQuality; q++ {
		lo, err := PresetFor(q - 1)
		require.NoError(t, err)
		hi, err := PresetFor(q)
		require.NoError(t, err)

		assert.Greater(t, hi.BaseLength, lo.BaseLength, "quality %d", q)
		assert.GreaterOrEqual(t, hi.DownsampleBW, lo.DownsampleBW, "quality %d", q)
		assert.GreaterOrEqual(t, hi.UpsampleBW, lo.UpsampleBW, "quality %d", q)
		assert.GreaterOrEqual(t, hi.Beta, lo.Beta, "quality %d", q)
	}
}
