package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_ArgumentValidation rejects bad construction arguments.
func TestNew_ArgumentValidation(t *testing.T) {
	tests := []struct {
		name            string
		channels        int
		inRate, outRate int
		quality         int
	}{
		{"Zero channels", 0, 44100, 48000, 5},
		{"Negative channels", -1, 44100, 48000, 5},
		{"Zero input rate", 2, 0, 48000, 5},
		{"Zero output rate", 2, 44100, 0, 5},
		{"Quality below range", 2, 44100, 48000, 0},
		{"Quality above range", 2, 44100, 48000, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.channels, tt.inRate, tt.outRate, tt.quality)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParam)
		})
	}
}

// TestEngine_Accessors verifies the reported configuration after New.
func TestEngine_Accessors(t *testing.T) {
	e, err := New(2, 44100, 48000, 5)
	require.NoError(t, err)

	assert.Equal(t, 2, e.Channels())
	assert.Equal(t, 5, e.Quality())

	in, out := e.Rates()
	assert.Equal(t, 44100, in)
	assert.Equal(t, 48000, out)

	num, den := e.RateFraction()
	assert.Equal(t, 147, num)
	assert.Equal(t, 160, den)

	// 160 phases fit the exact per-phase table.
	assert.Equal(t, 160, e.Phases())
	assert.False(t, e.Interpolated())

	assert.Equal(t, e.FilterLength()/2, e.InputLatency())
	assert.Positive(t, e.OutputLatency())
	assert.Positive(t, e.MemoryBytes())
	assert.False(t, e.Primed())
}

// TestEngine_SetRates_InvalidLeavesState checks that a failed rate change
// does not disturb the previous configuration.
func TestEngine_SetRates_InvalidLeavesState(t *testing.T) {
	e, err := New(1, 44100, 48000, 5)
	require.NoError(t, err)

	require.Error(t, e.SetRates(0, 48000))
	require.Error(t, e.SetRates(44100, -1))

	in, out := e.Rates()
	assert.Equal(t, 44100, in)
	assert.Equal(t, 48000, out)
	num, den := e.RateFraction()
	assert.Equal(t, 147, num)
	assert.Equal(t, 160, den)
}

// TestEngine_SetRates_RescalesPhase verifies mid-stream rate switches
// keep processing without error and report the new fraction.
func TestEngine_SetRates_RescalesPhase(t *testing.T) {
	e, err := New(1, 44100, 48000, 5)
	require.NoError(t, err)

	in := make([]int16, 500)
	out := make([]int16, e.OutputCapacity(500))
	_, _, err = e.ProcessInterleaved(in, 500, out, len(out), false)
	require.NoError(t, err)

	require.NoError(t, e.SetRates(44100, 22050))
	num, den := e.RateFraction()
	assert.Equal(t, 2, num)
	assert.Equal(t, 1, den)

	out = make([]int16, e.OutputCapacity(500))
	consumed, _, err := e.ProcessInterleaved(in, 500, out, len(out), false)
	require.NoError(t, err)
	assert.Equal(t, 500, consumed)
}

// TestEngine_SetQuality_MagicSamples shrinks then grows the filter
// mid-stream and verifies the stream keeps flowing with samples carried
// across both changes.
func TestEngine_SetQuality_MagicSamples(t *testing.T) {
	e, err := New(1, 48000, 44100, 8)
	require.NoError(t, err)

	in := make([]int16, 400)
	for i := range in {
		in[i] = int16(1000)
	}
	out := make([]int16, e.OutputCapacity(400))
	_, _, err = e.ProcessInterleaved(in, 400, out, len(out), false)
	require.NoError(t, err)

	longLen := e.FilterLength()
	require.NoError(t, e.SetQuality(3))
	assert.Less(t, e.FilterLength(), longLen)
	assert.Positive(t, e.magicSamples[0], "shrink must bank the history excess")

	out = make([]int16, e.OutputCapacity(400))
	consumed, produced, err := e.ProcessInterleaved(in, 400, out, len(out), false)
	require.NoError(t, err)
	assert.Equal(t, 400, consumed)
	assert.Positive(t, produced)
	assert.Zero(t, e.magicSamples[0])

	require.NoError(t, e.SetQuality(9))
	out = make([]int16, e.OutputCapacity(400))
	consumed, _, err = e.ProcessInterleaved(in, 400, out, len(out), false)
	require.NoError(t, err)
	assert.Equal(t, 400, consumed)
}

// TestEngine_Reset restores the freshly constructed behavior.
func TestEngine_Reset(t *testing.T) {
	e, err := New(1, 32000, 48000, 6)
	require.NoError(t, err)

	in := make([]int16, 300)
	for i := range in {
		in[i] = int16(i*37%4001 - 2000)
	}

	first := make([]int16, e.OutputCapacity(300))
	_, n1, err := e.ProcessInterleaved(in, 300, first, len(first), false)
	require.NoError(t, err)
	require.True(t, e.Primed())

	e.Reset()
	require.False(t, e.Primed())

	second := make([]int16, e.OutputCapacity(300))
	_, n2, err := e.ProcessInterleaved(in, 300, second, len(second), false)
	require.NoError(t, err)

	require.Equal(t, n1, n2)
	assert.Equal(t, first[:n1], second[:n2])
}

// TestEngine_OutputCapacityConsumesAll verifies the capacity bound
// guarantees full input consumption across ratios.
func TestEngine_OutputCapacityConsumesAll(t *testing.T) {
	tests := []struct {
		name            string
		inRate, outRate int
		frames          int
	}{
		{"Upsample 2x", 24000, 48000, 777},
		{"Downsample 2x", 48000, 24000, 777},
		{"CD to DAT", 44100, 48000, 1000},
		{"DAT to CD", 48000, 44100, 1000},
		{"Telephony up", 8000, 44100, 163},
		{"Extreme down", 96000, 8000, 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(1, tt.inRate, tt.outRate, 4)
			require.NoError(t, err)

			in := make([]int16, tt.frames)
			for i := range in {
				in[i] = int16(i % 251)
			}
			out := make([]int16, e.OutputCapacity(tt.frames))
			consumed, produced, err := e.ProcessInterleaved(in, tt.frames, out, len(out), false)
			require.NoError(t, err)
			assert.Equal(t, tt.frames, consumed, "capacity bound must cover full consumption")
			assert.LessOrEqual(t, produced, len(out))
		})
	}
}
