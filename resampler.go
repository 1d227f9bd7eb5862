package resampler

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tphakala/go-pcm-resampler/internal/engine"
	"github.com/tphakala/go-pcm-resampler/internal/filter"
	"github.com/tphakala/go-pcm-resampler/internal/pcm"
)

// Common errors returned by the resampler.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid resampler configuration")

	// ErrUnalignedChunk indicates a byte chunk whose length is not a
	// whole number of interleaved frames.
	ErrUnalignedChunk = errors.New("chunk not aligned to frame size")

	// ErrBusy indicates a call arrived while another call on the same
	// instance was still in progress.
	ErrBusy = errors.New("resampler busy")

	// ErrInternal indicates a broken internal invariant.
	ErrInternal = errors.New("internal resampler error")
)

// Config holds resampling configuration.
type Config struct {
	// Channels is the number of interleaved audio channels.
	Channels int

	// InRate is the sample rate of input audio in Hz.
	InRate int

	// OutRate is the desired output sample rate in Hz.
	OutRate int

	// Quality selects the filter preset, [MinQuality] to [MaxQuality].
	// Zero selects [DefaultQuality].
	Quality int

	// Parallel processes channels on separate goroutines. Worthwhile for
	// high channel counts or long filters; has no effect on mono audio.
	Parallel bool
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}
	if c.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}
	if c.InRate < 1 || c.OutRate < 1 {
		return fmt.Errorf("%w: sample rates must be positive", ErrInvalidConfig)
	}

	ratio := float64(c.OutRate) / float64(c.InRate)
	if ratio < minRatioFactor || ratio > maxRatioFactor {
		return fmt.Errorf("%w: resampling ratio out of range (%v to %v)",
			ErrInvalidConfig, minRatioFactor, maxRatioFactor)
	}

	if c.Quality != 0 && (c.Quality < MinQuality || c.Quality > MaxQuality) {
		return fmt.Errorf("%w: quality must be %d-%d", ErrInvalidConfig, MinQuality, MaxQuality)
	}
	return nil
}

var (
	initOnce sync.Once
	initErr  error
)

func initialize() {
	initOnce.Do(func() {
		initErr = filter.ValidatePresets()
	})
}

// Ready reports whether the package-level filter presets validated
// successfully. It is cheap to call and always returns the same value
// within a process.
func Ready() bool {
	initialize()
	return initErr == nil
}

// Resampler converts interleaved signed 16-bit little-endian PCM between
// two sample rates. Streaming state carries across calls, so a long
// signal split into chunks of any size produces bit-identical output to
// a single call.
//
// A Resampler is not safe for concurrent use: overlapping calls are
// rejected with [ErrBusy] rather than corrupting stream state.
type Resampler struct {
	eng      *engine.Engine
	parallel bool
	busy     atomic.Bool

	// Scratch buffers reused across calls; grown on demand. Returned
	// slices are always fresh allocations, never views of these.
	in  []int16
	out []int16
}

// New creates a resampler with the specified configuration.
func New(config *Config) (*Resampler, error) {
	initialize()
	if initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, initErr)
	}

	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	quality := config.Quality
	if quality == 0 {
		quality = DefaultQuality
	}

	eng, err := engine.New(config.Channels, config.InRate, config.OutRate, quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Resampler{
		eng:      eng,
		parallel: config.Parallel,
	}, nil
}

// acquire claims the instance for the duration of one call.
func (r *Resampler) acquire() error {
	if !r.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (r *Resampler) release() {
	r.busy.Store(false)
}

// ProcessChunk resamples one chunk of interleaved s16le bytes. The chunk
// length must be a whole number of frames (2 bytes x channels). The
// returned slice is freshly allocated and never aliases the input.
//
// An empty chunk is valid and yields an empty result.
func (r *Resampler) ProcessChunk(chunk []byte) ([]byte, error) {
	if err := r.acquire(); err != nil {
		return nil, err
	}
	defer r.release()

	frameBytes := r.eng.Channels() * pcm.BytesPerSample
	if len(chunk)%frameBytes != 0 {
		return nil, fmt.Errorf("%w: %d bytes with %d-byte frames",
			ErrUnalignedChunk, len(chunk), frameBytes)
	}

	r.in = pcm.GrowInt16(r.in, len(chunk)/pcm.BytesPerSample)
	in := pcm.DecodeInt16LE(r.in, chunk)

	produced, err := r.process(in)
	if err != nil {
		return nil, err
	}

	samples := produced * r.eng.Channels()
	return pcm.AppendInt16LE(make([]byte, 0, samples*pcm.BytesPerSample), r.out[:samples]), nil
}

// ProcessInt16 is like [Resampler.ProcessChunk] for decoded samples. The
// input length must be a multiple of the channel count. The returned
// slice is freshly allocated and never aliases the input.
func (r *Resampler) ProcessInt16(in []int16) ([]int16, error) {
	if err := r.acquire(); err != nil {
		return nil, err
	}
	defer r.release()

	if len(in)%r.eng.Channels() != 0 {
		return nil, fmt.Errorf("%w: %d samples with %d channels",
			ErrUnalignedChunk, len(in), r.eng.Channels())
	}

	produced, err := r.process(in)
	if err != nil {
		return nil, err
	}
	return append([]int16(nil), r.out[:produced*r.eng.Channels()]...), nil
}

// process runs the engine over in, leaving the result in r.out.
func (r *Resampler) process(in []int16) (produced int, err error) {
	channels := r.eng.Channels()
	frames := len(in) / channels

	capFrames := r.eng.OutputCapacity(frames)
	r.out = pcm.GrowInt16(r.out, capFrames*channels)

	consumed, produced, err := r.eng.ProcessInterleaved(in, frames, r.out, capFrames, r.parallel)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if consumed != frames {
		// OutputCapacity promises full consumption.
		return 0, fmt.Errorf("%w: consumed %d of %d frames", ErrInternal, consumed, frames)
	}
	return produced, nil
}

// Flush drains the filter tail by pushing one filter length of silence
// through the engine, returning the final output bytes. The stream ends
// after Flush; call [Resampler.Reset] before reusing the instance.
func (r *Resampler) Flush() ([]byte, error) {
	if err := r.acquire(); err != nil {
		return nil, err
	}
	defer r.release()

	channels := r.eng.Channels()
	tail := make([]int16, r.eng.InputLatency()*channels)

	produced, err := r.process(tail)
	if err != nil {
		return nil, err
	}

	samples := produced * channels
	return pcm.AppendInt16LE(make([]byte, 0, samples*pcm.BytesPerSample), r.out[:samples]), nil
}

// Reset clears all streaming state so the instance can process a new
// signal with the same configuration.
func (r *Resampler) Reset() error {
	if err := r.acquire(); err != nil {
		return err
	}
	defer r.release()

	r.eng.Reset()
	return nil
}

// SetRates changes the rate pair mid-stream. Filter history is carried
// across the switch so audio continues without a discontinuity.
func (r *Resampler) SetRates(inRate, outRate int) error {
	if err := r.acquire(); err != nil {
		return err
	}
	defer r.release()

	if inRate >= 1 && outRate >= 1 {
		ratio := float64(outRate) / float64(inRate)
		if ratio < minRatioFactor || ratio > maxRatioFactor {
			return fmt.Errorf("%w: resampling ratio out of range (%v to %v)",
				ErrInvalidConfig, minRatioFactor, maxRatioFactor)
		}
	}
	if err := r.eng.SetRates(inRate, outRate); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SetQuality changes the quality level mid-stream.
func (r *Resampler) SetQuality(quality int) error {
	if err := r.acquire(); err != nil {
		return err
	}
	defer r.release()

	if err := r.eng.SetQuality(quality); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Channels returns the configured channel count.
func (r *Resampler) Channels() int { return r.eng.Channels() }

// Quality returns the current quality level.
func (r *Resampler) Quality() int { return r.eng.Quality() }

// Rates returns the current input and output sample rates in Hz.
func (r *Resampler) Rates() (inRate, outRate int) { return r.eng.Rates() }

// RateFraction returns the resampling ratio reduced to lowest terms.
func (r *Resampler) RateFraction() (num, den int) { return r.eng.RateFraction() }

// InputLatency returns the algorithmic delay in input samples.
func (r *Resampler) InputLatency() int { return r.eng.InputLatency() }

// OutputLatency returns the algorithmic delay in output samples.
func (r *Resampler) OutputLatency() int { return r.eng.OutputLatency() }

// Info describes the active filter configuration.
type Info struct {
	// Channels is the interleaved channel count.
	Channels int

	// InRate and OutRate are the configured rates in Hz.
	InRate  int
	OutRate int

	// Quality is the active quality level.
	Quality int

	// FilterLength is the number of filter taps per output sample.
	FilterLength int

	// Phases is the number of distinct fractional filter positions.
	Phases int

	// Interpolated reports the oversampled-table filter layout, used
	// when the reduced rate denominator is large.
	Interpolated bool

	// Latency is the processing latency in output samples.
	Latency int

	// MemoryUsage is the approximate memory usage in bytes.
	MemoryUsage int64
}

// GetInfo returns information about the active configuration.
func (r *Resampler) GetInfo() Info {
	in, out := r.eng.Rates()
	return Info{
		Channels:     r.eng.Channels(),
		InRate:       in,
		OutRate:      out,
		Quality:      r.eng.Quality(),
		FilterLength: r.eng.FilterLength(),
		Phases:       r.eng.Phases(),
		Interpolated: r.eng.Interpolated(),
		Latency:      r.eng.OutputLatency(),
		MemoryUsage:  r.eng.MemoryBytes(),
	}
}
