// Package engine implements the fixed-point polyphase resampling core:
// per-channel filter history, fractional phase tracking across chunk
// boundaries, and the Q15 inner loops that produce saturated 16-bit
// output. One Engine serves one logical audio stream; instances share
// nothing and may run concurrently with each other.
package engine

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-pcm-resampler/internal/filter"
	"github.com/tphakala/go-pcm-resampler/internal/mathutil"
)

// Sentinel errors. ErrInvalidParam covers construction and rate-change
// arguments; ErrStateCorrupt signals an internal invariant violation and
// is never expected under correct usage.
var (
	ErrInvalidParam = errors.New("invalid engine parameter")
	ErrStateCorrupt = errors.New("engine state corrupt")
)

// Engine resamples interleaved 16-bit PCM between two sample rates.
//
// Per-channel streaming state (history, fractional phase, magic samples)
// lives in flat slices indexed by channel so an interleaved chunk can be
// processed with channel strides and without per-call allocation. The
// filter bank is shared read-only across channels and rebuilt on rate or
// quality changes; history survives those changes so mid-stream switches
// do not glitch channel alignment.
type Engine struct {
	channels int
	quality  int

	inRate  int
	outRate int
	numRate int // reduced inRate / gcd
	denRate int // reduced outRate / gcd

	bank         *filter.Bank
	filtLen      int
	memAllocSize int
	intAdvance   int
	fracAdvance  int

	// Per-channel state, one entry per channel.
	lastSample   []int
	sampFracNum  []int
	magicSamples []int

	// mem is the flat history+staging slab: channel ch owns
	// mem[ch*memAllocSize : (ch+1)*memAllocSize], of which the first
	// filtLen-1 samples are trailing history.
	mem []int16

	// started flips on the first processed sample; before that the
	// engine is Uninitialized and its (zeroed) history acts as the
	// implicit silence pre-pad.
	started bool
}

// New creates an engine for the given channel count, rates and quality
// level. Rates need not be reduced; the gcd is taken internally.
func New(channels, inRate, outRate, quality int) (*Engine, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels must be >= 1, got %d", ErrInvalidParam, channels)
	}

	e := &Engine{
		channels:     channels,
		quality:      -1,
		lastSample:   make([]int, channels),
		sampFracNum:  make([]int, channels),
		magicSamples: make([]int, channels),
	}

	if err := e.SetQuality(quality); err != nil {
		return nil, err
	}
	if err := e.SetRates(inRate, outRate); err != nil {
		return nil, err
	}
	return e, nil
}

// SetQuality switches the quality level, rebuilding the filter bank while
// preserving stream continuity. No-op when the level is unchanged.
func (e *Engine) SetQuality(quality int) error {
	if quality < filter.MinQuality || quality > filter.MaxQuality {
		return fmt.Errorf("%w: quality %d out of range [%d, %d]",
			ErrInvalidParam, quality, filter.MinQuality, filter.MaxQuality)
	}
	if quality == e.quality {
		return nil
	}

	old := e.quality
	e.quality = quality
	if e.inRate == 0 {
		// Construction path; SetRates will build the first bank.
		return nil
	}
	if err := e.updateFilter(); err != nil {
		e.quality = old
		return err
	}
	return nil
}

// SetRates changes the input/output rate pair mid-stream. The fractional
// phase is rescaled to the new denominator and history is preserved, so
// channels stay aligned across the switch. Fails without mutating state
// when the arguments are invalid.
func (e *Engine) SetRates(inRate, outRate int) error {
	if inRate < 1 || outRate < 1 {
		return fmt.Errorf("%w: rates must be >= 1, got %d/%d", ErrInvalidParam, inRate, outRate)
	}
	if inRate == e.inRate && outRate == e.outRate {
		return nil
	}

	oldIn, oldOut := e.inRate, e.outRate
	oldNum, oldDen := e.numRate, e.denRate

	g := mathutil.Gcd(inRate, outRate)
	e.inRate = inRate
	e.outRate = outRate
	e.numRate = inRate / g
	e.denRate = outRate / g

	if err := e.updateFilter(); err != nil {
		e.inRate, e.outRate = oldIn, oldOut
		e.numRate, e.denRate = oldNum, oldDen
		return err
	}

	// Carry the fractional position into the new denominator.
	if oldDen > 0 {
		for ch := range e.sampFracNum {
			e.sampFracNum[ch] = e.sampFracNum[ch] * e.denRate / oldDen
			if e.sampFracNum[ch] >= e.denRate {
				e.sampFracNum[ch] = e.denRate - 1
			}
		}
	}
	return nil
}

// Reset returns the engine to the Uninitialized state: zero history,
// zero phase, as if freshly constructed with the same configuration.
func (e *Engine) Reset() {
	for ch := range e.lastSample {
		e.lastSample[ch] = 0
		e.sampFracNum[ch] = 0
		e.magicSamples[ch] = 0
	}
	for i := range e.mem {
		e.mem[i] = 0
	}
	e.started = false
}

// Primed reports whether any samples have been processed since
// construction or the last Reset.
func (e *Engine) Primed() bool { return e.started }

// Channels returns the fixed channel count.
func (e *Engine) Channels() int { return e.channels }

// Quality returns the current quality level.
func (e *Engine) Quality() int { return e.quality }

// Rates returns the current input and output rates in Hz.
func (e *Engine) Rates() (inRate, outRate int) { return e.inRate, e.outRate }

// RateFraction returns the gcd-reduced rate ratio numerator/denominator.
func (e *Engine) RateFraction() (num, den int) { return e.numRate, e.denRate }

// FilterLength returns the filter taps applied per output sample.
func (e *Engine) FilterLength() int { return e.filtLen }

// Phases returns the number of distinct fractional positions in the bank.
func (e *Engine) Phases() int { return e.bank.Phases }

// Interpolated reports whether the bank uses the oversampled-table layout.
func (e *Engine) Interpolated() bool { return e.bank.Interpolated }

// InputLatency returns the algorithmic delay in input samples.
func (e *Engine) InputLatency() int { return e.filtLen / 2 }

// OutputLatency returns the algorithmic delay in output samples.
func (e *Engine) OutputLatency() int {
	return ((e.filtLen/2)*e.denRate + e.numRate/2) / e.numRate
}

// MemoryBytes estimates the engine's working-set size.
func (e *Engine) MemoryBytes() int64 {
	return int64(len(e.mem))*2 + e.bank.SizeBytes()
}

// OutputCapacity returns an upper bound on the output frames a call with
// inFrames new input frames can produce, including any pending magic
// samples. Callers sizing output to this bound are guaranteed full input
// consumption.
func (e *Engine) OutputCapacity(inFrames int) int {
	magicMax := 0
	for _, m := range e.magicSamples {
		if m > magicMax {
			magicMax = m
		}
	}
	total := int64(inFrames + magicMax)
	return int((total*int64(e.denRate)+int64(e.numRate)-1)/int64(e.numRate)) + 1
}

// updateFilter rebuilds the bank for the current quality and reduced
// ratio, then reshapes the per-channel history so the stream continues
// seamlessly. When the filter shrinks, history that no longer fits the
// lookback window becomes "magic" samples replayed on the next call;
// when it grows, pending magic samples are folded back in first.
func (e *Engine) updateFilter() error {
	bank, err := filter.Build(e.quality, e.numRate, e.denRate)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}

	oldLength := e.filtLen
	e.bank = bank
	e.filtLen = bank.TapsPerPhase
	e.intAdvance = e.numRate / e.denRate
	e.fracAdvance = e.numRate % e.denRate

	switch {
	case e.mem == nil:
		e.memAllocSize = e.filtLen - 1 + stagingFrames
		e.mem = make([]int16, e.channels*e.memAllocSize)

	case !e.started:
		// Nothing streamed yet: just make room and keep the silence pad.
		if e.filtLen-1+stagingFrames > e.memAllocSize {
			e.memAllocSize = e.filtLen - 1 + stagingFrames
			e.mem = make([]int16, e.channels*e.memAllocSize)
		} else {
			for i := range e.mem {
				e.mem[i] = 0
			}
		}

	case e.filtLen > oldLength:
		e.growHistory(oldLength)

	case e.filtLen < oldLength:
		e.shrinkHistory(oldLength)
	}

	return nil
}

// growHistory right-aligns each channel's history inside the longer
// lookback window, reabsorbing pending magic samples first.
func (e *Engine) growHistory(oldLength int) {
	oldAlloc := e.memAllocSize
	newAlloc := e.filtLen - 1 + stagingFrames
	if newAlloc < oldAlloc {
		newAlloc = oldAlloc
	}
	if newAlloc > oldAlloc {
		newMem := make([]int16, e.channels*newAlloc)
		for ch := range e.channels {
			copy(newMem[ch*newAlloc:ch*newAlloc+oldAlloc], e.mem[ch*oldAlloc:(ch+1)*oldAlloc])
		}
		e.mem = newMem
		e.memAllocSize = newAlloc
	}

	for ch := range e.channels {
		memc := e.mem[ch*e.memAllocSize : (ch+1)*e.memAllocSize]

		// Fold pending magic samples back into the history window.
		olen := oldLength
		if e.magicSamples[ch] != 0 {
			magic := e.magicSamples[ch]
			olen = oldLength + 2*magic
			for j := oldLength - 2 + magic; j >= 0; j-- {
				memc[j+magic] = memc[j]
			}
			for j := range magic {
				memc[j] = 0
			}
			e.magicSamples[ch] = 0
		}

		if e.filtLen > olen {
			// Right-align and zero-pad the leading edge.
			for j := 0; j < olen-1; j++ {
				memc[e.filtLen-2-j] = memc[olen-2-j]
			}
			for j := olen - 1; j < e.filtLen-1; j++ {
				memc[e.filtLen-2-j] = 0
			}
			e.lastSample[ch] += (e.filtLen - olen) / 2
		} else {
			// The augmented history overshoots the new window: the
			// excess becomes magic samples again.
			e.magicSamples[ch] = (olen - e.filtLen) / 2
			for j := 0; j < e.filtLen-1+e.magicSamples[ch]; j++ {
				memc[j] = memc[j+e.magicSamples[ch]]
			}
		}
	}
}

// shrinkHistory converts the history excess over the shorter lookback
// window into magic samples consumed on the next call.
func (e *Engine) shrinkHistory(oldLength int) {
	for ch := range e.channels {
		memc := e.mem[ch*e.memAllocSize : (ch+1)*e.memAllocSize]
		oldMagic := e.magicSamples[ch]
		e.magicSamples[ch] = (oldLength - e.filtLen) / 2

		for j := 0; j < e.filtLen-1+e.magicSamples[ch]+oldMagic; j++ {
			memc[j] = memc[j+e.magicSamples[ch]]
		}
		e.magicSamples[ch] += oldMagic
	}
}
