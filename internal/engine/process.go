package engine

import (
	"fmt"
	"sync"

	"github.com/tphakala/go-pcm-resampler/internal/filter"
)

// ProcessInterleaved resamples up to inFrames interleaved frames from in
// into out (capacity outFrames), returning the frames actually consumed
// and produced. All channels advance identically, so interleaving is
// preserved. When parallel is true each channel runs on its own
// goroutine; per-channel state and the strided output positions are
// disjoint, so no locking is needed.
//
// in and out must not alias.
func (e *Engine) ProcessInterleaved(in []int16, inFrames int, out []int16, outFrames int, parallel bool) (consumed, produced int, err error) {
	if inFrames < 0 || outFrames < 0 {
		return 0, 0, fmt.Errorf("%w: negative frame count", ErrInvalidParam)
	}
	if len(in) < inFrames*e.channels {
		return 0, 0, fmt.Errorf("%w: input holds %d samples, need %d",
			ErrInvalidParam, len(in), inFrames*e.channels)
	}
	if len(out) < outFrames*e.channels {
		return 0, 0, fmt.Errorf("%w: output holds %d samples, need %d",
			ErrInvalidParam, len(out), outFrames*e.channels)
	}

	if inFrames > 0 {
		e.started = true
	}

	inLens := make([]int, e.channels)
	outLens := make([]int, e.channels)

	if parallel && e.channels > 1 {
		var wg sync.WaitGroup
		for ch := range e.channels {
			wg.Add(1)
			go func(ch int) {
				defer wg.Done()
				inLens[ch], outLens[ch] = e.processChannel(ch, in, inFrames, out, outFrames)
			}(ch)
		}
		wg.Wait()
	} else {
		for ch := range e.channels {
			inLens[ch], outLens[ch] = e.processChannel(ch, in, inFrames, out, outFrames)
		}
	}

	// Every channel shares the rate state, so the counts must agree.
	for ch := 1; ch < e.channels; ch++ {
		if inLens[ch] != inLens[0] || outLens[ch] != outLens[0] {
			return 0, 0, fmt.Errorf("%w: channel %d advanced %d/%d frames, channel 0 advanced %d/%d",
				ErrStateCorrupt, ch, inLens[ch], outLens[ch], inLens[0], outLens[0])
		}
	}
	return inLens[0], outLens[0], nil
}

// processChannel drains magic samples left over from a filter change,
// then streams the channel's input through the staging region in bounded
// slices. Returns the frames consumed and produced for this channel.
func (e *Engine) processChannel(ch int, in []int16, inFrames int, out []int16, outFrames int) (int, int) {
	ilen := inFrames
	olen := outFrames
	stride := e.channels
	memc := e.mem[ch*e.memAllocSize : (ch+1)*e.memAllocSize]
	filtOffs := e.filtLen - 1
	xlen := e.memAllocSize - filtOffs

	if e.magicSamples[ch] != 0 {
		olen -= e.processMagic(ch, out[(outFrames-olen)*stride+ch:], olen)
	}

	for e.magicSamples[ch] == 0 && ilen > 0 && olen > 0 {
		ichunk := min(ilen, xlen)

		base := (inFrames - ilen) * stride
		for j := range ichunk {
			memc[filtOffs+j] = in[base+j*stride+ch]
		}

		consumed, produced := e.processNative(ch, ichunk, out[(outFrames-olen)*stride+ch:], olen)
		ilen -= consumed
		olen -= produced
	}

	return inFrames - ilen, outFrames - olen
}

// processMagic replays samples saved across a filter-length change.
// Returns the output frames produced; leftover magic slides forward in
// the history region for the next call.
func (e *Engine) processMagic(ch int, out []int16, outFrames int) int {
	memc := e.mem[ch*e.memAllocSize : (ch+1)*e.memAllocSize]
	n := e.filtLen

	consumed, produced := e.processNative(ch, e.magicSamples[ch], out, outFrames)
	e.magicSamples[ch] -= consumed
	for i := range e.magicSamples[ch] {
		memc[n-1+i] = memc[n-1+i+consumed]
	}
	return produced
}

// processNative runs the filter over inFrames staged samples, writing at
// most outFrames output samples with the channel stride, then slides the
// consumed portion into the history window. When output space runs out
// before the staged input is exhausted, the unconsumed tail is reported
// back and will be restaged by the caller.
func (e *Engine) processNative(ch, inFrames int, out []int16, outFrames int) (consumed, produced int) {
	memc := e.mem[ch*e.memAllocSize : (ch+1)*e.memAllocSize]
	n := e.filtLen

	if e.bank.Interpolated {
		produced = e.runInterpolated(ch, memc, inFrames, out, outFrames)
	} else {
		produced = e.runDirect(ch, memc, inFrames, out, outFrames)
	}

	consumed = inFrames
	if e.lastSample[ch] < consumed {
		consumed = e.lastSample[ch]
	}
	e.lastSample[ch] -= consumed
	copy(memc[:n-1], memc[consumed:consumed+n-1])
	return consumed, produced
}

// runDirect computes output samples from the per-phase table. Each
// output is a Q15 dot product of one table row against the sliding
// window, rounded and saturated to 16 bits.
func (e *Engine) runDirect(ch int, memc []int16, inFrames int, out []int16, outFrames int) int {
	n := e.filtLen
	stride := e.channels
	lastSample := e.lastSample[ch]
	sampFrac := e.sampFracNum[ch]

	produced := 0
	for produced < outFrames && lastSample < inFrames {
		row := e.bank.Coeffs[sampFrac*n : sampFrac*n+n]
		window := memc[lastSample : lastSample+n]

		var acc int64
		for j, c := range row {
			acc += int64(c) * int64(window[j])
		}
		out[produced*stride] = satQ15(acc)
		produced++

		lastSample += e.intAdvance
		sampFrac += e.fracAdvance
		if sampFrac >= e.denRate {
			sampFrac -= e.denRate
			lastSample++
		}
	}

	e.lastSample[ch] = lastSample
	e.sampFracNum[ch] = sampFrac
	return produced
}

// runInterpolated derives the sub-filter for an arbitrary phase from the
// oversampled prototype. Four partial dot products are accumulated over
// adjacent table columns, then blended with Q15 cubic weights and
// reduced from Q30.
func (e *Engine) runInterpolated(ch int, memc []int16, inFrames int, out []int16, outFrames int) int {
	n := e.filtLen
	ov := e.bank.Oversample
	coeffs := e.bank.Coeffs
	stride := e.channels
	lastSample := e.lastSample[ch]
	sampFrac := e.sampFracNum[ch]

	produced := 0
	for produced < outFrames && lastSample < inFrames {
		window := memc[lastSample : lastSample+n]

		offset := sampFrac * ov / e.denRate
		frac := ((sampFrac * ov) % e.denRate) * q15One / e.denRate

		var accum [4]int64
		for j := range n {
			s := int64(window[j])
			idx := filter.InterpGuard + (j+1)*ov - offset
			accum[0] += s * int64(coeffs[idx-2])
			accum[1] += s * int64(coeffs[idx-1])
			accum[2] += s * int64(coeffs[idx])
			accum[3] += s * int64(coeffs[idx+1])
		}

		w := cubicWeights(frac)
		sum := w[0]*accum[0] + w[1]*accum[1] + w[2]*accum[2] + w[3]*accum[3]
		out[produced*stride] = satQ30(sum)
		produced++

		lastSample += e.intAdvance
		sampFrac += e.fracAdvance
		if sampFrac >= e.denRate {
			sampFrac -= e.denRate
			lastSample++
		}
	}

	e.lastSample[ch] = lastSample
	e.sampFracNum[ch] = sampFrac
	return produced
}

// cubicWeights returns the Q15 weights for blending four adjacent
// oversampled-table columns at fractional position frac (Q15). The
// weights sum to exactly q15One so DC gain is preserved.
func cubicWeights(frac int) [4]int64 {
	x := int64(frac)
	x2 := (x * x) >> q15Shift
	x3 := (x2 * x) >> q15Shift

	w0 := (oneSixthQ15 * (x3 - x)) >> q15Shift
	w1 := x + ((x2 - x3) >> 1)
	w3 := (oneHalfQ15*x2 - oneThirdQ15*x - oneSixthQ15*x3) >> q15Shift
	w2 := q15One - w0 - w1 - w3
	return [4]int64{w0, w1, w2, w3}
}

// satQ15 rounds a Q15 accumulator to sample scale with saturation.
func satQ15(acc int64) int16 {
	v := (acc + q15Round) >> q15Shift
	return clampSample(v)
}

// satQ30 rounds a Q30 accumulator to sample scale with saturation.
func satQ30(acc int64) int16 {
	v := (acc + q30Round) >> q30Shift
	return clampSample(v)
}

func clampSample(v int64) int16 {
	if v > maxSample {
		return maxSample
	}
	if v < minSample {
		return minSample
	}
	return int16(v)
}
