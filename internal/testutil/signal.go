package testutil

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Signal generation constants.
const (
	// DefaultAmplitude leaves 6 dB of headroom below full scale so that
	// filter passband ripple cannot clip the output.
	DefaultAmplitude = 16384

	twoPi = 2 * math.Pi
)

// Sine generates n samples of a sine wave at freq Hz sampled at rate Hz,
// quantized to int16 with the given amplitude.
func Sine(n int, freq, rate float64, amplitude int16) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(math.Round(float64(amplitude) * math.Sin(twoPi*freq*float64(i)/rate)))
	}
	return out
}

// Interleave merges per-channel sample slices into one interleaved slice.
// All channels must have equal length.
func Interleave(channels ...[]int16) []int16 {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	out := make([]int16, frames*len(channels))
	for i := range frames {
		for ch := range channels {
			out[i*len(channels)+ch] = channels[ch][i]
		}
	}
	return out
}

// Deinterleave splits an interleaved slice into per-channel slices.
func Deinterleave(interleaved []int16, numChannels int) [][]int16 {
	frames := len(interleaved) / numChannels
	out := make([][]int16, numChannels)
	for ch := range out {
		out[ch] = make([]int16, frames)
		for i := range frames {
			out[ch][i] = interleaved[i*numChannels+ch]
		}
	}
	return out
}

// RMS computes the root-mean-square level of the samples.
func RMS(s []int16) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		f := float64(v)
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(s)))
}

// BandEnergy computes the total spectral energy of the signal between
// loFreq and hiFreq (Hz) at the given sample rate, using a Hann-windowed
// FFT. Used to compare aliasing rejection between quality levels.
func BandEnergy(s []int16, rate, loFreq, hiFreq float64) float64 {
	n := len(s)
	if n == 0 {
		return 0
	}

	// Hann window to bound spectral leakage from the signal edges.
	windowed := make([]float64, n)
	for i, v := range s {
		w := 0.5 * (1 - math.Cos(twoPi*float64(i)/float64(n-1)))
		windowed[i] = float64(v) * w
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, windowed)

	binWidth := rate / float64(n)
	var energy float64
	for k, c := range coeffs {
		freq := float64(k) * binWidth
		if freq < loFreq || freq > hiFreq {
			continue
		}
		energy += real(c)*real(c) + imag(c)*imag(c)
	}
	return energy
}
