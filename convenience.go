package resampler

// Common sample rates for convenience functions.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes88 is the high-resolution 2x CD sample rate.
	RateHiRes88 = 88200

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000

	// RateHiRes192 is the very high resolution 4x DAT sample rate.
	RateHiRes192 = 192000

	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000

	// RateSpeech is the speech recognition common sample rate.
	RateSpeech = 22050
)

// NewMono creates a single-channel resampler with the given quality.
func NewMono(inRate, outRate, quality int) (*Resampler, error) {
	return New(&Config{
		Channels: 1,
		InRate:   inRate,
		OutRate:  outRate,
		Quality:  quality,
	})
}

// NewStereo creates a stereo resampler with the given quality.
func NewStereo(inRate, outRate, quality int) (*Resampler, error) {
	return New(&Config{
		Channels: stereoChannels,
		InRate:   inRate,
		OutRate:  outRate,
		Quality:  quality,
	})
}

// ResampleBuffer is a one-shot conversion of a complete interleaved
// s16le byte buffer, including the flushed filter tail.
func ResampleBuffer(in []byte, channels, inRate, outRate, quality int) ([]byte, error) {
	r, err := New(&Config{
		Channels: channels,
		InRate:   inRate,
		OutRate:  outRate,
		Quality:  quality,
	})
	if err != nil {
		return nil, err
	}

	body, err := r.ProcessChunk(in)
	if err != nil {
		return nil, err
	}

	tail, err := r.Flush()
	if err != nil {
		return nil, err
	}
	return append(body, tail...), nil
}

// ResampleInt16 is [ResampleBuffer] for decoded samples.
func ResampleInt16(in []int16, channels, inRate, outRate, quality int) ([]int16, error) {
	r, err := New(&Config{
		Channels: channels,
		InRate:   inRate,
		OutRate:  outRate,
		Quality:  quality,
	})
	if err != nil {
		return nil, err
	}

	body, err := r.ProcessInt16(in)
	if err != nil {
		return nil, err
	}

	tailFrames := r.InputLatency() * channels
	tail, err := r.ProcessInt16(make([]int16, tailFrames))
	if err != nil {
		return nil, err
	}
	return append(body, tail...), nil
}
