package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Rounding offsets for narrowing 24/32-bit samples to 16 bits.
	round24to16 = 1 << 7
	round32to16 = 1 << 15

	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	wavFormatPCM = 1
)

// wavInput wraps a WAV decoder and converts its samples to int16.
type wavInput struct {
	file        *os.File
	decoder     *wav.Decoder
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
	buf         *audio.IntBuffer
}

// openWAVInput opens and validates a WAV file.
func openWAVInput(path string, verbose bool) (*wavInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		_ = file.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		_ = file.Close()
		return nil, fmt.Errorf("unsupported bit depth %d in %s", bitDepth, path)
	}

	if verbose {
		log.Printf("input format: %d Hz, %d channels, %d-bit",
			format.SampleRate, format.NumChannels, bitDepth)
	}

	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalFrames := int64(duration.Seconds() * float64(format.SampleRate))

	return &wavInput{
		file:        file,
		decoder:     decoder,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    bitDepth,
		totalFrames: totalFrames,
	}, nil
}

// ReadSamples fills dst with decoded samples narrowed to int16,
// returning the count filled. A zero count signals end of file.
func (w *wavInput) ReadSamples(dst []int16) (int, error) {
	if w.buf == nil || len(w.buf.Data) < len(dst) {
		w.buf = &audio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: w.decoder.Format(),
		}
	}
	w.buf.Data = w.buf.Data[:len(dst)]

	n, err := w.decoder.PCMBuffer(w.buf)
	if err != nil {
		return 0, fmt.Errorf("failed to decode samples: %w", err)
	}
	for i := range n {
		dst[i] = narrowSample(w.buf.Data[i], w.bitDepth)
	}
	return n, nil
}

// Close closes the input file.
func (w *wavInput) Close() error {
	return w.file.Close()
}

// narrowSample converts a decoded sample at the given bit depth to
// int16, rounding to nearest and saturating.
func narrowSample(v, bitDepth int) int16 {
	switch bitDepth {
	case bitsPerSample24:
		v = (v + round24to16) >> 8
	case bitsPerSample32:
		v = (v + round32to16) >> 16
	}
	return clampInt16(v)
}

func clampInt16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// wavOutput writes 16-bit PCM through a WAV encoder.
type wavOutput struct {
	path string
	file *os.File
	enc  *wav.Encoder
	buf  *audio.IntBuffer
}

// createWAVOutput creates the output file and encoder.
func createWAVOutput(path string, sampleRate, channels int) (*wavOutput, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(file, sampleRate, bitsPerSample16, channels, wavFormatPCM)
	return &wavOutput{
		path: path,
		file: file,
		enc:  enc,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitsPerSample16,
		},
	}, nil
}

// WriteSamples encodes one block of interleaved samples.
func (w *wavOutput) WriteSamples(samples []int16) error {
	if len(samples) == 0 {
		return nil
	}
	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = int(s)
	}
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutput) Close() error {
	if err := w.enc.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return w.file.Close()
}

// Discard abandons a partially written file.
func (w *wavOutput) Discard() error {
	_ = w.file.Close()
	return os.Remove(w.path)
}

// progressTracker reports decoding progress at fixed thresholds.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	verbose      bool
}

func newProgressTracker(totalFrames int64, verbose bool) *progressTracker {
	return &progressTracker{totalFrames: totalFrames, verbose: verbose}
}

func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if !p.verbose || p.totalFrames == 0 {
		return
	}
	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("progress: %d%%", progress)
		p.lastProgress = progress
	}
}
