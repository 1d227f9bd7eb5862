package resampler

import (
	"fmt"
	"io"
)

// Writer adapts a [Resampler] to the io.Writer interface: s16le bytes
// written to it are resampled and forwarded to the underlying writer.
// Writes of any length are accepted; bytes that do not complete a frame
// are held until the next write. Close flushes the filter tail.
type Writer struct {
	r       *Resampler
	w       io.Writer
	pending []byte
	closed  bool
}

// NewWriter creates a streaming writer that resamples into w.
func NewWriter(w io.Writer, config *Config) (*Writer, error) {
	r, err := New(config)
	if err != nil {
		return nil, err
	}
	return &Writer{r: r, w: w}, nil
}

// Info returns information about the underlying resampler.
func (sw *Writer) Info() Info { return sw.r.GetInfo() }

// Write resamples p and forwards the result. It always consumes all of p
// on success, holding any trailing partial frame for the next call.
func (sw *Writer) Write(p []byte) (int, error) {
	if sw.closed {
		return 0, fmt.Errorf("%w: writer is closed", ErrInvalidConfig)
	}

	frameBytes := sw.r.Channels() * 2
	sw.pending = append(sw.pending, p...)

	aligned := len(sw.pending) - len(sw.pending)%frameBytes
	if aligned == 0 {
		return len(p), nil
	}

	out, err := sw.r.ProcessChunk(sw.pending[:aligned])
	if err != nil {
		// Nothing was consumed; drop p so a retried Write cannot feed
		// these bytes into the engine twice.
		sw.pending = sw.pending[:len(sw.pending)-len(p)]
		return 0, err
	}
	sw.pending = sw.pending[:copy(sw.pending, sw.pending[aligned:])]

	if len(out) > 0 {
		if _, err := sw.w.Write(out); err != nil {
			// The engine already consumed these frames, so they count
			// as written even though the sink rejected the result.
			return len(p), err
		}
	}
	return len(p), nil
}

// Close flushes the filter tail to the underlying writer. Trailing bytes
// that never completed a frame are discarded. Close does not close the
// underlying writer.
func (sw *Writer) Close() error {
	if sw.closed {
		return nil
	}
	sw.closed = true
	sw.pending = nil

	out, err := sw.r.Flush()
	if err != nil {
		return err
	}
	if len(out) > 0 {
		if _, err := sw.w.Write(out); err != nil {
			return err
		}
	}
	return nil
}
