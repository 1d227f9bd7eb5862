// Command resample-wav resamples 16-bit PCM WAV files to a target
// sample rate.
//
// Usage:
//
//	resample-wav -rate 48000 input.wav output.wav
//	resample-wav -rate 16000 -quality 4 speech.wav speech_16k.wav
//	resample-wav -rate 48000 -parallel music.wav music_48k.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	resampler "github.com/tphakala/go-pcm-resampler"
)

const (
	// chunkFrames is the number of frames read per iteration. Chunk size
	// does not affect the output, only I/O overhead.
	chunkFrames = 65536

	minRequiredArgs = 2
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("resample-wav: ")
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rate := flag.Int("rate", resampler.RateDAT, "Target sample rate in Hz")
	quality := flag.Int("quality", resampler.DefaultQuality, "Quality level 1-10")
	parallel := flag.Bool("parallel", false, "Process channels on separate goroutines")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -rate 48000 input.wav output.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -rate 16000 -quality 4 speech.wav speech_16k.wav\n", os.Args[0])
		return errors.New("insufficient arguments")
	}
	inputPath, outputPath := args[0], args[1]

	start := time.Now()
	stats, err := resampleWAV(inputPath, outputPath, *rate, *quality, *parallel, *verbose)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Resampled %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz -> %d Hz (%d channels, 16-bit)\n",
		stats.inputRate, stats.outputRate, stats.channels)
	fmt.Printf("  %d frames -> %d frames\n", stats.inputFrames, stats.outputFrames)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.inputFrames)/float64(stats.inputRate)/elapsed.Seconds())
	return nil
}

type resampleStats struct {
	inputRate    int
	outputRate   int
	channels     int
	inputFrames  int64
	outputFrames int64
}

func resampleWAV(inputPath, outputPath string, targetRate, quality int, parallel, verbose bool) (*resampleStats, error) {
	in, err := openWAVInput(inputPath, verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	r, err := resampler.New(&resampler.Config{
		Channels: in.channels,
		InRate:   in.rate,
		OutRate:  targetRate,
		Quality:  quality,
		Parallel: parallel,
	})
	if err != nil {
		return nil, err
	}

	if verbose {
		info := r.GetInfo()
		log.Printf("filter: %d taps, %d phases, latency %d samples, %.1f KB",
			info.FilterLength, info.Phases, info.Latency, float64(info.MemoryUsage)/1024)
	}

	out, err := createWAVOutput(outputPath, targetRate, in.channels)
	if err != nil {
		return nil, err
	}

	stats := &resampleStats{
		inputRate:  in.rate,
		outputRate: targetRate,
		channels:   in.channels,
	}

	progress := newProgressTracker(in.totalFrames, verbose)
	samples := make([]int16, chunkFrames*in.channels)
	for {
		n, err := in.ReadSamples(samples)
		if err != nil {
			_ = out.Discard()
			return nil, err
		}
		if n == 0 {
			break
		}

		resampled, err := r.ProcessInt16(samples[:n])
		if err != nil {
			_ = out.Discard()
			return nil, err
		}
		if err := out.WriteSamples(resampled); err != nil {
			_ = out.Discard()
			return nil, err
		}

		stats.inputFrames += int64(n / in.channels)
		stats.outputFrames += int64(len(resampled) / in.channels)
		progress.reportIfNeeded(stats.inputFrames)
	}

	// Drain the filter tail so the file ends at the true signal end.
	tail, err := r.ProcessInt16(make([]int16, r.InputLatency()*in.channels))
	if err != nil {
		_ = out.Discard()
		return nil, err
	}
	if err := out.WriteSamples(tail); err != nil {
		_ = out.Discard()
		return nil, err
	}
	stats.outputFrames += int64(len(tail) / in.channels)

	if err := out.Close(); err != nil {
		return nil, err
	}
	return stats, nil
}
