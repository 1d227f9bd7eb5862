// Command resample converts raw interleaved s16le PCM between sample
// rates, reading from stdin and writing to stdout.
//
// Usage:
//
//	resample -in-rate 44100 -out-rate 48000 < in.raw > out.raw
//	resample -channels 2 -in-rate 48000 -out-rate 16000 -quality 4 < in.raw > out.raw
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	resampler "github.com/tphakala/go-pcm-resampler"
)

const (
	// readChunkBytes is the stdin read granularity. Chunk size does not
	// affect output, only syscall overhead.
	readChunkBytes = 64 * 1024

	writeBufferBytes = 256 * 1024
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("resample: ")
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	channels := flag.Int("channels", 1, "Number of interleaved channels")
	inRate := flag.Int("in-rate", resampler.RateCD, "Input sample rate in Hz")
	outRate := flag.Int("out-rate", resampler.RateDAT, "Output sample rate in Hz")
	quality := flag.Int("quality", resampler.DefaultQuality, "Quality level 1-10")
	parallel := flag.Bool("parallel", false, "Process channels on separate goroutines")
	verbose := flag.Bool("v", false, "Log configuration to stderr")
	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] < input.raw > output.raw\n\n", os.Args[0])
		flag.PrintDefaults()
		return errors.New("unexpected positional arguments")
	}

	out := bufio.NewWriterSize(os.Stdout, writeBufferBytes)
	w, err := resampler.NewWriter(out, &resampler.Config{
		Channels: *channels,
		InRate:   *inRate,
		OutRate:  *outRate,
		Quality:  *quality,
		Parallel: *parallel,
	})
	if err != nil {
		return err
	}

	if *verbose {
		info := w.Info()
		log.Printf("%d Hz -> %d Hz, %d channels, quality %d",
			info.InRate, info.OutRate, info.Channels, info.Quality)
		log.Printf("filter: %d taps, %d phases, latency %d samples, %.1f KB",
			info.FilterLength, info.Phases, info.Latency, float64(info.MemoryUsage)/1024)
	}

	buf := make([]byte, readChunkBytes)
	var total int64
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
			total += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}

	if *verbose {
		log.Printf("processed %d input bytes", total)
	}
	return nil
}
