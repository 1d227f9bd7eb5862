package resampler

// Quality levels. Higher levels trade CPU and latency for stopband
// attenuation and passband flatness.
const (
	// MinQuality is the fastest, lowest-fidelity level.
	MinQuality = 1

	// MaxQuality is the slowest, highest-fidelity level.
	MaxQuality = 10

	// DefaultQuality is a good compromise for general audio work.
	DefaultQuality = 7
)

// Channel constants
const (
	stereoChannels = 2   // Stereo channel count
	maxChannels    = 256 // Maximum supported channel count
)

// Resampling ratio limits
const (
	minRatioFactor = 1.0 / 256.0 // Minimum resampling ratio (1/256)
	maxRatioFactor = 256.0       // Maximum resampling ratio (256x)
)
