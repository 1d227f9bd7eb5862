package filter

// Fixed-point representation.
const (
	// q15One is the Q15 fixed-point scale: coefficients are stored as
	// round(value * q15One) saturated to int16.
	q15One = 32768

	maxInt16 = 32767
	minInt16 = -32768
)

// Filter geometry.
const (
	// tapAlignment keeps filter lengths a multiple of 8 so inner loops
	// stay unroll-friendly.
	tapAlignment = 8

	// InterpGuard pads each end of the oversampled sinc table so the
	// 4-point runtime interpolation never indexes out of bounds. Consumers
	// of an interpolated Bank index relative to this offset.
	InterpGuard = 4

	// interpTableSlack is the total extra table length for both guards.
	interpTableSlack = 2 * InterpGuard

	// directPhaseScale and directPhaseSlack bound the direct layout: a
	// bank keeps one fully evaluated row per phase while the reduced
	// denominator is at most 16*(oversample+8). Larger denominators
	// share one oversampled prototype instead.
	directPhaseScale = 16
	directPhaseSlack = 8

	// maxFilterLength bounds the scaled filter length so extreme
	// decimation ratios cannot request unbounded coefficient tables.
	maxFilterLength = 65536
)

// Sinc evaluation.
const (
	// sincZeroThreshold treats |x| below this as the center tap.
	sincZeroThreshold = 1e-6
)
