package engine

// Fixed-point arithmetic constants.
const (
	// q15One is the Q15 unity scale shared with the filter bank.
	q15One = 32768

	// q15Shift converts a Q15 product back to sample scale.
	q15Shift = 15
	// q15Round is added before the final shift for round-to-nearest.
	q15Round = 1 << (q15Shift - 1)

	// q30Shift converts the interpolated-mode Q30 accumulator to sample scale.
	q30Shift = 30
	q30Round = 1 << (q30Shift - 1)

	maxSample = 32767
	minSample = -32768
)

// Cubic interpolation coefficients in Q15 (1/3 and 1/6).
const (
	oneThirdQ15 = 10923
	oneSixthQ15 = 5461
	oneHalfQ15  = 16384
)

// stagingFrames is the per-channel staging region appended to the filter
// history; input is copied through it in chunks of at most this many
// frames, so arbitrarily large chunks process in bounded memory.
const stagingFrames = 160
