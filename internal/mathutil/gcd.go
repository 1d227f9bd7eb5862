package mathutil

// Gcd returns the greatest common divisor of a and b using Euclid's
// algorithm. Both arguments must be positive; the result is used to
// reduce sample-rate pairs to their smallest rational ratio.
func Gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
