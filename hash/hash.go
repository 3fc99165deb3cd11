// Package hash implements the fast modular hash used across the repository
package hash

// Hash mixes n with the salt s and reduces the result below max.
// For max == 0 the output is 0, for max > 1 the output is less than max.
func Hash(n uint32, s uint32, max uint32) uint32 {
	// mixing stage, mix input with salt using subtraction
	// (could also be addition)
	var m = uint32(n) - uint32(s)

	// hashing stage, use xor shift with prime coefficients
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	// mixing stage 2, mix input with salt using addition
	m += s

	// modular stage
	// to force output in range 0 to max-1 we could do regular modulo
	// however, the faster multiply shift trick by Daniel Lemire is used instead
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// String hashes a string token under salt s into the range 0 to max-1.
// Hashed vocabularies use this to bucket tokens.
func String(t string, s uint32, max uint32) uint32 {
	var n uint32
	for i := 0; i < len(t); i++ {
		n = n*31 + uint32(t[i])
	}
	return Hash(n, s, max)
}
