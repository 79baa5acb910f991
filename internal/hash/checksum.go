package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of a decoded block payload.
//
// A zero checksum means "not recorded" in a block header, so the rare payload
// that hashes to zero is stored as 1.
func Checksum(data []byte) uint64 {
	sum := xxhash.Sum64(data)
	if sum == 0 {
		return 1
	}

	return sum
}

// Verify reports whether data matches a recorded checksum. A zero want is
// treated as absent and always verifies.
func Verify(data []byte, want uint64) bool {
	return want == 0 || Checksum(data) == want
}
