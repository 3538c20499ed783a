package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// New returns a streaming xxHash64 digest.
func New() *xxhash.Digest {
	return xxhash.New()
}
