package frame

import (
	"encoding/binary"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/sigframe/internal/hash"
	"github.com/arloliu/sigframe/internal/pool"
)

// Digest computes a running xxHash64 over a sequence of frames.
//
// Two frame sequences produce the same digest if and only if (barring hash
// collisions) they contain the same frames in the same order, with equal
// kinds, bit-identical times and equal field values. Field map order does not
// matter.
//
// Note: Digest is NOT thread-safe.
type Digest struct {
	h     *xxhash.Digest
	count int
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{h: hash.New()}
}

// Add folds f into the digest.
func (d *Digest) Add(f Frame) {
	bb := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(bb)

	bb.B = appendCanonical(bb.B, f)
	_, _ = d.h.Write(bb.B)
	d.count++
}

// AddAll folds every frame of fs into the digest.
func (d *Digest) AddAll(fs []Frame) {
	for _, f := range fs {
		d.Add(f)
	}
}

// Sum64 returns the current digest value.
func (d *Digest) Sum64() uint64 {
	return d.h.Sum64()
}

// Count returns the number of frames added.
func (d *Digest) Count() int {
	return d.count
}

// String returns the digest as a fixed-width hex string.
func (d *Digest) String() string {
	return fmt.Sprintf("0x%016x", d.Sum64())
}

// Reset empties the digest.
func (d *Digest) Reset() {
	d.h.Reset()
	d.count = 0
}

// Fingerprint returns the xxHash64 of a single frame's canonical encoding.
func Fingerprint(f Frame) uint64 {
	bb := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(bb)

	bb.B = appendCanonical(bb.B, f)

	return hash.Sum(bb.B)
}

// appendCanonical appends a length-prefixed, key-sorted encoding of f.
func appendCanonical(dst []byte, f Frame) []byte {
	dst = appendString(dst, f.Kind)
	dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(f.StartTime))
	dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(f.EndTime))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(f.Fields)))

	for _, k := range slices.Sorted(maps.Keys(f.Fields)) {
		dst = appendString(dst, k)
		dst = appendValue(dst, f.Fields[k])
	}

	return dst
}

func appendString(dst []byte, s string) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s)))
	return append(dst, s...)
}

func appendValue(dst []byte, v any) []byte {
	switch x := v.(type) {
	case string:
		dst = append(dst, 's')
		return appendString(dst, x)
	case float64:
		dst = append(dst, 'f')
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(x))
	case int:
		dst = append(dst, 'i')
		return binary.LittleEndian.AppendUint64(dst, uint64(x))
	case uint8:
		dst = append(dst, 'u')
		return append(dst, x)
	case bool:
		dst = append(dst, 'b')
		return strconv.AppendBool(dst, x)
	default:
		dst = append(dst, '?')
		return appendString(dst, fmt.Sprint(x))
	}
}
