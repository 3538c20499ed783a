package compress

// ZstdCompressor reads and writes standard Zstandard frames.
//
// The default build uses the pure-Go klauspost/compress implementation. Build
// with the "gozstd" tag (and cgo enabled) to link the reference C library via
// valyala/gozstd instead. Both produce frames the other can read.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// zstdLevel is the compression level used by both implementations.
const zstdLevel = 3

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
