// Package compress provides whole-file compression codecs for sigframe
// capture input and frame output.
//
// Files are small enough to be held in memory, so every codec works on a
// complete byte slice:
//
//	type Codec interface {
//	    Compress(data []byte) ([]byte, error)
//	    Decompress(data []byte) ([]byte, error)
//	}
//
// Supported algorithms, selected by file extension through ForPath:
//   - None (no extension match): data passes through unchanged
//   - Zstd (.zst, .zstd): standard zstd frames, readable by the zstd CLI.
//     Built on klauspost/compress by default, or on the cgo valyala/gozstd
//     binding with the "gozstd" build tag.
//   - S2 (.s2, .sz): S2 stream format, readable by s2d
//   - LZ4 (.lz4): LZ4 frame format, readable by the lz4 CLI
//
// # Thread Safety
//
// All codec implementations are stateless values backed by pooled encoders
// and are safe for concurrent use.
package compress
