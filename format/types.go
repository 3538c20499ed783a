// Package format names the container formats sigframe reads and writes.
package format

import (
	"path/filepath"
	"strings"
)

type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file extension conventionally used for c, including
// the leading dot, or "" for CompressionNone.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

var extensions = map[string]CompressionType{
	".zst":  CompressionZstd,
	".zstd": CompressionZstd,
	".s2":   CompressionS2,
	".sz":   CompressionS2,
	".lz4":  CompressionLZ4,
}

// CompressionFromPath selects the compression of a file by its extension.
// Unrecognized extensions mean CompressionNone.
func CompressionFromPath(path string) CompressionType {
	if c, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}

	return CompressionNone
}

// TrimCompressionExt strips a recognized compression extension from path, so
// "run.jsonl.zst" yields "run.jsonl".
func TrimCompressionExt(path string) string {
	ext := filepath.Ext(path)
	if _, ok := extensions[strings.ToLower(ext)]; ok {
		return strings.TrimSuffix(path, ext)
	}

	return path
}
