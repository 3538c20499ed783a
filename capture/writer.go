package capture

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/sigframe/compress"
	"github.com/arloliu/sigframe/frame"
	"github.com/arloliu/sigframe/internal/pool"
)

// frameRecord is the JSON shape of one output frame line.
type frameRecord struct {
	Type      string         `json:"type"`
	StartTime float64        `json:"start_time"`
	EndTime   float64        `json:"end_time"`
	Data      map[string]any `json:"data"`
}

// FrameWriter writes frames as JSON lines and keeps a running digest of
// everything written.
//
// Note: FrameWriter is NOT thread-safe.
type FrameWriter struct {
	w      io.Writer
	digest *frame.Digest
}

// NewFrameWriter creates a FrameWriter on w.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w, digest: frame.NewDigest()}
}

// Write encodes f as one line.
func (fw *FrameWriter) Write(f frame.Frame) error {
	bb := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(bb)

	enc := json.NewEncoder(bb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(frameRecord{
		Type:      f.Kind,
		StartTime: f.StartTime,
		EndTime:   f.EndTime,
		Data:      f.Fields,
	}); err != nil {
		return fmt.Errorf("encode %s frame: %w", f.Kind, err)
	}

	if _, err := fw.w.Write(bb.Bytes()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	fw.digest.Add(f)

	return nil
}

// WriteAll writes every frame of fs in order.
func (fw *FrameWriter) WriteAll(fs []frame.Frame) error {
	for _, f := range fs {
		if err := fw.Write(f); err != nil {
			return err
		}
	}

	return nil
}

// Count returns the number of frames written.
func (fw *FrameWriter) Count() int {
	return fw.digest.Count()
}

// Digest returns the digest of the frames written so far.
func (fw *FrameWriter) Digest() *frame.Digest {
	return fw.digest
}

// SaveFile writes data to path, compressed according to its extension.
func SaveFile(path string, data []byte) error {
	codec, ct := compress.ForPath(path)
	out, err := codec.Compress(data)
	if err != nil {
		return fmt.Errorf("compress %s output %s: %w", ct, path, err)
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
