package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(128)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 128, cap(bb.B))
}

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(4)

	n, err := bb.Write([]byte("ab"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = bb.WriteString("cd")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, bb.WriteByte('e'))
	assert.Equal(t, []byte("abcde"), bb.Bytes())
	assert.Equal(t, 5, bb.Len())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)
	_, _ = bb.WriteString("some data")
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(64, 256)

	bb := p.Get()
	require.NotNil(t, bb)
	_, _ = bb.WriteString("payload")
	p.Put(bb)

	again := p.Get()
	require.NotNil(t, again)
	assert.Equal(t, 0, again.Len(), "pooled buffers must come back empty")
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(8, 16)

	big := NewByteBuffer(1024)
	_, _ = big.WriteString("oversized")
	p.Put(big)

	// The oversized buffer is dropped, so a fresh one (capacity 8) is returned.
	got := p.Get()
	assert.Equal(t, 8, cap(got.B))
}

func TestByteBufferPool_PutNil(t *testing.T) {
	p := NewByteBufferPool(8, 0)
	require.NotPanics(t, func() { p.Put(nil) })
}

func TestFrameBufferPool_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bb := GetFrameBuffer()
				_, _ = bb.WriteString("frame")
				PutFrameBuffer(bb)
			}
		}()
	}
	wg.Wait()
}
