package fetch

import "bytes"

// Buffer accumulates received chunks in arrival order.
//
// Its length always equals the sum of the chunk lengths written to it.
type Buffer struct {
	buf    bytes.Buffer
	chunks int
}

// Write appends one chunk. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b.chunks++
	return b.buf.Write(p)
}

// Len returns the number of bytes received so far.
func (b *Buffer) Len() int { return b.buf.Len() }

// Chunks returns the number of non-empty chunks received.
func (b *Buffer) Chunks() int { return b.chunks }

// Bytes returns the concatenated content.
func (b *Buffer) Bytes() []byte { return b.buf.Bytes() }
