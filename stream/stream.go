// Package stream adapts an HTTP connector's push-style chunk delivery
// into a pull-style response body.
package stream

import (
	"io"
	"sync"
)

// Buffer collects response chunks delivered by a connector and hands them
// to a consumer in delivery order. The connector pushes through Accept
// and CloseSend; the consumer pulls through Next or Read.
//
// A Buffer serves a single exchange: one producer, one consumer, no
// reuse across requests. Next blocks while the stream is open and no
// chunk is buffered, so delivery and consumption may overlap.
type Buffer struct {
	mu       sync.Mutex
	cond     sync.Cond
	chunks   [][]byte
	done     bool
	err      error
	closed   bool
	leftover []byte
}

// NewBuffer returns an empty, open Buffer.
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.cond.L = &b.mu
	return b
}

// Accept appends chunk to the stream. The connector calls it once per
// received chunk, in delivery order. remaining hints how many bytes are
// still expected; zero marks chunk as the final one, negative means
// unknown. The chunk is copied, so the connector may reuse its read
// buffer. Deliveries after end-of-stream or after the consumer closed
// the Buffer are dropped.
func (b *Buffer) Accept(chunk []byte, remaining int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done || b.closed {
		return
	}
	if len(chunk) > 0 {
		c := make([]byte, len(chunk))
		copy(c, chunk)
		b.chunks = append(b.chunks, c)
	}
	if remaining == 0 {
		b.done = true
	}
	b.cond.Signal()
}

// CloseSend marks end-of-stream. A non-nil err records a mid-stream
// transport failure, returned to the consumer once the chunks delivered
// before it are drained. Calls after the stream already ended are no-ops.
func (b *Buffer) CloseSend(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done || b.closed {
		return
	}
	b.done = true
	b.err = err
	b.cond.Signal()
}

// Next returns the next unread chunk in delivery order, blocking until a
// chunk is available or the stream ends. Once every delivered chunk has
// been consumed and the connector has finished, Next returns io.EOF,
// stably across repeated calls. A transport error reported by the
// connector is returned instead of io.EOF, after the chunks delivered
// before it are drained, and is sticky thereafter.
//
// The chunk sequence is single pass and never coalesced; a drained
// Buffer yields nothing further.
func (b *Buffer) Next() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for {
		if len(b.chunks) > 0 {
			chunk := b.chunks[0]
			b.chunks = b.chunks[1:]
			return chunk, nil
		}
		if b.closed || b.done {
			if b.err != nil {
				return nil, b.err
			}
			return nil, io.EOF
		}
		b.cond.Wait()
	}
}

// Read implements io.Reader over the chunk sequence so a Buffer can
// stand in for a response body. Unlike Next, Read may return part of a
// chunk and span chunk boundaries.
func (b *Buffer) Read(p []byte) (int, error) {
	for len(b.leftover) == 0 {
		chunk, err := b.Next()
		if err != nil {
			return 0, err
		}
		b.leftover = chunk
	}

	n := copy(p, b.leftover)
	b.leftover = b.leftover[n:]
	return n, nil
}

// Close abandons the stream from the consumer side. Buffered chunks are
// discarded and later deliveries dropped. Close never fails, making a
// Buffer a valid io.ReadCloser response body.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.chunks = nil
	b.leftover = nil
	b.cond.Broadcast()
	return nil
}
