// Package streamio provides reference codec.ByteStream implementations.
// The codec package treats ByteStream as an out-of-scope collaborator
// (§4.1); these are the concrete ones a caller actually plugs in.
package streamio

import (
	"fmt"
	"io"
)

// MemoryStream is a seekable, growable in-memory byte stream — the
// grounding for Python's io.BytesIO, and also how a non-seekable sink
// (a serial.Port, which cannot Seek) is made to work with the PACKET
// encoder: build the whole frame here, then FlushTo the real device in one
// shot (§4.7).
type MemoryStream struct {
	buf []byte
	pos int
}

// NewMemoryStream returns an empty stream.
func NewMemoryStream() *MemoryStream { return &MemoryStream{} }

// NewMemoryStreamFromBytes returns a stream pre-loaded with b, positioned
// at the start — the usual shape for decode tests.
func NewMemoryStreamFromBytes(b []byte) *MemoryStream {
	buf := make([]byte, len(b))
	copy(buf, b)
	return &MemoryStream{buf: buf}
}

func (m *MemoryStream) Write(p []byte) (int, error) {
	end := m.pos + len(p)
	if end > len(m.buf) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *MemoryStream) Read(n int) ([]byte, error) {
	if m.pos+n > len(m.buf) {
		return nil, fmt.Errorf("streamio: short read, have %d want %d", len(m.buf)-m.pos, n)
	}
	b := m.buf[m.pos : m.pos+n]
	m.pos += n
	return b, nil
}

func (m *MemoryStream) Available() int { return len(m.buf) - m.pos }
func (m *MemoryStream) Tell() int64    { return int64(m.pos) }

func (m *MemoryStream) Seek(pos int64) error {
	if pos < 0 || pos > int64(len(m.buf)) {
		return fmt.Errorf("streamio: seek %d out of range [0,%d]", pos, len(m.buf))
	}
	m.pos = int(pos)
	return nil
}

// Bytes returns the stream's full contents regardless of the current read
// position.
func (m *MemoryStream) Bytes() []byte { return m.buf }

// FlushTo writes the whole buffer to w in one shot and resets the stream
// for reuse.
func (m *MemoryStream) FlushTo(w io.Writer) error {
	if _, err := w.Write(m.buf); err != nil {
		return err
	}
	m.buf = m.buf[:0]
	m.pos = 0
	return nil
}
