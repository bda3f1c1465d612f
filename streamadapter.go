package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ByteStream is the underlying byte-stream collaborator the codec borrows
// for the duration of one encode call or one decode sequence. It is out of
// scope for this spec — see package streamio for reference
// implementations — and deliberately narrow: Read must never block waiting
// for data that is not yet Available.
type ByteStream interface {
	Write(p []byte) (int, error)
	// Read returns exactly n bytes. Callers only call this after confirming
	// Available() >= n.
	Read(n int) ([]byte, error)
	// Available reports how many bytes can currently be read without
	// blocking.
	Available() int
	Tell() int64
	Seek(pos int64) error
}

// StreamAdapter is responsible only for format translation: fixed-width
// packed reads/writes in network byte order, an Available predicate, an
// absolute seek, and a per-decode maximum-read cap (§4.1). It never
// interprets field semantics.
type StreamAdapter struct {
	stream  ByteStream
	maxSize int // 0 means unlimited
}

// NewStreamAdapter wraps a ByteStream for use by the codec.
func NewStreamAdapter(stream ByteStream) *StreamAdapter {
	return &StreamAdapter{stream: stream}
}

// SetMaxSize caps any single UnpackStep request at n bytes. It is set once
// per decoded top-level packet, right after the frame length is locked, to
// bound reads when framing fields are corrupt but length-consistent.
func (a *StreamAdapter) SetMaxSize(n int) { a.maxSize = n }

// Available reports how many bytes can currently be read without blocking.
func (a *StreamAdapter) Available() int { return a.stream.Available() }

// Tell reports the current stream position.
func (a *StreamAdapter) Tell() int64 { return a.stream.Tell() }

// Seek repositions the stream to an absolute offset.
func (a *StreamAdapter) Seek(pos int64) error {
	if err := a.stream.Seek(pos); err != nil {
		return streamIOError("seek", err)
	}
	return nil
}

// Read returns exactly n already-available bytes.
func (a *StreamAdapter) Read(n int) ([]byte, error) {
	b, err := a.stream.Read(n)
	if err != nil {
		return nil, streamIOError("read", err)
	}
	return b, nil
}

// Pack writes b to the stream in one shot. There are no partial writes: a
// short underlying write is itself a StreamIOError.
func (a *StreamAdapter) Pack(b []byte) error {
	n, err := a.stream.Write(b)
	if err != nil {
		return streamIOError("write", err)
	}
	if n != len(b) {
		return streamIOError("write", fmt.Errorf("short write: wrote %d of %d bytes", n, len(b)))
	}
	return nil
}

// PackUint writes v as a big-endian unsigned integer of the given bit width
// (8, 16, 32, or 64).
func (a *StreamAdapter) PackUint(bits int, v uint64) error {
	buf := make([]byte, bits/8)
	switch bits {
	case 8:
		buf[0] = byte(v)
	case 16:
		binary.BigEndian.PutUint16(buf, uint16(v))
	case 32:
		binary.BigEndian.PutUint32(buf, uint32(v))
	case 64:
		binary.BigEndian.PutUint64(buf, v)
	default:
		return newEncodingError("unsupported uint width %d", bits)
	}
	return a.Pack(buf)
}

// PackInt writes v as a big-endian two's-complement integer of the given
// bit width.
func (a *StreamAdapter) PackInt(bits int, v int64) error {
	return a.PackUint(bits, uint64(v))
}

// PackFloat32 writes v as a big-endian IEEE 754 single-precision float.
func (a *StreamAdapter) PackFloat32(v float32) error {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, math.Float32bits(v))
	return a.Pack(buf)
}

// PackFloat64 writes v as a big-endian IEEE 754 double-precision float.
func (a *StreamAdapter) PackFloat64(v float64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(v))
	return a.Pack(buf)
}

// PackBool writes v as a single 0x00/0x01 byte.
func (a *StreamAdapter) PackBool(v bool) error {
	if v {
		return a.Pack([]byte{0x01})
	}
	return a.Pack([]byte{0x00})
}

// wireFormat describes one fixed-size, resumable unpack step: its byte
// width and how to decode a raw chunk of exactly that width.
type wireFormat struct {
	size   int
	decode func([]byte) any
}

func fmtUint(bits int) wireFormat {
	size := bits / 8
	return wireFormat{size: size, decode: func(b []byte) any {
		switch bits {
		case 8:
			return uint64(b[0])
		case 16:
			return uint64(binary.BigEndian.Uint16(b))
		case 32:
			return uint64(binary.BigEndian.Uint32(b))
		default:
			return binary.BigEndian.Uint64(b)
		}
	}}
}

func fmtInt(bits int) wireFormat {
	size := bits / 8
	return wireFormat{size: size, decode: func(b []byte) any {
		switch bits {
		case 8:
			return int64(int8(b[0]))
		case 16:
			return int64(int16(binary.BigEndian.Uint16(b)))
		case 32:
			return int64(int32(binary.BigEndian.Uint32(b)))
		default:
			return int64(binary.BigEndian.Uint64(b))
		}
	}}
}

var fmtFloat32 = wireFormat{size: 4, decode: func(b []byte) any {
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}}

var fmtFloat64 = wireFormat{size: 8, decode: func(b []byte) any {
	return math.Float64frombits(binary.BigEndian.Uint64(b))
}}

var fmtBool = wireFormat{size: 1, decode: func(b []byte) any { return b[0] != 0 }}

var fmtUint16Len = wireFormat{size: 2, decode: func(b []byte) any { return binary.BigEndian.Uint16(b) }}

var fmtUint64Len = wireFormat{size: 8, decode: func(b []byte) any { return binary.BigEndian.Uint64(b) }}

func fmtRaw(n int) wireFormat {
	return wireFormat{size: n, decode: func(b []byte) any {
		out := make([]byte, n)
		copy(out, b)
		return out
	}}
}

// UnpackStep performs one resumable read of a fixed-size wireFormat. It
// returns ErrNeedMore, without consuming any bytes, when the stream does
// not yet hold size(format) bytes.
func (a *StreamAdapter) UnpackStep(f wireFormat) (any, error) {
	if a.maxSize > 0 && f.size > a.maxSize {
		return nil, newEncodingError("unpack size of %d exceeds limit of %d", f.size, a.maxSize)
	}
	if a.Available() < f.size {
		return nil, ErrNeedMore
	}
	raw, err := a.Read(f.size)
	if err != nil {
		return nil, err
	}
	return f.decode(raw), nil
}
