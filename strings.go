package codec

import (
	"math"
	"unicode/utf8"
)

// stringMaxLength is STRING's wire limit in encoded UTF-8 bytes: a 2-byte
// length prefix can express up to 2^16-1.
const stringMaxLength = uint64(1)<<16 - 1

// bufferMaxLength is BUFFER's wire limit: its 8-byte length prefix is itself
// a uint64, so no value that fits in the length field can ever exceed this.
const bufferMaxLength = math.MaxUint64

// lengthPrefixedDecodeOp reads a length prefix, then that many raw bytes,
// then hands the bytes to assign. Used by both STRING (assign converts to
// string) and BUFFER (assign passes the bytes through).
type lengthPrefixedDecodeOp struct {
	target    FieldValue
	lenFormat wireFormat
	lengthOf  func(any) uint64
	maxLen    uint64
	assign    func([]byte) (any, error)

	stage  int
	length int
}

func (op *lengthPrefixedDecodeOp) step(s *StreamAdapter, _ *Codec) (decodeOp, bool, error) {
	if op.stage == 0 {
		raw, err := s.UnpackStep(op.lenFormat)
		if err != nil {
			return nil, false, err
		}
		length := op.lengthOf(raw)
		if length > op.maxLen {
			return nil, false, newEncodingError("length-prefixed field of %d bytes exceeds limit of %d", length, op.maxLen)
		}
		op.length = int(length)
		op.stage = 1
		return nil, false, nil
	}

	raw, err := s.UnpackStep(fmtRaw(op.length))
	if err != nil {
		return nil, false, err
	}
	val, err := op.assign(raw.([]byte))
	if err != nil {
		return nil, false, err
	}
	if err := op.target.SetData(val); err != nil {
		return nil, false, err
	}
	return nil, true, nil
}

type stringEncoder struct{}

func (stringEncoder) Encode(s *StreamAdapter, v FieldValue, _ *Codec) error {
	data, ok := v.Data().(string)
	if !ok {
		return newEncodingError("string field holds %T, want string", v.Data())
	}
	b := []byte(data)
	if uint64(len(b)) > stringMaxLength {
		return newEncodingError("string field of %d bytes exceeds limit of %d", len(b), stringMaxLength)
	}
	if err := s.PackUint(16, uint64(len(b))); err != nil {
		return err
	}
	return s.Pack(b)
}

func (stringEncoder) newDecodeOp(v FieldValue) decodeOp {
	return &lengthPrefixedDecodeOp{
		target:    v,
		lenFormat: fmtUint16Len,
		lengthOf:  func(raw any) uint64 { return uint64(raw.(uint16)) },
		maxLen:    stringMaxLength,
		assign: func(b []byte) (any, error) {
			if !utf8.Valid(b) {
				return nil, newEncodingError("string field is not valid UTF-8")
			}
			return string(b), nil
		},
	}
}

type bufferEncoder struct{}

func (bufferEncoder) Encode(s *StreamAdapter, v FieldValue, _ *Codec) error {
	data, ok := v.Data().([]byte)
	if !ok {
		return newEncodingError("buffer field holds %T, want []byte", v.Data())
	}
	if uint64(len(data)) > bufferMaxLength {
		return newEncodingError("buffer field of %d bytes exceeds limit of %d", len(data), bufferMaxLength)
	}
	if err := s.PackUint(64, uint64(len(data))); err != nil {
		return err
	}
	return s.Pack(data)
}

func (bufferEncoder) newDecodeOp(v FieldValue) decodeOp {
	return &lengthPrefixedDecodeOp{
		target:    v,
		lenFormat: fmtUint64Len,
		lengthOf:  func(raw any) uint64 { return raw.(uint64) },
		maxLen:    bufferMaxLength,
		assign: func(b []byte) (any, error) {
			out := make([]byte, len(b))
			copy(out, b)
			return out, nil
		},
	}
}

func init() {
	registerBuiltinScalar(StringRoot{}, stringEncoder{})
	registerBuiltinScalar(BufferRoot{}, bufferEncoder{})
}
