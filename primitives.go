package codec

// defaultMaxValue is the UINT/INT default declared range: 2^32 - 1.
const defaultMaxValue = uint64(1)<<32 - 1

// scalarWidthBits picks the narrowest of {8,16,32,64} bits whose range
// exceeds maxValue. Because MaxValue is itself represented as a uint64, it
// can never reach or exceed 2^64, so the "MaxValue too large to encode"
// failure the source raises for its arbitrary-precision integers has no
// reachable case here: 64 bits always suffices as a last resort.
func scalarWidthBits(maxValue uint64) int {
	switch {
	case maxValue < 1<<8:
		return 8
	case maxValue < 1<<16:
		return 16
	case maxValue < 1<<32:
		return 32
	default:
		return 64
	}
}

func declaredMaxValue(v FieldValue) uint64 {
	return attrOrDefault(v, AttrMaxValue, defaultMaxValue)
}

func floatBitsFor(v FieldValue) (int, error) {
	bits := attrOrDefault(v, AttrBits, 32)
	if bits != 32 && bits != 64 {
		return 0, newEncodingError("cannot encode float field with Bits=%d, want 32 or 64", bits)
	}
	return bits, nil
}

// scalarDecodeOp is a single-read decode step shared by every primitive
// encoder: read one fixed-width value and assign it to the target.
type scalarDecodeOp struct {
	target  FieldValue
	format  wireFormat
	assign  func(raw any) (any, error)
	prepErr error
}

func (op *scalarDecodeOp) step(s *StreamAdapter, _ *Codec) (decodeOp, bool, error) {
	if op.prepErr != nil {
		return nil, false, op.prepErr
	}
	raw, err := s.UnpackStep(op.format)
	if err != nil {
		return nil, false, err
	}
	val, err := op.assign(raw)
	if err != nil {
		return nil, false, err
	}
	if err := op.target.SetData(val); err != nil {
		return nil, false, err
	}
	return nil, true, nil
}

type uintEncoder struct{}

func (uintEncoder) Encode(s *StreamAdapter, v FieldValue, _ *Codec) error {
	bits := scalarWidthBits(declaredMaxValue(v))
	data, ok := v.Data().(uint64)
	if !ok {
		return newEncodingError("uint field holds %T, want uint64", v.Data())
	}
	return s.PackUint(bits, data)
}

func (uintEncoder) newDecodeOp(v FieldValue) decodeOp {
	bits := scalarWidthBits(declaredMaxValue(v))
	return &scalarDecodeOp{
		target: v,
		format: fmtUint(bits),
		assign: func(raw any) (any, error) { return raw.(uint64), nil },
	}
}

type intEncoder struct{}

func (intEncoder) Encode(s *StreamAdapter, v FieldValue, _ *Codec) error {
	// INT reuses UINT's width table: the declared MaxValue attribute
	// describes the same unsigned magnitude threshold, just rendered with
	// signed pack codes.
	bits := scalarWidthBits(declaredMaxValue(v))
	data, ok := v.Data().(int64)
	if !ok {
		return newEncodingError("int field holds %T, want int64", v.Data())
	}
	return s.PackInt(bits, data)
}

func (intEncoder) newDecodeOp(v FieldValue) decodeOp {
	bits := scalarWidthBits(declaredMaxValue(v))
	return &scalarDecodeOp{
		target: v,
		format: fmtInt(bits),
		assign: func(raw any) (any, error) { return raw.(int64), nil },
	}
}

type floatEncoder struct{}

func (floatEncoder) Encode(s *StreamAdapter, v FieldValue, _ *Codec) error {
	bits, err := floatBitsFor(v)
	if err != nil {
		return err
	}
	data, ok := v.Data().(float64)
	if !ok {
		return newEncodingError("float field holds %T, want float64", v.Data())
	}
	if bits == 32 {
		return s.PackFloat32(float32(data))
	}
	return s.PackFloat64(data)
}

func (floatEncoder) newDecodeOp(v FieldValue) decodeOp {
	bits, err := floatBitsFor(v)
	format := fmtFloat64
	if bits == 32 {
		format = fmtFloat32
	}
	return &scalarDecodeOp{
		target:  v,
		format:  format,
		prepErr: err,
		assign: func(raw any) (any, error) {
			switch n := raw.(type) {
			case float32:
				return float64(n), nil
			default:
				return n.(float64), nil
			}
		},
	}
}

type boolEncoder struct{}

func (boolEncoder) Encode(s *StreamAdapter, v FieldValue, _ *Codec) error {
	data, ok := v.Data().(bool)
	if !ok {
		return newEncodingError("bool field holds %T, want bool", v.Data())
	}
	return s.PackBool(data)
}

func (boolEncoder) newDecodeOp(v FieldValue) decodeOp {
	return &scalarDecodeOp{
		target: v,
		format: fmtBool,
		assign: func(raw any) (any, error) { return raw.(bool), nil },
	}
}

func init() {
	registerBuiltinScalar(UintRoot{}, uintEncoder{})
	registerBuiltinScalar(IntRoot{}, intEncoder{})
	registerBuiltinScalar(FloatRoot{}, floatEncoder{})
	registerBuiltinScalar(BoolRoot{}, boolEncoder{})
}
