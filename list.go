package codec

// listMaxElements is LIST's wire limit: a 2-byte length prefix can express
// up to 2^16-1.
const listMaxElements = uint64(1)<<16 - 1

type listEncoder struct{}

func (listEncoder) Encode(s *StreamAdapter, v FieldValue, c *Codec) error {
	l, ok := v.(ListFieldValue)
	if !ok {
		return newEncodingError("list field %T does not implement ListFieldValue", v)
	}
	n := l.Len()
	if uint64(n) > listMaxElements {
		return newEncodingError("list of %d elements exceeds limit of %d", n, listMaxElements)
	}
	if err := s.PackUint(16, uint64(n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := c.Encode(s, l.GetRawItem(i)); err != nil {
			return wrapEncodingError(err, "error encoding index %d of list", i)
		}
	}
	return nil
}

func (listEncoder) newDecodeOp(v FieldValue) decodeOp {
	l, ok := v.(ListFieldValue)
	if !ok {
		return failingDecodeOp{err: newEncodingError("list field %T does not implement ListFieldValue", v)}
	}
	return &listDecodeOp{target: l}
}

// listDecodeOp mirrors groupDecodeOp's phase structure: read the length,
// clear the list, then for each slot append an UNSET element and push a
// child op to fill it.
type listDecodeOp struct {
	target ListFieldValue
	count  int
	index  int
	phase  int

	// pendingIndex/pendingElemCategory describe the element whose child
	// decodeOp is currently on the stack, so wrapChildError can name it if
	// that child later fails.
	pendingIndex        int
	pendingElemCategory Category
}

const (
	listPhaseCount = iota
	listPhaseElements
)

func (op *listDecodeOp) step(s *StreamAdapter, c *Codec) (decodeOp, bool, error) {
	switch op.phase {
	case listPhaseCount:
		raw, err := s.UnpackStep(fmtUint16Len)
		if err != nil {
			return nil, false, err
		}
		op.count = int(raw.(uint16))
		op.target.Clear()
		op.phase = listPhaseElements
		return nil, false, nil

	default:
		if op.index >= op.count {
			return nil, true, nil
		}
		elem := op.target.Append()
		idx := op.index
		op.index++
		child, err := c.newDecodeOpFor(elem)
		if err != nil {
			return nil, false, wrapEncodingError(err, "error decoding index %d of list of type %s", idx, elem.Category())
		}
		op.pendingIndex = idx
		op.pendingElemCategory = elem.Category()
		return child, false, nil
	}
}

// wrapChildError implements childFailer: an element's child op can fail on
// a later Poll call, well after it was pushed, so its index and category
// have to be remembered (pendingIndex/pendingElemCategory) rather than
// captured in a closure at dispatch time.
func (op *listDecodeOp) wrapChildError(s *StreamAdapter, err error) error {
	return wrapEncodingError(err, "error decoding index %d of list of type %s", op.pendingIndex, op.pendingElemCategory)
}

func init() {
	registerBuiltinComposite(ListRoot{}, listEncoder{})
}
