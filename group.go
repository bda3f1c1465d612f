package codec

// buildTagBijection computes the name<->tag mapping for a GROUP's declared
// FIELDS list in a single pass: two plain maps, not a dedicated bijection
// type (design note, see DESIGN.md). Fields are taken in declaration
// order: an explicit tag is used as declared (failing if an earlier field
// already holds it); a field without one gets the smallest nonnegative tag
// not already taken.
func buildTagBijection(fields []FieldDecl) (nameToTag map[string]uint16, tagToName map[uint16]string, err error) {
	nameToTag = make(map[string]uint16, len(fields))
	tagToName = make(map[uint16]string, len(fields))
	used := make(map[uint16]bool, len(fields))
	next := uint16(0)

	for _, fd := range fields {
		if _, dup := nameToTag[fd.Name]; dup {
			return nil, nil, newEncodingError("duplicate field %q", fd.Name)
		}

		var tag uint16
		if explicit, ok := explicitTag(fd.Field); ok {
			if used[explicit] {
				return nil, nil, newEncodingError("duplicate explicit tag %d for field %q", explicit, fd.Name)
			}
			tag = explicit
		} else {
			for used[next] {
				next++
			}
			tag = next
		}

		used[tag] = true
		nameToTag[fd.Name] = tag
		tagToName[tag] = fd.Name
	}
	return nameToTag, tagToName, nil
}

func explicitTag(f FieldValue) (uint16, bool) {
	raw := f.Attribute(AttrExplicitTag, nil)
	if raw == nil {
		return 0, false
	}
	tag, ok := raw.(uint16)
	return tag, ok
}

type groupEncoder struct{}

func (groupEncoder) Encode(s *StreamAdapter, v FieldValue, c *Codec) error {
	g, ok := v.(GroupFieldValue)
	if !ok {
		return newEncodingError("group field %T does not implement GroupFieldValue", v)
	}

	nameToTag, _, err := buildTagBijection(g.Fields())
	if err != nil {
		return err
	}

	type presentField struct {
		name string
		tag  uint16
		val  FieldValue
	}
	present := make([]presentField, 0, len(g.Fields()))
	for _, fd := range g.Fields() {
		if fd.Field.IsUnset() {
			if !attrOrDefault(fd.Field, AttrOptional, false) {
				return newEncodingError("field %q unset and not optional", fd.Name)
			}
			continue
		}
		present = append(present, presentField{name: fd.Name, tag: nameToTag[fd.Name], val: fd.Field})
	}

	if err := s.PackUint(16, uint64(len(present))); err != nil {
		return err
	}
	for _, pf := range present {
		if err := s.PackUint(16, uint64(pf.tag)); err != nil {
			return err
		}
		if err := c.Encode(s, pf.val); err != nil {
			return wrapEncodingError(err, "error encoding field %q", pf.name)
		}
	}
	return nil
}

func (groupEncoder) newDecodeOp(v FieldValue) decodeOp {
	g, ok := v.(GroupFieldValue)
	if !ok {
		return failingDecodeOp{err: newEncodingError("group field %T does not implement GroupFieldValue", v)}
	}
	return &groupDecodeOp{target: g}
}

// groupDecodeOp drives GROUP decode through three phases: initialize the
// slot and rebuild the tag bijection, read the field count, then for each
// of count entries read a tag and push a child op for the resolved field.
type groupDecodeOp struct {
	target    GroupFieldValue
	tagToName map[uint16]string
	count     int
	index     int
	phase     int

	// pendingField is the name of the field whose child decodeOp is
	// currently on the stack, so wrapChildError can name it if that child
	// later fails.
	pendingField string
}

const (
	groupPhaseInit = iota
	groupPhaseCount
	groupPhaseFields
)

func (op *groupDecodeOp) step(s *StreamAdapter, c *Codec) (decodeOp, bool, error) {
	switch op.phase {
	case groupPhaseInit:
		op.target.Init()
		_, tagToName, err := buildTagBijection(op.target.Fields())
		if err != nil {
			return nil, false, err
		}
		op.tagToName = tagToName
		op.phase = groupPhaseCount
		return nil, false, nil

	case groupPhaseCount:
		raw, err := s.UnpackStep(fmtUint16Len)
		if err != nil {
			return nil, false, err
		}
		op.count = int(raw.(uint16))
		op.phase = groupPhaseFields
		return nil, false, nil

	default:
		if op.index >= op.count {
			return nil, true, nil
		}
		raw, err := s.UnpackStep(fmtUint16Len)
		if err != nil {
			return nil, false, err
		}
		tag := raw.(uint16)
		name, ok := op.tagToName[tag]
		if !ok {
			return nil, false, newEncodingError("unknown field tag %d", tag)
		}
		op.index++
		field := op.target.GetRawField(name)
		child, err := c.newDecodeOpFor(field)
		if err != nil {
			return nil, false, wrapEncodingError(err, "error decoding field %q", name)
		}
		op.pendingField = name
		return child, false, nil
	}
}

// wrapChildError implements childFailer: a field's child op can fail on a
// later Poll call, well after it was pushed, so the field name it was
// decoding has to be remembered (pendingField) rather than captured in a
// closure at dispatch time.
func (op *groupDecodeOp) wrapChildError(s *StreamAdapter, err error) error {
	return wrapEncodingError(err, "error decoding field %q", op.pendingField)
}

// failingDecodeOp immediately fails a decode, used when a concrete
// FieldValue doesn't implement the interface its category requires.
type failingDecodeOp struct{ err error }

func (op failingDecodeOp) step(*StreamAdapter, *Codec) (decodeOp, bool, error) {
	return nil, false, op.err
}

func init() {
	registerBuiltinComposite(GroupRoot{}, groupEncoder{})
}
