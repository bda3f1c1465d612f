package codec

// decodeOp is one unit of resumable decode work. Implementations hold
// whatever stage/index state they need to resume exactly where a previous
// call left off; nothing is re-read from the stream across calls to step.
//
// step either:
//   - returns a non-nil child: the engine pushes it and will call this op's
//     step again once the child reports done, so the op can consume the
//     child's result and continue;
//   - returns done=true: the op is finished, its result (if any) has
//     already been written into its target FieldValue;
//   - returns an error: ErrNeedMore to suspend (the op is left on the stack
//     untouched for the next Poll), or a real failure to abort the whole
//     decode.
//   - returns (nil, false, nil): the op made internal progress (advanced
//     its stage) and wants to be driven again immediately.
type decodeOp interface {
	step(s *StreamAdapter, c *Codec) (child decodeOp, done bool, err error)
}

// childFailer is implemented by an op whose category must annotate a
// pushed child's eventual failure with its own context — GROUP's field
// name, LIST's element index, PACKET's body framing (§4.5-§4.7). Poll calls
// wrapChildError on every surviving ancestor, innermost first, once a child
// reports a real error, so context accumulates the same way nested
// recursive calls would wrap it on the encode side.
type childFailer interface {
	wrapChildError(s *StreamAdapter, err error) error
}

// Decoder drives one resumable decode sequence to completion. It holds an
// explicit stack of decodeOps — a tagged-variant state machine, per the
// source's design notes — rather than a heap-allocated continuation or a
// goroutine-backed generator.
type Decoder struct {
	codec  *Codec
	stream *StreamAdapter
	stack  []decodeOp
	done   bool
}

// NewDecoder starts a resumable decode of target from stream, using c's
// registry to resolve encoders.
func (c *Codec) NewDecoder(stream *StreamAdapter, target FieldValue) (*Decoder, error) {
	op, err := c.newDecodeOpFor(target)
	if err != nil {
		return nil, err
	}
	return &Decoder{codec: c, stream: stream, stack: []decodeOp{op}}, nil
}

// Poll advances the decode by as much as the stream currently allows. It
// returns ErrNeedMore if the stream ran out of bytes before the decode
// could complete; the caller should feed more bytes into the stream and
// call Poll again. Poll is idempotent after Done: calling it again returns
// nil immediately.
func (d *Decoder) Poll() error {
	if d.done {
		return nil
	}
	for len(d.stack) > 0 {
		top := d.stack[len(d.stack)-1]
		child, isDone, err := top.step(d.stream, d.codec)
		if err != nil {
			if err == ErrNeedMore {
				return err
			}
			return d.unwindError(err)
		}
		if child != nil {
			d.stack = append(d.stack, child)
			continue
		}
		if isDone {
			d.stack = d.stack[:len(d.stack)-1]
			continue
		}
		// op advanced its internal stage without finishing or needing a
		// child; drive it again immediately.
	}
	d.done = true
	return nil
}

// unwindError pops the op that just failed and gives every remaining
// ancestor still on the stack a chance to annotate err with its own
// context, innermost first, before the decode aborts. This is what makes a
// GROUP/LIST/PACKET's per-field, per-index, or per-body wrapping apply to a
// child's failure discovered in a later Poll call, not just to a failure
// raised while the child op was first being constructed.
func (d *Decoder) unwindError(err error) error {
	d.stack = d.stack[:len(d.stack)-1]
	for i := len(d.stack) - 1; i >= 0; i-- {
		if wrapper, ok := d.stack[i].(childFailer); ok {
			err = wrapper.wrapChildError(d.stream, err)
		}
	}
	d.stack = nil
	d.done = true
	return err
}

// Done reports whether the decode has finished: it either completed, or
// Poll returned a failure other than ErrNeedMore.
func (d *Decoder) Done() bool { return d.done }
