package codec

// Logger is a printf-style sink, matching the source's LogFunc convention
// (actisense.Config.LogFunc): the caller wires one up, or leaves it nil for
// no output.
type Logger func(format string, args ...any)

// Codec is the top-level encoder/decoder. It owns no state beyond a
// registry reference: dispatch recurses through the registry, and framing
// lives only at the outermost PACKET encoder (§2).
//
// DebugLogFrameDigest and LogFunc mirror the source's
// DebugLogRawMessageBytes/LogFunc pair: when both are set, the PACKET
// encoder logs an xxhash digest of each frame body alongside its
// length-check, purely as a diagnostic aid never written to the wire.
type Codec struct {
	registry *Registry

	DebugLogFrameDigest bool
	LogFunc             Logger
}

// NewCodec builds a Codec over the given registry.
func NewCodec(registry *Registry) *Codec {
	return &Codec{registry: registry}
}

// Default is the Codec backed by DefaultRegistry, used by the package-level
// Encode/Decode helpers.
var Default = NewCodec(DefaultRegistry)

// Encode dispatches v to its registered encoder and writes it to stream.
// There is no resumable form of encode: the contract is no partial writes
// (§4.1).
func (c *Codec) Encode(stream *StreamAdapter, v FieldValue) error {
	enc, ok := c.registry.Lookup(v)
	if !ok {
		return newEncodingError("cannot encode fields of type %s", v.Category())
	}
	return enc.Encode(stream, v, c)
}

// Decode drives a resumable decode to completion against a stream whose
// Available() always returns enough bytes to make progress.
func (c *Codec) Decode(stream *StreamAdapter, v FieldValue) error {
	d, err := c.NewDecoder(stream, v)
	if err != nil {
		return err
	}
	for !d.Done() {
		if err := d.Poll(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) newDecodeOpFor(v FieldValue) (decodeOp, error) {
	enc, ok := c.registry.Lookup(v)
	if !ok {
		return nil, newEncodingError("cannot decode fields of type %s", v.Category())
	}
	return enc.newDecodeOp(v), nil
}

// Encode serializes v to stream using DefaultRegistry.
func Encode(stream *StreamAdapter, v FieldValue) error { return Default.Encode(stream, v) }

// Decode fully decodes v from stream using DefaultRegistry.
func Decode(stream *StreamAdapter, v FieldValue) error { return Default.Decode(stream, v) }

// NewDecoder starts a resumable decode of v from stream using
// DefaultRegistry.
func NewDecoder(stream *StreamAdapter, v FieldValue) (*Decoder, error) {
	return Default.NewDecoder(stream, v)
}
