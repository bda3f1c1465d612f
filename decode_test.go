package codec

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderResumesAcrossErrNeedMore(t *testing.T) {
	src := newStubGroup([]stubFieldSpec{
		uintSpec("field1", defaultMaxValue, 50),
		uintSpec("field2", defaultMaxValue, 500),
	})
	encodeStream := NewStreamAdapter(newTestStream())
	require.NoError(t, Default.Encode(encodeStream, src))
	full := testStreamBytes(encodeStream)

	raw := newTestStream()
	s := NewStreamAdapter(raw)
	dst := newStubGroup([]stubFieldSpec{
		uintSpec("field1", defaultMaxValue, 0),
		uintSpec("field2", defaultMaxValue, 0),
	})
	decoder, err := Default.NewDecoder(s, dst)
	require.NoError(t, err)

	suspended := 0
	for _, b := range full {
		// testMemStream shares one position for reads and writes: append at
		// the end, then put the read position back where the decoder left it.
		readPos := raw.pos
		raw.pos = len(raw.buf)
		_, writeErr := raw.Write([]byte{b})
		require.NoError(t, writeErr)
		raw.pos = readPos

		err := decoder.Poll()
		if err == ErrNeedMore {
			suspended++
			assert.False(t, decoder.Done())
			continue
		}
		require.NoError(t, err)
	}
	require.NoError(t, decoder.Poll())
	assert.True(t, decoder.Done())
	assert.Greater(t, suspended, 0, "decode should have suspended at least once on a byte-at-a-time feed")

	assert.Equal(t, uint64(50), dst.GetRawField("field1").Data())
	assert.Equal(t, uint64(500), dst.GetRawField("field2").Data())
}

func TestDecoderPollIdempotentAfterDone(t *testing.T) {
	src := newStubUint(0xFF, 7)
	s := NewStreamAdapter(newTestStream())
	require.NoError(t, Default.Encode(s, src))

	dst := newStubUint(0xFF, 0)
	dst.unset = true
	s2 := NewStreamAdapter(newTestStreamFrom(testStreamBytes(s)))
	decoder, err := Default.NewDecoder(s2, dst)
	require.NoError(t, err)

	require.NoError(t, decoder.Poll())
	require.True(t, decoder.Done())
	require.NoError(t, decoder.Poll()) // second call is a no-op
	assert.Equal(t, uint64(7), dst.Data())
}

// TestGroupChildFailureWrappedWithFieldName drives the failure through a
// real Decoder/Poll cycle rather than hand-stepping the decodeOp directly:
// the string field's length prefix decodes cleanly on its first step, and
// only its second step (reading the payload) fails UTF-8 validation. A
// naive Poll implementation that returns a pushed child's error straight to
// the caller would surface that failure unwrapped.
func TestGroupChildFailureWrappedWithFieldName(t *testing.T) {
	raw := newTestStream()
	s := NewStreamAdapter(raw)
	require.NoError(t, s.PackUint(16, 1))          // field count
	require.NoError(t, s.PackUint(16, 0))          // tag 0
	require.NoError(t, s.PackUint(16, 2))          // string length prefix
	require.NoError(t, s.Pack([]byte{0xFF, 0xFE})) // invalid UTF-8 payload

	dst := newStubGroup([]stubFieldSpec{
		{name: "greeting", new: func() FieldValue {
			return &stubField{category: CategoryString, unset: true, root: reflect.TypeOf(StringRoot{})}
		}},
	})
	s2 := NewStreamAdapter(newTestStreamFrom(raw.buf))
	decoder, err := Default.NewDecoder(s2, dst)
	require.NoError(t, err)

	pollErr := decoder.Poll()
	require.Error(t, pollErr)
	assert.Contains(t, pollErr.Error(), `field "greeting"`)

	var encErr *EncodingError
	require.ErrorAs(t, pollErr, &encErr)
}

// TestListDecoderSuspendsOnTruncatedElement drives a list through a real
// Decoder/Poll cycle: the second element's bytes never arrive, after the
// list op has already pushed that element's child op.
func TestListDecoderSuspendsOnTruncatedElement(t *testing.T) {
	raw := newTestStream()
	s := NewStreamAdapter(raw)
	require.NoError(t, s.PackUint(16, 2)) // 2 elements
	require.NoError(t, s.PackUint(8, 9))  // element 0: fine
	// element 1 never arrives: stream ends here.

	dst := newStubList(func() FieldValue { return newStubUint(0xFF, 0) })
	s2 := NewStreamAdapter(newTestStreamFrom(raw.buf))
	decoder, err := Default.NewDecoder(s2, dst)
	require.NoError(t, err)

	// Running dry mid-element must resume as ErrNeedMore, not an aborted,
	// unwrapped failure — confirm the decoder is still alive afterward.
	pollErr := decoder.Poll()
	require.ErrorIs(t, pollErr, ErrNeedMore)
	assert.False(t, decoder.Done())
}

func TestCodecDecodeAllAtOnceRoundTrip(t *testing.T) {
	src := newStubGroup([]stubFieldSpec{
		uintSpec("field1", defaultMaxValue, 12),
	})
	s := NewStreamAdapter(newTestStream())
	require.NoError(t, Default.Encode(s, src))

	dst := newStubGroup([]stubFieldSpec{
		uintSpec("field1", defaultMaxValue, 0),
	})
	s2 := NewStreamAdapter(newTestStreamFrom(testStreamBytes(s)))
	require.NoError(t, Default.Decode(s2, dst))
	assert.Equal(t, uint64(12), dst.GetRawField("field1").Data())
}
