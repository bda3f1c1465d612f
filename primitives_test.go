package codec

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubField is a minimal FieldValue used only by core-package tests, so
// they don't need to import the fieldtype collaborator package.
type stubField struct {
	category Category
	data     any
	unset    bool
	attrs    map[string]any
	root     reflect.Type
}

func (s *stubField) Category() Category { return s.category }
func (s *stubField) IsUnset() bool      { return s.unset }
func (s *stubField) Data() any          { return s.data }
func (s *stubField) SetData(v any) error {
	s.data = v
	s.unset = false
	return nil
}
func (s *stubField) Attribute(name string, def any) any {
	if v, ok := s.attrs[name]; ok {
		return v
	}
	return def
}
func (s *stubField) Ancestors() []reflect.Type { return []reflect.Type{s.root} }

func newStubUint(maxValue uint64, data uint64) *stubField {
	return &stubField{category: CategoryUint, data: data, root: reflect.TypeOf(UintRoot{}),
		attrs: map[string]any{AttrMaxValue: maxValue}}
}

func newStubInt(maxValue uint64, data int64) *stubField {
	return &stubField{category: CategoryInt, data: data, root: reflect.TypeOf(IntRoot{}),
		attrs: map[string]any{AttrMaxValue: maxValue}}
}

func TestUintEncode(t *testing.T) {
	tests := []struct {
		name string
		max  uint64
		data uint64
		want []byte
	}{
		{"default width 10", defaultMaxValue, 10, []byte{0x00, 0x00, 0x00, 0x0A}},
		{"8-bit MaxValue=255 value=10", 255, 10, []byte{0x0A}},
		{"16-bit width", 1<<16 - 1, 1, []byte{0x00, 0x01}},
		{"64-bit width", ^uint64(0), 1, []byte{0, 0, 0, 0, 0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStreamAdapter(newTestStream())
			f := newStubUint(tt.max, tt.data)
			require.NoError(t, uintEncoder{}.Encode(s, f, nil))
			assert.Equal(t, tt.want, testStreamBytes(s))
		})
	}
}

func TestIntEncodeDefaultMaxValueNegative(t *testing.T) {
	s := NewStreamAdapter(newTestStream())
	f := newStubInt(defaultMaxValue, -10)
	require.NoError(t, intEncoder{}.Encode(s, f, nil))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xF6}, testStreamBytes(s))
}

func TestUintRoundTrip(t *testing.T) {
	s := NewStreamAdapter(newTestStream())
	src := newStubUint(255, 200)
	require.NoError(t, uintEncoder{}.Encode(s, src, nil))

	s2 := NewStreamAdapter(newTestStreamFrom(testStreamBytes(s)))
	dst := newStubUint(255, 0)
	dst.unset = true
	op := uintEncoder{}.newDecodeOp(dst)
	_, done, err := op.step(s2, nil)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, uint64(200), dst.Data())
}

func TestBoolEncode(t *testing.T) {
	s := NewStreamAdapter(newTestStream())
	f := &stubField{category: CategoryBool, data: true, root: reflect.TypeOf(BoolRoot{})}
	require.NoError(t, boolEncoder{}.Encode(s, f, nil))
	assert.Equal(t, []byte{0x01}, testStreamBytes(s))
}

func TestFloatEncodeInvalidBits(t *testing.T) {
	s := NewStreamAdapter(newTestStream())
	f := &stubField{category: CategoryFloat, data: 1.5, root: reflect.TypeOf(FloatRoot{}),
		attrs: map[string]any{AttrBits: 17}}
	err := floatEncoder{}.Encode(s, f, nil)
	require.Error(t, err)
	var encErr *EncodingError
	assert.ErrorAs(t, err, &encErr)
}
