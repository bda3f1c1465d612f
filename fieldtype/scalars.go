package fieldtype

import (
	"fmt"
	"reflect"

	codec "github.com/relayfish/playcodec"
)

// scalar is the storage shared by every non-composite field: UINT, INT,
// BOOL, FLOAT, STRING, BUFFER.
type scalar struct {
	attrSet
	category codec.Category
	root     reflect.Type
	data     any
	unset    bool
}

func newScalar(category codec.Category, root reflect.Type) scalar {
	return scalar{category: category, root: root, unset: true}
}

func (s *scalar) Category() codec.Category  { return s.category }
func (s *scalar) IsUnset() bool             { return s.unset }
func (s *scalar) Data() any                 { return s.data }
func (s *scalar) Ancestors() []reflect.Type { return []reflect.Type{s.root} }

func (s *scalar) SetData(v any) error {
	s.data = v
	s.unset = false
	return nil
}

func (s *scalar) setTyped(v any, want string, ok bool) error {
	if !ok {
		return fmt.Errorf("fieldtype: expected %s, got %T", want, v)
	}
	return s.SetData(v)
}

// Uint is an unsigned integer field. MaxValue (default 2^32-1) picks the
// encoded width per codec's scalarWidthBits table.
type Uint struct{ scalar }

func NewUint() *Uint { return &Uint{scalar: newScalar(codec.CategoryUint, uintRoot)} }

func (u *Uint) WithMaxValue(max uint64) *Uint { u.SetAttribute(codec.AttrMaxValue, max); return u }
func (u *Uint) Uint64() uint64                { v, _ := u.data.(uint64); return v }
func (u *Uint) SetUint64(v uint64)            { _ = u.SetData(v) }
func (u *Uint) SetData(v any) error {
	n, ok := v.(uint64)
	return u.scalar.setTyped(n, "uint64", ok)
}

// Int is a signed integer field; shares UINT's width table (the declared
// MaxValue is an unsigned magnitude threshold, not a signed bound).
type Int struct{ scalar }

func NewInt() *Int { return &Int{scalar: newScalar(codec.CategoryInt, intRoot)} }

func (i *Int) WithMaxValue(max uint64) *Int { i.SetAttribute(codec.AttrMaxValue, max); return i }
func (i *Int) Int64() int64                 { v, _ := i.data.(int64); return v }
func (i *Int) SetInt64(v int64)             { _ = i.SetData(v) }
func (i *Int) SetData(v any) error {
	n, ok := v.(int64)
	return i.scalar.setTyped(n, "int64", ok)
}

// Bool is a single-byte boolean field.
type Bool struct{ scalar }

func NewBool() *Bool { return &Bool{scalar: newScalar(codec.CategoryBool, boolRoot)} }

func (b *Bool) Bool() bool      { v, _ := b.data.(bool); return v }
func (b *Bool) SetBool(v bool)  { _ = b.SetData(v) }
func (b *Bool) SetData(v any) error {
	n, ok := v.(bool)
	return b.scalar.setTyped(n, "bool", ok)
}

// Float is an IEEE 754 field; Bits (default 32) selects single vs double
// precision on the wire.
type Float struct{ scalar }

func NewFloat() *Float { return &Float{scalar: newScalar(codec.CategoryFloat, floatRoot)} }

func (f *Float) WithBits(bits int) *Float { f.SetAttribute(codec.AttrBits, bits); return f }
func (f *Float) Float64() float64         { v, _ := f.data.(float64); return v }
func (f *Float) SetFloat64(v float64)     { _ = f.SetData(v) }
func (f *Float) SetData(v any) error {
	n, ok := v.(float64)
	return f.scalar.setTyped(n, "float64", ok)
}

// Str is a UTF-8 string field, length-prefixed up to 2^16-1 bytes.
type Str struct{ scalar }

func NewString() *Str { return &Str{scalar: newScalar(codec.CategoryString, stringRoot)} }

func (s *Str) String() string    { v, _ := s.data.(string); return v }
func (s *Str) SetString(v string) { _ = s.SetData(v) }
func (s *Str) SetData(v any) error {
	n, ok := v.(string)
	return s.scalar.setTyped(n, "string", ok)
}

// Buffer is an opaque byte-string field, length-prefixed up to 2^64 bytes.
type Buffer struct{ scalar }

func NewBuffer() *Buffer { return &Buffer{scalar: newScalar(codec.CategoryBuffer, bufferRoot)} }

func (b *Buffer) Bytes() []byte     { v, _ := b.data.([]byte); return v }
func (b *Buffer) SetBytes(v []byte) { _ = b.SetData(v) }
func (b *Buffer) SetData(v any) error {
	n, ok := v.([]byte)
	return b.scalar.setTyped(n, "[]byte", ok)
}
