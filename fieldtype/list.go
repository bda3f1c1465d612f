package fieldtype

import (
	"fmt"
	"reflect"

	codec "github.com/relayfish/playcodec"
)

// List is the LIST category: a homogeneous, dynamically-sized sequence of
// a declared element type. newElem mints a fresh UNSET element on demand,
// both for user-side Append and for the decoder's per-slot fill.
type List struct {
	attrSet
	newElem func() codec.FieldValue
	elems   []codec.FieldValue
	unset   bool
}

// NewList builds a LIST field whose elements are produced by newElem. Pass
// e.g. func() codec.FieldValue { return fieldtype.NewUint() } for a
// LIST-of-UINT.
func NewList(newElem func() codec.FieldValue) *List {
	return &List{newElem: newElem, unset: true}
}

func (l *List) Category() codec.Category  { return codec.CategoryList }
func (l *List) IsUnset() bool             { return l.unset }
func (l *List) Ancestors() []reflect.Type { return []reflect.Type{listRoot} }
func (l *List) InnerType() codec.FieldValue { return l.newElem() }

func (l *List) Len() int                        { return len(l.elems) }
func (l *List) GetRawItem(i int) codec.FieldValue { return l.elems[i] }

func (l *List) Append() codec.FieldValue {
	e := l.newElem()
	l.elems = append(l.elems, e)
	l.unset = false
	return e
}

func (l *List) Clear() {
	l.elems = l.elems[:0]
	l.unset = false
}

// Data returns the live element slice. SetData replaces it wholesale; both
// exist for programmatic construction, the decoder only ever uses
// Append/Clear/GetRawItem.
func (l *List) Data() any { return l.elems }

func (l *List) SetData(v any) error {
	elems, ok := v.([]codec.FieldValue)
	if !ok {
		return fmt.Errorf("fieldtype: list data must be []codec.FieldValue, got %T", v)
	}
	l.elems = elems
	l.unset = false
	return nil
}
