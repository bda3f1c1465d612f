// Package fieldtype is the concrete field-value object model that the
// codec package consumes through its narrow FieldValue/Composite/Ancestor
// interfaces. It owns no wire-format knowledge; everything here is plain
// storage plus the bookkeeping codec.Registry needs to dispatch correctly.
package fieldtype

import (
	"reflect"

	codec "github.com/relayfish/playcodec"
)

// attrSet is the attribute bag shared by every concrete field type: lazily
// allocated, looked up by name with a typed default at the call site.
type attrSet struct {
	m map[string]any
}

func (a *attrSet) Attribute(name string, def any) any {
	if a.m == nil {
		return def
	}
	if v, ok := a.m[name]; ok {
		return v
	}
	return def
}

// SetAttribute is the constructor-time configuration hook (MaxValue, Bits,
// Optional, ExplicitTag, ...). group.go's FieldSpec applies
// Optional/ExplicitTag to whatever concrete type a field factory produces
// via the attributable assertion below.
func (a *attrSet) SetAttribute(name string, v any) {
	if a.m == nil {
		a.m = make(map[string]any)
	}
	a.m[name] = v
}

// attributable is implemented by every type in this package via attrSet.
// It lets group.go configure Optional/ExplicitTag on a freshly minted field
// without the codec package's FieldValue interface needing to expose
// mutation.
type attributable interface {
	SetAttribute(name string, v any)
}

func applyFieldSpecAttrs(f codec.FieldValue, optional bool, explicitTag *uint16) {
	a, ok := f.(attributable)
	if !ok {
		return
	}
	if optional {
		a.SetAttribute(codec.AttrOptional, true)
	}
	if explicitTag != nil {
		a.SetAttribute(codec.AttrExplicitTag, *explicitTag)
	}
}

var (
	uintRoot   = reflect.TypeOf(codec.UintRoot{})
	intRoot    = reflect.TypeOf(codec.IntRoot{})
	boolRoot   = reflect.TypeOf(codec.BoolRoot{})
	floatRoot  = reflect.TypeOf(codec.FloatRoot{})
	stringRoot = reflect.TypeOf(codec.StringRoot{})
	bufferRoot = reflect.TypeOf(codec.BufferRoot{})
	listRoot   = reflect.TypeOf(codec.ListRoot{})
	groupRoot  = reflect.TypeOf(codec.GroupRoot{})
	packetRoot = reflect.TypeOf(codec.PacketRoot{})
)
