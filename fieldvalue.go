// Package codec implements the Playground-style packet codec: a pluggable,
// ancestry-aware type-encoder registry, a resumable decoder, and a framed
// packet protocol with length-checksum resynchronization.
//
// The codec never owns the values it serializes. It borrows a FieldValue
// (supplied by a collaborator field-type model, see package fieldtype) for
// the duration of one Encode call or one decode sequence.
package codec

import "reflect"

// Category is the high-level kind of a field. It is a closed set: UINT,
// INT, BOOL, FLOAT, STRING, BUFFER, LIST, GROUP, PACKET.
type Category uint8

const (
	CategoryUint Category = iota
	CategoryInt
	CategoryBool
	CategoryFloat
	CategoryString
	CategoryBuffer
	CategoryList
	CategoryGroup
	CategoryPacket
)

func (c Category) String() string {
	switch c {
	case CategoryUint:
		return "UINT"
	case CategoryInt:
		return "INT"
	case CategoryBool:
		return "BOOL"
	case CategoryFloat:
		return "FLOAT"
	case CategoryString:
		return "STRING"
	case CategoryBuffer:
		return "BUFFER"
	case CategoryList:
		return "LIST"
	case CategoryGroup:
		return "GROUP"
	case CategoryPacket:
		return "PACKET"
	default:
		return "UNKNOWN"
	}
}

// Attribute names recognized by the built-in encoders. A FieldValue
// implementation is free to support additional attributes; unrecognized
// ones are simply never queried by this codec.
const (
	AttrMaxValue    = "MaxValue"
	AttrBits        = "Bits"
	AttrOptional    = "Optional"
	AttrExplicitTag = "ExplicitTag"
)

// FieldValue is the minimal surface the codec requires from the field-type
// object model. It reports its own category, whether it currently holds
// the UNSET sentinel, its data, and attributes declared by the caller
// (MaxValue, Bits, Optional, ExplicitTag, ...).
type FieldValue interface {
	Category() Category
	IsUnset() bool
	Data() any
	SetData(v any) error
	Attribute(name string, def any) any
}

// Ancestor lets a concrete FieldValue splice itself into the registry's
// type-ancestry walk (see Registry) by declaring, most-specific first, the
// chain of more general types it should also match under. A type that
// doesn't implement Ancestor generalizes straight to the category root.
type Ancestor interface {
	Ancestors() []reflect.Type
}

// Composite is implemented by every category that carries an inner element
// type for the purposes of registry dispatch: LIST, GROUP, PACKET.
//
// InnerType returns a zero-value prototype used only to compute the inner
// half of the registry's type key. LIST always returns a non-nil element
// prototype, since per-element-type encoder overrides are a real, named use
// case (§4.2's LIST-of-UINT8 example). GROUP and PACKET return nil: nothing
// in this codec ever needs a per-schema override, only the generic
// group/packet encoder, so their inner ancestry collapses to the wildcard
// tier unconditionally (see typeKeysFor in registry.go).
type Composite interface {
	FieldValue
	InnerType() FieldValue
}

// FieldDecl is one (name, declared field) pair of a GROUP's FIELDS list.
type FieldDecl struct {
	Name  string
	Field FieldValue
}

// ListFieldValue is the LIST category: a length-prefixed homogeneous
// sequence of the declared element type.
type ListFieldValue interface {
	Composite
	Len() int
	GetRawItem(i int) FieldValue
	// Append adds and returns a new UNSET element of the declared inner
	// type, to be filled in place by the decoder.
	Append() FieldValue
	Clear()
}

// GroupFieldValue is the GROUP category: a tag->value multiset described by
// an ordered FIELDS declaration.
type GroupFieldValue interface {
	Composite
	Fields() []FieldDecl
	GetRawField(name string) FieldValue
	// Init (re)initializes the group so its fields are addressable prior to
	// decode.
	Init()
}

// DefinitionStore maps a (identifier, Version) pair to a GroupSchema. It is
// owned by a collaborator (package packetdefs), never by the core.
type DefinitionStore interface {
	GetDefinition(name string, version Version) (GroupSchema, bool)
}

// GroupSchema mints a fresh, UNSET GroupFieldValue of a specific shape.
type GroupSchema interface {
	NewInstance() GroupFieldValue
}

// PacketFieldValue is the PACKET category: the outermost framed record.
type PacketFieldValue interface {
	Composite
	DefinitionIdentifier() string
	DefinitionVersion() string
	Group() GroupFieldValue
	SetGroup(GroupFieldValue)
	Definitions() DefinitionStore
	// SetDefinitionIdentity records the identifier/version the packet
	// decode op read off the wire, before it attempts to resolve a
	// GroupSchema for them.
	SetDefinitionIdentity(identifier, version string)
}
