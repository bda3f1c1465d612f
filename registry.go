package codec

import (
	"sync"

	goreflect "github.com/goccy/go-reflect"
	"reflect"
)

// TypeKey identifies a registered encoder. Outer is always present; Inner
// is the zero reflect.Type for non-composite categories and the (possibly
// wildcarded) inner element type for LIST, GROUP, and PACKET.
type TypeKey struct {
	Outer reflect.Type
	Inner reflect.Type
}

// TypeEncoder implements the wire behavior for one registered type key. The
// decode half is expressed as a decodeOp factory rather than a direct
// method so decoding composes into the resumable engine's explicit stack
// (see decode.go) instead of recursing on the Go call stack.
type TypeEncoder interface {
	Encode(s *StreamAdapter, v FieldValue, c *Codec) error
	newDecodeOp(v FieldValue) decodeOp
}

// AnyFieldType is the outer-ancestry root: every FieldValue's candidate
// key list ends at it, and it is also the wildcard inner type of composite
// keys. Register always stores under a sample's most specific key, so an
// encoder only sits at this tier when it is written there directly.
var AnyFieldType = reflect.TypeOf((*FieldValue)(nil)).Elem()

// Registry is a process-wide, read-mostly mapping from TypeKey to
// TypeEncoder, with ancestry-based lookup fallback (§4.2). Registration is
// rare (normally happens at init time) and takes the write lock; lookups
// take the read lock, so they never block each other.
type Registry struct {
	mu       sync.RWMutex
	encoders map[TypeKey]TypeEncoder
}

// NewRegistry creates an empty registry. Most callers use the package-level
// DefaultRegistry instead.
func NewRegistry() *Registry {
	return &Registry{encoders: make(map[TypeKey]TypeEncoder)}
}

// DefaultRegistry is the registry populated by this package's built-in
// encoders (primitives, strings, buffers, lists, groups, packets) and used
// by the package-level Encode/Decode/NewDecoder helpers.
var DefaultRegistry = NewRegistry()

// typeOf returns the concrete Go type backing a FieldValue, using
// goccy/go-reflect's allocation-reduced TypeOf on this hot path (every
// Encode/Decode call resolves at least one type key).
func typeOf(v FieldValue) reflect.Type {
	return goreflect.TypeOf(v)
}

// ancestryChain returns v's type-key ancestry, most specific first, ending
// at root. A type implementing Ancestor may splice itself into a longer
// lineage by declaring the rest of the chain explicitly; §9's notes on
// flattening ancestry walks into a closed set of tags is realized here by
// letting each type pre-declare its own full lineage instead of the
// registry reconstructing inheritance at lookup time.
func ancestryChain(v FieldValue, root reflect.Type) []reflect.Type {
	self := typeOf(v)
	chain := []reflect.Type{self}
	if anc, ok := v.(Ancestor); ok {
		chain = append(chain, anc.Ancestors()...)
	}
	if len(chain) == 0 || chain[len(chain)-1] != root {
		chain = append(chain, root)
	}
	return chain
}

// typeKeysFor yields v's candidate TypeKeys from most specific to most
// general.
func typeKeysFor(v FieldValue) []TypeKey {
	outer := ancestryChain(v, AnyFieldType)

	composite, ok := v.(Composite)
	if !ok {
		keys := make([]TypeKey, len(outer))
		for i, o := range outer {
			keys[i] = TypeKey{Outer: o}
		}
		return keys
	}

	var inner []reflect.Type
	if innerProto := composite.InnerType(); innerProto != nil {
		inner = ancestryChain(innerProto, AnyFieldType)
	} else {
		// GROUP and PACKET: no per-schema override axis, see Composite's
		// doc comment. Collapse straight to the wildcard tier.
		inner = []reflect.Type{AnyFieldType}
	}

	keys := make([]TypeKey, 0, len(outer)*len(inner))
	for _, o := range outer {
		for _, i := range inner {
			keys = append(keys, TypeKey{Outer: o, Inner: i})
		}
	}
	return keys
}

// Register stores enc under the single most-specific key yielded for
// sample's type. sample need not carry any data; it exists purely to
// describe the type being registered (mirroring the source's pattern of
// registering against a bare ComplexFieldType(ElementClass) descriptor).
func (r *Registry) Register(sample FieldValue, enc TypeEncoder) {
	keys := typeKeysFor(sample)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encoders[keys[0]] = enc
}

// Lookup iterates sample's candidate keys from specific to general and
// returns the first registered encoder.
func (r *Registry) Lookup(sample FieldValue) (TypeEncoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, k := range typeKeysFor(sample) {
		if enc, ok := r.encoders[k]; ok {
			return enc, true
		}
	}
	return nil, false
}

// RegisterTypeEncoder is the package-level extension point: it registers
// enc against DefaultRegistry.
func RegisterTypeEncoder(sample FieldValue, enc TypeEncoder) {
	DefaultRegistry.Register(sample, enc)
}

// registerBuiltinScalar wires one of this package's own built-in encoders
// (primitives, strings, buffers) against a category root marker (see
// categoryroots.go), bypassing ancestry computation since the root itself
// is already the registration key a conforming concrete type resolves to.
func registerBuiltinScalar(root any, enc TypeEncoder) {
	DefaultRegistry.mu.Lock()
	defer DefaultRegistry.mu.Unlock()
	DefaultRegistry.encoders[TypeKey{Outer: reflect.TypeOf(root)}] = enc
}

// registerBuiltinComposite wires a built-in composite encoder (group, list,
// packet) against a category root, at the wildcard inner tier. A concrete
// LIST type that declares a genuine per-element-type override registers a
// more specific {listType, elementType} key directly through Register, which
// Lookup will prefer.
func registerBuiltinComposite(root any, enc TypeEncoder) {
	DefaultRegistry.mu.Lock()
	defer DefaultRegistry.mu.Unlock()
	DefaultRegistry.encoders[TypeKey{Outer: reflect.TypeOf(root), Inner: AnyFieldType}] = enc
}
