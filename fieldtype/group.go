package fieldtype

import (
	"reflect"

	codec "github.com/relayfish/playcodec"
)

// FieldSpec declares one member of a GROUP: its name, a factory for a
// fresh UNSET instance of its declared type, and the two attributes the
// field-group encoder consults directly (§4.5) rather than through the
// generic attribute bag — Optional and ExplicitTag are common enough to
// warrant first-class spec fields instead of forcing every schema author
// to fish a *uint16 out of a map.
type FieldSpec struct {
	Name        string
	New         func() codec.FieldValue
	Optional    bool
	ExplicitTag *uint16
}

// Group is the GROUP category: a tag-addressable, ordered multiset of
// fields described by a FIELDS declaration (here, a []FieldSpec). A single
// Group type serves every schema; Schema (below) supplies the FIELDS
// list each NewInstance call needs.
type Group struct {
	attrSet
	specs  []FieldSpec
	order  []string
	values map[string]codec.FieldValue
	unset  bool
}

// NewGroup builds a Group ready to be populated (for encoding) or decoded
// into: every declared field already has an addressable, UNSET slot.
func NewGroup(specs []FieldSpec) *Group {
	g := &Group{specs: specs}
	g.Init()
	return g
}

func (g *Group) Category() codec.Category  { return codec.CategoryGroup }
func (g *Group) IsUnset() bool             { return g.unset }
func (g *Group) Ancestors() []reflect.Type { return []reflect.Type{groupRoot} }
func (g *Group) InnerType() codec.FieldValue { return nil }

// Init (re)allocates the field slots from specs, discarding any existing
// data. The decoder calls this once at the start of every GROUP decode so
// the same schema can be decoded into a fresh instance repeatedly.
func (g *Group) Init() {
	g.values = make(map[string]codec.FieldValue, len(g.specs))
	g.order = make([]string, 0, len(g.specs))
	for _, sp := range g.specs {
		f := sp.New()
		applyFieldSpecAttrs(f, sp.Optional, sp.ExplicitTag)
		g.order = append(g.order, sp.Name)
		g.values[sp.Name] = f
	}
	g.unset = false
}

func (g *Group) Fields() []codec.FieldDecl {
	out := make([]codec.FieldDecl, len(g.order))
	for i, name := range g.order {
		out[i] = codec.FieldDecl{Name: name, Field: g.values[name]}
	}
	return out
}

func (g *Group) GetRawField(name string) codec.FieldValue { return g.values[name] }

// Data and SetData exist only to satisfy FieldValue; a GROUP's real data
// lives in its fields, addressed via GetRawField.
func (g *Group) Data() any { return g }

func (g *Group) SetData(any) error { return nil }

// Schema mints a fresh Group from a fixed FIELDS declaration; it implements
// codec.GroupSchema and is what a packetdefs.Registry hands back
// from GetDefinition.
type Schema struct {
	specs []FieldSpec
}

func NewSchema(specs []FieldSpec) *Schema { return &Schema{specs: specs} }

func (s *Schema) NewInstance() codec.GroupFieldValue { return NewGroup(s.specs) }
