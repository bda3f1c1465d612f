package fieldtype

import (
	"fmt"
	"reflect"

	codec "github.com/relayfish/playcodec"
)

// Packet is the PACKET category: the outermost framed record, carrying its
// own definition identifier/version and a DefinitionStore used on decode to
// resolve them to a concrete GroupSchema (§4.7).
type Packet struct {
	attrSet
	identifier string
	version    string
	group      codec.GroupFieldValue
	defs       codec.DefinitionStore
}

// NewPacket builds a PACKET field for encoding: identifier and version are
// fixed, group holds the body to serialize.
func NewPacket(identifier, version string, group codec.GroupFieldValue) *Packet {
	return &Packet{identifier: identifier, version: version, group: group}
}

// NewDecodablePacket builds a PACKET field ready for decode: identifier,
// version, and group are all discovered from the wire, resolved against
// defs.
func NewDecodablePacket(defs codec.DefinitionStore) *Packet {
	return &Packet{defs: defs}
}

func (p *Packet) Category() codec.Category    { return codec.CategoryPacket }
func (p *Packet) IsUnset() bool               { return p.group == nil }
func (p *Packet) Ancestors() []reflect.Type   { return []reflect.Type{packetRoot} }
func (p *Packet) InnerType() codec.FieldValue { return nil }

func (p *Packet) DefinitionIdentifier() string        { return p.identifier }
func (p *Packet) DefinitionVersion() string           { return p.version }
func (p *Packet) Group() codec.GroupFieldValue        { return p.group }
func (p *Packet) SetGroup(g codec.GroupFieldValue)    { p.group = g }
func (p *Packet) Definitions() codec.DefinitionStore  { return p.defs }

func (p *Packet) Data() any { return p.group }

func (p *Packet) SetData(v any) error {
	g, ok := v.(codec.GroupFieldValue)
	if !ok {
		return fmt.Errorf("fieldtype: packet data must be a GroupFieldValue, got %T", v)
	}
	p.group = g
	return nil
}

func (p *Packet) SetDefinitionIdentity(identifier, version string) {
	p.identifier = identifier
	p.version = version
}
