package packetdefs

import (
	codec "github.com/relayfish/playcodec"
	"github.com/relayfish/playcodec/fieldtype"
)

// Demo returns a registry pre-populated with two definitions used by the
// package's own tests and by cmd/packetcat's default run: an empty "demo"
// packet and a three-field "telemetry" packet matching the codec's own
// worked example (u32 field1, u32 field2, a LIST-of-u8 list1).
func Demo() *Registry {
	r := NewRegistry()

	r.Register("demo", codec.Version{Major: 1, Minor: 0, Patch: 0},
		fieldtype.NewSchema(nil))

	r.Register("telemetry", codec.Version{Major: 1, Minor: 0, Patch: 0},
		fieldtype.NewSchema([]fieldtype.FieldSpec{
			{Name: "field1", New: func() codec.FieldValue { return fieldtype.NewUint() }},
			{Name: "field2", New: func() codec.FieldValue { return fieldtype.NewUint() }},
			{Name: "list1", New: func() codec.FieldValue {
				return fieldtype.NewList(func() codec.FieldValue { return fieldtype.NewUint().WithMaxValue(0xFF) })
			}},
		}))

	return r
}
