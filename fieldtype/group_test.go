package fieldtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codec "github.com/relayfish/playcodec"
	"github.com/relayfish/playcodec/streamio"
)

func telemetrySpecs() []FieldSpec {
	return []FieldSpec{
		{Name: "field1", New: func() codec.FieldValue { return NewUint() }},
		{Name: "field2", New: func() codec.FieldValue { return NewUint() }},
		{Name: "list1", New: func() codec.FieldValue {
			return NewList(func() codec.FieldValue { return NewUint().WithMaxValue(0xFF) })
		}},
	}
}

func TestGroupInitCreatesAddressableSlots(t *testing.T) {
	g := NewGroup(telemetrySpecs())
	require.Len(t, g.Fields(), 3)
	assert.NotNil(t, g.GetRawField("field1"))
	assert.True(t, g.GetRawField("field1").IsUnset())
}

func TestGroupEncodeDecodeRoundTrip(t *testing.T) {
	g := NewGroup(telemetrySpecs())
	g.GetRawField("field1").(*Uint).SetUint64(50)
	g.GetRawField("field2").(*Uint).SetUint64(500)
	list := g.GetRawField("list1").(*List)
	list.Append().(*Uint).SetUint64(0)
	list.Append().(*Uint).SetUint64(255)

	mem := streamio.NewMemoryStream()
	s := codec.NewStreamAdapter(mem)
	require.NoError(t, codec.Encode(s, g))

	dst := NewGroup(telemetrySpecs())
	s2 := codec.NewStreamAdapter(streamio.NewMemoryStreamFromBytes(mem.Bytes()))
	require.NoError(t, codec.Decode(s2, dst))

	assert.Equal(t, uint64(50), dst.GetRawField("field1").(*Uint).Uint64())
	assert.Equal(t, uint64(500), dst.GetRawField("field2").(*Uint).Uint64())
	dstList := dst.GetRawField("list1").(*List)
	require.Equal(t, 2, dstList.Len())
	assert.Equal(t, uint64(0), dstList.GetRawItem(0).Data())
	assert.Equal(t, uint64(255), dstList.GetRawItem(1).Data())
}

func TestGroupOptionalFieldOmittedWhenUnset(t *testing.T) {
	specs := []FieldSpec{
		{Name: "field1", New: func() codec.FieldValue { return NewUint() }, Optional: true},
	}
	g := NewGroup(specs)
	mem := streamio.NewMemoryStream()
	s := codec.NewStreamAdapter(mem)
	require.NoError(t, codec.Encode(s, g))
	assert.Equal(t, []byte{0x00, 0x00}, mem.Bytes())
}

func TestGroupExplicitTagHonored(t *testing.T) {
	tag := uint16(7)
	specs := []FieldSpec{
		{Name: "a", New: func() codec.FieldValue { return NewUint().WithMaxValue(0xFF) }, ExplicitTag: &tag},
	}
	g := NewGroup(specs)
	g.GetRawField("a").(*Uint).SetUint64(9)

	mem := streamio.NewMemoryStream()
	s := codec.NewStreamAdapter(mem)
	require.NoError(t, codec.Encode(s, g))

	// count=1, tag=7, value=9
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x07, 0x09}, mem.Bytes())
}

func TestSchemaNewInstance(t *testing.T) {
	schema := NewSchema(telemetrySpecs())
	instance := schema.NewInstance()
	require.NotNil(t, instance)
	assert.Len(t, instance.Fields(), 3)
}
