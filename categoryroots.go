package codec

// Category root sentinels. The registry's dispatch key is built from Go
// type ancestry (see registry.go), but this package never sees the concrete
// field-type structs a collaborator package (e.g. fieldtype) defines — only
// their declared Ancestors(). Each built-in encoder therefore registers
// against one of these zero-size marker types rather than a concrete
// FieldValue, and a concrete type resolves to it by listing the matching
// root as the last entry of its own Ancestors() chain, e.g.:
//
//	func (Uint) Ancestors() []reflect.Type { return []reflect.Type{reflect.TypeOf(codec.UintRoot{})} }
type (
	UintRoot   struct{}
	IntRoot    struct{}
	BoolRoot   struct{}
	FloatRoot  struct{}
	StringRoot struct{}
	BufferRoot struct{}
	ListRoot   struct{}
	GroupRoot  struct{}
	PacketRoot struct{}
)
