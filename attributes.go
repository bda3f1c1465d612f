package codec

// attrOrDefault reads a typed attribute off a FieldValue, falling back to
// def both when the attribute is absent and when a caller stored a value of
// the wrong type under that name. Mirrors the source's
// PacketFieldType.GetAttribute convenience helper.
func attrOrDefault[T any](f FieldValue, name string, def T) T {
	v := f.Attribute(name, def)
	if tv, ok := v.(T); ok {
		return tv
	}
	return def
}
