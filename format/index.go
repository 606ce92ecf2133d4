package format

// FileIndex references an entry of the file checksums subsection.
//
// The value is the byte offset of the entry within the subsection, not an
// ordinal index.
type FileIndex uint32

// StringRef references a string in the module's string table by byte offset.
type StringRef uint32

// ModuleRef references the name of an imported module in the string table.
type ModuleRef StringRef

// TypeIndex is an index into the type stream (TPI).
type TypeIndex uint32

// IdIndex is an index into the id stream (IPI).
type IdIndex uint32

// ItemIndex constrains the two index spaces that participate in cross-module
// resolution. Keeping TypeIndex and IdIndex distinct prevents callers from
// resolving an id against the type space or vice versa.
type ItemIndex interface {
	TypeIndex | IdIndex
}

// IsCrossModule reports whether the index refers into another module. Such
// indices must be resolved through that module's import and export tables
// before they can be looked up in a global stream.
func (i TypeIndex) IsCrossModule() bool { return i&0x8000_0000 != 0 }

// IsCrossModule reports whether the index refers into another module.
func (i IdIndex) IsCrossModule() bool { return i&0x8000_0000 != 0 }

// Local wraps an index that is only meaningful within its declaring module.
// It must be resolved through the declaring module's export table to obtain
// the global index.
type Local[I ItemIndex] struct {
	Index I
}

// SectionOffset is an offset into a section of the executable image, as
// stored inside the PDB before address translation.
type SectionOffset struct {
	Offset  uint32
	Section uint16
}

// Add returns the offset advanced by delta bytes within the same section.
// The addition wraps around like the 32-bit arithmetic of the producer.
func (s SectionOffset) Add(delta uint32) SectionOffset {
	s.Offset += delta
	return s
}
