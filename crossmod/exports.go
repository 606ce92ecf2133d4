package crossmod

import (
	"fmt"
	"iter"
	"sort"

	"github.com/arloliu/codeview/endian"
	"github.com/arloliu/codeview/errs"
	"github.com/arloliu/codeview/format"
	"github.com/arloliu/codeview/subsection"
)

var engine = endian.GetLittleEndianEngine()

// An export entry is a pair of 32-bit indices: the local index, then the
// global index it maps to.
const exportSize = 8

// Export is one entry of a module's cross-scope exports table. The top bit
// of the local index selects the item space: set for id indices, clear for
// type indices. The concrete type is TypeExport or IdExport accordingly.
type Export interface {
	isExport()
}

// TypeExport maps a module-local type index to its global index.
type TypeExport struct {
	Local  format.Local[format.TypeIndex]
	Global format.TypeIndex
}

// IdExport maps a module-local id index to its global index.
type IdExport struct {
	Local  format.Local[format.IdIndex]
	Global format.IdIndex
}

func (TypeExport) isExport() {}
func (IdExport) isExport()   {}

// Exports is the cross-scope exports table of one module. Entries are sorted
// by local index, so lookups are binary searches over the raw table.
type Exports struct {
	data []byte
}

// ParseExports reads the cross-scope exports subsection of a module's debug
// data. A module that exports nothing has no such subsection and gets an
// empty table; that is not an error. A subsection whose length is not a
// multiple of the entry size fails with ErrInvalidExportsLength.
func ParseExports(moduleData []byte) (*Exports, error) {
	data, ok, err := subsection.Find(moduleData, format.KindCrossScopeExports)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Exports{}, nil
	}
	if len(data)%exportSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidExportsLength, len(data))
	}

	return &Exports{data: data}, nil
}

// Len returns the number of entries in the table.
func (e *Exports) Len() int {
	return len(e.data) / exportSize
}

func (e *Exports) entry(i int) (local, global uint32) {
	offset := i * exportSize
	return engine.Uint32(e.data[offset:]), engine.Uint32(e.data[offset+4:])
}

// All sequences the export table in storage order.
func (e *Exports) All() iter.Seq[Export] {
	return func(yield func(Export) bool) {
		for i := range e.Len() {
			local, global := e.entry(i)

			var export Export
			if local&crossModuleBit != 0 {
				export = IdExport{
					Local:  format.Local[format.IdIndex]{Index: format.IdIndex(local)},
					Global: format.IdIndex(global),
				}
			} else {
				export = TypeExport{
					Local:  format.Local[format.TypeIndex]{Index: format.TypeIndex(local)},
					Global: format.TypeIndex(global),
				}
			}

			if !yield(export) {
				return
			}
		}
	}
}

// ResolveGlobal looks up the global index this module exports for the given
// local index. The second result is false when the local index is not
// exported, which is not an error.
func ResolveGlobal[I format.ItemIndex](exports *Exports, local format.Local[I]) (I, bool) {
	key := uint32(local.Index)

	n := exports.Len()
	i := sort.Search(n, func(i int) bool {
		entryLocal, _ := exports.entry(i)
		return entryLocal >= key
	})
	if i < n {
		if entryLocal, entryGlobal := exports.entry(i); entryLocal == key {
			return I(entryGlobal), true
		}
	}

	return 0, false
}
