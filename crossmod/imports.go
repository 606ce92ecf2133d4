// Package crossmod resolves type and id indices across module boundaries.
//
// A module may refer to items declared in another compilation unit. Such
// indices carry the cross-module bit and encode a slot in the referencing
// module's cross-scope imports table, which names the declaring module and
// the item's local index there. The declaring module in turn publishes a
// sorted cross-scope exports table mapping local indices to global ones.
// Resolving a reference is therefore a two-step walk: imports on the
// referencing side, exports on the declaring side.
package crossmod

import (
	"fmt"
	"iter"

	"github.com/arloliu/codeview/errs"
	"github.com/arloliu/codeview/format"
	"github.com/arloliu/codeview/internal/buffer"
	"github.com/arloliu/codeview/subsection"
)

// Layout of a cross-module reference: the top bit marks the reference as
// cross-module, the next 11 bits select the import module and the low 20
// bits the import slot within it.
const (
	crossModuleBit  = 0x8000_0000
	moduleIndexBits = 11
	importIndexMask = 0x000f_ffff
)

// importModule is one module's slot list in the cross-scope imports
// subsection: the declaring module's name and its raw little-endian import
// indices, left unparsed until referenced.
type importModule struct {
	name format.ModuleRef
	raw  []byte
}

// get returns the local index stored in the given import slot.
func (m importModule) get(slot uint32) (uint32, bool) {
	offset := int(slot) * 4
	if offset+4 > len(m.raw) {
		return 0, false
	}

	return engine.Uint32(m.raw[offset:]), true
}

// Ref is a resolved cross-module reference: the module declaring the item
// and the item's local index within that module. The local index still needs
// the declaring module's export table to become a global index.
type Ref[I format.ItemIndex] struct {
	Module format.ModuleRef
	Local  format.Local[I]
}

// Imports is the cross-scope imports table of one module.
type Imports struct {
	modules []importModule
}

// ParseImports reads the cross-scope imports subsection of a module's debug
// data. A module that imports nothing has no such subsection and gets an
// empty table; that is not an error.
func ParseImports(moduleData []byte) (*Imports, error) {
	data, ok, err := subsection.Find(moduleData, format.KindCrossScopeImports)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Imports{}, nil
	}

	var modules []importModule
	r := buffer.NewReader(data)
	for !r.Empty() {
		name, err := r.Uint32()
		if err != nil {
			return nil, err
		}
		count, err := r.Uint32()
		if err != nil {
			return nil, err
		}
		raw, err := r.Take(int(count) * 4)
		if err != nil {
			return nil, err
		}

		modules = append(modules, importModule{name: format.ModuleRef(name), raw: raw})
	}

	return &Imports{modules: modules}, nil
}

// ResolveImport resolves a cross-module index to the declaring module and
// the item's local index there.
//
// The index must have its cross-module bit set; check IsCrossModule first.
// An index that is already global fails with ErrNotACrossModuleRef, and one
// selecting a module or slot the table does not cover fails with
// ErrCrossModuleRefNotFound.
func ResolveImport[I format.ItemIndex](imports *Imports, index I) (Ref[I], error) {
	raw := uint32(index)
	if raw&crossModuleBit == 0 {
		return Ref[I]{}, fmt.Errorf("%w: 0x%x", errs.ErrNotACrossModuleRef, raw)
	}

	moduleIndex := (raw >> 20) & (1<<moduleIndexBits - 1)
	importIndex := raw & importIndexMask

	if int(moduleIndex) >= len(imports.modules) {
		return Ref[I]{}, fmt.Errorf("%w: 0x%x", errs.ErrCrossModuleRefNotFound, raw)
	}
	module := imports.modules[moduleIndex]

	local, ok := module.get(importIndex)
	if !ok {
		return Ref[I]{}, fmt.Errorf("%w: 0x%x", errs.ErrCrossModuleRefNotFound, raw)
	}

	return Ref[I]{
		Module: module.name,
		Local:  format.Local[I]{Index: I(local)},
	}, nil
}

// Modules sequences the names of all modules listed in the imports table, in
// storage order.
func (im *Imports) Modules() iter.Seq[format.ModuleRef] {
	return func(yield func(format.ModuleRef) bool) {
		for _, module := range im.modules {
			if !yield(module.name) {
				return
			}
		}
	}
}
