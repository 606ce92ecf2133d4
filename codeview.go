// Package codeview decodes the per-module debug information subsections of
// the CodeView format, as stored in PDB files.
//
// A module's debug data is a sequence of typed subsections carrying line
// programs, file checksum tables, inlinee metadata and cross-module
// import/export tables. This package exposes each concern through its own
// subpackage and re-exports the common entry points here:
//
//   - lines: line programs, file checksums, inline line reconstruction
//   - crossmod: resolving type and id indices across module boundaries
//   - subsection: the raw subsection framing
//   - annotation: binary annotation streams of inline call sites
//   - store: a compressed in-memory store of many modules' debug data
//
// All decoders operate on byte slices without copying and are safe for
// concurrent use over the same data.
package codeview

import (
	"iter"

	"github.com/arloliu/codeview/crossmod"
	"github.com/arloliu/codeview/format"
	"github.com/arloliu/codeview/internal/hash"
	"github.com/arloliu/codeview/lines"
	"github.com/arloliu/codeview/store"
)

// ParseLineProgram prepares the line-number information of a module's debug
// data.
func ParseLineProgram(moduleData []byte) (*lines.LineProgram, error) {
	return lines.ParseLineProgram(moduleData)
}

// Inlinees sequences the inlinee records of a module's debug data.
func Inlinees(moduleData []byte) iter.Seq2[lines.Inlinee, error] {
	return lines.Inlinees(moduleData)
}

// ParseImports reads the cross-scope imports table of a module's debug data.
func ParseImports(moduleData []byte) (*crossmod.Imports, error) {
	return crossmod.ParseImports(moduleData)
}

// ParseExports reads the cross-scope exports table of a module's debug data.
func ParseExports(moduleData []byte) (*crossmod.Exports, error) {
	return crossmod.ParseExports(moduleData)
}

// ResolveImport resolves a cross-module index to its declaring module and
// the local index there, using the referencing module's imports table.
func ResolveImport[I format.ItemIndex](imports *crossmod.Imports, index I) (crossmod.Ref[I], error) {
	return crossmod.ResolveImport(imports, index)
}

// ResolveGlobal looks up the global index the declaring module exports for a
// local index.
func ResolveGlobal[I format.ItemIndex](exports *crossmod.Exports, local format.Local[I]) (I, bool) {
	return crossmod.ResolveGlobal(exports, local)
}

// ModuleID computes the 64-bit ID a Store keys the named module under.
func ModuleID(name string) uint64 {
	return hash.ID(name)
}

// NewStore creates an empty module store using the given compression.
func NewStore(compression format.CompressionType) (*store.Store, error) {
	return store.New(compression)
}
