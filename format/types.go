// Package format defines the wire-level enumerations, index types and output
// records of the CodeView debug subsection format.
//
// All multi-byte fields of the format are little-endian. Index types are
// distinct named types so that offsets into different tables (string table,
// file checksum table, type stream, id stream) cannot be confused by callers.
package format

import "fmt"

// SubsectionKind identifies the type of a debug subsection.
//
// The set of kinds is closed: values outside KindSymbols..KindCoffSymbolRVA
// that are not the reserved KindIgnore tag are a decode error.
type SubsectionKind uint32

const (
	// Native subsection kinds.
	KindSymbols           SubsectionKind = 0xf1
	KindLines             SubsectionKind = 0xf2
	KindStringTable       SubsectionKind = 0xf3
	KindFileChecksums     SubsectionKind = 0xf4
	KindFrameData         SubsectionKind = 0xf5
	KindInlineeLines      SubsectionKind = 0xf6
	KindCrossScopeImports SubsectionKind = 0xf7
	KindCrossScopeExports SubsectionKind = 0xf8

	// .NET subsection kinds. Recognized as tags only, never decoded.
	KindILLines             SubsectionKind = 0xf9
	KindFuncMDTokenMap      SubsectionKind = 0xfa
	KindTypeMDTokenMap      SubsectionKind = 0xfb
	KindMergedAssemblyInput SubsectionKind = 0xfc

	KindCoffSymbolRVA SubsectionKind = 0xfd

	// KindIgnore marks a subsection whose contents must be skipped. The
	// framer consumes such subsections without yielding them.
	KindIgnore SubsectionKind = 0x8000_0000
)

func (k SubsectionKind) String() string {
	switch k {
	case KindSymbols:
		return "Symbols"
	case KindLines:
		return "Lines"
	case KindStringTable:
		return "StringTable"
	case KindFileChecksums:
		return "FileChecksums"
	case KindFrameData:
		return "FrameData"
	case KindInlineeLines:
		return "InlineeLines"
	case KindCrossScopeImports:
		return "CrossScopeImports"
	case KindCrossScopeExports:
		return "CrossScopeExports"
	case KindILLines:
		return "ILLines"
	case KindFuncMDTokenMap:
		return "FuncMDTokenMap"
	case KindTypeMDTokenMap:
		return "TypeMDTokenMap"
	case KindMergedAssemblyInput:
		return "MergedAssemblyInput"
	case KindCoffSymbolRVA:
		return "CoffSymbolRVA"
	case KindIgnore:
		return "Ignore"
	default:
		return fmt.Sprintf("SubsectionKind(0x%x)", uint32(k))
	}
}

// ChecksumKind identifies the algorithm of a file checksum entry.
type ChecksumKind uint8

const (
	ChecksumNone   ChecksumKind = 0
	ChecksumMD5    ChecksumKind = 1
	ChecksumSHA1   ChecksumKind = 2
	ChecksumSHA256 ChecksumKind = 3
)

func (k ChecksumKind) String() string {
	switch k {
	case ChecksumNone:
		return "None"
	case ChecksumMD5:
		return "MD5"
	case ChecksumSHA1:
		return "SHA1"
	case ChecksumSHA256:
		return "SHA256"
	default:
		return fmt.Sprintf("ChecksumKind(%d)", uint8(k))
	}
}

// LineKind distinguishes statement from expression line records.
//
// The zero value is LineStatement, matching the initial range kind of inline
// line reconstruction.
type LineKind uint8

const (
	LineStatement LineKind = iota
	LineExpression
)

func (k LineKind) String() string {
	switch k {
	case LineStatement:
		return "Statement"
	case LineExpression:
		return "Expression"
	default:
		return fmt.Sprintf("LineKind(%d)", uint8(k))
	}
}

// MarkerKind identifies a debugger hint encoded as a sentinel line number.
// Markers never carry source line information.
type MarkerKind uint8

const (
	// MarkerDoNotStepOnto tells a debugger to skip this address.
	MarkerDoNotStepOnto MarkerKind = iota
	// MarkerDoNotStepInto tells a debugger not to step into this address.
	MarkerDoNotStepInto
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerDoNotStepOnto:
		return "DoNotStepOnto"
	case MarkerDoNotStepInto:
		return "DoNotStepInto"
	default:
		return fmt.Sprintf("MarkerKind(%d)", uint8(k))
	}
}

// CompressionType selects the codec used to retain stored module debug data.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1
	CompressionZstd CompressionType = 0x2
	CompressionS2   CompressionType = 0x3
	CompressionLZ4  CompressionType = 0x4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
