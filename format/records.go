package format

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
)

// LineInfo maps a code range to a source location.
//
// Offsets are relative to the section/offset anchor of the contributing
// lines subsection, or to the parent procedure for reconstructed inline
// lines. Length is nil when the format does not encode it; callers needing
// contiguous ranges must derive it from successive offsets.
type LineInfo struct {
	// Offset is the section-relative position of the first instruction.
	Offset SectionOffset
	// Length is the size of the code range in bytes, if known.
	Length *uint32
	// File references the entry of the file checksums subsection naming the
	// source file.
	File FileIndex
	// LineStart and LineEnd delimit the source lines, inclusive of LineStart.
	LineStart uint32
	LineEnd   uint32
	// ColumnStart and ColumnEnd are set only when the producer emitted
	// column information.
	ColumnStart *uint32
	ColumnEnd   *uint32
	// Kind distinguishes statement from expression records.
	Kind LineKind
}

// Checksum is the checksum variant stored in a file checksum entry. Data is
// a view over the subsection bytes sized per the entry's declared kind.
type Checksum struct {
	Kind ChecksumKind
	Data []byte
}

// Verify recomputes the checksum over contents and compares it to the stored
// digest. Entries of kind ChecksumNone verify nothing and report false.
func (c Checksum) Verify(contents []byte) bool {
	switch c.Kind {
	case ChecksumMD5:
		sum := md5.Sum(contents)
		return bytes.Equal(c.Data, sum[:])
	case ChecksumSHA1:
		sum := sha1.Sum(contents)
		return bytes.Equal(c.Data, sum[:])
	case ChecksumSHA256:
		sum := sha256.Sum256(contents)
		return bytes.Equal(c.Data, sum[:])
	default:
		return false
	}
}

// FileInfo describes one source file contributing to a module.
type FileInfo struct {
	// Name references the file name in the module's string table.
	Name StringRef
	// Checksum is the stored checksum of the file contents.
	Checksum Checksum
}
