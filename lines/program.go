package lines

import (
	"fmt"
	"iter"

	"github.com/arloliu/codeview/errs"
	"github.com/arloliu/codeview/format"
	"github.com/arloliu/codeview/subsection"
)

// LineProgram provides access to the line-number information of one module.
//
// A LineProgram borrows the module's byte slice and never mutates it; any
// number of sequences may be driven over the same program, including from
// independent goroutines.
type LineProgram struct {
	data      []byte
	checksums checksumSubsection
}

// ParseLineProgram prepares the line information of a module's debug data.
// A module without a file checksums subsection gets an empty file table;
// that is not an error.
func ParseLineProgram(moduleData []byte) (*LineProgram, error) {
	checksums, _, err := subsection.Find(moduleData, format.KindFileChecksums)
	if err != nil {
		return nil, err
	}

	return &LineProgram{
		data:      moduleData,
		checksums: checksumSubsection{data: checksums},
	}, nil
}

// Lines sequences the line records of all lines subsections of the module,
// in storage order. Marker entries are skipped; lengths are not inferred.
func (p *LineProgram) Lines() iter.Seq2[format.LineInfo, error] {
	return func(yield func(format.LineInfo, error) bool) {
		for sub, err := range subsection.All(p.data) {
			if err != nil {
				yield(format.LineInfo{}, err)
				return
			}
			if sub.Kind != format.KindLines {
				continue
			}

			section, err := parseLinesSubsection(sub.Data)
			if err != nil {
				yield(format.LineInfo{}, err)
				return
			}
			for info, err := range section.lineInfos() {
				if !yield(info, err) || err != nil {
					return
				}
			}
		}
	}
}

// LinesAt sequences the line records of the single lines subsection anchored
// at the given section offset. Lines subsections are non-overlapping, so the
// first header match is authoritative. An offset with no matching subsection
// yields an empty sequence.
func (p *LineProgram) LinesAt(offset format.SectionOffset) iter.Seq2[format.LineInfo, error] {
	return func(yield func(format.LineInfo, error) bool) {
		for sub, err := range subsection.All(p.data) {
			if err != nil {
				yield(format.LineInfo{}, err)
				return
			}
			if sub.Kind != format.KindLines {
				continue
			}

			section, err := parseLinesSubsection(sub.Data)
			if err != nil {
				yield(format.LineInfo{}, err)
				return
			}
			if section.header.Offset != offset {
				continue
			}

			for info, err := range section.lineInfos() {
				if !yield(info, err) || err != nil {
					return
				}
			}

			return
		}
	}
}

// Files sequences all entries of the module's file checksum table.
func (p *LineProgram) Files() iter.Seq2[format.FileInfo, error] {
	return p.checksums.entriesAt(0)
}

// FileInfoAt returns the file entry at the given file index. The index is
// the byte offset of the entry inside the file checksums subsection, which
// is how blocks and inlinee records reference files.
func (p *LineProgram) FileInfoAt(index format.FileIndex) (format.FileInfo, error) {
	if int(index) >= len(p.checksums.data) {
		return format.FileInfo{}, fmt.Errorf("%w: 0x%x", errs.ErrInvalidFileChecksumOffset, uint32(index))
	}

	for info, err := range p.checksums.entriesAt(index) {
		if err != nil {
			return format.FileInfo{}, err
		}

		return info, nil
	}

	return format.FileInfo{}, fmt.Errorf("%w: 0x%x", errs.ErrInvalidFileChecksumOffset, uint32(index))
}
