// Package lines decodes the line-number information of a module: the lines
// subsections mapping code offsets to source lines, the file checksum table,
// the inlinee line table, and the reconstruction of line records for inlined
// call sites.
package lines

import (
	"fmt"
	"iter"

	"github.com/arloliu/codeview/errs"
	"github.com/arloliu/codeview/format"
	"github.com/arloliu/codeview/internal/buffer"
)

// Flag bit of a lines subsection header declaring column records.
const linesHaveColumns = 0x0001

// Sentinel start-line values marking debugger hints instead of real lines.
const (
	markerDoNotStepOnto = 0x00fe_efee
	markerDoNotStepInto = 0x00f0_0f00
)

const (
	linesHeaderSize  = 12 // offset(4) + section(2) + flags(2) + code size(4)
	blockHeaderSize  = 12 // file index(4) + num lines(4) + block size(4)
	lineRecordSize   = 8  // code offset(4) + packed line word(4)
	columnRecordSize = 4  // start column(2) + end column(2)
)

// linesHeader is the per-subsection header of a lines subsection.
type linesHeader struct {
	// Offset anchors all line records of this contribution in a section of
	// the image.
	Offset   format.SectionOffset
	Flags    uint16
	CodeSize uint32
}

func (h linesHeader) hasColumns() bool {
	return h.Flags&linesHaveColumns != 0
}

// linesSubsection is one decoded lines subsection: the header plus the raw
// block data following it.
type linesSubsection struct {
	header linesHeader
	data   []byte
}

func parseLinesSubsection(data []byte) (linesSubsection, error) {
	r := buffer.NewReader(data)

	var h linesHeader
	var err error
	if h.Offset.Offset, err = r.Uint32(); err != nil {
		return linesSubsection{}, err
	}
	if h.Offset.Section, err = r.Uint16(); err != nil {
		return linesSubsection{}, err
	}
	if h.Flags, err = r.Uint16(); err != nil {
		return linesSubsection{}, err
	}
	if h.CodeSize, err = r.Uint32(); err != nil {
		return linesSubsection{}, err
	}

	return linesSubsection{header: h, data: data[r.Pos():]}, nil
}

// blockHeader introduces a run of line records sharing one source file.
type blockHeader struct {
	// FileIndex is the byte offset of the file's entry in the file checksums
	// subsection.
	FileIndex uint32
	// NumLines is the number of line records in this block. If the
	// subsection declares columns, the same number of column records follows
	// the line records.
	NumLines uint32
	// BlockSize is the total byte size of the block including this header.
	BlockSize uint32
}

// block is one decoded lines block with its record spans sliced out.
type block struct {
	header     blockHeader
	lineData   []byte
	columnData []byte
}

// blocks sequences the blocks of a lines subsection.
func (s linesSubsection) blocks() iter.Seq2[block, error] {
	return func(yield func(block, error) bool) {
		r := buffer.NewReader(s.data)
		for !r.Empty() {
			b, err := readBlock(r, s.header)
			if !yield(b, err) || err != nil {
				return
			}
		}
	}
}

func readBlock(r *buffer.Reader, sub linesHeader) (block, error) {
	var h blockHeader
	var err error
	if h.FileIndex, err = r.Uint32(); err != nil {
		return block{}, err
	}
	if h.NumLines, err = r.Uint32(); err != nil {
		return block{}, err
	}
	if h.BlockSize, err = r.Uint32(); err != nil {
		return block{}, err
	}

	if h.BlockSize < blockHeaderSize {
		return block{}, fmt.Errorf("%w: block size %d below header size",
			errs.ErrUnexpectedEOF, h.BlockSize)
	}

	// Consume the whole block at once so unknown trailing data can never
	// desynchronize the cursor.
	data, err := r.Take(int(h.BlockSize) - blockHeaderSize)
	if err != nil {
		return block{}, err
	}

	lineSize := int(h.NumLines) * lineRecordSize
	columnSize := 0
	if sub.hasColumns() {
		columnSize = int(h.NumLines) * columnRecordSize
	}
	if lineSize+columnSize > len(data) {
		return block{}, fmt.Errorf("%w: block declares %d line records in %d bytes",
			errs.ErrUnexpectedEOF, h.NumLines, len(data))
	}

	// Bytes beyond the line and column records are tolerated; future format
	// versions may append data here.
	return block{
		header:     h,
		lineData:   data[:lineSize],
		columnData: data[lineSize : lineSize+columnSize],
	}, nil
}

// lineEntry is one decoded line record: either a source line number or a
// debugger marker.
type lineEntry struct {
	offset uint32

	// Set for number entries.
	startLine uint32
	endLine   uint32
	kind      format.LineKind

	// Set for marker entries.
	isMarker bool
	marker   format.MarkerKind
}

// decodeLineRecord unpacks the bit-packed line word.
//
// The word packs a 24-bit start line, a 7-bit end line field and a statement
// flag. Sentinel start lines are debugger hints and must never be confused
// with real line records.
func decodeLineRecord(offset, packed uint32) lineEntry {
	startLine := packed & 0x00ff_ffff

	switch startLine {
	case markerDoNotStepOnto:
		return lineEntry{offset: offset, isMarker: true, marker: format.MarkerDoNotStepOnto}
	case markerDoNotStepInto:
		return lineEntry{offset: offset, isMarker: true, marker: format.MarkerDoNotStepInto}
	}

	// Some producers store the truncated absolute end line here instead of a
	// delta. Combine the high bits of the start line with the stored low
	// seven bits to recover the full end line.
	lineDelta := (packed >> 24) & 0x7f
	endLine := (startLine &^ 0x7f) | lineDelta

	// An end line below the start line means the low seven bits wrapped.
	// The end line is within 128 lines of the start, so one carry fixes it.
	if endLine < startLine {
		endLine += 1 << 7
	}

	kind := format.LineExpression
	if packed&0x8000_0000 != 0 {
		kind = format.LineStatement
	}

	return lineEntry{
		offset:    offset,
		startLine: startLine,
		endLine:   endLine,
		kind:      kind,
	}
}

// columnEntry pairs positionally with the line record at the same index of
// the same block.
type columnEntry struct {
	startColumn uint16
	endColumn   uint16
}

// entries walks the line records of the block together with their column
// records, when present.
func (b block) entries() iter.Seq2[pairedEntry, error] {
	return func(yield func(pairedEntry, error) bool) {
		lr := buffer.NewReader(b.lineData)
		cr := buffer.NewReader(b.columnData)
		hasColumns := len(b.columnData) > 0

		for !lr.Empty() {
			offset, err := lr.Uint32()
			if err != nil {
				yield(pairedEntry{}, err)
				return
			}
			packed, err := lr.Uint32()
			if err != nil {
				yield(pairedEntry{}, err)
				return
			}

			p := pairedEntry{line: decodeLineRecord(offset, packed)}
			if hasColumns {
				if p.column.startColumn, err = cr.Uint16(); err != nil {
					yield(pairedEntry{}, err)
					return
				}
				if p.column.endColumn, err = cr.Uint16(); err != nil {
					yield(pairedEntry{}, err)
					return
				}
				p.hasColumn = true
			}

			if !yield(p, nil) {
				return
			}
		}
	}
}

type pairedEntry struct {
	line      lineEntry
	column    columnEntry
	hasColumn bool
}

// lineInfos flattens one lines subsection into LineInfo records, skipping
// markers.
func (s linesSubsection) lineInfos() iter.Seq2[format.LineInfo, error] {
	return func(yield func(format.LineInfo, error) bool) {
		for b, err := range s.blocks() {
			if err != nil {
				yield(format.LineInfo{}, err)
				return
			}
			for p, err := range b.entries() {
				if err != nil {
					yield(format.LineInfo{}, err)
					return
				}
				if p.line.isMarker {
					// Markers carry no line information at this layer.
					continue
				}

				info := format.LineInfo{
					Offset:    s.header.Offset.Add(p.line.offset),
					Length:    nil,
					File:      format.FileIndex(b.header.FileIndex),
					LineStart: p.line.startLine,
					LineEnd:   p.line.endLine,
					Kind:      p.line.kind,
				}
				if p.hasColumn {
					start := uint32(p.column.startColumn)
					end := uint32(p.column.endColumn)
					info.ColumnStart = &start
					info.ColumnEnd = &end
				}

				if !yield(info, nil) {
					return
				}
			}
		}
	}
}
