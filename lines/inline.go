package lines

import (
	"iter"

	"github.com/arloliu/codeview/annotation"
	"github.com/arloliu/codeview/format"
)

// InlineSite describes one inline call site as supplied by the symbol record
// layer (S_INLINESITE).
type InlineSite struct {
	// Parent is the symbol offset of the enclosing procedure or inline site.
	Parent uint32
	// End is the symbol offset of the matching end record.
	End uint32
	// Inlinee identifies the inlined function in the id stream and matches
	// the Index of an Inlinee record.
	Inlinee format.IdIndex
	// Annotations is the site's binary annotation instruction stream.
	Annotations annotation.Annotations
}

// Lines reconstructs the line records of an inline call site by replaying
// the site's annotation operations against this inlinee's metadata.
//
// parentOffset is the section offset of the procedure containing the call
// site. Records are not guaranteed to be ordered by code offset; callers
// needing a monotonic order must sort.
//
// A record's code length is usually only known once the next operation
// reveals how far its range extends, so emission runs one step behind: each
// emitting operation first back-patches the still-pending record, then
// replaces it. File-change operations are replayed as given even though some
// producers emit them at the wrong position for transitively included
// headers; correcting that is not possible from the stream alone.
func (inl Inlinee) Lines(parentOffset format.SectionOffset, site *InlineSite) iter.Seq2[format.LineInfo, error] {
	return func(yield func(format.LineInfo, error) bool) {
		var (
			file           = inl.File
			codeOffsetBase uint32
			codeOffset     = parentOffset
			codeLength     *uint32
			line           = inl.Line
			lineLength     = uint32(1)
			colStart       *uint32
			colEnd         *uint32
			kind           = format.LineStatement
			pending        *format.LineInfo
		)

		for op, err := range site.Annotations.All() {
			if err != nil {
				yield(format.LineInfo{}, err)
				return
			}

			switch op := op.(type) {
			case annotation.CodeOffset:
				codeOffset.Offset = uint32(op)
			case annotation.ChangeCodeOffsetBase:
				codeOffsetBase = uint32(op)
			case annotation.ChangeCodeOffset:
				codeOffset = codeOffset.Add(uint32(op))
			case annotation.ChangeCodeLength:
				if pending != nil && pending.Length == nil && pending.Kind == kind {
					length := uint32(op)
					pending.Length = &length
				}
				codeOffset = codeOffset.Add(uint32(op))
			case annotation.ChangeFile:
				file = format.FileIndex(op)
			case annotation.ChangeLineOffset:
				line = uint32(int64(line) + int64(op))
			case annotation.ChangeLineEndDelta:
				lineLength = uint32(op)
			case annotation.ChangeRangeKind:
				switch uint32(op) {
				case 0:
					kind = format.LineExpression
				case 1:
					kind = format.LineStatement
				}
			case annotation.ChangeColumnStart:
				start := uint32(op)
				colStart = &start
			case annotation.ChangeColumnEndDelta:
				if colEnd != nil {
					end := uint32(int64(*colEnd) + int64(op))
					colEnd = &end
				}
			case annotation.ChangeCodeOffsetAndLineOffset:
				codeOffset = codeOffset.Add(op.CodeDelta)
				line = uint32(int64(line) + int64(op.LineDelta))
			case annotation.ChangeCodeLengthAndCodeOffset:
				length := op.CodeLength
				codeLength = &length
				codeOffset = codeOffset.Add(op.CodeDelta)
			case annotation.ChangeColumnEnd:
				end := uint32(op)
				colEnd = &end
			}

			if !op.EmitsLineInfo() {
				continue
			}

			// The offset delta just applied tells how far the pending
			// record's range extends. Patch its length unless a later
			// operation already did, or the range kind changed under it.
			if pending != nil && pending.Length == nil && pending.Kind == kind {
				length := codeOffset.Offset - codeOffsetBase
				pending.Length = &length
			}

			info := format.LineInfo{
				Kind:        kind,
				File:        file,
				Offset:      codeOffset.Add(codeOffsetBase),
				Length:      codeLength,
				LineStart:   line,
				LineEnd:     line + lineLength,
				ColumnStart: colStart,
				ColumnEnd:   colEnd,
			}

			// Code length is one-shot; it resets with every record.
			codeLength = nil

			// Swap the new record in and emit the finished previous one.
			previous := pending
			pending = &info
			if previous != nil && !yield(*previous, nil) {
				return
			}
		}

		if pending != nil {
			yield(*pending, nil)
		}
	}
}
