// Package annotation decodes the compact binary annotation instruction
// streams attached to inline call site symbols.
//
// An annotation stream is a byte code describing how code offset, source
// line, column and file evolve across an inlined range. Operands use a
// variable-width encoding: the high bits of the first byte select a 1-, 2- or
// 4-byte field. Signed operands store the sign in the least significant bit.
// A zero opcode terminates the stream; producers pad the symbol record with
// zero bytes for alignment.
package annotation

import (
	"fmt"
	"iter"

	"github.com/arloliu/codeview/errs"
	"github.com/arloliu/codeview/format"
	"github.com/arloliu/codeview/internal/buffer"
)

// Op is one decoded annotation operation. The concrete type carries the
// operand; EmitsLineInfo reports whether replaying this operation completes a
// line record.
type Op interface {
	// EmitsLineInfo reports whether this operation emits a line info record
	// when replayed against inlinee state.
	EmitsLineInfo() bool

	isOp()
}

// CodeOffset sets the code offset to an absolute value.
type CodeOffset uint32

// ChangeCodeOffsetBase sets the rebase value added to emitted code offsets.
type ChangeCodeOffsetBase uint32

// ChangeCodeOffset advances the code offset by a delta. Emits line info.
type ChangeCodeOffset uint32

// ChangeCodeLength sets the code length of the previous line record and
// advances the code offset past it.
type ChangeCodeLength uint32

// ChangeFile switches the current source file.
type ChangeFile format.FileIndex

// ChangeLineOffset adjusts the current line number by a signed delta.
type ChangeLineOffset int32

// ChangeLineEndDelta sets the number of lines a record spans.
type ChangeLineEndDelta uint32

// ChangeRangeKind switches between statement (1) and expression (0) records.
type ChangeRangeKind uint32

// ChangeColumnStart sets the start column.
type ChangeColumnStart uint32

// ChangeColumnEndDelta adjusts the end column by a signed delta.
type ChangeColumnEndDelta int16

// ChangeCodeOffsetAndLineOffset advances the code offset and adjusts the
// line number in one operation. Emits line info.
type ChangeCodeOffsetAndLineOffset struct {
	CodeDelta uint32
	LineDelta int32
}

// ChangeCodeLengthAndCodeOffset sets the code length of the record being
// completed and advances the code offset. Emits line info.
type ChangeCodeLengthAndCodeOffset struct {
	CodeLength uint32
	CodeDelta  uint32
}

// ChangeColumnEnd sets the end column to an absolute value.
type ChangeColumnEnd uint32

func (CodeOffset) isOp()                    {}
func (ChangeCodeOffsetBase) isOp()          {}
func (ChangeCodeOffset) isOp()              {}
func (ChangeCodeLength) isOp()              {}
func (ChangeFile) isOp()                    {}
func (ChangeLineOffset) isOp()              {}
func (ChangeLineEndDelta) isOp()            {}
func (ChangeRangeKind) isOp()               {}
func (ChangeColumnStart) isOp()             {}
func (ChangeColumnEndDelta) isOp()          {}
func (ChangeCodeOffsetAndLineOffset) isOp() {}
func (ChangeCodeLengthAndCodeOffset) isOp() {}
func (ChangeColumnEnd) isOp()               {}

func (CodeOffset) EmitsLineInfo() bool                    { return false }
func (ChangeCodeOffsetBase) EmitsLineInfo() bool          { return false }
func (ChangeCodeOffset) EmitsLineInfo() bool              { return true }
func (ChangeCodeLength) EmitsLineInfo() bool              { return false }
func (ChangeFile) EmitsLineInfo() bool                    { return false }
func (ChangeLineOffset) EmitsLineInfo() bool              { return false }
func (ChangeLineEndDelta) EmitsLineInfo() bool            { return false }
func (ChangeRangeKind) EmitsLineInfo() bool               { return false }
func (ChangeColumnStart) EmitsLineInfo() bool             { return false }
func (ChangeColumnEndDelta) EmitsLineInfo() bool          { return false }
func (ChangeCodeOffsetAndLineOffset) EmitsLineInfo() bool { return true }
func (ChangeCodeLengthAndCodeOffset) EmitsLineInfo() bool { return true }
func (ChangeColumnEnd) EmitsLineInfo() bool               { return false }

// Opcode values of the binary annotation byte code.
const (
	opInvalid uint32 = iota
	opCodeOffset
	opChangeCodeOffsetBase
	opChangeCodeOffset
	opChangeCodeLength
	opChangeFile
	opChangeLineOffset
	opChangeLineEndDelta
	opChangeRangeKind
	opChangeColumnStart
	opChangeColumnEndDelta
	opChangeCodeOffsetAndLineOffset
	opChangeCodeLengthAndCodeOffset
	opChangeColumnEnd
)

// Annotations is the undecoded annotation byte code of one inline site.
type Annotations struct {
	data []byte
}

// New wraps the raw annotation bytes of an inline site symbol.
func New(data []byte) Annotations {
	return Annotations{data: data}
}

// readCompressedUint decodes the variable-width unsigned operand encoding.
// The count of leading one bits in the first byte selects the width:
// 0xxxxxxx is one byte, 10xxxxxx xxxxxxxx is two, and 110xxxxx followed by
// three bytes is four. Wider prefixes are invalid.
func readCompressedUint(r *buffer.Reader) (uint32, error) {
	b0, err := r.Uint8()
	if err != nil {
		return 0, err
	}

	switch {
	case b0&0x80 == 0x00:
		return uint32(b0), nil
	case b0&0xc0 == 0x80:
		b1, err := r.Uint8()
		if err != nil {
			return 0, err
		}

		return uint32(b0&0x3f)<<8 | uint32(b1), nil
	case b0&0xe0 == 0xc0:
		rest, err := r.Take(3)
		if err != nil {
			return 0, err
		}

		return uint32(b0&0x1f)<<24 | uint32(rest[0])<<16 | uint32(rest[1])<<8 | uint32(rest[2]), nil
	default:
		return 0, fmt.Errorf("%w: prefix byte 0x%02x", errs.ErrInvalidAnnotation, b0)
	}
}

// decodeSigned maps the sign-in-LSB operand encoding onto a signed value.
func decodeSigned(value uint32) int32 {
	if value&1 != 0 {
		return -int32(value >> 1)
	}

	return int32(value >> 1)
}

// All returns the decoded operation sequence. The sequence is finite,
// restartable per call, and stops at the first zero opcode, which producers
// use as alignment padding.
func (a Annotations) All() iter.Seq2[Op, error] {
	return func(yield func(Op, error) bool) {
		r := buffer.NewReader(a.data)
		for !r.Empty() {
			opcode, err := readCompressedUint(r)
			if err != nil {
				yield(nil, err)
				return
			}
			if opcode == opInvalid {
				return
			}

			op, err := readOp(r, opcode)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(op, nil) {
				return
			}
		}
	}
}

func readOp(r *buffer.Reader, opcode uint32) (Op, error) {
	operand, err := readCompressedUint(r)
	if err != nil {
		return nil, err
	}

	switch opcode {
	case opCodeOffset:
		return CodeOffset(operand), nil
	case opChangeCodeOffsetBase:
		return ChangeCodeOffsetBase(operand), nil
	case opChangeCodeOffset:
		return ChangeCodeOffset(operand), nil
	case opChangeCodeLength:
		return ChangeCodeLength(operand), nil
	case opChangeFile:
		return ChangeFile(operand), nil
	case opChangeLineOffset:
		return ChangeLineOffset(decodeSigned(operand)), nil
	case opChangeLineEndDelta:
		return ChangeLineEndDelta(operand), nil
	case opChangeRangeKind:
		return ChangeRangeKind(operand), nil
	case opChangeColumnStart:
		return ChangeColumnStart(operand), nil
	case opChangeColumnEndDelta:
		return ChangeColumnEndDelta(decodeSigned(operand)), nil
	case opChangeCodeOffsetAndLineOffset:
		// One operand packs both deltas: the low nibble advances the code
		// offset, the rest is a signed line delta.
		return ChangeCodeOffsetAndLineOffset{
			CodeDelta: operand & 0xf,
			LineDelta: decodeSigned(operand >> 4),
		}, nil
	case opChangeCodeLengthAndCodeOffset:
		second, err := readCompressedUint(r)
		if err != nil {
			return nil, err
		}

		return ChangeCodeLengthAndCodeOffset{CodeLength: operand, CodeDelta: second}, nil
	case opChangeColumnEnd:
		return ChangeColumnEnd(operand), nil
	default:
		return nil, fmt.Errorf("%w: opcode %d", errs.ErrUnknownAnnotationOp, opcode)
	}
}
