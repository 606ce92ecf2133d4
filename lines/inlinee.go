package lines

import (
	"iter"

	"github.com/arloliu/codeview/format"
	"github.com/arloliu/codeview/internal/buffer"
	"github.com/arloliu/codeview/subsection"
)

// Signatures of the inlinee lines subsection. The extended signature adds a
// per-record list of extra file offsets.
const (
	inlineeSourceLineSignature   = 0x0
	inlineeSourceLineSignatureEx = 0x1
)

// Inlinee is one record of the inlinee lines subsection: the source location
// at which an inlined function is defined.
type Inlinee struct {
	// Index identifies the inlined function in the id stream (IPI).
	Index format.IdIndex
	// File references the checksum entry of the file declaring the inlinee.
	File format.FileIndex
	// Line is the first source line of the inlinee's definition.
	Line uint32
	// ExtraFiles is the raw span of additional file offsets (4 bytes each),
	// present only under the extended signature. Decoding individual entries
	// is deferred until a consumer needs them.
	ExtraFiles []byte
}

// inlineeSubsection is a decoded inlinee lines subsection.
type inlineeSubsection struct {
	extended bool
	data     []byte
}

func parseInlineeSubsection(data []byte) (inlineeSubsection, error) {
	r := buffer.NewReader(data)
	signature, err := r.Uint32()
	if err != nil {
		return inlineeSubsection{}, err
	}

	return inlineeSubsection{
		extended: signature == inlineeSourceLineSignatureEx,
		data:     data[r.Pos():],
	}, nil
}

// all sequences the inlinee records, terminating when the buffer is empty.
func (s inlineeSubsection) all() iter.Seq2[Inlinee, error] {
	return func(yield func(Inlinee, error) bool) {
		r := buffer.NewReader(s.data)
		for !r.Empty() {
			inl, err := readInlinee(r, s.extended)
			if !yield(inl, err) || err != nil {
				return
			}
		}
	}
}

func readInlinee(r *buffer.Reader, extended bool) (Inlinee, error) {
	var inl Inlinee

	inlinee, err := r.Uint32()
	if err != nil {
		return Inlinee{}, err
	}
	file, err := r.Uint32()
	if err != nil {
		return Inlinee{}, err
	}
	line, err := r.Uint32()
	if err != nil {
		return Inlinee{}, err
	}

	inl.Index = format.IdIndex(inlinee)
	inl.File = format.FileIndex(file)
	inl.Line = line

	if extended {
		fileCount, err := r.Uint32()
		if err != nil {
			return Inlinee{}, err
		}
		if inl.ExtraFiles, err = r.Take(int(fileCount) * 4); err != nil {
			return Inlinee{}, err
		}
	}

	return inl, nil
}

// Inlinees sequences the inlinee records of a module's debug data. A module
// without an inlinee lines subsection yields an empty sequence.
func Inlinees(moduleData []byte) iter.Seq2[Inlinee, error] {
	return func(yield func(Inlinee, error) bool) {
		data, ok, err := subsection.Find(moduleData, format.KindInlineeLines)
		if err != nil {
			yield(Inlinee{}, err)
			return
		}
		if !ok {
			return
		}

		sub, err := parseInlineeSubsection(data)
		if err != nil {
			yield(Inlinee{}, err)
			return
		}

		for inl, err := range sub.all() {
			if !yield(inl, err) || err != nil {
				return
			}
		}
	}
}
