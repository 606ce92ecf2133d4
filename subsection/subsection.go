// Package subsection splits a module's raw debug information into typed,
// length-delimited debug subsections.
//
// A module's debug data is a concatenation of subsections, each introduced by
// an 8-byte header carrying a kind tag and the body length. Kinds form a
// closed enumeration; the reserved ignore tag is skipped transparently, and
// any other unknown value is a decode error. The body length is consumed
// whether or not the kind is recognized, which guarantees forward progress.
package subsection

import (
	"fmt"
	"iter"

	"github.com/arloliu/codeview/errs"
	"github.com/arloliu/codeview/format"
	"github.com/arloliu/codeview/internal/buffer"
)

// Subsection is one typed chunk of per-module debug data. Data is a view
// over the module's byte slice.
type Subsection struct {
	Kind format.SubsectionKind
	Data []byte
}

// parseKind validates a raw kind tag against the closed enumeration.
// The second result is false for the reserved ignore tag.
func parseKind(value uint32) (format.SubsectionKind, bool, error) {
	switch {
	case value >= uint32(format.KindSymbols) && value <= uint32(format.KindCoffSymbolRVA):
		return format.SubsectionKind(value), true, nil
	case value == uint32(format.KindIgnore):
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("%w: 0x%x", errs.ErrUnknownSubsectionKind, value)
	}
}

// All returns a sequence of the subsections in data, in storage order.
// Subsections tagged with the ignore kind are skipped. The sequence stops at
// the first error; each call produces a fresh, restartable cursor.
func All(data []byte) iter.Seq2[Subsection, error] {
	return func(yield func(Subsection, error) bool) {
		r := buffer.NewReader(data)
		for !r.Empty() {
			kind, err := r.Uint32()
			if err != nil {
				yield(Subsection{}, err)
				return
			}
			length, err := r.Uint32()
			if err != nil {
				yield(Subsection{}, err)
				return
			}

			// Consume the body before interpreting the kind so that unknown
			// but ignorable subsections never stall the cursor.
			body, err := r.Take(int(length))
			if err != nil {
				yield(Subsection{}, err)
				return
			}

			k, ok, err := parseKind(kind)
			if err != nil {
				yield(Subsection{}, err)
				return
			}
			if !ok {
				continue
			}

			if !yield(Subsection{Kind: k, Data: body}, nil) {
				return
			}
		}
	}
}

// Find scans data for the first subsection of the given kind and returns its
// body. Kinds are not indexed, so this is a linear scan. The second result
// is false when no such subsection exists, which is not an error.
func Find(data []byte, kind format.SubsectionKind) ([]byte, bool, error) {
	for sub, err := range All(data) {
		if err != nil {
			return nil, false, err
		}
		if sub.Kind == kind {
			return sub.Data, true, nil
		}
	}

	return nil, false, nil
}
