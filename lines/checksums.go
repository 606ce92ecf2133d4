package lines

import (
	"fmt"
	"iter"

	"github.com/arloliu/codeview/errs"
	"github.com/arloliu/codeview/format"
	"github.com/arloliu/codeview/internal/buffer"
)

// checksumSubsection is the raw body of the file checksums subsection. The
// zero value behaves as an empty table, which is how a module without the
// subsection degrades.
type checksumSubsection struct {
	data []byte
}

// parseChecksumKind validates a raw checksum kind byte.
func parseChecksumKind(value uint8) (format.ChecksumKind, error) {
	if value > uint8(format.ChecksumSHA256) {
		return 0, fmt.Errorf("%w: %d", errs.ErrUnknownChecksumKind, value)
	}

	return format.ChecksumKind(value), nil
}

// entriesAt sequences checksum entries starting at the given byte offset
// into the subsection. Offset 0 iterates the full table. The format
// references entries by byte offset, so seeking is a skip, not an index
// multiplication.
func (c checksumSubsection) entriesAt(offset format.FileIndex) iter.Seq2[format.FileInfo, error] {
	return func(yield func(format.FileInfo, error) bool) {
		r := buffer.NewReader(c.data)
		if err := r.Skip(int(offset)); err != nil {
			yield(format.FileInfo{}, err)
			return
		}

		for !r.Empty() {
			entry, err := readChecksumEntry(r)
			if !yield(entry, err) || err != nil {
				return
			}
		}
	}
}

func readChecksumEntry(r *buffer.Reader) (format.FileInfo, error) {
	nameOffset, err := r.Uint32()
	if err != nil {
		return format.FileInfo{}, err
	}
	checksumSize, err := r.Uint8()
	if err != nil {
		return format.FileInfo{}, err
	}
	rawKind, err := r.Uint8()
	if err != nil {
		return format.FileInfo{}, err
	}

	data, err := r.Take(int(checksumSize))
	if err != nil {
		return format.FileInfo{}, err
	}
	kind, err := parseChecksumKind(rawKind)
	if err != nil {
		return format.FileInfo{}, err
	}

	// Entries are padded to a 4-byte boundary relative to the subsection.
	if err := r.Align(4); err != nil {
		return format.FileInfo{}, err
	}

	checksum := format.Checksum{Kind: kind}
	if kind != format.ChecksumNone {
		checksum.Data = data
	}

	return format.FileInfo{
		Name:     format.StringRef(nameOffset),
		Checksum: checksum,
	}, nil
}
