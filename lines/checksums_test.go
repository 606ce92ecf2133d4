package lines

import (
	"crypto/md5"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/codeview/errs"
	"github.com/arloliu/codeview/format"
)

// checksumEntry appends one file checksum entry with 4-byte padding.
func checksumEntry(buf []byte, nameOffset uint32, kind format.ChecksumKind, digest []byte) []byte {
	buf = engine.AppendUint32(buf, nameOffset)
	buf = append(buf, uint8(len(digest)), uint8(kind))
	buf = append(buf, digest...)
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}

	return buf
}

func collectFiles(t *testing.T, seq func(func(format.FileInfo, error) bool)) []format.FileInfo {
	t.Helper()

	var files []format.FileInfo
	for info, err := range seq {
		require.NoError(t, err)
		files = append(files, info)
	}

	return files
}

func checksumModule() ([]byte, []format.FileIndex) {
	md5sum := md5.Sum([]byte("int main() {}\n"))

	var body []byte
	offsets := []format.FileIndex{format.FileIndex(len(body))}
	body = checksumEntry(body, 0x10, format.ChecksumMD5, md5sum[:])
	offsets = append(offsets, format.FileIndex(len(body)))
	body = checksumEntry(body, 0x58, format.ChecksumSHA256, make([]byte, 32))
	offsets = append(offsets, format.FileIndex(len(body)))
	body = checksumEntry(body, 0x80, format.ChecksumNone, nil)

	return frame(nil, format.KindFileChecksums, body), offsets
}

func TestLineProgram_Files(t *testing.T) {
	module, _ := checksumModule()

	prog, err := ParseLineProgram(module)
	require.NoError(t, err)

	files := collectFiles(t, prog.Files())
	require.Len(t, files, 3)

	require.Equal(t, format.StringRef(0x10), files[0].Name)
	require.Equal(t, format.ChecksumMD5, files[0].Checksum.Kind)
	require.Len(t, files[0].Checksum.Data, md5.Size)
	require.True(t, files[0].Checksum.Verify([]byte("int main() {}\n")))
	require.False(t, files[0].Checksum.Verify([]byte("int main() { }\n")))

	require.Equal(t, format.ChecksumSHA256, files[1].Checksum.Kind)
	require.Len(t, files[1].Checksum.Data, 32)

	require.Equal(t, format.ChecksumNone, files[2].Checksum.Kind)
	require.Empty(t, files[2].Checksum.Data)
	require.False(t, files[2].Checksum.Verify(nil))
}

func TestLineProgram_FileInfoAt(t *testing.T) {
	module, offsets := checksumModule()

	prog, err := ParseLineProgram(module)
	require.NoError(t, err)

	// Every entry found by iteration is identically reachable through its
	// own byte offset.
	files := collectFiles(t, prog.Files())
	require.Len(t, files, len(offsets))
	for i, offset := range offsets {
		info, err := prog.FileInfoAt(offset)
		require.NoError(t, err)
		require.Equal(t, files[i], info)
	}
}

func TestLineProgram_FileInfoAt_InvalidOffset(t *testing.T) {
	module, _ := checksumModule()

	prog, err := ParseLineProgram(module)
	require.NoError(t, err)

	_, err = prog.FileInfoAt(format.FileIndex(1 << 20))
	require.ErrorIs(t, err, errs.ErrInvalidFileChecksumOffset)
}

func TestLineProgram_NoChecksumSubsection(t *testing.T) {
	// A module without file checksums degrades to an empty table.
	module := frame(nil, format.KindSymbols, []byte{1, 2, 3, 4})

	prog, err := ParseLineProgram(module)
	require.NoError(t, err)

	require.Empty(t, collectFiles(t, prog.Files()))
	_, err = prog.FileInfoAt(0)
	require.ErrorIs(t, err, errs.ErrInvalidFileChecksumOffset)
}

func TestChecksums_UnknownKind(t *testing.T) {
	body := checksumEntry(nil, 0x10, format.ChecksumKind(9), []byte{1, 2, 3, 4})
	module := frame(nil, format.KindFileChecksums, body)

	prog, err := ParseLineProgram(module)
	require.NoError(t, err)

	var firstErr error
	for _, err := range prog.Files() {
		firstErr = err
		break
	}
	require.ErrorIs(t, firstErr, errs.ErrUnknownChecksumKind)
}
