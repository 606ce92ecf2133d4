package format

import (
	"crypto/sha1"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubsectionKind_String(t *testing.T) {
	require.Equal(t, "Lines", KindLines.String())
	require.Equal(t, "FileChecksums", KindFileChecksums.String())
	require.Equal(t, "CrossScopeExports", KindCrossScopeExports.String())
	require.Equal(t, "Ignore", KindIgnore.String())
	require.Equal(t, "SubsectionKind(0xfe)", SubsectionKind(0xfe).String())
}

func TestIsCrossModule(t *testing.T) {
	require.False(t, TypeIndex(0x1000).IsCrossModule())
	require.True(t, TypeIndex(0x8000_1000).IsCrossModule())
	require.False(t, IdIndex(0x7fff_ffff).IsCrossModule())
	require.True(t, IdIndex(0x8000_0000).IsCrossModule())
}

func TestSectionOffset_Add(t *testing.T) {
	base := SectionOffset{Section: 3, Offset: 0x100}

	moved := base.Add(0x20)
	require.Equal(t, SectionOffset{Section: 3, Offset: 0x120}, moved)
	// Add returns a copy.
	require.Equal(t, uint32(0x100), base.Offset)

	// Offsets wrap like the producer's 32-bit arithmetic.
	wrapped := SectionOffset{Section: 1, Offset: 0xffff_fffe}.Add(4)
	require.Equal(t, uint32(2), wrapped.Offset)
	require.Equal(t, uint16(1), wrapped.Section)
}

func TestChecksum_Verify(t *testing.T) {
	contents := []byte("int main() { return 0; }\n")

	sha1sum := sha1.Sum(contents)
	require.True(t, Checksum{Kind: ChecksumSHA1, Data: sha1sum[:]}.Verify(contents))
	require.False(t, Checksum{Kind: ChecksumSHA1, Data: sha1sum[:]}.Verify([]byte("other")))

	sha256sum := sha256.Sum256(contents)
	require.True(t, Checksum{Kind: ChecksumSHA256, Data: sha256sum[:]}.Verify(contents))

	// A kind mismatch between digest and declared algorithm never verifies.
	require.False(t, Checksum{Kind: ChecksumSHA256, Data: sha1sum[:]}.Verify(contents))

	// ChecksumNone carries nothing to compare against.
	require.False(t, Checksum{Kind: ChecksumNone}.Verify(contents))
	require.False(t, Checksum{Kind: ChecksumNone}.Verify(nil))
}

func TestEnumStrings(t *testing.T) {
	require.Equal(t, "MD5", ChecksumMD5.String())
	require.Equal(t, "ChecksumKind(9)", ChecksumKind(9).String())

	require.Equal(t, "Statement", LineStatement.String())
	require.Equal(t, "Expression", LineExpression.String())

	require.Equal(t, "DoNotStepOnto", MarkerDoNotStepOnto.String())
	require.Equal(t, "DoNotStepInto", MarkerDoNotStepInto.String())

	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "Unknown", CompressionType(0x99).String())
}
