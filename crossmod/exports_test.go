package crossmod

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/codeview/errs"
	"github.com/arloliu/codeview/format"
)

// exportsModule builds a module with a cross-scope exports subsection.
// Entries are sorted by local index; type indices sort below id indices
// because the id space carries the top bit.
func exportsModule() []byte {
	var body []byte
	for _, pair := range [][2]uint32{
		{0x1000, 0x2000},
		{0x1010, 0x2040},
		{0x8000_1000, 0x2080},
	} {
		body = engine.AppendUint32(body, pair[0])
		body = engine.AppendUint32(body, pair[1])
	}

	return frame(nil, format.KindCrossScopeExports, body)
}

func TestExports_All(t *testing.T) {
	exports, err := ParseExports(exportsModule())
	require.NoError(t, err)
	require.Equal(t, 3, exports.Len())

	var entries []Export
	for export := range exports.All() {
		entries = append(entries, export)
	}

	require.Equal(t, []Export{
		TypeExport{
			Local:  format.Local[format.TypeIndex]{Index: 0x1000},
			Global: 0x2000,
		},
		TypeExport{
			Local:  format.Local[format.TypeIndex]{Index: 0x1010},
			Global: 0x2040,
		},
		IdExport{
			Local:  format.Local[format.IdIndex]{Index: 0x8000_1000},
			Global: 0x2080,
		},
	}, entries)
}

func TestResolveGlobal(t *testing.T) {
	exports, err := ParseExports(exportsModule())
	require.NoError(t, err)

	global, ok := ResolveGlobal(exports, format.Local[format.TypeIndex]{Index: 0x1010})
	require.True(t, ok)
	require.Equal(t, format.TypeIndex(0x2040), global)

	idGlobal, ok := ResolveGlobal(exports, format.Local[format.IdIndex]{Index: 0x8000_1000})
	require.True(t, ok)
	require.Equal(t, format.IdIndex(0x2080), idGlobal)
}

func TestResolveGlobal_Absent(t *testing.T) {
	exports, err := ParseExports(exportsModule())
	require.NoError(t, err)

	// Between, below and above the table's keys.
	for _, key := range []format.TypeIndex{0x1008, 0x100, 0x7fff_ffff} {
		_, ok := ResolveGlobal(exports, format.Local[format.TypeIndex]{Index: key})
		require.False(t, ok)
	}
}

func TestParseExports_NoSubsection(t *testing.T) {
	module := frame(nil, format.KindSymbols, []byte{0, 0, 0, 0})

	exports, err := ParseExports(module)
	require.NoError(t, err)
	require.Equal(t, 0, exports.Len())

	_, ok := ResolveGlobal(exports, format.Local[format.TypeIndex]{Index: 0x1000})
	require.False(t, ok)
}

func TestParseExports_InvalidLength(t *testing.T) {
	module := frame(nil, format.KindCrossScopeExports, make([]byte, 12))

	_, err := ParseExports(module)
	require.ErrorIs(t, err, errs.ErrInvalidExportsLength)
}
