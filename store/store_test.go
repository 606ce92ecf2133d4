package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/codeview/crossmod"
	"github.com/arloliu/codeview/endian"
	"github.com/arloliu/codeview/errs"
	"github.com/arloliu/codeview/format"
)

var engine = endian.GetLittleEndianEngine()

func frame(buf []byte, kind format.SubsectionKind, body []byte) []byte {
	buf = engine.AppendUint32(buf, uint32(kind))
	buf = engine.AppendUint32(buf, uint32(len(body)))

	return append(buf, body...)
}

// moduleFixture builds debug data with one lines subsection holding a single
// statement record and one cross-scope exports entry.
func moduleFixture() []byte {
	var lines []byte
	lines = engine.AppendUint32(lines, 0x1000) // anchor offset
	lines = engine.AppendUint16(lines, 1)      // section
	lines = engine.AppendUint16(lines, 0)      // flags
	lines = engine.AppendUint32(lines, 0x40)   // code size
	lines = engine.AppendUint32(lines, 0)      // file index
	lines = engine.AppendUint32(lines, 1)      // line count
	lines = engine.AppendUint32(lines, 12+8)   // block size
	lines = engine.AppendUint32(lines, 0)      // code offset
	lines = engine.AppendUint32(lines, 42|1<<31)

	var exports []byte
	exports = engine.AppendUint32(exports, 0x1000)
	exports = engine.AppendUint32(exports, 0x2000)

	var module []byte
	module = frame(module, format.KindLines, lines)
	module = frame(module, format.KindCrossScopeExports, exports)

	return module
}

func TestStore_PutData(t *testing.T) {
	module := moduleFixture()

	for _, compression := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			s, err := New(compression)
			require.NoError(t, err)

			id, err := s.Put("crash_generation_client.obj", module)
			require.NoError(t, err)
			require.NotZero(t, id)
			require.Equal(t, 1, s.Len())
			require.True(t, s.Contains("crash_generation_client.obj"))

			data, err := s.Data("crash_generation_client.obj")
			require.NoError(t, err)
			require.Equal(t, module, data)
		})
	}
}

func TestStore_Program(t *testing.T) {
	s, err := New(format.CompressionZstd)
	require.NoError(t, err)

	_, err = s.Put("a.obj", moduleFixture())
	require.NoError(t, err)

	prog, err := s.Program("a.obj")
	require.NoError(t, err)

	var starts []uint32
	for info, err := range prog.Lines() {
		require.NoError(t, err)
		starts = append(starts, info.LineStart)
	}
	require.Equal(t, []uint32{42}, starts)
}

func TestStore_CrossModuleTables(t *testing.T) {
	s, err := New(format.CompressionS2)
	require.NoError(t, err)

	_, err = s.Put("a.obj", moduleFixture())
	require.NoError(t, err)

	exports, err := s.Exports("a.obj")
	require.NoError(t, err)

	global, ok := crossmod.ResolveGlobal(exports, format.Local[format.TypeIndex]{Index: 0x1000})
	require.True(t, ok)
	require.Equal(t, format.TypeIndex(0x2000), global)

	// The fixture has no imports subsection; that degrades to an empty table.
	imports, err := s.Imports("a.obj")
	require.NoError(t, err)
	require.NotNil(t, imports)
}

func TestStore_DuplicateAndCollision(t *testing.T) {
	s, err := New(format.CompressionNone)
	require.NoError(t, err)

	_, err = s.Put("a.obj", moduleFixture())
	require.NoError(t, err)

	_, err = s.Put("a.obj", moduleFixture())
	require.ErrorIs(t, err, errs.ErrModuleAlreadyStored)

	_, err = s.Put("", moduleFixture())
	require.ErrorIs(t, err, errs.ErrInvalidModuleName)

	require.Equal(t, 1, s.Len())
}

func TestStore_NotFound(t *testing.T) {
	s, err := New(format.CompressionNone)
	require.NoError(t, err)

	_, err = s.Data("missing.obj")
	require.ErrorIs(t, err, errs.ErrModuleNotFound)

	_, err = s.Program("missing.obj")
	require.ErrorIs(t, err, errs.ErrModuleNotFound)

	require.False(t, s.Contains("missing.obj"))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s, err := New(format.CompressionLZ4)
	require.NoError(t, err)

	_, err = s.Put("a.obj", moduleFixture())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				prog, err := s.Program("a.obj")
				require.NoError(t, err)
				for _, err := range prog.Lines() {
					require.NoError(t, err)
				}
			}
		}()
	}
	wg.Wait()
}
