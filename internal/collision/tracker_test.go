package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/codeview/errs"
)

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker()
	require.Equal(t, 0, tracker.Count())

	require.NoError(t, tracker.Track("a.obj", 0x1234567890abcdef))
	require.NoError(t, tracker.Track("b.obj", 0xfedcba0987654321))
	require.Equal(t, 2, tracker.Count())

	name, ok := tracker.Name(0x1234567890abcdef)
	require.True(t, ok)
	require.Equal(t, "a.obj", name)

	_, ok = tracker.Name(0x1111)
	require.False(t, ok)
}

func TestTracker_Track_EmptyName(t *testing.T) {
	tracker := NewTracker()

	err := tracker.Track("", 0x1234)
	require.ErrorIs(t, err, errs.ErrInvalidModuleName)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Track_Duplicate(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("a.obj", 0x1234))

	err := tracker.Track("a.obj", 0x1234)
	require.ErrorIs(t, err, errs.ErrModuleAlreadyStored)
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Track_Collision(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("a.obj", 0x1234))

	// A different name on an occupied hash cannot be stored.
	err := tracker.Track("b.obj", 0x1234)
	require.ErrorIs(t, err, errs.ErrModuleNameCollision)
	require.Equal(t, 1, tracker.Count())

	name, ok := tracker.Name(0x1234)
	require.True(t, ok)
	require.Equal(t, "a.obj", name)
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("a.obj", 0x1))
	require.NoError(t, tracker.Track("b.obj", 0x2))
	require.Equal(t, 2, tracker.Count())

	tracker.Reset()
	require.Equal(t, 0, tracker.Count())

	// The freed hashes are reusable after a reset.
	require.NoError(t, tracker.Track("c.obj", 0x1))
	require.Equal(t, 1, tracker.Count())
}
