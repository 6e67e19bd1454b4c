package zolo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockTracker(t *testing.T) {
	root := NewMapping()
	bt := newBlockTracker(root)
	require.Len(t, bt.frames, 1)
	require.Equal(t, BlockGeneric, bt.top().kind)

	require.NoError(t, bt.push(frame{indent: 4, kind: BlockGeneric, mapping: NewMapping()}))
	require.NoError(t, bt.push(frame{indent: 8, kind: BlockPaths, seq: &Sequence{}}))
	require.Len(t, bt.frames, 3)
	require.Equal(t, BlockPaths, bt.top().kind)

	// Pushing at or below the current indent is a parser bug.
	require.Error(t, bt.push(frame{indent: 8}))
	require.Error(t, bt.push(frame{indent: 2}))

	require.True(t, bt.popTo(4))
	require.Len(t, bt.frames, 2)

	// Dedent to a level that was never pushed.
	require.NoError(t, bt.push(frame{indent: 8, kind: BlockGeneric, mapping: NewMapping()}))
	require.False(t, bt.popTo(6))
	require.Len(t, bt.frames, 2)

	// The root frame survives any dedent.
	require.True(t, bt.popTo(0))
	require.Len(t, bt.frames, 1)
	require.Same(t, root, bt.top().mapping)
}

func TestBlockKindCaps(t *testing.T) {
	require.True(t, BlockGeneric.caps().typedValues)
	require.True(t, BlockGeneric.caps().escapes)
	require.False(t, BlockGeneric.caps().flat)

	require.True(t, BlockEnv.caps().flat)
	require.True(t, BlockEnv.caps().typedValues)

	require.True(t, BlockPaths.caps().verbatim)
	require.True(t, BlockPaths.caps().lineComments)
	require.False(t, BlockPaths.caps().typedValues)

	require.True(t, BlockRaw.caps().verbatim)
	require.False(t, BlockRaw.caps().lineComments)
}

func TestBlockKindString(t *testing.T) {
	require.Equal(t, "generic", BlockGeneric.String())
	require.Equal(t, "paths", BlockPaths.String())
	require.Equal(t, "raw", BlockRaw.String())
	require.Equal(t, "env", BlockEnv.String())
}
