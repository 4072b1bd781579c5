package shape_test

import (
	"testing"

	"github.com/nnrt/corograph/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastSameShape(t *testing.T) {
	a := shape.MustNew(2, 3)
	b := shape.MustNew(2, 3)

	out, bA, bB, err := shape.Broadcast(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, out.Extents())
	assert.False(t, bA)
	assert.False(t, bB)
}

func TestBroadcastUnitAxis(t *testing.T) {
	a := shape.MustNew(2, 1)
	b := shape.MustNew(2, 3)

	out, bA, bB, err := shape.Broadcast(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, out.Extents())
	assert.True(t, bA)
	assert.False(t, bB)
}

func TestBroadcastRankMismatch(t *testing.T) {
	a := shape.MustNew(4)
	b := shape.MustNew(2, 4)

	out, bA, bB, err := shape.Broadcast(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, out.Extents())
	assert.True(t, bA)
	assert.False(t, bB)
}

func TestBroadcastIncompatible(t *testing.T) {
	a := shape.MustNew(2, 3)
	b := shape.MustNew(2, 4)

	_, _, _, err := shape.Broadcast(a, b)
	require.Error(t, err)
}

func TestBroadcastOffset(t *testing.T) {
	out := shape.MustNew(2, 3)
	colVec := shape.MustNew(2, 1)

	// flat index 4 in a 2x3 output is row 1, col 1; colVec collapses col axis.
	assert.Equal(t, 1, shape.BroadcastOffset(4, colVec, out))
}
