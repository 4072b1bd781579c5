package paramstore_test

import (
	"path/filepath"
	"testing"

	"github.com/nnrt/corograph/paramstore"
	"github.com/nnrt/corograph/shape"
	"github.com/nnrt/corograph/tensor"
	"github.com/stretchr/testify/require"
)

func TestZMFSaveLoadRoundTripFloat32(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.zmf")

	w, err := tensor.New[float32](shape.MustNew(2, 2), []float32{1, 2, 3, 4})
	require.NoError(t, err)

	b, err := tensor.New[float32](shape.MustNew(2), []float32{0.5, -0.5})
	require.NoError(t, err)

	params := map[string]*tensor.Dense[float32]{
		"weight": w,
		"bias":   b,
	}

	require.NoError(t, paramstore.SaveZMF(path, params))

	loaded, err := paramstore.LoadZMF[float32](path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	require.True(t, loaded["weight"].Shape().Equal(shape.MustNew(2, 2)))
	require.Equal(t, []float32{1, 2, 3, 4}, loaded["weight"].Data())
	require.Equal(t, []float32{0.5, -0.5}, loaded["bias"].Data())
}

func TestZMFExplicitDataSpecsRoundTripThroughTensorBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.zmf")

	w, err := tensor.New[float32](shape.MustNew(3), []float32{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, paramstore.SaveZMF(path, map[string]*tensor.Dense[float32]{"w": w}))

	loaded, err := paramstore.LoadZMF[float32](path)
	require.NoError(t, err)

	specs := paramstore.ExplicitDataSpecs(loaded)
	require.Contains(t, specs, "w")

	rebuilt, err := tensor.FromBytes[float32](shape.MustNew(3), specs["w"].Raw)
	require.NoError(t, err)
	require.Equal(t, w.Data(), rebuilt.Data())
}

func TestZMFLoadMissingFile(t *testing.T) {
	_, err := paramstore.LoadZMF[float32](filepath.Join(t.TempDir(), "missing.zmf"))
	require.Error(t, err)
}
