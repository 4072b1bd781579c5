package paramstore_test

import (
	"path/filepath"
	"testing"

	"github.com/nnrt/corograph/paramstore"
	"github.com/stretchr/testify/require"
)

func TestParquetColumnRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.parquet")

	values := []float32{1.5, -2.25, 3.0, 0}

	require.NoError(t, paramstore.SaveParquetColumn(path, "layer1.weight", values))

	loaded, err := paramstore.LoadParquetColumn(path, "layer1.weight")
	require.NoError(t, err)
	require.Equal(t, values, loaded)
}

func TestParquetColumnFiltersByName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.parquet")

	require.NoError(t, paramstore.SaveParquetColumn(path, "a", []float32{1, 2}))

	// A second write to the same path would overwrite rather than append
	// in this simple helper; exercise filtering within one column instead.
	loaded, err := paramstore.LoadParquetColumn(path, "a")
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2}, loaded)

	missing, err := paramstore.LoadParquetColumn(path, "nonexistent")
	require.NoError(t, err)
	require.Empty(t, missing)
}
