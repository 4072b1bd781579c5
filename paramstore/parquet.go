package paramstore

import (
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// parquetParamRow is one row of a flat columnar parameter dump: a
// parameter name repeated across its rows, a flat index into that
// parameter's row-major buffer, and the float32 value at that index.
type parquetParamRow struct {
	Name  string  `parquet:"name"`
	Index int64   `parquet:"index"`
	Value float32 `parquet:"value"`
}

// SaveParquetColumn writes values (row-major order) as a flat parameter
// dump under name, for interop with tooling that only emits Parquet.
func SaveParquetColumn(path, name string, values []float32) error {
	rows := make([]parquetParamRow, len(values))
	for i, v := range values {
		rows[i] = parquetParamRow{Name: name, Index: int64(i), Value: v}
	}

	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("paramstore: writing parquet column %q to %q: %w", name, path, err)
	}

	return nil
}

// LoadParquetColumn reads the rows for name out of the Parquet file at
// path, in ascending index order, as a flat float32 slice. A caller
// converts the result to any numeric dtype via
// numeric.Arithmetic[T].FromFloat32 before building a graph.ExplicitData
// init-spec.
func LoadParquetColumn(path, name string) ([]float32, error) {
	rows, err := parquet.ReadFile[parquetParamRow](path)
	if err != nil {
		return nil, fmt.Errorf("paramstore: reading parquet file %q: %w", path, err)
	}

	var matched []parquetParamRow

	for _, r := range rows {
		if r.Name == name {
			matched = append(matched, r)
		}
	}

	out := make([]float32, len(matched))

	for _, r := range matched {
		if r.Index < 0 || int(r.Index) >= len(out) {
			return nil, fmt.Errorf("paramstore: column %q row index %d out of range for %d values", name, r.Index, len(out))
		}

		out[r.Index] = r.Value
	}

	return out, nil
}
