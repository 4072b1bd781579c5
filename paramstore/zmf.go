// Package paramstore persists and loads graph.ParamTable explicit-data
// init-specs: the ZMF (protobuf) format for whole-model checkpoints, and
// a Parquet columnar format for interop with tooling that emits flat
// parameter dumps instead of a ZMF file. LoadZMF returns Dense tensors,
// which ExplicitDataSpecs turns into graph.ExplicitData raw bytes in
// tensor.Dense's native layout; LoadParquetColumn returns a flat float32
// slice.
package paramstore

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/shape"
	"github.com/nnrt/corograph/tensor"
	"github.com/zerfoo/float16"
	"github.com/zerfoo/zmf"
	"google.golang.org/protobuf/proto"
)

// EncodeTensor converts a Dense[T] into a zmf.Tensor protobuf message: a
// type switch on the underlying element type picks the wire dtype and
// byte encoding, little-endian regardless of host order so a checkpoint
// is portable.
func EncodeTensor[T numeric.Dtype](t *tensor.Dense[T]) (*zmf.Tensor, error) {
	dims := make([]int64, t.Shape().Rank())
	for i := 0; i < t.Shape().Rank(); i++ {
		dims[i] = int64(t.Shape().Extent(i))
	}

	var (
		raw   []byte
		dtype zmf.Tensor_DataType
	)

	switch data := any(t.Data()).(type) {
	case []float32:
		dtype = zmf.Tensor_FLOAT32
		raw = encodeFloat32(data)
	case []float16.Float16:
		dtype = zmf.Tensor_FLOAT16
		raw = encodeFloat16(data)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedDtype, t.Data())
	}

	return &zmf.Tensor{
		Shape: dims,
		Dtype: dtype,
		Data:  raw,
	}, nil
}

// DecodeTensor converts a zmf.Tensor protobuf message back into a
// Dense[T]. The persisted dtype must match T exactly; no implicit
// conversion happens on load.
func DecodeTensor[T numeric.Dtype](tp *zmf.Tensor) (*tensor.Dense[T], error) {
	extents := make([]int, len(tp.Shape))
	for i, d := range tp.Shape {
		extents[i] = int(d)
	}

	s, err := shape.New(extents...)
	if err != nil {
		return nil, fmt.Errorf("paramstore: decoding tensor shape: %w", err)
	}

	var zero T

	switch tp.Dtype {
	case zmf.Tensor_FLOAT32:
		f32, err := decodeFloat32(tp.Data)
		if err != nil {
			return nil, err
		}

		switch any(zero).(type) {
		case float32:
			return tensor.New[T](s, any(f32).([]T))
		default:
			return nil, fmt.Errorf("%w: FLOAT32 into %T", ErrDtypeMismatch, zero)
		}

	case zmf.Tensor_FLOAT16:
		f16, err := decodeFloat16(tp.Data)
		if err != nil {
			return nil, err
		}

		switch any(zero).(type) {
		case float16.Float16:
			return tensor.New[T](s, any(f16).([]T))
		default:
			return nil, fmt.Errorf("%w: FLOAT16 into %T", ErrDtypeMismatch, zero)
		}

	default:
		return nil, fmt.Errorf("%w: zmf dtype %s", ErrUnsupportedDtype, tp.Dtype)
	}
}

func encodeFloat32(data []float32) []byte {
	raw := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}

	return raw
}

func decodeFloat32(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("paramstore: float32 data length %d is not a multiple of 4", len(raw))
	}

	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4 : i*4+4]))
	}

	return out, nil
}

func encodeFloat16(data []float16.Float16) []byte {
	raw := make([]byte, len(data)*2)
	for i, v := range data {
		binary.LittleEndian.PutUint16(raw[i*2:], v.Bits())
	}

	return raw
}

func decodeFloat16(raw []byte) ([]float16.Float16, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("paramstore: float16 data length %d is not a multiple of 2", len(raw))
	}

	out := make([]float16.Float16, len(raw)/2)
	for i := range out {
		bits := binary.LittleEndian.Uint16(raw[i*2 : i*2+2])
		out[i] = float16.FromFloat32(halfBitsToFloat32(bits))
	}

	return out, nil
}

// halfBitsToFloat32 decodes an IEEE 754 binary16 bit pattern into its
// float32 equivalent. float16.Float16's own Bits() is the only accessor
// the rest of this codebase's dependency on the package relies on (see
// encodeFloat16 above), so decoding goes through the bit layout directly
// rather than assuming an inverse constructor exists on the library.
func halfBitsToFloat32(bits uint16) float32 {
	sign := uint32(bits&0x8000) << 16
	exp := uint32(bits&0x7c00) >> 10
	frac := uint32(bits & 0x03ff)

	switch exp {
	case 0:
		if frac == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal: normalize by shifting the fraction into place.
		for frac&0x0400 == 0 {
			frac <<= 1
			exp--
		}

		exp++
		frac &= 0x03ff

		return math.Float32frombits(sign | ((exp + (127 - 15)) << 23) | (frac << 13))
	case 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | (frac << 13))
	default:
		return math.Float32frombits(sign | ((exp + (127 - 15)) << 23) | (frac << 13))
	}
}

// SaveZMF writes params (keyed by the parameter's graph name) to path as
// a single-message ZMF file: build a zmf.Model, proto.Marshal it, write
// the bytes.
func SaveZMF[T numeric.Dtype](path string, params map[string]*tensor.Dense[T]) error {
	zmfParams := make(map[string]*zmf.Tensor, len(params))

	for name, t := range params {
		tp, err := EncodeTensor[T](t)
		if err != nil {
			return fmt.Errorf("paramstore: encoding parameter %q: %w", name, err)
		}

		zmfParams[name] = tp
	}

	model := &zmf.Model{
		ZmfVersion: "1.0.0",
		Graph:      &zmf.Graph{Parameters: zmfParams},
	}

	data, err := proto.Marshal(model)
	if err != nil {
		return fmt.Errorf("paramstore: marshaling ZMF model: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("paramstore: writing ZMF file %q: %w", path, err)
	}

	return nil
}

// LoadZMF reads a ZMF file at path and decodes every parameter tensor to
// dtype T.
func LoadZMF[T numeric.Dtype](path string) (map[string]*tensor.Dense[T], error) {
	//nolint:gosec // reading a checkpoint file from a caller-supplied path is the documented contract
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("paramstore: reading ZMF file %q: %w", path, err)
	}

	model := &zmf.Model{}
	if err := proto.Unmarshal(data, model); err != nil {
		return nil, fmt.Errorf("paramstore: unmarshaling ZMF data: %w", err)
	}

	if model.Graph == nil {
		return map[string]*tensor.Dense[T]{}, nil
	}

	out := make(map[string]*tensor.Dense[T], len(model.Graph.Parameters))

	for name, tp := range model.Graph.Parameters {
		t, err := DecodeTensor[T](tp)
		if err != nil {
			return nil, fmt.Errorf("paramstore: decoding parameter %q: %w", name, err)
		}

		out[name] = t
	}

	return out, nil
}

// ExplicitDataSpecs converts a dtype-decoded parameter set into
// graph.ExplicitData init-specs, ready to attach to graph.ParamEntry
// values when rebuilding a graph.Graph against a loaded checkpoint.
func ExplicitDataSpecs[T numeric.Dtype](params map[string]*tensor.Dense[T]) map[string]graph.ExplicitData {
	out := make(map[string]graph.ExplicitData, len(params))
	for name, t := range params {
		out[name] = graph.ExplicitData{Raw: t.Bytes()}
	}

	return out
}
