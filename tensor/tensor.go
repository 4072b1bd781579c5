// Package tensor implements the Dense tensor: a contiguous numeric buffer
// keyed by a shape.TensorShape, owned exclusively by its holder (an arena
// slot or a caller-local scratch value).
package tensor

import (
	"fmt"
	"unsafe"

	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/shape"
)

// Dense is an n-dimensional array of a single element type T, stored
// row-major in a contiguous buffer. A Dense tensor always owns its
// buffer: arenas hand out stable slots, and operators read/write through
// explicit At/Set/Data calls rather than aliasing slices across tensors.
type Dense[T numeric.Dtype] struct {
	shape shape.TensorShape
	data  []T
}

// New allocates a Dense tensor of the given shape. If data is nil, the
// buffer is zero-initialized; otherwise data must have exactly
// shape.NumElements() elements and is taken over directly (not copied).
func New[T numeric.Dtype](s shape.TensorShape, data []T) (*Dense[T], error) {
	n := s.NumElements()

	if data == nil {
		data = make([]T, n)
	} else if len(data) != n {
		return nil, fmt.Errorf("tensor: data length %d does not match shape %s (%d elements)", len(data), s, n)
	}

	return &Dense[T]{shape: s, data: data}, nil
}

// Shape returns the tensor's shape.
func (d *Dense[T]) Shape() shape.TensorShape {
	return d.shape
}

// Data returns the tensor's underlying buffer, in row-major order. The
// returned slice aliases the tensor's storage; callers that mutate it
// mutate the tensor.
func (d *Dense[T]) Data() []T {
	return d.data
}

// At returns the element at the given multi-dimensional index.
func (d *Dense[T]) At(indices ...int) (T, error) {
	offset, err := d.offset(indices)
	if err != nil {
		var zero T

		return zero, err
	}

	return d.data[offset], nil
}

// Set writes the element at the given multi-dimensional index.
func (d *Dense[T]) Set(value T, indices ...int) error {
	offset, err := d.offset(indices)
	if err != nil {
		return err
	}

	d.data[offset] = value

	return nil
}

func (d *Dense[T]) offset(indices []int) (int, error) {
	if len(indices) != d.shape.Rank() {
		return 0, fmt.Errorf("tensor: index count %d does not match rank %d", len(indices), d.shape.Rank())
	}

	offset := 0

	for axis, idx := range indices {
		extent := d.shape.Extent(axis)
		if idx < 0 || idx >= extent {
			return 0, fmt.Errorf("tensor: index %d out of bounds for axis %d with extent %d", idx, axis, extent)
		}

		offset += idx * d.shape.Stride(axis)
	}

	return offset, nil
}

// Fill overwrites every element with value.
func (d *Dense[T]) Fill(value T) {
	for i := range d.data {
		d.data[i] = value
	}
}

// CopyFrom copies the element buffer of src into d in place. The two
// tensors must have equal shapes.
func (d *Dense[T]) CopyFrom(src *Dense[T]) error {
	if !d.shape.Equal(src.shape) {
		return fmt.Errorf("tensor: cannot copy tensor of shape %s into shape %s", src.shape, d.shape)
	}

	copy(d.data, src.data)

	return nil
}

// Clone returns a deep copy of d.
func (d *Dense[T]) Clone() *Dense[T] {
	cp := make([]T, len(d.data))
	copy(cp, d.data)

	return &Dense[T]{shape: d.shape, data: cp}
}

// Reshape returns a new Dense tensor with a different shape over a copy of
// the same elements. The new shape must have the same element count as d.
func (d *Dense[T]) Reshape(newShape shape.TensorShape) (*Dense[T], error) {
	if newShape.NumElements() != d.shape.NumElements() {
		return nil, fmt.Errorf("tensor: cannot reshape %s (%d elements) into %s (%d elements)",
			d.shape, d.shape.NumElements(), newShape, newShape.NumElements())
	}

	cp := make([]T, len(d.data))
	copy(cp, d.data)

	return &Dense[T]{shape: newShape, data: cp}, nil
}

// String renders the tensor for debugging.
func (d *Dense[T]) String() string {
	return fmt.Sprintf("Dense(shape=%s, data=%v)", d.shape, d.data)
}

// Bytes reinterprets the tensor's buffer as a byte slice without copying,
// for the paramstore's explicit-data persistence path. The byte order
// matches the host's native layout.
func (d *Dense[T]) Bytes() []byte {
	if len(d.data) == 0 {
		return nil
	}

	var zero T

	//nolint:gosec // zero-copy reinterpretation of a homogeneous numeric buffer
	ptr := unsafe.Pointer(&d.data[0])

	//nolint:gosec // size computed from the real element type, bounds match len(d.data)
	return unsafe.Slice((*byte)(ptr), len(d.data)*int(unsafe.Sizeof(zero)))
}

// FromBytes builds a Dense tensor of the given shape from a raw byte
// buffer previously produced by Bytes, for paramstore explicit-data loads.
func FromBytes[T numeric.Dtype](s shape.TensorShape, raw []byte) (*Dense[T], error) {
	var zero T

	elemSize := int(unsafe.Sizeof(zero))
	n := s.NumElements()

	if len(raw) != n*elemSize {
		return nil, fmt.Errorf("tensor: byte buffer length %d does not match shape %s (%d bytes expected)", len(raw), s, n*elemSize)
	}

	data := make([]T, n)

	if n > 0 {
		//nolint:gosec // reinterpreting a raw byte buffer whose length was just validated against elemSize
		src := unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)
		copy(data, src)
	}

	return &Dense[T]{shape: s, data: data}, nil
}
