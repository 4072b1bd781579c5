// Package attrvec implements AttributeVector, the small ordered name→value
// map attached to every graph node (kernel sizes, padding, clip bounds,
// axis lists). Values are resolved once per node at graph-build time and
// read again by result_shape/forward/backward kernels in ops.
package attrvec

import (
	"fmt"

	"github.com/nnrt/corograph/shape"
)

// Value is the variant type carried by an attribute: an integer scalar, a
// small fixed-length integer tuple, an arbitrary-length integer list, or a
// TensorShape literal.
type Value struct {
	kind     kind
	intVal   int
	floatVal float64
	pair     [2]int
	intList  []int
	shapeVal shape.TensorShape
}

type kind int

const (
	kindInt kind = iota
	kindFloat
	kindIntPair
	kindIntList
	kindShape
)

// Int wraps an integer scalar attribute value.
func Int(v int) Value { return Value{kind: kindInt, intVal: v} }

// Float64 wraps a floating-point scalar attribute value, used by
// operators whose bounds are dtype-valued rather than integral (CLIP's
// min/max).
func Float64(v float64) Value { return Value{kind: kindFloat, floatVal: v} }

// IntPair wraps a 2-tuple attribute value (kernel_size, stride, padding,
// dilation, and similar 2-D geometry attributes).
func IntPair(a, b int) Value { return Value{kind: kindIntPair, pair: [2]int{a, b}} }

// IntList wraps a variable-length integer list attribute value (the `dims`
// spelling of SQUEEZE/UNSQUEEZE's axis attribute).
func IntList(v []int) Value {
	cp := make([]int, len(v))
	copy(cp, v)

	return Value{kind: kindIntList, intList: cp}
}

// Shape wraps a TensorShape literal attribute value.
func Shape(s shape.TensorShape) Value { return Value{kind: kindShape, shapeVal: s} }

// AttributeVector is an ordered name→Value map. Construction is via New
// with variadic (name, Value) pairs, mirroring the literal attribute lists
// operators are invoked with at graph-build time.
type AttributeVector struct {
	names  []string
	values []Value
}

// New builds an AttributeVector from alternating name/Value pairs, e.g.
// attrvec.New("min", attrvec.Int(0), "max", attrvec.Int(6)).
func New(pairs ...any) (AttributeVector, error) {
	if len(pairs)%2 != 0 {
		return AttributeVector{}, fmt.Errorf("attrvec: odd number of arguments %d, expected name/value pairs", len(pairs))
	}

	av := AttributeVector{}

	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return AttributeVector{}, fmt.Errorf("attrvec: argument %d must be a string name, got %T", i, pairs[i])
		}

		value, ok := pairs[i+1].(Value)
		if !ok {
			return AttributeVector{}, fmt.Errorf("attrvec: argument %d must be an attrvec.Value, got %T", i+1, pairs[i+1])
		}

		av.names = append(av.names, name)
		av.values = append(av.values, value)
	}

	return av, nil
}

// lookup returns the Value for name and whether it was present.
func (av AttributeVector) lookup(name string) (Value, bool) {
	for i, n := range av.names {
		if n == name {
			return av.values[i], true
		}
	}

	return Value{}, false
}

// Has reports whether name is present in the vector.
func (av AttributeVector) Has(name string) bool {
	_, ok := av.lookup(name)

	return ok
}

// Int returns the integer scalar attribute named name.
func (av AttributeVector) Int(name string) (int, bool) {
	v, ok := av.lookup(name)
	if !ok || v.kind != kindInt {
		return 0, false
	}

	return v.intVal, true
}

// Float64 returns the floating-point scalar attribute named name.
func (av AttributeVector) Float64(name string) (float64, bool) {
	v, ok := av.lookup(name)
	if !ok || v.kind != kindFloat {
		return 0, false
	}

	return v.floatVal, true
}

// IntPair returns the 2-tuple attribute named name.
func (av AttributeVector) IntPair(name string) ([2]int, bool) {
	v, ok := av.lookup(name)
	if !ok || v.kind != kindIntPair {
		return [2]int{}, false
	}

	return v.pair, true
}

// IntList returns the integer list attribute named name.
func (av AttributeVector) IntList(name string) ([]int, bool) {
	v, ok := av.lookup(name)
	if !ok || v.kind != kindIntList {
		return nil, false
	}

	cp := make([]int, len(v.intList))
	copy(cp, v.intList)

	return cp, true
}

// Shape returns the TensorShape literal attribute named name.
func (av AttributeVector) Shape(name string) (shape.TensorShape, bool) {
	v, ok := av.lookup(name)
	if !ok || v.kind != kindShape {
		return shape.TensorShape{}, false
	}

	return v.shapeVal, true
}
