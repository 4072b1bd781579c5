// Package ops implements the operator catalog: per-operator result-shape,
// forward, and backward kernels that plug into the model executor in
// exec. Each operator is a stateless package-level value; the executor
// supplies every input tensor explicitly on every call, so kernels hold
// no per-instance state between sweeps.
package ops

import (
	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/shape"
	"github.com/nnrt/corograph/tensor"
)

// Operator is the contract every operator kind in the catalog satisfies:
// a pure result-shape computation plus a marker distinguishing static
// (fixed arity) from dynamic (N-ary, self-indexing) kernels.
type Operator[T numeric.Dtype] interface {
	ResultShape(inputs []shape.TensorShape, attrs attrvec.AttributeVector) (shape.TensorShape, error)
	IsDynamic() bool
}

// StaticOperator is a fixed-arity operator: Forward writes the output
// tensor in place; Backward returns a freshly allocated gradient for one
// trainable input slot, which the executor accumulates into GRADS.
type StaticOperator[T numeric.Dtype] interface {
	Operator[T]
	Forward(out *tensor.Dense[T], inputs []*tensor.Dense[T], attrs attrvec.AttributeVector)
	Backward(slot int, upstream *tensor.Dense[T], inputs []*tensor.Dense[T], attrs attrvec.AttributeVector) *tensor.Dense[T]
}

// DynamicOperator is the contract an N-ary operator would satisfy: it
// receives the full input/output symbol-ID lists and indexes the arenas
// itself. Every operator in this catalog has fixed arity 1, 2, or 3, so
// no value in this package implements DynamicOperator today; the
// interface pins down the dispatch contract an N-ary kind would use.
type DynamicOperator[T numeric.Dtype] interface {
	Operator[T]
	ForwardDynamic(tensors arenaLike[T], inputs, outputs []int, attrs attrvec.AttributeVector)
	BackwardDynamic(tensors, grads arenaLike[T], inputs, outputs []int, attrs attrvec.AttributeVector)
}

// arenaLike is the minimal read/write surface DynamicOperator needs from
// an arena.Arena[T], expressed locally so this package does not import
// arena (which would add a dependency no static operator needs).
type arenaLike[T numeric.Dtype] interface {
	Get(symbolID int) (*tensor.Dense[T], error)
	Set(symbolID int, t *tensor.Dense[T]) error
}

// baseOp carries the graph.OpKind every concrete operator value needs to
// delegate ResultShape to graph.ResultShape, the single place the shape
// contract is implemented.
type baseOp struct {
	kind graph.OpKind
}

func (b baseOp) ResultShape(inputs []shape.TensorShape, attrs attrvec.AttributeVector) (shape.TensorShape, error) {
	return graph.ResultShape(b.kind, inputs, attrs)
}

func (b baseOp) IsDynamic() bool {
	return b.kind.Dynamic()
}
