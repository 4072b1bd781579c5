package ops

import (
	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/tensor"
)

// clipOp implements CLIP: forward clamps every element to [min, max];
// backward passes the upstream gradient through unchanged where
// min ≤ x ≤ max and zeroes it elsewhere.
type clipOp[T numeric.Dtype] struct{ baseOp }

// Clip is the package-level CLIP operator value for dtype T.
func Clip[T numeric.Dtype]() StaticOperator[T] { return clipOp[T]{baseOp{graph.OpClip}} }

func clipBounds[T numeric.Dtype](attrs attrvec.AttributeVector) (lo, hi T) {
	arith := numeric.OpsFor[T]()
	lo, hi = arith.LowestFinite(), arith.HighestFinite()

	if v, ok := attrs.Float64("min"); ok {
		lo = arith.FromFloat64(v)
	}

	if v, ok := attrs.Float64("max"); ok {
		hi = arith.FromFloat64(v)
	}

	return lo, hi
}

func (clipOp[T]) Forward(out *tensor.Dense[T], inputs []*tensor.Dense[T], attrs attrvec.AttributeVector) {
	arith := numeric.OpsFor[T]()
	lo, hi := clipBounds[T](attrs)

	x := inputs[0].Data()
	y := out.Data()

	for i, v := range x {
		y[i] = arith.Min(arith.Max(v, lo), hi)
	}
}

func (clipOp[T]) Backward(_ int, upstream *tensor.Dense[T], inputs []*tensor.Dense[T], attrs attrvec.AttributeVector) *tensor.Dense[T] {
	arith := numeric.OpsFor[T]()
	lo, hi := clipBounds[T](attrs)

	x := inputs[0].Data()
	ug := upstream.Data()

	grad, _ := tensor.New[T](inputs[0].Shape(), nil)
	gd := grad.Data()

	var zero T

	for i, v := range x {
		if arith.GreaterThan(lo, v) || arith.GreaterThan(v, hi) {
			gd[i] = zero
		} else {
			gd[i] = ug[i]
		}
	}

	return grad
}
