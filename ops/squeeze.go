package ops

import (
	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/tensor"
)

// squeezeOp implements SQUEEZE: a pure shape reinterpretation. Forward and
// backward are both a memcpy of the flat buffer — result_shape
// (graph.ResultShape) already validated which axes have extent 1, so no
// per-element work is needed here.
type squeezeOp[T numeric.Dtype] struct{ baseOp }

// Squeeze is the package-level SQUEEZE operator value for dtype T.
func Squeeze[T numeric.Dtype]() StaticOperator[T] { return squeezeOp[T]{baseOp{graph.OpSqueeze}} }

func (squeezeOp[T]) Forward(out *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) {
	copy(out.Data(), inputs[0].Data())
}

func (squeezeOp[T]) Backward(_ int, upstream *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) *tensor.Dense[T] {
	grad, _ := tensor.New[T](inputs[0].Shape(), nil)
	copy(grad.Data(), upstream.Data())

	return grad
}

// unsqueezeOp implements UNSQUEEZE: the inverse shape reinterpretation,
// also a memcpy.
type unsqueezeOp[T numeric.Dtype] struct{ baseOp }

// Unsqueeze is the package-level UNSQUEEZE operator value for dtype T.
func Unsqueeze[T numeric.Dtype]() StaticOperator[T] {
	return unsqueezeOp[T]{baseOp{graph.OpUnsqueeze}}
}

func (unsqueezeOp[T]) Forward(out *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) {
	copy(out.Data(), inputs[0].Data())
}

func (unsqueezeOp[T]) Backward(_ int, upstream *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) *tensor.Dense[T] {
	grad, _ := tensor.New[T](inputs[0].Shape(), nil)
	copy(grad.Data(), upstream.Data())

	return grad
}
