package ops

import (
	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/tensor"
)

// sigmoidOp implements SIGMOID: forward is the logistic function, backward
// multiplies the upstream gradient by σ(x)·(1−σ(x)).
type sigmoidOp[T numeric.Dtype] struct{ baseOp }

// Sigmoid is the package-level SIGMOID operator value for dtype T.
func Sigmoid[T numeric.Dtype]() StaticOperator[T] { return sigmoidOp[T]{baseOp{graph.OpSigmoid}} }

func (sigmoidOp[T]) Forward(out *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) {
	arith := numeric.OpsFor[T]()
	x := inputs[0].Data()
	y := out.Data()

	for i, v := range x {
		y[i] = arith.Sigmoid(v)
	}
}

func (sigmoidOp[T]) Backward(_ int, upstream *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) *tensor.Dense[T] {
	arith := numeric.OpsFor[T]()
	x := inputs[0].Data()
	ug := upstream.Data()

	grad, _ := tensor.New[T](inputs[0].Shape(), nil)
	gd := grad.Data()

	for i, v := range x {
		gd[i] = arith.Mul(ug[i], arith.SigmoidGrad(v))
	}

	return grad
}

// reluOp implements RELU: forward is max(x,0); the subgradient at x=0 is
// fixed to 0 for determinism.
type reluOp[T numeric.Dtype] struct{ baseOp }

// ReLU is the package-level RELU operator value for dtype T.
func ReLU[T numeric.Dtype]() StaticOperator[T] { return reluOp[T]{baseOp{graph.OpReLU}} }

func (reluOp[T]) Forward(out *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) {
	arith := numeric.OpsFor[T]()
	x := inputs[0].Data()
	y := out.Data()

	for i, v := range x {
		y[i] = arith.ReLU(v)
	}
}

func (reluOp[T]) Backward(_ int, upstream *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) *tensor.Dense[T] {
	arith := numeric.OpsFor[T]()
	x := inputs[0].Data()
	ug := upstream.Data()

	grad, _ := tensor.New[T](inputs[0].Shape(), nil)
	gd := grad.Data()

	for i, v := range x {
		gd[i] = arith.Mul(ug[i], arith.ReLUGrad(v))
	}

	return grad
}

// tanhOp implements TANH: forward is tanh(x), backward multiplies by
// 1 − tanh(x)².
type tanhOp[T numeric.Dtype] struct{ baseOp }

// Tanh is the package-level TANH operator value for dtype T.
func Tanh[T numeric.Dtype]() StaticOperator[T] { return tanhOp[T]{baseOp{graph.OpTanh}} }

func (tanhOp[T]) Forward(out *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) {
	arith := numeric.OpsFor[T]()
	x := inputs[0].Data()
	y := out.Data()

	for i, v := range x {
		y[i] = arith.Tanh(v)
	}
}

func (tanhOp[T]) Backward(_ int, upstream *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) *tensor.Dense[T] {
	arith := numeric.OpsFor[T]()
	x := inputs[0].Data()
	ug := upstream.Data()

	grad, _ := tensor.New[T](inputs[0].Shape(), nil)
	gd := grad.Data()

	for i, v := range x {
		gd[i] = arith.Mul(ug[i], arith.TanhGrad(v))
	}

	return grad
}
