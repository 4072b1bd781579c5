package ops

import (
	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/shape"
	"github.com/nnrt/corograph/tensor"
)

// addOp implements ADD: elementwise addition with NumPy-style broadcasting
// resolved by shape.Broadcast/shape.BroadcastOffset.
type addOp[T numeric.Dtype] struct{ baseOp }

// Add is the package-level ADD operator value for dtype T.
func Add[T numeric.Dtype]() StaticOperator[T] { return addOp[T]{baseOp{graph.OpAdd}} }

func (addOp[T]) Forward(out *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) {
	broadcastBinary(out, inputs[0], inputs[1], numeric.OpsFor[T]().Add)
}

func (addOp[T]) Backward(slot int, upstream *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) *tensor.Dense[T] {
	return reduceToShape(upstream, inputs[slot].Shape())
}

// mulOp implements MUL: elementwise multiplication with broadcasting.
type mulOp[T numeric.Dtype] struct{ baseOp }

// Mul is the package-level MUL operator value for dtype T.
func Mul[T numeric.Dtype]() StaticOperator[T] { return mulOp[T]{baseOp{graph.OpMul}} }

func (mulOp[T]) Forward(out *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) {
	broadcastBinary(out, inputs[0], inputs[1], numeric.OpsFor[T]().Mul)
}

func (mulOp[T]) Backward(slot int, upstream *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) *tensor.Dense[T] {
	arith := numeric.OpsFor[T]()
	other := inputs[1-slot]

	scaled, _ := tensor.New[T](upstream.Shape(), nil)
	ug := upstream.Data()
	sd := scaled.Data()
	outShape := upstream.Shape()
	otherShape := other.Shape()
	otherData := other.Data()

	for i := range ug {
		otherOffset := shape.BroadcastOffset(i, otherShape, outShape)
		sd[i] = arith.Mul(ug[i], otherData[otherOffset])
	}

	return reduceToShape(scaled, inputs[slot].Shape())
}

func broadcastBinary[T numeric.Dtype](out, a, b *tensor.Dense[T], op func(x, y T) T) {
	outShape := out.Shape()
	aShape, bShape := a.Shape(), b.Shape()
	aData, bData := a.Data(), b.Data()
	outData := out.Data()

	for i := range outData {
		av := aData[shape.BroadcastOffset(i, aShape, outShape)]
		bv := bData[shape.BroadcastOffset(i, bShape, outShape)]
		outData[i] = op(av, bv)
	}
}

// reduceToShape sums a gradient shaped like a broadcast output back down
// to targetShape by accumulating every output cell into the corresponding
// (possibly collapsed) input cell, the standard broadcast-backward
// reduction.
func reduceToShape[T numeric.Dtype](grad *tensor.Dense[T], targetShape shape.TensorShape) *tensor.Dense[T] {
	if grad.Shape().Equal(targetShape) {
		return grad.Clone()
	}

	arith := numeric.OpsFor[T]()

	reduced, _ := tensor.New[T](targetShape, nil)
	rd := reduced.Data()
	gd := grad.Data()
	gradShape := grad.Shape()

	for i := range gd {
		targetOffset := shape.BroadcastOffset(i, targetShape, gradShape)
		rd[targetOffset] = arith.Add(rd[targetOffset], gd[i])
	}

	return reduced
}
