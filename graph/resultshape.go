package graph

import (
	"fmt"

	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/shape"
)

// ResultShape computes the output shape of a node given its operator kind,
// the shapes of its already-built input symbols, and its attribute
// vector. Op calls it at graph-build time, and the generic ops.Operator[T]
// implementations in the ops package delegate their ResultShape method
// back to this function so there is exactly one place each operator's
// shape contract is implemented.
func ResultShape(kind OpKind, inputs []shape.TensorShape, attrs attrvec.AttributeVector) (shape.TensorShape, error) {
	switch kind {
	case OpSigmoid, OpReLU, OpTanh, OpClip:
		return elementwiseUnaryShape(kind, inputs)
	case OpSqueeze:
		return squeezeShape(inputs, attrs)
	case OpUnsqueeze:
		return unsqueezeShape(inputs, attrs)
	case OpMaxPool2D:
		return maxPool2DShape(inputs, attrs)
	case OpAdd, OpMul:
		return broadcastShape(kind, inputs)
	case OpMatMul:
		return matMulShape(inputs)
	case OpConv2D:
		return conv2DShape(inputs, attrs)
	default:
		return shape.TensorShape{}, fmt.Errorf("graph: unknown operator kind %q", kind)
	}
}

func elementwiseUnaryShape(kind OpKind, inputs []shape.TensorShape) (shape.TensorShape, error) {
	if len(inputs) != 1 {
		return shape.TensorShape{}, fmt.Errorf("graph: %s expects 1 input, got %d", kind, len(inputs))
	}

	return inputs[0], nil
}

func squeezeShape(inputs []shape.TensorShape, attrs attrvec.AttributeVector) (shape.TensorShape, error) {
	if len(inputs) != 1 {
		return shape.TensorShape{}, fmt.Errorf("graph: SQUEEZE expects 1 input, got %d", len(inputs))
	}

	in := inputs[0]

	// dim and dims are mutually exclusive; if both are set the `dim`
	// spelling is authoritative.
	if dim, ok := attrs.Int("dim"); ok {
		if dim < 0 || dim >= in.Rank() {
			return shape.TensorShape{}, fmt.Errorf("graph: SQUEEZE dim %d out of range for rank %d", dim, in.Rank())
		}

		if in.Extent(dim) != 1 {
			return shape.TensorShape{}, fmt.Errorf("graph: SQUEEZE dim %d has extent %d, must be 1", dim, in.Extent(dim))
		}

		return in.Remove([]int{dim}), nil
	}

	if dims, ok := attrs.IntList("dims"); ok {
		for _, d := range dims {
			if d < 0 || d >= in.Rank() {
				return shape.TensorShape{}, fmt.Errorf("graph: SQUEEZE dims contains out-of-range axis %d for rank %d", d, in.Rank())
			}

			if in.Extent(d) != 1 {
				return shape.TensorShape{}, fmt.Errorf("graph: SQUEEZE dims axis %d has extent %d, must be 1", d, in.Extent(d))
			}
		}

		return in.Remove(dims), nil
	}

	// Neither attribute set: drop every axis of extent 1.
	var drop []int

	for axis := 0; axis < in.Rank(); axis++ {
		if in.Extent(axis) == 1 {
			drop = append(drop, axis)
		}
	}

	return in.Remove(drop), nil
}

func unsqueezeShape(inputs []shape.TensorShape, attrs attrvec.AttributeVector) (shape.TensorShape, error) {
	if len(inputs) != 1 {
		return shape.TensorShape{}, fmt.Errorf("graph: UNSQUEEZE expects 1 input, got %d", len(inputs))
	}

	in := inputs[0]

	if dim, ok := attrs.Int("dim"); ok {
		outRank := in.Rank() + 1
		if dim < 0 || dim >= outRank {
			return shape.TensorShape{}, fmt.Errorf("graph: UNSQUEEZE dim %d out of range for output rank %d", dim, outRank)
		}

		return in.Insert([]int{dim}), nil
	}

	if dims, ok := attrs.IntList("dims"); ok {
		outRank := in.Rank() + len(dims)

		for _, d := range dims {
			if d < 0 || d >= outRank {
				return shape.TensorShape{}, fmt.Errorf("graph: UNSQUEEZE dims contains out-of-range axis %d for output rank %d", d, outRank)
			}
		}

		return in.Insert(dims), nil
	}

	// Neither attribute set: prepend one unit axis.
	return in.Insert([]int{0}), nil
}

func geometryAttrs(attrs attrvec.AttributeVector) (kernel, padding, stride, dilation [2]int, err error) {
	k, ok := attrs.IntPair("kernel_size")
	if !ok {
		return kernel, padding, stride, dilation, fmt.Errorf("graph: missing required attribute kernel_size")
	}

	kernel = k

	if p, ok := attrs.IntPair("padding"); ok {
		padding = p
	}

	if s, ok := attrs.IntPair("stride"); ok {
		stride = s
	} else {
		stride = kernel
	}

	if d, ok := attrs.IntPair("dilation"); ok {
		dilation = d
	} else {
		dilation = [2]int{1, 1}
	}

	return kernel, padding, stride, dilation, nil
}

func maxPool2DShape(inputs []shape.TensorShape, attrs attrvec.AttributeVector) (shape.TensorShape, error) {
	if len(inputs) != 1 {
		return shape.TensorShape{}, fmt.Errorf("graph: MAXPOOL2D expects 1 input, got %d", len(inputs))
	}

	in := inputs[0]
	if in.Rank() != 4 {
		return shape.TensorShape{}, fmt.Errorf("graph: MAXPOOL2D expects a rank-4 [N,C,H,W] input, got rank %d", in.Rank())
	}

	kernel, padding, stride, dilation, err := geometryAttrs(attrs)
	if err != nil {
		return shape.TensorShape{}, err
	}

	oH, err := convOutputExtent(in.Extent(2), kernel[0], padding[0], stride[0], dilation[0])
	if err != nil {
		return shape.TensorShape{}, err
	}

	oW, err := convOutputExtent(in.Extent(3), kernel[1], padding[1], stride[1], dilation[1])
	if err != nil {
		return shape.TensorShape{}, err
	}

	return shape.New(in.Extent(0), in.Extent(1), oH, oW)
}

func broadcastShape(kind OpKind, inputs []shape.TensorShape) (shape.TensorShape, error) {
	if len(inputs) != 2 {
		return shape.TensorShape{}, fmt.Errorf("graph: %s expects 2 inputs, got %d", kind, len(inputs))
	}

	out, _, _, err := shape.Broadcast(inputs[0], inputs[1])

	return out, err
}

func matMulShape(inputs []shape.TensorShape) (shape.TensorShape, error) {
	if len(inputs) != 2 {
		return shape.TensorShape{}, fmt.Errorf("graph: MATMUL expects 2 inputs, got %d", len(inputs))
	}

	a, b := inputs[0], inputs[1]
	if a.Rank() != 2 || b.Rank() != 2 {
		return shape.TensorShape{}, fmt.Errorf("graph: MATMUL expects 2-D inputs, got ranks %d and %d", a.Rank(), b.Rank())
	}

	if a.Extent(1) != b.Extent(0) {
		return shape.TensorShape{}, fmt.Errorf("graph: MATMUL inner dimension mismatch: %s vs %s", a, b)
	}

	return shape.New(a.Extent(0), b.Extent(1))
}

func conv2DShape(inputs []shape.TensorShape, attrs attrvec.AttributeVector) (shape.TensorShape, error) {
	if len(inputs) != 2 && len(inputs) != 3 {
		return shape.TensorShape{}, fmt.Errorf("graph: CONV2D expects 2 or 3 inputs, got %d", len(inputs))
	}

	in, weight := inputs[0], inputs[1]

	if in.Rank() != 4 {
		return shape.TensorShape{}, fmt.Errorf("graph: CONV2D expects a rank-4 [N,Cin,H,W] input, got rank %d", in.Rank())
	}

	if weight.Rank() != 4 {
		return shape.TensorShape{}, fmt.Errorf("graph: CONV2D expects a rank-4 [Cout,Cin,kH,kW] weight, got rank %d", weight.Rank())
	}

	if in.Extent(1) != weight.Extent(1) {
		return shape.TensorShape{}, fmt.Errorf("graph: CONV2D input channel count %d does not match weight's %d", in.Extent(1), weight.Extent(1))
	}

	if len(inputs) == 3 {
		bias := inputs[2]
		if bias.Rank() != 1 || bias.Extent(0) != weight.Extent(0) {
			return shape.TensorShape{}, fmt.Errorf("graph: CONV2D bias shape %s incompatible with %d output channels", bias, weight.Extent(0))
		}
	}

	padding := [2]int{}
	if p, ok := attrs.IntPair("padding"); ok {
		padding = p
	}

	stride := [2]int{1, 1}
	if s, ok := attrs.IntPair("stride"); ok {
		stride = s
	}

	dilation := [2]int{1, 1}
	if d, ok := attrs.IntPair("dilation"); ok {
		dilation = d
	}

	oH, err := convOutputExtent(in.Extent(2), weight.Extent(2), padding[0], stride[0], dilation[0])
	if err != nil {
		return shape.TensorShape{}, err
	}

	oW, err := convOutputExtent(in.Extent(3), weight.Extent(3), padding[1], stride[1], dilation[1])
	if err != nil {
		return shape.TensorShape{}, err
	}

	return shape.New(in.Extent(0), weight.Extent(0), oH, oW)
}
