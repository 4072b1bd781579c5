package ops

import (
	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/shape"
	"github.com/nnrt/corograph/tensor"
)

// conv2DOp implements CONV2D as a naive direct convolution over a
// [N,Cin,H,W] input with a [Cout,Cin,kH,kW] weight and an optional
// [Cout] bias. Its window geometry comes from conv2DGeometry (stride
// defaults to (1,1)), not from MAXPOOL2D's windowGeometry.
type conv2DOp[T numeric.Dtype] struct{ baseOp }

// Conv2D is the package-level CONV2D operator value for dtype T.
func Conv2D[T numeric.Dtype]() StaticOperator[T] { return conv2DOp[T]{baseOp{graph.OpConv2D}} }

func (conv2DOp[T]) Forward(out *tensor.Dense[T], inputs []*tensor.Dense[T], attrs attrvec.AttributeVector) {
	arith := numeric.OpsFor[T]()
	in, weight := inputs[0], inputs[1]

	var bias *tensor.Dense[T]
	if len(inputs) == 3 {
		bias = inputs[2]
	}

	padding, stride, dilation := conv2DGeometry(attrs)

	inShape, wShape, outShape := in.Shape(), weight.Shape(), out.Shape()
	n, cin := inShape.Extent(0), inShape.Extent(1)
	h, w := inShape.Extent(2), inShape.Extent(3)
	cout, kH, kW := wShape.Extent(0), wShape.Extent(2), wShape.Extent(3)
	oH, oW := outShape.Extent(2), outShape.Extent(3)

	for ni := 0; ni < n; ni++ {
		for co := 0; co < cout; co++ {
			var biasVal T
			if bias != nil {
				biasVal, _ = bias.At(co)
			}

			for ox := 0; ox < oH; ox++ {
				for oy := 0; oy < oW; oy++ {
					sum := biasVal

					for ci := 0; ci < cin; ci++ {
						for kx := 0; kx < kH; kx++ {
							ix := ox*stride[0] - padding[0] + kx*dilation[0]
							if ix < 0 || ix >= h {
								continue
							}

							for ky := 0; ky < kW; ky++ {
								iy := oy*stride[1] - padding[1] + ky*dilation[1]
								if iy < 0 || iy >= w {
									continue
								}

								iv, _ := in.At(ni, ci, ix, iy)
								wv, _ := weight.At(co, ci, kx, ky)
								sum = arith.Add(sum, arith.Mul(iv, wv))
							}
						}
					}

					_ = out.Set(sum, ni, co, ox, oy)
				}
			}
		}
	}
}

func (conv2DOp[T]) Backward(slot int, upstream *tensor.Dense[T], inputs []*tensor.Dense[T], attrs attrvec.AttributeVector) *tensor.Dense[T] {
	arith := numeric.OpsFor[T]()
	in, weight := inputs[0], inputs[1]
	padding, stride, dilation := conv2DGeometry(attrs)

	inShape, wShape := in.Shape(), weight.Shape()
	n, cin := inShape.Extent(0), inShape.Extent(1)
	h, w := inShape.Extent(2), inShape.Extent(3)
	cout, kH, kW := wShape.Extent(0), wShape.Extent(2), wShape.Extent(3)
	oH, oW := upstream.Shape().Extent(2), upstream.Shape().Extent(3)

	switch slot {
	case 0:
		grad, _ := tensor.New[T](inShape, nil)
		accumulate(grad, func(emit func(idx []int, v T)) {
			for ni := 0; ni < n; ni++ {
				for co := 0; co < cout; co++ {
					for ox := 0; ox < oH; ox++ {
						for oy := 0; oy < oW; oy++ {
							ug, _ := upstream.At(ni, co, ox, oy)

							for ci := 0; ci < cin; ci++ {
								for kx := 0; kx < kH; kx++ {
									ix := ox*stride[0] - padding[0] + kx*dilation[0]
									if ix < 0 || ix >= h {
										continue
									}

									for ky := 0; ky < kW; ky++ {
										iy := oy*stride[1] - padding[1] + ky*dilation[1]
										if iy < 0 || iy >= w {
											continue
										}

										wv, _ := weight.At(co, ci, kx, ky)
										emit([]int{ni, ci, ix, iy}, arith.Mul(ug, wv))
									}
								}
							}
						}
					}
				}
			}
		})

		return grad
	case 1:
		grad, _ := tensor.New[T](wShape, nil)
		accumulate(grad, func(emit func(idx []int, v T)) {
			for ni := 0; ni < n; ni++ {
				for co := 0; co < cout; co++ {
					for ox := 0; ox < oH; ox++ {
						for oy := 0; oy < oW; oy++ {
							ug, _ := upstream.At(ni, co, ox, oy)

							for ci := 0; ci < cin; ci++ {
								for kx := 0; kx < kH; kx++ {
									ix := ox*stride[0] - padding[0] + kx*dilation[0]
									if ix < 0 || ix >= h {
										continue
									}

									for ky := 0; ky < kW; ky++ {
										iy := oy*stride[1] - padding[1] + ky*dilation[1]
										if iy < 0 || iy >= w {
											continue
										}

										iv, _ := in.At(ni, ci, ix, iy)
										emit([]int{co, ci, kx, ky}, arith.Mul(iv, ug))
									}
								}
							}
						}
					}
				}
			}
		})

		return grad
	default:
		// Bias gradient: sum of upstream over N, oH, oW per output channel.
		grad, _ := tensor.New[T](shape.MustNew(cout), nil)
		accumulate(grad, func(emit func(idx []int, v T)) {
			for ni := 0; ni < n; ni++ {
				for co := 0; co < cout; co++ {
					for ox := 0; ox < oH; ox++ {
						for oy := 0; oy < oW; oy++ {
							ug, _ := upstream.At(ni, co, ox, oy)
							emit([]int{co}, ug)
						}
					}
				}
			}
		})

		return grad
	}
}

// conv2DGeometry resolves padding/stride/dilation the same way
// graph.conv2DShape does: CONV2D has no kernel_size attribute since the
// kernel extents come from the weight symbol's own shape, so unlike
// MAXPOOL2D's windowGeometry, stride defaults to (1,1) rather than to
// the kernel size.
func conv2DGeometry(attrs attrvec.AttributeVector) (padding, stride, dilation [2]int) {
	if p, ok := attrs.IntPair("padding"); ok {
		padding = p
	}

	stride = [2]int{1, 1}
	if s, ok := attrs.IntPair("stride"); ok {
		stride = s
	}

	dilation = [2]int{1, 1}
	if d, ok := attrs.IntPair("dilation"); ok {
		dilation = d
	}

	return padding, stride, dilation
}

func accumulate[T numeric.Dtype](grad *tensor.Dense[T], walk func(emit func(idx []int, v T))) {
	arith := numeric.OpsFor[T]()

	walk(func(idx []int, v T) {
		existing, _ := grad.At(idx...)
		_ = grad.Set(arith.Add(existing, v), idx...)
	})
}
