package ops

import (
	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/tensor"
)

// maxPool2DOp implements MAXPOOL2D over a [N,C,H,W] input. Forward scans
// each output cell's kernel window in row-major (kx,ky) order, picking
// the first-scanned maximum on ties; cells outside the input are treated
// as an implicit −∞ padding. Backward rescans the same window to find the
// arg-max and deposits the upstream gradient there, summing contributions
// from overlapping windows.
type maxPool2DOp[T numeric.Dtype] struct{ baseOp }

// MaxPool2D is the package-level MAXPOOL2D operator value for dtype T.
func MaxPool2D[T numeric.Dtype]() StaticOperator[T] {
	return maxPool2DOp[T]{baseOp{graph.OpMaxPool2D}}
}

func (maxPool2DOp[T]) Forward(out *tensor.Dense[T], inputs []*tensor.Dense[T], attrs attrvec.AttributeVector) {
	arith := numeric.OpsFor[T]()
	in := inputs[0]
	kernel, padding, stride, dilation := windowGeometry(attrs)

	inShape := in.Shape()
	outShape := out.Shape()
	n, c := inShape.Extent(0), inShape.Extent(1)
	h, w := inShape.Extent(2), inShape.Extent(3)
	oH, oW := outShape.Extent(2), outShape.Extent(3)

	for ni := 0; ni < n; ni++ {
		for ci := 0; ci < c; ci++ {
			for ox := 0; ox < oH; ox++ {
				for oy := 0; oy < oW; oy++ {
					best := arith.NegInf()
					found := false

					for kx := 0; kx < kernel[0]; kx++ {
						ix := ox*stride[0] - padding[0] + kx*dilation[0]
						if ix < 0 || ix >= h {
							continue
						}

						for ky := 0; ky < kernel[1]; ky++ {
							iy := oy*stride[1] - padding[1] + ky*dilation[1]
							if iy < 0 || iy >= w {
								continue
							}

							v, _ := in.At(ni, ci, ix, iy)
							if !found || arith.GreaterThan(v, best) {
								best = v
								found = true
							}
						}
					}

					_ = out.Set(best, ni, ci, ox, oy)
				}
			}
		}
	}
}

func (maxPool2DOp[T]) Backward(_ int, upstream *tensor.Dense[T], inputs []*tensor.Dense[T], attrs attrvec.AttributeVector) *tensor.Dense[T] {
	arith := numeric.OpsFor[T]()
	in := inputs[0]
	kernel, padding, stride, dilation := windowGeometry(attrs)

	inShape := in.Shape()
	grad, _ := tensor.New[T](inShape, nil)

	n, c := inShape.Extent(0), inShape.Extent(1)
	h, w := inShape.Extent(2), inShape.Extent(3)
	oH, oW := upstream.Shape().Extent(2), upstream.Shape().Extent(3)

	for ni := 0; ni < n; ni++ {
		for ci := 0; ci < c; ci++ {
			for ox := 0; ox < oH; ox++ {
				for oy := 0; oy < oW; oy++ {
					best := arith.NegInf()
					found := false
					bestX, bestY := -1, -1

					for kx := 0; kx < kernel[0]; kx++ {
						ix := ox*stride[0] - padding[0] + kx*dilation[0]
						if ix < 0 || ix >= h {
							continue
						}

						for ky := 0; ky < kernel[1]; ky++ {
							iy := oy*stride[1] - padding[1] + ky*dilation[1]
							if iy < 0 || iy >= w {
								continue
							}

							v, _ := in.At(ni, ci, ix, iy)
							if !found || arith.GreaterThan(v, best) {
								best = v
								found = true
								bestX, bestY = ix, iy
							}
						}
					}

					if !found {
						continue
					}

					ug, _ := upstream.At(ni, ci, ox, oy)
					existing, _ := grad.At(ni, ci, bestX, bestY)
					_ = grad.Set(arith.Add(existing, ug), ni, ci, bestX, bestY)
				}
			}
		}
	}

	return grad
}
