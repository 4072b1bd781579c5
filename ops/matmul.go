package ops

import (
	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/internal/xblas"
	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/shape"
	"github.com/nnrt/corograph/tensor"
)

// matMulOp implements MATMUL over 2-D matrices. Forward dispatches to
// internal/xblas.Gemm (BLAS-backed for float32/float64, converted through
// float32 for float16/float8). Backward applies the two standard
// matmul-gradient identities: dA = dC·Bᵀ, dB = Aᵀ·dC.
type matMulOp[T numeric.Dtype] struct{ baseOp }

// MatMul is the package-level MATMUL operator value for dtype T.
func MatMul[T numeric.Dtype]() StaticOperator[T] { return matMulOp[T]{baseOp{graph.OpMatMul}} }

func (matMulOp[T]) Forward(out *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) {
	a, b := inputs[0], inputs[1]
	m, k := a.Shape().Extent(0), a.Shape().Extent(1)
	n := b.Shape().Extent(1)

	xblas.Gemm(m, n, k, a.Data(), b.Data(), out.Data())
}

func (matMulOp[T]) Backward(slot int, upstream *tensor.Dense[T], inputs []*tensor.Dense[T], _ attrvec.AttributeVector) *tensor.Dense[T] {
	a, b := inputs[0], inputs[1]
	m, k := a.Shape().Extent(0), a.Shape().Extent(1)
	n := b.Shape().Extent(1)

	if slot == 0 {
		// dA = dC * Bᵀ, shape (m,k).
		bT := transpose(b)
		grad, _ := tensor.New[T](shape.MustNew(m, k), nil)
		xblas.Gemm(m, k, n, upstream.Data(), bT.Data(), grad.Data())

		return grad
	}

	// dB = Aᵀ * dC, shape (k,n).
	aT := transpose(a)
	grad, _ := tensor.New[T](shape.MustNew(k, n), nil)
	xblas.Gemm(k, n, m, aT.Data(), upstream.Data(), grad.Data())

	return grad
}

func transpose[T numeric.Dtype](t *tensor.Dense[T]) *tensor.Dense[T] {
	rows, cols := t.Shape().Extent(0), t.Shape().Extent(1)
	out, _ := tensor.New[T](shape.MustNew(cols, rows), nil)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, _ := t.At(i, j)
			_ = out.Set(v, j, i)
		}
	}

	return out
}
