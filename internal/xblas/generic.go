package xblas

import (
	"github.com/nnrt/corograph/numeric"
	"github.com/zerfoo/float16"
	"github.com/zerfoo/float8"
)

// Gemm computes C = A * B for row-major contiguous matrices of any
// numeric.Dtype, dispatching at runtime to the concrete GemmF32/F64/F16/F8
// kernel for floating-point dtypes via a type switch on T's zero value,
// and falling back to a naive triple loop through numeric.Arithmetic for
// dtypes (such as int) gonum has no BLAS kernel for.
func Gemm[T numeric.Dtype](m, n, k int, a, b, c []T) {
	switch av := any(a).(type) {
	case []float32:
		GemmF32(m, n, k, av, any(b).([]float32), any(c).([]float32))
	case []float64:
		GemmF64(m, n, k, av, any(b).([]float64), any(c).([]float64))
	case []float16.Float16:
		GemmF16(m, n, k, av, any(b).([]float16.Float16), any(c).([]float16.Float16))
	case []float8.Float8:
		GemmF8(m, n, k, av, any(b).([]float8.Float8), any(c).([]float8.Float8))
	default:
		gemmNaive(m, n, k, a, b, c)
	}
}

func gemmNaive[T numeric.Dtype](m, n, k int, a, b, c []T) {
	arith := numeric.OpsFor[T]()

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum T

			for p := 0; p < k; p++ {
				sum = arith.Add(sum, arith.Mul(a[i*k+p], b[p*n+j]))
			}

			c[i*n+j] = sum
		}
	}
}
