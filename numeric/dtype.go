package numeric

import (
	"github.com/zerfoo/float16"
	"github.com/zerfoo/float8"
)

// Dtype is the set of element types a Tensor, Arena, and Operator may be
// instantiated over. The engine is compiled against exactly one Dtype per
// Model; nothing in this codebase switches dtype at runtime.
type Dtype interface {
	~int | ~float32 | ~float64 | float16.Float16 | float8.Float8
}

// OpsFor returns the Arithmetic implementation for a given Dtype, selected
// at compile time via a type switch on the zero value. Callers that already
// hold the right Arithmetic[T] (e.g. from a registry or constructor
// argument) should prefer passing it explicitly; OpsFor exists for the
// call sites, such as the ops kernels and exec's sweeps, that only have T
// as a type parameter.
func OpsFor[T Dtype]() Arithmetic[T] {
	var zero T

	switch any(zero).(type) {
	case float32:
		return any(Float32Ops{}).(Arithmetic[T])
	case float64:
		return any(Float64Ops{}).(Arithmetic[T])
	case float16.Float16:
		return any(Float16Ops{}).(Arithmetic[T])
	case float8.Float8:
		return any(Float8Ops{}).(Arithmetic[T])
	case int:
		return any(IntOps{}).(Arithmetic[T])
	default:
		panic("numeric: no Arithmetic implementation registered for this Dtype")
	}
}
