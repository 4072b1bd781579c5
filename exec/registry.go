package exec

import (
	"fmt"

	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/ops"
)

// operatorFor resolves the static kernel implementing kind. Every kind in
// the catalog is statically dispatched (graph.OpKind.Dynamic always
// returns false today; see ops.DynamicOperator), so this is the only
// lookup Model's dispatch-table construction needs.
func operatorFor[T numeric.Dtype](kind graph.OpKind) (ops.StaticOperator[T], error) {
	switch kind {
	case graph.OpSigmoid:
		return ops.Sigmoid[T](), nil
	case graph.OpReLU:
		return ops.ReLU[T](), nil
	case graph.OpTanh:
		return ops.Tanh[T](), nil
	case graph.OpClip:
		return ops.Clip[T](), nil
	case graph.OpSqueeze:
		return ops.Squeeze[T](), nil
	case graph.OpUnsqueeze:
		return ops.Unsqueeze[T](), nil
	case graph.OpMaxPool2D:
		return ops.MaxPool2D[T](), nil
	case graph.OpAdd:
		return ops.Add[T](), nil
	case graph.OpMul:
		return ops.Mul[T](), nil
	case graph.OpMatMul:
		return ops.MatMul[T](), nil
	case graph.OpConv2D:
		return ops.Conv2D[T](), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperator, kind)
	}
}
