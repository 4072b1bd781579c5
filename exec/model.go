// Package exec implements the interpreter-free model executor: it
// compiles a graph.Graph's node list into a dispatch table once at
// construction, then runs Forward/Inference/Backward sweeps over that
// table with no further branching on operator kind.
package exec

import (
	"fmt"
	"log"

	"github.com/nnrt/corograph/arena"
	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/graph"
	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/ops"
	"github.com/nnrt/corograph/shape"
	"github.com/nnrt/corograph/tensor"
)

// nodeThunk is one entry of the dispatch table: a node's resolved
// operator kernel plus its attribute vector and the symbol IDs of its
// inputs/output, closed over once at NewModel time so Forward/Backward
// never re-inspect graph.Node or re-resolve an operator kind.
type nodeThunk[T numeric.Dtype] struct {
	op              ops.StaticOperator[T]
	attrs           attrvec.AttributeVector
	inputIDs        []int
	inputTrainable  []bool
	outputID        int
	outputTrainable bool
}

// Model is a compiled graph bound to one concrete dtype, its two arenas,
// and the dispatch table built once at construction. Each NewModel call
// builds a fresh pair of arenas owned by the new Model; it neither clears
// nor invalidates the arenas of a previously constructed Model, and
// several Models may exist at once.
type Model[T numeric.Dtype] struct {
	g        *graph.Graph
	tensors  *arena.Arena[T]
	grads    *arena.Arena[T]
	dispatch []nodeThunk[T]
	timings  []NodeTiming
}

// NewModel compiles g into a Model[T]: it allocates the TENSORS arena
// (inputs, then parameters per their init-spec priority, then node
// outputs) and the GRADS arena (one zero entry per trainable symbol, so
// backward accumulation across fan-out consumers has somewhere to sum
// into), then builds the dispatch table. inferenceOnly does not skip
// allocating training-only state, since GRADS entries are cheap relative
// to a second arena pass and Inference never touches them.
func NewModel[T numeric.Dtype](g *graph.Graph, inferenceOnly bool) (*Model[T], error) {
	_ = inferenceOnly

	if !g.Compiled() {
		return nil, ErrNotCompiled
	}

	if g.LossOut == nil {
		log.Printf("exec: NewModel: graph has no registered loss output; Backward will be unavailable")
	}

	if g.NInferenceNodes < 0 {
		log.Printf("exec: NewModel: graph's NInferenceNodes is undefined; Inference will be unavailable")
	}

	tensors := arena.New[T](arena.RoleTensors)
	grads := arena.New[T](arena.RoleGrads)

	for _, in := range g.Inputs {
		t, err := tensor.New[T](in.Shape, nil)
		if err != nil {
			return nil, fmt.Errorf("exec: allocating input symbol %d: %w", in.ID, err)
		}

		tensors.Append(in.ID, t)

		if in.Trainable {
			appendZeroGrad[T](grads, in.ID, in.Shape)
		}
	}

	for _, entry := range g.Params {
		t, err := allocateParam[T](entry)
		if err != nil {
			return nil, fmt.Errorf("exec: allocating param symbol %d: %w", entry.Symbol.ID, err)
		}

		tensors.Append(entry.Symbol.ID, t)

		if entry.Symbol.Trainable {
			appendZeroGrad[T](grads, entry.Symbol.ID, entry.Symbol.Shape)
		}
	}

	dispatch := make([]nodeThunk[T], len(g.Nodes))

	for i, node := range g.Nodes {
		out := node.Outputs[0]

		t, err := tensor.New[T](out.Shape, nil)
		if err != nil {
			return nil, fmt.Errorf("exec: allocating node %d output: %w", i, err)
		}

		tensors.Append(out.ID, t)

		if out.Trainable {
			appendZeroGrad[T](grads, out.ID, out.Shape)
		}

		op, err := operatorFor[T](node.Op.Kind)
		if err != nil {
			return nil, fmt.Errorf("exec: node %d: %w", i, err)
		}

		inputIDs := make([]int, len(node.Inputs))
		inputTrainable := make([]bool, len(node.Inputs))

		for j, in := range node.Inputs {
			inputIDs[j] = in.ID
			inputTrainable[j] = in.Trainable
		}

		dispatch[i] = nodeThunk[T]{
			op:              op,
			attrs:           node.Attrs,
			inputIDs:        inputIDs,
			inputTrainable:  inputTrainable,
			outputID:        out.ID,
			outputTrainable: out.Trainable,
		}
	}

	return &Model[T]{g: g, tensors: tensors, grads: grads, dispatch: dispatch}, nil
}

func allocateParam[T numeric.Dtype](entry graph.ParamEntry) (*tensor.Dense[T], error) {
	switch init := entry.Init.(type) {
	case graph.ExplicitData:
		return tensor.FromBytes[T](entry.Symbol.Shape, init.Raw)
	case graph.Named:
		return namedInitializer[T](init, entry.Symbol.Shape)
	default:
		return tensor.New[T](entry.Symbol.Shape, nil)
	}
}

func appendZeroGrad[T numeric.Dtype](grads *arena.Arena[T], symbolID int, s shape.TensorShape) {
	t, _ := tensor.New[T](s, nil)
	grads.Append(symbolID, t)
}
