package graph

import (
	"fmt"

	"github.com/nnrt/corograph/attrvec"
	"github.com/nnrt/corograph/shape"
)

// Graph is the static computation graph: its inputs, parameter table, node
// list, declared outputs, and optional loss marker. A Graph is built via
// Input/Param/Op/Out/Loss and then fixed by Compile; nothing here mutates
// it afterward.
type Graph struct {
	Inputs          []Symbol
	Params          ParamTable
	Nodes           []Node
	Outputs         []Symbol
	LossOut         *Symbol
	NInferenceNodes int
	compiled        bool

	symbolCount int
	producedBy  map[int]int // symbol ID -> index of the node that produced it, for cycle/ordering checks
}

// New returns an empty, uncompiled Graph ready for Input/Param/Op calls.
func New() *Graph {
	return &Graph{producedBy: make(map[int]int)}
}

func (g *Graph) nextSymbol(s shape.TensorShape, trainable bool, kind SymbolKind) Symbol {
	sym := Symbol{ID: g.symbolCount, Shape: s, Trainable: trainable, Kind: kind}
	g.symbolCount++

	return sym
}

// Input appends a graph input symbol.
func (g *Graph) Input(s shape.TensorShape, trainable bool) Symbol {
	sym := g.nextSymbol(s, trainable, SymbolInput)
	g.Inputs = append(g.Inputs, sym)

	return sym
}

// Param appends a parameter symbol with its initialization record.
func (g *Graph) Param(s shape.TensorShape, init InitSpec, trainable bool) Symbol {
	sym := g.nextSymbol(s, trainable, SymbolParam)
	g.Params = append(g.Params, ParamEntry{Symbol: sym, Init: init})

	return sym
}

// Op computes the result shape for kind from the inputs' declared shapes
// and attrs, allocates a fresh output symbol, appends the node, and
// returns the output symbol. Every operator in this catalog produces
// exactly one output.
func (g *Graph) Op(kind OpKind, inputs []Symbol, attrs attrvec.AttributeVector) (Symbol, error) {
	minArity, maxArity := kind.ArityRange()
	if len(inputs) < minArity || len(inputs) > maxArity {
		return Symbol{}, fmt.Errorf("graph: %s expects between %d and %d inputs, got %d", kind, minArity, maxArity, len(inputs))
	}

	for _, in := range inputs {
		if in.ID >= g.symbolCount {
			return Symbol{}, fmt.Errorf("%w: symbol id %d", ErrUnknownSymbol, in.ID)
		}
	}

	inputShapes := make([]shape.TensorShape, len(inputs))
	for i, in := range inputs {
		inputShapes[i] = in.Shape
	}

	outShape, err := ResultShape(kind, inputShapes, attrs)
	if err != nil {
		return Symbol{}, fmt.Errorf("%w: %s", ErrShapeMismatch, err)
	}

	// A node's output participates in backward accumulation iff any of its
	// inputs does, so trainability propagates forward through the graph
	// exactly like the gradient flows backward through it.
	trainable := false

	for _, in := range inputs {
		if in.Trainable {
			trainable = true

			break
		}
	}

	out := g.nextSymbol(outShape, trainable, SymbolIntermediate)

	nodeIdx := len(g.Nodes)
	g.Nodes = append(g.Nodes, Node{
		Op:      Operator{Kind: kind, Dynamic: kind.Dynamic()},
		Attrs:   attrs,
		Inputs:  inputs,
		Outputs: []Symbol{out},
	})
	g.producedBy[out.ID] = nodeIdx

	return out, nil
}

// Out marks symbol as a graph output read back by Model.Inference.
func (g *Graph) Out(symbol Symbol) error {
	if symbol.ID >= g.symbolCount {
		return fmt.Errorf("%w: symbol id %d", ErrUnknownSymbol, symbol.ID)
	}

	g.Outputs = append(g.Outputs, symbol)

	return nil
}

// Loss marks symbol as the graph's loss output. At most one may be
// registered.
func (g *Graph) Loss(symbol Symbol) error {
	if g.LossOut != nil {
		return ErrDuplicateLoss
	}

	if symbol.ID >= g.symbolCount {
		return fmt.Errorf("%w: symbol id %d", ErrUnknownSymbol, symbol.ID)
	}

	g.LossOut = &symbol

	return nil
}

// Compile computes NInferenceNodes: the smallest K such that nodes 0..K-1
// produce every node-produced symbol in Outputs; outputs that are graph
// inputs or params are ignored. If Outputs is empty, or no output symbol
// is produced by any node, NInferenceNodes is undefined and reported as
// -1, which disables Inference on any Model built from this graph.
func (g *Graph) Compile() {
	g.NInferenceNodes = -1

	if len(g.Outputs) == 0 {
		g.compiled = true

		return
	}

	pending := make(map[int]bool, len(g.Outputs))

	for _, out := range g.Outputs {
		if _, produced := g.producedBy[out.ID]; produced {
			pending[out.ID] = true
		}
	}

	if len(pending) == 0 {
		g.compiled = true

		return
	}

	for i, node := range g.Nodes {
		for _, out := range node.Outputs {
			delete(pending, out.ID)
		}

		if len(pending) == 0 {
			g.NInferenceNodes = i + 1

			break
		}
	}

	g.compiled = true
}

// Compiled reports whether Compile has run.
func (g *Graph) Compiled() bool { return g.compiled }
