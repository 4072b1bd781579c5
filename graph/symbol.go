// Package graph implements the static computation graph: symbolic tensors,
// the parameter table, the node list, graph inputs/outputs, and the loss
// marker. Compile() derives the inference node count once; it is called
// explicitly before exec.NewModel, which does not call it and rejects a
// graph that has not been compiled.
package graph

import "github.com/nnrt/corograph/shape"

// SymbolKind distinguishes what role a Symbol plays in the graph.
type SymbolKind int

const (
	// SymbolInput marks a symbol fed by the caller on every forward/inference.
	SymbolInput SymbolKind = iota
	// SymbolParam marks a symbol backed by a trainable or fixed parameter.
	SymbolParam
	// SymbolIntermediate marks a symbol produced by a node.
	SymbolIntermediate
)

// Symbol is a lightweight handle identifying a tensor slot in an arena. It
// is a value type but not comparable (its Shape holds slices), so it
// cannot be a map key: arena lookups key on Symbol.ID, and copying a
// Symbol never copies the tensor data it refers to.
type Symbol struct {
	ID        int
	Shape     shape.TensorShape
	Trainable bool
	Kind      SymbolKind
}
