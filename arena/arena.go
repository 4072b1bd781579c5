// Package arena implements the two symbol-keyed tensor stores backing
// graph execution, TENSORS and GRADS: append-only during allocation,
// then mutated in place by operator kernels.
package arena

import (
	"fmt"

	"github.com/nnrt/corograph/numeric"
	"github.com/nnrt/corograph/tensor"
)

// Role names which of the two arenas a value belongs to, used only to
// make panic/error messages identify which store misbehaved.
type Role int

const (
	// RoleTensors is the TENSORS arena: one entry per input, parameter,
	// and node output.
	RoleTensors Role = iota
	// RoleGrads is the GRADS arena: one entry per trainable symbol.
	RoleGrads
)

func (r Role) String() string {
	if r == RoleGrads {
		return "GRADS"
	}

	return "TENSORS"
}

// Arena is a symbol-keyed tensor store. Keys are graph.Symbol.ID values;
// Arena itself does not import the graph package; exec.Model is the only
// caller that constructs and indexes an Arena, passing Symbol.ID.
type Arena[T numeric.Dtype] struct {
	role    Role
	tensors map[int]*tensor.Dense[T]
}

// New returns an empty Arena for the given role.
func New[T numeric.Dtype](role Role) *Arena[T] {
	return &Arena[T]{role: role, tensors: make(map[int]*tensor.Dense[T])}
}

// Clear drops all entries, readying the store for a fresh allocation
// pass. Symbol IDs restart at 0 per graph, so stale entries would alias
// a prior Model's tensors.
func (a *Arena[T]) Clear() {
	a.tensors = make(map[int]*tensor.Dense[T])
}

// Append inserts t under symbolID. A duplicate symbolID is a programmer
// error (the graph builder guarantees symbol IDs are assigned once), so
// this panics rather than returning an error.
func (a *Arena[T]) Append(symbolID int, t *tensor.Dense[T]) {
	if _, exists := a.tensors[symbolID]; exists {
		panic(fmt.Sprintf("arena: duplicate symbol id %d appended to %s", symbolID, a.role))
	}

	a.tensors[symbolID] = t
}

// Get returns the tensor at symbolID. It returns an error rather than
// panicking: unlike Append (a build-time invariant), a missing Get target
// can result from a caller bug that is easier to diagnose with a wrapped
// error than a panic deep in a kernel.
func (a *Arena[T]) Get(symbolID int) (*tensor.Dense[T], error) {
	t, ok := a.tensors[symbolID]
	if !ok {
		return nil, fmt.Errorf("arena: no %s entry for symbol id %d", a.role, symbolID)
	}

	return t, nil
}

// Set replaces the tensor at symbolID in place. symbolID must already be
// present (allocated during Model construction).
func (a *Arena[T]) Set(symbolID int, t *tensor.Dense[T]) error {
	if _, ok := a.tensors[symbolID]; !ok {
		return fmt.Errorf("arena: no %s entry for symbol id %d", a.role, symbolID)
	}

	a.tensors[symbolID] = t

	return nil
}

// Has reports whether symbolID has an entry.
func (a *Arena[T]) Has(symbolID int) bool {
	_, ok := a.tensors[symbolID]

	return ok
}

// Len returns the number of entries currently stored.
func (a *Arena[T]) Len() int {
	return len(a.tensors)
}
